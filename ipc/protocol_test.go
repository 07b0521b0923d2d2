package ipc

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/swarmlogic/swarm-core/model"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	env, err := NewEnvelope(TypeActions, ActionsMessage{
		Tick: 42,
		Actions: map[int]model.Action{
			1: model.ActionFire,
			2: model.ActionMoveLeft,
			3: model.ActionIdle,
		},
	})
	if err != nil {
		t.Fatalf("NewEnvelope: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteEnvelope(&buf, env); err != nil {
		t.Fatalf("WriteEnvelope: %v", err)
	}

	got, err := ReadEnvelope(&buf)
	if err != nil {
		t.Fatalf("ReadEnvelope: %v", err)
	}
	if got.Type != TypeActions {
		t.Errorf("type = %q, want %q", got.Type, TypeActions)
	}
	if !bytes.Equal(got.Data, env.Data) {
		t.Errorf("data = %s, want %s", got.Data, env.Data)
	}
}

func TestReadEnvelopeRejectsBadLength(t *testing.T) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.BigEndian, uint32(0)); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadEnvelope(&buf); err == nil {
		t.Error("expected error for zero-length frame")
	}

	buf.Reset()
	if err := binary.Write(&buf, binary.BigEndian, uint32(maxFrame+1)); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadEnvelope(&buf); err == nil {
		t.Error("expected error for oversized frame")
	}
}

func TestReadEnvelopeRejectsTruncatedPayload(t *testing.T) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.BigEndian, uint32(100)); err != nil {
		t.Fatal(err)
	}
	buf.WriteString(`{"type":"hello"`)
	if _, err := ReadEnvelope(&buf); err == nil {
		t.Error("expected error for truncated payload")
	}
}
