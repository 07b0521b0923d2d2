package agent

import (
	"encoding/json"
	"net"
	"testing"

	"github.com/swarmlogic/swarm-core/ipc"
	"github.com/swarmlogic/swarm-core/model"
	"github.com/swarmlogic/swarm-core/rules"
)

// startSession wires a session to one end of a pipe and returns the
// game-side conn for the test to speak through.
func startSession(t *testing.T, tuning rules.Tuning) net.Conn {
	t.Helper()

	engine, err := rules.NewEngine(tuning)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	server, client := net.Pipe()
	conn := ipc.NewConnection(server)
	session := New(conn, engine)
	session.Attach()
	go conn.ReadLoop()

	t.Cleanup(func() { client.Close() })
	return client
}

func exchange(t *testing.T, conn net.Conn, msgType string, data any) ipc.Envelope {
	t.Helper()
	env, err := ipc.NewEnvelope(msgType, data)
	if err != nil {
		t.Fatalf("NewEnvelope: %v", err)
	}
	if err := ipc.WriteEnvelope(conn, env); err != nil {
		t.Fatalf("WriteEnvelope: %v", err)
	}
	resp, err := ipc.ReadEnvelope(conn)
	if err != nil {
		t.Fatalf("ReadEnvelope: %v", err)
	}
	return resp
}

func TestSessionHandshake(t *testing.T) {
	client := startSession(t, rules.DefaultTuning())

	resp := exchange(t, client, ipc.TypeHello, ipc.HelloMessage{Game: "invaders"})
	if resp.Type != ipc.TypeAck {
		t.Fatalf("response type = %q, want ack", resp.Type)
	}

	var ack ipc.AckMessage
	if err := json.Unmarshal(resp.Data, &ack); err != nil {
		t.Fatalf("unmarshal ack: %v", err)
	}
	if ack.Status != "ok" || ack.Session == "" {
		t.Errorf("ack = %+v, want ok with a session id", ack)
	}
}

func TestSessionSnapshotYieldsActions(t *testing.T) {
	tuning := rules.DefaultTuning()
	tuning.Seed = 31
	client := startSession(t, tuning)

	exchange(t, client, ipc.TypeHello, ipc.HelloMessage{Game: "invaders"})

	snap := model.Snapshot{
		Tick:   5,
		Player: model.Player{X: 400, Y: 550},
		Aliens: []model.Alien{
			{ID: 1, X: 100, Y: 100},
			{ID: 2, X: 200, Y: 200},
			{ID: 3, X: 300, Y: 300},
		},
		Bounds: model.Bounds{Width: 800, Height: 600},
	}
	resp := exchange(t, client, ipc.TypeSnapshot, snap)
	if resp.Type != ipc.TypeActions {
		t.Fatalf("response type = %q, want actions", resp.Type)
	}

	var msg ipc.ActionsMessage
	if err := json.Unmarshal(resp.Data, &msg); err != nil {
		t.Fatalf("unmarshal actions: %v", err)
	}
	if msg.Tick != 5 {
		t.Errorf("tick = %d, want 5", msg.Tick)
	}
	if len(msg.Actions) != 3 {
		t.Errorf("got %d actions, want 3", len(msg.Actions))
	}
}

func TestSessionInvalidSnapshotReturnsError(t *testing.T) {
	client := startSession(t, rules.DefaultTuning())

	snap := model.Snapshot{
		Aliens: []model.Alien{{ID: 1}, {ID: 1}},
		Bounds: model.Bounds{Width: 800, Height: 600},
	}
	resp := exchange(t, client, ipc.TypeSnapshot, snap)
	if resp.Type != ipc.TypeError {
		t.Fatalf("response type = %q, want error", resp.Type)
	}
}

func TestSessionSetStrategy(t *testing.T) {
	client := startSession(t, rules.DefaultTuning())

	global := 1
	resp := exchange(t, client, ipc.TypeSetStrategy, ipc.SetStrategyMessage{Strategy: &global})
	if resp.Type != ipc.TypeAck {
		t.Fatalf("global set: response type = %q, want ack", resp.Type)
	}

	resp = exchange(t, client, ipc.TypeSetStrategy, ipc.SetStrategyMessage{
		Rows: map[int]int{1: 4, 2: 2, 3: 1},
	})
	if resp.Type != ipc.TypeAck {
		t.Fatalf("per-row set: response type = %q, want ack", resp.Type)
	}

	// Empty payload resets to the row-based default.
	resp = exchange(t, client, ipc.TypeSetStrategy, ipc.SetStrategyMessage{})
	if resp.Type != ipc.TypeAck {
		t.Fatalf("reset: response type = %q, want ack", resp.Type)
	}

	bad := 42
	resp = exchange(t, client, ipc.TypeSetStrategy, ipc.SetStrategyMessage{Strategy: &bad})
	if resp.Type != ipc.TypeError {
		t.Fatalf("unknown strategy: response type = %q, want error", resp.Type)
	}
}
