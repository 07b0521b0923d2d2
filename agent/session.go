// Package agent hosts one decision session per game connection: the
// handshake, per-tick snapshot handling, and strategy-mode commands.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/swarmlogic/swarm-core/ipc"
	"github.com/swarmlogic/swarm-core/model"
	"github.com/swarmlogic/swarm-core/rules"
)

// Session owns the decision-making for a single connected game.
type Session struct {
	ID     string
	Conn   *ipc.Connection
	Engine *rules.Engine
}

func New(conn *ipc.Connection, engine *rules.Engine) *Session {
	return &Session{
		ID:     uuid.NewString(),
		Conn:   conn,
		Engine: engine,
	}
}

// Attach registers this session's handlers on its connection.
func (s *Session) Attach() {
	s.Conn.RegisterHandler(ipc.TypeHello, s.HandleHello)
	s.Conn.RegisterHandler(ipc.TypeSnapshot, s.HandleSnapshot)
	s.Conn.RegisterHandler(ipc.TypeSetStrategy, s.HandleSetStrategy)
}

// HandleHello completes the handshake so the game knows the sidecar is
// ready, and resets cross-tick state for the new session.
func (s *Session) HandleHello(env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := json.Unmarshal(env.Data, &hello); err != nil {
		return nil, fmt.Errorf("unmarshal hello: %w", err)
	}

	s.Engine.Reset()
	slog.Info("game connected", "game", hello.Game, "session", s.ID)

	ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok", Session: s.ID})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

// HandleSnapshot runs one decision pass and replies with the actions.
func (s *Session) HandleSnapshot(env ipc.Envelope) (*ipc.Envelope, error) {
	var snap model.Snapshot
	if err := json.Unmarshal(env.Data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	actions, err := s.Engine.EvaluateTick(context.Background(), snap)
	if err != nil {
		return nil, fmt.Errorf("evaluate tick %d: %w", snap.Tick, err)
	}

	slog.Debug("tick decided",
		"session", s.ID,
		"tick", snap.Tick,
		"aliens", len(snap.Aliens),
		"actions", len(actions),
	)

	resp, err := ipc.NewEnvelope(ipc.TypeActions, ipc.ActionsMessage{Tick: snap.Tick, Actions: actions})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// HandleSetStrategy switches the assignment mode. Global with a strategy
// id, per-row with a rows map, or neither to return to the default
// row-based mapping.
func (s *Session) HandleSetStrategy(env ipc.Envelope) (*ipc.Envelope, error) {
	var msg ipc.SetStrategyMessage
	if err := json.Unmarshal(env.Data, &msg); err != nil {
		return nil, fmt.Errorf("unmarshal set_strategy: %w", err)
	}

	if msg.Strategy == nil && len(msg.Rows) == 0 {
		// No payload means "strategy off": back to the row-based default.
		s.Engine.ResetAssignment()
	} else {
		assignment, err := assignmentFromMessage(msg)
		if err != nil {
			return nil, err
		}
		if err := s.Engine.SetAssignment(assignment); err != nil {
			return nil, err
		}
	}

	ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok", Session: s.ID})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

func assignmentFromMessage(msg ipc.SetStrategyMessage) (rules.Assignment, error) {
	switch {
	case msg.Strategy != nil:
		s := rules.Strategy(*msg.Strategy)
		if !s.Valid() {
			return rules.Assignment{}, fmt.Errorf("set_strategy: unknown strategy id %d", *msg.Strategy)
		}
		return rules.GlobalAssignment(s), nil
	default:
		rows := make(map[int]rules.Strategy, len(msg.Rows))
		for row, id := range msg.Rows {
			s := rules.Strategy(id)
			if !s.Valid() {
				return rules.Assignment{}, fmt.Errorf("set_strategy: row %d: unknown strategy id %d", row, id)
			}
			rows[row] = s
		}
		return rules.PerRowAssignment(rows), nil
	}
}
