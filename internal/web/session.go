package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"

	"github.com/p-n-ai/pai-manual/internal/manual"
)

// Session operations sent by the client.
const (
	OpGoTo     = "goto"
	OpNext     = "next"
	OpPrevious = "previous"
	OpToggle   = "toggle"
	OpLevel    = "level"
)

// Command is a navigation request from a view session client.
type Command struct {
	Op         string `json:"op"`
	Section    string `json:"section,omitempty"`
	Subsection string `json:"subsection,omitempty"`
	Level      string `json:"level,omitempty"`
}

// Event is pushed to the client after every command that changed the state and after
// every failed command.
type Event struct {
	Type    string        `json:"type"` // "state" or "error"
	Session string        `json:"session"`
	State   *manual.State `json:"state,omitempty"`
	IsFirst bool          `json:"isFirst"`
	IsLast  bool          `json:"isLast"`
	Error   string        `json:"error,omitempty"`
}

// handleSession runs one view session per websocket connection. The controller lives
// only as long as the connection; commands are applied in arrival order.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		slog.Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	ctrl, err := manual.NewController[string](s.catalog)
	if err != nil {
		conn.Close(websocket.StatusInternalError, "catalog unavailable")
		return
	}
	ctrl.SetLevel(s.defaultLevel)

	id := uuid.NewString()
	slog.Info("view session opened", "session", id)
	defer slog.Info("view session closed", "session", id)

	// A command may publish more than once; only its final snapshot is sent.
	var latest *manual.State
	unsubscribe := ctrl.Subscribe(func(st manual.State) {
		latest = &st
	})
	defer unsubscribe()

	ctx := r.Context()
	if err := wsjson.Write(ctx, conn, stateEvent(id, ctrl, ctrl.State())); err != nil {
		return
	}

	for {
		var cmd Command
		if err := wsjson.Read(ctx, conn, &cmd); err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure && !errors.Is(err, context.Canceled) {
				slog.Debug("view session read ended", "session", id, "error", err)
			}
			return
		}

		var outbox []Event
		err := apply(ctrl, cmd)
		if latest != nil {
			outbox = append(outbox, stateEvent(id, ctrl, *latest))
			latest = nil
		}
		if err != nil {
			outbox = append(outbox, Event{Type: "error", Session: id, Error: err.Error()})
		}

		for _, ev := range outbox {
			if err := wsjson.Write(ctx, conn, ev); err != nil {
				slog.Debug("view session write failed", "session", id, "error", err)
				return
			}
		}
	}
}

func apply(ctrl *manual.Controller[string], cmd Command) error {
	switch cmd.Op {
	case OpGoTo:
		if err := ctrl.GoTo(cmd.Section, cmd.Subsection); err != nil {
			return err
		}
		ctrl.Expand(cmd.Section)
	case OpNext:
		ctrl.Next()
	case OpPrevious:
		ctrl.Previous()
	case OpToggle:
		if cmd.Section == "" {
			return fmt.Errorf("toggle requires a section")
		}
		if !ctrl.HasSection(cmd.Section) {
			return fmt.Errorf("%w: unknown section %q", manual.ErrInvalidTarget, cmd.Section)
		}
		ctrl.ToggleExpanded(cmd.Section)
	case OpLevel:
		level, err := manual.ParseLevel(cmd.Level)
		if err != nil {
			return err
		}
		ctrl.SetLevel(level)
	default:
		return fmt.Errorf("unknown op %q", cmd.Op)
	}
	return nil
}

func stateEvent(session string, ctrl *manual.Controller[string], st manual.State) Event {
	return Event{
		Type:    "state",
		Session: session,
		State:   &st,
		IsFirst: ctrl.IsFirst(),
		IsLast:  ctrl.IsLast(),
	}
}
