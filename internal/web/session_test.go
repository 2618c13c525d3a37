package web

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/p-n-ai/pai-manual/internal/manual"
)

func dialSession(t *testing.T) (context.Context, *websocket.Conn) {
	t.Helper()

	ts := httptest.NewServer(New(Config{Catalog: testCatalog()}).Handler())
	t.Cleanup(ts.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "") })
	return ctx, conn
}

func readEvent(t *testing.T, ctx context.Context, conn *websocket.Conn) Event {
	t.Helper()
	var ev Event
	if err := wsjson.Read(ctx, conn, &ev); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	return ev
}

func send(t *testing.T, ctx context.Context, conn *websocket.Conn, cmd Command) {
	t.Helper()
	if err := wsjson.Write(ctx, conn, cmd); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
}

func TestSession_InitialState(t *testing.T) {
	ctx, conn := dialSession(t)

	ev := readEvent(t, ctx, conn)
	if ev.Type != "state" || ev.State == nil {
		t.Fatalf("first event = %+v, want state", ev)
	}
	if ev.Session == "" {
		t.Error("session id should be set")
	}
	if ev.State.SectionID != "intro" || ev.State.SubsectionID != "what" {
		t.Errorf("start = %s/%s, want intro/what", ev.State.SectionID, ev.State.SubsectionID)
	}
	if !ev.IsFirst || ev.IsLast {
		t.Errorf("IsFirst = %v, IsLast = %v at start", ev.IsFirst, ev.IsLast)
	}
}

func TestSession_Navigation(t *testing.T) {
	ctx, conn := dialSession(t)
	first := readEvent(t, ctx, conn)

	send(t, ctx, conn, Command{Op: OpNext})
	ev := readEvent(t, ctx, conn)
	if ev.State.SectionID != "campaigns" || ev.State.SubsectionID != "create" {
		t.Errorf("after next = %s/%s, want campaigns/create", ev.State.SectionID, ev.State.SubsectionID)
	}
	if ev.Session != first.Session {
		t.Error("session id changed between events")
	}

	send(t, ctx, conn, Command{Op: OpGoTo, Section: "campaigns", Subsection: "results"})
	ev = readEvent(t, ctx, conn)
	if !ev.IsLast {
		t.Error("IsLast should be true at campaigns/results")
	}
	if !ev.State.IsExpanded("campaigns") {
		t.Error("goto should expand the target section")
	}

	send(t, ctx, conn, Command{Op: OpLevel, Level: "intermedio"})
	ev = readEvent(t, ctx, conn)
	if ev.State.Level != manual.LevelIntermedio || ev.State.SubsectionID != "results" {
		t.Errorf("after level = %+v", ev.State)
	}

	send(t, ctx, conn, Command{Op: OpToggle, Section: "intro"})
	ev = readEvent(t, ctx, conn)
	if !ev.State.IsExpanded("intro") {
		t.Error("toggle should expand intro")
	}

	send(t, ctx, conn, Command{Op: OpPrevious})
	ev = readEvent(t, ctx, conn)
	if ev.State.SubsectionID != "create" {
		t.Errorf("after previous = %s, want create", ev.State.SubsectionID)
	}
}

func TestSession_Errors(t *testing.T) {
	ctx, conn := dialSession(t)
	readEvent(t, ctx, conn)

	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{"invalid target", Command{Op: OpGoTo, Section: "intro", Subsection: "results"}, "invalid navigation target"},
		{"unknown level", Command{Op: OpLevel, Level: "experto"}, "unknown level"},
		{"unknown op", Command{Op: "jump"}, "unknown op"},
		{"toggle without section", Command{Op: OpToggle}, "requires a section"},
		{"toggle unknown section", Command{Op: OpToggle, Section: "zzz"}, "unknown section"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			send(t, ctx, conn, tt.cmd)
			ev := readEvent(t, ctx, conn)
			if ev.Type != "error" || !strings.Contains(ev.Error, tt.want) {
				t.Errorf("event = %+v, want error containing %q", ev, tt.want)
			}
		})
	}
}

func TestSession_BoundaryNoOpSendsNothing(t *testing.T) {
	ctx, conn := dialSession(t)
	readEvent(t, ctx, conn)

	// Previous at the first page is a no-op; the next event seen must be the one for Next.
	send(t, ctx, conn, Command{Op: OpPrevious})
	send(t, ctx, conn, Command{Op: OpNext})

	ev := readEvent(t, ctx, conn)
	if ev.State == nil || ev.State.SubsectionID != "create" {
		t.Errorf("event = %+v, want state at campaigns/create", ev)
	}
}

func TestSession_UnknownSectionNotExpanded(t *testing.T) {
	ctx, conn := dialSession(t)
	readEvent(t, ctx, conn)

	send(t, ctx, conn, Command{Op: OpToggle, Section: "zzz"})
	if ev := readEvent(t, ctx, conn); ev.Type != "error" {
		t.Fatalf("event = %+v, want error", ev)
	}

	send(t, ctx, conn, Command{Op: OpToggle, Section: "campaigns"})
	ev := readEvent(t, ctx, conn)
	if ev.State == nil || len(ev.State.Expanded) != 1 || ev.State.Expanded[0] != "campaigns" {
		t.Errorf("event = %+v, want only campaigns expanded", ev)
	}
}

func TestSession_GoToSendsOneEvent(t *testing.T) {
	ctx, conn := dialSession(t)
	readEvent(t, ctx, conn)

	// goto publishes the move and the expansion; both arrive as a single event.
	send(t, ctx, conn, Command{Op: OpGoTo, Section: "campaigns", Subsection: "create"})
	send(t, ctx, conn, Command{Op: OpNext})

	ev := readEvent(t, ctx, conn)
	if ev.State.SubsectionID != "create" || !ev.State.IsExpanded("campaigns") {
		t.Errorf("goto event = %+v", ev.State)
	}
	ev = readEvent(t, ctx, conn)
	if ev.State.SubsectionID != "results" {
		t.Errorf("next event = %+v, want campaigns/results", ev.State)
	}
}
