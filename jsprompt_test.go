package main

import (
	"strings"
	"testing"
	"time"
)

type fakePromptView struct {
	scripts []string
}

func (v *fakePromptView) ExecJS(js string) { v.scripts = append(v.scripts, js) }

func (v *fakePromptView) OnContentLoaded(func()) func() { return func() {} }

func (v *fakePromptView) Reload() {}

func (v *fakePromptView) OpenDevTools() {}

func newPrompterForTest(view *fakePromptView) *jsPrompter {
	return &jsPrompter{
		view:    view,
		timeout: time.Minute,
		waiting: make(map[string]func(string, bool)),
	}
}

type promptOutcome struct {
	value string
	ok    bool
}

func TestPromptOutcomes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		value     string
		cancelled bool
		want      promptOutcome
	}{
		{name: "value submitted", value: "socks5://127.0.0.1:9999", want: promptOutcome{value: "socks5://127.0.0.1:9999", ok: true}},
		{name: "empty submitted", value: "", want: promptOutcome{value: "", ok: true}},
		{name: "cancelled", value: "", cancelled: true, want: promptOutcome{value: "", ok: false}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := newPrompterForTest(&fakePromptView{})

			var got []promptOutcome
			p.Prompt("Proxy", "address", "", func(value string, ok bool) {
				got = append(got, promptOutcome{value: value, ok: ok})
			})

			p.handleResult(map[string]any{"id": "1", "value": tc.value, "cancelled": tc.cancelled})

			if len(got) != 1 || got[0] != tc.want {
				t.Fatalf("expected one reply %+v, got %v", tc.want, got)
			}
		})
	}
}

func TestPromptIgnoresStaleAndDuplicateResults(t *testing.T) {
	t.Parallel()

	p := newPrompterForTest(&fakePromptView{})

	replies := 0
	p.Prompt("Proxy", "address", "", func(string, bool) { replies++ })

	// An id from another (reloaded) page must not satisfy the request.
	p.handleResult(map[string]any{"id": "99", "value": "x", "cancelled": false})
	if replies != 0 {
		t.Fatalf("expected stale id to be dropped, got %d replies", replies)
	}

	p.handleResult(map[string]any{"id": "1", "value": "x", "cancelled": false})
	p.handleResult(map[string]any{"id": "1", "value": "y", "cancelled": false})
	if replies != 1 {
		t.Fatalf("expected exactly one reply, got %d", replies)
	}
}

func TestPromptTimeoutReadsAsCancel(t *testing.T) {
	t.Parallel()

	p := newPrompterForTest(&fakePromptView{})
	p.timeout = 10 * time.Millisecond

	done := make(chan promptOutcome, 1)
	p.Prompt("Proxy", "address", "", func(value string, ok bool) {
		done <- promptOutcome{value: value, ok: ok}
	})

	select {
	case out := <-done:
		if out.ok || out.value != "" {
			t.Fatalf("expected timeout to read as cancel, got %+v", out)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected a reply after the timeout")
	}
}

func TestPromptScriptReportsOverRegisteredEvent(t *testing.T) {
	t.Parallel()

	view := &fakePromptView{}
	p := newPrompterForTest(view)
	p.Prompt("Proxy", "address", "current", func(string, bool) {})

	if len(view.scripts) != 1 {
		t.Fatalf("expected one injected script, got %d", len(view.scripts))
	}
	// The page must answer on the event name init() registers, or the
	// bridge never delivers the result.
	if !strings.Contains(view.scripts[0], jsString(promptResultEvent)) {
		t.Fatalf("script does not report over %q: %s", promptResultEvent, view.scripts[0])
	}
	if !strings.Contains(view.scripts[0], jsString("current")) {
		t.Fatalf("script does not carry the current value: %s", view.scripts[0])
	}
}
