package main

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/wailsapp/wails/v3/pkg/application"

	"strum/internal/webview"
)

const (
	promptResultEvent = "shell:prompt-result"
	promptTimeout     = 2 * time.Minute
)

// jsPrompter collects a line of text through the page's own prompt dialog.
// Prompt is fire-and-forget: the injected script reports the result back
// over the event bridge keyed by a sequence id, and the reply callback runs
// once the answer (or the timeout) arrives, so menu click handlers never
// block on the page. Sequence ids keep stale answers from a reloaded page
// from satisfying a newer request.
type jsPrompter struct {
	view    webview.View
	timeout time.Duration

	mu      sync.Mutex
	nextID  uint64
	waiting map[string]func(value string, ok bool)
}

func newJSPrompter(app *application.App, view webview.View) *jsPrompter {
	p := &jsPrompter{
		view:    view,
		timeout: promptTimeout,
		waiting: make(map[string]func(string, bool)),
	}

	app.Event.On(promptResultEvent, func(event *application.CustomEvent) {
		p.handleResult(event.Data)
	})

	return p
}

// Prompt shows the page's prompt and hands the outcome to reply exactly
// once. ok is false on cancel and on timeout.
func (p *jsPrompter) Prompt(title, label, value string, reply func(result string, ok bool)) {
	p.mu.Lock()
	p.nextID++
	id := strconv.FormatUint(p.nextID, 10)
	p.waiting[id] = reply
	p.mu.Unlock()

	p.view.ExecJS(promptScript(id, title+"\n"+label, value))

	time.AfterFunc(p.timeout, func() {
		if p.finish(id, "", false) {
			log.Printf("prompt %s timed out", id)
		}
	})
}

func (p *jsPrompter) handleResult(data any) {
	payload, ok := data.(map[string]any)
	if !ok {
		return
	}
	id, _ := payload["id"].(string)
	value, _ := payload["value"].(string)
	cancelled, _ := payload["cancelled"].(bool)

	p.finish(id, value, !cancelled)
}

// finish resolves a pending prompt. Late or duplicate answers find no
// pending entry and are dropped.
func (p *jsPrompter) finish(id, value string, ok bool) bool {
	p.mu.Lock()
	reply := p.waiting[id]
	delete(p.waiting, id)
	p.mu.Unlock()

	if reply == nil {
		return false
	}
	reply(value, ok)
	return true
}

// promptScript shows window.prompt and reports the outcome back through the
// wails runtime. A null return distinguishes cancel from an empty submission.
func promptScript(id, message, value string) string {
	return fmt.Sprintf(`(function(){
var r = window.prompt(%s, %s);
var payload = {id: %s, value: r === null ? "" : r, cancelled: r === null};
if (window.wails && window.wails.Events) { window.wails.Events.Emit({name: %s, data: payload}); }
})();`,
		jsString(message), jsString(value), jsString(id), jsString(promptResultEvent))
}

func jsString(value string) string {
	quoted, err := json.Marshal(value)
	if err != nil {
		return `""`
	}
	return string(quoted)
}
