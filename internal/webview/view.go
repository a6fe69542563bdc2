package webview

import (
	"runtime"

	"github.com/wailsapp/wails/v3/pkg/application"
	"github.com/wailsapp/wails/v3/pkg/events"
)

// View is the slice of browser-content behavior the shell composes against.
// It exists so menu handlers, plugins, and the CSS injector stay decoupled
// from the window implementation.
type View interface {
	ExecJS(js string)
	OnContentLoaded(fn func()) (cancel func())
	Reload()
	OpenDevTools()
}

// WindowView adapts a webview window to View.
type WindowView struct {
	window *application.WebviewWindow
}

func NewWindowView(window *application.WebviewWindow) *WindowView {
	return &WindowView{window: window}
}

func (v *WindowView) ExecJS(js string) {
	v.window.ExecJS(js)
}

// OnContentLoaded fires fn on every load completion of the window's content,
// including reloads and navigations. The returned cancel detaches the
// observer.
func (v *WindowView) OnContentLoaded(fn func()) func() {
	return v.window.OnWindowEvent(contentLoadedEvent(), func(_ *application.WindowEvent) {
		fn()
	})
}

func (v *WindowView) Reload() {
	v.window.Reload()
}

func (v *WindowView) OpenDevTools() {
	v.window.OpenDevTools()
}

func (v *WindowView) ZoomIn() {
	v.window.ZoomIn()
}

func (v *WindowView) ZoomOut() {
	v.window.ZoomOut()
}

func (v *WindowView) ZoomReset() {
	v.window.ZoomReset()
}

func (v *WindowView) ToggleFullscreen() {
	if v.window.IsFullscreen() {
		v.window.UnFullscreen()
		return
	}
	v.window.Fullscreen()
}

// contentLoadedEvent picks the platform's load-completion event.
func contentLoadedEvent() events.WindowEventType {
	switch runtime.GOOS {
	case "windows":
		return events.Windows.WebViewNavigationCompleted
	case "darwin":
		return events.Mac.WebViewDidFinishNavigation
	default:
		return events.Linux.WindowLoadFinished
	}
}
