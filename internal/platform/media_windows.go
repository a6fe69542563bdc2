//go:build windows

package platform

import (
	"log"
	"sync"
	"unsafe"

	"github.com/wailsapp/wails/v3/pkg/application"
	"github.com/wailsapp/wails/v3/pkg/events"
	"github.com/zzl/go-win32api/v2/win32"

	"strum/internal/platform/windows/mediastate"
	"strum/internal/platform/windows/smtc"
	"strum/internal/platform/windows/thumbbar"
)

// windowsMediaService projects the page's playback state onto the system
// media transport controls and the taskbar thumbnail toolbar. Both surfaces
// need a native window handle, which only exists once the webview has
// finished its first navigation, so startup is retried from window events
// until it sticks.
type windowsMediaService struct {
	app      *application.App
	controls Controls
	smtc     *smtc.Service
	thumbbar *thumbbar.Service

	mu            sync.Mutex
	smtcStarted   bool
	smtcStarting  bool
	thumbStarted  bool
	thumbStarting bool
	hasLastState  bool
	lastState     NowPlaying
}

func NewMediaService(app *application.App, controls Controls) MediaService {
	return &windowsMediaService{
		app:      app,
		controls: controls,
		smtc:     smtc.NewService(controls),
		thumbbar: thumbbar.NewService(controls),
	}
}

func (s *windowsMediaService) Start() error {
	if s.app == nil || s.controls == nil {
		return nil
	}

	if s.app.Window != nil {
		for _, window := range s.app.Window.GetAll() {
			s.watchWindow(window)
		}
		s.app.Window.OnCreate(func(window application.Window) {
			s.watchWindow(window)
		})
	}

	s.startSMTCIfNeeded()
	s.startThumbbarIfNeeded()

	return nil
}

func (s *windowsMediaService) Stop() error {
	if s.smtc != nil {
		s.mu.Lock()
		s.smtcStarted = false
		s.smtcStarting = false
		s.mu.Unlock()
		if err := s.smtc.Close(); err != nil {
			return err
		}
	}

	if s.thumbbar != nil {
		s.mu.Lock()
		s.thumbStarted = false
		s.thumbStarting = false
		s.mu.Unlock()
		if err := s.thumbbar.Close(); err != nil {
			return err
		}
	}

	return nil
}

func (s *windowsMediaService) HandleNowPlaying(state NowPlaying) {
	if s.smtc == nil && s.thumbbar == nil {
		return
	}

	snapshot := toSnapshot(state)

	s.mu.Lock()
	s.lastState = state
	s.hasLastState = true
	smtcStarted := s.smtcStarted
	thumbStarted := s.thumbStarted
	s.mu.Unlock()

	if s.smtc != nil && !smtcStarted {
		s.startSMTCIfNeeded()
	} else if s.smtc != nil {
		s.smtc.Update(snapshot)
	}

	if s.thumbbar == nil {
		return
	}

	if !thumbStarted {
		s.startThumbbarIfNeeded()
		return
	}

	s.thumbbar.Update(snapshot)
}

func (s *windowsMediaService) startSMTCIfNeeded() bool {
	if s.smtc == nil {
		return false
	}

	s.mu.Lock()
	if s.smtcStarted {
		s.mu.Unlock()
		return true
	}
	if s.smtcStarting {
		s.mu.Unlock()
		return false
	}
	s.smtcStarting = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.smtcStarting = false
		s.mu.Unlock()
	}()

	hwnd, ok := s.resolveWindowHandle()
	if !ok {
		return false
	}

	if err := s.smtc.Start(hwnd); err != nil {
		log.Printf("platform SMTC disabled: %v", err)
		return false
	}

	var pending NowPlaying
	hasPending := false

	s.mu.Lock()
	s.smtcStarted = true
	if s.hasLastState {
		pending = s.lastState
		hasPending = true
	}
	s.mu.Unlock()

	if hasPending {
		s.smtc.Update(toSnapshot(pending))
	}

	return true
}

func (s *windowsMediaService) startThumbbarIfNeeded() bool {
	if s.thumbbar == nil {
		return false
	}

	s.mu.Lock()
	if s.thumbStarted {
		s.mu.Unlock()
		return true
	}
	if s.thumbStarting {
		s.mu.Unlock()
		return false
	}
	s.thumbStarting = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.thumbStarting = false
		s.mu.Unlock()
	}()

	hwnd, ok := s.resolveWindowHandle()
	if !ok {
		return false
	}

	if err := s.thumbbar.Start(hwnd); err != nil {
		log.Printf("platform thumbnail toolbar disabled: %v", err)
		return false
	}

	var pending NowPlaying
	hasPending := false

	s.mu.Lock()
	s.thumbStarted = true
	if s.hasLastState {
		pending = s.lastState
		hasPending = true
	}
	s.mu.Unlock()

	if hasPending {
		s.thumbbar.Update(toSnapshot(pending))
	}

	return true
}

func (s *windowsMediaService) watchWindow(window application.Window) {
	if window == nil {
		return
	}

	if s.startSMTCIfNeeded() && s.startThumbbarIfNeeded() {
		return
	}

	var cancel func()
	cancel = window.OnWindowEvent(events.Windows.WebViewNavigationCompleted, func(_ *application.WindowEvent) {
		if !s.startSMTCIfNeeded() || !s.startThumbbarIfNeeded() {
			return
		}
		if cancel != nil {
			cancel()
			cancel = nil
		}
	})
}

func (s *windowsMediaService) resolveWindowHandle() (win32.HWND, bool) {
	if s.app == nil || s.app.Window == nil {
		return 0, false
	}

	if window := s.app.Window.Current(); window != nil {
		if hwnd, ok := asHWND(window.NativeWindow()); ok {
			return hwnd, true
		}
	}

	for _, window := range s.app.Window.GetAll() {
		if hwnd, ok := asHWND(window.NativeWindow()); ok {
			return hwnd, true
		}
	}

	return 0, false
}

func asHWND(nativeWindow unsafe.Pointer) (win32.HWND, bool) {
	if nativeWindow == nil {
		return 0, false
	}

	hwnd := win32.HWND(uintptr(nativeWindow))
	if hwnd == 0 {
		return 0, false
	}

	return hwnd, true
}

func toSnapshot(state NowPlaying) mediastate.Snapshot {
	return mediastate.Snapshot{
		Playing: state.Playing,
		Title:   state.Title,
		Artist:  state.Artist,
		Album:   state.Album,
	}
}
