//go:build windows

// Package smtc mirrors the page's playback state into the Windows system
// media transport controls, so the volume flyout and hardware media keys
// show and drive the web player.
package smtc

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unsafe"

	"github.com/zzl/go-com/com"
	"github.com/zzl/go-win32api/v2/win32"
	"github.com/zzl/go-winrtapi/winrt"

	"strum/internal/platform/windows/mediastate"
)

const (
	smtcClassName = "Windows.Media.SystemMediaTransportControls"
	appMediaID    = "Strum"
)

type Service struct {
	mu       sync.Mutex
	controls mediastate.Controls
	updates  chan mediastate.Snapshot
	stop     chan struct{}
	done     chan struct{}
	running  bool
}

// runtimeState lives on the dedicated WinRT goroutine; the COM apartment is
// initialized and torn down there.
type runtimeState struct {
	commands     mediastate.Controls
	controls     *winrt.ISystemMediaTransportControls
	updater      *winrt.ISystemMediaTransportControlsDisplayUpdater
	musicProps   *winrt.IMusicDisplayProperties
	musicProps2  *winrt.IMusicDisplayProperties2
	buttonToken  winrt.EventRegistrationToken
	hookAttached bool
	lastTrackKey string
	hasTrack     bool
}

func NewService(controls mediastate.Controls) *Service {
	return &Service{controls: controls}
}

func (s *Service) Start(hwnd win32.HWND) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}

	updates := make(chan mediastate.Snapshot, 1)
	stopCh := make(chan struct{})
	doneCh := make(chan struct{})
	readyCh := make(chan error, 1)

	s.updates = updates
	s.stop = stopCh
	s.done = doneCh
	s.running = true
	s.mu.Unlock()

	go s.run(hwnd, updates, stopCh, doneCh, readyCh)

	if err := <-readyCh; err != nil {
		s.mu.Lock()
		s.running = false
		s.updates = nil
		s.stop = nil
		s.done = nil
		s.mu.Unlock()
		<-doneCh
		return err
	}

	return nil
}

// Update hands the latest snapshot to the WinRT goroutine. Only the newest
// pending state matters, so a full channel is drained rather than blocked on.
func (s *Service) Update(state mediastate.Snapshot) {
	s.mu.Lock()
	running := s.running
	updates := s.updates
	s.mu.Unlock()

	if !running || updates == nil {
		return
	}

	select {
	case updates <- state:
	default:
		select {
		case <-updates:
		default:
		}
		select {
		case updates <- state:
		default:
		}
	}
}

func (s *Service) Close() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}

	stopCh := s.stop
	doneCh := s.done
	s.running = false
	s.updates = nil
	s.stop = nil
	s.done = nil
	s.mu.Unlock()

	close(stopCh)
	<-doneCh
	return nil
}

func (s *Service) run(
	hwnd win32.HWND,
	updates <-chan mediastate.Snapshot,
	stopCh <-chan struct{},
	doneCh chan<- struct{},
	readyCh chan<- error,
) {
	defer close(doneCh)

	init := winrt.InitializeMt()
	defer init.Uninitialize()

	runtimeState, err := newRuntimeState(s.controls, hwnd)
	if err != nil {
		readyCh <- err
		return
	}
	defer runtimeState.shutdown()

	readyCh <- nil

	for {
		select {
		case <-stopCh:
			return
		case state := <-updates:
			runtimeState.apply(state)
		}
	}
}

func newRuntimeState(commands mediastate.Controls, hwnd win32.HWND) (*runtimeState, error) {
	if hwnd == 0 {
		return nil, errors.New("smtc requires a valid window handle")
	}

	hs := winrt.NewHStr(smtcClassName)
	defer hs.Dispose()

	var interop *win32.ISystemMediaTransportControlsInterop
	hr := win32.RoGetActivationFactory(hs.Ptr, &win32.IID_ISystemMediaTransportControlsInterop, unsafe.Pointer(&interop))
	if win32.FAILED(hr) {
		return nil, fmt.Errorf("smtc interop activation factory: %s", win32.HRESULT_ToString(hr))
	}
	if interop == nil {
		return nil, errors.New("smtc interop activation factory returned nil")
	}
	com.AddToScope(interop)

	var controls *winrt.ISystemMediaTransportControls
	controlsHR := interop.GetForWindow(hwnd, &winrt.IID_ISystemMediaTransportControls, unsafe.Pointer(&controls))
	if win32.FAILED(controlsHR) {
		return nil, fmt.Errorf("smtc GetForWindow: %s", win32.HRESULT_ToString(controlsHR))
	}
	if controls == nil {
		return nil, errors.New("smtc unavailable for current window")
	}
	com.AddToScope(controls)

	state := &runtimeState{
		commands: commands,
		controls: controls,
	}

	state.controls.Put_IsEnabled(true)
	state.controls.Put_IsPlayEnabled(true)
	state.controls.Put_IsPauseEnabled(true)
	state.controls.Put_IsNextEnabled(true)
	state.controls.Put_IsPreviousEnabled(true)

	state.updater = state.controls.Get_DisplayUpdater()
	if state.updater != nil {
		state.updater.Put_Type(winrt.MediaPlaybackType_Music)
		state.updater.Put_AppMediaId(appMediaID)
		state.musicProps = state.updater.Get_MusicProperties()
		if state.musicProps != nil {
			var musicProps2 *winrt.IMusicDisplayProperties2
			queryHR := state.musicProps.QueryInterface(&winrt.IID_IMusicDisplayProperties2, unsafe.Pointer(&musicProps2))
			if !win32.FAILED(queryHR) && musicProps2 != nil {
				com.AddToScope(musicProps2)
				state.musicProps2 = musicProps2
			}
		}
		state.updater.Update()
	}

	state.buttonToken = state.controls.Add_ButtonPressed(state.onButtonPressed)
	state.hookAttached = true

	return state, nil
}

func (s *runtimeState) shutdown() {
	if s.controls == nil {
		return
	}

	if s.hookAttached {
		s.controls.Remove_ButtonPressed(s.buttonToken)
	}

	s.controls.Put_IsEnabled(false)
}

func (s *runtimeState) apply(state mediastate.Snapshot) {
	if s.controls == nil {
		return
	}

	if state.Playing {
		s.controls.Put_PlaybackStatus(winrt.MediaPlaybackStatus_Playing)
	} else {
		s.controls.Put_PlaybackStatus(winrt.MediaPlaybackStatus_Paused)
	}

	hasTrack := strings.TrimSpace(state.Title) != ""
	if !hasTrack {
		s.applyEmptyTrack()
		return
	}

	key := state.Title + "\x00" + state.Artist
	if !s.hasTrack || s.lastTrackKey != key {
		s.applyMetadata(state)
		s.hasTrack = true
		s.lastTrackKey = key
	}
}

func (s *runtimeState) applyEmptyTrack() {
	if !s.hasTrack {
		return
	}

	s.hasTrack = false
	s.lastTrackKey = ""

	if s.updater == nil {
		return
	}

	s.updater.ClearAll()
	s.updater.Put_Type(winrt.MediaPlaybackType_Music)
	s.updater.Put_AppMediaId(appMediaID)
	s.updater.Update()
}

func (s *runtimeState) applyMetadata(state mediastate.Snapshot) {
	if s.updater == nil {
		return
	}

	s.updater.Put_Type(winrt.MediaPlaybackType_Music)
	s.updater.Put_AppMediaId(appMediaID)

	if s.musicProps != nil {
		title := normalizeLabel(state.Title, "Unknown Title")
		artist := normalizeLabel(state.Artist, "Unknown Artist")

		s.musicProps.Put_Title(title)
		s.musicProps.Put_Artist(artist)
		s.musicProps.Put_AlbumArtist(artist)
	}

	if s.musicProps2 != nil {
		s.musicProps2.Put_AlbumTitle(normalizeLabel(state.Album, "Unknown Album"))
	}

	s.updater.Update()
}

func (s *runtimeState) onButtonPressed(
	_ *winrt.ISystemMediaTransportControls,
	args *winrt.ISystemMediaTransportControlsButtonPressedEventArgs,
) com.Error {
	if s.commands == nil || args == nil {
		return com.OK
	}

	// The page owns play/pause state, so both buttons map onto the same
	// toggle command.
	switch args.Get_Button() {
	case winrt.SystemMediaTransportControlsButton_Play:
		go s.commands.PlayPause()
	case winrt.SystemMediaTransportControlsButton_Pause:
		go s.commands.PlayPause()
	case winrt.SystemMediaTransportControlsButton_Next:
		go s.commands.Next()
	case winrt.SystemMediaTransportControlsButton_Previous:
		go s.commands.Previous()
	}

	return com.OK
}

func normalizeLabel(value string, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}

	return trimmed
}
