//go:build !windows

package platform

import (
	"github.com/wailsapp/wails/v3/pkg/application"
)

type noopMediaService struct{}

func NewMediaService(_ *application.App, _ Controls) MediaService {
	return &noopMediaService{}
}

func (s *noopMediaService) Start() error {
	return nil
}

func (s *noopMediaService) Stop() error {
	return nil
}

func (s *noopMediaService) HandleNowPlaying(_ NowPlaying) {}
