package main

import (
	"errors"
	"strings"

	"strum/internal/config"
)

// ConfigService exposes the config store to the page over the wails service
// bridge.
type ConfigService struct {
	store *config.Store
}

func NewConfigService(store *config.Store) *ConfigService {
	return &ConfigService{store: store}
}

func (s *ConfigService) Get(path string) (any, error) {
	cleaned, err := normalizeConfigPath(path)
	if err != nil {
		return nil, err
	}
	return s.store.Get(cleaned), nil
}

func (s *ConfigService) Set(path string, value any) error {
	cleaned, err := normalizeConfigPath(path)
	if err != nil {
		return err
	}
	return s.store.Set(cleaned, value)
}

func normalizeConfigPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("config path is required")
	}
	return trimmed, nil
}
