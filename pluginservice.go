package main

import (
	"fmt"
	"slices"

	"strum/internal/config"
	"strum/internal/plugin"
)

// PluginService exposes plugin state to the page over the wails service
// bridge.
type PluginService struct {
	registry *plugin.Registry
	store    *config.Store
}

func NewPluginService(registry *plugin.Registry, store *config.Store) *PluginService {
	return &PluginService{registry: registry, store: store}
}

func (s *PluginService) List() []plugin.Descriptor {
	return s.registry.List()
}

func (s *PluginService) SetEnabled(name string, enabled bool) error {
	if !slices.Contains(s.registry.AvailableNames(), name) {
		return fmt.Errorf("plugin %q does not exist", name)
	}

	if enabled {
		return s.store.Enable(name)
	}
	return s.store.Disable(name)
}
