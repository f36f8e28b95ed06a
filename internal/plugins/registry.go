package plugins

import (
	"sort"

	"github.com/rwx-research/testrig-cli/internal/errors"
)

// Registry is the static, ordered set of plugins testrig knows about.
type Registry struct {
	plugins []Plugin
}

// NewRegistry returns a registry of plugins, in the given order. Plugin names need to be unique.
func NewRegistry(plugins ...Plugin) (Registry, error) {
	seen := make(map[string]struct{}, len(plugins))

	for _, plugin := range plugins {
		if _, ok := seen[plugin.Name()]; ok {
			return Registry{}, errors.NewInternalError("plugin %q was registered twice", plugin.Name())
		}
		seen[plugin.Name()] = struct{}{}
	}

	return Registry{plugins: plugins}, nil
}

// All returns all plugins in registration order.
func (r Registry) All() []Plugin {
	return append([]Plugin(nil), r.plugins...)
}

// Lookup returns the plugin called name.
func (r Registry) Lookup(name string) (Plugin, bool) {
	for _, plugin := range r.plugins {
		if plugin.Name() == name {
			return plugin, true
		}
	}

	return nil, false
}

// Names returns the sorted names of all plugins.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r.plugins))
	for _, plugin := range r.plugins {
		names = append(names, plugin.Name())
	}
	sort.Strings(names)

	return names
}
