package llmclient

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/providers.yaml
var providersYAML []byte

// Catalog Philosophy:
//
// The catalog provides PROVIDER METADATA for UX and defaults: display names
// for configuration screens and default base URLs for well-known services.
// It does NOT gate routing - the factory routes unrecognized kinds to the
// generic HTTP client regardless of catalog contents.
//
// The embedded data may lag behind the ecosystem. Library users can override
// it by calling LoadCatalogFromFile() with custom YAML or
// RegisterProviderEntry() programmatically.

// ProviderEntry describes one provider kind in the catalog.
type ProviderEntry struct {
	DisplayName    string `yaml:"display_name"`
	DefaultBaseURL string `yaml:"default_base_url"`
	NativeSDK      bool   `yaml:"native_sdk"`
}

// providerCatalogFile is the on-disk/embedded YAML schema.
type providerCatalogFile struct {
	Version     string                   `yaml:"version"`
	LastUpdated string                   `yaml:"last_updated"`
	Providers   map[string]ProviderEntry `yaml:"providers"`
}

// ProviderCatalog manages provider metadata.
type ProviderCatalog struct {
	entries map[string]ProviderEntry
	mu      sync.RWMutex
}

var (
	globalCatalog     *ProviderCatalog
	globalCatalogOnce sync.Once
)

// GetProviderCatalog returns the global provider catalog (singleton).
func GetProviderCatalog() *ProviderCatalog {
	globalCatalogOnce.Do(func() {
		globalCatalog = &ProviderCatalog{
			entries: make(map[string]ProviderEntry),
		}
		if err := globalCatalog.loadEmbedded(); err != nil {
			// Don't panic - lookups on an empty catalog just miss
			fmt.Fprintf(os.Stderr, "warning: failed to load embedded provider catalog: %v\n", err)
		}
	})
	return globalCatalog
}

func (c *ProviderCatalog) loadEmbedded() error {
	var file providerCatalogFile
	if err := yaml.Unmarshal(providersYAML, &file); err != nil {
		return fmt.Errorf("failed to unmarshal provider catalog: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for kind, entry := range file.Providers {
		c.entries[kind] = entry
	}
	return nil
}

// Entry returns the catalog entry for a provider kind.
func (c *ProviderCatalog) Entry(kind ProviderKind) (ProviderEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[kind.String()]
	return entry, ok
}

// DefaultBaseURL returns the catalog's default base URL for a kind, or ""
// when the kind is unknown or has no well-known endpoint.
func (c *ProviderCatalog) DefaultBaseURL(kind ProviderKind) string {
	entry, ok := c.Entry(kind)
	if !ok {
		return ""
	}
	return entry.DefaultBaseURL
}

// Kinds returns the cataloged provider kinds in sorted order.
func (c *ProviderCatalog) Kinds() []ProviderKind {
	c.mu.RLock()
	defer c.mu.RUnlock()

	kinds := make([]ProviderKind, 0, len(c.entries))
	for k := range c.entries {
		kinds = append(kinds, ProviderKind(k))
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// LoadCatalogFromFile merges provider entries from a YAML file into the
// catalog, overriding embedded entries with the same kind. The file format
// matches the embedded YAML structure.
func (c *ProviderCatalog) LoadCatalogFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read provider catalog file: %w", err)
	}

	var file providerCatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to unmarshal provider catalog: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for kind, entry := range file.Providers {
		c.entries[kind] = entry
	}
	return nil
}

// RegisterProviderEntry programmatically registers or replaces a catalog
// entry, for users that define providers in code rather than YAML.
func (c *ProviderCatalog) RegisterProviderEntry(kind ProviderKind, entry ProviderEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[kind.String()] = entry
}

// SupportedProviders returns kind -> display name for every cataloged
// provider, suitable for configuration UIs.
func SupportedProviders() map[string]string {
	catalog := GetProviderCatalog()
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()

	out := make(map[string]string, len(catalog.entries))
	for kind, entry := range catalog.entries {
		out[kind] = entry.DisplayName
	}
	return out
}

// LoadCatalogFromFile is a convenience function on the global catalog.
func LoadCatalogFromFile(path string) error {
	return GetProviderCatalog().LoadCatalogFromFile(path)
}
