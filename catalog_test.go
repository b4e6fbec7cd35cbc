package llmclient

import (
	"testing"
)

// TestCatalog_EmbeddedEntries tests that the embedded catalog loads and
// covers every declared provider kind
func TestCatalog_EmbeddedEntries(t *testing.T) {
	catalog := GetProviderCatalog()

	for _, kind := range []ProviderKind{
		ProviderOpenAI, ProviderAzure, ProviderAnthropic, ProviderQwen,
		ProviderZhipu, ProviderMoonshot, ProviderDeepSeek, ProviderOllama,
		ProviderCustom,
	} {
		entry, ok := catalog.Entry(kind)
		if !ok {
			t.Errorf("missing catalog entry for %q", kind)
			continue
		}
		if entry.DisplayName == "" {
			t.Errorf("empty display name for %q", kind)
		}
	}
}

// TestCatalog_NativeFlag tests that only openai is flagged native
func TestCatalog_NativeFlag(t *testing.T) {
	catalog := GetProviderCatalog()

	for _, kind := range catalog.Kinds() {
		entry, _ := catalog.Entry(kind)
		if entry.NativeSDK != kind.Native() {
			t.Errorf("catalog native flag for %q is %v, enum says %v",
				kind, entry.NativeSDK, kind.Native())
		}
	}
}

// TestCatalog_DefaultBaseURL tests default endpoint lookup
func TestCatalog_DefaultBaseURL(t *testing.T) {
	catalog := GetProviderCatalog()

	if got := catalog.DefaultBaseURL(ProviderDeepSeek); got != "https://api.deepseek.com/v1" {
		t.Errorf("unexpected deepseek default: %q", got)
	}
	if got := catalog.DefaultBaseURL(ProviderKind("unknown")); got != "" {
		t.Errorf("unknown kind should have no default, got %q", got)
	}
}

// TestSupportedProviders tests the kind -> display name table
func TestSupportedProviders(t *testing.T) {
	supported := SupportedProviders()
	if len(supported) < 9 {
		t.Fatalf("expected at least 9 providers, got %d", len(supported))
	}
	if supported["openai"] == "" {
		t.Error("openai display name missing")
	}
}

// TestCatalog_RegisterProviderEntry tests programmatic registration
func TestCatalog_RegisterProviderEntry(t *testing.T) {
	catalog := GetProviderCatalog()
	catalog.RegisterProviderEntry(ProviderKind("test-gateway"), ProviderEntry{
		DisplayName:    "Test Gateway",
		DefaultBaseURL: "http://localhost:9999/v1",
	})

	entry, ok := catalog.Entry(ProviderKind("test-gateway"))
	if !ok {
		t.Fatal("registered entry not found")
	}
	if entry.DisplayName != "Test Gateway" {
		t.Errorf("unexpected display name %q", entry.DisplayName)
	}
}
