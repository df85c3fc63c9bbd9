package services

import (
	"reflect"
	"testing"
)

func TestParseSourceSettings(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		enabled []string
	}{
		{
			name:    "empty document falls back to pokemon",
			raw:     "",
			enabled: []string{"pokemon"},
		},
		{
			name:    "versioned document",
			raw:     `{"version":2,"sources":{"pokemon":true,"digimon":true,"yokai":false}}`,
			enabled: []string{"pokemon", "digimon"},
		},
		{
			name:    "legacy bare map",
			raw:     `{"pokemon":true,"yokai":true}`,
			enabled: []string{"pokemon", "yokai"},
		},
		{
			name:    "legacy enabled-suffix map",
			raw:     `{"pokemon_enabled":false,"digimon_enabled":true}`,
			enabled: []string{"digimon"},
		},
		{
			name:    "legacy map with everything off falls back",
			raw:     `{"pokemon":false,"digimon":false}`,
			enabled: []string{"pokemon"},
		},
		{
			name:    "unknown keys are dropped",
			raw:     `{"pokemon":true,"chimera":true}`,
			enabled: []string{"pokemon"},
		},
		{
			name:    "garbage falls back to pokemon",
			raw:     `not json`,
			enabled: []string{"pokemon"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := ParseSourceSettings([]byte(tt.raw))
			if got := settings.EnabledSources(); !reflect.DeepEqual(got, tt.enabled) {
				t.Errorf("EnabledSources() = %v, want %v", got, tt.enabled)
			}
			if settings.Version != SourceSettingsVersion {
				t.Errorf("Version = %d, want %d", settings.Version, SourceSettingsVersion)
			}
		})
	}
}

func TestSourceSettingsRoundTrip(t *testing.T) {
	original := ParseSourceSettings([]byte(`{"digimon_enabled":true,"yokai_enabled":true}`))
	raw, err := original.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	reparsed := ParseSourceSettings(raw)
	if !reflect.DeepEqual(reparsed.EnabledSources(), original.EnabledSources()) {
		t.Errorf("round trip changed enabled sources: %v vs %v",
			reparsed.EnabledSources(), original.EnabledSources())
	}
}

func TestSourceSettingsHas(t *testing.T) {
	settings := ParseSourceSettings([]byte(`{"version":2,"sources":{"yokai":true}}`))
	if !settings.Has("yokai") {
		t.Error("Has(yokai) = false, want true")
	}
	if settings.Has("pokemon") {
		t.Error("Has(pokemon) = true, want false")
	}

	empty := ParseSourceSettings(nil)
	if !empty.Has("pokemon") {
		t.Error("default settings should enable pokemon")
	}
}
