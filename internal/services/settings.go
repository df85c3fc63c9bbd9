package services

import (
  "encoding/json"
  "sort"
)

const SourceSettingsVersion = 2

// Known roll sources a user can enable. Order here is the canonical
// display order.
var KnownSources = []string{"pokemon", "digimon", "yokai", "nexomon", "pals", "fakemon"}

// SourceSettings is the versioned shape persisted on the user row. Older
// rows carry one of two legacy shapes (bare name->bool maps, or the same
// with "_enabled" suffixes); Parse migrates both in memory.
type SourceSettings struct {
  Version int             `json:"version"`
  Sources map[string]bool `json:"sources"`
}

// EnabledSources returns the enabled source names sorted in canonical
// order, falling back to pokemon when nothing is enabled.
func (s *SourceSettings) EnabledSources() []string {
  var enabled []string
  for _, name := range KnownSources {
    if s.Sources[name] {
      enabled = append(enabled, name)
    }
  }
  if len(enabled) == 0 {
    return []string{"pokemon"}
  }
  return enabled
}

// Has reports whether a single source is enabled, with the same
// pokemon fallback as EnabledSources.
func (s *SourceSettings) Has(source string) bool {
  for _, name := range s.EnabledSources() {
    if name == source {
      return true
    }
  }
  return false
}

// ParseSourceSettings decodes a stored settings document of any known
// shape into the current versioned form. Nil, empty, or unparseable
// input yields defaults (pokemon only).
func ParseSourceSettings(raw []byte) *SourceSettings {
  settings := &SourceSettings{
    Version: SourceSettingsVersion,
    Sources: map[string]bool{},
  }
  if len(raw) == 0 {
    settings.Sources["pokemon"] = true
    return settings
  }

  var versioned SourceSettings
  if err := json.Unmarshal(raw, &versioned); err == nil && versioned.Version == SourceSettingsVersion && versioned.Sources != nil {
    for name, on := range versioned.Sources {
      if knownSource(name) {
        settings.Sources[name] = on
      }
    }
    return settings
  }

  // Legacy rows: {"pokemon":true,...} or {"pokemon_enabled":true,...}.
  var legacy map[string]any
  if err := json.Unmarshal(raw, &legacy); err != nil {
    settings.Sources["pokemon"] = true
    return settings
  }
  for key, value := range legacy {
    on, ok := value.(bool)
    if !ok {
      continue
    }
    name := key
    if len(name) > len("_enabled") && name[len(name)-len("_enabled"):] == "_enabled" {
      name = name[:len(name)-len("_enabled")]
    }
    if knownSource(name) {
      settings.Sources[name] = on
    }
  }
  if len(settings.Sources) == 0 {
    settings.Sources["pokemon"] = true
  }
  return settings
}

// Marshal serializes settings in the current versioned shape with
// every known source stated explicitly.
func (s *SourceSettings) Marshal() ([]byte, error) {
  full := map[string]bool{}
  for _, name := range KnownSources {
    full[name] = s.Sources[name]
  }
  doc := SourceSettings{Version: SourceSettingsVersion, Sources: full}
  return json.Marshal(doc)
}

func knownSource(name string) bool {
  idx := sort.SearchStrings(sortedKnownSources, name)
  return idx < len(sortedKnownSources) && sortedKnownSources[idx] == name
}

var sortedKnownSources = func() []string {
  sorted := append([]string(nil), KnownSources...)
  sort.Strings(sorted)
  return sorted
}()
