package services

import (
  _ "embed"
  "fmt"
  "gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var promptsYAML []byte

// Prompt is one task a player can be handed when starting an activity.
type Prompt struct {
  ID         int    `json:"id" yaml:"-"`
  Text       string `json:"text" yaml:"text"`
  Difficulty string `json:"difficulty" yaml:"difficulty"`
}

// PromptCatalog holds the per location/activity prompt sets loaded from
// the embedded catalog at startup.
type PromptCatalog struct {
  sets map[string][]Prompt
}

func LoadPromptCatalog() (*PromptCatalog, error) {
  var raw map[string]map[string][]Prompt
  if err := yaml.Unmarshal(promptsYAML, &raw); err != nil {
    return nil, fmt.Errorf("parse prompt catalog: %w", err)
  }

  catalog := &PromptCatalog{sets: map[string][]Prompt{}}
  for location, activities := range raw {
    for activity, prompts := range activities {
      for i := range prompts {
        prompts[i].ID = i
      }
      catalog.sets[promptKey(location, activity)] = prompts
    }
  }
  return catalog, nil
}

// Random picks a prompt for the location/activity pair. Unknown pairs
// fall back to a generic normal-difficulty task.
func (pc *PromptCatalog) Random(location, activity string, roll float64) Prompt {
  prompts := pc.sets[promptKey(location, activity)]
  if len(prompts) == 0 {
    return Prompt{
      ID:         -1,
      Text:       fmt.Sprintf("Perform tasks at the %s.", location),
      Difficulty: "normal",
    }
  }
  idx := int(roll * float64(len(prompts)))
  if idx >= len(prompts) {
    idx = len(prompts) - 1
  }
  return prompts[idx]
}

// ByID resolves a previously issued prompt, used when completing a
// session to recover its difficulty.
func (pc *PromptCatalog) ByID(location, activity string, id int) (Prompt, bool) {
  prompts := pc.sets[promptKey(location, activity)]
  if id < 0 || id >= len(prompts) {
    return Prompt{}, false
  }
  return prompts[id], true
}

func promptKey(location, activity string) string {
  return location + "/" + activity
}
