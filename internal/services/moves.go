package services

import (
  _ "embed"
  "encoding/json"
  "gopkg.in/yaml.v3"
  "gorm.io/datatypes"
)

//go:embed moves.yaml
var movesYAML []byte

// moveCatalog groups the learnable move pool by elemental type and, for
// species that carry one, by attribute.
type moveCatalog struct {
  Types      map[string][]string `yaml:"types"`
  Attributes map[string][]string `yaml:"attributes"`
  Generic    []string            `yaml:"generic"`
}

var moveTable = loadMoveCatalog()

func loadMoveCatalog() *moveCatalog {
  catalog := &moveCatalog{}
  if err := yaml.Unmarshal(movesYAML, catalog); err != nil {
    // The catalog is embedded at build time; an unparsable one still
    // leaves the Tackle fallback in movesFor.
    return &moveCatalog{}
  }
  return catalog
}

// moveCountForLevel is how many moves a monster of the given level
// knows: one, plus one more per five levels.
func moveCountForLevel(level int) int {
  count := level/5 + 1
  if count < 1 {
    count = 1
  }
  return count
}

// movesFor draws count moves biased toward the monster's own kit: 85%
// a move sharing one of its types, 10% a move sharing its attribute,
// 5% anything at all.
func movesFor(rng randSource, type1, type2, attribute string, count int) []string {
  moves := make([]string, 0, count)
  for i := 0; i < count; i++ {
    roll := rng.Float64() * 100
    var move string
    switch {
    case roll <= 85:
      move = pickTypeMove(rng, type1, type2)
      if move == "" {
        move = pickFrom(rng, moveTable.Attributes[attribute])
      }
    case roll <= 95:
      move = pickFrom(rng, moveTable.Attributes[attribute])
    }
    if move == "" {
      move = pickFrom(rng, moveTable.Generic)
    }
    if move == "" {
      move = "Tackle"
    }
    moves = append(moves, move)
  }
  return moves
}

func pickTypeMove(rng randSource, type1, type2 string) string {
  ownTypes := make([]string, 0, 2)
  if type1 != "" {
    ownTypes = append(ownTypes, type1)
  }
  if type2 != "" {
    ownTypes = append(ownTypes, type2)
  }
  if len(ownTypes) == 0 {
    return ""
  }
  return pickFrom(rng, moveTable.Types[ownTypes[rng.Intn(len(ownTypes))]])
}

func pickFrom(rng randSource, pool []string) string {
  if len(pool) == 0 {
    return ""
  }
  return pool[rng.Intn(len(pool))]
}

func marshalMoveset(moves []string) datatypes.JSON {
  raw, err := json.Marshal(moves)
  if err != nil {
    return datatypes.JSON([]byte("[]"))
  }
  return datatypes.JSON(raw)
}

func decodeMoveset(raw datatypes.JSON) []string {
  var moves []string
  if len(raw) == 0 || json.Unmarshal(raw, &moves) != nil {
    return nil
  }
  return moves
}
