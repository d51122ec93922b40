package domain

import (
	"encoding/json"
	"fmt"
)

// IngredientSummary is one entry of the ingredient index.
type IngredientSummary struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// IngredientDetail is the pairing sheet for one ingredient.
type IngredientDetail struct {
	ID         int      `json:"id"`
	Title      string   `json:"title"`
	Avoid      []string `json:"avoid"`
	Affinities []string `json:"affinities"`
	Matches    []Match  `json:"matches"`
}

// Match pairs an ingredient name with a compatibility score from 0 to 4.
// On the wire it is the two-element array [name, score].
type Match struct {
	Name  string
	Score int
}

// MarshalJSON encodes the match as [name, score].
func (m Match) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{m.Name, m.Score})
}

// UnmarshalJSON decodes the [name, score] tuple.
func (m *Match) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("match: %w", err)
	}
	if len(tuple) != 2 {
		return fmt.Errorf("match: want 2 elements, got %d", len(tuple))
	}
	if err := json.Unmarshal(tuple[0], &m.Name); err != nil {
		return fmt.Errorf("match name: %w", err)
	}
	var score float64
	if err := json.Unmarshal(tuple[1], &score); err != nil {
		return fmt.Errorf("match %q score: %w", m.Name, err)
	}
	m.Score = int(score)
	return nil
}
