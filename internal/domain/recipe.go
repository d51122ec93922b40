// Package domain defines the core types and interfaces for the recipe console.
// All other packages depend on domain; domain depends on nothing.
package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Dish is a named category owning zero or more recipes.
type Dish struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RecipeSummary is a lightweight view of a recipe for listing.
type RecipeSummary struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Recipe is a full recipe as stored by the catalog. ID 0 marks an unsaved draft.
type Recipe struct {
	ID         int         `json:"id"`
	Name       string      `json:"name"`
	DishID     int         `json:"dish_id"`
	Components []Component `json:"components"`
}

// Component is a named sub-part of a recipe ("sauce", "garnish").
type Component struct {
	Name         string        `json:"name"`
	Ingredients  []Ingredient  `json:"ingredients"`
	Instructions []Instruction `json:"instructions"`
}

// Ingredient is a single line of a component's mise en place.
type Ingredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"` // free text: "g", "cups", ""
}

// Instruction is one ordered step of a component's method.
type Instruction struct {
	Step int    `json:"step"` // 1-based, not necessarily contiguous
	Text string `json:"text"`
}

// UnmarshalJSON accepts the quantity either as a number or as a numeric
// string. Strings that do not parse to a finite number decode as zero.
func (i *Ingredient) UnmarshalJSON(data []byte) error {
	type alias Ingredient // avoid recursion
	aux := &struct {
		Quantity json.RawMessage `json:"quantity"`
		*alias
	}{alias: (*alias)(i)}

	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}

	i.Quantity = 0
	raw := strings.TrimSpace(string(aux.Quantity))
	if raw == "" || raw == "null" {
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(aux.Quantity, &s); err != nil {
			return err
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			i.Quantity = f
		}
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("ingredient %q: quantity %s: %w", i.Name, raw, err)
	}
	i.Quantity = f
	return nil
}

// NewComponent returns a component with one blank ingredient row and one
// blank instruction (step 1).
func NewComponent() Component {
	return Component{
		Ingredients:  []Ingredient{{}},
		Instructions: []Instruction{{Step: 1}},
	}
}

// SortedInstructions returns the component's instructions ordered by step.
// Equal steps keep their relative order. The component is not modified.
func (c Component) SortedInstructions() []Instruction {
	out := make([]Instruction, len(c.Instructions))
	copy(out, c.Instructions)
	sort.SliceStable(out, func(a, b int) bool { return out[a].Step < out[b].Step })
	return out
}

// Normalized returns a copy of the recipe whose nil slices are replaced by
// empty ones, so the wire form carries [] instead of null.
func (r Recipe) Normalized() Recipe {
	out := r
	out.Components = make([]Component, len(r.Components))
	for i, c := range r.Components {
		if c.Ingredients == nil {
			c.Ingredients = []Ingredient{}
		}
		if c.Instructions == nil {
			c.Instructions = []Instruction{}
		}
		out.Components[i] = c
	}
	return out
}

// Summary returns the listing view of the recipe.
func (r Recipe) Summary() RecipeSummary {
	return RecipeSummary{ID: r.ID, Name: r.Name}
}
