package console

import (
	"fmt"
	"math"

	"github.com/hammamikhairi/recipedesk/internal/domain"
)

// The edit functions below never modify their input. Each returns a new
// recipe in which only the slices on the path to the edited leaf are
// copied; untouched components, ingredients and instructions share their
// backing arrays with the input. Indices are 0-based.

// Edit is a single draft transformation.
type Edit func(domain.Recipe) (domain.Recipe, error)

// SetTitle renames the recipe.
func SetTitle(r domain.Recipe, title string) domain.Recipe {
	r.Name = title
	return r
}

// AddComponent appends a component with one blank ingredient and one
// blank instruction (step 1).
func AddComponent(r domain.Recipe) domain.Recipe {
	comps := make([]domain.Component, len(r.Components), len(r.Components)+1)
	copy(comps, r.Components)
	r.Components = append(comps, domain.NewComponent())
	return r
}

// RemoveComponent drops component c.
func RemoveComponent(r domain.Recipe, c int) (domain.Recipe, error) {
	if err := checkIndex("component", c, len(r.Components)); err != nil {
		return r, err
	}
	r.Components = without(r.Components, c)
	return r, nil
}

// SetComponentName renames component c.
func SetComponentName(r domain.Recipe, c int, name string) (domain.Recipe, error) {
	return withComponent(r, c, func(comp domain.Component) (domain.Component, error) {
		comp.Name = name
		return comp, nil
	})
}

// AddIngredient appends a blank ingredient row to component c.
func AddIngredient(r domain.Recipe, c int) (domain.Recipe, error) {
	return withComponent(r, c, func(comp domain.Component) (domain.Component, error) {
		ings := make([]domain.Ingredient, len(comp.Ingredients), len(comp.Ingredients)+1)
		copy(ings, comp.Ingredients)
		comp.Ingredients = append(ings, domain.Ingredient{})
		return comp, nil
	})
}

// RemoveIngredient drops ingredient i of component c.
func RemoveIngredient(r domain.Recipe, c, i int) (domain.Recipe, error) {
	return withComponent(r, c, func(comp domain.Component) (domain.Component, error) {
		if err := checkIndex("ingredient", i, len(comp.Ingredients)); err != nil {
			return comp, err
		}
		comp.Ingredients = without(comp.Ingredients, i)
		return comp, nil
	})
}

// SetIngredientName sets the name of ingredient i of component c.
func SetIngredientName(r domain.Recipe, c, i int, name string) (domain.Recipe, error) {
	return withIngredient(r, c, i, func(ing *domain.Ingredient) { ing.Name = name })
}

// SetIngredientQuantity sets the quantity of ingredient i of component c.
func SetIngredientQuantity(r domain.Recipe, c, i int, qty float64) (domain.Recipe, error) {
	if qty < 0 || math.IsNaN(qty) || math.IsInf(qty, 0) {
		return r, fmt.Errorf("quantity %v: %w", qty, domain.ErrInvalidInput)
	}
	return withIngredient(r, c, i, func(ing *domain.Ingredient) { ing.Quantity = qty })
}

// SetIngredientUnit sets the unit of ingredient i of component c.
func SetIngredientUnit(r domain.Recipe, c, i int, unit string) (domain.Recipe, error) {
	return withIngredient(r, c, i, func(ing *domain.Ingredient) { ing.Unit = unit })
}

// AddInstruction appends a blank instruction to component c whose step is
// the current instruction count plus one.
func AddInstruction(r domain.Recipe, c int) (domain.Recipe, error) {
	return withComponent(r, c, func(comp domain.Component) (domain.Component, error) {
		ins := make([]domain.Instruction, len(comp.Instructions), len(comp.Instructions)+1)
		copy(ins, comp.Instructions)
		comp.Instructions = append(ins, domain.Instruction{Step: len(comp.Instructions) + 1})
		return comp, nil
	})
}

// RemoveInstruction drops instruction s of component c. Remaining steps
// keep their numbers.
func RemoveInstruction(r domain.Recipe, c, s int) (domain.Recipe, error) {
	return withComponent(r, c, func(comp domain.Component) (domain.Component, error) {
		if err := checkIndex("instruction", s, len(comp.Instructions)); err != nil {
			return comp, err
		}
		comp.Instructions = without(comp.Instructions, s)
		return comp, nil
	})
}

// SetInstructionText sets the text of instruction s of component c.
func SetInstructionText(r domain.Recipe, c, s int, text string) (domain.Recipe, error) {
	return withComponent(r, c, func(comp domain.Component) (domain.Component, error) {
		if err := checkIndex("instruction", s, len(comp.Instructions)); err != nil {
			return comp, err
		}
		ins := make([]domain.Instruction, len(comp.Instructions))
		copy(ins, comp.Instructions)
		ins[s].Text = text
		comp.Instructions = ins
		return comp, nil
	})
}

// Renumber orders the instructions of component c by step and renumbers
// them 1..n.
func Renumber(r domain.Recipe, c int) (domain.Recipe, error) {
	return withComponent(r, c, func(comp domain.Component) (domain.Component, error) {
		ins := comp.SortedInstructions()
		for i := range ins {
			ins[i].Step = i + 1
		}
		comp.Instructions = ins
		return comp, nil
	})
}

func withComponent(r domain.Recipe, c int, f func(domain.Component) (domain.Component, error)) (domain.Recipe, error) {
	if err := checkIndex("component", c, len(r.Components)); err != nil {
		return r, err
	}
	comp, err := f(r.Components[c])
	if err != nil {
		return r, err
	}
	comps := make([]domain.Component, len(r.Components))
	copy(comps, r.Components)
	comps[c] = comp
	r.Components = comps
	return r, nil
}

func withIngredient(r domain.Recipe, c, i int, set func(*domain.Ingredient)) (domain.Recipe, error) {
	return withComponent(r, c, func(comp domain.Component) (domain.Component, error) {
		if err := checkIndex("ingredient", i, len(comp.Ingredients)); err != nil {
			return comp, err
		}
		ings := make([]domain.Ingredient, len(comp.Ingredients))
		copy(ings, comp.Ingredients)
		set(&ings[i])
		comp.Ingredients = ings
		return comp, nil
	})
}

func checkIndex(what string, i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%s %d of %d: %w", what, i+1, n, domain.ErrIndexOutOfRange)
	}
	return nil
}

func without[T any](s []T, i int) []T {
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

// ── Draft ────────────────────────────────────────────────────────

const defaultUndoDepth = 64

// Draft is a recipe being edited, with undo history. Because edits share
// structure, keeping every past version is cheap. A Draft is not safe for
// concurrent use; the Browser guards it.
type Draft struct {
	base    domain.Recipe
	current domain.Recipe
	history []domain.Recipe
	depth   int
}

// NewDraft starts a draft from r. Reset returns to r.
func NewDraft(r domain.Recipe, depth int) *Draft {
	if depth <= 0 {
		depth = defaultUndoDepth
	}
	return &Draft{base: r, current: r, depth: depth}
}

// Recipe returns the current version.
func (d *Draft) Recipe() domain.Recipe { return d.current }

// Apply runs edit against the current version and records the previous
// one. A failing edit leaves the draft unchanged.
func (d *Draft) Apply(edit Edit) error {
	next, err := edit(d.current)
	if err != nil {
		return err
	}
	d.history = append(d.history, d.current)
	if len(d.history) > d.depth {
		d.history = d.history[len(d.history)-d.depth:]
	}
	d.current = next
	return nil
}

// Undo reverts the last edit. It reports false when there is nothing to undo.
func (d *Draft) Undo() bool {
	if len(d.history) == 0 {
		return false
	}
	d.current = d.history[len(d.history)-1]
	d.history = d.history[:len(d.history)-1]
	return true
}

// CanUndo reports whether Undo would change anything.
func (d *Draft) CanUndo() bool { return len(d.history) > 0 }

// Reset discards all edits. The reset itself can be undone.
func (d *Draft) Reset() {
	_ = d.Apply(func(domain.Recipe) (domain.Recipe, error) { return d.base, nil })
}

