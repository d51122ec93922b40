package console

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/hammamikhairi/recipedesk/internal/domain"
)

// Run executes a draft editor command. Indices in cmd.Args are 1-based.
// Help and unknown commands are rejected with ErrInvalidInput; the caller
// renders help itself.
func (b *Browser) Run(ctx context.Context, cmd domain.Command) error {
	a := args(cmd.Args)

	switch cmd.Type {
	case domain.CommandTitle:
		title := a.str(0)
		return b.Edit(func(r domain.Recipe) (domain.Recipe, error) { return SetTitle(r, title), nil })

	case domain.CommandAddComponent:
		return b.Edit(func(r domain.Recipe) (domain.Recipe, error) { return AddComponent(r), nil })

	case domain.CommandRenameComponent:
		c, err := a.index(0)
		if err != nil {
			return err
		}
		name := a.str(1)
		return b.Edit(func(r domain.Recipe) (domain.Recipe, error) { return SetComponentName(r, c, name) })

	case domain.CommandRemoveComponent:
		c, err := a.index(0)
		if err != nil {
			return err
		}
		return b.Edit(func(r domain.Recipe) (domain.Recipe, error) { return RemoveComponent(r, c) })

	case domain.CommandAddIngredient:
		c, err := a.index(0)
		if err != nil {
			return err
		}
		return b.Edit(func(r domain.Recipe) (domain.Recipe, error) { return AddIngredient(r, c) })

	case domain.CommandSetIngredient:
		return b.setIngredient(a)

	case domain.CommandRemoveIngredient:
		c, i, err := a.pair()
		if err != nil {
			return err
		}
		return b.Edit(func(r domain.Recipe) (domain.Recipe, error) { return RemoveIngredient(r, c, i) })

	case domain.CommandAddStep:
		c, err := a.index(0)
		if err != nil {
			return err
		}
		return b.Edit(func(r domain.Recipe) (domain.Recipe, error) { return AddInstruction(r, c) })

	case domain.CommandSetStep:
		c, s, err := a.pair()
		if err != nil {
			return err
		}
		text := a.str(2)
		return b.Edit(func(r domain.Recipe) (domain.Recipe, error) { return SetInstructionText(r, c, s, text) })

	case domain.CommandRemoveStep:
		c, s, err := a.pair()
		if err != nil {
			return err
		}
		return b.Edit(func(r domain.Recipe) (domain.Recipe, error) { return RemoveInstruction(r, c, s) })

	case domain.CommandRenumber:
		c, err := a.index(0)
		if err != nil {
			return err
		}
		return b.Edit(func(r domain.Recipe) (domain.Recipe, error) { return Renumber(r, c) })

	case domain.CommandUndo:
		return b.Undo()
	case domain.CommandScrap:
		return b.Scrap()
	case domain.CommandSave:
		return b.SubmitDraft(ctx)
	case domain.CommandClose:
		return b.CloseDraft()

	case domain.CommandImportURL:
		return b.ImportURL(ctx, a.str(0))

	case domain.CommandImportImage:
		path := a.str(0)
		if path == "" {
			return fmt.Errorf("image path is empty: %w", domain.ErrInvalidInput)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, domain.ErrInvalidInput)
		}
		return b.ImportImage(ctx, path, data)
	}

	return fmt.Errorf("command %s: %w", cmd.Type, domain.ErrInvalidInput)
}

func (b *Browser) setIngredient(a args) error {
	c, i, err := a.pair()
	if err != nil {
		return err
	}
	value := a.str(3)

	switch field := a.str(2); field {
	case "name":
		return b.Edit(func(r domain.Recipe) (domain.Recipe, error) { return SetIngredientName(r, c, i, value) })
	case "unit":
		return b.Edit(func(r domain.Recipe) (domain.Recipe, error) { return SetIngredientUnit(r, c, i, value) })
	case "qty", "quantity":
		q, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("quantity %q: %w", value, domain.ErrInvalidInput)
		}
		return b.Edit(func(r domain.Recipe) (domain.Recipe, error) { return SetIngredientQuantity(r, c, i, q) })
	default:
		return fmt.Errorf("ingredient field %q: %w", field, domain.ErrInvalidInput)
	}
}

type args []string

func (a args) str(n int) string {
	if n < len(a) {
		return a[n]
	}
	return ""
}

// index converts the 1-based argument n to a 0-based index.
func (a args) index(n int) (int, error) {
	v, err := strconv.Atoi(a.str(n))
	if err != nil || v < 1 {
		return 0, fmt.Errorf("index %q: %w", a.str(n), domain.ErrInvalidInput)
	}
	return v - 1, nil
}

func (a args) pair() (int, int, error) {
	x, err := a.index(0)
	if err != nil {
		return 0, 0, err
	}
	y, err := a.index(1)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
