package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hammamikhairi/recipedesk/internal/domain"
	"github.com/hammamikhairi/recipedesk/internal/logger"
)

func newTestMemory(opts ...MemoryOption) *MemoryCatalog {
	return NewMemoryCatalog(logger.New(logger.LevelOff, nil), opts...)
}

func TestMemoryCatalogSeed(t *testing.T) {
	m := newTestMemory()
	ctx := context.Background()

	dishes, err := m.ListDishes(ctx)
	if err != nil {
		t.Fatalf("list dishes: %v", err)
	}
	if len(dishes) != 3 {
		t.Fatalf("expected 3 dishes, got %d", len(dishes))
	}
	recipes, _ := m.ListRecipes(ctx, dishes[0].ID)
	if len(recipes) != 2 {
		t.Fatalf("expected 2 bread recipes, got %d", len(recipes))
	}
	ings, _ := m.ListIngredients(ctx)
	if len(ings) == 0 {
		t.Fatal("no ingredients seeded")
	}
}

func TestMemoryCatalogDishRules(t *testing.T) {
	m := newTestMemory(WithoutSeed())
	ctx := context.Background()

	d, err := m.CreateDish(ctx, "Soup")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := m.CreateDish(ctx, "Soup"); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("duplicate dish: got %v", err)
	}
	if _, err := m.CreateDish(ctx, "  "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("blank dish: got %v", err)
	}

	other, _ := m.CreateDish(ctx, "Stew")
	if _, err := m.RenameDish(ctx, other.ID, "Soup"); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("rename onto existing: got %v", err)
	}
	if _, err := m.RenameDish(ctx, 99, "X"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("rename missing: got %v", err)
	}

	if _, err := m.CreateRecipe(ctx, d.ID, domain.Recipe{Name: "Minestrone"}); err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	if err := m.DeleteDish(ctx, d.ID); !errors.Is(err, domain.ErrDishNotEmpty) {
		t.Fatalf("delete non-empty: got %v", err)
	}
	if err := m.DeleteDish(ctx, other.ID); err != nil {
		t.Fatalf("delete empty: %v", err)
	}
}

func TestMemoryCatalogRecipeLifecycle(t *testing.T) {
	m := newTestMemory(WithoutSeed())
	ctx := context.Background()
	d, _ := m.CreateDish(ctx, "Tart")

	draft := domain.Recipe{
		Name: "Plum",
		Components: []domain.Component{{
			Name:         "crust",
			Ingredients:  []domain.Ingredient{{Name: "flour", Quantity: 200, Unit: "g"}},
			Instructions: []domain.Instruction{{Step: 1, Text: "rub in butter"}},
		}},
	}
	created, err := m.CreateRecipe(ctx, d.ID, draft)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 || created.DishID != d.ID {
		t.Fatalf("created = %+v", created)
	}
	if _, err := m.CreateRecipe(ctx, d.ID, draft); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("duplicate recipe: got %v", err)
	}
	if _, err := m.CreateRecipe(ctx, 42, draft); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing dish: got %v", err)
	}

	got, err := m.GetRecipe(ctx, d.ID, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	want := draft
	want.ID, want.DishID = created.ID, d.ID
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Fatalf("stored recipe mismatch (-want +got):\n%s", diff)
	}

	// returned values are copies
	got.Components[0].Ingredients[0].Name = "sugar"
	again, _ := m.GetRecipe(ctx, d.ID, created.ID)
	if again.Components[0].Ingredients[0].Name != "flour" {
		t.Fatal("GetRecipe leaked internal state")
	}

	if _, err := m.GetRecipe(ctx, d.ID+1, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("wrong dish: got %v", err)
	}

	upd := *again
	upd.Name = "Plum and Almond"
	upd.DishID = 999
	saved, err := m.UpdateRecipe(ctx, created.ID, upd)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if saved.Name != "Plum and Almond" || saved.DishID != d.ID {
		t.Fatalf("updated = %+v", saved)
	}

	if err := m.DeleteRecipe(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := m.DeleteRecipe(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: got %v", err)
	}
	list, _ := m.ListRecipes(ctx, d.ID)
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %v", list)
	}
}

func TestMemoryCatalogImports(t *testing.T) {
	m := newTestMemory(WithoutSeed())
	ctx := context.Background()
	d, _ := m.CreateDish(ctx, "Tart")

	r, err := m.ImportFromURL(ctx, d.ID, "https://example.com/recipes/plum-tart")
	if err != nil {
		t.Fatalf("import url: %v", err)
	}
	if r.Name != "Plum Tart" {
		t.Errorf("name = %q", r.Name)
	}
	if _, err := m.ImportFromURL(ctx, d.ID, "not a url"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("bad url: got %v", err)
	}

	r, err = m.ImportFromImage(ctx, d.ID, "grandma_apple_pie.jpg", []byte{0xff})
	if err != nil {
		t.Fatalf("import image: %v", err)
	}
	if r.Name != "Grandma Apple Pie" {
		t.Errorf("name = %q", r.Name)
	}
	if _, err := m.ImportFromImage(ctx, d.ID, "scan.pdf", []byte{1}); !errors.Is(err, domain.ErrUnsupportedImage) {
		t.Errorf("pdf: got %v", err)
	}
}

func TestMemoryCatalogIngredientCopies(t *testing.T) {
	m := newTestMemory()
	ctx := context.Background()

	d, err := m.GetIngredient(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	d.Matches[0].Name = "changed"
	again, _ := m.GetIngredient(ctx, 1)
	if again.Matches[0].Name == "changed" {
		t.Fatal("GetIngredient leaked internal state")
	}
	if _, err := m.GetIngredient(ctx, 404); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing: got %v", err)
	}
}
