package domain

import "context"

// RecipeCatalog is the remote store of dishes and their recipes. The HTTP
// client is the production implementation; an in-memory catalog backs the
// stub server and tests.
type RecipeCatalog interface {
	ListDishes(ctx context.Context) ([]Dish, error)
	CreateDish(ctx context.Context, name string) (*Dish, error)
	RenameDish(ctx context.Context, dishID int, name string) (*Dish, error)
	DeleteDish(ctx context.Context, dishID int) error

	ListRecipes(ctx context.Context, dishID int) ([]RecipeSummary, error)
	GetRecipe(ctx context.Context, dishID, recipeID int) (*Recipe, error)
	CreateRecipe(ctx context.Context, dishID int, draft Recipe) (*Recipe, error)
	UpdateRecipe(ctx context.Context, recipeID int, r Recipe) (*Recipe, error)
	DeleteRecipe(ctx context.Context, recipeID int) error

	// ImportFromURL and ImportFromImage ask the catalog to extract a recipe
	// and store it under the dish. They return the stored recipe.
	ImportFromURL(ctx context.Context, dishID int, url string) (*Recipe, error)
	ImportFromImage(ctx context.Context, dishID int, filename string, data []byte) (*Recipe, error)
}

// AffinityCatalog serves the ingredient pairing data.
type AffinityCatalog interface {
	ListIngredients(ctx context.Context) ([]IngredientSummary, error)
	GetIngredient(ctx context.Context, id int) (*IngredientDetail, error)
}

// Notifier delivers messages to the user. NotifyUrgent is used for failure
// alerts that must interrupt whatever the user is looking at.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}

// CommandParser converts a line typed in the draft editor into a Command.
type CommandParser interface {
	Parse(input string) Command
}
