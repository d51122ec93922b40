package catalog

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hammamikhairi/recipedesk/internal/domain"
	"github.com/hammamikhairi/recipedesk/internal/logger"
)

// Compile-time interface checks.
var (
	_ domain.RecipeCatalog   = (*MemoryCatalog)(nil)
	_ domain.AffinityCatalog = (*MemoryCatalog)(nil)
)

// MemoryOption configures a MemoryCatalog.
type MemoryOption func(*MemoryCatalog)

// WithoutSeed starts the catalog empty.
func WithoutSeed() MemoryOption {
	return func(m *MemoryCatalog) { m.seeded = false }
}

// MemoryCatalog holds dishes, recipes and pairing sheets in memory and
// enforces the same rules as the remote API: unique dish names, unique
// recipe names per dish, and no deleting a dish that still has recipes.
// Values are copied in and out. Safe for concurrent use.
type MemoryCatalog struct {
	mu          sync.RWMutex
	dishes      map[int]domain.Dish
	recipes     map[int]domain.Recipe
	ingredients map[int]domain.IngredientDetail
	nextDish    int
	nextRecipe  int
	seeded      bool
	log         *logger.Logger
}

// NewMemoryCatalog creates a catalog preloaded with a few dishes, recipes
// and ingredients.
func NewMemoryCatalog(log *logger.Logger, opts ...MemoryOption) *MemoryCatalog {
	m := &MemoryCatalog{
		dishes:      make(map[int]domain.Dish),
		recipes:     make(map[int]domain.Recipe),
		ingredients: make(map[int]domain.IngredientDetail),
		nextDish:    1,
		nextRecipe:  1,
		seeded:      true,
		log:         log,
	}
	for _, o := range opts {
		o(m)
	}
	if m.seeded {
		m.seed()
	}
	return m
}

// ── Dishes ───────────────────────────────────────────────────────

// ListDishes returns all dishes ordered by ID.
func (m *MemoryCatalog) ListDishes(ctx context.Context) ([]domain.Dish, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Dish, 0, len(m.dishes))
	for _, d := range m.dishes {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CreateDish adds a dish. Names must be unique.
func (m *MemoryCatalog) CreateDish(ctx context.Context, name string) (*domain.Dish, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("dish name: %w", domain.ErrInvalidInput)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.dishNamedLocked(name, 0) {
		return nil, fmt.Errorf("dish with name %q: %w", name, domain.ErrAlreadyExists)
	}
	d := domain.Dish{ID: m.nextDish, Name: name}
	m.nextDish++
	m.dishes[d.ID] = d
	m.log.Info("dish created: %s (#%d)", d.Name, d.ID)
	return &d, nil
}

// RenameDish changes a dish's name.
func (m *MemoryCatalog) RenameDish(ctx context.Context, dishID int, name string) (*domain.Dish, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("dish name: %w", domain.ErrInvalidInput)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.dishes[dishID]
	if !ok {
		return nil, fmt.Errorf("dish %d: %w", dishID, domain.ErrNotFound)
	}
	if m.dishNamedLocked(name, dishID) {
		return nil, fmt.Errorf("dish with name %q: %w", name, domain.ErrAlreadyExists)
	}
	d.Name = name
	m.dishes[dishID] = d
	m.log.Info("dish renamed: #%d -> %s", dishID, name)
	return &d, nil
}

// DeleteDish removes an empty dish.
func (m *MemoryCatalog) DeleteDish(ctx context.Context, dishID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.dishes[dishID]; !ok {
		return fmt.Errorf("dish %d: %w", dishID, domain.ErrNotFound)
	}
	for _, r := range m.recipes {
		if r.DishID == dishID {
			return fmt.Errorf("dish %d: %w", dishID, domain.ErrDishNotEmpty)
		}
	}
	delete(m.dishes, dishID)
	m.log.Info("dish deleted: #%d", dishID)
	return nil
}

func (m *MemoryCatalog) dishNamedLocked(name string, except int) bool {
	for id, d := range m.dishes {
		if id != except && d.Name == name {
			return true
		}
	}
	return false
}

// ── Recipes ──────────────────────────────────────────────────────

// ListRecipes returns the recipes of a dish ordered by ID. An unknown dish
// has no recipes.
func (m *MemoryCatalog) ListRecipes(ctx context.Context, dishID int) ([]domain.RecipeSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []domain.RecipeSummary{}
	for _, r := range m.recipes {
		if r.DishID == dishID {
			out = append(out, r.Summary())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetRecipe returns a copy of the recipe if it belongs to the dish.
func (m *MemoryCatalog) GetRecipe(ctx context.Context, dishID, recipeID int) (*domain.Recipe, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.recipes[recipeID]
	if !ok || r.DishID != dishID {
		return nil, fmt.Errorf("recipe %d in dish %d: %w", recipeID, dishID, domain.ErrNotFound)
	}
	out := cloneRecipe(r)
	return &out, nil
}

// CreateRecipe stores a new recipe under the dish.
func (m *MemoryCatalog) CreateRecipe(ctx context.Context, dishID int, draft domain.Recipe) (*domain.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createRecipeLocked(dishID, draft)
}

func (m *MemoryCatalog) createRecipeLocked(dishID int, draft domain.Recipe) (*domain.Recipe, error) {
	if _, ok := m.dishes[dishID]; !ok {
		return nil, fmt.Errorf("dish %d: %w", dishID, domain.ErrNotFound)
	}
	for _, r := range m.recipes {
		if r.DishID == dishID && r.Name == draft.Name {
			return nil, fmt.Errorf("recipe %q in dish %d: %w", draft.Name, dishID, domain.ErrAlreadyExists)
		}
	}

	r := cloneRecipe(draft.Normalized())
	r.ID = m.nextRecipe
	r.DishID = dishID
	m.nextRecipe++
	m.recipes[r.ID] = r
	m.log.Info("recipe created: %s (#%d, dish #%d)", r.Name, r.ID, dishID)

	out := cloneRecipe(r)
	return &out, nil
}

// UpdateRecipe replaces a recipe's name and components. The dish is kept.
func (m *MemoryCatalog) UpdateRecipe(ctx context.Context, recipeID int, upd domain.Recipe) (*domain.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.recipes[recipeID]
	if !ok {
		return nil, fmt.Errorf("recipe %d: %w", recipeID, domain.ErrNotFound)
	}
	r := cloneRecipe(upd.Normalized())
	r.ID = recipeID
	r.DishID = old.DishID
	m.recipes[recipeID] = r
	m.log.Info("recipe updated: %s (#%d)", r.Name, r.ID)

	out := cloneRecipe(r)
	return &out, nil
}

// DeleteRecipe removes a recipe.
func (m *MemoryCatalog) DeleteRecipe(ctx context.Context, recipeID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.recipes[recipeID]; !ok {
		return fmt.Errorf("recipe %d: %w", recipeID, domain.ErrNotFound)
	}
	delete(m.recipes, recipeID)
	m.log.Info("recipe deleted: #%d", recipeID)
	return nil
}

// ImportFromURL stores a placeholder recipe named after the page. No page
// is fetched.
func (m *MemoryCatalog) ImportFromURL(ctx context.Context, dishID int, pageURL string) (*domain.Recipe, error) {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("import url %q: %w", pageURL, domain.ErrInvalidInput)
	}
	slug := strings.Trim(path.Base(u.Path), "/")
	if slug == "" || slug == "." {
		slug = u.Host
	}
	name := titleFromSlug(slug)

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createRecipeLocked(dishID, extractedRecipe(name, "Read from "+u.Host))
}

// ImportFromImage stores a placeholder recipe named after the file. The
// image content is not inspected.
func (m *MemoryCatalog) ImportFromImage(ctx context.Context, dishID int, filename string, data []byte) (*domain.Recipe, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !imageExtensions[ext] {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedImage, filename)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("image %s is empty: %w", filename, domain.ErrInvalidInput)
	}
	name := titleFromSlug(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createRecipeLocked(dishID, extractedRecipe(name, fmt.Sprintf("Read from a %d byte photo", len(data))))
}

func extractedRecipe(name, note string) domain.Recipe {
	return domain.Recipe{
		Name: name,
		Components: []domain.Component{{
			Name:         "main",
			Ingredients:  []domain.Ingredient{{Name: "see source", Quantity: 1, Unit: ""}},
			Instructions: []domain.Instruction{{Step: 1, Text: note}},
		}},
	}
}

func titleFromSlug(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool { return r == '-' || r == '_' || r == ' ' || r == '.' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ── Ingredients ──────────────────────────────────────────────────

// ListIngredients returns the ingredient index ordered by ID.
func (m *MemoryCatalog) ListIngredients(ctx context.Context) ([]domain.IngredientSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.IngredientSummary, 0, len(m.ingredients))
	for _, d := range m.ingredients {
		out = append(out, domain.IngredientSummary{ID: d.ID, Title: d.Title})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetIngredient returns a copy of one pairing sheet.
func (m *MemoryCatalog) GetIngredient(ctx context.Context, id int) (*domain.IngredientDetail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.ingredients[id]
	if !ok {
		return nil, fmt.Errorf("ingredient %d: %w", id, domain.ErrNotFound)
	}
	out := domain.IngredientDetail{
		ID:         d.ID,
		Title:      d.Title,
		Avoid:      append([]string{}, d.Avoid...),
		Affinities: append([]string{}, d.Affinities...),
		Matches:    append([]domain.Match{}, d.Matches...),
	}
	return &out, nil
}

// PutIngredient adds or replaces a pairing sheet.
func (m *MemoryCatalog) PutIngredient(d domain.IngredientDetail) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ingredients[d.ID] = d
}

func cloneRecipe(r domain.Recipe) domain.Recipe {
	out := r
	out.Components = make([]domain.Component, len(r.Components))
	for i, c := range r.Components {
		c.Ingredients = append([]domain.Ingredient{}, c.Ingredients...)
		c.Instructions = append([]domain.Instruction{}, c.Instructions...)
		out.Components[i] = c
	}
	return out
}
