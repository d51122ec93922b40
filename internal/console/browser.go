package console

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/hammamikhairi/recipedesk/internal/domain"
	"github.com/hammamikhairi/recipedesk/internal/logger"
)

// BrowserView is a snapshot of the browser for rendering.
type BrowserView struct {
	State   domain.BrowserState
	Query   string
	Dishes  []domain.Dish          // dishes matching Query
	Recipes []domain.RecipeSummary // recipes of Dish matching Query
	Dish    *domain.Dish
	Recipe  *domain.Recipe
	Draft   *domain.Recipe

	CanUndo     bool
	DeleteArmed bool
	Importing   bool
	Saving      bool
	Loading     bool
}

// Browser is the recipe panel: dish search, recipe search, recipe detail
// and the draft editor for creating and editing recipes.
type Browser struct {
	recipes   domain.RecipeCatalog
	notifier  domain.Notifier
	shell     Activator
	log       *logger.Logger
	undoDepth int

	mu         sync.Mutex
	state      domain.BrowserState
	dishes     []domain.Dish
	recipeList []domain.RecipeSummary
	query      string
	dish       *domain.Dish
	recipe     *domain.Recipe
	draft      *Draft
	drafts     map[int]*Draft // unsaved create drafts by dish ID
	sel        selection

	deleteArmed bool
	importing   bool
	saving      bool
	loading     bool // selection fetch in flight
	listing     bool // dish list fetch in flight
}

// NewBrowser creates a browser in DishSearch.
func NewBrowser(recipes domain.RecipeCatalog, notifier domain.Notifier, shell Activator, log *logger.Logger) *Browser {
	return &Browser{
		recipes:   recipes,
		notifier:  notifier,
		shell:     shell,
		log:       log,
		undoDepth: defaultUndoDepth,
		state:     domain.BrowserDishSearch,
		drafts:    make(map[int]*Draft),
	}
}

// View returns a snapshot of the browser.
func (b *Browser) View() BrowserView {
	b.mu.Lock()
	defer b.mu.Unlock()

	v := BrowserView{
		State:       b.state,
		Query:       b.query,
		Dish:        b.dish,
		Recipe:      b.recipe,
		DeleteArmed: b.deleteArmed,
		Importing:   b.importing,
		Saving:      b.saving,
		Loading:     b.loading || b.listing,
	}
	switch b.state {
	case domain.BrowserDishSearch, domain.BrowserDishCreate:
		v.Dishes = Filter(b.dishes, b.query, func(d domain.Dish) string { return d.Name })
	case domain.BrowserRecipeSearch:
		v.Recipes = Filter(b.recipeList, b.query, func(r domain.RecipeSummary) string { return r.Name })
	}
	if b.draft != nil {
		r := b.draft.Recipe()
		v.Draft = &r
		v.CanUndo = b.draft.CanUndo()
	}
	return v
}

// State returns the current state.
func (b *Browser) State() domain.BrowserState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// RecipeList returns the unfiltered recipe list of the selected dish.
func (b *Browser) RecipeList() []domain.RecipeSummary {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]domain.RecipeSummary(nil), b.recipeList...)
}

// ── Lists and search ─────────────────────────────────────────────

// LoadDishes replaces the dish list.
func (b *Browser) LoadDishes(ctx context.Context) error {
	b.mu.Lock()
	b.listing = true
	b.mu.Unlock()

	list, err := b.recipes.ListDishes(ctx)

	b.mu.Lock()
	b.listing = false
	if err == nil {
		b.dishes = list
	}
	b.mu.Unlock()

	if err != nil {
		return report(ctx, b.notifier, b.log, "load dishes", alertLoadDishes, err)
	}
	b.log.Debug("browser: %d dishes loaded", len(list))
	return nil
}

// SetQuery updates the search text and marks the recipe panel active.
func (b *Browser) SetQuery(q string) {
	b.mu.Lock()
	b.query = q
	b.navigateLocked()
	b.mu.Unlock()

	b.shell.Activate(domain.PanelRecipe)
}

// SelectDish opens a dish and fetches its recipes.
func (b *Browser) SelectDish(ctx context.Context, dish domain.Dish) error {
	b.mu.Lock()
	if b.state != domain.BrowserDishSearch && b.state != domain.BrowserDishCreate {
		st := b.state
		b.mu.Unlock()
		return fmt.Errorf("select dish in %s: %w", st, domain.ErrInvalidState)
	}
	fetchCtx, gen := b.sel.begin(ctx)
	b.loading = true
	b.mu.Unlock()

	b.shell.Activate(domain.PanelRecipe)
	list, err := b.recipes.ListRecipes(fetchCtx, dish.ID)

	b.mu.Lock()
	if !b.sel.current(gen) {
		b.mu.Unlock()
		b.log.Debug("browser: dropped recipe list for dish %d", dish.ID)
		return domain.ErrSuperseded
	}
	b.sel.finish(gen)
	b.loading = false
	if err != nil {
		b.mu.Unlock()
		return report(ctx, b.notifier, b.log, "select dish", alertLoadRecipes, err)
	}
	b.state = domain.BrowserRecipeSearch
	b.dish = &dish
	b.recipeList = list
	b.query = ""
	b.mu.Unlock()

	b.log.Info("browser: dish %q opened (%d recipes)", dish.Name, len(list))
	return nil
}

// Back moves one level up. In the editors it behaves like CloseDraft or
// cancelling the new dish.
func (b *Browser) Back() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case domain.BrowserRecipeSearch:
		b.state = domain.BrowserDishSearch
		b.dish = nil
		b.recipeList = nil
		b.query = ""
	case domain.BrowserRecipeDetail:
		b.state = domain.BrowserRecipeSearch
		b.recipe = nil
		b.deleteArmed = false
	case domain.BrowserDishCreate:
		b.state = domain.BrowserDishSearch
	case domain.BrowserRecipeCreate, domain.BrowserRecipeEdit:
		b.closeDraftLocked()
	default:
		return fmt.Errorf("back from %s: %w", b.state, domain.ErrInvalidState)
	}
	b.navigateLocked()
	return nil
}

// SelectRecipe opens the full recipe.
func (b *Browser) SelectRecipe(ctx context.Context, summary domain.RecipeSummary) error {
	b.mu.Lock()
	if b.state != domain.BrowserRecipeSearch || b.dish == nil {
		st := b.state
		b.mu.Unlock()
		return fmt.Errorf("select recipe in %s: %w", st, domain.ErrInvalidState)
	}
	dishID := b.dish.ID
	fetchCtx, gen := b.sel.begin(ctx)
	b.loading = true
	b.mu.Unlock()

	r, err := b.recipes.GetRecipe(fetchCtx, dishID, summary.ID)

	b.mu.Lock()
	if !b.sel.current(gen) {
		b.mu.Unlock()
		b.log.Debug("browser: dropped recipe %d", summary.ID)
		return domain.ErrSuperseded
	}
	b.sel.finish(gen)
	b.loading = false
	if err != nil {
		b.mu.Unlock()
		return report(ctx, b.notifier, b.log, "select recipe", alertLoadRecipe, err)
	}
	b.state = domain.BrowserRecipeDetail
	b.recipe = r
	b.deleteArmed = false
	b.mu.Unlock()

	b.log.Info("browser: recipe %q opened", r.Name)
	return nil
}

// ── Delete ───────────────────────────────────────────────────────

// Delete removes the open recipe in two steps: the first call arms the
// confirmation, the second deletes and returns to the refreshed list.
func (b *Browser) Delete(ctx context.Context) error {
	b.mu.Lock()
	if b.state != domain.BrowserRecipeDetail || b.recipe == nil {
		st := b.state
		b.mu.Unlock()
		return fmt.Errorf("delete in %s: %w", st, domain.ErrInvalidState)
	}
	if !b.deleteArmed {
		b.deleteArmed = true
		b.mu.Unlock()
		return nil
	}
	b.deleteArmed = false
	recipeID, dishID := b.recipe.ID, b.dish.ID
	gen := b.sel.gen
	b.mu.Unlock()

	if err := b.recipes.DeleteRecipe(ctx, recipeID); err != nil {
		return report(ctx, b.notifier, b.log, "delete recipe", alertDeleteRecipe, err)
	}
	b.log.Info("browser: recipe %d deleted", recipeID)

	list, err := b.recipes.ListRecipes(ctx, dishID)

	b.mu.Lock()
	if !b.refreshedLocked(gen, dishID, list, err) {
		b.mu.Unlock()
		return domain.ErrSuperseded
	}
	b.state = domain.BrowserRecipeSearch
	b.recipe = nil
	b.mu.Unlock()

	if err != nil {
		return report(ctx, b.notifier, b.log, "refresh recipes", alertLoadRecipes, err)
	}
	return nil
}

// CancelDelete disarms a pending delete confirmation.
func (b *Browser) CancelDelete() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deleteArmed = false
}

// ── Drafts ───────────────────────────────────────────────────────

// BeginCreateRecipe opens the draft editor for a new recipe in the current
// dish. An unsaved draft left for this dish is resumed.
func (b *Browser) BeginCreateRecipe() error {
	b.mu.Lock()
	if b.state != domain.BrowserRecipeSearch || b.dish == nil {
		st := b.state
		b.mu.Unlock()
		return fmt.Errorf("create recipe in %s: %w", st, domain.ErrInvalidState)
	}
	d, ok := b.drafts[b.dish.ID]
	if !ok {
		d = NewDraft(domain.Recipe{DishID: b.dish.ID}, b.undoDepth)
		b.drafts[b.dish.ID] = d
	}
	b.draft = d
	b.state = domain.BrowserRecipeCreate
	b.navigateLocked()
	b.mu.Unlock()

	b.shell.Activate(domain.PanelRecipe)
	return nil
}

// BeginEdit opens the draft editor on a copy of the open recipe.
func (b *Browser) BeginEdit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != domain.BrowserRecipeDetail || b.recipe == nil {
		return fmt.Errorf("edit in %s: %w", b.state, domain.ErrInvalidState)
	}
	b.draft = NewDraft(*b.recipe, b.undoDepth)
	b.state = domain.BrowserRecipeEdit
	b.deleteArmed = false
	b.navigateLocked()
	return nil
}

// Edit applies an edit to the open draft.
func (b *Browser) Edit(edit Edit) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.editableLocked("edit draft"); err != nil {
		return err
	}
	return b.draft.Apply(edit)
}

// Undo reverts the last draft edit.
func (b *Browser) Undo() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.editableLocked("undo"); err != nil {
		return err
	}
	if !b.draft.Undo() {
		return fmt.Errorf("nothing to undo: %w", domain.ErrInvalidState)
	}
	return nil
}

// Scrap resets the draft: a new recipe goes back to blank, an edit goes
// back to the stored recipe.
func (b *Browser) Scrap() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.editableLocked("scrap"); err != nil {
		return err
	}
	b.draft.Reset()
	return nil
}

// CloseDraft leaves the editor. A new-recipe draft is kept for the dish;
// an edit draft is discarded.
func (b *Browser) CloseDraft() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.state.Drafting() {
		return fmt.Errorf("close draft in %s: %w", b.state, domain.ErrInvalidState)
	}
	b.closeDraftLocked()
	b.navigateLocked()
	return nil
}

// editableLocked refuses draft changes when no editor is open or while
// the draft is being saved.
func (b *Browser) editableLocked(op string) error {
	if !b.state.Drafting() || b.draft == nil {
		return fmt.Errorf("%s in %s: %w", op, b.state, domain.ErrInvalidState)
	}
	if b.saving {
		return fmt.Errorf("%s while saving: %w", op, domain.ErrBusy)
	}
	return nil
}

func (b *Browser) closeDraftLocked() {
	if b.state == domain.BrowserRecipeEdit {
		b.state = domain.BrowserRecipeDetail
	} else {
		b.state = domain.BrowserRecipeSearch
	}
	b.draft = nil
}

// SubmitDraft saves the draft: POST for a new recipe, PUT for an edit.
// On failure the editor stays open with the draft intact.
func (b *Browser) SubmitDraft(ctx context.Context) error {
	b.mu.Lock()
	if !b.state.Drafting() || b.draft == nil {
		st := b.state
		b.mu.Unlock()
		return fmt.Errorf("submit in %s: %w", st, domain.ErrInvalidState)
	}
	if b.saving {
		b.mu.Unlock()
		return fmt.Errorf("submit: %w", domain.ErrBusy)
	}
	r := b.draft.Recipe()
	if strings.TrimSpace(r.Name) == "" {
		b.mu.Unlock()
		return fmt.Errorf("recipe title is empty: %w", domain.ErrInvalidInput)
	}
	editing := b.state == domain.BrowserRecipeEdit
	dishID := b.dish.ID
	gen := b.sel.gen
	b.saving = true
	b.mu.Unlock()

	var (
		saved *domain.Recipe
		err   error
	)
	if editing {
		saved, err = b.recipes.UpdateRecipe(ctx, r.ID, r)
	} else {
		saved, err = b.recipes.CreateRecipe(ctx, dishID, r)
	}
	if err != nil {
		b.mu.Lock()
		b.saving = false
		b.mu.Unlock()
		return report(ctx, b.notifier, b.log, "save recipe", alertSaveRecipe, err)
	}
	b.log.Info("browser: recipe %q saved (#%d)", saved.Name, saved.ID)

	list, lerr := b.recipes.ListRecipes(ctx, dishID)

	b.mu.Lock()
	b.saving = false
	if !editing {
		delete(b.drafts, dishID)
	}
	if !b.refreshedLocked(gen, dishID, list, lerr) {
		b.mu.Unlock()
		return domain.ErrSuperseded
	}
	b.draft = nil
	if editing {
		b.state = domain.BrowserRecipeDetail
		b.recipe = saved
	} else {
		b.state = domain.BrowserRecipeSearch
	}
	b.mu.Unlock()

	if lerr != nil {
		return report(ctx, b.notifier, b.log, "refresh recipes", alertLoadRecipes, lerr)
	}
	return nil
}

// ImportURL asks the catalog to extract a recipe from a web page into the
// current dish and opens it.
func (b *Browser) ImportURL(ctx context.Context, pageURL string) error {
	if strings.TrimSpace(pageURL) == "" {
		return fmt.Errorf("import url is empty: %w", domain.ErrInvalidInput)
	}
	return b.runImport(ctx, "url "+pageURL, func(dishID int) (*domain.Recipe, error) {
		return b.recipes.ImportFromURL(ctx, dishID, pageURL)
	})
}

// ImportImage asks the catalog to extract a recipe from a photo into the
// current dish and opens it.
func (b *Browser) ImportImage(ctx context.Context, filename string, data []byte) error {
	return b.runImport(ctx, "image "+filename, func(dishID int) (*domain.Recipe, error) {
		return b.recipes.ImportFromImage(ctx, dishID, filename, data)
	})
}

func (b *Browser) runImport(ctx context.Context, what string, run func(dishID int) (*domain.Recipe, error)) error {
	b.mu.Lock()
	if b.state != domain.BrowserRecipeCreate || b.dish == nil {
		st := b.state
		b.mu.Unlock()
		return fmt.Errorf("import in %s: %w", st, domain.ErrInvalidState)
	}
	if b.importing {
		b.mu.Unlock()
		return fmt.Errorf("import %s: %w", what, domain.ErrBusy)
	}
	b.importing = true
	dishID := b.dish.ID
	gen := b.sel.gen
	b.mu.Unlock()

	b.log.Info("browser: importing %s", what)
	r, err := run(dishID)

	b.mu.Lock()
	b.importing = false
	b.mu.Unlock()
	if err != nil {
		return report(ctx, b.notifier, b.log, "import "+what, alertImport, err)
	}

	list, lerr := b.recipes.ListRecipes(ctx, dishID)

	b.mu.Lock()
	if !b.refreshedLocked(gen, dishID, list, lerr) {
		b.mu.Unlock()
		return domain.ErrSuperseded
	}
	b.state = domain.BrowserRecipeDetail
	b.recipe = r
	b.draft = nil
	b.mu.Unlock()

	b.log.Info("browser: imported %q (#%d)", r.Name, r.ID)
	if lerr != nil {
		return report(ctx, b.notifier, b.log, "refresh recipes", alertLoadRecipes, lerr)
	}
	return nil
}

// ── Dishes ───────────────────────────────────────────────────────

// BeginCreateDish opens the new-dish prompt.
func (b *Browser) BeginCreateDish() error {
	b.mu.Lock()
	if b.state != domain.BrowserDishSearch {
		st := b.state
		b.mu.Unlock()
		return fmt.Errorf("create dish in %s: %w", st, domain.ErrInvalidState)
	}
	b.state = domain.BrowserDishCreate
	b.navigateLocked()
	b.mu.Unlock()

	b.shell.Activate(domain.PanelRecipe)
	return nil
}

// SubmitDish creates the dish, refreshes the dish list and opens the new dish.
func (b *Browser) SubmitDish(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)

	b.mu.Lock()
	if b.state != domain.BrowserDishCreate {
		st := b.state
		b.mu.Unlock()
		return fmt.Errorf("submit dish in %s: %w", st, domain.ErrInvalidState)
	}
	gen := b.sel.gen
	b.mu.Unlock()

	if name == "" {
		return fmt.Errorf("dish name is empty: %w", domain.ErrInvalidInput)
	}

	d, err := b.recipes.CreateDish(ctx, name)
	if err != nil {
		return report(ctx, b.notifier, b.log, "create dish", alertCreateDish, err)
	}
	b.log.Info("browser: dish %q created (#%d)", d.Name, d.ID)

	if err := b.LoadDishes(ctx); err != nil {
		return err
	}

	b.mu.Lock()
	stale := !b.sel.current(gen)
	b.mu.Unlock()
	if stale {
		return domain.ErrSuperseded
	}
	return b.SelectDish(ctx, *d)
}

// Collapse resets the browser to DishSearch. The dish list and unsaved
// new-recipe drafts are kept.
func (b *Browser) Collapse() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.navigateLocked()
	b.state = domain.BrowserDishSearch
	b.query = ""
	b.dish = nil
	b.recipe = nil
	b.recipeList = nil
	b.draft = nil
	b.deleteArmed = false
}

// refreshedLocked stores the recipe list refetched after a mutation and
// reports whether gen is still current. The list is kept even when the
// user navigated meanwhile, as long as the same dish is still open; a
// failed refetch only empties the list of a current request.
func (b *Browser) refreshedLocked(gen uint64, dishID int, list []domain.RecipeSummary, err error) bool {
	current := b.sel.current(gen)
	if b.dish == nil || b.dish.ID != dishID {
		return current
	}
	if current || err == nil {
		b.recipeList = orEmpty(list, err)
	}
	return current
}

// navigateLocked invalidates any in-flight selection fetch.
func (b *Browser) navigateLocked() {
	b.sel.navigate()
	b.loading = false
}

func orEmpty[T any](list []T, err error) []T {
	if err != nil || list == nil {
		return []T{}
	}
	return list
}
