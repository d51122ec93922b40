package console

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/recipedesk/internal/domain"
	"github.com/hammamikhairi/recipedesk/internal/logger"
)

// recordingNotifier keeps every alert.
type recordingNotifier struct {
	mu     sync.Mutex
	normal []string
	urgent []string
}

func (n *recordingNotifier) Notify(_ context.Context, msg string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.normal = append(n.normal, msg)
	return nil
}

func (n *recordingNotifier) NotifyUrgent(_ context.Context, msg string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.urgent = append(n.urgent, msg)
	return nil
}

func (n *recordingNotifier) Urgent() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.urgent...)
}

// fakeCatalog is a scriptable catalog. Calls can be held at a gate until
// the test releases them, and can be made to fail.
type fakeCatalog struct {
	mu          sync.Mutex
	dishes      []domain.Dish
	lists       map[int][]domain.RecipeSummary
	recipes     map[int]domain.Recipe
	ingredients []domain.IngredientSummary
	details     map[int]domain.IngredientDetail
	nextID      int

	gates     map[string]chan struct{}
	stubborn  bool // gated calls ignore cancellation
	errs      map[string]error
	calls     []string
	cancelled []string
	posted    []domain.Recipe
	updated   []domain.Recipe
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		dishes: []domain.Dish{{ID: 1, Name: "Bread"}, {ID: 2, Name: "Risotto"}, {ID: 3, Name: "Tart"}},
		lists: map[int][]domain.RecipeSummary{
			1: {{ID: 1, Name: "Sourdough"}, {ID: 2, Name: "Focaccia"}},
			2: {{ID: 3, Name: "Mushroom Risotto"}},
			3: {{ID: 5, Name: "Lemon Tart"}, {ID: 7, Name: "Plum Tart"}},
		},
		recipes: map[int]domain.Recipe{
			1: {ID: 1, Name: "Sourdough", DishID: 1},
			2: {ID: 2, Name: "Focaccia", DishID: 1},
			3: {ID: 3, Name: "Mushroom Risotto", DishID: 2},
			5: {ID: 5, Name: "Lemon Tart", DishID: 3},
			7: {ID: 7, Name: "Plum Tart", DishID: 3, Components: []domain.Component{{
				Name:         "filling",
				Ingredients:  []domain.Ingredient{{Name: "plums", Quantity: 6, Unit: ""}},
				Instructions: []domain.Instruction{{Step: 1, Text: "Halve and stone."}},
			}}},
		},
		ingredients: []domain.IngredientSummary{{ID: 1, Title: "Tomato"}, {ID: 2, Title: "Potato"}, {ID: 3, Title: "Lemon"}},
		details: map[int]domain.IngredientDetail{
			1: {ID: 1, Title: "Tomato", Avoid: []string{"milk"}, Matches: []domain.Match{{Name: "salt", Score: 4}, {Name: "basil", Score: 2}}},
			2: {ID: 2, Title: "Potato", Matches: []domain.Match{{Name: "butter", Score: 3}}},
			3: {ID: 3, Title: "Lemon"},
		},
		nextID: 100,
		gates:  make(map[string]chan struct{}),
		errs:   make(map[string]error),
	}
}

// hold makes calls with key block until the returned func is called.
func (f *fakeCatalog) hold(key string) (release func()) {
	ch := make(chan struct{})
	f.mu.Lock()
	f.gates[key] = ch
	f.mu.Unlock()
	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

func (f *fakeCatalog) fail(key string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[key] = err
}

func (f *fakeCatalog) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == key {
			n++
		}
	}
	return n
}

func (f *fakeCatalog) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeCatalog) hit(ctx context.Context, method string, id int) error {
	key := method
	if id >= 0 {
		key = fmt.Sprintf("%s:%d", method, id)
	}
	f.mu.Lock()
	f.calls = append(f.calls, key)
	gate := f.gates[key]
	err := f.errs[key]
	stubborn := f.stubborn
	f.mu.Unlock()

	if gate != nil {
		if stubborn {
			<-gate
		} else {
			select {
			case <-gate:
			case <-ctx.Done():
				f.mu.Lock()
				f.cancelled = append(f.cancelled, key)
				f.mu.Unlock()
				return ctx.Err()
			}
		}
	}
	return err
}

func (f *fakeCatalog) ListDishes(ctx context.Context) ([]domain.Dish, error) {
	if err := f.hit(ctx, "ListDishes", -1); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Dish(nil), f.dishes...), nil
}

func (f *fakeCatalog) CreateDish(ctx context.Context, name string) (*domain.Dish, error) {
	if err := f.hit(ctx, "CreateDish", -1); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	d := domain.Dish{ID: f.nextID, Name: name}
	f.nextID++
	f.dishes = append(f.dishes, d)
	return &d, nil
}

func (f *fakeCatalog) RenameDish(ctx context.Context, dishID int, name string) (*domain.Dish, error) {
	if err := f.hit(ctx, "RenameDish", dishID); err != nil {
		return nil, err
	}
	return &domain.Dish{ID: dishID, Name: name}, nil
}

func (f *fakeCatalog) DeleteDish(ctx context.Context, dishID int) error {
	return f.hit(ctx, "DeleteDish", dishID)
}

func (f *fakeCatalog) ListRecipes(ctx context.Context, dishID int) ([]domain.RecipeSummary, error) {
	if err := f.hit(ctx, "ListRecipes", dishID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.RecipeSummary{}, f.lists[dishID]...), nil
}

func (f *fakeCatalog) GetRecipe(ctx context.Context, dishID, recipeID int) (*domain.Recipe, error) {
	if err := f.hit(ctx, "GetRecipe", recipeID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.recipes[recipeID]
	if !ok || r.DishID != dishID {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

func (f *fakeCatalog) CreateRecipe(ctx context.Context, dishID int, draft domain.Recipe) (*domain.Recipe, error) {
	if err := f.hit(ctx, "CreateRecipe", dishID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posted = append(f.posted, draft)
	return f.storeLocked(dishID, draft), nil
}

func (f *fakeCatalog) storeLocked(dishID int, r domain.Recipe) *domain.Recipe {
	r.ID = f.nextID
	r.DishID = dishID
	f.nextID++
	f.recipes[r.ID] = r
	f.lists[dishID] = append(f.lists[dishID], r.Summary())
	return &r
}

func (f *fakeCatalog) UpdateRecipe(ctx context.Context, recipeID int, r domain.Recipe) (*domain.Recipe, error) {
	if err := f.hit(ctx, "UpdateRecipe", recipeID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, r)
	r.ID = recipeID
	f.recipes[recipeID] = r
	list := f.lists[r.DishID]
	for i := range list {
		if list[i].ID == recipeID {
			list[i].Name = r.Name
		}
	}
	return &r, nil
}

func (f *fakeCatalog) DeleteRecipe(ctx context.Context, recipeID int) error {
	if err := f.hit(ctx, "DeleteRecipe", recipeID); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	r := f.recipes[recipeID]
	delete(f.recipes, recipeID)
	var kept []domain.RecipeSummary
	for _, s := range f.lists[r.DishID] {
		if s.ID != recipeID {
			kept = append(kept, s)
		}
	}
	f.lists[r.DishID] = kept
	return nil
}

func (f *fakeCatalog) ImportFromURL(ctx context.Context, dishID int, url string) (*domain.Recipe, error) {
	if err := f.hit(ctx, "ImportFromURL", -1); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.storeLocked(dishID, domain.Recipe{Name: "Imported " + url}), nil
}

func (f *fakeCatalog) ImportFromImage(ctx context.Context, dishID int, filename string, data []byte) (*domain.Recipe, error) {
	if err := f.hit(ctx, "ImportFromImage", -1); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.storeLocked(dishID, domain.Recipe{Name: fmt.Sprintf("Photo %s (%d bytes)", filename, len(data))}), nil
}

func (f *fakeCatalog) ListIngredients(ctx context.Context) ([]domain.IngredientSummary, error) {
	if err := f.hit(ctx, "ListIngredients", -1); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.IngredientSummary(nil), f.ingredients...), nil
}

func (f *fakeCatalog) GetIngredient(ctx context.Context, id int) (*domain.IngredientDetail, error) {
	if err := f.hit(ctx, "GetIngredient", id); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.details[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &d, nil
}

type testConsole struct {
	*Console
	cat    *fakeCatalog
	notify *recordingNotifier
	ctx    context.Context
}

func setupConsole(t *testing.T, opts ...Option) *testConsole {
	t.Helper()
	cat := newFakeCatalog()
	n := &recordingNotifier{}
	c := New(cat, cat, n, logger.New(logger.LevelOff, nil), opts...)
	require.NoError(t, c.Load(context.Background()))
	return &testConsole{Console: c, cat: cat, notify: n, ctx: context.Background()}
}

// openRecipe drives the browser to RecipeDetail on recipe id of dish dishID.
func (tc *testConsole) openRecipe(t *testing.T, dishID, recipeID int) {
	t.Helper()
	tc.openDish(t, dishID)
	require.NoError(t, tc.Browser.SelectRecipe(tc.ctx, domain.RecipeSummary{ID: recipeID}))
	require.Equal(t, domain.BrowserRecipeDetail, tc.Browser.State())
}

func (tc *testConsole) openDish(t *testing.T, dishID int) {
	t.Helper()
	require.NoError(t, tc.Browser.SelectDish(tc.ctx, domain.Dish{ID: dishID, Name: fmt.Sprintf("dish %d", dishID)}))
	require.Equal(t, domain.BrowserRecipeSearch, tc.Browser.State())
}

func (tc *testConsole) waitForCall(t *testing.T, key string) {
	t.Helper()
	require.Eventually(t, func() bool { return tc.cat.count(key) > 0 }, time.Second, time.Millisecond)
}
