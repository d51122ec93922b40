package catalog_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/recipedesk/internal/catalog"
	"github.com/hammamikhairi/recipedesk/internal/catalog/stub"
	"github.com/hammamikhairi/recipedesk/internal/domain"
	"github.com/hammamikhairi/recipedesk/internal/logger"
)

type fixture struct {
	client *catalog.Client
	server *stub.Server
	mem    *catalog.MemoryCatalog
}

func setup(t *testing.T, opts ...stub.Option) fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.New(logger.LevelOff, nil)
	mem := catalog.NewMemoryCatalog(log)
	srv := stub.New(mem, mem, log, opts...)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return fixture{
		client: catalog.NewClient(ts.URL+"/recipes", ts.URL+"/match_checker", log),
		server: srv,
		mem:    mem,
	}
}

// rawServer answers every request with the given body.
func rawServer(t *testing.T, body string) *catalog.Client {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return catalog.NewClient(ts.URL+"/recipes", ts.URL+"/match_checker", logger.New(logger.LevelOff, nil))
}

func TestListDishes(t *testing.T) {
	f := setup(t)

	dishes, err := f.client.ListDishes(context.Background())
	require.NoError(t, err)
	require.Len(t, dishes, 3)
	assert.Equal(t, domain.Dish{ID: 1, Name: "Bread"}, dishes[0])
}

func TestCreateRecipePostsDraftShape(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	draft := domain.Recipe{
		Name: "Tart",
		Components: []domain.Component{{
			Name:         "crust",
			Ingredients:  []domain.Ingredient{{Name: "flour", Quantity: 200, Unit: "g"}},
			Instructions: []domain.Instruction{{Step: 1, Text: "Rub in butter"}},
		}},
	}
	created, err := f.client.CreateRecipe(ctx, 3, draft)
	require.NoError(t, err)
	assert.Equal(t, 3, created.DishID)
	assert.NotZero(t, created.ID)

	reqs := f.server.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.Equal(t, "/recipes/recipe/3", reqs[0].Path)
	assert.JSONEq(t, `{
		"id": 0, "name": "Tart", "dish_id": 3,
		"components": [{
			"name": "crust",
			"ingredients": [{"name": "flour", "quantity": 200, "unit": "g"}],
			"instructions": [{"step": 1, "text": "Rub in butter"}]
		}]
	}`, string(reqs[0].Body))

	list, err := f.client.ListRecipes(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []domain.RecipeSummary{{ID: created.ID, Name: "Tart"}}, list)
}

func TestCreateRecipeSendsEmptyArrays(t *testing.T) {
	f := setup(t)

	_, err := f.client.CreateRecipe(context.Background(), 3, domain.Recipe{
		Name:       "Bare",
		Components: []domain.Component{{Name: "only"}},
	})
	require.NoError(t, err)

	body := string(f.server.Requests()[0].Body)
	assert.Contains(t, body, `"ingredients":[]`)
	assert.Contains(t, body, `"instructions":[]`)
}

func TestGetUpdateDeleteRecipe(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	r, err := f.client.GetRecipe(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "Country Sourdough", r.Name)
	require.Len(t, r.Components, 2)

	r.Name = "Weekend Sourdough"
	upd, err := f.client.UpdateRecipe(ctx, r.ID, *r)
	require.NoError(t, err)
	assert.Equal(t, "Weekend Sourdough", upd.Name)
	assert.Equal(t, "/recipes/recipe_edit/1", f.server.Requests()[1].Path)

	require.NoError(t, f.client.DeleteRecipe(ctx, 1))
	list, err := f.client.ListRecipes(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []domain.RecipeSummary{{ID: 2, Name: "Focaccia"}}, list)
}

func TestNotFoundIsAPIError(t *testing.T) {
	f := setup(t)

	_, err := f.client.GetRecipe(context.Background(), 1, 999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	var apiErr *catalog.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Detail, "not found")
}

func TestDishLifecycle(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	d, err := f.client.CreateDish(ctx, "Soup")
	require.NoError(t, err)
	assert.Equal(t, "Soup", d.Name)

	_, err = f.client.CreateDish(ctx, "Soup")
	var apiErr *catalog.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.False(t, errors.Is(err, domain.ErrNotFound))

	renamed, err := f.client.RenameDish(ctx, d.ID, "Stew")
	require.NoError(t, err)
	assert.Equal(t, "Stew", renamed.Name)

	err = f.client.DeleteDish(ctx, 1) // Bread has recipes
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	require.NoError(t, f.client.DeleteDish(ctx, d.ID))
}

func TestInjectedFailureCarriesDetail(t *testing.T) {
	f := setup(t)
	f.server.FailNext(http.StatusInternalServerError, "database on fire")

	_, err := f.client.ListDishes(context.Background())
	var apiErr *catalog.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "database on fire", apiErr.Detail)

	_, err = f.client.ListDishes(context.Background())
	assert.NoError(t, err, "fault should apply once")
}

func TestRequestIDHeader(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, _ = f.client.ListDishes(ctx)
	_, _ = f.client.ListIngredients(ctx)

	reqs := f.server.Requests()
	require.Len(t, reqs, 2)
	for _, r := range reqs {
		_, err := uuid.Parse(r.RequestID)
		assert.NoError(t, err, "request %s has id %q", r.Path, r.RequestID)
	}
	assert.NotEqual(t, reqs[0].RequestID, reqs[1].RequestID)
}

func TestNonArrayListIsEmpty(t *testing.T) {
	c := rawServer(t, `{"detail":"weird"}`)

	dishes, err := c.ListDishes(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, dishes)
	assert.Empty(t, dishes)
}

func TestNonObjectIsMalformed(t *testing.T) {
	c := rawServer(t, `[1,2,3]`)

	_, err := c.GetIngredient(context.Background(), 1)
	assert.True(t, errors.Is(err, domain.ErrMalformedPayload), "got %v", err)
}

func TestStringQuantityDecodes(t *testing.T) {
	c := rawServer(t, `{"id":4,"name":"Scones","dish_id":1,"components":[
		{"name":"dough","ingredients":[{"name":"flour","quantity":"2.5","unit":"cups"}],"instructions":[]}]}`)

	r, err := c.GetRecipe(context.Background(), 1, 4)
	require.NoError(t, err)
	assert.Equal(t, 2.5, r.Components[0].Ingredients[0].Quantity)
}

func TestTransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	base := ts.URL
	ts.Close()

	c := catalog.NewClient(base+"/recipes", base+"/match_checker", logger.New(logger.LevelOff, nil))
	_, err := c.ListDishes(context.Background())
	var urlErr *url.Error
	assert.True(t, errors.As(err, &urlErr), "got %v", err)
}

func TestContextCancellation(t *testing.T) {
	f := setup(t, stub.WithLatency(2*time.Second))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := f.client.ListIngredients(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
}

func TestImportFromURL(t *testing.T) {
	f := setup(t)

	r, err := f.client.ImportFromURL(context.Background(), 3, "https://example.com/plum-tart?x=1")
	require.NoError(t, err)
	assert.Equal(t, "Plum Tart", r.Name)

	req := f.server.Requests()[0]
	assert.Equal(t, "/recipes/recipe_url/3", req.Path)
	q, err := url.ParseQuery(req.Query)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/plum-tart?x=1", q.Get("url"))
}

func TestImportFromImage(t *testing.T) {
	f := setup(t)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1200, 300))))

	r, err := f.client.ImportFromImage(context.Background(), 3, "/tmp/lemon-tart.png", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "Lemon Tart", r.Name)
	assert.Equal(t, "/recipes/recipe_image/3", f.server.Requests()[0].Path)
}

func TestImportFromImageRejectsBeforeRequest(t *testing.T) {
	f := setup(t)

	_, err := f.client.ImportFromImage(context.Background(), 3, "scan.tiff", []byte{1, 2})
	assert.True(t, errors.Is(err, domain.ErrUnsupportedImage))
	assert.Empty(t, f.server.Requests())
}

func TestIngredientDetailKeepsOrder(t *testing.T) {
	f := setup(t)

	d, err := f.client.GetIngredient(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Tomato", d.Title)
	require.NotEmpty(t, d.Matches)
	assert.Equal(t, domain.Match{Name: "salt", Score: 4}, d.Matches[0])
	assert.Equal(t, []string{"milk"}, d.Avoid)
}
