// Package catalog talks to the remote recipe and ingredient-pairing API.
// It also provides an in-memory catalog used by the stub server and tests.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/hammamikhairi/recipedesk/internal/domain"
	"github.com/hammamikhairi/recipedesk/internal/logger"
)

// Compile-time interface checks.
var (
	_ domain.RecipeCatalog   = (*Client)(nil)
	_ domain.AffinityCatalog = (*Client)(nil)
)

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithMaxImageWidth sets the width images are downscaled to before upload.
func WithMaxImageWidth(w uint) ClientOption {
	return func(c *Client) { c.maxImageWidth = w }
}

// Client is the HTTP implementation of the recipe and affinity catalogs.
type Client struct {
	recipesURL    string
	matchURL      string
	maxImageWidth uint
	http          *http.Client
	log           *logger.Logger
}

// NewClient creates a catalog client.
//   - recipesURL: root of the recipe endpoints (e.g. "http://localhost:8000/recipes")
//   - matchURL:   root of the pairing endpoints (e.g. "http://localhost:8000/match_checker")
func NewClient(recipesURL, matchURL string, log *logger.Logger, opts ...ClientOption) *Client {
	c := &Client{
		recipesURL:    recipesURL,
		matchURL:      matchURL,
		maxImageWidth: 800,
		http:          &http.Client{Timeout: 15 * time.Second},
		log:           log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ── Dishes ───────────────────────────────────────────────────────

// ListDishes returns every dish.
func (c *Client) ListDishes(ctx context.Context) ([]domain.Dish, error) {
	body, err := c.do(ctx, http.MethodGet, c.recipesURL, "/searchList", nil, "")
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Dish](c.log, body, "dish list")
}

// CreateDish creates a dish with the given name.
func (c *Client) CreateDish(ctx context.Context, name string) (*domain.Dish, error) {
	body, err := c.sendJSON(ctx, http.MethodPost, c.recipesURL, "/dish", map[string]string{"name": name})
	if err != nil {
		return nil, err
	}
	return decodeObject[domain.Dish](body, "created dish")
}

// RenameDish renames a dish.
func (c *Client) RenameDish(ctx context.Context, dishID int, name string) (*domain.Dish, error) {
	path := fmt.Sprintf("/dish_edit/%d", dishID)
	body, err := c.sendJSON(ctx, http.MethodPut, c.recipesURL, path, map[string]string{"name": name})
	if err != nil {
		return nil, err
	}
	return decodeObject[domain.Dish](body, "renamed dish")
}

// DeleteDish deletes a dish. The server refuses dishes that still have recipes.
func (c *Client) DeleteDish(ctx context.Context, dishID int) error {
	_, err := c.do(ctx, http.MethodDelete, c.recipesURL, fmt.Sprintf("/dish/%d", dishID), nil, "")
	return err
}

// ── Recipes ──────────────────────────────────────────────────────

// ListRecipes returns the recipe summaries of a dish.
func (c *Client) ListRecipes(ctx context.Context, dishID int) ([]domain.RecipeSummary, error) {
	body, err := c.do(ctx, http.MethodGet, c.recipesURL, fmt.Sprintf("/recipe_list/%d", dishID), nil, "")
	if err != nil {
		return nil, err
	}
	return decodeList[domain.RecipeSummary](c.log, body, "recipe list")
}

// GetRecipe fetches one full recipe.
func (c *Client) GetRecipe(ctx context.Context, dishID, recipeID int) (*domain.Recipe, error) {
	path := fmt.Sprintf("/recipe/%d/%d", dishID, recipeID)
	body, err := c.do(ctx, http.MethodGet, c.recipesURL, path, nil, "")
	if err != nil {
		return nil, err
	}
	return decodeObject[domain.Recipe](body, "recipe")
}

// CreateRecipe stores a draft under the dish.
func (c *Client) CreateRecipe(ctx context.Context, dishID int, draft domain.Recipe) (*domain.Recipe, error) {
	draft.DishID = dishID
	body, err := c.sendJSON(ctx, http.MethodPost, c.recipesURL, fmt.Sprintf("/recipe/%d", dishID), draft.Normalized())
	if err != nil {
		return nil, err
	}
	return decodeObject[domain.Recipe](body, "created recipe")
}

// UpdateRecipe replaces a stored recipe.
func (c *Client) UpdateRecipe(ctx context.Context, recipeID int, r domain.Recipe) (*domain.Recipe, error) {
	r.ID = recipeID
	body, err := c.sendJSON(ctx, http.MethodPut, c.recipesURL, fmt.Sprintf("/recipe_edit/%d", recipeID), r.Normalized())
	if err != nil {
		return nil, err
	}
	return decodeObject[domain.Recipe](body, "updated recipe")
}

// DeleteRecipe deletes a recipe.
func (c *Client) DeleteRecipe(ctx context.Context, recipeID int) error {
	_, err := c.do(ctx, http.MethodDelete, c.recipesURL, fmt.Sprintf("/recipe/%d", recipeID), nil, "")
	return err
}

// ImportFromURL asks the server to extract and store the recipe at pageURL.
func (c *Client) ImportFromURL(ctx context.Context, dishID int, pageURL string) (*domain.Recipe, error) {
	path := fmt.Sprintf("/recipe_url/%d?url=%s", dishID, url.QueryEscape(pageURL))
	body, err := c.do(ctx, http.MethodGet, c.recipesURL, path, nil, "")
	if err != nil {
		return nil, err
	}
	return decodeObject[domain.Recipe](body, "imported recipe")
}

// ImportFromImage uploads a photo of a recipe for extraction. The image is
// validated and downscaled locally first.
func (c *Client) ImportFromImage(ctx context.Context, dishID int, filename string, data []byte) (*domain.Recipe, error) {
	prepared, err := PrepareImage(filename, data, c.maxImageWidth)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("catalog: building upload: %w", err)
	}
	if _, err := part.Write(prepared); err != nil {
		return nil, fmt.Errorf("catalog: building upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("catalog: building upload: %w", err)
	}

	c.log.Debug("catalog: image %s resized %d -> %d bytes", filename, len(data), len(prepared))

	path := fmt.Sprintf("/recipe_image/%d", dishID)
	body, err := c.do(ctx, http.MethodPost, c.recipesURL, path, &buf, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}
	return decodeObject[domain.Recipe](body, "imported recipe")
}

// ── Ingredients ──────────────────────────────────────────────────

// ListIngredients returns the ingredient index.
func (c *Client) ListIngredients(ctx context.Context) ([]domain.IngredientSummary, error) {
	body, err := c.do(ctx, http.MethodGet, c.matchURL, "/ingredient_list", nil, "")
	if err != nil {
		return nil, err
	}
	return decodeList[domain.IngredientSummary](c.log, body, "ingredient list")
}

// GetIngredient fetches the pairing sheet of one ingredient.
func (c *Client) GetIngredient(ctx context.Context, id int) (*domain.IngredientDetail, error) {
	body, err := c.do(ctx, http.MethodGet, c.matchURL, fmt.Sprintf("/get_ingredient/%d", id), nil, "")
	if err != nil {
		return nil, err
	}
	return decodeObject[domain.IngredientDetail](body, "ingredient")
}

// ── Transport ────────────────────────────────────────────────────

func (c *Client) sendJSON(ctx context.Context, method, base, path string, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("catalog: marshal %s %s: %w", method, path, err)
	}
	return c.do(ctx, method, base, path, bytes.NewReader(data), "application/json")
}

// do performs one request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, method, base, path string, body io.Reader, contentType string) ([]byte, error) {
	reqID := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, method, base+path, body)
	if err != nil {
		return nil, fmt.Errorf("catalog: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	c.log.Debug("catalog: %s %s [%s]", method, path, reqID)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("catalog: read response: %w", err)
	}

	c.log.Debug("catalog: %s %s -> %d in %s [%s]", method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond), reqID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Detail:     parseDetail(respBody),
			RequestID:  reqID,
		}
	}
	return respBody, nil
}

// decodeList decodes a JSON array. A body that is not an array is treated
// as an empty list.
func decodeList[T any](log *logger.Logger, body []byte, what string) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		log.Warn("catalog: %s is not an array, using empty list: %s", what, truncate(string(trimmed), 80))
		return []T{}, nil
	}
	out := []T{}
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, fmt.Errorf("catalog: %s: %w: %v", what, domain.ErrMalformedPayload, err)
	}
	return out, nil
}

// decodeObject decodes a JSON object.
func decodeObject[T any](body []byte, what string) (*T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("catalog: %s: %w: not an object", what, domain.ErrMalformedPayload)
	}
	out := new(T)
	if err := json.Unmarshal(trimmed, out); err != nil {
		return nil, fmt.Errorf("catalog: %s: %w: %v", what, domain.ErrMalformedPayload, err)
	}
	return out, nil
}
