package console

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hammamikhairi/recipedesk/internal/domain"
	"github.com/hammamikhairi/recipedesk/internal/logger"
)

// Option configures the console.
type Option func(*Console)

// WithUndoDepth limits how many draft edits can be undone.
func WithUndoDepth(n int) Option {
	return func(c *Console) {
		if n > 0 {
			c.Browser.undoDepth = n
		}
	}
}

// Console wires the shell and both panels together.
type Console struct {
	Shell   *Shell
	Browser *Browser
	Match   *MatchPanel
	log     *logger.Logger
}

// New creates a console. The panels share notifier for their alerts.
func New(recipes domain.RecipeCatalog, affinity domain.AffinityCatalog, notifier domain.Notifier, log *logger.Logger, opts ...Option) *Console {
	shell := NewShell(log)
	c := &Console{
		Shell:   shell,
		Browser: NewBrowser(recipes, notifier, shell, log),
		Match:   NewMatchPanel(affinity, notifier, shell, log),
		log:     log,
	}
	shell.Register(domain.PanelRecipe, c.Browser)
	shell.Register(domain.PanelMatch, c.Match)

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load fetches the dish list and the ingredient index in parallel. Both
// loads run to completion; the first error is returned.
func (c *Console) Load(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return c.Browser.LoadDishes(ctx) })
	g.Go(func() error { return c.Match.LoadIngredients(ctx) })
	err := g.Wait()
	if err == nil {
		c.log.Info("console: catalog loaded")
	}
	return err
}
