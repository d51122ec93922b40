package console

import (
	"context"
	"fmt"
	"sync"

	"github.com/hammamikhairi/recipedesk/internal/domain"
	"github.com/hammamikhairi/recipedesk/internal/logger"
)

// ScoredMatch is a pairing with its display emphasis.
type ScoredMatch struct {
	Name     string
	Score    int
	Emphasis domain.Emphasis
}

// MatchView is a snapshot of the match panel for rendering.
type MatchView struct {
	State       domain.MatchState
	Query       string
	Suggestions []domain.IngredientSummary // only while typing
	Selected    *domain.IngredientSummary
	Detail      *domain.IngredientDetail
	Matches     []ScoredMatch // Detail.Matches in server order
}

// MatchPanel is the ingredient pairing lookup.
type MatchPanel struct {
	affinity domain.AffinityCatalog
	notifier domain.Notifier
	shell    Activator
	log      *logger.Logger

	mu          sync.Mutex
	state       domain.MatchState
	ingredients []domain.IngredientSummary
	query       string
	selected    *domain.IngredientSummary
	detail      *domain.IngredientDetail
	sel         selection
}

// NewMatchPanel creates an idle match panel.
func NewMatchPanel(affinity domain.AffinityCatalog, notifier domain.Notifier, shell Activator, log *logger.Logger) *MatchPanel {
	return &MatchPanel{
		affinity: affinity,
		notifier: notifier,
		shell:    shell,
		log:      log,
		state:    domain.MatchIdle,
	}
}

// View returns a snapshot of the panel.
func (m *MatchPanel) View() MatchView {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := MatchView{
		State:    m.state,
		Query:    m.query,
		Selected: m.selected,
		Detail:   m.detail,
	}
	if m.state == domain.MatchTyping {
		v.Suggestions = Filter(m.ingredients, m.query, func(i domain.IngredientSummary) string { return i.Title })
	}
	if m.detail != nil {
		v.Matches = make([]ScoredMatch, len(m.detail.Matches))
		for i, mt := range m.detail.Matches {
			v.Matches[i] = ScoredMatch{Name: mt.Name, Score: mt.Score, Emphasis: domain.EmphasisForScore(mt.Score)}
		}
	}
	return v
}

// State returns the current state.
func (m *MatchPanel) State() domain.MatchState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// LoadIngredients fetches the ingredient index.
func (m *MatchPanel) LoadIngredients(ctx context.Context) error {
	list, err := m.affinity.ListIngredients(ctx)
	if err != nil {
		return report(ctx, m.notifier, m.log, "load ingredients", alertLoadIngredients, err)
	}

	m.mu.Lock()
	m.ingredients = list
	m.mu.Unlock()

	m.log.Debug("match: %d ingredients loaded", len(list))
	return nil
}

// SetQuery updates the search text and drops any selection. A non-empty
// query marks the match panel active.
func (m *MatchPanel) SetQuery(q string) {
	m.mu.Lock()
	m.sel.navigate()
	m.query = q
	m.selected = nil
	m.detail = nil
	if q == "" {
		m.state = domain.MatchIdle
	} else {
		m.state = domain.MatchTyping
	}
	m.mu.Unlock()

	if q != "" {
		m.shell.Activate(domain.PanelMatch)
	}
}

// Select fetches the pairing sheet for item. A newer selection or any
// navigation discards the result.
func (m *MatchPanel) Select(ctx context.Context, item domain.IngredientSummary) error {
	m.mu.Lock()
	if m.state == domain.MatchIdle {
		m.mu.Unlock()
		return fmt.Errorf("select ingredient while idle: %w", domain.ErrInvalidState)
	}
	fetchCtx, gen := m.sel.begin(ctx)
	m.query = item.Title
	m.selected = &item
	m.detail = nil
	m.state = domain.MatchFetching
	m.mu.Unlock()

	d, err := m.affinity.GetIngredient(fetchCtx, item.ID)

	m.mu.Lock()
	if !m.sel.current(gen) {
		m.mu.Unlock()
		m.log.Debug("match: dropped pairings for %q", item.Title)
		return domain.ErrSuperseded
	}
	m.sel.finish(gen)
	if err != nil {
		m.state = domain.MatchTyping
		m.selected = nil
		m.mu.Unlock()
		return report(ctx, m.notifier, m.log, "select ingredient", alertLoadIngredient, err)
	}
	m.detail = d
	m.state = domain.MatchLoaded
	m.mu.Unlock()

	m.log.Info("match: %q loaded (%d matches)", d.Title, len(d.Matches))
	return nil
}

// Clear returns the panel to Idle.
func (m *MatchPanel) Clear() {
	m.reset()
}

// Collapse returns the panel to Idle when the recipe panel takes over.
func (m *MatchPanel) Collapse() {
	m.reset()
}

func (m *MatchPanel) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sel.navigate()
	m.state = domain.MatchIdle
	m.query = ""
	m.selected = nil
	m.detail = nil
}
