// Package console implements the view-state machines of the recipe console:
// the shell that arbitrates which panel is active, the recipe browser with
// its draft editor, and the ingredient match panel. Nothing here touches
// the terminal; the display package drives these types.
package console

import (
	"sync"

	"github.com/hammamikhairi/recipedesk/internal/domain"
	"github.com/hammamikhairi/recipedesk/internal/logger"
)

// Activator is how a panel tells the shell the user started using it.
type Activator interface {
	Activate(p domain.Panel)
}

// Collapser is implemented by panels that reset when another panel
// becomes active.
type Collapser interface {
	Collapse()
}

// Shell holds the single active panel.
type Shell struct {
	mu     sync.Mutex
	active domain.Panel
	panels map[domain.Panel]Collapser
	log    *logger.Logger
}

// NewShell creates a shell with no active panel.
func NewShell(log *logger.Logger) *Shell {
	return &Shell{
		panels: make(map[domain.Panel]Collapser),
		log:    log,
	}
}

// Register attaches a panel so it is collapsed when another one activates.
func (s *Shell) Register(p domain.Panel, c Collapser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panels[p] = c
}

// Activate makes p the active panel. When the value changes, every other
// registered panel is collapsed. Collapse runs after the shell's lock is
// released.
func (s *Shell) Activate(p domain.Panel) {
	s.mu.Lock()
	if s.active == p {
		s.mu.Unlock()
		return
	}
	prev := s.active
	s.active = p
	var others []Collapser
	for panel, c := range s.panels {
		if panel != p {
			others = append(others, c)
		}
	}
	s.mu.Unlock()

	s.log.Debug("shell: active panel %s -> %s", prev, p)
	for _, c := range others {
		c.Collapse()
	}
}

// Active returns the active panel.
func (s *Shell) Active() domain.Panel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}
