package domain

// Panel identifies which of the two top-level panels is active.
type Panel int

const (
	PanelNone Panel = iota
	PanelMatch
	PanelRecipe
)

// String returns a human-readable panel name.
func (p Panel) String() string {
	switch p {
	case PanelMatch:
		return "match"
	case PanelRecipe:
		return "recipe"
	default:
		return "none"
	}
}

// BrowserState is the drill-down position of the recipe browser.
type BrowserState int

const (
	BrowserDishSearch BrowserState = iota
	BrowserDishCreate
	BrowserRecipeSearch
	BrowserRecipeCreate
	BrowserRecipeDetail
	BrowserRecipeEdit
)

// String returns a human-readable browser state.
func (s BrowserState) String() string {
	switch s {
	case BrowserDishSearch:
		return "dish_search"
	case BrowserDishCreate:
		return "dish_create"
	case BrowserRecipeSearch:
		return "recipe_search"
	case BrowserRecipeCreate:
		return "recipe_create"
	case BrowserRecipeDetail:
		return "recipe_detail"
	case BrowserRecipeEdit:
		return "recipe_edit"
	default:
		return "unknown"
	}
}

// Drafting reports whether the state shows the draft editor.
func (s BrowserState) Drafting() bool {
	return s == BrowserRecipeCreate || s == BrowserRecipeEdit
}

// MatchState is the lifecycle of the ingredient match panel.
type MatchState int

const (
	MatchIdle MatchState = iota
	MatchTyping
	MatchFetching
	MatchLoaded
)

// String returns a human-readable match state.
func (s MatchState) String() string {
	switch s {
	case MatchIdle:
		return "idle"
	case MatchTyping:
		return "typing"
	case MatchFetching:
		return "fetching"
	case MatchLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// Emphasis is the visual weight given to a pairing score.
type Emphasis int

const (
	EmphasisMuted Emphasis = iota
	EmphasisNormal
	EmphasisStrong
	EmphasisStrongest
)

// String returns a human-readable emphasis.
func (e Emphasis) String() string {
	switch e {
	case EmphasisNormal:
		return "normal"
	case EmphasisStrong:
		return "strong"
	case EmphasisStrongest:
		return "strongest"
	default:
		return "muted"
	}
}

// EmphasisForScore maps a 0-4 compatibility score to its emphasis.
// Scores outside 2..4 are muted.
func EmphasisForScore(score int) Emphasis {
	switch score {
	case 4:
		return EmphasisStrongest
	case 3:
		return EmphasisStrong
	case 2:
		return EmphasisNormal
	default:
		return EmphasisMuted
	}
}
