package display

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/recipedesk/internal/command"
	"github.com/hammamikhairi/recipedesk/internal/console"
	"github.com/hammamikhairi/recipedesk/internal/domain"
)

// maxRows bounds the suggestion and search lists.
const maxRows = 8

func (m model) View() string {
	var b strings.Builder

	active := m.console.Shell.Active()
	mv := m.console.Match.View()
	bv := m.console.Browser.View()

	b.WriteString(paneTitle("INGREDIENT MATCH", active == domain.PanelMatch))
	b.WriteByte('\n')
	b.WriteString(m.matchInput.View())
	b.WriteByte('\n')
	b.WriteString(m.matchBody(mv))
	b.WriteByte('\n')

	b.WriteString(sepStyle.Render(strings.Repeat("─", max(m.width, 1))))
	b.WriteByte('\n')

	b.WriteString(paneTitle("RECIPES"+breadcrumb(bv), active == domain.PanelRecipe))
	b.WriteByte('\n')
	b.WriteString(m.recipeInput.View())
	b.WriteByte('\n')
	b.WriteString(m.recipeBody(bv))
	b.WriteByte('\n')

	if m.showCmds {
		b.WriteString(secondaryStyle.Render(command.Help))
		b.WriteByte('\n')
	}
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteByte('\n')
	}
	if m.alert != nil {
		b.WriteString(alertStyle.Render(m.alert.text + "\n" + "press any key"))
		b.WriteByte('\n')
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func paneTitle(title string, active bool) string {
	if active {
		return activePaneTitleStyle.Render("▌" + title)
	}
	return paneTitleStyle.Render(" " + title)
}

func breadcrumb(v console.BrowserView) string {
	var parts []string
	if v.Dish != nil {
		parts = append(parts, v.Dish.Name)
	}
	switch v.State {
	case domain.BrowserDishCreate:
		parts = append(parts, "new dish")
	case domain.BrowserRecipeCreate:
		parts = append(parts, "new recipe")
	case domain.BrowserRecipeDetail, domain.BrowserRecipeEdit:
		if v.Recipe != nil {
			parts = append(parts, v.Recipe.Name)
		}
		if v.State == domain.BrowserRecipeEdit {
			parts = append(parts, "edit")
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return " › " + strings.Join(parts, " › ")
}

// ── Match pane ───────────────────────────────────────────────────

func (m model) matchBody(v console.MatchView) string {
	switch v.State {
	case domain.MatchTyping:
		names := make([]string, len(v.Suggestions))
		for i, s := range v.Suggestions {
			names[i] = s.Title
		}
		return m.list(names, m.focus == focusMatch, "no ingredient matches")

	case domain.MatchFetching:
		return m.spinner.View() + secondaryStyle.Render(" fetching pairings for "+v.Query)

	case domain.MatchLoaded:
		if v.Detail == nil {
			return ""
		}
		var b strings.Builder
		if len(v.Detail.Avoid) > 0 {
			b.WriteString(secondaryStyle.Render("avoid      ") + avoidStyle.Render(strings.Join(v.Detail.Avoid, ", ")))
			b.WriteByte('\n')
		}
		if len(v.Detail.Affinities) > 0 {
			b.WriteString(secondaryStyle.Render("affinities ") + affinityStyle.Render(strings.Join(v.Detail.Affinities, ", ")))
			b.WriteByte('\n')
		}
		b.WriteString(secondaryStyle.Render("matches    ") + renderMatches(v.Matches))
		return b.String()
	}

	return secondaryStyle.Render("type an ingredient to look up its pairings")
}

// renderMatches lays out the pairings in server order, each styled by
// its score emphasis.
func renderMatches(matches []console.ScoredMatch) string {
	if len(matches) == 0 {
		return secondaryStyle.Render("none")
	}
	parts := make([]string, len(matches))
	for i, mt := range matches {
		parts[i] = emphasisStyles[mt.Emphasis].Render(fmt.Sprintf("%s %d", mt.Name, mt.Score))
	}
	return strings.Join(parts, sepStyle.Render(" · "))
}

// ── Recipe pane ──────────────────────────────────────────────────

func (m model) recipeBody(v console.BrowserView) string {
	if v.Loading {
		return m.spinner.View() + secondaryStyle.Render(" loading")
	}

	focused := m.focus == focusRecipe
	switch v.State {
	case domain.BrowserDishSearch:
		if v.Query == "" {
			return secondaryStyle.Render("type to search dishes · ctrl+n new dish")
		}
		names := make([]string, len(v.Dishes))
		for i, d := range v.Dishes {
			names[i] = d.Name
		}
		return m.list(names, focused, "no dish matches")

	case domain.BrowserDishCreate:
		return secondaryStyle.Render("enter creates the dish · esc cancels")

	case domain.BrowserRecipeSearch:
		if v.Query == "" {
			return secondaryStyle.Render("type to search recipes · ctrl+n new recipe · esc back")
		}
		names := make([]string, len(v.Recipes))
		for i, r := range v.Recipes {
			names[i] = r.Name
		}
		return m.list(names, focused, "no recipe matches")
	}

	var b strings.Builder
	b.WriteString(m.detail.View())
	b.WriteByte('\n')
	switch {
	case v.DeleteArmed:
		b.WriteString(armedStyle.Render("press ctrl+d again to delete this recipe · esc cancels"))
	case v.Importing:
		b.WriteString(m.spinner.View() + secondaryStyle.Render(" extracting recipe"))
	case v.Saving:
		b.WriteString(m.spinner.View() + secondaryStyle.Render(" saving"))
	case v.State.Drafting():
		hint := "help lists commands · ctrl+s save · esc close"
		if v.CanUndo {
			hint += " · ctrl+z undo"
		}
		b.WriteString(secondaryStyle.Render(hint))
	}
	return b.String()
}

// list renders up to maxRows names around the cursor.
func (m model) list(names []string, focused bool, empty string) string {
	if len(names) == 0 {
		return secondaryStyle.Render(empty)
	}
	start := 0
	if focused && m.cursor >= maxRows {
		start = m.cursor - maxRows + 1
	}
	end := min(start+maxRows, len(names))

	var b strings.Builder
	for i := start; i < end; i++ {
		if focused && i == m.cursor {
			b.WriteString(cursorRowStyle.Render("› " + names[i]))
		} else {
			b.WriteString(primaryStyle.Render("  " + names[i]))
		}
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	if rest := len(names) - end; rest > 0 {
		b.WriteString(secondaryStyle.Render(fmt.Sprintf("\n  … %d more", rest)))
	}
	return b.String()
}
