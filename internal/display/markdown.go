package display

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/hammamikhairi/recipedesk/internal/domain"
)

// RecipeMarkdown renders a recipe as a markdown datasheet. Instructions
// are listed by step, each step number padded to two digits.
func RecipeMarkdown(r domain.Recipe) string {
	return recipeMarkdown(r, false)
}

// DraftMarkdown is RecipeMarkdown annotated with the 1-based positions
// the editor commands take.
func DraftMarkdown(r domain.Recipe) string {
	return recipeMarkdown(r, true)
}

func recipeMarkdown(r domain.Recipe, positions bool) string {
	var b strings.Builder

	name := r.Name
	if strings.TrimSpace(name) == "" {
		name = "Untitled recipe"
	}
	fmt.Fprintf(&b, "# %s\n\n", name)

	if len(r.Components) == 0 {
		b.WriteString("_No components yet._\n")
		return b.String()
	}

	for ci, c := range r.Components {
		title := c.Name
		if strings.TrimSpace(title) == "" {
			title = fmt.Sprintf("Component %d", ci+1)
		}
		if positions {
			fmt.Fprintf(&b, "## [%d] %s\n\n", ci+1, title)
		} else {
			fmt.Fprintf(&b, "## %s\n\n", title)
		}

		b.WriteString("### Ingredients\n\n")
		if len(c.Ingredients) == 0 {
			b.WriteString("_none_\n\n")
		}
		for ii, ing := range c.Ingredients {
			if positions {
				fmt.Fprintf(&b, "- `%d` %s\n", ii+1, ingredientLine(ing))
			} else {
				fmt.Fprintf(&b, "- %s\n", ingredientLine(ing))
			}
		}
		if len(c.Ingredients) > 0 {
			b.WriteByte('\n')
		}

		b.WriteString("### Method\n\n")
		if len(c.Instructions) == 0 {
			b.WriteString("_none_\n\n")
		}
		for _, i := range stepOrder(c.Instructions) {
			in := c.Instructions[i]
			text := in.Text
			if text == "" {
				text = "…"
			}
			if positions {
				fmt.Fprintf(&b, "**%02d** %s _(#%d)_\n\n", in.Step, text, i+1)
			} else {
				fmt.Fprintf(&b, "**%02d** %s\n\n", in.Step, text)
			}
		}
	}
	return b.String()
}

// stepOrder returns the indices of ins ordered by step. Equal steps keep
// their list order.
func stepOrder(ins []domain.Instruction) []int {
	idx := make([]int, len(ins))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return ins[idx[a]].Step < ins[idx[b]].Step })
	return idx
}

func ingredientLine(ing domain.Ingredient) string {
	name := ing.Name
	if name == "" {
		name = "…"
	}
	var parts []string
	if ing.Quantity != 0 {
		parts = append(parts, strconv.FormatFloat(ing.Quantity, 'f', -1, 64))
	}
	if ing.Unit != "" {
		parts = append(parts, ing.Unit)
	}
	parts = append(parts, name)
	return strings.Join(parts, " ")
}

// markdownRenderer caches a glamour renderer per wrap width.
type markdownRenderer struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
}

func newMarkdownRenderer(style string) *markdownRenderer {
	return &markdownRenderer{style: style}
}

// Render renders md wrapped to width. On renderer failure the raw
// markdown is returned.
func (r *markdownRenderer) Render(md string, width int) string {
	if width < 20 {
		width = 20
	}
	if r.renderer == nil || r.width != width {
		tr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		r.renderer, r.width = tr, width
	}
	out, err := r.renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}
