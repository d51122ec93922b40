package display

import (
	_ "embed"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

//go:embed banner.txt
var bannerArt string

// fallbackWidth is used when stdout is not a terminal.
const fallbackWidth = 80

// RenderBanner styles the recipedesk wordmark and centres it in the
// terminal. It is printed once before the console takes over the screen.
func RenderBanner() string {
	return centerBanner(stdoutWidth())
}

// centerBanner places the art as one block so its rows stay aligned; a
// terminal narrower than the art gets it flush left.
func centerBanner(width int) string {
	block := BannerStyle.Render(strings.TrimRight(bannerArt, "\n"))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block) + "\n"
}

func stdoutWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return fallbackWidth
	}
	return w
}
