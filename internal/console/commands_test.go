package console

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/recipedesk/internal/domain"
)

func cmd(t domain.CommandType, args ...string) domain.Command {
	return domain.Command{Type: t, Args: args}
}

func TestRunBuildsDraft(t *testing.T) {
	tc := setupConsole(t)
	tc.openDish(t, 3)
	require.NoError(t, tc.Browser.BeginCreateRecipe())

	script := []domain.Command{
		cmd(domain.CommandTitle, "Pear Tart"),
		cmd(domain.CommandAddComponent),
		cmd(domain.CommandRenameComponent, "1", "filling"),
		cmd(domain.CommandSetIngredient, "1", "1", "name", "pears"),
		cmd(domain.CommandSetIngredient, "1", "1", "qty", "4"),
		cmd(domain.CommandSetIngredient, "1", "1", "unit", "whole"),
		cmd(domain.CommandAddIngredient, "1"),
		cmd(domain.CommandSetIngredient, "1", "2", "name", "sugar"),
		cmd(domain.CommandSetStep, "1", "1", "Peel."),
		cmd(domain.CommandAddStep, "1"),
		cmd(domain.CommandSetStep, "1", "2", "Poach."),
	}
	for _, c := range script {
		require.NoError(t, tc.Browser.Run(tc.ctx, c), "%s %v", c.Type, c.Args)
	}

	want := domain.Recipe{
		Name:   "Pear Tart",
		DishID: 3,
		Components: []domain.Component{{
			Name:         "filling",
			Ingredients:  []domain.Ingredient{{Name: "pears", Quantity: 4, Unit: "whole"}, {Name: "sugar"}},
			Instructions: []domain.Instruction{{Step: 1, Text: "Peel."}, {Step: 2, Text: "Poach."}},
		}},
	}
	assert.Equal(t, want, *tc.Browser.View().Draft)

	require.NoError(t, tc.Browser.Run(tc.ctx, cmd(domain.CommandRemoveStep, "1", "1")))
	require.NoError(t, tc.Browser.Run(tc.ctx, cmd(domain.CommandRenumber, "1")))
	require.NoError(t, tc.Browser.Run(tc.ctx, cmd(domain.CommandRemoveIngredient, "1", "2")))
	d := *tc.Browser.View().Draft
	assert.Equal(t, []domain.Instruction{{Step: 1, Text: "Poach."}}, d.Components[0].Instructions)
	assert.Len(t, d.Components[0].Ingredients, 1)

	require.NoError(t, tc.Browser.Run(tc.ctx, cmd(domain.CommandUndo)))
	assert.Len(t, tc.Browser.View().Draft.Components[0].Ingredients, 2)

	require.NoError(t, tc.Browser.Run(tc.ctx, cmd(domain.CommandRemoveComponent, "1")))
	assert.Empty(t, tc.Browser.View().Draft.Components)

	require.NoError(t, tc.Browser.Run(tc.ctx, cmd(domain.CommandSave)))
	assert.Equal(t, domain.BrowserRecipeSearch, tc.Browser.State())
	assert.Equal(t, 1, tc.cat.count("CreateRecipe:3"))
}

func TestRunRejectsBadArguments(t *testing.T) {
	tc := setupConsole(t)
	tc.openDish(t, 3)
	require.NoError(t, tc.Browser.BeginCreateRecipe())

	tests := []struct {
		name string
		cmd  domain.Command
		want error
	}{
		{"zero index", cmd(domain.CommandRemoveComponent, "0"), domain.ErrInvalidInput},
		{"not a number", cmd(domain.CommandAddIngredient, "one"), domain.ErrInvalidInput},
		{"missing pair", cmd(domain.CommandSetStep, "1"), domain.ErrInvalidInput},
		{"bad field", cmd(domain.CommandSetIngredient, "1", "1", "colour", "red"), domain.ErrInvalidInput},
		{"bad quantity", cmd(domain.CommandSetIngredient, "1", "1", "qty", "lots"), domain.ErrInvalidInput},
		{"nan quantity", cmd(domain.CommandSetIngredient, "1", "1", "qty", "NaN"), domain.ErrInvalidInput},
		{"infinite quantity", cmd(domain.CommandSetIngredient, "1", "1", "qty", "inf"), domain.ErrInvalidInput},
		{"overflowing quantity", cmd(domain.CommandSetIngredient, "1", "1", "qty", "1e400"), domain.ErrInvalidInput},
		{"out of range", cmd(domain.CommandAddStep, "4"), domain.ErrIndexOutOfRange},
		{"help", cmd(domain.CommandHelp), domain.ErrInvalidInput},
		{"unknown", cmd(domain.CommandUnknown), domain.ErrInvalidInput},
		{"empty url", cmd(domain.CommandImportURL, ""), domain.ErrInvalidInput},
		{"missing image", cmd(domain.CommandImportImage, filepath.Join(t.TempDir(), "nope.png")), domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.Browser.Run(tc.ctx, tt.cmd), tt.want)
		})
	}
	assert.False(t, tc.Browser.View().CanUndo)
	assert.Empty(t, tc.notify.Urgent())
}

func TestRunImportImageReadsFile(t *testing.T) {
	tc := setupConsole(t)
	tc.openDish(t, 3)
	require.NoError(t, tc.Browser.BeginCreateRecipe())

	path := filepath.Join(t.TempDir(), "card.png")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

	require.NoError(t, tc.Browser.Run(tc.ctx, cmd(domain.CommandImportImage, path)))
	v := tc.Browser.View()
	assert.Equal(t, domain.BrowserRecipeDetail, v.State)
	assert.Equal(t, "Photo "+path+" (3 bytes)", v.Recipe.Name)
}

func TestRunCloseAndScrap(t *testing.T) {
	tc := setupConsole(t)
	tc.openRecipe(t, 3, 7)
	require.NoError(t, tc.Browser.BeginEdit())

	require.NoError(t, tc.Browser.Run(tc.ctx, cmd(domain.CommandTitle, "x")))
	require.NoError(t, tc.Browser.Run(tc.ctx, cmd(domain.CommandScrap)))
	assert.Equal(t, "Plum Tart", tc.Browser.View().Draft.Name)

	require.NoError(t, tc.Browser.Run(tc.ctx, cmd(domain.CommandClose)))
	assert.Equal(t, domain.BrowserRecipeDetail, tc.Browser.State())
}
