package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hammamikhairi/recipedesk/internal/domain"
)

// checkCmd verifies that both catalog endpoints answer.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the recipe and match endpoints are reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "recipes  %s\nmatch    %s\n", cfg.RecipesBase(), cfg.MatchBase())
		return checkCatalog(cmd.Context(), cmd.OutOrStdout(), client, client)
	},
}

// checkCatalog lists dishes and ingredients in parallel and reports the
// counts. The first failure cancels the other request.
func checkCatalog(ctx context.Context, out io.Writer, recipes domain.RecipeCatalog, affinity domain.AffinityCatalog) error {
	var dishes []domain.Dish
	var ingredients []domain.IngredientSummary

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dishes, err = recipes.ListDishes(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		ingredients, err = affinity.ListIngredients(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		fmt.Fprintf(out, "FAIL %v\n", err)
		return err
	}

	fmt.Fprintf(out, "ok   %d dishes, %d ingredients\n", len(dishes), len(ingredients))
	return nil
}
