package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/hammamikhairi/recipedesk/internal/domain"
)

// dishesCmd groups the dish maintenance commands.
var dishesCmd = &cobra.Command{
	Use:   "dishes",
	Short: "List, add, rename and remove dishes",
}

var dishesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every dish",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		return listDishes(cmd.Context(), cmd.OutOrStdout(), client)
	},
}

var dishesAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a dish",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		return addDish(cmd.Context(), cmd.OutOrStdout(), client, strings.Join(args, " "))
	},
}

var dishesRenameCmd = &cobra.Command{
	Use:   "rename [id] [name]",
	Short: "Rename a dish",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseDishID(args[0])
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		return renameDish(cmd.Context(), cmd.OutOrStdout(), client, id, strings.Join(args[1:], " "))
	},
}

var dishesRmCmd = &cobra.Command{
	Use:     "rm [id]",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete a dish that has no recipes",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseDishID(args[0])
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		return removeDish(cmd.Context(), cmd.OutOrStdout(), client, id)
	},
}

func init() {
	dishesCmd.AddCommand(dishesListCmd)
	dishesCmd.AddCommand(dishesAddCmd)
	dishesCmd.AddCommand(dishesRenameCmd)
	dishesCmd.AddCommand(dishesRmCmd)
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func listDishes(ctx context.Context, out io.Writer, recipes domain.RecipeCatalog) error {
	dishes, err := recipes.ListDishes(ctx)
	if err != nil {
		return err
	}
	if len(dishes) == 0 {
		fmt.Fprintln(out, "no dishes")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, d := range dishes {
		t.Row(strconv.Itoa(d.ID), d.Name)
	}
	fmt.Fprintln(out, t.String())
	return nil
}

func addDish(ctx context.Context, out io.Writer, recipes domain.RecipeCatalog, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("dish name: %w", domain.ErrInvalidInput)
	}
	d, err := recipes.CreateDish(ctx, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "created dish %d %q\n", d.ID, d.Name)
	return nil
}

func renameDish(ctx context.Context, out io.Writer, recipes domain.RecipeCatalog, id int, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("dish name: %w", domain.ErrInvalidInput)
	}
	d, err := recipes.RenameDish(ctx, id, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "renamed dish %d to %q\n", d.ID, d.Name)
	return nil
}

func removeDish(ctx context.Context, out io.Writer, recipes domain.RecipeCatalog, id int) error {
	if err := recipes.DeleteDish(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(out, "deleted dish %d\n", id)
	return nil
}

func parseDishID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("dish id %q: %w", s, domain.ErrInvalidInput)
	}
	return id, nil
}
