package main

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/recipedesk/internal/catalog"
	"github.com/hammamikhairi/recipedesk/internal/catalog/stub"
	"github.com/hammamikhairi/recipedesk/internal/command"
	"github.com/hammamikhairi/recipedesk/internal/console"
	"github.com/hammamikhairi/recipedesk/internal/display"
)

var demo bool

// runConsole starts the interactive console. With --demo it first starts
// a stub catalog on a loopback port and points the client at it.
func runConsole(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if demo {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("demo: %w", err)
		}
		mem := catalog.NewMemoryCatalog(log)
		srv := stub.New(mem, mem, log)
		go func() {
			if err := srv.Serve(ctx, ln); err != nil {
				log.Error("demo catalog: %v", err)
			}
		}()
		cfg.API.Base = "http://" + ln.Addr().String()
		cfg.API.RecipesURL = ""
		cfg.API.MatchURL = ""
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	// Wire dependencies.
	alerts := display.NewAlertNotifier(log)
	desk := console.New(client, client, alerts, log)
	ui := display.NewUI(desk, command.NewKeywordParser(log), alerts, log)

	fmt.Fprintln(cmd.OutOrStdout(), display.RenderBanner())
	if demo {
		fmt.Fprintln(cmd.OutOrStdout(), display.BannerStyle.Render("  Demo catalog at "+cfg.API.Base))
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), display.BannerStyle.Render("  Catalog at "+cfg.RecipesBase()))
	}

	log.Info("console starting (recipes=%s, match=%s)", cfg.RecipesBase(), cfg.MatchBase())
	if err := ui.Run(ctx); err != nil {
		log.Error("display: %v", err)
		return err
	}
	return nil
}
