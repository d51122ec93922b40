// recipedesk is a terminal console for a recipe and ingredient-pairing
// catalog.
//
// Usage:
//
//	recipedesk [--demo] [--api URL] [--verbose] [--quiet]
//	recipedesk check
//	recipedesk dishes list|add|rename|rm
//	recipedesk stub [--addr HOST:PORT]
package main

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/hammamikhairi/recipedesk/internal/catalog"
	"github.com/hammamikhairi/recipedesk/internal/config"
	"github.com/hammamikhairi/recipedesk/internal/logger"
)

var (
	// Global flags
	configPath string
	verbose    bool
	quiet      bool
	logFile    string
	apiBase    string

	// Set up by PersistentPreRunE.
	cfg    *config.Config
	log    *logger.Logger
	logOut io.WriteCloser
)

// rootCmd runs the interactive console.
var rootCmd = &cobra.Command{
	Use:   "recipedesk",
	Short: "Terminal console for recipes and ingredient pairings",
	Long: `recipedesk browses and edits the dishes and recipes of a remote catalog
and looks up which ingredients pair well with each other.

Run without a subcommand to start the interactive console. Use --demo to
try it against a seeded in-process catalog.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	RunE: runConsole,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose/debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "disable all logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "file to write logs to (use \"stderr\" to log to console)")
	rootCmd.PersistentFlags().StringVar(&apiBase, "api", "", "catalog API root, e.g. http://localhost:8000")

	rootCmd.Flags().BoolVar(&demo, "demo", false, "run against a seeded in-process catalog")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(dishesCmd)
	rootCmd.AddCommand(stubCmd)
}

func main() {
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, os.Args[1:]); err != nil {
		stop()
		os.Exit(1)
	}
}

// execute runs the command line and then flushes and closes the log,
// whether or not the command failed.
func execute(ctx context.Context, args []string) error {
	rootCmd.SetArgs(args)
	defer teardown()
	return rootCmd.ExecuteContext(ctx)
}

// setup loads the configuration, applies flags over it and opens the log.
// Flags win over the config file and the environment.
func setup(cmd *cobra.Command) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if apiBase != "" {
		c.API.Base = apiBase
		c.API.RecipesURL = ""
		c.API.MatchURL = ""
	}
	if logFile != "" {
		c.Log.File = logFile
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	level, ok := logger.ParseLevel(c.Log.Level)
	if !ok {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: unknown log level %q, using normal\n", c.Log.Level)
	}
	if verbose {
		level = logger.LevelVerbose
	}
	if quiet {
		level = logger.LevelOff
	}

	out := openLog(cmd.ErrOrStderr(), c.Log.File)

	// Route the standard log package (used by net/http) to the same output.
	stdlog.SetOutput(out)
	stdlog.SetFlags(stdlog.Ltime)

	cfg = c
	logOut = out
	log = logger.New(level, out)
	log.Debug("config: recipes=%s match=%s", cfg.RecipesBase(), cfg.MatchBase())
	return nil
}

// openLog opens path for appending, creating its directory. Logs go to the
// fallback writer when path is "stderr" or cannot be opened, so the
// console stays clean by default.
func openLog(fallback io.Writer, path string) io.WriteCloser {
	if path == "" || path == "stderr" {
		return nopCloser{fallback}
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(fallback, "warning: could not open log file %s: %v (falling back to stderr)\n", path, err)
		return nopCloser{fallback}
	}
	return f
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// teardown syncs the logger and closes the log file. Safe to call twice.
func teardown() {
	if log != nil {
		_ = log.Sync()
	}
	if logOut != nil {
		stdlog.SetOutput(os.Stderr)
		_ = logOut.Close()
		logOut = nil
	}
}

// newClient builds the catalog client from the loaded configuration.
func newClient() (*catalog.Client, error) {
	timeout, err := cfg.HTTPTimeout()
	if err != nil {
		return nil, err
	}
	return catalog.NewClient(cfg.RecipesBase(), cfg.MatchBase(), log,
		catalog.WithHTTPTimeout(timeout),
		catalog.WithMaxImageWidth(cfg.Images.MaxWidth),
	), nil
}
