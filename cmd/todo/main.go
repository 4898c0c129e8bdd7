package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/tgienger/todo/internal/db"
	"github.com/tgienger/todo/internal/todo"
	"github.com/tgienger/todo/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// config holds the command line settings
type config struct {
	dbPath  string
	memory  bool
	key     string
	logPath string
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cfg := &config{}

	root := &cobra.Command{
		Use:           "todo",
		Short:         "A small persistent task list for the terminal",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withController(cfg, func(ctrl *todo.Controller) error {
				p := tea.NewProgram(ui.NewApp(ctrl), tea.WithAltScreen())
				_, err := p.Run()
				return err
			})
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.dbPath, "db", "", "path to the database file (default $XDG_DATA_HOME/todo/todo.db)")
	flags.BoolVar(&cfg.memory, "memory", false, "keep tasks in memory only")
	flags.StringVar(&cfg.key, "key", todo.DefaultKey, "storage key holding the task list")
	flags.StringVar(&cfg.logPath, "log", "", "write debug logs to this file")

	root.AddCommand(newRenderCmd(cfg))
	return root
}

// newRenderCmd prints the stored list as HTML markup
func newRenderCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Print the task list as HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withController(cfg, func(ctrl *todo.Controller) error {
				v := ctrl.Store().View()
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "<span data-js-todo-total-tasks>%d</span>\n", v.Total)
				fmt.Fprintln(out, "<ul data-js-todo-list>")
				if err := todo.WriteMarkup(out, v); err != nil {
					return err
				}
				fmt.Fprintln(out, "</ul>")
				if v.EmptyMessage != "" {
					fmt.Fprintf(out, "<p data-js-todo-empty-message>%s</p>\n", v.EmptyMessage)
				}
				return nil
			})
		},
	}
}

// withController opens logging and storage per cfg, runs fn and releases
// everything afterwards.
func withController(cfg *config, fn func(*todo.Controller) error) error {
	logger, closeLog, err := openLogger(cfg.logPath)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer closeLog()

	var storage todo.Storage
	if cfg.memory {
		storage = todo.NewMemoryStorage(nil)
	} else {
		database, err := db.New(cfg.dbPath)
		if err != nil {
			return fmt.Errorf("initializing database: %w", err)
		}
		defer database.Close()
		storage = database
	}

	store := todo.NewStore(storage,
		todo.WithKey(cfg.key),
		todo.WithLogger(logger),
	)
	logger.Debug("loaded tasks", "count", store.Len(), "key", cfg.key)

	return fn(todo.NewController(store))
}

// openLogger returns a discarding logger unless path is set. The terminal
// belongs to Bubble Tea, so logs only ever go to a file.
func openLogger(path string) (*slog.Logger, func() error, error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() error { return nil }, nil
	}
	f, err := tea.LogToFile(path, "todo")
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, f.Close, nil
}
