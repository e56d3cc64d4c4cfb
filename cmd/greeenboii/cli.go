package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/greeenboii/greeenboii"
	"github.com/greeenboii/greeenboii/color"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Tasks   greeenboii.TaskService
	History greeenboii.HistoryService
	Gists   greeenboii.GistService

	Searcher greeenboii.Searcher
	Reporter *color.Reporter

	// Clipping.
	Fetcher   greeenboii.Fetcher
	Extractor greeenboii.Extractor
	Converter greeenboii.Converter

	Scaffolder greeenboii.Scaffolder
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Debug      bool   `help:"Log debug output to stderr"`
	DB         string `name:"db" env:"GREEENBOII_DB" help:"SQLite database path (default ~/.greeenboii/greeenboii.db)"`
	TursoURL   string `name:"turso-url" env:"TURSO_DATABASE_URL" help:"libSQL database URL for gists"`
	TursoToken string `name:"turso-token" env:"TURSO_AUTH_TOKEN" help:"libSQL auth token for gists"`

	Menu    MenuCmd    `cmd:"" default:"1" help:"Interactive menu (default when no command is given)"`
	Search  SearchCmd  `cmd:"" help:"Search Google, Bing and DuckDuckGo at once"`
	Todo    TodoCmd    `cmd:"" help:"Manage the to-do list"`
	Gist    GistCmd    `cmd:"" help:"Manage gists stored in libSQL"`
	History HistoryCmd `cmd:"" help:"Show or clear search history"`
	New     NewCmd     `cmd:"" help:"Create a project from a git template"`
}

// SearchFlags configures how searches run and are printed.
type SearchFlags struct {
	Timeout time.Duration `short:"t" default:"15s" help:"Timeout per engine"`
	Delay   time.Duration `default:"1s" help:"Delay before each engine request"`
	Browser bool          `short:"b" help:"Fetch pages with headless Chrome"`
	Verbose bool          `short:"v" help:"Show progress and why engines returned nothing"`
	Engine  []string      `short:"e" help:"Only query this engine (repeatable)"`
	Plain   bool          `help:"Print plain uncolored output"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query []string `arg:"" optional:"" help:"Search query (prompted for when omitted)"`

	SearchFlags `embed:""`
}

// MenuCmd is the interactive menu, run when no command is given.
type MenuCmd struct {
	SearchFlags `embed:""`
}

// TodoCmd groups the to-do subcommands.
type TodoCmd struct {
	Add    TodoAddCmd    `cmd:"" help:"Add a task"`
	List   TodoListCmd   `cmd:"" help:"List tasks"`
	Done   TodoDoneCmd   `cmd:"" help:"Mark a task as done"`
	Rename TodoRenameCmd `cmd:"" help:"Change a task title"`
	Delete TodoDeleteCmd `cmd:"" help:"Delete a task"`
}

// TodoAddCmd is the "todo add" subcommand.
type TodoAddCmd struct {
	Title []string `arg:"" help:"Task title"`
}

// TodoListCmd is the "todo list" subcommand.
type TodoListCmd struct {
	Pending bool `short:"p" help:"Only show tasks that are not done"`
}

// TodoDoneCmd is the "todo done" subcommand.
type TodoDoneCmd struct {
	ID   string `arg:"" help:"Task ID or unique prefix"`
	Undo bool   `help:"Mark the task as not done"`
}

// TodoRenameCmd is the "todo rename" subcommand.
type TodoRenameCmd struct {
	ID    string   `arg:"" help:"Task ID or unique prefix"`
	Title []string `arg:"" help:"New title"`
}

// TodoDeleteCmd is the "todo delete" subcommand.
type TodoDeleteCmd struct {
	ID string `arg:"" help:"Task ID or unique prefix"`
}

// GistCmd groups the gist subcommands.
type GistCmd struct {
	Add    GistAddCmd    `cmd:"" help:"Save a gist"`
	List   GistListCmd   `cmd:"" help:"List gists"`
	Show   GistShowCmd   `cmd:"" help:"Print a gist"`
	Delete GistDeleteCmd `cmd:"" help:"Delete a gist"`
	Clip   GistClipCmd   `cmd:"" help:"Save a web page as a markdown gist"`
	Export GistExportCmd `cmd:"" help:"Write all gists to a directory as markdown"`
}

// GistAddCmd is the "gist add" subcommand.
type GistAddCmd struct {
	Title   string `arg:"" help:"Gist title"`
	Content string `arg:"" help:"Gist content"`
}

// GistListCmd is the "gist list" subcommand.
type GistListCmd struct {
	Limit int `short:"n" default:"0" help:"Maximum number of gists (0 for all)"`
}

// GistShowCmd is the "gist show" subcommand.
type GistShowCmd struct {
	ID string `arg:"" help:"Gist ID or unique prefix"`
}

// GistDeleteCmd is the "gist delete" subcommand.
type GistDeleteCmd struct {
	ID string `arg:"" help:"Gist ID or unique prefix"`
}

// GistClipCmd is the "gist clip" subcommand.
type GistClipCmd struct {
	URL     string        `arg:"" help:"Page URL"`
	Title   string        `help:"Gist title (defaults to the page title)"`
	Timeout time.Duration `short:"t" default:"30s" help:"Fetch timeout"`
	Browser bool          `short:"b" help:"Fetch the page with headless Chrome"`
}

// GistExportCmd is the "gist export" subcommand.
type GistExportCmd struct {
	Dir string `arg:"" help:"Output directory (replaced on success)"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Limit int    `short:"n" default:"20" help:"Number of entries to show"`
	Query string `short:"q" help:"Only show searches for this exact query"`
	Clear bool   `help:"Delete all search history"`
}

// NewCmd is the "new" subcommand.
type NewCmd struct {
	Dir         string `arg:"" help:"Directory for the new project"`
	Repo        string `required:"" help:"Template git repository URL"`
	Installer   string `default:"npm install" help:"Command run inside the project after cloning"`
	SkipInstall bool   `help:"Do not run the installer"`
}

// fail prints err the way every command reports errors and returns it.
func fail(deps *Dependencies, err error) error {
	fmt.Fprintf(deps.Stderr, "error: %s\n", greeenboii.ErrorMessage(err))
	return err
}
