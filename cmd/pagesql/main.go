// Command pagesql is the shell and maintenance tool for pagesql database files.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/tuannm99/pagesql/internal"
	"github.com/tuannm99/pagesql/internal/engine"
	"github.com/tuannm99/pagesql/internal/snapshot"
	"github.com/tuannm99/pagesql/internal/storage"
)

// Globals are the flags shared by every command.
type Globals struct {
	Config   string `name:"config" short:"c" help:"YAML config file" type:"path"`
	LogLevel string `name:"log-level" help:"Log level (debug, info, warn, error); overrides log.level"`

	cfg *internal.PageSQLConfig
}

// CLI defines the command-line interface for pagesql.
var CLI struct {
	Globals

	Repl     ReplCmd     `cmd:"" default:"withargs" help:"Interactive shell on a database file"`
	Exec     ExecCmd     `cmd:"" help:"Execute statements and close the database"`
	Inspect  InspectCmd  `cmd:"" help:"Describe the header and data region of a database file"`
	Snapshot SnapshotCmd `cmd:"" help:"Write an xz-compressed snapshot of a closed database"`
	Restore  RestoreCmd  `cmd:"" help:"Restore a database from a snapshot"`
}

// setup loads the config and installs the process logger.
func (g *Globals) setup() error {
	cfg, err := internal.LoadConfig(g.Config)
	if err != nil {
		return err
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.Log.Level))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	g.cfg = cfg
	return nil
}

func (g *Globals) engineOptions() engine.Options {
	return engine.Options{HeaderPages: g.cfg.Storage.HeaderPages}
}

func (g *Globals) storageOptions() storage.Options {
	return storage.Options{HeaderPages: g.cfg.Storage.HeaderPages}
}

// ExecCmd runs each statement in order, printing results like the shell.
type ExecCmd struct {
	DB         string   `arg:"" help:"Database file" type:"path"`
	Statements []string `arg:"" help:"Statements to execute"`
}

func (c *ExecCmd) Run(g *Globals) error {
	if err := g.setup(); err != nil {
		return err
	}
	db, err := engine.Open(c.DB, g.engineOptions())
	if err != nil {
		return err
	}

	s := newSession(db, os.Stdout)
	for _, stmt := range c.Statements {
		if _, err := s.handle(stmt); err != nil {
			return err
		}
		if s.closed {
			return nil
		}
	}
	return db.Close()
}

type InspectCmd struct {
	DB string `arg:"" help:"Database file" type:"existingfile"`
}

func (c *InspectCmd) Run(g *Globals) error {
	if err := g.setup(); err != nil {
		return err
	}
	l, err := storage.Inspect(c.DB, g.storageOptions())
	if err != nil {
		return err
	}
	return l.Print(os.Stdout)
}

type SnapshotCmd struct {
	DB  string `arg:"" help:"Database file" type:"existingfile"`
	Out string `arg:"" help:"Snapshot file to write" type:"path"`
}

func (c *SnapshotCmd) Run(g *Globals) error {
	if err := g.setup(); err != nil {
		return err
	}
	m, err := snapshot.Create(c.DB, c.Out)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d bytes, blake3 %s\n", c.Out, m.Size, m.Digest)
	return nil
}

type RestoreCmd struct {
	Snapshot string `arg:"" help:"Snapshot file" type:"existingfile"`
	DB       string `arg:"" help:"Database file to write" type:"path"`
	Force    bool   `help:"Overwrite an existing database file"`
}

func (c *RestoreCmd) Run(g *Globals) error {
	if err := g.setup(); err != nil {
		return err
	}
	m, err := snapshot.Restore(c.Snapshot, c.DB, c.Force)
	if err != nil {
		return err
	}
	fmt.Printf("%s: restored %d bytes from %s\n", c.DB, m.Size, c.Snapshot)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("pagesql"),
		kong.Description("Single-file paged SQL storage engine"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(&CLI.Globals)
	ctx.FatalIfErrorf(err)
}
