package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/tuannm99/pagesql/internal/engine"
	"github.com/tuannm99/pagesql/internal/sql/executor"
	"github.com/tuannm99/pagesql/internal/sql/planner"
	"github.com/tuannm99/pagesql/internal/storage"
)

// ReplCmd reads one statement per line until .exit or end of input.
type ReplCmd struct {
	DB string `arg:"" help:"Database file" type:"path"`
}

func (c *ReplCmd) Run(g *Globals) error {
	if err := g.setup(); err != nil {
		return err
	}
	db, err := engine.Open(c.DB, g.engineOptions())
	if err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          g.cfg.Repl.Prompt,
		HistoryFile:     g.cfg.Repl.History,
		InterruptPrompt: "^C",
		EOFPrompt:       ".exit",
	})
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("readline: %w", err)
	}
	defer func() { _ = rl.Close() }()

	s := newSession(db, os.Stdout)
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			// end of input behaves like .exit
			return db.Close()
		}

		exit, err := s.handle(line)
		if err != nil {
			// a fatal storage error leaves the file as it is
			return err
		}
		if exit {
			return nil
		}
	}
}

// session executes shell input against an open database.
type session struct {
	db     *engine.Database
	out    io.Writer
	closed bool
}

func newSession(db *engine.Database, out io.Writer) *session {
	return &session{db: db, out: out}
}

// handle runs one line of input. It reports exit once the database has been
// closed, and returns an error only when the session cannot continue.
func (s *session) handle(line string) (exit bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	if strings.HasPrefix(line, ".") {
		return s.meta(line)
	}

	plan, err := s.db.Prepare(line)
	if err != nil {
		slog.Debug("repl: prepare failed", "err", err)
		fmt.Fprintln(s.out, prepareMessage(planner.ResultOf(err), line))
		return false, nil
	}

	res, err := s.db.Execute(plan)
	if err != nil {
		if storage.IsFatal(err) {
			return true, err
		}
		slog.Debug("repl: execute failed", "err", err)
		fmt.Fprintln(s.out, executeMessage(executor.StatusOf(err)))
		return false, nil
	}

	if err := res.Print(s.out); err != nil {
		return true, err
	}
	fmt.Fprintln(s.out, executeMessage(executor.ExecuteSuccess))
	return false, nil
}

func (s *session) meta(line string) (bool, error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ".exit":
		s.closed = true
		return true, s.db.Close()

	case ".tables":
		for _, t := range s.db.Catalog().All() {
			fmt.Fprintln(s.out, t.Name)
		}

	case ".schema":
		if len(fields) != 2 {
			fmt.Fprintln(s.out, "Usage: .schema <table>")
			return false, nil
		}
		t, ok := s.db.Catalog().Find(fields[1])
		if !ok {
			fmt.Fprintln(s.out, prepareMessage(planner.PrepareTableNotFound, line))
			return false, nil
		}
		cols := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			cols[i] = c.Name + " " + c.Type.String()
		}
		fmt.Fprintf(s.out, "CREATE TABLE %s (%s)\n", t.Name, strings.Join(cols, ", "))

	default:
		fmt.Fprintf(s.out, "Unrecognized command '%s'\n", line)
	}
	return false, nil
}

func prepareMessage(r planner.PrepareResult, line string) string {
	switch r {
	case planner.PrepareUnrecognizedStatement:
		return fmt.Sprintf("Unrecognized keyword at start of '%s'.", line)
	case planner.PrepareStringTooLong:
		return "String is too long."
	case planner.PrepareNegativeID:
		return "ID must be positive."
	case planner.PrepareDuplicateTable:
		return "Table already exists."
	case planner.PrepareTableNotFound:
		return "Table not found."
	case planner.PrepareTypeMismatch:
		return "Type mismatch."
	default:
		return "Syntax error. Could not parse statement."
	}
}

func executeMessage(r executor.ExecuteResult) string {
	switch r {
	case executor.ExecuteSuccess:
		return "Executed."
	case executor.ExecuteTableFull:
		return "Error: Table full."
	case executor.ExecuteDuplicateKey:
		return "Error: Duplicate key."
	case executor.ExecuteInvalidInput:
		return "Error: Invalid input."
	default:
		return "Error: Unknown error."
	}
}
