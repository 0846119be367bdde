package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ionut-t/vkeyboard/config"
	"github.com/ionut-t/vkeyboard/core"
	"github.com/ionut-t/vkeyboard/internal/logging"
)

// runReplay lays the editor out with the configured font and geometry, runs
// the commands listed in path and writes the final state to w.
func runReplay(cfg config.Config, logger *logging.Logger, path string, w io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	commands, err := parseCommands(f)
	if err != nil {
		return err
	}

	face, err := core.LoadFace(cfg.Font.Face, cfg.Font.Size, cfg.Font.DPI)
	if err != nil {
		return err
	}
	metrics := core.NewFaceMetrics(face, cfg.Layout.LineHeight)

	e := core.New(metrics, core.WithLogger(logger.Logger), core.WithTab(cfg.Font.Tab))

	geometry := cfg.Layout.Geometry()
	oracle := core.GreedyWrapper{Metrics: metrics, Width: geometry.Width - geometry.PaddingLeft}
	if err := e.SyncLayout(geometry, oracle); err != nil {
		return err
	}

	if err := core.Run(context.Background(), e, core.NewSliceSource(commands...)); err != nil {
		return err
	}

	out := e.Output()
	fmt.Fprintf(w, "selection %d %d\n", out.Selection.Start, out.Selection.End)
	fmt.Fprintf(w, "caret row %d\n", out.CaretRow)
	fmt.Fprintf(w, "scroll top %g\n", out.ScrollTop)
	for i, row := range e.Rows() {
		fmt.Fprintf(w, "%3d %q\n", i, row.Text)
	}

	return nil
}

// parseCommands reads one command per line: a command name, optionally
// followed by the text to insert or the click coordinates. Blank lines and
// lines starting with # are skipped.
func parseCommands(r io.Reader) ([]core.Command, error) {
	var commands []core.Command

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		cmd, err := parseCommand(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		commands = append(commands, cmd)
	}

	return commands, scanner.Err()
}

func parseCommand(text string) (core.Command, error) {
	name, arg, _ := strings.Cut(text, " ")

	kind, ok := core.ParseCommandKind(name)
	if !ok {
		return core.Command{}, fmt.Errorf("%w: %s", core.ErrUnknownCommand, name)
	}

	switch kind {
	case core.CmdInsertChar:
		unquoted, err := strconv.Unquote(arg)
		if err != nil {
			return core.Command{}, fmt.Errorf("insertChar wants a quoted string: %w", err)
		}
		return core.Insert(unquoted), nil

	case core.CmdClick:
		fields := strings.Fields(arg)
		if len(fields) != 2 {
			return core.Command{}, fmt.Errorf("click wants x and y, got %q", arg)
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return core.Command{}, fmt.Errorf("click x: %w", err)
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return core.Command{}, fmt.Errorf("click y: %w", err)
		}
		return core.Click(x, y), nil

	default:
		return core.Command{Kind: kind}, nil
	}
}
