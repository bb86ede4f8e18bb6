// Command whitedew starts the WhiteDew application skeleton.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/hupe1980/whitedew"
)

var (
	memoryLimitFlag = &cli.Int64Flag{
		Name:    "memory-limit",
		Usage:   "Cap on memory committed by all arenas, in bytes (0 = unlimited)",
		EnvVars: []string{"WHITEDEW_MEMORY_LIMIT"},
	}
	scratchCapacityFlag = &cli.IntFlag{
		Name:  "scratch-capacity",
		Usage: "Address space reserved per scratch arena, in bytes",
		Value: whitedew.DefaultScratchCapacity,
	}
	outputRateFlag = &cli.Int64Flag{
		Name:  "output-rate",
		Usage: "Output throughput limit in bytes per second (0 = unlimited)",
	}
	heapFlag = &cli.BoolFlag{
		Name:  "heap",
		Usage: "Back arenas with heap memory instead of reserved address space",
	}
	noPoisonFlag = &cli.BoolFlag{
		Name:  "no-poison",
		Usage: "Disable poison fills on arena allocation and reset",
	}
	logLevelFlag = &cli.StringFlag{
		Name:    "log-level",
		Usage:   "Log level (debug, info, warn, error)",
		Value:   "warn",
		EnvVars: []string{"WHITEDEW_LOG_LEVEL"},
	}
	logJSONFlag = &cli.BoolFlag{
		Name:  "log-json",
		Usage: "Format logs as JSON",
	}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp(os.Stdout, os.Stderr).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, whitedew.FormatError(err))
		stop()
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "whitedew",
		Usage:     "the WhiteDew text editor",
		ArgsUsage: "[file...]",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			memoryLimitFlag,
			scratchCapacityFlag,
			outputRateFlag,
			heapFlag,
			noPoisonFlag,
			logLevelFlag,
			logJSONFlag,
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	logger, err := newLogger(c)
	if err != nil {
		return err
	}

	opts := []whitedew.Option{
		whitedew.WithLogger(logger),
		whitedew.WithOutput(c.App.Writer),
		whitedew.WithMemoryLimit(c.Int64(memoryLimitFlag.Name)),
		whitedew.WithScratchCapacity(c.Int(scratchCapacityFlag.Name)),
		whitedew.WithOutputRateLimit(c.Int64(outputRateFlag.Name)),
		whitedew.WithPoison(!c.Bool(noPoisonFlag.Name)),
	}
	if c.Bool(heapFlag.Name) {
		opts = append(opts, whitedew.WithBackend(whitedew.BackendHeap))
	}

	app, err := whitedew.New(opts...)
	if err != nil {
		return err
	}

	for _, path := range c.Args().Slice() {
		if _, err := app.Open(c.Context, path); err != nil {
			_ = app.Close()
			return err
		}
	}

	if err := app.Run(c.Context); err != nil {
		_ = app.Close()
		return err
	}
	return app.Close()
}

func newLogger(c *cli.Context) (*whitedew.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.String(logLevelFlag.Name)))); err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", logLevelFlag.Name, err)
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.Bool(logJSONFlag.Name) {
		return whitedew.NewLogger(slog.NewJSONHandler(c.App.ErrWriter, opts)), nil
	}
	return whitedew.NewLogger(slog.NewTextHandler(c.App.ErrWriter, opts)), nil
}
