package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vk/pycacher/internal/app"
	"github.com/vk/pycacher/internal/cli"
	"github.com/vk/pycacher/internal/ctxlog"
)

// main is the entrypoint for the pycacher application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The real main function handles errors and exit codes.
	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	flags, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	ctx = ctxlog.WithLogger(ctx, slog.Default())
	cfg, err := app.Resolve(ctx, flags, app.DefaultLoaders())
	if err != nil {
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}

	if cfg.InitPath != "" {
		if err := app.InitConfig(cfg); err != nil {
			return err
		}
		fmt.Fprintf(outW, "Wrote starter config to %s\n", cfg.InitPath)
		return nil
	}

	_, err = app.NewApp(outW, errW, cfg, nil).Run(ctx)
	return err
}
