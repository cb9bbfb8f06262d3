// postboard browses and creates posts on a JSON posts service.
//
// By default it runs an interactive terminal UI. With --serve it instead
// serves the same board as an HTML page, the way the Lambda entry does.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"postboard/internal/board"
	"postboard/internal/config"
	"postboard/internal/tui"
	"postboard/internal/web"
	"postboard/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var serveAddr string
	var logOutput string
	flagSet := pflag.NewFlagSet("postboard", pflag.ContinueOnError)
	flagSet.StringVar(&serveAddr, "serve", "", "serve the HTML board on this address instead of running the TUI (e.g. :8080)")
	flagSet.StringVar(&cfg.Backend, "backend", cfg.Backend, "posts backend: http or s3")
	flagSet.StringVar(&cfg.Endpoint, "endpoint", cfg.Endpoint, "base URL of the posts API")
	flagSet.StringVar(&cfg.Bucket, "bucket", cfg.Bucket, "S3 bucket for the s3 backend")
	flagSet.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file (TUI mode discards them otherwise)")
	flagSet.Lookup("serve").NoOptDefVal = ":" + cfg.Port
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var logWriter io.Writer = os.Stderr
	if serveAddr == "" {
		logWriter = io.Discard
	}
	if logOutput != "" {
		f, err := os.OpenFile(logOutput, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log output: %w", err)
		}
		defer f.Close()
		logWriter = f
	}
	logger.Init(logWriter, logger.ParseLevel(cfg.LogLevel))

	service, err := cfg.PostService(ctx)
	if err != nil {
		return err
	}

	if serveAddr != "" {
		return serve(ctx, serveAddr, web.NewHandler(service))
	}

	model := tui.NewModel(ctx, board.New(service))
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(program)
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func serve(ctx context.Context, addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	logger.Info("server is starting", "addr", addr)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
