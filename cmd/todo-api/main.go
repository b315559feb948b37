// main is the entry point for the todo API server
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cirocosta/todo-api/internal/api"
	"github.com/cirocosta/todo-api/internal/config"
	"github.com/cirocosta/todo-api/internal/logging"
	"github.com/cirocosta/todo-api/internal/repository"
	"github.com/cirocosta/todo-api/internal/service"
	"github.com/cirocosta/todo-api/internal/telemetry"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd, args := os.Args[1], os.Args[2:]

	var err error
	switch cmd {
	case "run":
		err = runServer(args)
	case "openapi-gen":
		err = generateOpenAPI(args)
	default:
		fmt.Printf("Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "todo-api %s: %v\n", cmd, err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`
Usage: todo-api <command> [options]

Commands:
  run          Start the HTTP server
  openapi-gen  Generate OpenAPI documentation

Run 'todo-api <command> -h' for more information on a command.
`)
}

func runServer(args []string) error {
	cfg, err := config.Load(flag.NewFlagSet("run", flag.ContinueOnError), args)
	if err != nil {
		return err
	}

	logger, err := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	// create context that listens for interrupts
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:         cfg.Telemetry.Enabled,
		ServiceName:     cfg.Telemetry.ServiceName,
		ServiceVersion:  api.Version,
		MetricsInterval: cfg.Telemetry.MetricsInterval.Duration,
	})
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}()

	// setup dependencies
	todoRepo, err := openRepository(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.Storage.Driver, err)
	}
	defer func() {
		if err := todoRepo.Close(); err != nil {
			logger.Error("storage close error", "error", err)
		}
	}()
	todoService := service.NewTodoService(todoRepo)

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: api.NewRouter(todoService, logger),
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			"addr", cfg.Server.Addr,
			"storage", cfg.Storage.Driver,
			"telemetry", cfg.Telemetry.Enabled,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// wait for interrupt or listener failure
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	// shutdown server gracefully
	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// openRepository returns the store selected by cfg.Driver
func openRepository(ctx context.Context, cfg config.StorageConfig) (repository.TodoRepository, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return repository.NewSQLiteTodoRepository(ctx, cfg.Path)
	case config.DriverPostgres:
		return repository.NewPostgresTodoRepository(ctx, cfg.DSN)
	case config.DriverMemory:
		return repository.NewInMemoryTodoRepository(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func generateOpenAPI(args []string) error {
	fs := flag.NewFlagSet("openapi-gen", flag.ContinueOnError)
	output := fs.String("o", "openapi.json", "Output file path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := slog.New(slog.DiscardHandler)

	// the mock service is never called, only the route docs are needed
	data, err := api.NewRouter(api.NewMockTodoService(), logger).OpenAPIJSON()
	if err != nil {
		return fmt.Errorf("marshal openapi spec: %w", err)
	}

	if err := os.WriteFile(*output, data, 0644); err != nil {
		return fmt.Errorf("write openapi spec to file '%s': %w", *output, err)
	}

	fmt.Printf("OpenAPI spec generated at %s\n", *output)
	return nil
}
