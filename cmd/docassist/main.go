package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docassist/internal/apiclient"
	"docassist/internal/cli"
	"docassist/internal/config"
	"docassist/internal/pkg/logger"
	"docassist/internal/workspace"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Logger writes to file only; the terminal belongs to the REPL
	appLogger := logger.NewIsolatedLogger(cfg.App.LogFilePath)
	defer appLogger.Sync()

	// 3. Cancel in-flight requests on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 4. Wire transport, workspace and console
	timeout := time.Duration(cfg.App.RequestTimeoutSeconds) * time.Second
	client := apiclient.NewClient(cfg.App.ServiceURL, timeout, appLogger)
	console := cli.NewConsole(os.Stdin, os.Stdout)
	ws := workspace.New(client, console, appLogger)

	appLogger.Info("Main", "client started", map[string]interface{}{
		"service_url": cfg.App.ServiceURL, "env": cfg.App.Environment,
	})

	// 5. Run REPL
	if err := cli.NewApp(ws, console, appLogger).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("\nGoodbye.")
}
