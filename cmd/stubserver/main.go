package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"docassist/internal/bootstrap"
	"docassist/internal/config"
	"docassist/internal/pkg/logger"
	"docassist/internal/server"
	"docassist/internal/tracer"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Tracer
	shutdownTracer := tracer.InitTracer(cfg.Stub)
	defer shutdownTracer(context.Background())

	// 3. Logger
	sysLogger := logger.NewZapLogger(cfg.Stub.LogFilePath, cfg.App.Environment == "production")
	defer sysLogger.Sync()

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg, sysLogger)
	defer container.Close()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Shut down on interrupt so deferred cleanup runs
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown()
	}()

	// 7. Run Server
	if err := srv.Run(); err != nil {
		log.Printf("server stopped: %v", err)
	}
}
