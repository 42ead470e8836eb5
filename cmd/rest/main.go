package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ai-search-be/internal/bootstrap"
	"ai-search-be/internal/config"
	"ai-search-be/internal/constant"
	"ai-search-be/internal/pkg/logger"
	"ai-search-be/internal/server"
	"ai-search-be/internal/service"
	"ai-search-be/internal/tracer"
	"ai-search-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	shutdownTracer := tracer.InitTracer(sysLogger)
	defer shutdownTracer(context.Background())

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.IsProduction())
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(gormDB, cfg, sysLogger)
	if err != nil {
		log.Panicf("Unable to build container: %v", err)
	}
	defer container.Close()

	// 4. Start Background Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := container.ConsumerService.Consume(ctx); err != nil {
		sysLogger.Error("MAIN", "Activity consumer failed to start", map[string]interface{}{"error": err.Error()})
	}
	if container.AuditSubscriber != nil {
		err := container.AuditSubscriber.Subscribe(ctx, constant.EventChatAnswered, "answer-audit", service.NewAnswerAuditHandler(sysLogger))
		if err != nil {
			sysLogger.Warn("MAIN", "Answer audit subscription failed", map[string]interface{}{"error": err.Error()})
		}
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		sysLogger.Info("MAIN", "Shutting down", nil)
		if err := srv.Shutdown(); err != nil {
			sysLogger.Error("MAIN", "Shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	// 6. Run Server
	if err := srv.Run(); err != nil {
		sysLogger.Error("MAIN", "Server stopped", map[string]interface{}{"error": err.Error()})
	}
}
