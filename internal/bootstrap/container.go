package bootstrap

import (
	"context"
	"path/filepath"

	"docassist/internal/config"
	"docassist/internal/controller"
	"docassist/internal/pkg/logger"
	"docassist/internal/repository/contract"
	"docassist/internal/repository/memory"
	"docassist/internal/repository/redisstore"
	"docassist/internal/service"
	"docassist/pkg/llm"
	"docassist/pkg/llm/factory"

	"github.com/redis/go-redis/v9"
)

type Container struct {
	Logger logger.ILogger

	HealthController   controller.IHealthController
	DocumentController controller.IDocumentController
	ChatbotController  controller.IChatbotController
	ReportController   controller.IReportController

	redis *redis.Client
}

func NewContainer(cfg *config.Config, sysLogger logger.ILogger) *Container {
	documentRepo := memory.NewDocumentRepository()
	historyRepo, rdb := newChatHistoryRepository(cfg.Stub.RedisURL, sysLogger)

	documentService := service.NewDocumentService(documentRepo, service.DocumentServiceConfig{
		ChunkSize:     cfg.Stub.ChunkSize,
		ChunkOverlap:  cfg.Stub.ChunkOverlap,
		DriveFolder:   cfg.Stub.DriveFolder,
		DriveLinkBase: cfg.Stub.DriveLinkBase,
		UploadDir:     filepath.Join(cfg.Stub.DataDir, "uploads"),
	}, sysLogger)
	generator := newGenerator(cfg.Stub, sysLogger)
	chatService := service.NewChatService(documentService, historyRepo, generator, cfg.Stub.TopK, cfg.Stub.MaxHistory, sysLogger)
	reportService := service.NewReportService(documentService, generator, filepath.Join(cfg.Stub.DataDir, "reports"), cfg.Stub.TopK, sysLogger)

	return &Container{
		Logger:             sysLogger,
		HealthController:   controller.NewHealthController(generator, cfg.Stub.LLMProvider),
		DocumentController: controller.NewDocumentController(documentService),
		ChatbotController:  controller.NewChatbotController(chatService),
		ReportController:   controller.NewReportController(reportService),
		redis:              rdb,
	}
}

// newGenerator returns nil, leaving answers extractive, when no provider is set
// or the configured one cannot be built.
func newGenerator(cfg config.StubConfig, log logger.ILogger) llm.LLMProvider {
	generator, err := factory.NewLLMProvider(factory.Config{
		Provider: cfg.LLMProvider,
		Model:    cfg.LLMModel,
		BaseURL:  cfg.LLMBaseURL,
		APIKey:   cfg.LLMAPIKey,
	})
	if err != nil {
		log.Warn("Bootstrap", "LLM provider unavailable, answering extractively", map[string]interface{}{"error": err.Error()})
		return nil
	}
	if generator != nil {
		log.Info("Bootstrap", "LLM provider configured", map[string]interface{}{
			"provider": cfg.LLMProvider, "model": generator.Model(),
		})
	}
	return generator
}

// newChatHistoryRepository uses Redis when a URL is configured and reachable,
// falling back to the in-memory cache otherwise.
func newChatHistoryRepository(redisURL string, log logger.ILogger) (contract.ChatHistoryRepository, *redis.Client) {
	if redisURL == "" {
		log.Info("Bootstrap", "using in-memory chat history", nil)
		return memory.NewChatHistoryRepository(), nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn("Bootstrap", "failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: redisURL}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Warn("Bootstrap", "failed to connect to Redis, using in-memory chat history", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return memory.NewChatHistoryRepository(), nil
	}
	log.Info("Bootstrap", "using Redis chat history", map[string]interface{}{"addr": opt.Addr})
	return redisstore.NewChatHistoryRepository(rdb), rdb
}

func (c *Container) Close() error {
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}
