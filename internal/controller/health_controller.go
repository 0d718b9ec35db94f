package controller

import (
	"docassist/internal/constant"
	"docassist/internal/dto"
	"docassist/pkg/llm"

	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
}

type healthController struct {
	generator llm.LLMProvider
	provider  string
}

// NewHealthController reports generator as the answering backend; a nil generator
// means answers are extractive.
func NewHealthController(generator llm.LLMProvider, provider string) IHealthController {
	return &healthController{generator: generator, provider: provider}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	if c.generator == nil {
		return ctx.JSON(dto.HealthResponse{
			Status:      constant.HealthStatusOk,
			LlmProvider: constant.LlmProviderNone,
			LlmModel:    constant.LlmModelExtract,
		})
	}
	return ctx.JSON(dto.HealthResponse{
		Status:      constant.HealthStatusOk,
		LlmEnabled:  true,
		LlmProvider: c.provider,
		LlmModel:    c.generator.Model(),
	})
}
