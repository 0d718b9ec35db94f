package controller

import (
	"docassist/internal/dto"
	"docassist/internal/pkg/serverutils"
	"docassist/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	Send(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
}

type chatbotController struct {
	chatService service.IChatService
}

func NewChatbotController(chatService service.IChatService) IChatbotController {
	return &chatbotController{
		chatService: chatService,
	}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.Send)
	r.Post("/chat/clear", c.Clear)
}

func (c *chatbotController) Send(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.Send(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *chatbotController) Clear(ctx *fiber.Ctx) error {
	res, err := c.chatService.Clear(ctx.UserContext(), ctx.Query("session_id"))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
