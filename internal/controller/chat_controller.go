package controller

import (
	"ai-search-be/internal/constant"
	"ai-search-be/internal/dto"
	"ai-search-be/internal/pkg/serverutils"
	"ai-search-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendChat(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.SendChat)
}

func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	handle := serverutils.HandleFrom(ctx, constant.UserHandleLocal)
	res, err := c.service.SendChat(ctx.UserContext(), handle, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
