package controller

import (
	"ai-search-be/internal/constant"
	"ai-search-be/internal/dto"
	"ai-search-be/internal/pkg/serverutils"
	"ai-search-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IConversationController interface {
	RegisterRoutes(r fiber.Router)
	Current(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	ToggleFavorite(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type conversationController struct {
	service service.IConversationService
}

func NewConversationController(service service.IConversationService) IConversationController {
	return &conversationController{service: service}
}

func (c *conversationController) RegisterRoutes(r fiber.Router) {
	r.Get("/conversation", c.Current)
	r.Post("/clear", c.Clear)

	h := r.Group("/conversations")
	h.Get("/list", c.List)
	h.Post("/new", c.Create)
	h.Get("/:id", c.Show)
	h.Post("/:id/favorite", c.ToggleFavorite)
	h.Delete("/:id", c.Delete)
}

func (c *conversationController) Current(ctx *fiber.Ctx) error {
	handle := serverutils.HandleFrom(ctx, constant.UserHandleLocal)

	res, err := c.service.Current(ctx.UserContext(), handle)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *conversationController) Clear(ctx *fiber.Ctx) error {
	handle := serverutils.HandleFrom(ctx, constant.UserHandleLocal)

	if err := c.service.Clear(ctx.UserContext(), handle); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any](constant.MessageConversationCleared, nil))
}

func (c *conversationController) List(ctx *fiber.Ctx) error {
	var req dto.ListConversationsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	handle := serverutils.HandleFrom(ctx, constant.UserHandleLocal)
	res, err := c.service.List(ctx.UserContext(), handle, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list conversations", res))
}

func (c *conversationController) Create(ctx *fiber.Ctx) error {
	handle := serverutils.HandleFrom(ctx, constant.UserHandleLocal)

	res, err := c.service.Create(ctx.UserContext(), handle)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(constant.MessageConversationCreated, res))
}

func (c *conversationController) Show(ctx *fiber.Ctx) error {
	id, err := conversationID(ctx)
	if err != nil {
		return err
	}

	handle := serverutils.HandleFrom(ctx, constant.UserHandleLocal)
	res, err := c.service.Show(ctx.UserContext(), handle, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show conversation", res))
}

func (c *conversationController) ToggleFavorite(ctx *fiber.Ctx) error {
	id, err := conversationID(ctx)
	if err != nil {
		return err
	}

	handle := serverutils.HandleFrom(ctx, constant.UserHandleLocal)
	res, err := c.service.ToggleFavorite(ctx.UserContext(), handle, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success toggle favorite", res))
}

func (c *conversationController) Delete(ctx *fiber.Ctx) error {
	id, err := conversationID(ctx)
	if err != nil {
		return err
	}

	handle := serverutils.HandleFrom(ctx, constant.UserHandleLocal)
	if err := c.service.Delete(ctx.UserContext(), handle, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any](constant.MessageConversationDeleted, nil))
}

func conversationID(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid conversation id")
	}
	return id, nil
}
