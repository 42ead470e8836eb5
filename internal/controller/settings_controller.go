package controller

import (
	"ai-search-be/internal/constant"
	"ai-search-be/internal/dto"
	"ai-search-be/internal/pkg/serverutils"
	"ai-search-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISettingsController interface {
	RegisterRoutes(r fiber.Router)
	Get(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
}

type settingsController struct {
	service service.ISettingsService
}

func NewSettingsController(service service.ISettingsService) ISettingsController {
	return &settingsController{service: service}
}

func (c *settingsController) RegisterRoutes(r fiber.Router) {
	r.Get("/settings", c.Get)
	r.Post("/settings", c.Update)
}

func (c *settingsController) Get(ctx *fiber.Ctx) error {
	handle := serverutils.HandleFrom(ctx, constant.UserHandleLocal)

	res, err := c.service.Get(ctx.UserContext(), handle)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *settingsController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateSettingsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	handle := serverutils.HandleFrom(ctx, constant.UserHandleLocal)
	res, err := c.service.Update(ctx.UserContext(), handle, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(constant.MessageSettingsSaved, res))
}
