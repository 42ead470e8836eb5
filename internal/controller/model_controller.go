package controller

import (
	"ai-search-be/internal/pkg/serverutils"
	"ai-search-be/pkg/llm/registry"

	"github.com/gofiber/fiber/v2"
)

type IModelController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
}

type modelController struct {
	registry *registry.Registry
}

func NewModelController(reg *registry.Registry) IModelController {
	return &modelController{registry: reg}
}

func (c *modelController) RegisterRoutes(r fiber.Router) {
	r.Get("/models", c.List)
}

type modelListResponse struct {
	Default string           `json:"default"`
	Models  []registry.Model `json:"models"`
}

func (c *modelController) List(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success list models", modelListResponse{
		Default: c.registry.Default().ID,
		Models:  c.registry.All(),
	}))
}
