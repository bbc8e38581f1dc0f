package controller

import (
	"building-book-be/internal/pkg/serverutils"
	"building-book-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IBookController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Progress(ctx *fiber.Ctx) error
}

type bookController struct {
	service service.IBookService
}

func NewBookController(service service.IBookService) IBookController {
	return &bookController{service: service}
}

func (c *bookController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/digitalbook/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get(":buildingId/book", c.Show)
	h.Get(":buildingId/progress", c.Progress)
}

func (c *bookController) Show(ctx *fiber.Ctx) error {
	buildingId, err := buildingIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Show(ctx.Context(), buildingId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show digital book", res))
}

func (c *bookController) Progress(ctx *fiber.Ctx) error {
	buildingId, err := buildingIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Progress(ctx.Context(), buildingId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get digital book progress", res))
}
