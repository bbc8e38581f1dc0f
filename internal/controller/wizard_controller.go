package controller

import (
	"building-book-be/internal/apperror"
	"building-book-be/internal/dto"
	"building-book-be/internal/pkg/serverutils"
	"building-book-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IWizardController interface {
	RegisterRoutes(r fiber.Router)
	Initialize(ctx *fiber.Ctx) error
	CurrentStep(ctx *fiber.Ctx) error
	SetField(ctx *fiber.Ctx) error
	GoNext(ctx *fiber.Ctx) error
	GoPrevious(ctx *fiber.Ctx) error
	SaveDraft(ctx *fiber.Ctx) error
	AttachDocuments(ctx *fiber.Ctx) error
}

type wizardController struct {
	service service.IWizardService
}

func NewWizardController(service service.IWizardService) IWizardController {
	return &wizardController{service: service}
}

func (c *wizardController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/digitalbook/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post(":buildingId/wizard", c.Initialize)
	h.Get(":buildingId/wizard/step", c.CurrentStep)
	h.Put(":buildingId/wizard/field", c.SetField)
	h.Post(":buildingId/wizard/next", c.GoNext)
	h.Post(":buildingId/wizard/previous", c.GoPrevious)
	h.Post(":buildingId/wizard/draft", c.SaveDraft)
	h.Post(":buildingId/wizard/attachments", c.AttachDocuments)
}

func buildingIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("buildingId"))
	if err != nil {
		return uuid.Nil, &apperror.BadRequestError{Detail: "invalid building id"}
	}
	return id, nil
}

func (c *wizardController) Initialize(ctx *fiber.Ctx) error {
	buildingId, err := buildingIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.InitWizardRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return &apperror.BadRequestError{Detail: err.Error()}
		}
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Initialize(ctx.Context(), buildingId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success initialize wizard", res))
}

func (c *wizardController) CurrentStep(ctx *fiber.Ctx) error {
	buildingId, err := buildingIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.CurrentStep(ctx.Context(), buildingId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get current step", res))
}

func (c *wizardController) SetField(ctx *fiber.Ctx) error {
	buildingId, err := buildingIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.SetFieldRequest
	if err := ctx.BodyParser(&req); err != nil {
		return &apperror.BadRequestError{Detail: err.Error()}
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.SetField(ctx.Context(), buildingId, &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success set field", nil))
}

func (c *wizardController) GoNext(ctx *fiber.Ctx) error {
	buildingId, err := buildingIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GoNext(ctx.Context(), buildingId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success advance wizard", res))
}

func (c *wizardController) GoPrevious(ctx *fiber.Ctx) error {
	buildingId, err := buildingIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GoPrevious(ctx.Context(), buildingId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success step back", res))
}

func (c *wizardController) SaveDraft(ctx *fiber.Ctx) error {
	buildingId, err := buildingIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.SaveDraft(ctx.Context(), buildingId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save draft", res))
}

func (c *wizardController) AttachDocuments(ctx *fiber.Ctx) error {
	buildingId, err := buildingIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.AttachDocumentsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return &apperror.BadRequestError{Detail: err.Error()}
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.AttachDocuments(ctx.Context(), buildingId, &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success attach documents", nil))
}
