package serverutils

import (
	"errors"

	"building-book-be/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware translates the error taxonomy into HTTP
// responses. Validation failures name the blocked fields so the client
// can show a blocking message rather than a silent no-op; fetch/save
// failures get retry-oriented statuses.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var badRequest *apperror.BadRequestError
		if errors.As(err, &badRequest) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: badRequest.Error()})
		}

		var validation *apperror.ValidationError
		if errors.As(err, &validation) {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
				Message: validation.Error(),
				Fields:  validation.Missing,
			})
		}

		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse{Message: notFound.Error()})
		}

		var conflict *apperror.ConflictError
		if errors.As(err, &conflict) {
			return ctx.Status(fiber.StatusConflict).JSON(ErrorResponse{Message: conflict.Error()})
		}

		var unknown *apperror.UnknownSectionError
		if errors.As(err, &unknown) {
			return ctx.Status(fiber.StatusConflict).JSON(ErrorResponse{Message: unknown.Error()})
		}

		var unavailable *apperror.UnavailableError
		if errors.As(err, &unavailable) {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
				Message: unavailable.Error() + "; return to the building hub and try again",
			})
		}

		var fetch *apperror.FetchError
		var save *apperror.SaveError
		if errors.As(err, &fetch) || errors.As(err, &save) {
			return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
				Message: err.Error() + "; please retry",
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse{Message: fiberErr.Message})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: err.Error()})
	}
}
