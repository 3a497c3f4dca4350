package controller

import (
	"errors"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/store"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrNotPlayersTurn),
		errors.Is(err, model.ErrGameNotInProgress),
		errors.Is(err, model.ErrAlreadyTwoPlayers),
		errors.Is(err, model.ErrCannotJoinOwnGame),
		errors.Is(err, service.ErrDuplicateConnection):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrInvalidSquare),
		errors.Is(err, model.ErrInvalidPromotion),
		errors.Is(err, model.ErrIllegalMove):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

func (gc *GameController) fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		gc.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		msg = "internal server error"
	}
	return c.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}
