package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/MinhMaxx/personal-website-backend/internal/dto"
	"github.com/MinhMaxx/personal-website-backend/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

var errInvalidBody = errors.New("invalid request body")

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return errInvalidBody
	}
	return nil
}

func writeError(c echo.Context, status int, err error) error {
	return c.JSON(status, dto.MessageResponse{Message: err.Error()})
}

func writeMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, dto.MessageResponse{Message: message})
}

func writeValidationError(c echo.Context, status int, verr *service.ValidationError) error {
	response := dto.ValidationErrorResponse{Errors: make([]dto.FieldErrorResponse, 0, len(verr.Fields))}
	for _, f := range verr.Fields {
		response.Errors = append(response.Errors, dto.FieldErrorResponse{Field: f.Field, Message: f.Message})
	}
	return c.JSON(status, response)
}

// writeServiceError maps service errors onto HTTP responses. Anything not
// recognised is logged and answered with a generic 500.
func writeServiceError(c echo.Context, logger logrus.FieldLogger, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return writeValidationError(c, http.StatusBadRequest, verr)
	case errors.Is(err, service.ErrInvalidInput):
		return writeMessage(c, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, service.ErrTestimonialExists):
		return writeMessage(c, http.StatusBadRequest, "A testimonial with this email already exists.")
	case errors.Is(err, service.ErrVerificationPending):
		return writeMessage(c, http.StatusBadRequest, "A testimonial with this email is awaiting verification.")
	case errors.Is(err, service.ErrConflict):
		return writeMessage(c, http.StatusBadRequest, "Conflict")
	case errors.Is(err, service.ErrInvalidToken):
		return writeMessage(c, http.StatusBadRequest, "The verification link has expired, please try again.")
	case errors.Is(err, service.ErrTestimonialNotFound):
		return writeMessage(c, http.StatusNotFound, "Testimonial not found")
	case errors.Is(err, service.ErrInvalidCredentials):
		return writeMessage(c, http.StatusUnauthorized, "Incorrect credentials")
	case errors.Is(err, service.ErrMailDelivery):
		logger.WithError(err).WithField("path", c.Path()).Error("mail delivery failed")
		return writeMessage(c, http.StatusInternalServerError, "Failed to send email, please try again later.")
	}
	logger.WithError(err).WithField("path", c.Path()).Error("request failed")
	return writeMessage(c, http.StatusInternalServerError, "Internal server error")
}

func stringPtr(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
