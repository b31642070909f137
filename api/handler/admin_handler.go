package handler

import (
	"errors"
	"net/http"

	"github.com/MinhMaxx/personal-website-backend/api/middleware"
	"github.com/MinhMaxx/personal-website-backend/internal/dto"
	"github.com/MinhMaxx/personal-website-backend/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type AdminHandler struct {
	Service *service.AdminService
	Logger  logrus.FieldLogger
}

func NewAdminHandler(svc *service.AdminService, logger logrus.FieldLogger) *AdminHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &AdminHandler{Service: svc, Logger: logger}
}

func (h *AdminHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusUnprocessableEntity, err)
	}
	input := service.LoginInput{
		Username:  req.Username,
		Password:  req.Password,
		Code:      req.Code,
		IPAddress: stringPtr(c.RealIP()),
	}
	result, err := h.Service.Login(c.Request().Context(), input)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			return writeValidationError(c, http.StatusUnprocessableEntity, verr)
		}
		return writeServiceError(c, h.Logger, err)
	}
	return c.JSON(http.StatusOK, dto.LoginResponse{
		Message:   "Login successful",
		Token:     result.Token,
		ExpiresIn: int64(result.ExpiresIn.Seconds()),
	})
}

func (h *AdminHandler) Logout(c echo.Context) error {
	token, ok := middleware.TokenFromContext(c)
	if !ok {
		return writeMessage(c, http.StatusUnauthorized, "Authentication token is missing or invalid")
	}
	if err := h.Service.Logout(c.Request().Context(), token, stringPtr(c.RealIP())); err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	return c.String(http.StatusOK, "Logged out successfully")
}

// SecurityLogs lists audit entries for the action named in ?action=.
func (h *AdminHandler) SecurityLogs(c echo.Context) error {
	logs, err := h.Service.SecurityLog(c.Request().Context(), c.QueryParam("action"))
	if err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	return c.JSON(http.StatusOK, dto.SecurityLogsFromEntities(logs))
}

// Settings is the legacy Basic-guarded admin landing route.
func (h *AdminHandler) Settings(c echo.Context) error {
	return c.String(http.StatusOK, "List of all admin setting")
}
