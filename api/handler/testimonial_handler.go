package handler

import (
	"net/http"

	"github.com/MinhMaxx/personal-website-backend/internal/dto"
	"github.com/MinhMaxx/personal-website-backend/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type TestimonialHandler struct {
	Service *service.TestimonialService
	Logger  logrus.FieldLogger
}

func NewTestimonialHandler(svc *service.TestimonialService, logger logrus.FieldLogger) *TestimonialHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &TestimonialHandler{Service: svc, Logger: logger}
}

func (h *TestimonialHandler) Submit(c echo.Context) error {
	var req dto.SubmitTestimonialRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	input := service.SubmitTestimonialInput{
		Name:        req.Name,
		Email:       req.Email,
		Company:     req.Company,
		Position:    req.Position,
		Link:        req.Link,
		Testimonial: req.Testimonial,
	}
	if err := h.Service.Submit(c.Request().Context(), input); err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	return c.String(http.StatusOK, "Please check your email for verification.")
}

func (h *TestimonialHandler) Verify(c echo.Context) error {
	if _, err := h.Service.Redeem(c.Request().Context(), c.Param("token")); err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	return c.String(http.StatusOK, "Testimonial verified! Awaiting admin approval.")
}

func (h *TestimonialHandler) ListPublished(c echo.Context) error {
	testimonials, err := h.Service.ListPublished(c.Request().Context())
	if err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	return c.JSON(http.StatusOK, dto.PublicTestimonialsFromEntities(testimonials))
}

func (h *TestimonialHandler) ListPending(c echo.Context) error {
	testimonials, err := h.Service.ListPending(c.Request().Context())
	if err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	return c.JSON(http.StatusOK, dto.AdminTestimonialsFromEntities(testimonials))
}

func (h *TestimonialHandler) Approve(c echo.Context) error {
	testimonial, err := h.Service.Approve(c.Request().Context(), c.Param("id"), stringPtr(c.RealIP()))
	if err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	return c.JSON(http.StatusOK, dto.ApproveTestimonialResponse{
		Message:     "Testimonial approved successfully!",
		Testimonial: dto.AdminTestimonialFromEntity(testimonial),
	})
}

func (h *TestimonialHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.Service.Delete(c.Request().Context(), id, stringPtr(c.RealIP())); err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	return c.String(http.StatusOK, "Deleted testimonial with ID: "+id)
}
