package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MinhMaxx/personal-website-backend/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteServiceError(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"exists", service.ErrTestimonialExists, http.StatusBadRequest, "A testimonial with this email already exists."},
		{"pending", service.ErrVerificationPending, http.StatusBadRequest, "A testimonial with this email is awaiting verification."},
		{"token", service.ErrInvalidToken, http.StatusBadRequest, "The verification link has expired, please try again."},
		{"not found", service.ErrTestimonialNotFound, http.StatusNotFound, "Testimonial not found"},
		{"credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "Incorrect credentials"},
		{"mail", fmt.Errorf("%w: boom", service.ErrMailDelivery), http.StatusInternalServerError, "Failed to send email, please try again later."},
		{"unknown", errors.New("db exploded"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			require.NoError(t, writeServiceError(c, logger, tc.err))

			assert.Equal(t, tc.status, rec.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"message":%q}`, tc.message), rec.Body.String())
		})
	}
}

func TestWriteServiceError_ValidationLists(t *testing.T) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	verr := &service.ValidationError{Fields: []service.FieldError{
		{Field: "name", Message: "Name is required"},
		{Field: "email", Message: "Provide a valid email address"},
	}}

	require.NoError(t, writeServiceError(c, logrus.New(), verr))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"errors":[{"field":"name","message":"Name is required"},{"field":"email","message":"Provide a valid email address"}]}`, rec.Body.String())
}
