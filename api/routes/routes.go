package routes

import (
	"net/http"
	"time"

	"github.com/MinhMaxx/personal-website-backend/api/handler"
	"github.com/MinhMaxx/personal-website-backend/api/middleware"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	Echo           *echo.Echo
	Testimonials   *handler.TestimonialHandler
	Admin          *handler.AdminHandler
	AuthMiddleware middleware.AuthMiddleware
	// BasicAuth guards GET /admin. Nil leaves the route unregistered.
	BasicAuth  echo.MiddlewareFunc
	SubmitRate *middleware.RateLimiter
	LoginRate  *middleware.RateLimiter
}

func NewRouter(
	e *echo.Echo,
	testimonials *handler.TestimonialHandler,
	admin *handler.AdminHandler,
	authMiddleware middleware.AuthMiddleware,
	basicAuth echo.MiddlewareFunc,
) *Router {
	submitRate := middleware.PerWindow(3, time.Hour)
	submitRate.Message = "Too many testimonials created from this IP, please try again after an hour"
	loginRate := middleware.PerWindow(10, 15*time.Minute)
	loginRate.Message = "Too many login attempts, please try again later."

	return &Router{
		Echo:           e,
		Testimonials:   testimonials,
		Admin:          admin,
		AuthMiddleware: authMiddleware,
		BasicAuth:      basicAuth,
		SubmitRate:     middleware.NewRateLimiter(submitRate),
		LoginRate:      middleware.NewRateLimiter(loginRate),
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo
	// Rate limits and audit entries key on c.RealIP, which must not come
	// from client-supplied headers unless a proxy setup says so.
	if e.IPExtractor == nil {
		e.IPExtractor = echo.ExtractIPDirect()
	}
	requireAdmin := []echo.MiddlewareFunc{r.AuthMiddleware.RequireAuth, middleware.RequireAdmin}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/admin/login", r.Admin.Login, r.LoginRate.Middleware())
	e.POST("/admin/logout", r.Admin.Logout, requireAdmin...)
	e.GET("/admin/security-logs", r.Admin.SecurityLogs, requireAdmin...)
	if r.BasicAuth != nil {
		e.GET("/admin", r.Admin.Settings, r.BasicAuth)
	}

	e.GET("/testimonial", r.Testimonials.ListPublished)
	e.POST("/testimonial/submit", r.Testimonials.Submit, r.SubmitRate.Middleware())
	e.GET("/testimonial/verify/:token", r.Testimonials.Verify)
	e.GET("/testimonial/pending", r.Testimonials.ListPending, requireAdmin...)
	e.PUT("/testimonial/approve/:id", r.Testimonials.Approve, requireAdmin...)
	e.DELETE("/testimonial/:id", r.Testimonials.Delete, requireAdmin...)
}
