package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MinhMaxx/personal-website-backend/api/handler"
	apiMiddleware "github.com/MinhMaxx/personal-website-backend/api/middleware"
	"github.com/MinhMaxx/personal-website-backend/api/routes"
	"github.com/MinhMaxx/personal-website-backend/config"
	"github.com/MinhMaxx/personal-website-backend/internal/repository"
	"github.com/MinhMaxx/personal-website-backend/internal/service"
	"github.com/MinhMaxx/personal-website-backend/internal/utils"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}

	db, err := config.ConnectionDb(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("database connection failed")
	}
	defer func() {
		if err := config.CloseDb(db); err != nil {
			logger.WithError(err).Warn("closing database")
		}
	}()
	if err := config.Migrate(ctx, db); err != nil {
		logger.WithError(err).Fatal("database migration failed")
	}

	mailer, err := newMailDispatcher(cfg.Mail)
	if err != nil {
		logger.WithError(err).Fatal("mail transport misconfigured")
	}

	jwtManager := utils.JWTManager{
		Secret:   []byte(cfg.JWTSecret),
		Issuer:   cfg.JWTIssuer,
		TokenTTL: cfg.AccessTokenTTL,
	}
	validate := service.NewValidator()
	clock := service.RealClock{}

	pendingRepo := repository.NewPendingTestimonialRepository(db)
	testimonialRepo := repository.NewTestimonialRepository(db)
	revokedRepo := repository.NewRevokedTokenRepository(db)
	securityRepo := repository.NewSecurityLogRepository(db)

	testimonialService := service.NewTestimonialService(
		pendingRepo,
		testimonialRepo,
		repository.NewTestimonialTxRunner(db),
		securityRepo,
		mailer,
		validate,
		clock,
		logger.WithField("component", "testimonials"),
		service.TestimonialConfig{
			VerificationTTL: cfg.VerificationTokenTTL,
			ApprovalWindow:  cfg.ApprovalWindow,
			VerifyBaseURL:   cfg.VerifyBaseURL,
			AdminEmail:      cfg.Admin.Email,
			MailTimeout:     cfg.Mail.Timeout,
		},
	)

	var secondFactor service.SecondFactorVerifier
	if cfg.Admin.TOTPSecret != "" {
		secondFactor = service.NewTOTPVerifier(cfg.Admin.TOTPSecret)
	}
	adminService := service.NewAdminService(
		revokedRepo,
		securityRepo,
		service.BcryptPasswordHasher{},
		service.JWTAdminIssuer{Manager: &jwtManager},
		secondFactor,
		validate,
		clock,
		logger.WithField("component", "admin"),
		service.AdminConfig{
			Username:      cfg.Admin.Username,
			PasswordHash:  cfg.Admin.PasswordHash,
			RevocationTTL: cfg.RevocationTTL,
		},
	)

	sweeper := service.NewExpirySweeper(
		pendingRepo,
		testimonialRepo,
		revokedRepo,
		securityRepo,
		clock,
		logger.WithField("component", "sweeper"),
		service.SweepConfig{
			Interval:             cfg.SweepInterval,
			SecurityLogRetention: cfg.SecurityLogRetention,
		},
	)
	go sweeper.Run(ctx)

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	ipExtractor, err := apiMiddleware.ClientIPExtractor(cfg.TrustedProxies)
	if err != nil {
		logger.WithError(err).Fatal("invalid trusted proxy range")
	}
	app.IPExtractor = ipExtractor
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status":  v.Status,
				"method":  v.Method,
				"uri":     v.URI,
				"ip":      v.RemoteIP,
				"latency": v.Latency.String(),
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	var basicAuth echo.MiddlewareFunc
	if cfg.BasicAuthEnabled {
		basicAuth = apiMiddleware.BasicAuth(adminService)
	}
	authMiddleware := apiMiddleware.AuthMiddleware{JWT: &jwtManager, Revocations: adminService}
	router := routes.NewRouter(
		app,
		handler.NewTestimonialHandler(testimonialService, logger),
		handler.NewAdminHandler(adminService, logger),
		authMiddleware,
		basicAuth,
	)
	router.RegisterRoutes()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithField("addr", cfg.HTTPAddr).Info("server started")
	if err := runServer(ctx, app, server, logger, shutdownTimeout); err != nil {
		logger.WithError(err).Error("server stopped")
	}
	logger.Info("server stopped")
}

func newMailDispatcher(cfg config.MailConfig) (service.MailDispatcher, error) {
	switch cfg.Transport {
	case config.MailTransportSMTP:
		return service.NewSMTPMailDispatcher(service.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.From,
			FromName: cfg.FromName,
			TLS:      cfg.SMTPTLS,
			Timeout:  cfg.Timeout,
		})
	default:
		return service.NewResendMailDispatcher(cfg.ResendAPIKey, cfg.From, cfg.FromName), nil
	}
}
