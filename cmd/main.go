package main

import (
	"net/http"
	"os"
	"time"

	"hubtrack/api/handler"
	apiMiddleware "hubtrack/api/middleware"
	"hubtrack/api/routes"
	"hubtrack/config"
	"hubtrack/internal/codec"
	"hubtrack/internal/repository"
	"hubtrack/internal/service"
	"hubtrack/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	db := config.ConnectionDb()
	validate := validator.New()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	accessSecret := []byte(os.Getenv("JWT_SECRET"))
	issuer := os.Getenv("JWT_ISSUER")
	if len(accessSecret) == 0 {
		logger.Fatal("JWT_SECRET is required")
	}

	accessManager := utils.JWTManager{
		Secret:         accessSecret,
		Issuer:         issuer,
		AccessTokenTTL: 7 * 24 * time.Hour,
	}
	accessIssuer := service.JWTAccessIssuer{Manager: &accessManager}

	var fieldCodec *codec.FieldCodec
	if secret := os.Getenv("FIELD_KEY"); secret != "" {
		var err error
		fieldCodec, err = codec.New(secret, logger)
		if err != nil {
			logger.WithError(err).Fatal("field codec init failed")
		}
	} else {
		logger.Warn("FIELD_KEY not set, contact fields stored in plaintext")
	}

	userRepo := repository.NewUserRepository(db)
	recordRepo := repository.NewRecordRepository(db)

	passwordHasher := service.BcryptPasswordHasher{}

	authService := service.NewAuthService(userRepo, passwordHasher, accessIssuer)
	recordService := service.NewRecordService(recordRepo, fieldCodec, service.RealClock{})
	adminService := service.NewAdminService(userRepo, recordRepo)

	authHandler := handler.NewAuthHandler(authService, validate)
	recordHandler := handler.NewRecordHandler(recordService, validate)
	adminHandler := handler.NewAdminHandler(adminService, validate)

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	authMiddleware := apiMiddleware.AuthMiddleware{JWT: &accessManager}
	router := routes.NewRouter(app, authHandler, recordHandler, adminHandler, authMiddleware)
	router.RegisterRoutes()

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	server := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithField("addr", addr).Info("server started")
	if err := app.StartServer(server); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
