package config

import (
	"strings"

	"cozycash/internal/middleware"
	"cozycash/pkg/handlerUtil"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

func NewFiber(logger *logrus.Logger, corsOrigins []string) *fiber.App {
	errHandler := handlerUtil.New(logger)
	if len(corsOrigins) == 0 {
		corsOrigins = defaultCORSOrigins
	}

	app := fiber.New(
		fiber.Config{
			AppName:          "CozyCash",
			BodyLimit:        1 * 1024 * 1024,
			DisableKeepalive: false,
			StrictRouting:    false,
			CaseSensitive:    true,
			JSONEncoder:      jsoniter.Marshal,
			JSONDecoder:      jsoniter.Unmarshal,
			ErrorHandler: func(ctx *fiber.Ctx, err error) error {
				requestID, _ := ctx.Locals(middleware.RequestIDKey).(string)
				return errHandler.Handle(ctx, requestID, err, ctx.Path(), "fiber")
			},
		})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(corsOrigins, ","),
		AllowCredentials: true,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Request-ID",
	}))

	return app
}
