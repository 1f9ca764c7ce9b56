package middleware

import (
	"cozycash/internal/api/auth"
	contextPkg "cozycash/pkg/context"
	"cozycash/pkg/handlerUtil"
	jwtPkg "cozycash/pkg/jwt"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	requestID := m.GetRequestID(ctx)
	errHandler := handlerUtil.New(m.log)

	token, err := jwtPkg.ExtractBearer(ctx.Get(fiber.HeaderAuthorization))
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"client_ip":  ctx.IP(),
		}).Warn("Missing or malformed authorization header")
		return errHandler.HandleUnauthorized(ctx, requestID, auth.ErrUnauthorized.Error())
	}

	user, err := m.auth.Resolve(contextPkg.FromFiberCtx(ctx), token)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			return errHandler.HandleUnauthorized(ctx, requestID, auth.ErrUnauthorized.Error())
		}
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "resolve_token")
	}

	ctx.Locals(jwtPkg.UserLocalsKey, user)
	ctx.SetUserContext(contextPkg.WithUserID(ctx.UserContext(), user.ID))

	m.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    user.ID,
	}).Debug("Authentication successful")

	return ctx.Next()
}
