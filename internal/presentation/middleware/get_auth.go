package middleware

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/nbd-wtf/go-nostr"

	"uploadgate/internal/presentation"
)

// AuthGetMiddleware scopes a get auth event to either the requested upload
// id (x tag) or this server (server tag).
func AuthGetMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			authHeader := ctx.Request().Header.Get(presentation.AuthKey)
			url := ctx.Scheme() + "://" + ctx.Request().Host
			providedID := ctx.Param(presentation.IDParam)

			event, err := decodeEvent(authHeader)
			if err != nil {
				ctx.Response().Header().Set(presentation.ReasonTag, err.Error())

				return ctx.NoContent(http.StatusUnauthorized)
			}

			if err := validateGetEvent(event, providedID, url); err != nil {
				ctx.Response().Header().Set(presentation.ReasonTag, err.Error())

				return ctx.NoContent(http.StatusUnauthorized)
			}

			return next(ctx)
		}
	}
}

func validateGetEvent(event *nostr.Event, providedID, url string) error {
	xTag := getTagValue(event, presentation.XTag)
	serverTag := getTagValue(event, presentation.ServerTag)

	if xTag != providedID && serverTag != url {
		return errors.New("invalid `x` and `server` tag")
	}

	if err := uuid.Validate(providedID); err != nil {
		return errors.New("invalid upload id")
	}

	return nil
}
