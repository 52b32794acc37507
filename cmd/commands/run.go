package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"uploadgate/pkg/logger"
)

func HandleRun(args []string) {
	cfg := loadConfig(args)

	logger.Info("running uploadgate", "version", version())

	a, err := build(cfg)
	if err != nil {
		ExitOnError(err)
	}
	defer a.close()

	e := newServer(a)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(cfg.Server.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ExitOnError(fmt.Errorf("shutting down server: %w", err))
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		ExitOnError(err)
	}
}

// newServer builds the echo instance serving a. The upload route is left out
// of echo's body limit: the uploader enforces upload.max_body_size itself and
// answers with an UploadResult.
func newServer(a *app) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderContentLength},
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost,
			http.MethodDelete, http.MethodHead, http.MethodOptions},
		MaxAge: 86400,
	}))
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.Secure())
	if a.cfg.Server.BodyLimit != "" {
		uploadPath := a.routes.Path()
		e.Use(echoMiddleware.BodyLimitWithConfig(echoMiddleware.BodyLimitConfig{
			Skipper: func(c echo.Context) bool {
				return c.Path() == uploadPath
			},
			Limit: a.cfg.Server.BodyLimit,
		}))
	}
	e.Use(echoMiddleware.RateLimiter(echoMiddleware.NewRateLimiterMemoryStore(20)))

	a.routes.Register(e)

	return e
}
