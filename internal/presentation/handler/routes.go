package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"uploadgate/internal/presentation"
	"uploadgate/internal/presentation/middleware"
)

// Routes wires handlers into an echo instance. Record handlers are nil when
// the database is disabled and their routes are then not registered.
type Routes struct {
	UploadPath string
	Auth       bool
	Upload     *UploadHandler
	List       *ListHandler
	Get        *GetHandler
	Delete     *DeleteHandler
}

func (r Routes) Register(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	path := r.Path()

	// Any other method reaches Handle without auth and gets 405.
	e.Any(path, r.Upload.Handle)
	e.Add(r.Upload.Method(), path, r.Upload.Handle, r.auth(presentation.UploadAction)...)
	e.GET("/uploads", r.Upload.HandleList)

	if r.List != nil {
		e.GET("/records", r.List.HandleList)
	}

	if r.Get != nil {
		mws := r.auth(presentation.GetAction)
		if r.Auth {
			mws = append(mws, middleware.AuthGetMiddleware())
		}
		e.GET("/records/:"+presentation.IDParam, r.Get.HandleGet, mws...)
	}

	if r.Delete != nil {
		// Deleting always needs to know the author.
		e.DELETE("/records/:"+presentation.IDParam, r.Delete.HandleDelete,
			middleware.AuthMiddleware(presentation.DeleteAction), middleware.AuthDeleteMiddleware())
	}
}

// Path is the upload route, "/upload" unless configured.
func (r Routes) Path() string {
	if r.UploadPath == "" {
		return "/upload"
	}

	return r.UploadPath
}

func (r Routes) auth(action string) []echo.MiddlewareFunc {
	if !r.Auth {
		return nil
	}

	return []echo.MiddlewareFunc{middleware.AuthMiddleware(action)}
}
