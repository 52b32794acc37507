package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"uploadgate/internal/application/usecase/abstraction"
	"uploadgate/internal/domain/dto"
	"uploadgate/internal/domain/entity"
	"uploadgate/internal/presentation"
)

const MsgMethodNotAllowed = "method not allowed"

type UploadHandler struct {
	uploader abstraction.Uploader
	method   string
}

// NewUploadHandler serves uploads sent with method; other methods get 405.
func NewUploadHandler(uploader abstraction.Uploader, method string) *UploadHandler {
	if method == "" {
		method = http.MethodPost
	}

	return &UploadHandler{
		uploader: uploader,
		method:   method,
	}
}

func (h *UploadHandler) Method() string {
	return h.method
}

// Handle handles requests to the upload route. The body is always an
// UploadResult.
func (h *UploadHandler) Handle(c echo.Context) error {
	req := c.Request()
	if req.Method != h.method {
		c.Response().Header().Set(echo.HeaderAllow, h.method)

		return c.JSON(http.StatusMethodNotAllowed, dto.Failure(entity.StateRejected, MsgMethodNotAllowed))
	}

	author, _ := c.Get(presentation.PK).(string)

	result := h.uploader.Upload(req.Context(), entity.UploadRequest{
		ContentType:   req.Header.Get(presentation.TypeKey),
		ContentLength: req.ContentLength,
		Body:          req.Body,
		Author:        author,
	})

	return c.JSON(presentation.HTTPStatus(result.State), result)
}

// HandleList handles GET /uploads requests.
func (h *UploadHandler) HandleList(c echo.Context) error {
	names, err := h.uploader.List(c.Request().Context())
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, names)
}
