package presentation

import (
	"net/http"

	"uploadgate/internal/domain/entity"
)

// HTTPStatus maps the terminal state of an upload to a response status.
func HTTPStatus(state entity.UploadState) int {
	switch state {
	case entity.StateDone:
		return http.StatusOK
	case entity.StateRejected, entity.StateNoFile:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
