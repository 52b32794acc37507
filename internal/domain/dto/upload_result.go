package dto

import "uploadgate/internal/domain/entity"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type FileDescriptor struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Path string `json:"path"`
}

type UploadResult struct {
	Status  string             `json:"status"`
	Files   []FileDescriptor   `json:"files,omitempty"`
	Message string             `json:"message,omitempty"`
	State   entity.UploadState `json:"-"`
}

func Success(state entity.UploadState, files ...FileDescriptor) UploadResult {
	return UploadResult{
		Status: StatusSuccess,
		Files:  files,
		State:  state,
	}
}

func Failure(state entity.UploadState, message string) UploadResult {
	return UploadResult{
		Status:  StatusError,
		Message: message,
		State:   state,
	}
}
