package dto

type UploadRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	FileType string `json:"type"`
	Sha256   string `json:"sha256"`
	Mirror   string `json:"mirror,omitempty"`
	Uploaded int64  `json:"uploaded"`
}
