package entity

// UploadedFile is the single file accepted from a request. Bytes is owned by
// the uploader until it has been persisted.
type UploadedFile struct {
	OriginalFilename  string
	SanitizedFilename string
	Bytes             []byte
	DeclaredExtension string
	FieldName         string
}

type Kind string

const (
	KindPNG     Kind = "PNG"
	KindJPEG    Kind = "JPEG"
	KindGIF     Kind = "GIF"
	KindUnknown Kind = "UNKNOWN"
)

type ValidationVerdict struct {
	Accepted     bool
	DetectedKind Kind
	DetectedMIME string
	Reason       string
}
