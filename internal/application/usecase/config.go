package usecase

type UploaderConfig struct {
	// MaxBodySize caps the bytes read from a request body. Zero means no cap.
	MaxBodySize int64 `yaml:"max_body_size"`
	// FieldName is the form field preferred when several parts carry a file.
	FieldName string `yaml:"field_name"`
}
