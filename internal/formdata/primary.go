package formdata

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"strings"
)

// Primary decodes with the standard library multipart reader. It is strict:
// any anomaly is reported as ErrDecodeFailed so the caller can fall back.
type Primary struct{}

func NewPrimary() *Primary {
	return &Primary{}
}

func (p *Primary) Name() string {
	return "primary"
}

func (p *Primary) Decode(body RawBody, contentType string) ([]Part, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: content type: %w", ErrDecodeFailed, err)
	}

	if !strings.EqualFold(mediaType, formDataType) || params["boundary"] == "" {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailed, ErrMissingBoundary)
	}

	if body.Declared >= 0 && int64(len(body.Bytes)) < body.Declared {
		return nil, fmt.Errorf("%w: truncated body: read %d bytes, declared %d",
			ErrDecodeFailed, len(body.Bytes), body.Declared)
	}

	reader := multipart.NewReader(bytes.NewReader(body.Bytes), params["boundary"])

	var parts []Part
	for {
		part, err := reader.NextRawPart()
		if err == io.EOF { //nolint:errorlint // a wrapped EOF means the body was cut short
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecodeFailed, err)
		}

		decoded, err := readPart(part)
		_ = part.Close()
		if err != nil {
			return nil, err
		}

		parts = append(parts, decoded)
	}

	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: body has no parts", ErrDecodeFailed)
	}

	return parts, nil
}

func readPart(part *multipart.Part) (Part, error) {
	content, err := io.ReadAll(part)
	if err != nil {
		return Part{}, fmt.Errorf("%w: reading part: %w", ErrDecodeFailed, err)
	}

	headers := PartHeaders{
		ContentType: part.Header.Get(headerContentType),
		Header:      part.Header,
	}

	if cd := part.Header.Get(headerDisposition); cd != "" {
		_, params, err := mime.ParseMediaType(cd)
		if err != nil {
			return Part{}, fmt.Errorf("%w: content disposition: %w", ErrDecodeFailed, err)
		}

		headers.FieldName = params[paramName]
		headers.Filename = params[paramFilename]
	}

	return Part{Headers: headers, Content: content}, nil
}
