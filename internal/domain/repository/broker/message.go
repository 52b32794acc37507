package broker

import "uploadgate/internal/domain/dto"

// Message is one upload event read from the stream.
type Message interface {
	Body() string
	Record() (dto.UploadRecord, error)
	Ack() error
	Nack() error
}
