// Package observer turns upload checkpoints into structured log lines.
package observer

import (
	"context"

	"github.com/dustin/go-humanize"

	"uploadgate/internal/domain/entity"
	"uploadgate/pkg/logger"
)

type Log struct{}

func NewLog() *Log {
	return &Log{}
}

func (*Log) Checkpoint(_ context.Context, cp entity.Checkpoint) {
	kv := []any{"upload_id", cp.UploadID, "state", cp.State}

	switch cp.Kind {
	case entity.CheckpointDecodeStart:
		logger.Debug("decode started", append(kv,
			"decoder", cp.Decoder, "size", humanize.Bytes(uint64(max(cp.Size, 0))))...)

	case entity.CheckpointFallbackTriggered:
		logger.Warn("primary decoder failed, using fallback", append(kv,
			"decoder", cp.Decoder, "err", cp.Err)...)

	case entity.CheckpointValidated:
		kv = append(kv, "filename", cp.Filename)
		if cp.Verdict != nil {
			kv = append(kv, "accepted", cp.Verdict.Accepted, "kind", cp.Verdict.DetectedKind,
				"mime", cp.Verdict.DetectedMIME, "reason", cp.Verdict.Reason)
		}

		logger.Info("validation verdict", kv...)

	case entity.CheckpointPersisted:
		kv = append(kv, "filename", cp.Filename, "path", cp.Path,
			"size", humanize.Bytes(uint64(max(cp.Size, 0))))
		if cp.Err != nil {
			logger.Error("persistence failed", append(kv, "err", cp.Err)...)

			return
		}

		logger.Info("file persisted", kv...)

	default:
		logger.Debug("checkpoint", append(kv, "kind", cp.Kind)...)
	}
}
