package usecase

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"uploadgate/internal/domain/dto"
	"uploadgate/internal/domain/entity"
	"uploadgate/internal/domain/model"
	"uploadgate/internal/domain/repository/broker"
	"uploadgate/internal/domain/repository/database"
	"uploadgate/internal/domain/repository/minio"
	"uploadgate/internal/domain/repository/observer"
	"uploadgate/internal/domain/repository/storage"
	"uploadgate/internal/formdata"
	"uploadgate/internal/signature"
	"uploadgate/pkg/logger"
	"uploadgate/pkg/utils"
)

const (
	MsgNoFile        = "No file field found in form data"
	MsgBodyTooLarge  = "request body too large"
	MsgReadFailed    = "failed to read request body"
	MsgInvalidName   = "invalid file name"
	MsgStoreFailed   = "failed to store file"
	MsgInternalError = "internal error"
)

var ErrBodyTooLarge = errors.New(MsgBodyTooLarge)

type Store interface {
	storage.Writer
	storage.Lister
}

// Archive holds the collaborators that run after a file is on disk. Any of
// them may be nil; their failures never change the upload result.
type Archive struct {
	Writer        database.Writer
	Mirror        minio.Uploader
	MirrorRemover minio.Remover
	Publisher     broker.Publisher
}

type Uploader struct {
	cfg      *UploaderConfig
	decoders []formdata.Decoder
	store    Store
	observer observer.Observer
	archive  Archive
	now      func() time.Time
}

// NewUploader builds the upload pipeline. With no decoders it uses the
// primary decoder followed by the fallback.
func NewUploader(cfg *UploaderConfig, decoders []formdata.Decoder, store Store,
	obs observer.Observer, archive Archive,
) *Uploader {
	if len(decoders) == 0 {
		decoders = []formdata.Decoder{formdata.NewPrimary(), formdata.NewFallback()}
	}

	return &Uploader{
		cfg:      cfg,
		decoders: decoders,
		store:    store,
		observer: obs,
		archive:  archive,
		now:      time.Now,
	}
}

// upload carries the state of a single request through the pipeline.
type upload struct {
	id      string
	state   entity.UploadState
	decoder string
	file    entity.UploadedFile
	verdict entity.ValidationVerdict
	stored  entity.StoredFile
	author  string
}

// Upload runs one request through decode, validation and persistence. It
// never returns an error: every outcome, panics included, is an UploadResult
// whose State is terminal.
func (u *Uploader) Upload(ctx context.Context, req entity.UploadRequest) (result dto.UploadResult) {
	up := &upload{
		id:     uuid.NewString(),
		state:  entity.StateStart,
		author: req.Author,
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("upload panicked", "upload_id", up.id, "state", up.state, "panic", fmt.Sprint(r))
			result = dto.Failure(entity.StateFailed, MsgInternalError)
		}
	}()

	body, err := u.readBody(req)
	if err != nil {
		if errors.Is(err, ErrBodyTooLarge) {
			return dto.Failure(entity.StateRejected, MsgBodyTooLarge)
		}

		logger.Error("can't read request body", "upload_id", up.id, "err", err)

		return dto.Failure(entity.StateFailed, MsgReadFailed)
	}

	part, ok := u.decode(ctx, up, formdata.RawBody{Bytes: body, Declared: req.ContentLength}, req.ContentType)
	if !ok {
		up.state = entity.StateNoFile

		return dto.Failure(up.state, MsgNoFile)
	}

	if res, ok := u.validate(ctx, up, part); !ok {
		return res
	}

	if res, ok := u.persist(ctx, up); !ok {
		return res
	}

	u.archiveUpload(ctx, up)

	up.state = entity.StateDone

	return dto.Success(up.state, dto.FileDescriptor{
		Name: up.stored.Name,
		Size: up.stored.Size,
		Path: up.stored.Path,
	})
}

// List returns the names of the files currently stored.
func (u *Uploader) List(ctx context.Context) ([]string, error) {
	return u.store.List(ctx)
}

func (u *Uploader) readBody(req entity.UploadRequest) ([]byte, error) {
	if req.Body == nil {
		return []byte{}, nil
	}

	limit := u.cfg.MaxBodySize
	if limit <= 0 {
		return io.ReadAll(req.Body)
	}

	if req.ContentLength > limit {
		return nil, ErrBodyTooLarge
	}

	body, err := io.ReadAll(io.LimitReader(req.Body, limit+1))
	if err != nil {
		return nil, err
	}

	if int64(len(body)) > limit {
		return nil, ErrBodyTooLarge
	}

	return body, nil
}

// decode tries each decoder in order and stops at the first one that yields
// a part carrying a filename.
func (u *Uploader) decode(ctx context.Context, up *upload, body formdata.RawBody, contentType string) (formdata.Part, bool) {
	for i, d := range u.decoders {
		u.checkpoint(ctx, up, entity.Checkpoint{
			Kind:    entity.CheckpointDecodeStart,
			Decoder: d.Name(),
			Size:    int64(len(body.Bytes)),
		})

		parts, err := d.Decode(body, contentType)
		if part, ok := formdata.FindFile(parts, u.cfg.FieldName); ok {
			up.decoder = d.Name()
			up.state = entity.StateParsed
			if i > 0 {
				up.state = entity.StateFallbackParsed
			}

			return part, true
		}

		if err == nil {
			err = formdata.ErrNoFileFound
		}

		if i == 0 && len(u.decoders) > 1 {
			up.state = entity.StatePrimaryFailed
			u.checkpoint(ctx, up, entity.Checkpoint{
				Kind:    entity.CheckpointFallbackTriggered,
				Decoder: d.Name(),
				Err:     err,
			})

			continue
		}

		logger.Debug("decoder found no file", "upload_id", up.id, "decoder", d.Name(), "err", err)
	}

	return formdata.Part{}, false
}

func (u *Uploader) validate(ctx context.Context, up *upload, part formdata.Part) (dto.UploadResult, bool) {
	up.file = entity.UploadedFile{
		OriginalFilename: part.Headers.Filename,
		Bytes:            part.Content,
		FieldName:        part.Headers.FieldName,
	}

	name, err := utils.SanitizeFilename(part.Headers.Filename)
	if err != nil {
		up.state = entity.StateRejected
		up.verdict = entity.ValidationVerdict{
			DetectedKind: signature.DetectKind(part.Content),
			Reason:       err.Error(),
		}
		u.checkpoint(ctx, up, entity.Checkpoint{
			Kind:     entity.CheckpointValidated,
			Filename: part.Headers.Filename,
			Verdict:  &up.verdict,
		})

		return dto.Failure(up.state, MsgInvalidName), false
	}

	up.file.SanitizedFilename = name
	up.file.DeclaredExtension = utils.Extension(name)
	up.verdict = signature.Validate(up.file.Bytes, up.file.DeclaredExtension)

	up.state = entity.StateValidated
	if !up.verdict.Accepted {
		up.state = entity.StateRejected
	}

	u.checkpoint(ctx, up, entity.Checkpoint{
		Kind:     entity.CheckpointValidated,
		Filename: name,
		Size:     int64(len(up.file.Bytes)),
		Verdict:  &up.verdict,
	})

	if !up.verdict.Accepted {
		return dto.Failure(up.state, up.verdict.Reason), false
	}

	return dto.UploadResult{}, true
}

func (u *Uploader) persist(ctx context.Context, up *upload) (dto.UploadResult, bool) {
	stored, err := u.store.Save(ctx, up.file.SanitizedFilename, up.file.Bytes)
	if err != nil {
		up.state = entity.StateFailed
		u.checkpoint(ctx, up, entity.Checkpoint{
			Kind:     entity.CheckpointPersisted,
			Filename: up.file.SanitizedFilename,
			Size:     int64(len(up.file.Bytes)),
			Err:      err,
		})

		return dto.Failure(up.state, MsgStoreFailed), false
	}

	up.stored = stored
	up.state = entity.StatePersisted
	u.checkpoint(ctx, up, entity.Checkpoint{
		Kind:     entity.CheckpointPersisted,
		Filename: stored.Name,
		Size:     stored.Size,
		Path:     stored.Path,
	})

	return dto.UploadResult{}, true
}

// archiveUpload records, mirrors and announces a persisted file. Every step
// is best effort.
func (u *Uploader) archiveUpload(ctx context.Context, up *upload) {
	a := u.archive
	if a.Writer == nil && a.Mirror == nil && a.Publisher == nil {
		return
	}

	sum := sha256.Sum256(up.file.Bytes)
	record := &model.Upload{
		ID:           up.id,
		Name:         up.stored.Name,
		OriginalName: up.file.OriginalFilename,
		Path:         up.stored.Path,
		Size:         up.stored.Size,
		MimeType:     up.verdict.DetectedMIME,
		Kind:         string(up.verdict.DetectedKind),
		Sha256:       hex.EncodeToString(sum[:]),
		Decoder:      up.decoder,
		UploadTime:   u.now(),
		Author:       up.author,
	}

	if a.Mirror != nil {
		mirrored, err := a.Mirror.UploadFile(ctx, bytes.NewReader(up.file.Bytes), up.stored.Size,
			up.stored.Name, up.verdict.DetectedMIME)
		if err != nil {
			logger.Error("failed to mirror upload", "upload_id", up.id, "name", up.stored.Name, "err", err)
		} else {
			record.MirrorAddress = mirrored.Location
			record.MirrorBucket = mirrored.Bucket
			record.MirrorKey = mirrored.Key
		}
	}

	if a.Writer != nil {
		if err := a.Writer.Write(ctx, record); err != nil {
			logger.Error("failed to write upload record", "upload_id", up.id, "err", err)

			if record.MirrorKey != "" && a.MirrorRemover != nil {
				if rmErr := a.MirrorRemover.Remove(ctx, record.MirrorBucket, record.MirrorKey); rmErr != nil {
					logger.Error("failed to remove mirror after record write failed", "upload_id", up.id, "err", rmErr)
				}
			}

			return
		}
	}

	if a.Publisher != nil {
		if err := a.Publisher.PublishUpload(ctx, recordToDTO(record)); err != nil {
			logger.Error("failed to publish upload event", "upload_id", up.id, "err", err)
		}
	}
}

func (u *Uploader) checkpoint(ctx context.Context, up *upload, cp entity.Checkpoint) {
	if u.observer == nil {
		return
	}

	cp.UploadID = up.id
	cp.State = up.state
	cp.Timestamp = u.now()
	u.observer.Checkpoint(ctx, cp)
}

func recordToDTO(m *model.Upload) dto.UploadRecord {
	return dto.UploadRecord{
		ID:       m.ID,
		Name:     m.Name,
		Size:     m.Size,
		FileType: m.MimeType,
		Sha256:   m.Sha256,
		Mirror:   m.MirrorAddress,
		Uploaded: m.UploadTime.Unix(),
	}
}
