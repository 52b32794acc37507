package entity

import "time"

type UploadState string

const (
	StateStart          UploadState = "START"
	StateParsed         UploadState = "PARSED"
	StatePrimaryFailed  UploadState = "PRIMARY_FAILED"
	StateFallbackParsed UploadState = "FALLBACK_PARSED"
	StateValidated      UploadState = "VALIDATED"
	StatePersisted      UploadState = "PERSISTED"
	StateDone           UploadState = "DONE"
	StateRejected       UploadState = "REJECTED"
	StateNoFile         UploadState = "NO_FILE"
	StateFailed         UploadState = "FAILED"
)

// Terminal reports whether no further transition follows s.
func (s UploadState) Terminal() bool {
	switch s {
	case StateDone, StateRejected, StateNoFile, StateFailed:
		return true
	}

	return false
}

type CheckpointKind string

const (
	CheckpointDecodeStart       CheckpointKind = "decode_start"
	CheckpointFallbackTriggered CheckpointKind = "fallback_triggered"
	CheckpointValidated         CheckpointKind = "validation_verdict"
	CheckpointPersisted         CheckpointKind = "persistence_result"
)

// Checkpoint is one observation emitted while an upload moves through its
// states. Only the fields relevant to Kind are set.
type Checkpoint struct {
	Kind      CheckpointKind
	UploadID  string
	State     UploadState
	Decoder   string
	Filename  string
	Size      int64
	Verdict   *ValidationVerdict
	Path      string
	Err       error
	Timestamp time.Time
}
