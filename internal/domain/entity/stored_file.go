package entity

type StoredFile struct {
	Name string
	Size int64
	Path string
}

// MirrorResult describes a copy of a stored file pushed to object storage.
type MirrorResult struct {
	Size     int64  `json:"size"`
	Type     string `json:"type"`
	Location string `json:"location"`
	Bucket   string `json:"bucket"`
	Key      string `json:"key"`
}
