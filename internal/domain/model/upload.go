package model

import "time"

type Upload struct {
	ID            string    `bson:"_id"`
	Name          string    `bson:"name"`
	OriginalName  string    `bson:"original_name"`
	Path          string    `bson:"path"`
	Size          int64     `bson:"size"`
	MimeType      string    `bson:"mime_type"`
	Kind          string    `bson:"kind"`
	Sha256        string    `bson:"sha256"`
	Decoder       string    `bson:"decoder"`
	MirrorAddress string    `bson:"mirror_address"`
	MirrorBucket  string    `bson:"mirror_bucket"`
	MirrorKey     string    `bson:"mirror_key"`
	UploadTime    time.Time `bson:"upload_time"`
	Author        string    `bson:"author"`
}
