package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"path"

	"github.com/google/uuid"

	"github.com/mindsaathi/backend/internal/core"
)

// MediaService archives base64 media payloads (voice notes, face snapshots)
// to object storage. Archival is optional wiring: with no storage configured
// every call is a no-op.
type MediaService struct {
	storage core.ObjectClient
	bucket  string
}

func NewMediaService(storage core.ObjectClient, bucket string) *MediaService {
	return &MediaService{storage: storage, bucket: bucket}
}

// ArchiveBase64 decodes and uploads one payload, returning its URL.
// kind is "speech" or "image"; ext is the file extension without the dot.
func (m *MediaService) ArchiveBase64(ctx context.Context, userID, kind, ext, payload string) (string, error) {
	if m == nil || m.storage == nil || payload == "" {
		return "", nil
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("decode %s payload: %w", kind, err)
	}

	key := m.objectKey(userID, kind, ext)
	url, err := m.storage.UploadFile(ctx, m.bucket, key, data, contentTypeFor(kind, ext))
	if err != nil {
		return "", fmt.Errorf("archive %s: %w", kind, err)
	}
	return url, nil
}

// objectKey creates a consistent S3 key layout.
func (m *MediaService) objectKey(userID, kind, ext string) string {
	name := uuid.NewString()
	if ext != "" {
		name += "." + ext
	}
	return path.Join("users", userID, "media", kind, name)
}

func contentTypeFor(kind, ext string) string {
	switch kind {
	case "speech":
		if ext == "" {
			ext = "wav"
		}
		return "audio/" + ext
	case "image":
		if ext == "" {
			ext = "jpeg"
		}
		return "image/" + ext
	}
	return "application/octet-stream"
}
