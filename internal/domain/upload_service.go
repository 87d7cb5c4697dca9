package domain

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime"
	"path/filepath"
	"strings"

	"github.com/Vovarama1992/backstage/internal/models"
	"github.com/Vovarama1992/backstage/internal/ports"
	"github.com/google/uuid"
	"go.uber.org/multierr"
)

const (
	maxImageBytes = 5 << 20
	maxOtherBytes = 20 << 20
)

var allowedExtensions = map[string]string{
	".jpg":  models.FileKindImage,
	".jpeg": models.FileKindImage,
	".png":  models.FileKindImage,
	".gif":  models.FileKindImage,
	".webp": models.FileKindImage,
	".mp3":  models.FileKindAudio,
	".wav":  models.FileKindAudio,
	".ogg":  models.FileKindAudio,
	".flac": models.FileKindAudio,
	".pdf":  models.FileKindOther,
	".txt":  models.FileKindOther,
}

type uploadService struct {
	files    ports.UploadRepository
	blobs    ports.BlobStore
	prober   ports.DurationProber
	maxAudio int64
}

func NewUploadService(files ports.UploadRepository, blobs ports.BlobStore, prober ports.DurationProber, maxAudioMB int) ports.UploadService {
	return &uploadService{
		files:    files,
		blobs:    blobs,
		prober:   prober,
		maxAudio: int64(maxAudioMB) << 20,
	}
}

// Validate checks one file before anything touches the blob store, so a
// batch can be rejected whole without leaving partial writes behind.
func (s *uploadService) Validate(in ports.UploadInput) error {
	name := filepath.Base(in.OriginalName)
	if name == "" || name == "." || name != in.OriginalName || strings.Contains(name, "..") {
		return fmt.Errorf("invalid filename %q", in.OriginalName)
	}

	ext := strings.ToLower(filepath.Ext(name))
	kind, ok := allowedExtensions[ext]
	if !ok {
		return fmt.Errorf("file extension %s is not allowed", ext)
	}

	if len(in.Data) == 0 {
		return errors.New("file is empty")
	}
	if max := s.maxBytes(kind); int64(len(in.Data)) > max {
		return fmt.Errorf("file exceeds maximum size of %d bytes", max)
	}
	return nil
}

func (s *uploadService) maxBytes(kind string) int64 {
	switch kind {
	case models.FileKindImage:
		return maxImageBytes
	case models.FileKindAudio:
		return s.maxAudio
	default:
		return maxOtherBytes
	}
}

func (s *uploadService) Store(ctx context.Context, in ports.UploadInput) (*models.UploadFile, error) {
	if err := s.Validate(in); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(in.OriginalName))
	kind := allowedExtensions[ext]

	mimeType := in.DeclaredMime
	if mimeType == "" {
		mimeType = mime.TypeByExtension(ext)
	}

	base := strings.TrimSuffix(in.OriginalName, filepath.Ext(in.OriginalName))
	key := uuid.NewString()[:8] + "-" + models.Slugify(base) + ext

	sum := sha256.Sum256(in.Data)

	size, err := s.blobs.Save(key, bytes.NewReader(in.Data))
	if err != nil {
		return nil, fmt.Errorf("store blob: %w", err)
	}

	f := &models.UploadFile{
		Name:         key,
		OriginalName: in.OriginalName,
		Mime:         mimeType,
		Kind:         kind,
		SizeBytes:    size,
		Path:         key,
		URL:          "/uploads/" + key,
		Sha256:       hex.EncodeToString(sum[:]),
	}

	switch kind {
	case models.FileKindImage:
		if cfg, _, err := image.DecodeConfig(bytes.NewReader(in.Data)); err == nil {
			f.Width, f.Height = &cfg.Width, &cfg.Height
		}
	case models.FileKindAudio:
		if secs, _ := s.prober.Probe(ctx, key); secs > 0 {
			f.DurationSecs = &secs
		}
	}

	created, err := s.files.Insert(ctx, f)
	if err != nil {
		// row failed, don't leave the blob around
		return nil, multierr.Append(err, s.blobs.Remove(key))
	}
	return created, nil
}

func (s *uploadService) Delete(ctx context.Context, id int64) error {
	n, err := s.files.CountRefs(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return models.ErrConflict
	}

	f, err := s.files.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return multierr.Combine(
		s.blobs.Remove(f.Path),
		s.files.Delete(ctx, id),
	)
}

// SyncRef points an owner's attachment slot at fileID. The slot's previous
// file, if different, loses this ref and is removed when orphaned.
func (s *uploadService) SyncRef(ctx context.Context, owner models.Owner, field string, fileID *int64) error {
	cur, err := s.files.RefForOwnerField(ctx, owner, field)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return err
	}

	if cur != nil && fileID != nil && cur.FileID == *fileID {
		return nil
	}

	if cur != nil {
		if err := s.files.DeleteRef(ctx, *cur); err != nil {
			return err
		}
		if err := s.removeIfOrphan(ctx, cur.FileID); err != nil {
			return err
		}
	}

	if fileID == nil {
		return nil
	}

	if _, err := s.files.GetByID(ctx, *fileID); err != nil {
		return fmt.Errorf("sync ref to file %d: %w", *fileID, err)
	}
	return s.files.InsertRef(ctx, models.UploadRef{
		FileID:    *fileID,
		OwnerKind: owner.Kind,
		OwnerID:   owner.ID,
		Field:     field,
	})
}

// ReleaseOwner detaches every file the owner holds. An owner with no refs
// is a no-op.
func (s *uploadService) ReleaseOwner(ctx context.Context, owner models.Owner) error {
	refs, err := s.files.RefsForOwner(ctx, owner)
	if err != nil {
		return err
	}
	for _, ref := range refs {
		if err := s.files.DeleteRef(ctx, ref); err != nil {
			return err
		}
		if err := s.removeIfOrphan(ctx, ref.FileID); err != nil {
			return err
		}
	}
	return nil
}

func (s *uploadService) removeIfOrphan(ctx context.Context, fileID int64) error {
	n, err := s.files.CountRefs(ctx, fileID)
	if err != nil || n > 0 {
		return err
	}

	f, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		return err
	}

	return multierr.Combine(
		s.blobs.Remove(f.Path),
		s.files.Delete(ctx, fileID),
	)
}
