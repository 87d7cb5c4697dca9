package ports

import (
	"context"

	"github.com/Vovarama1992/backstage/internal/models"
)

type UploadRepository interface {
	List(ctx context.Context, p ListParams) ([]models.UploadFile, int64, error)
	GetByID(ctx context.Context, id int64) (*models.UploadFile, error)

	// GetByIDs batch-resolves file references for list/detail shaping.
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.UploadFile, error)

	Insert(ctx context.Context, f *models.UploadFile) (*models.UploadFile, error)
	Delete(ctx context.Context, id int64) error

	RefsForFile(ctx context.Context, fileID int64) ([]models.UploadRef, error)
	RefsForOwner(ctx context.Context, owner models.Owner) ([]models.UploadRef, error)
	RefForOwnerField(ctx context.Context, owner models.Owner, field string) (*models.UploadRef, error)
	InsertRef(ctx context.Context, ref models.UploadRef) error
	DeleteRef(ctx context.Context, ref models.UploadRef) error
	CountRefs(ctx context.Context, fileID int64) (int64, error)
}

// UploadInput is one file pulled out of a multipart request.
type UploadInput struct {
	OriginalName string
	DeclaredMime string
	Data         []byte
}

type UploadService interface {
	// Validate checks a file without persisting anything, so a multi-file
	// batch can fail whole before the first blob is written.
	Validate(in UploadInput) error

	// Store validates and persists one uploaded file: blob first, row after.
	Store(ctx context.Context, in UploadInput) (*models.UploadFile, error)

	// Delete removes an unreferenced file (blob and row); returns
	// models.ErrConflict while refs remain.
	Delete(ctx context.Context, id int64) error

	// SyncRef points an owner's attachment slot at fileID (nil detaches),
	// cleaning up the previously referenced file if it became an orphan.
	SyncRef(ctx context.Context, owner models.Owner, field string, fileID *int64) error

	// ReleaseOwner detaches every file the owner holds; orphans are removed.
	// Releasing an owner with no refs is a no-op.
	ReleaseOwner(ctx context.Context, owner models.Owner) error
}
