package domain

import (
	"context"
	"testing"

	"github.com/Vovarama1992/backstage/internal/infra"
	"github.com/Vovarama1992/backstage/internal/models"
	"github.com/Vovarama1992/backstage/internal/ports"
	"github.com/stretchr/testify/require"
)

type mockUploadRepo struct {
	nextID    int64
	files     map[int64]*models.UploadFile
	refs      []models.UploadRef
	insertErr error
}

func newMockUploadRepo() *mockUploadRepo {
	return &mockUploadRepo{files: map[int64]*models.UploadFile{}}
}

func (m *mockUploadRepo) List(ctx context.Context, p ports.ListParams) ([]models.UploadFile, int64, error) {
	return nil, 0, nil
}

func (m *mockUploadRepo) GetByID(ctx context.Context, id int64) (*models.UploadFile, error) {
	f, ok := m.files[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return f, nil
}

func (m *mockUploadRepo) GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.UploadFile, error) {
	out := map[int64]*models.UploadFile{}
	for _, id := range ids {
		if f, ok := m.files[id]; ok {
			out[id] = f
		}
	}
	return out, nil
}

func (m *mockUploadRepo) Insert(ctx context.Context, f *models.UploadFile) (*models.UploadFile, error) {
	if m.insertErr != nil {
		return nil, m.insertErr
	}
	m.nextID++
	f.ID = m.nextID
	m.files[f.ID] = f
	return f, nil
}

func (m *mockUploadRepo) Delete(ctx context.Context, id int64) error {
	delete(m.files, id)
	return nil
}

func (m *mockUploadRepo) RefsForFile(ctx context.Context, fileID int64) ([]models.UploadRef, error) {
	var out []models.UploadRef
	for _, r := range m.refs {
		if r.FileID == fileID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockUploadRepo) RefsForOwner(ctx context.Context, owner models.Owner) ([]models.UploadRef, error) {
	var out []models.UploadRef
	for _, r := range m.refs {
		if r.OwnerKind == owner.Kind && r.OwnerID == owner.ID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockUploadRepo) RefForOwnerField(ctx context.Context, owner models.Owner, field string) (*models.UploadRef, error) {
	for _, r := range m.refs {
		if r.OwnerKind == owner.Kind && r.OwnerID == owner.ID && r.Field == field {
			ref := r
			return &ref, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *mockUploadRepo) InsertRef(ctx context.Context, ref models.UploadRef) error {
	m.refs = append(m.refs, ref)
	return nil
}

func (m *mockUploadRepo) DeleteRef(ctx context.Context, ref models.UploadRef) error {
	for i, r := range m.refs {
		if r == ref {
			m.refs = append(m.refs[:i], m.refs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockUploadRepo) CountRefs(ctx context.Context, fileID int64) (int64, error) {
	var n int64
	for _, r := range m.refs {
		if r.FileID == fileID {
			n++
		}
	}
	return n, nil
}

type stubProber struct{ secs int }

func (p stubProber) Probe(ctx context.Context, key string) (int, error) { return p.secs, nil }

func newTestUploadService(repo *mockUploadRepo) ports.UploadService {
	return NewUploadService(repo, infra.NewMemBlobStore(), stubProber{}, 30)
}

// tiny valid 1x1 gif
var gifData = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\x00\x00\x00\xff\xff\xff!\xf9\x04\x00\x00\x00\x00\x00,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;")

func TestUploadValidateRejections(t *testing.T) {
	svc := newTestUploadService(newMockUploadRepo())

	cases := []struct {
		name string
		in   ports.UploadInput
	}{
		{"bad extension", ports.UploadInput{OriginalName: "run.exe", Data: []byte("x")}},
		{"no extension", ports.UploadInput{OriginalName: "README", Data: []byte("x")}},
		{"empty file", ports.UploadInput{OriginalName: "a.png", Data: nil}},
		{"path traversal", ports.UploadInput{OriginalName: "../../etc/passwd.png", Data: []byte("x")}},
		{"image too big", ports.UploadInput{OriginalName: "big.png", Data: make([]byte, 6<<20)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Error(t, svc.Validate(tc.in))
		})
	}
}

func TestUploadStoreImage(t *testing.T) {
	repo := newMockUploadRepo()
	svc := newTestUploadService(repo)

	f, err := svc.Store(context.Background(), ports.UploadInput{
		OriginalName: "Album Cover.gif",
		Data:         gifData,
	})
	require.NoError(t, err)
	require.Equal(t, models.FileKindImage, f.Kind)
	require.Equal(t, int64(len(gifData)), f.SizeBytes)
	require.Contains(t, f.Name, "album-cover")
	require.Equal(t, "/uploads/"+f.Path, f.URL)
	require.Len(t, f.Sha256, 64)
	require.NotNil(t, f.Width)
	require.Equal(t, 1, *f.Width)
}

func TestUploadStoreRowFailureCleansBlob(t *testing.T) {
	repo := newMockUploadRepo()
	repo.insertErr = models.ErrConflict
	blobs := infra.NewMemBlobStore()
	svc := NewUploadService(repo, blobs, stubProber{}, 30)

	_, err := svc.Store(context.Background(), ports.UploadInput{
		OriginalName: "cover.gif",
		Data:         gifData,
	})
	require.Error(t, err)
	require.Empty(t, repo.files)
}

func TestUploadDeleteRefusedWhileReferenced(t *testing.T) {
	repo := newMockUploadRepo()
	svc := newTestUploadService(repo)

	f, err := svc.Store(context.Background(), ports.UploadInput{OriginalName: "c.gif", Data: gifData})
	require.NoError(t, err)

	owner := models.Owner{Kind: models.KindBooks, ID: 1}
	require.NoError(t, svc.SyncRef(context.Background(), owner, "cover", &f.ID))

	require.ErrorIs(t, svc.Delete(context.Background(), f.ID), models.ErrConflict)

	require.NoError(t, svc.SyncRef(context.Background(), owner, "cover", nil))
	// the detach already removed the orphan
	_, err = repo.GetByID(context.Background(), f.ID)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestSyncRefReplacesAndCleansOrphan(t *testing.T) {
	repo := newMockUploadRepo()
	svc := newTestUploadService(repo)
	ctx := context.Background()

	old, err := svc.Store(ctx, ports.UploadInput{OriginalName: "old.gif", Data: gifData})
	require.NoError(t, err)
	next, err := svc.Store(ctx, ports.UploadInput{OriginalName: "new.gif", Data: gifData})
	require.NoError(t, err)

	owner := models.Owner{Kind: models.KindCds, ID: 5}
	require.NoError(t, svc.SyncRef(ctx, owner, "cover", &old.ID))
	require.NoError(t, svc.SyncRef(ctx, owner, "cover", &next.ID))

	_, err = repo.GetByID(ctx, old.ID)
	require.ErrorIs(t, err, models.ErrNotFound, "old cover should be gone")

	n, err := repo.CountRefs(ctx, next.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}

func TestSyncRefSameFileIsNoop(t *testing.T) {
	repo := newMockUploadRepo()
	svc := newTestUploadService(repo)
	ctx := context.Background()

	f, err := svc.Store(ctx, ports.UploadInput{OriginalName: "c.gif", Data: gifData})
	require.NoError(t, err)

	owner := models.Owner{Kind: models.KindBooks, ID: 2}
	require.NoError(t, svc.SyncRef(ctx, owner, "cover", &f.ID))
	require.NoError(t, svc.SyncRef(ctx, owner, "cover", &f.ID))

	n, err := repo.CountRefs(ctx, f.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}

func TestSyncRefUnknownFile(t *testing.T) {
	svc := newTestUploadService(newMockUploadRepo())
	missing := int64(404)

	err := svc.SyncRef(context.Background(), models.Owner{Kind: models.KindBooks, ID: 1}, "cover", &missing)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestReleaseOwner(t *testing.T) {
	repo := newMockUploadRepo()
	svc := newTestUploadService(repo)
	ctx := context.Background()

	shared, err := svc.Store(ctx, ports.UploadInput{OriginalName: "shared.gif", Data: gifData})
	require.NoError(t, err)

	a := models.Owner{Kind: models.KindPhotos, ID: 1}
	b := models.Owner{Kind: models.KindPhotos, ID: 2}
	require.NoError(t, svc.SyncRef(ctx, a, "image", &shared.ID))
	require.NoError(t, svc.SyncRef(ctx, b, "image", &shared.ID))

	require.NoError(t, svc.ReleaseOwner(ctx, a))

	// still referenced by b, so the file survives
	_, err = repo.GetByID(ctx, shared.ID)
	require.NoError(t, err)

	require.NoError(t, svc.ReleaseOwner(ctx, b))
	_, err = repo.GetByID(ctx, shared.ID)
	require.ErrorIs(t, err, models.ErrNotFound)

	// releasing an owner with nothing attached is fine
	require.NoError(t, svc.ReleaseOwner(ctx, a))
}
