package domain

import (
	"context"
	"testing"
	"time"

	"github.com/Vovarama1992/backstage/internal/models"
	"github.com/Vovarama1992/backstage/internal/ports"
	"github.com/stretchr/testify/require"
)

type mockCdRepo struct {
	stored    *models.Cd
	deleted   []int64
	published *time.Time
}

func (m *mockCdRepo) List(ctx context.Context, p ports.ListParams) ([]models.Cd, int64, error) {
	return nil, 0, nil
}

func (m *mockCdRepo) GetByID(ctx context.Context, id int64) (*models.Cd, error) {
	if m.stored == nil || m.stored.ID != id {
		return nil, models.ErrNotFound
	}
	return m.stored, nil
}

func (m *mockCdRepo) Insert(ctx context.Context, cd *models.Cd) (*models.Cd, error) {
	cd.ID = 11
	m.stored = cd
	return cd, nil
}

func (m *mockCdRepo) Update(ctx context.Context, cd *models.Cd) error {
	if m.stored == nil || m.stored.ID != cd.ID {
		return models.ErrNotFound
	}
	m.stored = cd
	return nil
}

func (m *mockCdRepo) Delete(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockCdRepo) TogglePublish(ctx context.Context, id int64) (*time.Time, error) {
	return m.published, nil
}

type syncCall struct {
	owner  models.Owner
	field  string
	fileID *int64
}

type mockUploads struct {
	synced   []syncCall
	released []models.Owner
}

func (m *mockUploads) Validate(in ports.UploadInput) error { return nil }

func (m *mockUploads) Store(ctx context.Context, in ports.UploadInput) (*models.UploadFile, error) {
	return nil, nil
}

func (m *mockUploads) Delete(ctx context.Context, id int64) error { return nil }

func (m *mockUploads) SyncRef(ctx context.Context, owner models.Owner, field string, fileID *int64) error {
	m.synced = append(m.synced, syncCall{owner: owner, field: field, fileID: fileID})
	return nil
}

func (m *mockUploads) ReleaseOwner(ctx context.Context, owner models.Owner) error {
	m.released = append(m.released, owner)
	return nil
}

type capturePublisher struct {
	events []ports.ChangeEvent
}

func (c *capturePublisher) Emit(ev ports.ChangeEvent)        { c.events = append(c.events, ev) }
func (c *capturePublisher) Events() <-chan ports.ChangeEvent { return nil }

func TestCdServiceCreate(t *testing.T) {
	repo := &mockCdRepo{}
	uploads := &mockUploads{}
	bus := &capturePublisher{}
	svc := NewCdService(repo, uploads, bus)

	cover := int64(3)
	created, err := svc.Create(context.Background(), &models.Cd{Title: "Kind of Blue", CoverID: &cover})
	require.NoError(t, err)
	require.Equal(t, int64(11), created.ID)

	require.Len(t, uploads.synced, 1)
	require.Equal(t, models.Owner{Kind: models.KindCds, ID: 11}, uploads.synced[0].owner)
	require.Equal(t, "cover", uploads.synced[0].field)
	require.Equal(t, cover, *uploads.synced[0].fileID)

	require.Len(t, bus.events, 1)
	require.Equal(t, ports.ActionCreated, bus.events[0].Action)
	require.Equal(t, models.KindCds, bus.events[0].Kind)
}

func TestCdServiceUpdateMissing(t *testing.T) {
	svc := NewCdService(&mockCdRepo{}, &mockUploads{}, &capturePublisher{})

	_, err := svc.Update(context.Background(), &models.Cd{ID: 99})
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestCdServiceDelete(t *testing.T) {
	repo := &mockCdRepo{stored: &models.Cd{ID: 4}}
	uploads := &mockUploads{}
	bus := &capturePublisher{}
	svc := NewCdService(repo, uploads, bus)

	require.NoError(t, svc.Delete(context.Background(), 4))
	require.Equal(t, []int64{4}, repo.deleted)
	require.Equal(t, []models.Owner{{Kind: models.KindCds, ID: 4}}, uploads.released)
	require.Equal(t, ports.ActionDeleted, bus.events[0].Action)
}

func TestCdServiceTogglePublishActions(t *testing.T) {
	now := time.Now()
	repo := &mockCdRepo{published: &now}
	bus := &capturePublisher{}
	svc := NewCdService(repo, &mockUploads{}, bus)

	at, err := svc.TogglePublish(context.Background(), 4)
	require.NoError(t, err)
	require.NotNil(t, at)
	require.Equal(t, ports.ActionPublished, bus.events[0].Action)

	repo.published = nil
	_, err = svc.TogglePublish(context.Background(), 4)
	require.NoError(t, err)
	require.Equal(t, ports.ActionUnpublished, bus.events[1].Action)
}

func TestEventBusDropsWhenFull(t *testing.T) {
	bus := NewEventBus()

	// nobody drains; past the buffer Emit must not block
	for i := 0; i < 150; i++ {
		bus.Emit(ports.ChangeEvent{Kind: models.KindCds, ID: int64(i), Action: ports.ActionUpdated})
	}

	ev := <-bus.Events()
	require.Equal(t, int64(0), ev.ID)
	require.False(t, ev.At.IsZero())
}
