package domain

import (
	"context"
	"time"

	"github.com/Vovarama1992/backstage/internal/models"
	"github.com/Vovarama1992/backstage/internal/ports"
)

// CdService orchestrates the multi-step CD writes: the row and its track
// list go through the repository in one transaction, then the cover ref is
// synced and the change announced.
type CdService struct {
	cds     ports.CdRepository
	uploads ports.UploadService
	events  ports.EventPublisher
}

func NewCdService(cds ports.CdRepository, uploads ports.UploadService, events ports.EventPublisher) *CdService {
	return &CdService{cds: cds, uploads: uploads, events: events}
}

func (s *CdService) owner(id int64) models.Owner {
	return models.Owner{Kind: models.KindCds, ID: id}
}

func (s *CdService) Create(ctx context.Context, cd *models.Cd) (*models.Cd, error) {
	created, err := s.cds.Insert(ctx, cd)
	if err != nil {
		return nil, err
	}
	if err := s.uploads.SyncRef(ctx, s.owner(created.ID), "cover", created.CoverID); err != nil {
		return nil, err
	}
	s.events.Emit(ports.ChangeEvent{Kind: models.KindCds, ID: created.ID, Action: ports.ActionCreated})
	return created, nil
}

func (s *CdService) Update(ctx context.Context, cd *models.Cd) (*models.Cd, error) {
	if err := s.cds.Update(ctx, cd); err != nil {
		return nil, err
	}
	if err := s.uploads.SyncRef(ctx, s.owner(cd.ID), "cover", cd.CoverID); err != nil {
		return nil, err
	}
	s.events.Emit(ports.ChangeEvent{Kind: models.KindCds, ID: cd.ID, Action: ports.ActionUpdated})
	return s.cds.GetByID(ctx, cd.ID)
}

func (s *CdService) Delete(ctx context.Context, id int64) error {
	if err := s.cds.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.uploads.ReleaseOwner(ctx, s.owner(id)); err != nil {
		return err
	}
	s.events.Emit(ports.ChangeEvent{Kind: models.KindCds, ID: id, Action: ports.ActionDeleted})
	return nil
}

func (s *CdService) TogglePublish(ctx context.Context, id int64) (*time.Time, error) {
	at, err := s.cds.TogglePublish(ctx, id)
	if err != nil {
		return nil, err
	}
	action := ports.ActionUnpublished
	if at != nil {
		action = ports.ActionPublished
	}
	s.events.Emit(ports.ChangeEvent{Kind: models.KindCds, ID: id, Action: action})
	return at, nil
}
