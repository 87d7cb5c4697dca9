package domain

import (
	"context"
	"time"

	"github.com/Vovarama1992/backstage/internal/models"
	"github.com/Vovarama1992/backstage/internal/ports"
)

// DvdService mirrors CdService for DVDs and their chapter list.
type DvdService struct {
	dvds    ports.DvdRepository
	uploads ports.UploadService
	events  ports.EventPublisher
}

func NewDvdService(dvds ports.DvdRepository, uploads ports.UploadService, events ports.EventPublisher) *DvdService {
	return &DvdService{dvds: dvds, uploads: uploads, events: events}
}

func (s *DvdService) owner(id int64) models.Owner {
	return models.Owner{Kind: models.KindDvds, ID: id}
}

func (s *DvdService) Create(ctx context.Context, dvd *models.Dvd) (*models.Dvd, error) {
	created, err := s.dvds.Insert(ctx, dvd)
	if err != nil {
		return nil, err
	}
	if err := s.uploads.SyncRef(ctx, s.owner(created.ID), "cover", created.CoverID); err != nil {
		return nil, err
	}
	s.events.Emit(ports.ChangeEvent{Kind: models.KindDvds, ID: created.ID, Action: ports.ActionCreated})
	return created, nil
}

func (s *DvdService) Update(ctx context.Context, dvd *models.Dvd) (*models.Dvd, error) {
	if err := s.dvds.Update(ctx, dvd); err != nil {
		return nil, err
	}
	if err := s.uploads.SyncRef(ctx, s.owner(dvd.ID), "cover", dvd.CoverID); err != nil {
		return nil, err
	}
	s.events.Emit(ports.ChangeEvent{Kind: models.KindDvds, ID: dvd.ID, Action: ports.ActionUpdated})
	return s.dvds.GetByID(ctx, dvd.ID)
}

func (s *DvdService) Delete(ctx context.Context, id int64) error {
	if err := s.dvds.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.uploads.ReleaseOwner(ctx, s.owner(id)); err != nil {
		return err
	}
	s.events.Emit(ports.ChangeEvent{Kind: models.KindDvds, ID: id, Action: ports.ActionDeleted})
	return nil
}

func (s *DvdService) TogglePublish(ctx context.Context, id int64) (*time.Time, error) {
	at, err := s.dvds.TogglePublish(ctx, id)
	if err != nil {
		return nil, err
	}
	action := ports.ActionUnpublished
	if at != nil {
		action = ports.ActionPublished
	}
	s.events.Emit(ports.ChangeEvent{Kind: models.KindDvds, ID: id, Action: action})
	return at, nil
}
