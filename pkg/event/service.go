package event

import (
	"context"
	"time"

	"github.com/eventease/manager/internal/errdef"
	"github.com/eventease/manager/internal/handler"
	"github.com/eventease/manager/pkg/model"
)

func NewService(repository *repository) *Service {
	return &Service{repository}
}

type Service struct {
	repository *repository
}

// Create persists a new event owned by user. The custom field definitions are validated up front
// so that a broken definition can never reach the public registration form.
func (s Service) Create(ctx context.Context, user *model.User, event *model.Event) (*model.Event, error) {
	if err := validateCustomFields(event.CustomFields); err != nil {
		return nil, err
	}

	event.UserID = user.ID
	err := s.repository.create(ctx, event)
	if err != nil {
		return nil, err
	}

	return event, nil
}

func (s Service) FindById(ctx context.Context, id uint) (*model.Event, error) {
	return s.repository.findById(ctx, id)
}

// FindAllFor lists the events visible on the dashboard of user. Administrators and staff see every
// event, owners only their own.
func (s Service) FindAllFor(ctx context.Context, user *model.User) ([]*model.Event, error) {
	if user.IsAdministrator() || user.IsStaff() {
		return s.repository.findAll(ctx)
	}
	return s.repository.findByOwner(ctx, user.ID)
}

// FindPublished lists the events visible to the public.
func (s Service) FindPublished(ctx context.Context) ([]*model.Event, error) {
	return s.repository.findPublished(ctx)
}

func (s Service) Update(ctx context.Context, user *model.User, id uint, update *model.Event) (*model.Event, error) {
	event, err := s.repository.findById(ctx, id)
	if err != nil {
		return nil, err
	}

	if !handler.CanWriteEvent(user, event) {
		return nil, errdef.NewForbidden("access denied to event %d", id)
	}

	if err := validateCustomFields(update.CustomFields); err != nil {
		return nil, err
	}

	event.Title = update.Title
	event.Date = update.Date
	event.Location = update.Location
	event.Description = update.Description
	event.Published = update.Published
	event.CustomFields = update.CustomFields

	err = s.repository.save(ctx, event)
	if err != nil {
		return nil, err
	}

	return event, nil
}

func (s Service) Delete(ctx context.Context, user *model.User, id uint) error {
	event, err := s.repository.findById(ctx, id)
	if err != nil {
		return err
	}

	if !handler.CanWriteEvent(user, event) {
		return errdef.NewForbidden("access denied to event %d", id)
	}

	return s.repository.delete(ctx, id)
}

// Publish toggles the public visibility of an event without altering its identity.
func (s Service) Publish(ctx context.Context, user *model.User, id uint, published bool) (*model.Event, error) {
	event, err := s.repository.findById(ctx, id)
	if err != nil {
		return nil, err
	}

	if !handler.CanPublishEvent(user, event) {
		return nil, errdef.NewForbidden("access denied to event %d", id)
	}

	err = s.repository.setPublished(ctx, event, published)
	if err != nil {
		return nil, err
	}

	event.Published = published
	return event, nil
}

// Stats summarizes event and attendee volume for the dashboard of user. Administrators see
// platform wide numbers.
func (s Service) Stats(ctx context.Context, user *model.User) (*model.EventStats, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	if user.IsAdministrator() {
		return s.repository.stats(ctx, nil, monthStart)
	}
	return s.repository.stats(ctx, &user.ID, monthStart)
}

// validateCustomFields rejects definitions which would break the registration form. Field names
// double as attribute map keys so they have to be unique within one event.
func validateCustomFields(fields model.CustomFields) error {
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if field.Name == "" {
			return errdef.NewBadRequest("custom field with empty name")
		}
		if !field.Type.Valid() {
			return errdef.NewBadRequest("custom field %q has unsupported type %q", field.Name, field.Type)
		}
		if _, ok := seen[field.Name]; ok {
			return errdef.NewBadRequest("duplicate custom field %q", field.Name)
		}
		seen[field.Name] = struct{}{}
	}
	return nil
}
