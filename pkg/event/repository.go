package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eventease/manager/internal/errdef"
	"github.com/eventease/manager/pkg/model"
	"gorm.io/gorm"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{db}
}

type repository struct {
	db *gorm.DB
}

const withAttendeeCount = "events.*, count(attendees.id) as attendee_count"

func (r repository) create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(&event).Error
}

func (r repository) save(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Save(&event).Error
}

func (r repository) findById(ctx context.Context, id uint) (*model.Event, error) {
	var event *model.Event
	err := r.db.
		WithContext(ctx).
		Preload("User").
		First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find event with id %d", id)
	}
	if err != nil {
		return nil, err
	}

	err = r.db.
		WithContext(ctx).
		Model(&model.Attendee{}).
		Where("event_id = ?", id).
		Count(&event.AttendeeCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count attendees of event %d: %v", id, err)
	}

	return event, nil
}

func (r repository) findAll(ctx context.Context) ([]*model.Event, error) {
	return r.list(ctx, r.db.WithContext(ctx))
}

func (r repository) findByOwner(ctx context.Context, userId uint) ([]*model.Event, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("events.user_id = ?", userId))
}

func (r repository) findPublished(ctx context.Context) ([]*model.Event, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("events.published = ?", true))
}

func (r repository) list(ctx context.Context, db *gorm.DB) ([]*model.Event, error) {
	var events []*model.Event
	err := db.
		Model(&model.Event{}).
		Select(withAttendeeCount).
		Joins("left join attendees on attendees.event_id = events.id").
		Group("events.id").
		Preload("User").
		Order("events.date").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find events: %v", err)
	}
	return events, nil
}

func (r repository) delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx).Unscoped().Delete(&model.Event{}, id)
	if db.Error != nil {
		return fmt.Errorf("failed to delete event with id %d: %v", id, db.Error)
	} else if db.RowsAffected < 1 {
		return errdef.NewNotFound("failed to find event with id %d", id)
	}

	return nil
}

func (r repository) setPublished(ctx context.Context, event *model.Event, published bool) error {
	err := r.db.
		WithContext(ctx).
		Model(&event).
		Update("published", published).Error
	if err != nil {
		return fmt.Errorf("failed to update published flag of event %d: %v", event.ID, err)
	}
	return nil
}

// stats computes event and attendee volume, scoped to one owner unless userId is nil.
func (r repository) stats(ctx context.Context, userId *uint, monthStart time.Time) (*model.EventStats, error) {
	stats := &model.EventStats{}

	events := r.db.WithContext(ctx).Model(&model.Event{})
	attendees := r.db.WithContext(ctx).
		Model(&model.Attendee{}).
		Joins("join events on events.id = attendees.event_id")
	if userId != nil {
		events = events.Where("events.user_id = ?", *userId)
		attendees = attendees.Where("events.user_id = ?", *userId)
	}

	err := events.Session(&gorm.Session{}).Count(&stats.TotalEvents).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count events: %v", err)
	}

	err = events.Session(&gorm.Session{}).Where("events.created_at >= ?", monthStart).Count(&stats.EventsThisMonth).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count events this month: %v", err)
	}

	err = attendees.Session(&gorm.Session{}).Count(&stats.TotalAttendees).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count attendees: %v", err)
	}

	err = attendees.Session(&gorm.Session{}).Where("attendees.created_at >= ?", monthStart).Count(&stats.AttendeesThisMonth).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count attendees this month: %v", err)
	}

	return stats, nil
}
