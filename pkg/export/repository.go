package export

import (
	"context"
	"fmt"

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

func (r repository) findByEvent(ctx context.Context, eventId uint) ([]*model.Attendee, error) {
	var attendees []*model.Attendee
	err := r.db.
		WithContext(ctx).
		Where("event_id = ?", eventId).
		Order("created_at").
		Find(&attendees).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find attendees of event %d: %v", eventId, err)
	}
	return attendees, nil
}

// findEvents loads the whole event catalog with organizers and attendee counts for the admin
// export.
func (r repository) findEvents(ctx context.Context) ([]*model.Event, error) {
	var events []*model.Event
	err := r.db.
		WithContext(ctx).
		Model(&model.Event{}).
		Select("events.*, count(attendees.id) as attendee_count").
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

// findAll loads attendees across events, scoped to one owner unless userId is nil. The owning
// event is preloaded since the aggregate projection labels rows with the event title.
func (r repository) findAll(ctx context.Context, userId *uint) ([]*model.Attendee, error) {
	db := r.db.
		WithContext(ctx).
		Joins("join events on events.id = attendees.event_id").
		Preload("Event")
	if userId != nil {
		db = db.Where("events.user_id = ?", *userId)
	}

	var attendees []*model.Attendee
	err := db.Order("attendees.created_at").Find(&attendees).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find attendees: %v", err)
	}
	return attendees, nil
}
