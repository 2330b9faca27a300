package rsvp

import (
	"context"
	"errors"
	"fmt"

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

// create inserts one attendee. The unique index on (event_id, email) rejects duplicate RSVPs at
// the storage level so concurrent submissions for the same address cannot both succeed.
func (r repository) create(ctx context.Context, attendee *model.Attendee) error {
	err := r.db.WithContext(ctx).Create(&attendee).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errdef.NewDuplicated("%s has already RSVP'd to this event", attendee.Email)
	}
	return err
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
