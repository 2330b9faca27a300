package rsvp_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/eventease/manager/internal/errdef"
	"github.com/eventease/manager/pkg/event"
	"github.com/eventease/manager/pkg/inttest"
	"github.com/eventease/manager/pkg/model"
	"github.com/eventease/manager/pkg/rsvp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRsvpService(t *testing.T) {
	t.Parallel()

	db := inttest.SetupDB(t)

	owner := &model.User{Name: "Olivia", Email: "olivia@x.com", Password: "x", Role: model.RoleEventOwner, Validated: true}
	require.NoError(t, db.Create(owner).Error)

	conference := &model.Event{
		Title:     "Tech Conference 2026",
		Date:      time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC),
		Published: true,
		UserID:    owner.ID,
		CustomFields: model.CustomFields{
			{Name: "Years of Experience", Type: model.FieldTypeNumber, Required: true},
			{Name: "Needs Parking", Type: model.FieldTypeCheckbox},
		},
	}
	require.NoError(t, db.Create(conference).Error)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	eventService := event.NewService(event.NewRepository(db))
	service := rsvp.NewService(logger, rsvp.NewRepository(db), eventService, noopCalendar{}, noopBroker{})

	ctx := context.Background()

	t.Run("answers survive the storage boundary", func(t *testing.T) {
		_, err := service.Submit(ctx, conference.ID, rsvp.Submission{
			Name:  "Alice",
			Email: "alice@x.com",
			Phone: "5551234567",
			Fields: map[string]any{
				"Years of Experience": "5",
				"Needs Parking":       true,
			},
		})
		require.NoError(t, err)

		attendees, err := service.FindByEvent(ctx, owner, conference.ID)
		require.NoError(t, err)
		require.Len(t, attendees, 1)
		assert.Equal(t, "Alice", attendees[0].Name)
		assert.Equal(t, model.AttributeMap{
			"Years of Experience": model.TextValue("5"),
			"Needs Parking":       model.FlagValue(true),
		}, attendees[0].Fields)
	})

	t.Run("concurrent duplicates cannot both succeed", func(t *testing.T) {
		submission := rsvp.Submission{
			Name:   "Bob",
			Email:  "bob@x.com",
			Phone:  "5559876543",
			Fields: map[string]any{"Years of Experience": "3"},
		}

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i := range errs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, errs[i] = service.Submit(ctx, conference.ID, submission)
			}()
		}
		wg.Wait()

		succeeded, duplicated := 0, 0
		for _, err := range errs {
			switch {
			case err == nil:
				succeeded++
			case errdef.IsDuplicated(err):
				duplicated++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		assert.Equal(t, 1, succeeded)
		assert.Equal(t, 1, duplicated)
	})

	t.Run("same email can RSVP to another event", func(t *testing.T) {
		meetup := &model.Event{
			Title:     "Summer Meetup",
			Date:      time.Date(2026, 7, 1, 18, 0, 0, 0, time.UTC),
			Published: true,
			UserID:    owner.ID,
		}
		require.NoError(t, db.Create(meetup).Error)

		_, err := service.Submit(ctx, meetup.ID, rsvp.Submission{
			Name:  "Alice",
			Email: "alice@x.com",
			Phone: "5551234567",
		})

		require.NoError(t, err)
	})
}

type noopCalendar struct{}

func (noopCalendar) InsertEvent(ctx context.Context, accessToken string, event *model.Event) error {
	return nil
}

type noopBroker struct{}

func (noopBroker) Notify(event *model.Event, attendee *model.Attendee) {}
