package rsvp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/eventease/manager/internal/errdef"
	"github.com/eventease/manager/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestService_Submit(t *testing.T) {
	event := &model.Event{
		ID:        1,
		Title:     "Tech Conference 2026",
		Published: true,
		CustomFields: model.CustomFields{
			{Name: "Years of Experience", Type: model.FieldTypeNumber, Required: true},
		},
	}

	t.Run("persists a valid submission", func(t *testing.T) {
		repository := &mockAttendeeRepository{}
		repository.
			On("create", mock.Anything, mock.AnythingOfType("*model.Attendee")).
			Return(nil)
		eventService := &mockEventService{}
		eventService.
			On("FindById", mock.Anything, uint(1)).
			Return(event, nil)
		broker := &mockBroker{}
		broker.
			On("Notify", event, mock.AnythingOfType("*model.Attendee")).
			Return()
		service := NewService(discardLogger(), repository, eventService, &mockCalendarService{}, broker)

		attendee, err := service.Submit(context.Background(), 1, Submission{
			Name:   "Alice",
			Email:  "alice@x.com",
			Phone:  "5551234567",
			Fields: map[string]any{"Years of Experience": "5"},
		})

		require.NoError(t, err)
		assert.Equal(t, uint(1), attendee.EventID)
		assert.Equal(t, "Alice", attendee.Name)
		assert.Equal(t, model.AttributeMap{"Years of Experience": model.TextValue("5")}, attendee.Fields)
		repository.AssertExpectations(t)
		broker.AssertExpectations(t)
	})

	t.Run("hides unpublished events", func(t *testing.T) {
		eventService := &mockEventService{}
		eventService.
			On("FindById", mock.Anything, uint(2)).
			Return(&model.Event{ID: 2, Published: false}, nil)
		service := NewService(discardLogger(), &mockAttendeeRepository{}, eventService, &mockCalendarService{}, &mockBroker{})

		_, err := service.Submit(context.Background(), 2, Submission{
			Name:  "Alice",
			Email: "alice@x.com",
			Phone: "5551234567",
		})

		require.Error(t, err)
		assert.True(t, errdef.IsNotFound(err))
	})

	t.Run("reports problems per field before any write", func(t *testing.T) {
		eventService := &mockEventService{}
		eventService.
			On("FindById", mock.Anything, uint(1)).
			Return(event, nil)
		repository := &mockAttendeeRepository{}
		service := NewService(discardLogger(), repository, eventService, &mockCalendarService{}, &mockBroker{})

		_, err := service.Submit(context.Background(), 1, Submission{
			Name:  "A",
			Email: "not-an-email",
			Phone: "123",
		})

		require.Error(t, err)
		require.True(t, errdef.IsValidation(err))
		problems := errdef.ValidationFields(err)
		assert.Contains(t, problems, "name")
		assert.Contains(t, problems, "email")
		assert.Contains(t, problems, "phone")
		assert.Contains(t, problems, "Years of Experience")
		repository.AssertNotCalled(t, "create", mock.Anything, mock.Anything)
	})

	t.Run("surfaces duplicate submissions", func(t *testing.T) {
		eventService := &mockEventService{}
		eventService.
			On("FindById", mock.Anything, uint(1)).
			Return(event, nil)
		repository := &mockAttendeeRepository{}
		repository.
			On("create", mock.Anything, mock.AnythingOfType("*model.Attendee")).
			Return(errdef.NewDuplicated("alice@x.com has already RSVP'd to this event"))
		broker := &mockBroker{}
		service := NewService(discardLogger(), repository, eventService, &mockCalendarService{}, broker)

		_, err := service.Submit(context.Background(), 1, Submission{
			Name:   "Alice",
			Email:  "alice@x.com",
			Phone:  "5551234567",
			Fields: map[string]any{"Years of Experience": "5"},
		})

		require.Error(t, err)
		assert.True(t, errdef.IsDuplicated(err))
		broker.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})

	t.Run("swallows calendar failures", func(t *testing.T) {
		eventService := &mockEventService{}
		eventService.
			On("FindById", mock.Anything, uint(1)).
			Return(event, nil)
		repository := &mockAttendeeRepository{}
		repository.
			On("create", mock.Anything, mock.AnythingOfType("*model.Attendee")).
			Return(nil)
		broker := &mockBroker{}
		broker.
			On("Notify", event, mock.AnythingOfType("*model.Attendee")).
			Return()
		inserted := make(chan struct{})
		calendarService := &mockCalendarService{inserted: inserted}
		calendarService.
			On("InsertEvent", mock.Anything, "google-token", event).
			Return(errors.New("calendar unavailable"))
		service := NewService(discardLogger(), repository, eventService, calendarService, broker)

		_, err := service.Submit(context.Background(), 1, Submission{
			Name:          "Alice",
			Email:         "alice@x.com",
			Phone:         "5551234567",
			Fields:        map[string]any{"Years of Experience": "5"},
			AddToCalendar: true,
			CalendarToken: "google-token",
		})

		require.NoError(t, err)
		select {
		case <-inserted:
		case <-time.After(time.Second):
			t.Fatal("calendar insert never ran")
		}
		calendarService.AssertExpectations(t)
	})

	t.Run("skips the calendar without a token", func(t *testing.T) {
		eventService := &mockEventService{}
		eventService.
			On("FindById", mock.Anything, uint(1)).
			Return(event, nil)
		repository := &mockAttendeeRepository{}
		repository.
			On("create", mock.Anything, mock.AnythingOfType("*model.Attendee")).
			Return(nil)
		broker := &mockBroker{}
		broker.
			On("Notify", event, mock.AnythingOfType("*model.Attendee")).
			Return()
		calendarService := &mockCalendarService{}
		service := NewService(discardLogger(), repository, eventService, calendarService, broker)

		_, err := service.Submit(context.Background(), 1, Submission{
			Name:          "Alice",
			Email:         "alice@x.com",
			Phone:         "5551234567",
			Fields:        map[string]any{"Years of Experience": "5"},
			AddToCalendar: true,
		})

		require.NoError(t, err)
		calendarService.AssertNotCalled(t, "InsertEvent", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_FindByEvent(t *testing.T) {
	event := &model.Event{ID: 1, UserID: 7, Published: true}

	t.Run("denies other owners", func(t *testing.T) {
		eventService := &mockEventService{}
		eventService.
			On("FindById", mock.Anything, uint(1)).
			Return(event, nil)
		service := NewService(discardLogger(), &mockAttendeeRepository{}, eventService, &mockCalendarService{}, &mockBroker{})

		_, err := service.FindByEvent(context.Background(), &model.User{ID: 9, Role: model.RoleEventOwner}, 1)

		require.Error(t, err)
		assert.True(t, errdef.IsForbidden(err))
	})

	t.Run("allows staff", func(t *testing.T) {
		eventService := &mockEventService{}
		eventService.
			On("FindById", mock.Anything, uint(1)).
			Return(event, nil)
		repository := &mockAttendeeRepository{}
		attendees := []*model.Attendee{{ID: 11, EventID: 1}}
		repository.
			On("findByEvent", mock.Anything, uint(1)).
			Return(attendees, nil)
		service := NewService(discardLogger(), repository, eventService, &mockCalendarService{}, &mockBroker{})

		found, err := service.FindByEvent(context.Background(), &model.User{ID: 9, Role: model.RoleStaff}, 1)

		require.NoError(t, err)
		assert.Equal(t, attendees, found)
	})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockAttendeeRepository struct{ mock.Mock }

func (m *mockAttendeeRepository) create(ctx context.Context, attendee *model.Attendee) error {
	return m.Called(ctx, attendee).Error(0)
}

func (m *mockAttendeeRepository) findByEvent(ctx context.Context, eventId uint) ([]*model.Attendee, error) {
	args := m.Called(ctx, eventId)
	return args.Get(0).([]*model.Attendee), args.Error(1)
}

type mockEventService struct{ mock.Mock }

func (m *mockEventService) FindById(ctx context.Context, id uint) (*model.Event, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*model.Event), args.Error(1)
}

type mockCalendarService struct {
	mock.Mock
	inserted chan struct{}
}

func (m *mockCalendarService) InsertEvent(ctx context.Context, accessToken string, event *model.Event) error {
	args := m.Called(ctx, accessToken, event)
	if m.inserted != nil {
		close(m.inserted)
	}
	return args.Error(0)
}

type mockBroker struct{ mock.Mock }

func (m *mockBroker) Notify(event *model.Event, attendee *model.Attendee) {
	m.Called(event, attendee)
}
