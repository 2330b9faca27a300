package rsvp

import (
	"context"
	"log/slog"
	"maps"

	"github.com/eventease/manager/internal/errdef"
	"github.com/eventease/manager/internal/handler"
	"github.com/eventease/manager/pkg/model"
	"github.com/go-playground/validator/v10"
)

func NewService(logger *slog.Logger, repository attendeeRepository, eventService eventService, calendarService calendarService, broker broker) *Service {
	return &Service{
		logger:          logger,
		repository:      repository,
		eventService:    eventService,
		calendarService: calendarService,
		broker:          broker,
	}
}

type attendeeRepository interface {
	create(ctx context.Context, attendee *model.Attendee) error
	findByEvent(ctx context.Context, eventId uint) ([]*model.Attendee, error)
}

type eventService interface {
	FindById(ctx context.Context, id uint) (*model.Event, error)
}

type calendarService interface {
	InsertEvent(ctx context.Context, accessToken string, event *model.Event) error
}

type broker interface {
	Notify(event *model.Event, attendee *model.Attendee)
}

type Service struct {
	logger          *slog.Logger
	repository      attendeeRepository
	eventService    eventService
	calendarService calendarService
	broker          broker
}

// Submission is one public RSVP to an event. Custom field answers arrive untyped since their shape
// is only known to the event's field definitions.
type Submission struct {
	Name          string
	Email         string
	Phone         string
	Fields        map[string]any
	AddToCalendar bool
	CalendarToken string
}

var validate = validator.New()

// Submit validates one submission against the event's field definitions and persists it. The
// calendar entry is a best effort side effect which can never fail the RSVP itself.
func (s Service) Submit(ctx context.Context, eventId uint, submission Submission) (*model.Attendee, error) {
	event, err := s.eventService.FindById(ctx, eventId)
	if err != nil {
		return nil, err
	}
	// unpublished events do not accept submissions and stay invisible
	if !event.Published {
		return nil, errdef.NewNotFound("failed to find event with id %d", eventId)
	}

	schema, err := BuildSchema(event.CustomFields)
	if err != nil {
		return nil, err
	}

	problems := validateContact(submission)
	attributes, fieldProblems := schema.Validate(submission.Fields)
	maps.Copy(problems, fieldProblems)
	if len(problems) > 0 {
		return nil, errdef.NewValidation(problems)
	}

	attendee := &model.Attendee{
		EventID: event.ID,
		Name:    submission.Name,
		Email:   submission.Email,
		Phone:   submission.Phone,
		Fields:  attributes,
	}
	err = s.repository.create(ctx, attendee)
	if err != nil {
		return nil, err
	}

	s.broker.Notify(event, attendee)

	if submission.AddToCalendar {
		s.addToCalendar(ctx, submission.CalendarToken, event)
	}

	return attendee, nil
}

// FindByEvent lists the attendees of an event for its organizer.
func (s Service) FindByEvent(ctx context.Context, user *model.User, eventId uint) ([]*model.Attendee, error) {
	event, err := s.eventService.FindById(ctx, eventId)
	if err != nil {
		return nil, err
	}

	if !handler.CanReadAttendees(user, event) {
		return nil, errdef.NewForbidden("access denied to attendees of event %d", eventId)
	}

	return s.repository.findByEvent(ctx, eventId)
}

// addToCalendar creates the calendar entry in a detached task. Its outcome is only logged, a slow
// or failing calendar must not block or fail the RSVP response.
func (s Service) addToCalendar(ctx context.Context, accessToken string, event *model.Event) {
	if accessToken == "" {
		return
	}

	ctx = context.WithoutCancel(ctx)
	go func() {
		err := s.calendarService.InsertEvent(ctx, accessToken, event)
		if err != nil {
			s.logger.ErrorContext(ctx, "Failed to add event to attendee calendar", "eventId", event.ID, "error", err)
		}
	}()
}

func validateContact(submission Submission) map[string]string {
	problems := map[string]string{}

	if err := validate.Var(submission.Name, "required,min=2"); err != nil {
		problems["name"] = "name must be at least 2 characters"
	}
	if err := validate.Var(submission.Email, "required,email"); err != nil {
		problems["email"] = "a valid email address is required"
	}
	if digits(submission.Phone) < 7 {
		problems["phone"] = "phone must contain at least 7 digits"
	}

	return problems
}

func digits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
