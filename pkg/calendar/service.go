package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/eventease/manager/pkg/model"
	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

func NewService(logger *slog.Logger) *Service {
	return &Service{logger}
}

// Service creates Google Calendar entries on behalf of attendees. Visitors hand over a short lived
// OAuth access token with their submission, there is no server side credential store.
type Service struct {
	logger *slog.Logger
}

// InsertEvent creates an entry for event in the primary calendar of the token's owner. Entries run
// for two hours from the event date and keep the calendar's default reminders.
func (s Service) InsertEvent(ctx context.Context, accessToken string, event *model.Event) error {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	service, err := calendar.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return fmt.Errorf("failed to create calendar service: %w", err)
	}

	entry := &calendar.Event{
		Summary:     event.Title,
		Description: event.Description,
		Location:    event.Location,
		Start: &calendar.EventDateTime{
			DateTime: event.Date.Format(time.RFC3339),
		},
		End: &calendar.EventDateTime{
			DateTime: event.Date.Add(2 * time.Hour).Format(time.RFC3339),
		},
		Reminders: &calendar.EventReminders{
			UseDefault:      true,
			ForceSendFields: []string{"UseDefault"},
		},
	}

	created, err := service.Events.Insert("primary", entry).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to insert calendar entry: %w", err)
	}

	s.logger.InfoContext(ctx, "Created calendar entry", "eventId", event.ID, "entryId", created.Id)
	return nil
}
