package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/eventease/manager/internal/errdef"
	"github.com/eventease/manager/internal/handler"
	"github.com/eventease/manager/pkg/model"
	"github.com/gosimple/slug"
)

func NewService(repository exportRepository, eventService eventService) *Service {
	return &Service{repository, eventService}
}

type exportRepository interface {
	findByEvent(ctx context.Context, eventId uint) ([]*model.Attendee, error)
	findAll(ctx context.Context, userId *uint) ([]*model.Attendee, error)
	findEvents(ctx context.Context) ([]*model.Event, error)
}

type eventService interface {
	FindById(ctx context.Context, id uint) (*model.Event, error)
}

type Service struct {
	repository   exportRepository
	eventService eventService
}

// Export is a rendered CSV file ready to be sent as a download.
type Export struct {
	Filename string
	Content  []byte
}

// Event renders the attendee list of one event as CSV, a summary block followed by the tabular
// projection. Only the owner, administrators and staff can export.
func (s Service) Event(ctx context.Context, user *model.User, eventId uint) (*Export, error) {
	event, err := s.eventService.FindById(ctx, eventId)
	if err != nil {
		return nil, err
	}

	if !handler.CanReadAttendees(user, event) {
		return nil, errdef.NewForbidden("access denied to attendees of event %d", eventId)
	}

	attendees, err := s.repository.findByEvent(ctx, eventId)
	if err != nil {
		return nil, err
	}

	location := event.Location
	if location == "" {
		location = "N/A"
	}
	organizer := ""
	if event.User != nil {
		organizer = fmt.Sprintf("%s <%s>", event.User.Name, event.User.Email)
	}
	summary := [][]string{
		{"Event:", event.Title},
		{"Date:", event.Date.Format(timestampLayout)},
		{"Location:", location},
		{"Organizer:", organizer},
		{"Total Attendees:", strconv.Itoa(len(attendees))},
		{"Exported:", time.Now().Format(timestampLayout)},
	}

	content, err := render(summary, EventProjection(event, attendees))
	if err != nil {
		return nil, err
	}

	return &Export{
		Filename: fmt.Sprintf("%s-attendees.csv", slug.Make(event.Title)),
		Content:  content,
	}, nil
}

// Attendees renders all attendees visible to user as one CSV. Administrators and staff export the
// whole platform, owners only their own events.
func (s Service) Attendees(ctx context.Context, user *model.User) (*Export, error) {
	var userId *uint
	if !user.IsAdministrator() && !user.IsStaff() {
		userId = &user.ID
	}

	attendees, err := s.repository.findAll(ctx, userId)
	if err != nil {
		return nil, err
	}

	emails := map[string]struct{}{}
	events := map[uint]struct{}{}
	for _, attendee := range attendees {
		emails[attendee.Email] = struct{}{}
		events[attendee.EventID] = struct{}{}
	}
	summary := [][]string{
		{"Total RSVPs:", strconv.Itoa(len(attendees))},
		{"Unique Attendees:", strconv.Itoa(len(emails))},
		{"Events:", strconv.Itoa(len(events))},
		{"Exported By:", fmt.Sprintf("%s <%s>", user.Name, user.Email)},
		{"Exported:", time.Now().Format(timestampLayout)},
	}

	content, err := render(summary, AggregateProjection(attendees))
	if err != nil {
		return nil, err
	}

	return &Export{
		Filename: fmt.Sprintf("attendees-%s.csv", time.Now().Format("2006-01-02")),
		Content:  content,
	}, nil
}

// Events renders the whole event catalog as one CSV. Administrators only.
func (s Service) Events(ctx context.Context, user *model.User) (*Export, error) {
	if !user.IsAdministrator() {
		return nil, errdef.NewForbidden("only administrators can export events")
	}

	events, err := s.repository.findEvents(ctx)
	if err != nil {
		return nil, err
	}

	published := 0
	var totalAttendees int64
	for _, event := range events {
		if event.Published {
			published++
		}
		totalAttendees += event.AttendeeCount
	}
	summary := [][]string{
		{"Total Events:", strconv.Itoa(len(events))},
		{"Published:", strconv.Itoa(published)},
		{"Total Attendees:", strconv.FormatInt(totalAttendees, 10)},
		{"Exported By:", fmt.Sprintf("%s <%s>", user.Name, user.Email)},
		{"Exported:", time.Now().Format(timestampLayout)},
	}

	table := Table{
		Header: []string{"Title", "Date", "Location", "Published", "Organizer", "Attendees", "Created"},
		Rows:   make([][]string, 0, len(events)),
	}
	for _, event := range events {
		organizer := ""
		if event.User != nil {
			organizer = fmt.Sprintf("%s <%s>", event.User.Name, event.User.Email)
		}
		table.Rows = append(table.Rows, []string{
			event.Title,
			event.Date.Format(timestampLayout),
			event.Location,
			strconv.FormatBool(event.Published),
			organizer,
			strconv.FormatInt(event.AttendeeCount, 10),
			event.CreatedAt.Format(timestampLayout),
		})
	}

	content, err := render(summary, table)
	if err != nil {
		return nil, err
	}

	return &Export{
		Filename: fmt.Sprintf("events-%s.csv", time.Now().Format("2006-01-02")),
		Content:  content,
	}, nil
}

// render writes the summary block, a blank separator row and the projected table.
func render(summary [][]string, table Table) ([]byte, error) {
	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)

	for _, row := range summary {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write summary: %v", err)
		}
	}
	if err := writer.Write([]string{""}); err != nil {
		return nil, fmt.Errorf("failed to write separator: %v", err)
	}

	if err := writer.Write(table.Header); err != nil {
		return nil, fmt.Errorf("failed to write header: %v", err)
	}
	if err := writer.WriteAll(table.Rows); err != nil {
		return nil, fmt.Errorf("failed to write rows: %v", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to render csv: %v", err)
	}
	return buffer.Bytes(), nil
}
