package rsvp

import (
	"context"
	"net/http"

	"github.com/eventease/manager/internal/handler"
	"github.com/eventease/manager/pkg/model"
	"github.com/gin-gonic/gin"
)

func NewHandler(rsvpService rsvpService) Handler {
	return Handler{rsvpService}
}

type Handler struct {
	rsvpService rsvpService
}

type rsvpService interface {
	Submit(ctx context.Context, eventId uint, submission Submission) (*model.Attendee, error)
	FindByEvent(ctx context.Context, user *model.User, eventId uint) ([]*model.Attendee, error)
}

type SubmitRequest struct {
	Name            string         `json:"name"`
	Email           string         `json:"email"`
	Phone           string         `json:"phone"`
	CustomFieldData map[string]any `json:"customFieldData"`
	AddToCalendar   bool           `json:"addToCalendar"`
	CalendarToken   string         `json:"calendarToken"`
}

// Submit RSVP
func (h Handler) Submit(c *gin.Context) {
	// swagger:route POST /events/{id}/rsvp submitRsvp
	//
	// Submit RSVP
	//
	// Register for a published event. No authentication required. Validation failures carry per
	// field messages so the form can highlight the offending inputs
	//
	// responses:
	//   201: Attendee
	//   400: Error
	//   404: Error
	//   409: Error
	//   415: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request SubmitRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	attendee, err := h.rsvpService.Submit(c.Request.Context(), id, Submission{
		Name:          request.Name,
		Email:         request.Email,
		Phone:         request.Phone,
		Fields:        request.CustomFieldData,
		AddToCalendar: request.AddToCalendar,
		CalendarToken: request.CalendarToken,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, attendee)
}

// FindByEvent lists attendees
func (h Handler) FindByEvent(c *gin.Context) {
	// swagger:route GET /events/{id}/attendees listAttendees
	//
	// List attendees
	//
	// List who RSVP'd to an event. Only the owner, administrators and staff can see attendees
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: []Attendee
	//   401: Error
	//   403: Error
	//   404: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	attendees, err := h.rsvpService.FindByEvent(c.Request.Context(), user, id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, attendees)
}
