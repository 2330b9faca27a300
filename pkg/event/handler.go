package event

import (
	"context"
	"net/http"
	"time"

	"github.com/eventease/manager/internal/errdef"
	"github.com/eventease/manager/internal/handler"
	"github.com/eventease/manager/pkg/model"
	"github.com/gin-gonic/gin"
)

func NewHandler(eventService eventService) Handler {
	return Handler{eventService}
}

type Handler struct {
	eventService eventService
}

type eventService interface {
	Create(ctx context.Context, user *model.User, event *model.Event) (*model.Event, error)
	FindById(ctx context.Context, id uint) (*model.Event, error)
	FindAllFor(ctx context.Context, user *model.User) ([]*model.Event, error)
	FindPublished(ctx context.Context) ([]*model.Event, error)
	Update(ctx context.Context, user *model.User, id uint, update *model.Event) (*model.Event, error)
	Delete(ctx context.Context, user *model.User, id uint) error
	Publish(ctx context.Context, user *model.User, id uint, published bool) (*model.Event, error)
	Stats(ctx context.Context, user *model.User) (*model.EventStats, error)
}

type CustomFieldRequest struct {
	Name     string          `json:"name" binding:"required"`
	Type     model.FieldType `json:"type" binding:"required,fieldType"`
	Required bool            `json:"required"`
	Options  []string        `json:"options"`
}

type EventRequest struct {
	Title        string               `json:"title" binding:"required"`
	Date         time.Time            `json:"date" binding:"required"`
	Location     string               `json:"location"`
	Description  string               `json:"description"`
	Published    bool                 `json:"published"`
	CustomFields []CustomFieldRequest `json:"customFields" binding:"dive"`
}

func (r EventRequest) toModel() *model.Event {
	fields := make(model.CustomFields, len(r.CustomFields))
	for i, field := range r.CustomFields {
		fields[i] = model.CustomField{
			Name:     field.Name,
			Type:     field.Type,
			Required: field.Required,
			Options:  field.Options,
		}
	}

	return &model.Event{
		Title:        r.Title,
		Date:         r.Date,
		Location:     r.Location,
		Description:  r.Description,
		Published:    r.Published,
		CustomFields: fields,
	}
}

// Create event
func (h Handler) Create(c *gin.Context) {
	// swagger:route POST /events createEvent
	//
	// Create event
	//
	// Create an event owned by the signed in user
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   201: Event
	//   400: Error
	//   401: Error
	//   415: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var request EventRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), user, request.toModel())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// FindAll events for the dashboard
func (h Handler) FindAll(c *gin.Context) {
	// swagger:route GET /events listEvents
	//
	// List events
	//
	// List the events visible to the signed in user. Administrators and staff see all events,
	// owners only their own
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: []Event
	//   401: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	events, err := h.eventService.FindAllFor(c.Request.Context(), user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// FindPublished events
func (h Handler) FindPublished(c *gin.Context) {
	// swagger:route GET /public/events listPublishedEvents
	//
	// List published events
	//
	// List the events visible to the public. No authentication required
	//
	// responses:
	//   200: []Event
	events, err := h.eventService.FindPublished(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// FindById event
func (h Handler) FindById(c *gin.Context) {
	// swagger:route GET /events/{id} findEventById
	//
	// Find event
	//
	// Find an event by id. Unpublished events are only visible to their owner, administrators and
	// staff
	//
	// responses:
	//   200: Event
	//   403: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	event, err := h.eventService.FindById(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	// the route is public so there might not be a user
	user, _ := handler.GetUserFromContext(c)
	if !handler.CanReadEvent(user, event) {
		// unpublished events stay invisible rather than merely forbidden
		_ = c.Error(errdef.NewNotFound("failed to find event with id %d", id))
		return
	}

	c.JSON(http.StatusOK, event)
}

// Update event
func (h Handler) Update(c *gin.Context) {
	// swagger:route PUT /events/{id} updateEvent
	//
	// Update event
	//
	// Update an event. Only the owner and administrators can update an event
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Event
	//   400: Error
	//   401: Error
	//   403: Error
	//   404: Error
	//   415: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request EventRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	event, err := h.eventService.Update(c.Request.Context(), user, id, request.toModel())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// Delete event
func (h Handler) Delete(c *gin.Context) {
	// swagger:route DELETE /events/{id} deleteEvent
	//
	// Delete event
	//
	// Delete an event and all its attendees. Only the owner and administrators can delete an event
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   204:
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

	err = h.eventService.Delete(c.Request.Context(), user, id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

type PublishRequest struct {
	Published *bool `json:"published" binding:"required"`
}

// Publish event
func (h Handler) Publish(c *gin.Context) {
	// swagger:route PUT /events/{id}/publish publishEvent
	//
	// Publish event
	//
	// Toggle the public visibility of an event. The owner, administrators and staff can publish
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Event
	//   400: Error
	//   401: Error
	//   403: Error
	//   404: Error
	//   415: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request PublishRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	event, err := h.eventService.Publish(c.Request.Context(), user, id, *request.Published)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// Stats for the dashboard
func (h Handler) Stats(c *gin.Context) {
	// swagger:route GET /stats dashboardStats
	//
	// Dashboard statistics
	//
	// Event and attendee volume for the signed in user. Administrators see platform wide numbers
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: EventStats
	//   401: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	stats, err := h.eventService.Stats(c.Request.Context(), user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
