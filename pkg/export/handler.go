package export

import (
	"context"
	"fmt"
	"net/http"

	"github.com/eventease/manager/internal/handler"
	"github.com/eventease/manager/pkg/model"
	"github.com/gin-gonic/gin"
)

func NewHandler(exportService exportService) Handler {
	return Handler{exportService}
}

type Handler struct {
	exportService exportService
}

type exportService interface {
	Event(ctx context.Context, user *model.User, eventId uint) (*Export, error)
	Attendees(ctx context.Context, user *model.User) (*Export, error)
	Events(ctx context.Context, user *model.User) (*Export, error)
}

// Event exports one attendee list
func (h Handler) Event(c *gin.Context) {
	// swagger:route GET /events/{id}/export exportEvent
	//
	// Export attendees of an event
	//
	// Download the attendee list of one event as CSV. Only the owner, administrators and staff can
	// export
	//
	// security:
	//   oauth2:
	//
	// produces:
	//   - text/csv
	//
	// responses:
	//   200:
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

	export, err := h.exportService.Event(c.Request.Context(), user, id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	writeDownload(c, export)
}

// Attendees exports across events
func (h Handler) Attendees(c *gin.Context) {
	// swagger:route GET /attendees/export exportAttendees
	//
	// Export attendees
	//
	// Download all attendees visible to the signed in user as CSV. Administrators and staff export
	// the whole platform, owners only their own events
	//
	// security:
	//   oauth2:
	//
	// produces:
	//   - text/csv
	//
	// responses:
	//   200:
	//   401: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	export, err := h.exportService.Attendees(c.Request.Context(), user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	writeDownload(c, export)
}

// Events exports the event catalog
func (h Handler) Events(c *gin.Context) {
	// swagger:route GET /admin/events/export exportEvents
	//
	// Export events
	//
	// Download the whole event catalog as CSV. Administrators only
	//
	// security:
	//   oauth2:
	//
	// produces:
	//   - text/csv
	//
	// responses:
	//   200:
	//   401: Error
	//   403: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	export, err := h.exportService.Events(c.Request.Context(), user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	writeDownload(c, export)
}

func writeDownload(c *gin.Context, export *Export) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	c.Data(http.StatusOK, "text/csv", export.Content)
}
