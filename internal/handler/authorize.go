package handler

import (
	"github.com/eventease/manager/pkg/model"
)

// CanReadEvent allows the owner, administrators and staff to see an unpublished event. Published
// events are public.
func CanReadEvent(user *model.User, event *model.Event) bool {
	if event.Published {
		return true
	}
	if user == nil {
		return false
	}
	return isOwner(user, event) || user.IsAdministrator() || user.IsStaff()
}

// CanWriteEvent allows mutation and deletion by the owner or an administrator.
func CanWriteEvent(user *model.User, event *model.Event) bool {
	if user == nil {
		return false
	}
	return isOwner(user, event) || user.IsAdministrator()
}

// CanPublishEvent allows publishing by the owner, an administrator or staff.
func CanPublishEvent(user *model.User, event *model.Event) bool {
	if user == nil {
		return false
	}
	return isOwner(user, event) || user.IsAdministrator() || user.IsStaff()
}

// CanReadAttendees allows the owner, an administrator or staff to see who RSVP'd.
func CanReadAttendees(user *model.User, event *model.Event) bool {
	if user == nil {
		return false
	}
	return isOwner(user, event) || user.IsAdministrator() || user.IsStaff()
}

func isOwner(user *model.User, event *model.Event) bool {
	return user.ID == event.UserID
}
