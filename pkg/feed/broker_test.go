package feed

import (
	"testing"

	"github.com/eventease/manager/pkg/model"
	"github.com/stretchr/testify/assert"
)

func TestBroker_Subscribe(t *testing.T) {
	broker := NewBroker()

	broker.Subscribe(model.User{ID: 123})

	assert.Len(t, broker.subscribers, 1)
	assert.Equal(t, broker.subscribers[123].user.ID, uint(123))
}

func TestBroker_Unsubscribe(t *testing.T) {
	broker := NewBroker()
	broker.Subscribe(model.User{ID: 123})

	broker.Unsubscribe(123)

	assert.Len(t, broker.subscribers, 0)
}

func TestBroker_Unsubscribe_Twice(t *testing.T) {
	broker := NewBroker()
	broker.Subscribe(model.User{ID: 123})

	broker.Unsubscribe(123)
	broker.Unsubscribe(123)

	assert.Len(t, broker.subscribers, 0)
}

func TestBroker_Notify(t *testing.T) {
	broker := NewBroker()
	broker.Subscribe(model.User{ID: 7, Role: model.RoleEventOwner})
	event := &model.Event{ID: 1, Title: "Tech Conference 2026", UserID: 7}

	broker.Notify(event, &model.Attendee{EventID: 1, Name: "Alice", Email: "alice@x.com"})

	notification, ok := broker.Receive(7)
	assert.True(t, ok)
	assert.Equal(t, uint(1), notification.EventID)
	assert.Equal(t, "Tech Conference 2026", notification.EventTitle)
	assert.Equal(t, "Alice", notification.AttendeeName)
	assert.Equal(t, "alice@x.com", notification.AttendeeEmail)
}

func TestBroker_Notify_SkipsOtherOwners(t *testing.T) {
	broker := NewBroker()
	broker.Subscribe(model.User{ID: 9, Role: model.RoleEventOwner})
	event := &model.Event{ID: 1, UserID: 7}

	broker.Notify(event, &model.Attendee{EventID: 1, Name: "Alice", Email: "alice@x.com"})

	assert.Len(t, broker.subscribers[9].channel, 0)
}

func TestBroker_Notify_ReachesStaff(t *testing.T) {
	broker := NewBroker()
	broker.Subscribe(model.User{ID: 9, Role: model.RoleStaff})
	event := &model.Event{ID: 1, UserID: 7}

	broker.Notify(event, &model.Attendee{EventID: 1, Name: "Alice", Email: "alice@x.com"})

	notification, ok := broker.Receive(9)
	assert.True(t, ok)
	assert.Equal(t, uint(1), notification.EventID)
}

func TestBroker_Receive_NoSubscriber(t *testing.T) {
	broker := NewBroker()

	_, ok := broker.Receive(123)

	assert.False(t, ok)
}
