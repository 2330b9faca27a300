package feed

import (
	"sync"

	"github.com/eventease/manager/internal/handler"
	"github.com/eventease/manager/pkg/model"
	"golang.org/x/exp/maps"
)

func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[uint]subscriber),
		lock:        sync.Mutex{},
	}
}

// Notification is one incoming RSVP as seen by a subscribed organizer.
type Notification struct {
	EventID       uint   `json:"eventId"`
	EventTitle    string `json:"eventTitle"`
	AttendeeName  string `json:"attendeeName"`
	AttendeeEmail string `json:"attendeeEmail"`
}

type subscriber struct {
	user    model.User
	channel chan Notification
}

// Broker fans incoming RSVPs out to subscribed organizers. Subscribers only see notifications for
// events they are allowed to read attendees of.
type Broker struct {
	subscribers map[uint]subscriber
	lock        sync.Mutex
}

func (b *Broker) Subscribe(user model.User) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.subscribers[user.ID] = subscriber{
		user:    user,
		channel: make(chan Notification, 16),
	}
}

func (b *Broker) Unsubscribe(id uint) {
	b.lock.Lock()
	defer b.lock.Unlock()
	if s, ok := b.subscribers[id]; ok {
		close(s.channel)
		delete(b.subscribers, id)
	}
}

func (b *Broker) Subscribers() []model.User {
	b.lock.Lock()
	defer b.lock.Unlock()
	keys := maps.Keys(b.subscribers)
	subscribers := make([]model.User, len(keys))
	for i, key := range keys {
		subscribers[i] = b.subscribers[key].user
	}
	return subscribers
}

// Notify delivers one RSVP to every subscriber entitled to see it. A slow consumer drops the
// notification rather than blocking the submitter.
func (b *Broker) Notify(event *model.Event, attendee *model.Attendee) {
	notification := Notification{
		EventID:       event.ID,
		EventTitle:    event.Title,
		AttendeeName:  attendee.Name,
		AttendeeEmail: attendee.Email,
	}

	b.lock.Lock()
	defer b.lock.Unlock()
	for _, s := range b.subscribers {
		if !handler.CanReadAttendees(&s.user, event) {
			continue
		}
		select {
		case s.channel <- notification:
		default:
		}
	}
}

func (b *Broker) Receive(id uint) (Notification, bool) {
	b.lock.Lock()
	s, ok := b.subscribers[id]
	b.lock.Unlock()
	if !ok {
		return Notification{}, false
	}

	notification, ok := <-s.channel
	return notification, ok
}
