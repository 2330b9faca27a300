package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// FieldType enumerates the supported kinds of custom registration fields.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeSelect   FieldType = "select"
)

// Valid returns true if t is one of the supported field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeCheckbox, FieldTypeSelect:
		return true
	}
	return false
}

// CustomField describes one extra registration question attached to an event. Its name doubles as
// the key into the attendee attribute map.
type CustomField struct {
	Name     string    `json:"name"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	Options  []string  `json:"options,omitempty"`
}

// CustomFields is the ordered list of custom field definitions of an event, stored as a JSONB
// column.
type CustomFields []CustomField

func (f CustomFields) Value() (driver.Value, error) {
	if f == nil {
		return "[]", nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (f *CustomFields) Scan(value any) error {
	if value == nil {
		*f = nil
		return nil
	}

	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported type for custom fields: %T", value)
	}
	return json.Unmarshal(b, f)
}

// Event domain object defining a schedulable happening owned by an organizer
// swagger:model
type Event struct {
	ID            uint         `gorm:"primarykey" json:"id"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
	Title         string       `gorm:"not null" json:"title"`
	Date          time.Time    `gorm:"not null" json:"date"`
	Location      string       `json:"location,omitempty"`
	Description   string       `json:"description,omitempty"`
	Published     bool         `gorm:"default:false" json:"published"`
	UserID        uint         `json:"userId"`
	User          *User        `json:"user,omitempty"`
	CustomFields  CustomFields `gorm:"type:jsonb;default:'[]';not null" json:"customFields"`
	Attendees     []Attendee   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	AttendeeCount int64        `gorm:"->;-:migration" json:"attendeeCount"`
}

// EventStats summarizes event and attendee volume for the dashboard.
type EventStats struct {
	TotalEvents        int64 `json:"totalEvents"`
	EventsThisMonth    int64 `json:"eventsThisMonth"`
	TotalAttendees     int64 `json:"totalAttendees"`
	AttendeesThisMonth int64 `json:"attendeesThisMonth"`
}
