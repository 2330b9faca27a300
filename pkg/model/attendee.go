package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ValueKind tags the decoded representation of one custom field answer.
type ValueKind int

const (
	// KindText holds text, number and select answers, all of which travel as strings.
	KindText ValueKind = iota
	// KindFlag holds checkbox answers.
	KindFlag
)

// FieldValue is one attendee answer to a custom field. Answers are stored in their natural JSON
// shape (string or bool) and decoded back into a tagged value so type information survives the
// storage boundary.
type FieldValue struct {
	kind ValueKind
	text string
	flag bool
}

// TextValue returns a FieldValue holding a text, number or select answer.
func TextValue(s string) FieldValue {
	return FieldValue{kind: KindText, text: s}
}

// FlagValue returns a FieldValue holding a checkbox answer.
func FlagValue(b bool) FieldValue {
	return FieldValue{kind: KindFlag, flag: b}
}

func (v FieldValue) Kind() ValueKind {
	return v.kind
}

// String renders the answer for display and export.
func (v FieldValue) String() string {
	if v.kind == KindFlag {
		return strconv.FormatBool(v.flag)
	}
	return v.text
}

// Bool returns the checkbox answer, false for any other kind.
func (v FieldValue) Bool() bool {
	return v.kind == KindFlag && v.flag
}

// IsZero returns true when the answer carries no content, meaning an empty string or an unchecked
// checkbox.
func (v FieldValue) IsZero() bool {
	if v.kind == KindFlag {
		return !v.flag
	}
	return v.text == ""
}

func (v FieldValue) MarshalJSON() ([]byte, error) {
	if v.kind == KindFlag {
		return json.Marshal(v.flag)
	}
	return json.Marshal(v.text)
}

func (v *FieldValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch value := raw.(type) {
	case string:
		*v = TextValue(value)
	case bool:
		*v = FlagValue(value)
	case float64:
		// tolerate numbers stored by older clients, they are text on the wire now
		*v = TextValue(strconv.FormatFloat(value, 'f', -1, 64))
	case nil:
		*v = TextValue("")
	default:
		return fmt.Errorf("unsupported custom field value: %s", data)
	}
	return nil
}

// AttributeMap holds an attendee's answers keyed by custom field name, stored as a JSONB column.
type AttributeMap map[string]FieldValue

func (m AttributeMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *AttributeMap) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}

	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported type for attribute map: %T", value)
	}
	return json.Unmarshal(b, m)
}

// Attendee domain object defining one RSVP to an event
// swagger:model
type Attendee struct {
	ID        uint         `gorm:"primarykey" json:"id"`
	CreatedAt time.Time    `json:"createdAt"`
	EventID   uint         `gorm:"uniqueIndex:idx_attendees_event_email;not null" json:"eventId"`
	Event     *Event       `json:"event,omitempty"`
	Name      string       `gorm:"not null" json:"name"`
	Email     string       `gorm:"uniqueIndex:idx_attendees_event_email;not null" json:"email"`
	Phone     string       `json:"phone"`
	Fields    AttributeMap `gorm:"type:jsonb;default:'{}';not null" json:"customFieldData"`
}
