package model

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Role determines which parts of the platform a user can act on.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleStaff      Role = "STAFF"
	RoleEventOwner Role = "EVENT_OWNER"
)

// User domain object defining a user
// swagger:model
type User struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
	Name             string         `json:"name"`
	Email            string         `gorm:"index;unique" json:"email"`
	Password         string         `json:"-"`
	Role             Role           `gorm:"default:EVENT_OWNER" json:"role"`
	Validated        bool           `json:"validated"`
	EmailToken       uuid.UUID      `json:"-"`
	PasswordToken    sql.NullString `json:"-"`
	PasswordTokenTTL uint           `json:"-"`
	Events           []Event        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (u *User) IsAdministrator() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsStaff() bool {
	return u.Role == RoleStaff
}

// UserWithStats is a user decorated with event and attendee counts for the admin dashboard.
type UserWithStats struct {
	User
	EventCount     int64 `json:"eventCount"`
	TotalAttendees int64 `json:"totalAttendees"`
}

type userContextKey int

var userKey userContextKey

// NewContextWithUser returns a new [context.Context] that carries the acting user.
func NewContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext returns the acting user stored in ctx, if any. Public routes like the RSVP
// submission have no user.
func GetUserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userKey).(*User)
	return user, ok
}
