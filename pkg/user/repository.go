package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eventease/manager/internal/errdef"
	"github.com/eventease/manager/pkg/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{db}
}

type repository struct {
	db *gorm.DB
}

func (r repository) save(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(&user).Error
}

func (r repository) create(ctx context.Context, u *model.User) error {
	err := r.db.WithContext(ctx).Create(&u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errdef.NewDuplicated("user %q already exists", u.Email)
	}

	return err
}

func (r repository) findAll(ctx context.Context) ([]*model.User, error) {
	var users []*model.User

	err := r.db.
		WithContext(ctx).
		Order("Email").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find all users: %v", err)
	}

	return users, nil
}

func (r repository) findAllWithStats(ctx context.Context) ([]*model.UserWithStats, error) {
	var users []*model.UserWithStats

	err := r.db.
		WithContext(ctx).
		Model(&model.User{}).
		Select("users.*, count(distinct events.id) as event_count, count(attendees.id) as total_attendees").
		Joins("left join events on events.user_id = users.id").
		Joins("left join attendees on attendees.event_id = events.id").
		Group("users.id").
		Order("users.created_at desc").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find users with stats: %v", err)
	}

	return users, nil
}

func (r repository) findByEmail(ctx context.Context, email string) (*model.User, error) {
	var u *model.User
	err := r.db.
		WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find user with email %q", email)
	}
	return u, err
}

func (r repository) findByEmailToken(ctx context.Context, token uuid.UUID) (*model.User, error) {
	var user *model.User
	err := r.db.WithContext(ctx).First(&user, "email_token = ?", token.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find user with email token %q", token.String())
	}
	return user, err
}

func (r repository) findByPasswordResetToken(ctx context.Context, token string) (*model.User, error) {
	var user *model.User
	err := r.db.WithContext(ctx).First(&user, "password_token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find user with password reset token")
	}
	return user, err
}

func (r repository) findById(ctx context.Context, id uint) (*model.User, error) {
	var u *model.User
	err := r.db.
		WithContext(ctx).
		First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find user with id %d", id)
	}
	return u, err
}

func (r repository) delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx).Unscoped().Delete(&model.User{}, id)
	if db.Error != nil {
		return fmt.Errorf("failed to delete user with id %d: %v", id, db.Error)
	} else if db.RowsAffected < 1 {
		return errdef.NewNotFound("failed to find user with id %d", id)
	}

	return nil
}

func (r repository) updateRole(ctx context.Context, user *model.User, role model.Role) error {
	err := r.db.
		WithContext(ctx).
		Model(&user).
		Update("role", role).Error
	if err != nil {
		return fmt.Errorf("failed to update role of user %d: %v", user.ID, err)
	}

	return nil
}

func (r repository) resetPassword(ctx context.Context, user *model.User) error {
	updatedUser := model.User{
		Password:      user.Password,
		PasswordToken: sql.NullString{String: "", Valid: false},
	}

	err := r.db.
		WithContext(ctx).
		Model(&user).
		Select("Password", "PasswordToken").
		Updates(updatedUser).Error
	if err != nil {
		return fmt.Errorf("failed to update user password: %v", err)
	}

	return nil
}
