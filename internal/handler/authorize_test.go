package handler

import (
	"testing"

	"github.com/eventease/manager/pkg/model"
	"github.com/stretchr/testify/assert"
)

func TestCanReadEvent(t *testing.T) {
	owner := &model.User{ID: 1, Role: model.RoleEventOwner}
	stranger := &model.User{ID: 2, Role: model.RoleEventOwner}
	staff := &model.User{ID: 3, Role: model.RoleStaff}
	draft := &model.Event{ID: 10, UserID: 1}

	assert.True(t, CanReadEvent(nil, &model.Event{Published: true}))
	assert.False(t, CanReadEvent(nil, draft))
	assert.True(t, CanReadEvent(owner, draft))
	assert.False(t, CanReadEvent(stranger, draft))
	assert.True(t, CanReadEvent(staff, draft))
}

func TestCanWriteEvent(t *testing.T) {
	event := &model.Event{ID: 10, UserID: 1}

	assert.True(t, CanWriteEvent(&model.User{ID: 1}, event))
	assert.True(t, CanWriteEvent(&model.User{ID: 9, Role: model.RoleAdmin}, event))
	assert.False(t, CanWriteEvent(&model.User{ID: 9, Role: model.RoleStaff}, event))
	assert.False(t, CanWriteEvent(&model.User{ID: 9, Role: model.RoleEventOwner}, event))
	assert.False(t, CanWriteEvent(nil, event))
}

func TestCanPublishEvent(t *testing.T) {
	event := &model.Event{ID: 10, UserID: 1}

	assert.True(t, CanPublishEvent(&model.User{ID: 1}, event))
	assert.True(t, CanPublishEvent(&model.User{ID: 9, Role: model.RoleStaff}, event))
	assert.True(t, CanPublishEvent(&model.User{ID: 9, Role: model.RoleAdmin}, event))
	assert.False(t, CanPublishEvent(&model.User{ID: 9, Role: model.RoleEventOwner}, event))
}
