package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eventease/manager/pkg/model"
	"github.com/eventease/manager/pkg/token"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHandler_UpdateRole(t *testing.T) {
	userService := &mockUserService{}
	updated := &model.User{ID: 5, Role: model.RoleStaff}
	userService.
		On("UpdateRole", mock.Anything, uint(5), model.RoleStaff).
		Return(updated, nil)
	handler := NewHandler(userService, &mockTokenService{})

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	c.Request = newPost(t, "/users/5/role", &UpdateRoleRequest{Role: model.RoleStaff})

	handler.UpdateRole(c)

	require.Len(t, c.Errors.Errors(), 0)
	assert.Equal(t, http.StatusOK, recorder.Code)
	userService.AssertExpectations(t)
}

func TestHandler_UpdateRole_RejectsUnknownRole(t *testing.T) {
	handler := NewHandler(&mockUserService{}, &mockTokenService{})

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	c.Request = newPost(t, "/users/5/role", gin.H{"role": "SUPERUSER"})

	handler.UpdateRole(c)

	require.Len(t, c.Errors.Errors(), 1)
}

func TestHandler_SignOut(t *testing.T) {
	tokenService := &mockTokenService{}
	tokenService.
		On("SignOut", uint(123)).
		Return(nil)
	handler := NewHandler(&mockUserService{}, tokenService)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Set("user", &model.User{ID: 123})
	c.Request = httptest.NewRequest(http.MethodDelete, "/tokens", nil)

	handler.SignOut(c)

	require.Len(t, c.Errors.Errors(), 0)
	assert.Equal(t, http.StatusOK, recorder.Code)
	tokenService.AssertExpectations(t)
}

func TestHandler_RefreshToken(t *testing.T) {
	userService := &mockUserService{}
	user := &model.User{ID: 123}
	userService.
		On("FindById", mock.Anything, uint(123)).
		Return(user, nil)
	tokenService := &mockTokenService{}
	id := uuid.New()
	refreshTokenData := &token.RefreshTokenData{
		SignedToken: "signed-token",
		ID:          id,
		UserId:      123,
	}
	tokenService.
		On("ValidateRefreshToken", "token").
		Return(refreshTokenData, nil)
	tokens := &token.Tokens{
		AccessToken:  "accessToken",
		TokenType:    "bearer",
		RefreshToken: "refreshToken",
		ExpiresIn:    312,
	}
	tokenService.
		On("GetTokens", user, id.String()).
		Return(tokens, nil)
	handler := NewHandler(userService, tokenService)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = newPost(t, "/refresh", &RefreshTokenRequest{RefreshToken: "token"})

	handler.RefreshToken(c)

	require.Len(t, c.Errors.Errors(), 0)
	assert.Equal(t, http.StatusCreated, recorder.Code)
	tokenService.AssertExpectations(t)
	userService.AssertExpectations(t)
}

func newPost(t *testing.T, path string, body any) *http.Request {
	t.Helper()

	b, err := json.Marshal(body)
	require.NoError(t, err)
	request := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	request.Header.Set("Content-Type", "application/json")
	return request
}

type mockUserService struct{ mock.Mock }

func (m *mockUserService) SignUp(ctx context.Context, name string, email string, password string) (*model.User, error) {
	args := m.Called(ctx, name, email, password)
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserService) ValidateEmail(ctx context.Context, token uuid.UUID) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockUserService) FindById(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserService) FindAllWithStats(ctx context.Context) ([]*model.UserWithStats, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*model.UserWithStats), args.Error(1)
}

func (m *mockUserService) UpdateRole(ctx context.Context, id uint, role model.Role) (*model.User, error) {
	args := m.Called(ctx, id, role)
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserService) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserService) RequestPasswordReset(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockUserService) ResetPassword(ctx context.Context, token string, password string) error {
	return m.Called(ctx, token, password).Error(0)
}

type mockTokenService struct{ mock.Mock }

func (m *mockTokenService) GetTokens(user *model.User, previousTokenId string) (*token.Tokens, error) {
	args := m.Called(user, previousTokenId)
	return args.Get(0).(*token.Tokens), args.Error(1)
}

func (m *mockTokenService) ValidateRefreshToken(tokenString string) (*token.RefreshTokenData, error) {
	args := m.Called(tokenString)
	return args.Get(0).(*token.RefreshTokenData), args.Error(1)
}

func (m *mockTokenService) SignOut(userId uint) error {
	return m.Called(userId).Error(0)
}
