package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"arena-comments/internal/domain"
	"arena-comments/internal/handler"
	"arena-comments/internal/middleware"
	"arena-comments/internal/service/auth"
	"arena-comments/tests/mocks"
)

type moderationFixture struct {
	app               *fiber.App
	moderationService *mocks.ModerationService
	authService       *mocks.AuthService
}

func newModerationFixture() *moderationFixture {
	moderationService := new(mocks.ModerationService)
	authService := new(mocks.AuthService)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	app.Use(middleware.RequestInfo())

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(moderationService)

	app.Post("/api/v1/auth/logout", middleware.AuthRequired(authService), authHandler.Logout)
	staff := app.Group("/api/v1", middleware.AuthRequired(authService), middleware.RequireStaff())
	staff.Post("/users/:userId/mute", userHandler.Mute)
	staff.Post("/users/:userId/unmute", userHandler.Unmute)

	return &moderationFixture{
		app:               app,
		moderationService: moderationService,
		authService:       authService,
	}
}

func (f *moderationFixture) authorizeUser(user *domain.User) string {
	f.authService.On("ValidateAccessToken", "valid-token").
		Return(&auth.Claims{UserID: user.ID, Email: user.Email}, nil)
	f.authService.On("GetUserByID", mock.Anything, user.ID).Return(user, nil)
	return "Bearer valid-token"
}

func TestMute_RequiresStaff(t *testing.T) {
	f := newModerationFixture()
	member := &domain.User{ID: uuid.New(), Username: "member", Role: string(domain.RoleMember)}
	token := f.authorizeUser(member)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/"+uuid.New().String()+"/mute", nil)
	req.Header.Set("Authorization", token)
	resp, err := f.app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	f.moderationService.AssertNotCalled(t, "SetMuted")
}

func TestMute_StaffMutesUser(t *testing.T) {
	f := newModerationFixture()
	moderator := &domain.User{ID: uuid.New(), Username: "mod", Role: string(domain.RoleModerator)}
	token := f.authorizeUser(moderator)
	targetID := uuid.New()

	f.moderationService.On("SetMuted", mock.Anything, moderator, targetID, true, mock.Anything).
		Return(&domain.User{ID: targetID, Username: "loud", Muted: true}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/"+targetID.String()+"/mute", nil)
	req.Header.Set("Authorization", token)
	resp, err := f.app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		User domain.User `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.User.Muted)
	f.moderationService.AssertExpectations(t)
}

func TestMute_UnknownUserIs404(t *testing.T) {
	f := newModerationFixture()
	moderator := &domain.User{ID: uuid.New(), Username: "mod", Role: string(domain.RoleAdmin)}
	token := f.authorizeUser(moderator)
	targetID := uuid.New()

	f.moderationService.On("SetMuted", mock.Anything, moderator, targetID, true, mock.Anything).
		Return(nil, domain.ErrNotFound).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/"+targetID.String()+"/mute", nil)
	req.Header.Set("Authorization", token)
	resp, err := f.app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestLogout_RevokesSessionsForRequester(t *testing.T) {
	f := newModerationFixture()
	user := &domain.User{ID: uuid.New(), Username: "solver", Role: string(domain.RoleMember)}
	token := f.authorizeUser(user)

	f.authService.On("Logout", mock.Anything, user.ID).Return(nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", token)
	resp, err := f.app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	f.authService.AssertExpectations(t)
}

func TestLogout_WithoutAuthIs401(t *testing.T) {
	f := newModerationFixture()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	resp, err := f.app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	f.authService.AssertNotCalled(t, "Logout")
}
