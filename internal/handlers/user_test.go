package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xblade/league-api/internal/dto"
	"github.com/xblade/league-api/internal/models"
	"github.com/xblade/league-api/internal/services"
	"gorm.io/gorm"
)

type userTestEnv struct {
	db      *gorm.DB
	handler *UserHandler
	auth    *services.AuthService
}

func setupUserTestEnv(t *testing.T) userTestEnv {
	t.Helper()

	env := setupAuthTestEnv(t)
	return userTestEnv{
		db:      env.db,
		handler: NewUserHandler(env.authService),
		auth:    env.authService,
	}
}

func (e userTestEnv) signup(t *testing.T, username string) *models.User {
	t.Helper()

	user, err := e.auth.Signup(services.SignupInput{
		Username: username,
		Password: "supersecret",
	})
	require.NoError(t, err)
	return user
}

func TestUserHandler_ListUsers(t *testing.T) {
	env := setupUserTestEnv(t)
	env.signup(t, "zoe")
	env.signup(t, "alice")

	r := gin.New()
	r.GET("/api/v1/admin/users", env.handler.ListUsers)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response []dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response, 2)
	require.Equal(t, "alice", response[0].Username)
	require.Equal(t, "zoe", response[1].Username)
	require.False(t, response[0].IsAdmin)
}

func TestUserHandler_UpdateUser_GrantAdmin(t *testing.T) {
	env := setupUserTestEnv(t)
	user := env.signup(t, "promoted")
	require.False(t, user.IsAdmin)

	r := gin.New()
	r.PUT("/api/v1/admin/users/:userId", env.handler.UpdateUser)

	body, err := json.Marshal(map[string]interface{}{"is_admin": true})
	require.NoError(t, err)

	url := fmt.Sprintf("/api/v1/admin/users/%d", user.ID)
	req := httptest.NewRequest(http.MethodPut, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.True(t, response.IsAdmin)

	var stored models.User
	require.NoError(t, env.db.First(&stored, user.ID).Error)
	require.True(t, stored.IsAdmin)
}

func TestUserHandler_UpdateUser_NotFound(t *testing.T) {
	env := setupUserTestEnv(t)

	r := gin.New()
	r.PUT("/api/v1/admin/users/:userId", env.handler.UpdateUser)

	body, err := json.Marshal(map[string]interface{}{"is_admin": true})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/users/999", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserHandler_UpdateUser_UsernameTaken(t *testing.T) {
	env := setupUserTestEnv(t)
	env.signup(t, "taken")
	user := env.signup(t, "renamed")

	r := gin.New()
	r.PUT("/api/v1/admin/users/:userId", env.handler.UpdateUser)

	body, err := json.Marshal(map[string]interface{}{"username": "taken"})
	require.NoError(t, err)

	url := fmt.Sprintf("/api/v1/admin/users/%d", user.ID)
	req := httptest.NewRequest(http.MethodPut, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestUserHandler_DeleteUser(t *testing.T) {
	env := setupUserTestEnv(t)
	user := env.signup(t, "doomed")

	r := gin.New()
	r.DELETE("/api/v1/admin/users/:userId", env.handler.DeleteUser)

	url := fmt.Sprintf("/api/v1/admin/users/%d", user.ID)
	req := httptest.NewRequest(http.MethodDelete, url, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&count).Error)
	require.Zero(t, count)

	// Deleting again reports the absence.
	req = httptest.NewRequest(http.MethodDelete, url, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}
