package server

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"quill/internal/models"
)

const testPassword = "Str0ng!passw0rd"

func TestSignupAndLoginFlow(t *testing.T) {
	t.Parallel()

	_, app, db := newTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", fiber.Map{
		"username": "newwriter",
		"email":    "newwriter@example.com",
		"password": testPassword,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["token"])

	var user models.User
	require.NoError(t, db.Where("username = ?", "newwriter").First(&user).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(testPassword)),
		"password must be stored hashed")

	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "newwriter@example.com",
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, decodeBody(t, resp)["token"])
}

func TestSignupRejectsWeakPassword(t *testing.T) {
	t.Parallel()

	_, app, _ := newTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", fiber.Map{
		"username": "weakling",
		"email":    "weak@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSignupRejectsDuplicates(t *testing.T) {
	t.Parallel()

	_, app, db := newTestServer(t)
	createUser(t, db, "taken", false)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", fiber.Map{
		"username": "someoneelse",
		"email":    "taken@example.com",
		"password": testPassword,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/auth/signup", "", fiber.Map{
		"username": "taken",
		"email":    "fresh@example.com",
		"password": testPassword,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()

	_, app, db := newTestServer(t)
	hashed, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		Username: "locked", Email: "locked@example.com", Password: string(hashed),
	}).Error)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "locked@example.com",
		"password": "Wrong!passw0rd1",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "nobody@example.com",
		"password": testPassword,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProfileUpdate(t *testing.T) {
	t.Parallel()

	s, app, db := newTestServer(t)
	user := createUser(t, db, "profiled", false)
	createUser(t, db, "occupied", false)

	resp := doJSON(t, app, http.MethodGet, "/api/users/me", bearerToken(t, s, user), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "profiled", decodeBody(t, resp)["username"])

	resp = doJSON(t, app, http.MethodPut, "/api/users/me", bearerToken(t, s, user), fiber.Map{
		"first_name": "Quinn",
		"last_name":  "Ledger",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Quinn", body["first_name"])

	// Taking another user's name fails.
	resp = doJSON(t, app, http.MethodPut, "/api/users/me", bearerToken(t, s, user), fiber.Map{
		"username": "occupied",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
