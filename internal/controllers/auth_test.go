package controllers_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustsitter/internal/auth"
)

func TestRegisterFamily(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, "POST", "/api/register", "", map[string]interface{}{
		"firstName":   "Priya",
		"lastName":    "Patel",
		"email":       "priya@example.com",
		"password":    "password123",
		"accountType": "family",
	})
	require.Equal(t, 201, w.Code, w.Body.String())

	body := decode(t, w)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "family", user["userType"])
	assert.Equal(t, "priya@example.com", user["email"])
	// families carry no verification flag
	assert.Nil(t, user["isVerified"])
}

func TestRegisterSitter(t *testing.T) {
	r, _ := newTestRouter(t)

	token := registerSitter(t, r, "sana@example.com")
	assert.NotEmpty(t, token)

	w := doJSON(t, r, "GET", "/api/profile", token, nil)
	require.Equal(t, 200, w.Code)
	profile := decode(t, w)
	assert.Equal(t, "sitter", profile["userType"])
	assert.Equal(t, false, profile["isVerified"])
	assert.Equal(t, false, profile["isProfilePublic"])
	assert.Equal(t, []interface{}{"newborn care"}, profile["services"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r, _ := newTestRouter(t)
	registerSitter(t, r, "dup@example.com")

	// other fields differ, email decides
	w := doJSON(t, r, "POST", "/api/register", "", map[string]interface{}{
		"firstName":   "Other",
		"lastName":    "Person",
		"email":       "dup@example.com",
		"password":    "different-pass",
		"accountType": "family",
	})
	assert.Equal(t, 409, w.Code)
	assert.Equal(t, "Email already registered", decode(t, w)["message"])
}

func TestRegisterValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, "POST", "/api/register", "", map[string]interface{}{
		"firstName": "No",
		"lastName":  "Email",
		"password":  "password123",
	})
	assert.Equal(t, 400, w.Code)

	w = doJSON(t, r, "POST", "/api/register", "", map[string]interface{}{
		"firstName":   "Bad",
		"lastName":    "Kind",
		"email":       "bad@example.com",
		"password":    "password123",
		"accountType": "admin",
	})
	assert.Equal(t, 400, w.Code)
}

func TestLogin(t *testing.T) {
	r, _ := newTestRouter(t)
	registerSitter(t, r, "sana@example.com")

	w := doJSON(t, r, "POST", "/api/login", "", map[string]string{
		"email":    "sana@example.com",
		"password": "password123",
	})
	require.Equal(t, 200, w.Code, w.Body.String())
	body := decode(t, w)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "sitter", user["userType"])
	assert.Equal(t, false, user["isVerified"])

	// the fresh token is accepted on protected routes
	w = doJSON(t, r, "GET", "/api/profile", body["token"].(string), nil)
	assert.Equal(t, 200, w.Code)
}

func TestLoginInvalidCredentials(t *testing.T) {
	r, _ := newTestRouter(t)
	registerFamily(t, r, "priya@example.com")

	wrongPass := doJSON(t, r, "POST", "/api/login", "", map[string]string{
		"email":    "priya@example.com",
		"password": "wrong-password",
	})
	noUser := doJSON(t, r, "POST", "/api/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "password123",
	})

	// unknown email and wrong password are indistinguishable
	assert.Equal(t, 401, wrongPass.Code)
	assert.Equal(t, 401, noUser.Code)
	assert.Equal(t, decode(t, wrongPass)["message"], decode(t, noUser)["message"])
	assert.Equal(t, "Invalid credentials", decode(t, wrongPass)["message"])
}

func TestProtectedRoutesRejectBadTokens(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, "GET", "/api/profile", "", nil)
	assert.Equal(t, 401, w.Code)
	assert.Equal(t, "Token is missing", decode(t, w)["message"])

	w = doJSON(t, r, "GET", "/api/profile", "garbage", nil)
	assert.Equal(t, 401, w.Code)
	assert.Equal(t, "Invalid token", decode(t, w)["message"])

	expired, err := auth.CreateAccessToken(1, testSecret, -time.Minute)
	require.NoError(t, err)
	w = doJSON(t, r, "GET", "/api/profile", expired, nil)
	assert.Equal(t, 401, w.Code)
	assert.Equal(t, "Token has expired", decode(t, w)["message"])

	// every protected endpoint is behind the same gate
	for _, route := range [][2]string{
		{"PUT", "/api/profile"},
		{"POST", "/api/sitter/request-verification"},
		{"POST", "/api/sitter/availability"},
		{"DELETE", "/api/sitter/availability/1"},
		{"POST", "/api/sitter/publish-profile"},
		{"GET", "/api/sitters"},
	} {
		w := doJSON(t, r, route[0], route[1], expired, nil)
		assert.Equal(t, 401, w.Code, fmt.Sprintf("%s %s", route[0], route[1]))
	}
}
