// file: controllers/auth_controller_test.go
package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogin_Success(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/login", map[string]string{
		"username": "misa",
		"code":     "1111",
	}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "misa", body["username"])
	assert.Equal(t, "Misa", body["displayName"])
	assert.Equal(t, false, body["isAdmin"])
	assert.NotEmpty(t, w.Result().Cookies())
}

func TestLogin_AdminFlagSet(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/login", map[string]string{
		"username": "admin",
		"code":     "4545",
	}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["isAdmin"])
}

func TestLogin_WrongCode(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/login", map[string]string{
		"username": "misa",
		"code":     "9999",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_MissingFields(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/login", map[string]string{"username": "misa"}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMe_ReflectsSession(t *testing.T) {
	router, _ := newTestRouter(t)
	cookies := loginAs(t, router, "misa", false)

	w := doJSON(router, http.MethodGet, "/me", nil, cookies)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "misa", decodeBody(t, w)["username"])
}

func TestMe_WithoutSession(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/me", nil, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout_ClearsSession(t *testing.T) {
	router, _ := newTestRouter(t)
	cookies := loginAs(t, router, "misa", false)

	w := doJSON(router, http.MethodPost, "/logout", nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)

	// the refreshed cookie no longer carries an identity
	w = doJSON(router, http.MethodGet, "/me", nil, w.Result().Cookies())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
