// file: controllers/chart_controller_test.go
package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetChart_LockedForOperator(t *testing.T) {
	router, _ := newTestRouter(t)
	cookies := loginAs(t, router, "misa", false)

	// the default contest starts with every chart locked
	w := doJSON(router, http.MethodGet, "/charts/1", nil, cookies)

	assert.Equal(t, http.StatusLocked, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["locked"])
	assert.Equal(t, "1", body["view"])
	assert.NotContains(t, body, "entries")
}

func TestGetChart_AdminBypassesLock(t *testing.T) {
	router, _ := newTestRouter(t)
	cookies := loginAs(t, router, "admin", true)

	w := doJSON(router, http.MethodGet, "/charts/total", nil, cookies)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "total", body["view"])
	assert.Len(t, body["entries"], 4)
}

func TestGetChart_InvalidView(t *testing.T) {
	router, _ := newTestRouter(t)
	cookies := loginAs(t, router, "misa", false)

	w := doJSON(router, http.MethodGet, "/charts/9", nil, cookies)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetChart_UnlockedEveningTruncatedForOperator(t *testing.T) {
	router, _ := newTestRouter(t)
	admin := loginAs(t, router, "admin", true)

	// open voting stays as-is; unlock the evening 1 chart
	w := doJSON(router, http.MethodPost, "/admin/locks/charts/1", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)

	// cast a spread ballot so all four singers score differently
	w = doJSON(router, http.MethodPost, "/votes", map[string]any{
		"evening": 1,
		"tokens":  map[string]int{"1": 4, "2": 3, "3": 2, "4": 1},
	}, admin)
	require.Equal(t, http.StatusOK, w.Code)

	operator := loginAs(t, router, "misa", false)
	w = doJSON(router, http.MethodGet, "/charts/1", nil, operator)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["entries"], 3)

	// sanity: the full ranking is four entries for the admin
	w = doJSON(router, http.MethodGet, "/charts/1", nil, admin)
	assert.Len(t, decodeBody(t, w)["entries"], 4)
}

func TestGetChartSummary_AnyLockedFlag(t *testing.T) {
	router, _ := newTestRouter(t)
	admin := loginAs(t, router, "admin", true)

	w := doJSON(router, http.MethodGet, "/charts", nil, admin)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["anyLocked"])

	views := body["views"].(map[string]any)
	assert.Equal(t, true, views["total"])
	assert.Equal(t, true, views["4"])
}
