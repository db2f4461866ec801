// file: controllers/test_helpers_test.go
package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"go-holo-council/models"
	"go-holo-council/services"
	"go-holo-council/store"
)

// newTestRouter wires a full router against a fresh in-memory contest,
// mirroring the production route table plus a session-priming endpoint.
func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	doc := models.DefaultDocument()
	doc.SingersList = []models.Singer{
		{ID: 1, Name: "Akira", Song: "Aurora"},
		{ID: 2, Name: "Beatrice", Song: "Bluebird"},
		{ID: 3, Name: "Castor", Song: "Comet"},
		{ID: 4, Name: "Dora", Song: "Drift"},
	}
	doc.NextSingerID = 5
	doc.Operators = map[string]string{
		models.AdminUsername: "4545",
		"misa":               "1111",
		"noel":               "2222",
	}
	doc.DisplayNames = map[string]string{
		models.AdminUsername: "Administrator",
		"misa":               "Misa",
	}
	require.NoError(t, st.ReplaceAll(doc))

	router := gin.New()
	router.Use(sessions.Sessions("council_session", cookie.NewStore([]byte("test-secret"))))

	contest := services.NewContestService(st)
	tally := services.NewTallyService()
	settings := services.NewSettingsService(st)
	progress := services.NewProgressService(st)
	auth := services.NewAuthService(st)

	authCtl := NewAuthController(auth)
	voteCtl := NewVoteController(contest, progress)
	chartCtl := NewChartController(tally, contest)
	progressCtl := NewProgressController(progress)
	adminCtl := NewAdminController(contest, settings)

	router.POST("/login", authCtl.Login)
	router.POST("/logout", authCtl.Logout)
	router.GET("/me", authCtl.Me)
	router.GET("/charts/:view", chartCtl.GetChart)
	router.GET("/charts", chartCtl.GetChartSummary)
	router.POST("/votes", voteCtl.SubmitBallot)
	router.POST("/votes/adjust", voteCtl.AdjustTokens)
	router.POST("/votes/unlock", voteCtl.UnlockBallot)
	router.GET("/votes/status", voteCtl.VotingStatus)
	router.GET("/check", progressCtl.GetCheck)
	router.GET("/warriors", progressCtl.GetWarriors)
	router.POST("/admin/operators", adminCtl.AddOperator)
	router.PUT("/admin/operators", adminCtl.UpdateOperator)
	router.DELETE("/admin/operators/:username", adminCtl.DeleteOperator)
	router.POST("/admin/singers", adminCtl.AddSinger)
	router.DELETE("/admin/singers/:id", adminCtl.DeleteSinger)
	router.POST("/admin/locks/charts/:view", adminCtl.ToggleChartLock)
	router.POST("/admin/locks/voting/:evening", adminCtl.ToggleVotingLock)
	router.POST("/admin/visibility", adminCtl.ToggleSingerVisibility)
	router.DELETE("/admin/votes", adminCtl.DeleteVote)

	// test-only session priming
	router.POST("/test/session", func(c *gin.Context) {
		var body struct {
			Username string `json:"username"`
			IsAdmin  bool   `json:"isAdmin"`
		}
		require.NoError(t, c.ShouldBindJSON(&body))
		session := sessions.Default(c)
		session.Set("user", body.Username)
		session.Set("displayName", body.Username)
		session.Set("isAdmin", body.IsAdmin)
		require.NoError(t, session.Save())
		c.Status(http.StatusOK)
	})

	return router, st
}

// loginAs primes a session and returns its cookies for subsequent requests.
func loginAs(t *testing.T, router *gin.Engine, username string, isAdmin bool) []*http.Cookie {
	t.Helper()
	body, err := json.Marshal(gin.H{"username": username, "isAdmin": isAdmin})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test/session", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	return w.Result().Cookies()
}

// doJSON performs a request with an optional JSON body and session cookies.
func doJSON(router *gin.Engine, method, target string, payload any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a JSON response body into a map.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
