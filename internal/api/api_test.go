package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solhaven/astrocade/internal/api"
	"github.com/solhaven/astrocade/internal/api/response"
	"github.com/solhaven/astrocade/internal/factory"
	"github.com/solhaven/astrocade/internal/model"
	"github.com/solhaven/astrocade/internal/services/identity"
)

// testServer wraps the router with its test dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app := factory.NewTestApp()
	go app.PresenceHub.Run()
	t.Cleanup(app.PresenceHub.Close)

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		IdentityService: app.IdentityService,
		Provider:        app.MockProvider,
		SyncService:     app.SyncService,
		ChartService:    app.ChartService,
		Store:           app.Store,
		PresenceHub:     app.PresenceHub,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

// login establishes a session directly through the identity service
func (ts *testServer) login(id, name string) *identity.Session {
	return ts.app.IdentityService.CreateSession(&identity.Profile{
		ID:       model.Identity(id),
		Username: name,
	})
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestLandingPageIsPublic(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
}

func TestHomeRedirectsWhenLoggedOut(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/home", nil, "")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
}

func TestAPIRedirectsToLoginWhenLoggedOut(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/player", nil, "")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/auth/discord", rr.Header().Get("Location"))
}

func TestGetPlayerProvisionsRecord(t *testing.T) {
	ts := newTestServer(t)
	session := ts.login("123456789", "stargazer")

	rr := ts.request(http.MethodGet, "/api/player", nil, session.Token)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.PlayerEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.Player)
	assert.Equal(t, "123456789", resp.Player.ID)
	assert.EqualValues(t, 0, resp.Player.Currency)

	// The record now exists in the store.
	rec, err := ts.app.Store.GetPlayer(t.Context(), model.Identity("123456789"))
	require.NoError(t, err)
	assert.Equal(t, model.Identity("123456789"), rec.ID)
}

func TestGetPlayerIsIdempotent(t *testing.T) {
	ts := newTestServer(t)
	session := ts.login("123456789", "stargazer")

	rr1 := ts.request(http.MethodGet, "/api/player", nil, session.Token)
	rr2 := ts.request(http.MethodGet, "/api/player", nil, session.Token)

	var p1, p2 response.PlayerEnvelope
	require.NoError(t, json.Unmarshal(rr1.Body.Bytes(), &p1))
	require.NoError(t, json.Unmarshal(rr2.Body.Bytes(), &p2))
	assert.Equal(t, p1.Player.CreatedAt, p2.Player.CreatedAt)
}

func TestGetPlayerRecord(t *testing.T) {
	ts := newTestServer(t)
	session := ts.login("123456789", "stargazer")

	rr := ts.request(http.MethodGet, "/api/player-record", nil, session.Token)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.PlayerEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.Player)
	assert.Equal(t, "123456789", resp.Player.ID)
}

func TestUpdatePlayerRecord(t *testing.T) {
	ts := newTestServer(t)
	session := ts.login("123456789", "stargazer")

	// Provision via sync first.
	ts.request(http.MethodGet, "/api/player", nil, session.Token)

	body := map[string]any{
		"birthDate":     "1990-07-16",
		"birthTime":     "14:30",
		"birthLocation": "New York",
		"astroData": map[string]string{
			"sunSign":       "Cancer",
			"moonSign":      "Scorpio",
			"ascendantSign": "Virgo",
			"midheavenSign": "Gemini",
		},
	}
	rr := ts.request(http.MethodPatch, "/update-player-record", body, session.Token)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.MessageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Player record updated successfully!", resp.Message)

	rec, err := ts.app.Store.GetPlayer(t.Context(), model.Identity("123456789"))
	require.NoError(t, err)
	assert.Equal(t, "Cancer", rec.SunSign)
	assert.Equal(t, "New York", rec.BirthLocation)
}

func TestUpdatePlayerRecordOverwritesWholesale(t *testing.T) {
	ts := newTestServer(t)
	session := ts.login("123456789", "stargazer")
	ts.request(http.MethodGet, "/api/player", nil, session.Token)

	full := map[string]any{
		"birthDate": "1990-07-16",
		"birthTime": "14:30",
		"astroData": map[string]string{"sunSign": "Cancer"},
	}
	ts.request(http.MethodPatch, "/update-player-record", full, session.Token)

	// A second update with fewer fields clears the rest.
	partial := map[string]string{"birthDate": "1991-01-01"}
	rr := ts.request(http.MethodPatch, "/update-player-record", partial, session.Token)
	require.Equal(t, http.StatusOK, rr.Code)

	rec, err := ts.app.Store.GetPlayer(t.Context(), model.Identity("123456789"))
	require.NoError(t, err)
	assert.Equal(t, "1991-01-01", rec.BirthDate)
	assert.Empty(t, rec.SunSign)
	assert.Empty(t, rec.BirthTime)
}

func TestUpdatePlayerRecordUnknownIdentity(t *testing.T) {
	ts := newTestServer(t)
	session := ts.login("123456789", "stargazer")

	body := map[string]any{
		"discordUserId": "ghost",
		"birthDate":     "1990-07-16",
	}
	rr := ts.request(http.MethodPatch, "/update-player-record", body, session.Token)
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Player record not found")
}

func TestGetDiscordUserID(t *testing.T) {
	ts := newTestServer(t)
	session := ts.login("123456789", "stargazer")

	rr := ts.request(http.MethodGet, "/get-discord-user-id", nil, session.Token)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.IdentityResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "123456789", resp.DiscordUserID)
}

func TestGetDiscordUserIDLoggedOut(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/get-discord-user-id", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Not found")
}

func TestComputeChart(t *testing.T) {
	ts := newTestServer(t)
	session := ts.login("123456789", "stargazer")

	body := map[string]string{
		"birthDate":     "1990-07-16",
		"birthTime":     "14:30",
		"birthLocation": "New York",
	}
	rr := ts.request(http.MethodPost, "/astro", body, session.Token)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.ChartResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.Result)
	assert.Equal(t, "Cancer", resp.Result.SunSign)
	assert.Equal(t, "Scorpio", resp.Result.MoonSign)
	assert.Equal(t, "Virgo", resp.Result.AscendantSign)
	assert.Equal(t, "Gemini", resp.Result.MidheavenSign)
}

func TestComputeChartInvalidTimestamp(t *testing.T) {
	ts := newTestServer(t)
	session := ts.login("123456789", "stargazer")

	body := map[string]string{
		"birthDate":     "not-a-date",
		"birthTime":     "2pm",
		"birthLocation": "New York",
	}
	rr := ts.request(http.MethodPost, "/astro", body, session.Token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_INPUT")
	assert.Zero(t, ts.app.MockEphemeris.Calls)
}

func TestComputeChartUnknownLocation(t *testing.T) {
	ts := newTestServer(t)
	session := ts.login("123456789", "stargazer")
	ts.app.MockGeocoder.Err = model.ErrInvalidLocation

	body := map[string]string{
		"birthDate":     "1990-07-16",
		"birthTime":     "14:30",
		"birthLocation": "Nowhereville",
	}
	rr := ts.request(http.MethodPost, "/astro", body, session.Token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_LOCATION")
	assert.Zero(t, ts.app.MockEphemeris.Calls)
}

func TestComputeChartUpstreamFailure(t *testing.T) {
	ts := newTestServer(t)
	session := ts.login("123456789", "stargazer")
	ts.app.MockEphemeris.Err = model.ErrUpstream

	body := map[string]string{
		"birthDate":     "1990-07-16",
		"birthTime":     "14:30",
		"birthLocation": "New York",
	}
	rr := ts.request(http.MethodPost, "/astro", body, session.Token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "UPSTREAM_ERROR")
}

func TestLoginFlowSetsSessionCookie(t *testing.T) {
	ts := newTestServer(t)

	// Begin: redirected to the provider with a state cookie.
	begin := ts.request(http.MethodGet, "/auth/discord", nil, "")
	require.Equal(t, http.StatusSeeOther, begin.Code)

	var state string
	for _, c := range begin.Result().Cookies() {
		if c.Name == "oauth_state" {
			state = c.Value
		}
	}
	require.NotEmpty(t, state)

	// Callback with the matching state.
	req := httptest.NewRequest(http.MethodGet, "/auth/discord/callback?code=abc&state="+state, nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: state})
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/home", rr.Header().Get("Location"))

	var sessionToken string
	for _, c := range rr.Result().Cookies() {
		if c.Name == identity.CookieName {
			sessionToken = c.Value
		}
	}
	require.NotEmpty(t, sessionToken)

	// The cookie works against a gated route.
	player := ts.request(http.MethodGet, "/api/player", nil, sessionToken)
	assert.Equal(t, http.StatusOK, player.Code)
}

func TestCallbackStateMismatch(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/discord/callback?code=abc&state=evil", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "legit"})
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
	assert.Empty(t, ts.app.MockProvider.ExchangeCalls)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	ts := newTestServer(t)
	session := ts.login("123456789", "stargazer")

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(identity.SessionCookie(session))
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	after := ts.request(http.MethodGet, "/api/player", nil, session.Token)
	assert.Equal(t, http.StatusSeeOther, after.Code)
}
