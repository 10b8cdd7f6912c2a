package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gatherly_backend/internal/config"
	"gatherly_backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	testutil.ConfigureAuth()

	db := testutil.NewTestDB(t)
	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.App.BaseURL = "https://app.test"

	return SetupRouter(cfg, db)
}

func sendJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, router *gin.Engine, email, role string, extra map[string]interface{}) string {
	t.Helper()

	body := map[string]interface{}{
		"email":    email,
		"name":     "Test " + role,
		"password": "password123",
		"role":     role,
	}
	for k, v := range extra {
		body[k] = v
	}

	res := sendJSON(router, "POST", "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())

	res = sendJSON(router, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	var loginResp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &loginResp))
	require.NotEmpty(t, loginResp.AccessToken)
	return loginResp.AccessToken
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	res := sendJSON(router, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "ok")
}

func TestEventLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	hostToken := registerAndLogin(t, router, "host@test.com", "host", nil)

	createRes := sendJSON(router, "POST", "/api/v1/events", hostToken, map[string]interface{}{
		"name":       "Garden Party",
		"start_at":   time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"is_private": true,
		"tags":       []string{"outdoor"},
	})
	require.Equal(t, http.StatusCreated, createRes.Code, createRes.Body.String())

	var event struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(createRes.Body.Bytes(), &event))
	require.NotEmpty(t, event.ID)

	mineRes := sendJSON(router, "GET", "/api/v1/events/mine", hostToken, nil)
	assert.Equal(t, http.StatusOK, mineRes.Code)
	assert.Contains(t, mineRes.Body.String(), "Garden Party")

	guestRes := sendJSON(router, "POST", "/api/v1/events/"+event.ID+"/guests", hostToken, map[string]interface{}{
		"name":  "Alice",
		"email": "alice@example.com",
	})
	require.Equal(t, http.StatusCreated, guestRes.Code, guestRes.Body.String())
	assert.Contains(t, guestRes.Body.String(), `"invite_sent":true`)

	// Private events never surface in the public listing.
	publicRes := sendJSON(router, "GET", "/api/v1/events/public", hostToken, nil)
	assert.Equal(t, http.StatusOK, publicRes.Code)
	assert.NotContains(t, publicRes.Body.String(), "Garden Party")
}

func TestPublicListingNeedsNoToken(t *testing.T) {
	router := newTestRouter(t)
	hostToken := registerAndLogin(t, router, "host@test.com", "host", nil)

	createRes := sendJSON(router, "POST", "/api/v1/events", hostToken, map[string]interface{}{
		"name":     "Street Fair",
		"start_at": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, createRes.Code, createRes.Body.String())

	res := sendJSON(router, "GET", "/api/v1/events/public", "", nil)
	assert.Equal(t, http.StatusOK, res.Code, res.Body.String())
	assert.Contains(t, res.Body.String(), "Street Fair")
}

func TestGuestRoleCannotCreateEvents(t *testing.T) {
	router := newTestRouter(t)
	guestToken := registerAndLogin(t, router, "guest@test.com", "guest", nil)

	res := sendJSON(router, "POST", "/api/v1/events", guestToken, map[string]interface{}{
		"name":     "Not Allowed",
		"start_at": time.Now().Add(time.Hour).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusForbidden, res.Code)
}

func TestBookingFlowOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	hostToken := registerAndLogin(t, router, "host@test.com", "host", nil)
	providerToken := registerAndLogin(t, router, "caterer@test.com", "provider", map[string]interface{}{
		"business_name": "Fine Catering",
	})

	createRes := sendJSON(router, "POST", "/api/v1/events", hostToken, map[string]interface{}{
		"name":     "Wedding",
		"start_at": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, createRes.Code, createRes.Body.String())
	var event struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(createRes.Body.Bytes(), &event))

	profileRes := sendJSON(router, "GET", "/api/v1/provider/profile", providerToken, nil)
	require.Equal(t, http.StatusOK, profileRes.Code, profileRes.Body.String())
	var profile struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(profileRes.Body.Bytes(), &profile))

	// Any authenticated user can request a booking, not just the event's
	// creator.
	bookerToken := registerAndLogin(t, router, "planner@test.com", "guest", nil)
	bookRes := sendJSON(router, "POST", "/api/v1/bookings", bookerToken, map[string]interface{}{
		"event_id":    event.ID,
		"provider_id": profile.ID,
	})
	require.Equal(t, http.StatusCreated, bookRes.Code, bookRes.Body.String())
	var booking struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(bookRes.Body.Bytes(), &booking))
	assert.Equal(t, "pending", booking.Status)

	// A second active booking for the same pair conflicts, whoever asks.
	dupRes := sendJSON(router, "POST", "/api/v1/bookings", hostToken, map[string]interface{}{
		"event_id":    event.ID,
		"provider_id": profile.ID,
	})
	assert.Equal(t, http.StatusConflict, dupRes.Code)

	confirmRes := sendJSON(router, "PUT", "/api/v1/provider/bookings/"+booking.ID, providerToken, map[string]interface{}{
		"status": "confirmed",
	})
	require.Equal(t, http.StatusOK, confirmRes.Code, confirmRes.Body.String())

	// pending is not reachable from confirmed; the error names the
	// allowed moves.
	badRes := sendJSON(router, "PUT", "/api/v1/provider/bookings/"+booking.ID, providerToken, map[string]interface{}{
		"status": "pending",
	})
	assert.Equal(t, http.StatusBadRequest, badRes.Code)
	assert.Contains(t, badRes.Body.String(), "allowed_transitions")
	assert.Contains(t, badRes.Body.String(), "current_status")

	// The host cannot drive the state machine.
	hostPut := sendJSON(router, "PUT", "/api/v1/provider/bookings/"+booking.ID, hostToken, map[string]interface{}{
		"status": "cancelled",
	})
	assert.Equal(t, http.StatusForbidden, hostPut.Code)

	listRes := sendJSON(router, "GET", "/api/v1/provider/bookings?status=confirmed", providerToken, nil)
	require.Equal(t, http.StatusOK, listRes.Code)
	assert.Contains(t, listRes.Body.String(), booking.ID)

	mineRes := sendJSON(router, "GET", "/api/v1/bookings", bookerToken, nil)
	require.Equal(t, http.StatusOK, mineRes.Code)
	assert.Contains(t, mineRes.Body.String(), booking.ID)
}

func TestForgotPasswordAlwaysAnswers200(t *testing.T) {
	router := newTestRouter(t)
	registerAndLogin(t, router, "alice@test.com", "guest", nil)

	known := sendJSON(router, "POST", "/api/v1/auth/forgot-password", "", map[string]interface{}{
		"email": "alice@test.com",
	})
	unknown := sendJSON(router, "POST", "/api/v1/auth/forgot-password", "", map[string]interface{}{
		"email": "nobody@test.com",
	})

	assert.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, http.StatusOK, unknown.Code)
	assert.Equal(t, known.Body.String(), unknown.Body.String())
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	router := newTestRouter(t)

	res := sendJSON(router, "GET", "/api/v1/events/mine", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)

	res = sendJSON(router, "GET", "/api/v1/auth/me", "invalid-token", nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}
