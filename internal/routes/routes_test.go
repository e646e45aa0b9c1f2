package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/wiissal/take-a-chef/internal/audit"
	"github.com/wiissal/take-a-chef/internal/config"
	"github.com/wiissal/take-a-chef/internal/db/dbtest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Code    string          `json:"error_code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type apiClient struct {
	t     *testing.T
	r     *gin.Engine
	audit *audit.Dispatcher
}

func (a apiClient) do(method, path, token string, body any) (int, envelope) {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func (a apiClient) register(name, role string, extra map[string]any) string {
	a.t.Helper()

	body := map[string]any{
		"email":    fmt.Sprintf("%s@example.com", name),
		"password": "secret123",
		"name":     name,
		"role":     role,
	}
	for k, v := range extra {
		body[k] = v
	}

	status, env := a.do(http.MethodPost, "/api/auth/register", "", body)
	require.Equal(a.t, http.StatusCreated, status, env.Message)

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &out))
	require.NotEmpty(a.t, out.Token)
	return out.Token
}

func (a apiClient) profileID(token string) uint {
	a.t.Helper()

	status, env := a.do(http.MethodGet, "/api/me", token, nil)
	require.Equal(a.t, http.StatusOK, status)

	var out struct {
		Profile struct {
			ID uint `json:"id"`
		} `json:"profile"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &out))
	require.NotZero(a.t, out.Profile.ID)
	return out.Profile.ID
}

func newTestRouter(t *testing.T, withAudit bool) apiClient {
	t.Helper()

	gdb := dbtest.New(t)

	var dispatcher *audit.Dispatcher
	if withAudit {
		dispatcher = audit.NewDispatcher(audit.New(gdb), zerolog.Nop())
	}

	cfg := &config.Config{
		AppEnv:            "test",
		JWTSecret:         "test-secret",
		JWTTTL:            time.Hour,
		Timezone:          "UTC",
		ChefCacheTTL:      time.Minute,
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
		TxMaxRetries:      3,
	}

	r := gin.New()
	RegisterRoutes(r, Deps{
		DB:         gdb,
		Config:     cfg,
		Audit:      dispatcher,
		Log:        zerolog.Nop(),
		BcryptCost: bcrypt.MinCost,
	})
	return apiClient{t: t, r: r, audit: dispatcher}
}

func futureDate() string {
	return time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
}

func TestBookingToReviewFlow(t *testing.T) {
	api := newTestRouter(t, false)

	customer := api.register("alice", "customer", map[string]any{"phone": "555-0100"})
	chef := api.register("gordon", "chef", map[string]any{"specialty": "French"})
	chefID := api.profileID(chef)

	// book
	status, env := api.do(http.MethodPost, "/api/bookings", customer, map[string]any{
		"chefId":     chefID,
		"date":       futureDate(),
		"time":       "19:30",
		"guestCount": 4,
		"totalPrice": 240.0,
	})
	require.Equal(t, http.StatusCreated, status, env.Message)

	var created struct {
		Booking struct {
			ID     uint   `json:"id"`
			Status string `json:"status"`
			Guests int    `json:"guests"`
		} `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "pending", created.Booking.Status)
	assert.Equal(t, 4, created.Booking.Guests)

	bookingPath := fmt.Sprintf("/api/bookings/%d", created.Booking.ID)

	// reviewing before completion is refused
	status, env = api.do(http.MethodPost, "/api/reviews", customer, map[string]any{
		"bookingId": created.Booking.ID,
		"rating":    5,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "booking_not_completed", env.Code)

	// the customer cannot drive the status
	status, _ = api.do(http.MethodPut, bookingPath+"/status", customer, map[string]any{"status": "completed"})
	assert.Equal(t, http.StatusForbidden, status)

	// chef completes
	status, env = api.do(http.MethodPut, bookingPath+"/status", chef, map[string]any{"status": "completed"})
	require.Equal(t, http.StatusOK, status, env.Message)

	// completed bookings cannot be cancelled
	status, env = api.do(http.MethodDelete, bookingPath, customer, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "booking_completed", env.Code)

	// review
	status, env = api.do(http.MethodPost, "/api/reviews", customer, map[string]any{
		"bookingId": created.Booking.ID,
		"rating":    5,
		"comment":   "Superb",
	})
	require.Equal(t, http.StatusCreated, status, env.Message)

	// duplicate
	status, env = api.do(http.MethodPost, "/api/reviews", customer, map[string]any{
		"bookingId": created.Booking.ID,
		"rating":    1,
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "review_exists", env.Code)

	// chef card reflects the review
	status, env = api.do(http.MethodGet, fmt.Sprintf("/api/chefs/%d", chefID), "", nil)
	require.Equal(t, http.StatusOK, status)

	var card struct {
		Chef struct {
			Rating       float64 `json:"rating"`
			TotalReviews int     `json:"total_reviews"`
		} `json:"chef"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &card))
	assert.Equal(t, 5.0, card.Chef.Rating)
	assert.Equal(t, 1, card.Chef.TotalReviews)

	// public review listing
	status, env = api.do(http.MethodGet, fmt.Sprintf("/api/chefs/%d/reviews", chefID), "", nil)
	require.Equal(t, http.StatusOK, status)

	var reviews struct {
		Reviews []struct {
			Rating  int    `json:"rating"`
			Comment string `json:"comment"`
		} `json:"reviews"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &reviews))
	require.Len(t, reviews.Reviews, 1)
	assert.Equal(t, "Superb", reviews.Reviews[0].Comment)
}

func TestBookingAccessRules(t *testing.T) {
	api := newTestRouter(t, false)

	customer := api.register("bob", "customer", nil)
	chef := api.register("marco", "chef", nil)
	otherChef := api.register("nigella", "chef", nil)
	chefID := api.profileID(chef)

	t.Run("no token", func(t *testing.T) {
		status, env := api.do(http.MethodGet, "/api/bookings", "", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.False(t, env.Success)
	})

	t.Run("past date", func(t *testing.T) {
		status, env := api.do(http.MethodPost, "/api/bookings", customer, map[string]any{
			"chefId": chefID,
			"date":   "2020-01-01",
			"time":   "12:00",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "booking_in_past", env.Code)
	})

	t.Run("chefs cannot book", func(t *testing.T) {
		status, _ := api.do(http.MethodPost, "/api/bookings", otherChef, map[string]any{
			"chefId": chefID,
			"date":   futureDate(),
			"time":   "12:00",
		})
		assert.Equal(t, http.StatusForbidden, status)
	})

	status, env := api.do(http.MethodPost, "/api/bookings", customer, map[string]any{
		"chefId": chefID,
		"date":   futureDate(),
		"time":   "12:00",
	})
	require.Equal(t, http.StatusCreated, status, env.Message)

	var created struct {
		Booking struct {
			ID uint `json:"id"`
		} `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	bookingPath := fmt.Sprintf("/api/bookings/%d", created.Booking.ID)

	t.Run("foreign chef", func(t *testing.T) {
		status, _ := api.do(http.MethodGet, bookingPath, otherChef, nil)
		assert.Equal(t, http.StatusForbidden, status)

		status, _ = api.do(http.MethodPut, bookingPath+"/status", otherChef, map[string]any{"status": "confirmed"})
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("listing is scoped", func(t *testing.T) {
		status, env := api.do(http.MethodGet, "/api/bookings", otherChef, nil)
		require.Equal(t, http.StatusOK, status)

		var list struct {
			Bookings []struct{} `json:"bookings"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &list))
		assert.Empty(t, list.Bookings)

		status, env = api.do(http.MethodGet, "/api/bookings?status=pending", chef, nil)
		require.Equal(t, http.StatusOK, status)
		require.NoError(t, json.Unmarshal(env.Data, &list))
		assert.Len(t, list.Bookings, 1)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		status, env := api.do(http.MethodGet, "/api/bookings?status=done", customer, nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "invalid_status", env.Code)
	})

	t.Run("customer cancels", func(t *testing.T) {
		status, env := api.do(http.MethodDelete, bookingPath, customer, nil)
		require.Equal(t, http.StatusOK, status, env.Message)

		status, env = api.do(http.MethodDelete, bookingPath, customer, nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "booking_already_cancelled", env.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		status, env := api.do(http.MethodGet, "/api/bookings/abc", customer, nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "invalid_id", env.Code)
	})
}

func TestActivityFeed(t *testing.T) {
	api := newTestRouter(t, true)

	customer := api.register("carla", "customer", nil)
	chefID := api.profileID(api.register("jamie", "chef", nil))

	status, _ := api.do(http.MethodPost, "/api/bookings", customer, map[string]any{
		"chefId": chefID,
		"date":   futureDate(),
		"time":   "20:00",
	})
	require.Equal(t, http.StatusCreated, status)

	api.audit.Close()

	status, env := api.do(http.MethodGet, "/api/me/activity?action=booking_created", customer, nil)
	require.Equal(t, http.StatusOK, status)

	var out struct {
		Logs []struct {
			Action string `json:"action"`
		} `json:"logs"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.Len(t, out.Logs, 1)
	assert.Equal(t, audit.ActionBookingCreated, out.Logs[0].Action)
}

func TestHealthAndMetrics(t *testing.T) {
	api := newTestRouter(t, false)

	status, _ := api.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)

	w := httptest.NewRecorder()
	api.r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogin(t *testing.T) {
	api := newTestRouter(t, false)
	api.register("dana", "customer", nil)

	status, env := api.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "dana@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, status, env.Message)

	status, env = api.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "dana@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "invalid_credentials", env.Code)

	status, env = api.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    "dana@example.com",
		"password": "secret123",
		"name":     "Dana",
		"role":     "customer",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "email_taken", env.Code)
}
