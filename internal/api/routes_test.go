package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hostelhub/internal/api/controllers"
	"hostelhub/internal/infra"
	"hostelhub/internal/repositories"
	"hostelhub/internal/services"
	"hostelhub/internal/testutil"
	"hostelhub/pkg/logger"
	mem "hostelhub/pkg/memcache"
	"hostelhub/pkg/middleware"
	"hostelhub/pkg/utils"
)

type envelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	jwt    *utils.JWTManager
	clock  *utils.FixedClock
}

func newTestServer(t *testing.T) (*testServer, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewTestDB(t)
	cfg := testutil.Config()
	clock := utils.NewFixedClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	log := logger.NewNop()
	jwt := utils.NewJWTManager(cfg.Auth.JWTSecret, time.Hour)
	tx := infra.NewTxManager(db)

	hostelRepo := repositories.NewHostelRepository(db)
	planRepo := repositories.NewPlacementPlanRepository(db)
	historyRepo := repositories.NewPlacementHistoryRepository(db)
	subRepo := repositories.NewSubscriptionRepository(db)

	notifications := services.NewNotificationService(repositories.NewNotificationRepository(db), clock)
	placements := services.NewPlacementService(tx, repositories.NewPlacementRequestRepository(db), planRepo, hostelRepo, historyRepo, notifications, clock, log)
	plans := services.NewPlacementPlanService(planRepo, tx, cfg, log)
	hostels := services.NewHostelService(tx, hostelRepo, subRepo, cfg, log)
	subscriptions := services.NewSubscriptionService(tx, subRepo, hostelRepo, cfg, clock, log)
	analytics := services.NewAnalyticsService(tx, repositories.NewAnalyticsRepository(db), historyRepo, hostelRepo,
		mem.NewTTLKeys(clock.Now), cfg, clock, log)
	accounts := services.NewAccountService(repositories.NewAccountRepository(db), jwt, log)
	dashboard := services.NewDashboardService(repositories.NewDashboardRepository(db), clock)

	authorizer, err := middleware.NewAuthorizer(log)
	require.NoError(t, err)

	router := NewRouter(RouterDeps{
		Controllers: Controllers{
			Account:        controllers.NewAccountController(accounts),
			Placement:      controllers.NewPlacementController(placements, plans),
			AdminPlacement: controllers.NewAdminPlacementController(placements, plans, clock),
			Hostel:         controllers.NewHostelController(hostels, placements, analytics, log),
			Subscription:   controllers.NewSubscriptionController(subscriptions),
			Notification:   controllers.NewNotificationController(notifications),
			Dashboard:      controllers.NewDashboardController(dashboard, cfg.Placement.Currency, clock),
		},
		JWT:            jwt,
		Authorizer:     authorizer,
		Logger:         log,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	return &testServer{t: t, router: router, jwt: jwt, clock: clock}, db
}

func (s *testServer) token(id uuid.UUID, role string) string {
	tok, err := s.jwt.CreateToken(id, role)
	require.NoError(s.t, err)
	return tok
}

func (s *testServer) do(method, path, token string, body interface{}) (int, envelope) {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "203.0.113.7:5555"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestRouter_FeaturedPlacementFlow(t *testing.T) {
	srv, db := newTestServer(t)
	plan := testutil.CreatePlan(t, db, "1-week-premium", 7, 250000, true)
	admin := testutil.CreateAccount(t, db, utils.RoleAdmin)
	adminToken := srv.token(admin.ID, utils.RoleAdmin)

	code, _ := srv.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"display_name": "Hostel Owner", "email": "owner@example.com", "password": "secret123", "role": "owner",
	})
	require.Equal(t, http.StatusCreated, code)

	code, res := srv.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "owner@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, code)
	ownerToken := decode[struct {
		Token string `json:"token"`
	}](t, res.Data).Token
	require.NotEmpty(t, ownerToken)

	code, res = srv.do(http.MethodPost, "/api/owner/hostels", ownerToken, map[string]string{
		"name": "Lakeview Hostel", "city": "Lahore", "contact_phone": "+92-300-7654321",
	})
	require.Equal(t, http.StatusCreated, code)
	hostelID := decode[struct {
		ID string `json:"id"`
	}](t, res.Data).ID

	code, res = srv.do(http.MethodGet, "/api/plans", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]map[string]interface{}](t, res.Data), 1)

	submit := map[string]string{
		"hostel_id":      hostelID,
		"plan_id":        plan.ID.String(),
		"contact_name":   "Owner",
		"contact_phone":  "+92-300-7654321",
		"payment_method": "bank_transfer",
	}
	code, res = srv.do(http.MethodPost, "/api/owner/placements", ownerToken, submit)
	require.Equal(t, http.StatusCreated, code, res.Message)
	requestID := decode[struct {
		ID string `json:"id"`
	}](t, res.Data).ID

	code, _ = srv.do(http.MethodPost, "/api/owner/placements", ownerToken, submit)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = srv.do(http.MethodPost, "/api/admin/placements/"+requestID+"/review", ownerToken, map[string]string{"decision": "approve"})
	assert.Equal(t, http.StatusForbidden, code)

	code, res = srv.do(http.MethodPost, "/api/admin/placements/"+requestID+"/review", adminToken, map[string]string{"decision": "approve"})
	require.Equal(t, http.StatusOK, code, res.Message)

	code, _ = srv.do(http.MethodPost, "/api/admin/placements/"+requestID+"/review", adminToken, map[string]string{"decision": "reject"})
	assert.Equal(t, http.StatusConflict, code)

	code, res = srv.do(http.MethodGet, "/api/hostels/featured", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), decode[map[string]interface{}](t, res.Data)["total"])

	code, res = srv.do(http.MethodGet, "/api/hostels/"+hostelID+"/featured-status", "", nil)
	require.Equal(t, http.StatusOK, code)
	status := decode[map[string]interface{}](t, res.Data)
	assert.Equal(t, true, status["is_featured"])
	assert.Equal(t, true, status["cached_flag"])

	code, _ = srv.do(http.MethodGet, "/api/hostels/"+hostelID, "", nil)
	assert.Equal(t, http.StatusOK, code)
	code, res = srv.do(http.MethodPost, "/api/hostels/"+hostelID+"/contact", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "+92-300-7654321", decode[map[string]interface{}](t, res.Data)["contact_phone"])

	code, res = srv.do(http.MethodGet, "/api/me/notifications?unread=true", ownerToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), decode[map[string]interface{}](t, res.Data)["unread"])

	code, res = srv.do(http.MethodGet, "/api/admin/dashboard?last_days=7", adminToken, nil)
	require.Equal(t, http.StatusOK, code, res.Message)

	sweepAt := srv.clock.Now().AddDate(0, 0, 8).Format(time.RFC3339)
	code, res = srv.do(http.MethodPost, "/api/admin/placements/sweep", adminToken, map[string]string{"at": sweepAt})
	require.Equal(t, http.StatusOK, code, res.Message)
	assert.Equal(t, float64(1), decode[map[string]interface{}](t, res.Data)["transitions"])

	code, res = srv.do(http.MethodGet, "/api/owner/placements/"+requestID, ownerToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "expired", decode[map[string]interface{}](t, res.Data)["status"])
}

func TestRouter_AuthAndValidation(t *testing.T) {
	srv, db := newTestServer(t)
	owner := testutil.CreateAccount(t, db, utils.RoleOwner)
	ownerToken := srv.token(owner.ID, utils.RoleOwner)

	code, _ := srv.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = srv.do(http.MethodGet, "/api/owner/hostels", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = srv.do(http.MethodGet, "/api/admin/placements", ownerToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = srv.do(http.MethodGet, "/api/hostels/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = srv.do(http.MethodGet, "/api/hostels/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = srv.do(http.MethodPost, "/api/owner/placements", ownerToken, map[string]string{"hostel_id": "x"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = srv.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "nobody@example.com", "password": "whatever"})
	assert.Equal(t, http.StatusUnauthorized, code)
}
