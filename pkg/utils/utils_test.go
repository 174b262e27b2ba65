package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	page, size, err := ParsePagination("", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultPageSize, size)

	page, size, err = ParsePagination("3", "50")
	require.NoError(t, err)
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, size)

	_, _, err = ParsePagination("0", "")
	assert.ErrorIs(t, err, ErrInvalidPage)
	_, _, err = ParsePagination("1", "101")
	assert.ErrorIs(t, err, ErrInvalidPageSize)
	_, _, err = ParsePagination("x", "")
	assert.ErrorIs(t, err, ErrInvalidPage)
}

func TestValidateStruct(t *testing.T) {
	type req struct {
		Email string `json:"email" binding:"required,email"`
		Days  int    `json:"days" binding:"gt=0"`
	}

	assert.NoError(t, ValidateStruct(req{Email: "a@b.co", Days: 1}))

	err := ValidateStruct(req{Email: "nope", Days: 1})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "email", ve.Field)
	assert.Equal(t, "must be a valid email address", ve.Message)

	err = ValidateStruct(req{Email: "a@b.co"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "days", ve.Field)
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "hello", SanitizeText("  <script>alert(1)</script>hello "))
	assert.Equal(t, "Paid via JazzCash", SanitizeText("<b>Paid</b> via JazzCash"))
}

func TestDateOf(t *testing.T) {
	require.NoError(t, SetBusinessLocation("Asia/Karachi"))

	// 20:30 UTC is already the next calendar day in Karachi (+05:00).
	at := time.Date(2025, 6, 1, 20, 30, 0, 0, time.UTC)
	day := DateOf(at)
	assert.Equal(t, 2, day.Day())
	assert.Equal(t, 0, day.Hour())
	assert.True(t, day.Equal(time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC)))
}

func TestWholeDaysBetween(t *testing.T) {
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, WholeDaysBetween(from, from.Add(36*time.Hour)))
	assert.Equal(t, 0, WholeDaysBetween(from, from.Add(time.Hour)))
	assert.Equal(t, -1, WholeDaysBetween(from, from.Add(-time.Hour)))
	assert.Equal(t, -2, WholeDaysBetween(from, from.Add(-48*time.Hour)))
}

func TestFixedClock(t *testing.T) {
	c := NewFixedClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.FixedZone("X", 3600)))
	assert.Equal(t, time.UTC, c.Now().Location())
	c.Advance(time.Hour)
	assert.Equal(t, 0, c.Now().Hour())
}

func TestHandleServiceError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err  error
		code int
	}{
		{NewValidationError("plan_id", "plan is not active"), http.StatusBadRequest},
		{NotFound("hostel", "h1"), http.StatusNotFound},
		{fmt.Errorf("submit: %w", ErrDuplicateRequest), http.StatusConflict},
		{ErrAlreadyReviewed, http.StatusConflict},
		{ErrPlanInUse, http.StatusConflict},
		{ErrSubscriptionExists, http.StatusConflict},
		{ErrNotHostelOwner, http.StatusForbidden},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{DBError("lock hostel", errors.New("conn reset")), http.StatusInternalServerError},
		{errors.New("surprise"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		HandleServiceError(c, tc.err)

		assert.Equal(t, tc.code, w.Code, tc.err.Error())
		var body APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "error", body.Status)
	}
}

func TestDBError_KeepsCause(t *testing.T) {
	err := DBError("create placement request", errors.New("deadlock detected"))
	assert.ErrorIs(t, err, ErrDatabaseError)
	assert.Contains(t, err.Error(), "deadlock detected")
	assert.Contains(t, err.Error(), "create placement request")
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("k", time.Minute)
	other := NewJWTManager("other", time.Minute)

	tok, err := m.CreateToken(uuid.New(), RoleOwner)
	require.NoError(t, err)

	claims, err := m.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, RoleOwner, claims.Role)

	_, err = other.ValidateToken(tok)
	assert.Error(t, err)
}
