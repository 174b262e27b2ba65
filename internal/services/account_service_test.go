package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostelhub/internal/models/request_models"
	"hostelhub/internal/repositories"
	"hostelhub/internal/testutil"
	"hostelhub/pkg/logger"
	"hostelhub/pkg/utils"
)

func TestAccountService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	jwt := utils.NewJWTManager("secret", time.Hour)
	svc := NewAccountService(repositories.NewAccountRepository(db), jwt, logger.NewNop())

	created, err := svc.CreateAccount(ctx, request_models.SignUpRequest{
		DisplayName: "Sana Khan", Email: "Sana@Example.com", Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, "sana@example.com", created.Email)
	assert.Equal(t, utils.RoleStudent, created.Role)

	_, err = svc.CreateAccount(ctx, request_models.SignUpRequest{
		DisplayName: "Sana Again", Email: "sana@example.com", Password: "hunter22",
	})
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)

	_, err = svc.CreateAccount(ctx, request_models.SignUpRequest{
		DisplayName: "Sneaky", Email: "root@example.com", Password: "hunter22", Role: utils.RoleAdmin,
	})
	assert.True(t, utils.IsValidationError(err))

	login, err := svc.Login(ctx, request_models.LoginRequest{Email: "SANA@example.com", Password: "hunter22"})
	require.NoError(t, err)
	claims, err := jwt.ValidateToken(login.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID.String(), claims.UserID)
	assert.Equal(t, utils.RoleStudent, claims.Role)

	_, err = svc.Login(ctx, request_models.LoginRequest{Email: "sana@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	_, err = svc.Login(ctx, request_models.LoginRequest{Email: "nobody@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	got, err := svc.GetAccount(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sana Khan", got.Name)
}

func TestSeedService_Idempotent(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	accounts := NewAccountService(repositories.NewAccountRepository(h.db), utils.NewJWTManager("s", time.Hour), logger.NewNop())
	seeder := NewSeedService(h.planRepo, accounts, h.hostels, h.cfg, logger.NewNop())

	first, err := seeder.Run(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultPlans), first.PlansCreated)
	assert.True(t, first.AdminCreated)
	assert.True(t, first.DemoCreated)

	second, err := seeder.Run(ctx, true)
	require.NoError(t, err)
	assert.Zero(t, second.PlansCreated)
	assert.False(t, second.AdminCreated)
	assert.False(t, second.DemoCreated)

	plans, err := h.plans.ListPlans(ctx, true)
	require.NoError(t, err)
	require.Len(t, plans, 3)
	assert.Equal(t, "1-day-boost", plans[0].Code)
	assert.Equal(t, "PKR", plans[0].Currency)
}
