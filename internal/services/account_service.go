package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"hostelhub/internal/models/db_models"
	"hostelhub/internal/models/request_models"
	"hostelhub/internal/models/response_models"
	"hostelhub/internal/repositories"
	"hostelhub/pkg/logger"
	"hostelhub/pkg/utils"
)

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (response_models.AccountLoginResponse, error)
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) (response_models.AccountResponse, error)
	// EnsureAccount creates an account with the given role unless the email is taken. Used by seeding.
	EnsureAccount(ctx context.Context, name, email, password, role string) (uuid.UUID, bool, error)
	GetAccount(ctx context.Context, id uuid.UUID) (response_models.AccountResponse, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	jwt         *utils.JWTManager
	log         logger.Interface
}

func NewAccountService(accountRepo repositories.AccountRepository, jwt *utils.JWTManager, log logger.Interface) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		jwt:         jwt,
		log:         log.Named("account"),
	}
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (response_models.AccountLoginResponse, error) {
	startTime := time.Now()

	account, err := a.accountRepo.FindByEmail(ctx, strings.ToLower(request.Email))
	if err != nil {
		return response_models.AccountLoginResponse{}, utils.DBError("find account", err)
	}
	if account == nil {
		return response_models.AccountLoginResponse{}, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return response_models.AccountLoginResponse{}, utils.ErrInvalidCredentials
	}

	token, err := a.jwt.CreateToken(account.ID, account.Role)
	if err != nil {
		return response_models.AccountLoginResponse{}, err
	}

	a.log.Debugw("login succeeded", "account_id", account.ID, "took", time.Since(startTime))
	return response_models.AccountLoginResponse{Token: token, Role: account.Role}, nil
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) (response_models.AccountResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return response_models.AccountResponse{}, err
	}

	role := request.Role
	if role == "" {
		role = utils.RoleStudent
	}

	account, err := a.insert(ctx, request.DisplayName, request.Email, request.Password, request.Phone, role)
	if err != nil {
		return response_models.AccountResponse{}, err
	}
	return toAccountResponse(account), nil
}

func (a *AccountService) EnsureAccount(ctx context.Context, name, email, password, role string) (uuid.UUID, bool, error) {
	existing, err := a.accountRepo.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return uuid.Nil, false, utils.DBError("find account", err)
	}
	if existing != nil {
		return existing.ID, false, nil
	}

	account, err := a.insert(ctx, name, email, password, "", role)
	if err != nil {
		return uuid.Nil, false, err
	}
	return account.ID, true, nil
}

func (a *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (response_models.AccountResponse, error) {
	account, err := a.accountRepo.FindById(ctx, id.String())
	if err != nil {
		return response_models.AccountResponse{}, utils.DBError("find account", err)
	}
	if account == nil {
		return response_models.AccountResponse{}, utils.ErrAccountNotFound
	}
	return toAccountResponse(account), nil
}

func (a *AccountService) insert(ctx context.Context, name, email, password, phone, role string) (*db_models.Account, error) {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	account := &db_models.Account{
		Name:         utils.SanitizeText(name),
		Email:        strings.ToLower(email),
		PasswordHash: hashedPassword,
		Phone:        utils.SanitizeText(phone),
		Role:         role,
	}

	if err := a.accountRepo.Insert(ctx, account); err != nil {
		return nil, storageErr("insert account", err)
	}

	a.log.Infow("account created", "account_id", account.ID, "role", role)
	return account, nil
}

func toAccountResponse(a *db_models.Account) response_models.AccountResponse {
	return response_models.AccountResponse{
		ID:    a.ID,
		Name:  a.Name,
		Email: a.Email,
		Phone: a.Phone,
		Role:  a.Role,
	}
}
