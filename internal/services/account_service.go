package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"tripwise/internal/models/db_models"
	"tripwise/internal/models/request_models"
	"tripwise/internal/models/response_models"
	"tripwise/internal/repositories"
	"tripwise/pkg/utils"
)

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error)
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) (*response_models.AccountResponse, error)
	GetAccount(ctx context.Context, accountID string) (*response_models.AccountResponse, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	tokens      *utils.TokenManager
	logger      *zap.Logger
}

func NewAccountService(accountRepo repositories.AccountRepository, tokens *utils.TokenManager, logger *zap.Logger) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		tokens:      tokens,
		logger:      logger,
	}
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error) {
	account, err := a.accountRepo.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		a.logger.Error("Finding account failed", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := a.tokens.CreateToken(account.ID)
	if err != nil {
		a.logger.Error("Signing token failed", zap.Error(err))
		return nil, err
	}

	return &response_models.AccountLoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(a.tokens.TTL()).Unix(),
	}, nil
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) (*response_models.AccountResponse, error) {
	email := normalizeEmail(request.Email)
	existingAccount, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		a.logger.Error("Finding account failed", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if existingAccount != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, err
	}

	newAccount := &db_models.Account{
		Name:         request.DisplayName,
		Email:        email,
		PasswordHash: hashedPassword,
	}
	if err := a.accountRepo.Insert(ctx, newAccount); err != nil {
		a.logger.Error("Creating account failed", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	return &response_models.AccountResponse{
		ID:    newAccount.ID.String(),
		Name:  newAccount.Name,
		Email: newAccount.Email,
	}, nil
}

func (a *AccountService) GetAccount(ctx context.Context, accountID string) (*response_models.AccountResponse, error) {
	if _, err := parseAccountID(accountID); err != nil {
		return nil, err
	}
	account, err := a.accountRepo.FindById(ctx, accountID)
	if err != nil {
		a.logger.Error("Finding account failed", zap.String("account_id", accountID), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		// token outlived its account
		return nil, utils.ErrUnauthenticated
	}

	return &response_models.AccountResponse{
		ID:    account.ID.String(),
		Name:  account.Name,
		Email: account.Email,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
