package services

import (
	"context"
	"errors"
	"strings"

	"go-url-shortener/auth"
	"go-url-shortener/storage"
	"go-url-shortener/types"
	"go.uber.org/zap"
)

// TokenIssuer signs access tokens for an identity.
type TokenIssuer interface {
	Issue(identity types.Identity) (string, error)
}

// PasswordHasher hashes and checks credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// AuthService registers accounts and exchanges credentials for tokens.
type AuthService interface {
	Register(ctx context.Context, email, password string) (types.UserResponse, error)
	// Login returns the access token already prefixed with "Bearer ".
	Login(ctx context.Context, email, password string) (types.LoginResponse, error)
}

type authService struct {
	users  storage.UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	logger *zap.Logger
}

func NewAuthService(users storage.UserRepository, hasher PasswordHasher, tokens TokenIssuer, logger *zap.Logger) AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &authService{users: users, hasher: hasher, tokens: tokens, logger: logger}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, email, password string) (types.UserResponse, error) {
	email = normalizeEmail(email)

	_, err := s.users.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		return types.UserResponse{}, ErrEmailInUse
	case !errors.Is(err, storage.ErrUserNotFound):
		return types.UserResponse{}, internalError("find user", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return types.UserResponse{}, internalError("hash password", err)
	}

	user := &types.User{Email: email, PasswordHash: hash}
	if err := s.users.CreateUser(ctx, user); err != nil {
		// a concurrent registration won the unique index
		if errors.Is(err, storage.ErrEmailExists) {
			return types.UserResponse{}, ErrEmailInUse
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return types.UserResponse{}, internalError("create user", err)
	}

	s.logger.Info("User registered", zap.String("userID", user.ID))
	return types.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (types.LoginResponse, error) {
	user, err := s.users.FindUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, storage.ErrUserNotFound) {
		return types.LoginResponse{}, ErrUnauthorized
	}
	if err != nil {
		return types.LoginResponse{}, internalError("find user", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return types.LoginResponse{}, ErrUnauthorized
		}
		return types.LoginResponse{}, internalError("compare password", err)
	}

	token, err := s.tokens.Issue(types.Identity{ID: user.ID, Email: user.Email})
	if err != nil {
		return types.LoginResponse{}, internalError("issue token", err)
	}
	return types.LoginResponse{AccessToken: auth.FormatBearer(token)}, nil
}
