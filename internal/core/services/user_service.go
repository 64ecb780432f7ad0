package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/taskvault/api/internal/core/domain"
	"github.com/taskvault/api/internal/core/ports"
)

const minPasswordLength = 6

type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	codec  ports.TokenCodec

	// dummyDigest is compared against when an email lookup misses, so a
	// failed login costs one bcrypt comparison whether or not the account
	// exists.
	dummyDigest string
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, codec ports.TokenCodec) (*UserService, error) {
	dummy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy digest: %w", err)
	}

	return &UserService{
		repo:        repo,
		hasher:      hasher,
		codec:       codec,
		dummyDigest: dummy,
	}, nil
}

func (s *UserService) Register(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = normalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return nil, "", err
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: digest,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		// Burn the same hashing work as the found-user path.
		s.hasher.Verify(password, s.dummyDigest)
		return nil, "", domain.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *UserService) FindByToken(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.codec.Verify(token)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	if claims.Purpose != domain.TokenPurposeAuth {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.repo.GetByToken(ctx, claims.UserID, token, domain.TokenPurposeAuth)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Revoked and never-issued tokens fail identically.
		return nil, domain.ErrInvalidToken
	}
	return user, nil
}

func (s *UserService) RevokeToken(ctx context.Context, userID uuid.UUID, token string) error {
	return s.repo.RemoveToken(ctx, userID, token)
}

func (s *UserService) RevokeAllTokens(ctx context.Context, userID uuid.UUID) error {
	return s.repo.RemoveAllTokens(ctx, userID)
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) issueToken(ctx context.Context, user *domain.User) (string, error) {
	token, err := s.codec.Issue(user.ID, domain.TokenPurposeAuth)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	entry := &domain.UserToken{
		UserID:  user.ID,
		Purpose: domain.TokenPurposeAuth,
		Token:   token,
	}
	if err := s.repo.AppendToken(ctx, entry); err != nil {
		return "", err
	}
	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateCredentials(email, password string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: malformed email", domain.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}
	return nil
}
