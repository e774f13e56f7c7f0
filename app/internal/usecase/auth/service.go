package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	domuser "example.com/property-listing/app/internal/domain/user"
)

type PasswordService interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

type Claims struct {
	UserID    int64
	Email     string
	Name      string
	TokenID   string
	ExpiresAt time.Time
}

type TokenService interface {
	GenerateToken(u *domuser.User) (string, error)
	ParseToken(token string) (*Claims, error)
}

// TokenRevoker remembers logged-out tokens until they expire.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type Service struct {
	userRepo  domuser.Repository
	passwords PasswordService
	tokens    TokenService
	revoker   TokenRevoker
	now       func() time.Time
}

func NewService(
	userRepo domuser.Repository,
	passwords PasswordService,
	tokens TokenService,
	revoker TokenRevoker,
) *Service {
	return &Service{
		userRepo:  userRepo,
		passwords: passwords,
		tokens:    tokens,
		revoker:   revoker,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

type LoginInput struct {
	Email    string
	Password string
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type Result struct {
	Token string
	User  *domuser.User
}

func NormalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func (s *Service) Login(ctx context.Context, in LoginInput) (*Result, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domuser.ErrInvalidCredential
	}

	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domuser.ErrUserNotFound) {
			return nil, domuser.ErrUnauthorized
		}
		return nil, err
	}

	if err := s.passwords.Compare(u.PasswordHash, in.Password); err != nil {
		return nil, domuser.ErrUnauthorized
	}

	return s.issue(u)
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*Result, error) {
	email := NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || name == "" || in.Password == "" {
		return nil, domuser.ErrInvalidCredential
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	u, err := s.userRepo.Create(ctx, &domuser.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	return s.issue(u)
}

// Logout revokes the token identified by claims until it would have expired anyway.
func (s *Service) Logout(ctx context.Context, claims *Claims) error {
	if claims == nil || claims.TokenID == "" {
		return domuser.ErrUnauthorized
	}
	if !claims.ExpiresAt.After(s.now()) {
		return nil
	}
	return s.revoker.Revoke(ctx, claims.TokenID, claims.ExpiresAt)
}

// Authenticate parses token and rejects revoked ones.
func (s *Service) Authenticate(ctx context.Context, token string) (*Claims, error) {
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, domuser.ErrUnauthorized
	}
	if claims.TokenID != "" {
		revoked, err := s.revoker.IsRevoked(ctx, claims.TokenID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, domuser.ErrUnauthorized
		}
	}
	return claims, nil
}

func (s *Service) issue(u *domuser.User) (*Result, error) {
	token, err := s.tokens.GenerateToken(u)
	if err != nil {
		return nil, err
	}
	return &Result{Token: token, User: u}, nil
}
