package user

import (
	"context"
	"time"

	dom "example.com/property-listing/app/internal/domain/user"
)

type PasswordService interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

type Service struct {
	repo      dom.Repository
	passwords PasswordService
	now       func() time.Time
}

func NewService(repo dom.Repository, passwords PasswordService) *Service {
	return &Service{
		repo:      repo,
		passwords: passwords,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

type ChangePasswordInput struct {
	UserID          int64
	CurrentPassword string
	NewPassword     string
}

func (s *Service) GetUser(ctx context.Context, id int64) (*dom.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ChangePassword(ctx context.Context, in ChangePasswordInput) error {
	u, err := s.repo.GetByID(ctx, in.UserID)
	if err != nil {
		return err
	}
	if err := s.passwords.Compare(u.PasswordHash, in.CurrentPassword); err != nil {
		return dom.ErrWrongPassword
	}
	if in.CurrentPassword == in.NewPassword {
		return dom.ErrPasswordUnchanged
	}

	hash, err := s.passwords.Hash(in.NewPassword)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.UpdatedAt = s.now()

	_, err = s.repo.Update(ctx, u)
	return err
}

// DeleteAccount removes the user after re-checking the password. Profile, properties
// and messages go with it through foreign-key cascades.
func (s *Service) DeleteAccount(ctx context.Context, id int64, password string) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.passwords.Compare(u.PasswordHash, password); err != nil {
		return dom.ErrWrongPassword
	}
	return s.repo.Delete(ctx, id)
}
