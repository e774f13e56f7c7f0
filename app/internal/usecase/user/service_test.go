package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	domuser "example.com/property-listing/app/internal/domain/user"
)

type mockUserRepository struct {
	userByID  *domuser.User
	updated   *domuser.User
	deletedID int64
	getErr    error
	updateErr error
}

func (m *mockUserRepository) Create(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	u.ID = 100
	return u, nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*domuser.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.userByID != nil && m.userByID.ID == id {
		cloned := *m.userByID
		return &cloned, nil
	}
	return nil, domuser.ErrUserNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domuser.User, error) {
	return nil, domuser.ErrUserNotFound
}

func (m *mockUserRepository) Update(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	m.updated = u
	return u, nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id int64) error {
	if m.userByID == nil || m.userByID.ID != id {
		return domuser.ErrUserNotFound
	}
	m.deletedID = id
	return nil
}

// fakePasswordService treats "hash:<pw>" as the hash of <pw>.
type fakePasswordService struct {
	hashErr error
}

func (f fakePasswordService) Hash(password string) (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}
	return "hash:" + password, nil
}

func (f fakePasswordService) Compare(hash, password string) error {
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func newUser() *domuser.User {
	return &domuser.User{ID: 1, Name: "Jane", Email: "jane@example.com", PasswordHash: "hash:old-secret"}
}

func TestGetUser_Success(t *testing.T) {
	svc := NewService(&mockUserRepository{userByID: newUser()}, fakePasswordService{})

	u, err := svc.GetUser(context.Background(), 1)

	require.NoError(t, err)
	require.Equal(t, "jane@example.com", u.Email)
}

func TestGetUser_NotFound_ReturnsError(t *testing.T) {
	svc := NewService(&mockUserRepository{}, fakePasswordService{})

	_, err := svc.GetUser(context.Background(), 9)
	require.ErrorIs(t, err, domuser.ErrUserNotFound)
}

func TestChangePassword_Success(t *testing.T) {
	repo := &mockUserRepository{userByID: newUser()}
	svc := NewService(repo, fakePasswordService{})

	err := svc.ChangePassword(context.Background(), ChangePasswordInput{
		UserID:          1,
		CurrentPassword: "old-secret",
		NewPassword:     "new-secret",
	})

	require.NoError(t, err)
	require.NotNil(t, repo.updated)
	require.Equal(t, "hash:new-secret", repo.updated.PasswordHash)
	require.False(t, repo.updated.UpdatedAt.IsZero())
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	repo := &mockUserRepository{userByID: newUser()}
	svc := NewService(repo, fakePasswordService{})

	err := svc.ChangePassword(context.Background(), ChangePasswordInput{
		UserID:          1,
		CurrentPassword: "guess",
		NewPassword:     "new-secret",
	})

	require.ErrorIs(t, err, domuser.ErrWrongPassword)
	require.Nil(t, repo.updated)
}

func TestChangePassword_SamePassword(t *testing.T) {
	svc := NewService(&mockUserRepository{userByID: newUser()}, fakePasswordService{})

	err := svc.ChangePassword(context.Background(), ChangePasswordInput{
		UserID:          1,
		CurrentPassword: "old-secret",
		NewPassword:     "old-secret",
	})

	require.ErrorIs(t, err, domuser.ErrPasswordUnchanged)
}

func TestChangePassword_HasherError_ReturnsError(t *testing.T) {
	svc := NewService(&mockUserRepository{userByID: newUser()}, fakePasswordService{hashErr: errors.New("bcrypt failed")})

	err := svc.ChangePassword(context.Background(), ChangePasswordInput{
		UserID:          1,
		CurrentPassword: "old-secret",
		NewPassword:     "new-secret",
	})

	require.EqualError(t, err, "bcrypt failed")
}

func TestChangePassword_RepositoryUpdateError_PropagatesError(t *testing.T) {
	repo := &mockUserRepository{userByID: newUser(), updateErr: errors.New("db error")}
	svc := NewService(repo, fakePasswordService{})

	err := svc.ChangePassword(context.Background(), ChangePasswordInput{
		UserID:          1,
		CurrentPassword: "old-secret",
		NewPassword:     "new-secret",
	})

	require.EqualError(t, err, "db error")
}

func TestDeleteAccount_Success(t *testing.T) {
	repo := &mockUserRepository{userByID: newUser()}
	svc := NewService(repo, fakePasswordService{})

	require.NoError(t, svc.DeleteAccount(context.Background(), 1, "old-secret"))
	require.Equal(t, int64(1), repo.deletedID)
}

func TestDeleteAccount_WrongPassword(t *testing.T) {
	repo := &mockUserRepository{userByID: newUser()}
	svc := NewService(repo, fakePasswordService{})

	err := svc.DeleteAccount(context.Background(), 1, "nope")

	require.ErrorIs(t, err, domuser.ErrWrongPassword)
	require.Zero(t, repo.deletedID)
}

func TestDeleteAccount_NotFound(t *testing.T) {
	svc := NewService(&mockUserRepository{}, fakePasswordService{})

	err := svc.DeleteAccount(context.Background(), 5, "x")
	require.ErrorIs(t, err, domuser.ErrUserNotFound)
}
