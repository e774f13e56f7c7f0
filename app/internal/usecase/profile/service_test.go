package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	domprofile "example.com/property-listing/app/internal/domain/profile"
)

type mockProfileRepository struct {
	profiles map[int64]*domprofile.Profile
	getErr   error
	saveErr  error
	saves    int
}

func newMockProfileRepository() *mockProfileRepository {
	return &mockProfileRepository{profiles: make(map[int64]*domprofile.Profile)}
}

func (m *mockProfileRepository) GetByUserID(ctx context.Context, userID int64) (*domprofile.Profile, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	p, ok := m.profiles[userID]
	if !ok {
		return nil, domprofile.ErrProfileNotFound
	}
	cloned := *p
	return &cloned, nil
}

func (m *mockProfileRepository) Save(ctx context.Context, p *domprofile.Profile) (*domprofile.Profile, error) {
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	m.saves++
	cloned := *p
	m.profiles[p.UserID] = &cloned
	return p, nil
}

func TestGet_ReturnsEmptyProfileWhenMissing(t *testing.T) {
	svc := NewService(newMockProfileRepository())

	p, err := svc.Get(context.Background(), 3)

	require.NoError(t, err)
	require.Equal(t, domprofile.Empty(3), p)
}

func TestGet_PropagatesRepositoryError(t *testing.T) {
	repo := newMockProfileRepository()
	repo.getErr = errors.New("db down")
	svc := NewService(repo)

	_, err := svc.Get(context.Background(), 3)
	require.EqualError(t, err, "db down")
}

func TestUpdateInformation_CreatesProfileOnFirstSave(t *testing.T) {
	repo := newMockProfileRepository()
	svc := NewService(repo)

	p, err := svc.UpdateInformation(context.Background(), 4, InformationInput{
		Phone: " 555-0100 ",
		City:  "Austin",
		Bio:   "Agent",
	})

	require.NoError(t, err)
	require.Equal(t, "555-0100", p.Phone)
	require.Equal(t, "Austin", repo.profiles[4].City)
	require.False(t, p.UpdatedAt.IsZero())
}

func TestUpdateInformation_KeepsSocialLinks(t *testing.T) {
	repo := newMockProfileRepository()
	repo.profiles[4] = &domprofile.Profile{UserID: 4, Social: domprofile.SocialMedia{Twitter: "@jane"}}
	svc := NewService(repo)

	p, err := svc.UpdateInformation(context.Background(), 4, InformationInput{City: "Dallas"})

	require.NoError(t, err)
	require.Equal(t, "@jane", p.Social.Twitter)
	require.Equal(t, "Dallas", p.City)
}

func TestUpdateSocialMedia_ReplacesLinksAndKeepsInformation(t *testing.T) {
	repo := newMockProfileRepository()
	repo.profiles[4] = &domprofile.Profile{
		UserID: 4,
		Phone:  "555",
		Social: domprofile.SocialMedia{Facebook: "fb/jane", Twitter: "@jane"},
	}
	svc := NewService(repo)

	p, err := svc.UpdateSocialMedia(context.Background(), 4, SocialMediaInput{LinkedIn: "in/jane"})

	require.NoError(t, err)
	require.Equal(t, domprofile.SocialMedia{LinkedIn: "in/jane"}, p.Social)
	require.Equal(t, "555", repo.profiles[4].Phone)
}

func TestUpdateSocialMedia_SaveError(t *testing.T) {
	repo := newMockProfileRepository()
	repo.saveErr = errors.New("write failed")
	svc := NewService(repo)

	_, err := svc.UpdateSocialMedia(context.Background(), 4, SocialMediaInput{})
	require.EqualError(t, err, "write failed")
}
