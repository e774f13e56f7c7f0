package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	dommsg "example.com/property-listing/app/internal/domain/message"
	domprofile "example.com/property-listing/app/internal/domain/profile"
	domproperty "example.com/property-listing/app/internal/domain/property"
	domuser "example.com/property-listing/app/internal/domain/user"
	"example.com/property-listing/app/internal/infra/cache"
	"example.com/property-listing/app/internal/infra/security"
	authuc "example.com/property-listing/app/internal/usecase/auth"
	messageuc "example.com/property-listing/app/internal/usecase/message"
	profileuc "example.com/property-listing/app/internal/usecase/profile"
	propertyuc "example.com/property-listing/app/internal/usecase/property"
	useruc "example.com/property-listing/app/internal/usecase/user"
)

type memUserRepo struct {
	mu     sync.Mutex
	users  map[int64]*domuser.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]*domuser.User), nextID: 1}
}

func (m *memUserRepo) Create(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return nil, domuser.ErrEmailAlreadyUsed
		}
	}
	u.ID = m.nextID
	m.nextID++
	cloned := *u
	m.users[u.ID] = &cloned
	return u, nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id int64) (*domuser.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cloned := *u
		return &cloned, nil
	}
	return nil, domuser.ErrUserNotFound
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*domuser.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cloned := *u
			return &cloned, nil
		}
	}
	return nil, domuser.ErrUserNotFound
}

func (m *memUserRepo) Update(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return nil, domuser.ErrUserNotFound
	}
	cloned := *u
	m.users[u.ID] = &cloned
	return u, nil
}

func (m *memUserRepo) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return domuser.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

type memPropertyRepo struct {
	mu         sync.Mutex
	properties map[int64]*domproperty.Property
	nextID     int64
	findErr    error
	createErr  error
}

func newMemPropertyRepo() *memPropertyRepo {
	return &memPropertyRepo{properties: make(map[int64]*domproperty.Property), nextID: 1}
}

func (m *memPropertyRepo) seed(p *domproperty.Property) *domproperty.Property {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == 0 {
		p.ID = m.nextID
	}
	if p.ID >= m.nextID {
		m.nextID = p.ID + 1
	}
	m.properties[p.ID] = p
	return p
}

func (m *memPropertyRepo) Create(ctx context.Context, p *domproperty.Property) (*domproperty.Property, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	cloned := *p
	created := m.seed(&cloned)
	p.ID = created.ID
	return p, nil
}

func (m *memPropertyRepo) Update(ctx context.Context, p *domproperty.Property) (*domproperty.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.properties[p.ID]; !ok {
		return nil, domproperty.ErrPropertyNotFound
	}
	cloned := *p
	m.properties[p.ID] = &cloned
	return p, nil
}

func (m *memPropertyRepo) GetByID(ctx context.Context, id int64) (*domproperty.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.properties[id]; ok {
		cloned := *p
		return &cloned, nil
	}
	return nil, domproperty.ErrPropertyNotFound
}

func (m *memPropertyRepo) GetBySlug(ctx context.Context, slug string) (*domproperty.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.properties {
		if p.Slug == slug {
			cloned := *p
			return &cloned, nil
		}
	}
	return nil, domproperty.ErrPropertyNotFound
}

func (m *memPropertyRepo) Find(ctx context.Context, q domproperty.Query) ([]*domproperty.Property, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []*domproperty.Property{}
	for _, p := range m.properties {
		if domproperty.MatchAll(p, q.Predicates) {
			cloned := *p
			out = append(out, &cloned)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if q.Order == domproperty.OrderNewest {
			if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			return out[i].ID > out[j].ID
		}
		return out[i].ID < out[j].ID
	})
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *memPropertyRepo) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.properties {
		if p.Slug == slug && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type memProfileRepo struct {
	mu       sync.Mutex
	profiles map[int64]*domprofile.Profile
}

func (m *memProfileRepo) GetByUserID(ctx context.Context, userID int64) (*domprofile.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.profiles[userID]; ok {
		cloned := *p
		return &cloned, nil
	}
	return nil, domprofile.ErrProfileNotFound
}

func (m *memProfileRepo) Save(ctx context.Context, p *domprofile.Profile) (*domprofile.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cloned := *p
	m.profiles[p.UserID] = &cloned
	return p, nil
}

type memMessageRepo struct {
	mu       sync.Mutex
	messages []*dommsg.Message
}

func (m *memMessageRepo) Create(ctx context.Context, msg *dommsg.Message) (*dommsg.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg.ID = int64(len(m.messages) + 1)
	cloned := *msg
	m.messages = append(m.messages, &cloned)
	return msg, nil
}

func (m *memMessageRepo) GetByID(ctx context.Context, id int64) (*dommsg.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.messages {
		if msg.ID == id {
			cloned := *msg
			return &cloned, nil
		}
	}
	return nil, dommsg.ErrMessageNotFound
}

func (m *memMessageRepo) ListForRecipient(ctx context.Context, recipientID int64) ([]*dommsg.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*dommsg.Message{}
	for i := len(m.messages) - 1; i >= 0; i-- {
		if m.messages[i].RecipientID == recipientID {
			cloned := *m.messages[i]
			out = append(out, &cloned)
		}
	}
	return out, nil
}

type testEnv struct {
	router     chi.Router
	users      *memUserRepo
	properties *memPropertyRepo
	profiles   *memProfileRepo
	messages   *memMessageRepo
	tokens     *security.JWTService
	metrics    *Metrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		users:      newMemUserRepo(),
		properties: newMemPropertyRepo(),
		profiles:   &memProfileRepo{profiles: make(map[int64]*domprofile.Profile)},
		messages:   &memMessageRepo{},
		tokens:     security.NewJWTService("test-secret", "test", time.Hour),
		metrics:    NewMetrics(),
	}
	passwords := security.NewBcryptService(4)
	log := zaptest.NewLogger(t)

	api := NewAPI(Dependencies{
		AuthService:     authuc.NewService(env.users, passwords, env.tokens, cache.NewMemoryRevoker()),
		UserService:     useruc.NewService(env.users, passwords),
		PropertyService: propertyuc.NewService(env.properties, propertyuc.WithLogger(log)),
		ProfileService:  profileuc.NewService(env.profiles),
		MessageService:  messageuc.NewService(env.messages, env.properties, env.users, messageuc.WithLogger(log)),
		Logger:          log,
		Metrics:         env.metrics,
		Limits:          ListingLimits{Default: 6, Max: 20},
	})
	env.router = api.Router()
	return env
}

// registerUser creates an account through the API and returns its id and bearer token.
func (e *testEnv) registerUser(t *testing.T, name, email string) (int64, string) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/v1/register", "", map[string]any{
		"name":                  name,
		"email":                 email,
		"password":              "secret123",
		"password_confirmation": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID int64 `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.User.ID, resp.Token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func dataIDs(t *testing.T, rec *httptest.ResponseRecorder) []int64 {
	t.Helper()
	var resp struct {
		Data []struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	ids := make([]int64, 0, len(resp.Data))
	for _, d := range resp.Data {
		ids = append(ids, d.ID)
	}
	return ids
}
