package application

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"orderflow/internal/service/user/domain"
)

// seqUserRepo 模拟存储分配自增 ID 的行为。
type seqUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func (m *seqUserRepo) Create(_ context.Context, user *domain.User) error {
	m.nextID++
	user.ID = m.nextID
	m.users[user.ID] = user
	return nil
}

func (m *seqUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (m *seqUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	return users, nil
}

func TestCreateUser(t *testing.T) {
	repo := &seqUserRepo{users: make(map[int64]*domain.User)}
	svc := NewUserApplicationService(repo, otel.Tracer("test"))

	resp, err := svc.CreateUser(context.Background(), &CreateUserRequest{Name: "Alice", Username: "alice", Password: "secret"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "secret", repo.users[1].Password)
}

func TestCreateUser_MissingFields(t *testing.T) {
	repo := &seqUserRepo{users: make(map[int64]*domain.User)}
	svc := NewUserApplicationService(repo, otel.Tracer("test"))

	_, err := svc.CreateUser(context.Background(), &CreateUserRequest{Name: "Alice"})
	assert.ErrorIs(t, err, domain.ErrMissingUserFields)
	assert.Empty(t, repo.users)
}

func TestUserResponseNeverCarriesPassword(t *testing.T) {
	repo := &seqUserRepo{users: make(map[int64]*domain.User)}
	svc := NewUserApplicationService(repo, otel.Tracer("test"))

	resp, err := svc.CreateUser(context.Background(), &CreateUserRequest{Name: "Alice", Username: "alice", Password: "secret"})
	require.NoError(t, err)

	payload, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "secret")
	assert.NotContains(t, string(payload), "password")
}

func TestGetUser_NotFound(t *testing.T) {
	repo := &seqUserRepo{users: make(map[int64]*domain.User)}
	svc := NewUserApplicationService(repo, otel.Tracer("test"))

	_, err := svc.GetUser(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
