package repository

import (
	"context"
	"sort"

	"github.com/spec-kit/parking-service/internal/domain"
)

// memoryUserRepository serves seeded users from process memory. Users
// are immutable after seeding, so no locking is needed.
type memoryUserRepository struct {
	users map[int]domain.User
}

// NewMemoryUserRepository builds an in-memory repository from the given
// seed users.
func NewMemoryUserRepository(seed []domain.User) UserRepository {
	users := make(map[int]domain.User, len(seed))
	for _, u := range seed {
		users[u.ID] = u
	}
	return &memoryUserRepository{users: users}
}

func (r *memoryUserRepository) GetByID(ctx context.Context, id int) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *memoryUserRepository) List(ctx context.Context) ([]domain.User, error) {
	result := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		result = append(result, user)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
