package portaluser

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tendant/partner-portal/pkg/rbac"
)

// InMemoryUserRepository implements UserRepository using in-memory storage.
type InMemoryUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]User
}

// NewInMemoryUserRepository creates a new in-memory user repository.
func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: make(map[uuid.UUID]User),
	}
}

// CreateUser inserts a new user.
func (r *InMemoryUserRepository) CreateUser(ctx context.Context, user User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.ID = uuid.New()
	user.CreatedAt = time.Now().UTC()
	r.users[user.ID] = user
	return user, nil
}

// GetUser retrieves a user by id.
func (r *InMemoryUserRepository) GetUser(ctx context.Context, id uuid.UUID) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email.
func (r *InMemoryUserRepository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return User{}, ErrUserNotFound
}

// ListUsers retrieves all users ordered by creation time.
func (r *InMemoryUserRepository) ListUsers(ctx context.Context) ([]User, error) {
	return r.listWhere(func(User) bool { return true })
}

// ListUsersByRole retrieves users holding the given role.
func (r *InMemoryUserRepository) ListUsersByRole(ctx context.Context, role rbac.Role) ([]User, error) {
	return r.listWhere(func(u User) bool { return u.Role == role })
}

func (r *InMemoryUserRepository) listWhere(match func(User) bool) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var users []User
	for _, user := range r.users {
		if match(user) {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

// UpdateUser stores the full user row.
func (r *InMemoryUserRepository) UpdateUser(ctx context.Context, user User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[user.ID]
	if !ok {
		return User{}, ErrUserNotFound
	}
	user.CreatedAt = existing.CreatedAt
	r.users[user.ID] = user
	return user, nil
}

// DeleteUser removes a user by id.
func (r *InMemoryUserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type assignmentKey struct {
	pamID     uuid.UUID
	companyID uuid.UUID
}

// InMemoryPamAssignmentRepository implements PamAssignmentRepository using
// in-memory storage.
type InMemoryPamAssignmentRepository struct {
	mu          sync.RWMutex
	assignments map[assignmentKey]time.Time
}

// NewInMemoryPamAssignmentRepository creates a new in-memory assignment
// repository.
func NewInMemoryPamAssignmentRepository() *InMemoryPamAssignmentRepository {
	return &InMemoryPamAssignmentRepository{
		assignments: make(map[assignmentKey]time.Time),
	}
}

// Assign links pamID to companyID. Assigning an existing pair is a no-op.
func (r *InMemoryPamAssignmentRepository) Assign(ctx context.Context, pamID, companyID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := assignmentKey{pamID: pamID, companyID: companyID}
	if _, ok := r.assignments[key]; !ok {
		r.assignments[key] = time.Now().UTC()
	}
	return nil
}

// Unassign removes the link between pamID and companyID. Removing a missing
// pair is a no-op so company PAM sync stays idempotent.
func (r *InMemoryPamAssignmentRepository) Unassign(ctx context.Context, pamID, companyID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.assignments, assignmentKey{pamID: pamID, companyID: companyID})
	return nil
}

// UnassignAll removes every assignment held by pamID.
func (r *InMemoryPamAssignmentRepository) UnassignAll(ctx context.Context, pamID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.assignments {
		if key.pamID == pamID {
			delete(r.assignments, key)
		}
	}
	return nil
}

// ListAssignedCompanyIDs returns the companies assigned to pamID, oldest
// assignment first.
func (r *InMemoryPamAssignmentRepository) ListAssignedCompanyIDs(ctx context.Context, pamID uuid.UUID) ([]uuid.UUID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type entry struct {
		companyID uuid.UUID
		createdAt time.Time
	}
	var entries []entry
	for key, createdAt := range r.assignments {
		if key.pamID == pamID {
			entries = append(entries, entry{companyID: key.companyID, createdAt: createdAt})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].createdAt.Before(entries[j].createdAt)
	})

	ids := make([]uuid.UUID, len(entries))
	for i, e := range entries {
		ids[i] = e.companyID
	}
	return ids, nil
}
