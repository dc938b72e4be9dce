package statuspad

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Directory is the in-memory user store. All access goes through the mutex;
// state is lost on restart by design.
type Directory struct {
	mu    sync.RWMutex
	users map[int]User
}

// DefaultUsers returns the demo seed data the service starts with.
func DefaultUsers() []User {
	return []User{
		{ID: 1, Name: "Alice Admin", Email: "alice@example.com", Role: RoleAdmin},
		{ID: 2, Name: "Bob Builder", Email: "bob@example.com", Role: RoleUser},
	}
}

// NewDirectory creates a Directory pre-populated with the given users.
func NewDirectory(seed ...User) *Directory {
	users := make(map[int]User, len(seed))
	for _, u := range seed {
		users[u.ID] = u
	}
	return &Directory{users: users}
}

// List returns all users ordered by id.
func (d *Directory) List(_ context.Context) ([]User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]User, 0, len(d.users))
	for _, u := range d.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Get returns the user with the given id.
func (d *Directory) Get(_ context.Context, id int) (User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	u, ok := d.users[id]
	if !ok {
		return User{}, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return u, nil
}

// Create validates the input and inserts a new user. The id is assigned as
// directory-size+1 and the role defaults to RoleUser when absent.
func (d *Directory) Create(_ context.Context, in CreateUserInput) (User, error) {
	if err := in.Validate(); err != nil {
		return User{}, err
	}

	role := in.Role
	if role == "" {
		role = RoleUser
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	u := User{
		ID:    len(d.users) + 1,
		Name:  in.Name,
		Email: in.Email,
		Role:  role,
	}
	d.users[u.ID] = u
	return u, nil
}

// Update merges the provided fields into an existing user.
func (d *Directory) Update(_ context.Context, id int, in UpdateUserInput) (User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	u, ok := d.users[id]
	if !ok {
		return User{}, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}

	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Role != nil {
		u.Role = *in.Role
	}

	d.users[id] = u
	return u, nil
}

// Delete removes the user with the given id.
func (d *Directory) Delete(_ context.Context, id int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.users[id]; !ok {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	delete(d.users, id)
	return nil
}

// Len reports how many users the directory currently holds.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.users)
}
