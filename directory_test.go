package statuspad_test

import (
	"context"
	"testing"

	"github.com/statuspad/statuspad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectory_List_SortedByID(t *testing.T) {
	dir := statuspad.NewDirectory(
		statuspad.User{ID: 3, Name: "C", Email: "c@example.com", Role: statuspad.RoleUser},
		statuspad.User{ID: 1, Name: "A", Email: "a@example.com", Role: statuspad.RoleAdmin},
		statuspad.User{ID: 2, Name: "B", Email: "b@example.com", Role: statuspad.RoleUser},
	)

	users, err := dir.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, 1, users[0].ID)
	assert.Equal(t, 2, users[1].ID)
	assert.Equal(t, 3, users[2].ID)
}

func TestDirectory_Get_NotFound(t *testing.T) {
	dir := statuspad.NewDirectory(statuspad.DefaultUsers()...)

	_, err := dir.Get(context.Background(), 999)
	assert.ErrorIs(t, err, statuspad.ErrNotFound)
}

func TestDirectory_Create_AssignsIDAndDefaultRole(t *testing.T) {
	dir := statuspad.NewDirectory(statuspad.DefaultUsers()...)

	created, err := dir.Create(context.Background(), statuspad.CreateUserInput{
		Name:  "Test User",
		Email: "test@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, created.ID)
	assert.Equal(t, statuspad.RoleUser, created.Role)

	got, err := dir.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestDirectory_Create_ExplicitRole(t *testing.T) {
	dir := statuspad.NewDirectory()

	created, err := dir.Create(context.Background(), statuspad.CreateUserInput{
		Name:  "Root",
		Email: "root@example.com",
		Role:  statuspad.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, statuspad.RoleAdmin, created.Role)
}

func TestDirectory_Create_MissingEmail(t *testing.T) {
	dir := statuspad.NewDirectory(statuspad.DefaultUsers()...)

	_, err := dir.Create(context.Background(), statuspad.CreateUserInput{Name: "Test"})
	require.Error(t, err)

	var verr *statuspad.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Email is required", verr.Details["email"])
	assert.Equal(t, 2, dir.Len())
}

func TestDirectory_Create_InvalidEmail(t *testing.T) {
	dir := statuspad.NewDirectory()

	_, err := dir.Create(context.Background(), statuspad.CreateUserInput{
		Name:  "Test",
		Email: "not-an-email",
	})

	var verr *statuspad.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Invalid email format", verr.Details["email"])
}

func TestDirectory_Create_MissingEverything(t *testing.T) {
	dir := statuspad.NewDirectory()

	_, err := dir.Create(context.Background(), statuspad.CreateUserInput{})

	var verr *statuspad.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Name is required", verr.Details["name"])
	assert.Equal(t, "Email is required", verr.Details["email"])
}

func TestDirectory_Update_MergesOnlyProvidedFields(t *testing.T) {
	dir := statuspad.NewDirectory(statuspad.DefaultUsers()...)

	name := "Alice Renamed"
	updated, err := dir.Update(context.Background(), 1, statuspad.UpdateUserInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alice Renamed", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)
	assert.Equal(t, statuspad.RoleAdmin, updated.Role)
}

func TestDirectory_Update_NotFound(t *testing.T) {
	dir := statuspad.NewDirectory(statuspad.DefaultUsers()...)

	name := "Nobody"
	_, err := dir.Update(context.Background(), 42, statuspad.UpdateUserInput{Name: &name})
	assert.ErrorIs(t, err, statuspad.ErrNotFound)
}

func TestDirectory_Delete(t *testing.T) {
	dir := statuspad.NewDirectory(statuspad.DefaultUsers()...)

	err := dir.Delete(context.Background(), 2)
	require.NoError(t, err)

	_, err = dir.Get(context.Background(), 2)
	assert.ErrorIs(t, err, statuspad.ErrNotFound)

	err = dir.Delete(context.Background(), 2)
	assert.ErrorIs(t, err, statuspad.ErrNotFound)
}

func TestValidationError_Message(t *testing.T) {
	err := &statuspad.ValidationError{Details: map[string]string{
		"email": "Email is required",
		"name":  "Name is required",
	}}
	assert.Equal(t, "validation failed: email: Email is required; name: Name is required", err.Error())
}
