package workbook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ppm-service/internal/model"
	"ppm-service/internal/store"
)

func newTestRegistry(t *testing.T) *Workbook {
	t.Helper()
	return New("", filepath.Join(t.TempDir(), "users.csv"))
}

func TestFindUserMissingRegistry(t *testing.T) {
	w := newTestRegistry(t)

	_, err := w.FindUser("+97100000")
	assert.ErrorIs(t, err, store.ErrUserNotFound, "absent registry file reads as empty registry")
}

func TestCreateAndFindUser(t *testing.T) {
	w := newTestRegistry(t)

	require.NoError(t, w.CreateUser(model.User{Phone: "+97100000", Name: "", Role: model.RoleUser}))

	u, err := w.FindUser("+97100000")
	require.NoError(t, err)
	assert.Equal(t, "+97100000", u.Phone)
	assert.Equal(t, model.RoleUser, u.Role)
	assert.False(t, u.IsAdmin())
}

func TestRegistryRoundTrip(t *testing.T) {
	w := newTestRegistry(t)

	require.NoError(t, w.CreateUser(model.User{Phone: "+97100000", Role: model.RoleUser}))
	require.NoError(t, w.CreateUser(model.User{Phone: "+97111111", Name: "Supervisor", Role: "Admin"}))

	// Re-open through a fresh store to prove the rows survived the file.
	w2 := New("", w.usersPath)
	u, err := w2.FindUser("+97111111")
	require.NoError(t, err)
	assert.Equal(t, "Supervisor", u.Name)
	assert.True(t, u.IsAdmin(), "role comparison is case-insensitive")

	data, err := os.ReadFile(w.usersPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "phone,name,role", "header row written")
}
