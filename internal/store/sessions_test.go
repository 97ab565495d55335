package store

import (
	"testing"
	"time"

	"github.com/confessly-dev/confessly/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	gdb := newTestDB(t)
	owner := newOwner(t, gdb)
	sessions := NewSessionStore(gdb)

	created, err := sessions.Create(owner.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, owner.ID, created.UserID)

	loaded, err := sessions.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, loaded.ID)

	require.NoError(t, sessions.Delete(created.ID))

	_, err = sessions.Get(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExpiredSession(t *testing.T) {
	gdb := newTestDB(t)
	owner := newOwner(t, gdb)
	sessions := NewSessionStore(gdb)

	created, err := sessions.Create(owner.ID)
	require.NoError(t, err)

	expired := time.Now().Add(-time.Hour)
	require.NoError(t, gdb.Model(&models.Session{}).Where("id = ?", created.ID).Update("expires_at", expired).Error)

	_, err = sessions.Get(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMissingSession(t *testing.T) {
	sessions := NewSessionStore(newTestDB(t))

	err := sessions.Delete("no-such-session")
	assert.ErrorIs(t, err, ErrNotFound)
}
