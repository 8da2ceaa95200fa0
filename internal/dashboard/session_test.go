package dashboard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yuxdigital/yux-crm/internal/entity"
)

// TestSessionPersistsAcrossStores - Set em um store, Hydrate em outro
// apontando para o mesmo arquivo (simula recarregar o painel)
func TestSessionPersistsAcrossStores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	first := NewSessionStore(path)
	err := first.Set(Session{
		User:  entity.User{ID: "u1", Name: "Maria", Role: "admin"},
		Token: "tok-123",
	})
	assert.NoError(t, err)

	second := NewSessionStore(path)
	assert.NoError(t, second.Hydrate())

	assert.True(t, second.IsAuthenticated())
	assert.Equal(t, "tok-123", second.Token())
	assert.Equal(t, "Maria", second.User().Name)
}

// TestHydrateMissingFileMeansLoggedOut
func TestHydrateMissingFileMeansLoggedOut(t *testing.T) {
	store := NewSessionStore(filepath.Join(t.TempDir(), "nao-existe.json"))

	assert.NoError(t, store.Hydrate())
	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.User())
}

// TestHydrateCorruptFileMeansLoggedOut
func TestHydrateCorruptFileMeansLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	assert.NoError(t, os.WriteFile(path, []byte("{lixo"), 0o600))

	store := NewSessionStore(path)
	assert.NoError(t, store.Hydrate())
	assert.False(t, store.IsAuthenticated())
}

// TestClearRemovesFile - logout apaga o arquivo, não só a memória
func TestClearRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewSessionStore(path)

	assert.NoError(t, store.Set(Session{Token: "tok"}))
	assert.NoError(t, store.Clear())

	assert.False(t, store.IsAuthenticated())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clear de novo não é erro
	assert.NoError(t, store.Clear())
}
