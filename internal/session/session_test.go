package session

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/domain"
	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/store"
)

func newTestStore(t *testing.T) (*Store, *store.Store) {
	t.Helper()
	slot := store.Memory()
	return NewStore(slot, nil), slot
}

// failingSlot rejects every write
type failingSlot struct{ *store.Store }

func (failingSlot) Put(string, []byte) error { return errors.New("disk full") }

func TestSignIn_DerivesUsername(t *testing.T) {
	s, _ := newTestStore(t)

	sess, err := s.SignIn("a@b.com", "x")
	require.NoError(t, err)

	assert.Equal(t, "a", sess.Username)
	assert.Equal(t, "a@b.com", sess.Email)
	parsed, err := uuid.Parse(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.Equal(t, sess, s.Current())
}

func TestSignIn_RequiresEmail(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.SignIn("   ", "x")
	assert.ErrorIs(t, err, domain.ErrEmailRequired)
	assert.Nil(t, s.Current())
}

func TestSignIn_UniqueIDs(t *testing.T) {
	s, _ := newTestStore(t)

	first, _ := s.SignIn("a@b.com", "")
	second, _ := s.SignIn("a@b.com", "")
	assert.NotEqual(t, first.ID, second.ID)
}

func TestRegister(t *testing.T) {
	s, _ := newTestStore(t)

	sess, err := s.Register("kaneki@ccg.jp", "Ken", "")
	require.NoError(t, err)
	assert.Equal(t, "Ken", sess.Username)

	_, err = s.Register("kaneki@ccg.jp", " ", "")
	assert.ErrorIs(t, err, domain.ErrUsernameRequired)

	_, err = s.Register("", "Ken", "")
	assert.ErrorIs(t, err, domain.ErrEmailRequired)
}

func TestSignIn_PersistsAndRestores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aniverse.db")
	slot, err := store.Open(path, store.DefaultBucket)
	require.NoError(t, err)

	sess, err := NewStore(slot, nil).SignIn("a@b.com", "x")
	require.NoError(t, err)
	require.NoError(t, slot.Close())

	slot, err = store.Open(path, store.DefaultBucket)
	require.NoError(t, err)
	defer slot.Close()

	restored := NewStore(slot, nil).Restore()
	require.NotNil(t, restored)
	assert.Equal(t, *sess, *restored)
}

func TestSignOut_ClearsFavoritesAndSlot(t *testing.T) {
	s, slot := newTestStore(t)

	_, err := s.SignIn("a@b.com", "x")
	require.NoError(t, err)
	_, err = s.ToggleFavorite("2")
	require.NoError(t, err)

	s.SignOut()

	assert.Nil(t, s.Restore())
	assert.Nil(t, s.Current())
	assert.Empty(t, s.Favorites())
	_, ok := slot.Get(SlotKey)
	assert.False(t, ok)

	// Idempotent
	s.SignOut()
	assert.Nil(t, s.Current())
}

func TestToggleFavorite_RequiresSession(t *testing.T) {
	s, _ := newTestStore(t)

	on, err := s.ToggleFavorite("2")
	assert.ErrorIs(t, err, domain.ErrSignInRequired)
	assert.False(t, on)
	assert.Empty(t, s.Favorites())
}

func TestToggleFavorite_Involution(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.SignIn("a@b.com", "x")
	require.NoError(t, err)
	_, _ = s.ToggleFavorite("1")
	before := s.Favorites()

	on, err := s.ToggleFavorite("2")
	require.NoError(t, err)
	assert.True(t, on)
	assert.True(t, s.IsFavorite("2"))

	on, err = s.ToggleFavorite("2")
	require.NoError(t, err)
	assert.False(t, on)
	assert.Equal(t, before, s.Favorites())
}

func TestRestore_MalformedRecords(t *testing.T) {
	records := map[string]string{
		"not json":   `{{{`,
		"wrong type": `["a@b.com"]`,
		"no id":      `{"email":"a@b.com","username":"a"}`,
		"no email":   `{"id":"x","username":"a"}`,
		"empty":      ``,
	}
	for name, data := range records {
		t.Run(name, func(t *testing.T) {
			s, slot := newTestStore(t)
			require.NoError(t, slot.Put(SlotKey, []byte(data)))

			assert.Nil(t, s.Restore())
			assert.False(t, s.SignedIn())
		})
	}
}

func TestRestore_FillsMissingUsername(t *testing.T) {
	s, slot := newTestStore(t)
	require.NoError(t, slot.Put(SlotKey, []byte(`{"id":"x","email":"luffy@sea.org"}`)))

	sess := s.Restore()
	require.NotNil(t, sess)
	assert.Equal(t, "luffy", sess.Username)
}

func TestSignIn_PersistFailureIsNotFatal(t *testing.T) {
	s := NewStore(failingSlot{store.Memory()}, nil)

	sess, err := s.SignIn("a@b.com", "x")
	require.NoError(t, err)
	assert.Equal(t, "a", sess.Username)
	assert.True(t, s.SignedIn())
}

func TestUsernameFromEmail(t *testing.T) {
	assert.Equal(t, "a", usernameFromEmail("a@b.com"))
	assert.Equal(t, "nobody", usernameFromEmail("nobody"))
	assert.Equal(t, "@b.com", usernameFromEmail("@b.com"))
}
