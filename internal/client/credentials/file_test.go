package credentials

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/apexfit/apexfit-go/internal/client/models"
)

func newFileBackend(t *testing.T) *FileBackend {
	t.Helper()
	return NewFileBackend(filepath.Join(t.TempDir(), "tokens.sealed"), []byte("test-secret"))
}

func TestFileBackend_GetMissingFile(t *testing.T) {
	f := newFileBackend(t)

	c, err := f.Get(context.Background())
	require.NoError(t, err)
	require.Nil(t, c)
}

func TestFileBackend_SetGetRoundTrip(t *testing.T) {
	f := newFileBackend(t)
	ctx := context.Background()

	require.NoError(t, f.Set(ctx, models.Credentials{AccessToken: "A1", RefreshToken: "R1"}))

	c, err := f.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, &models.Credentials{AccessToken: "A1", RefreshToken: "R1"}, c)
}

func TestFileBackend_TokensNotReadableAtRest(t *testing.T) {
	f := newFileBackend(t)
	ctx := context.Background()

	require.NoError(t, f.Set(ctx, models.Credentials{AccessToken: "super-secret-access", RefreshToken: "R"}))

	raw, err := os.ReadFile(f.path)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "super-secret-access")
}

func TestFileBackend_WrongSecretFailsToUnseal(t *testing.T) {
	f := newFileBackend(t)
	ctx := context.Background()

	require.NoError(t, f.Set(ctx, models.Credentials{AccessToken: "A", RefreshToken: "R"}))

	other := NewFileBackend(f.path, []byte("wrong-secret"))
	_, err := other.Get(ctx)
	require.Error(t, err)
}

func TestFileBackend_ClearIsIdempotent(t *testing.T) {
	f := newFileBackend(t)
	ctx := context.Background()

	require.NoError(t, f.Set(ctx, models.Credentials{AccessToken: "A", RefreshToken: "R"}))
	require.NoError(t, f.Clear(ctx))
	require.NoError(t, f.Clear(ctx))

	c, err := f.Get(ctx)
	require.NoError(t, err)
	require.Nil(t, c)
}

func TestFileBackend_CorruptFileReturnsError(t *testing.T) {
	f := newFileBackend(t)
	require.NoError(t, os.WriteFile(f.path, []byte("{not json"), 0o600))

	_, err := f.Get(context.Background())
	require.Error(t, err)
}
