package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/fintrack-cli/internal/client/api"
	"github.com/fintrack/fintrack-cli/internal/client/models"
)

type fakeUserAPI struct {
	api.DataAPI

	uploadName string
	uploadData []byte
	uploadErr  error

	profile *models.UserProfile
}

func (f *fakeUserAPI) CurrentUser(context.Context) (*models.UserProfile, error) {
	return f.profile, nil
}
func (f *fakeUserAPI) UploadAvatar(_ context.Context, filename string, data []byte) error {
	f.uploadName = filename
	f.uploadData = append([]byte(nil), data...)
	return f.uploadErr
}

func TestUploadAvatar_SendsFileContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avatar.png")
	require.NoError(t, os.WriteFile(path, []byte("png-bytes"), 0o600))

	f := &fakeUserAPI{}
	s := NewUserService(f)

	require.NoError(t, s.UploadAvatar(context.Background(), path))
	assert.Equal(t, "avatar.png", f.uploadName, "only the base name goes to the backend")
	assert.Equal(t, []byte("png-bytes"), f.uploadData)
}

func TestUploadAvatar_MissingFile(t *testing.T) {
	f := &fakeUserAPI{}
	s := NewUserService(f)

	err := s.UploadAvatar(context.Background(), filepath.Join(t.TempDir(), "nope.png"))
	require.Error(t, err)
	assert.Empty(t, f.uploadName)
}

func TestMe_ReturnsProfile(t *testing.T) {
	f := &fakeUserAPI{profile: &models.UserProfile{Username: "alice"}}
	s := NewUserService(f)

	p, err := s.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Username)
}
