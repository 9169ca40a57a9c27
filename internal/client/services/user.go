package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fintrack/fintrack-cli/internal/client/api"
	"github.com/fintrack/fintrack-cli/internal/client/models"
)

// UserService covers profile and account management.
type UserService interface {
	Me(ctx context.Context) (*models.UserProfile, error)
	UploadAvatar(ctx context.Context, path string) error
	DeleteAvatar(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
}

type userService struct {
	api api.DataAPI
}

func NewUserService(dataAPI api.DataAPI) UserService {
	return &userService{api: dataAPI}
}

func (u *userService) Me(ctx context.Context) (*models.UserProfile, error) {
	return u.api.CurrentUser(ctx)
}

// UploadAvatar reads the image from disk and sends it as multipart form
// data under the backend's expected "file" field.
func (u *userService) UploadAvatar(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading avatar file: %w", err)
	}
	return u.api.UploadAvatar(ctx, filepath.Base(path), data)
}

func (u *userService) DeleteAvatar(ctx context.Context) error {
	return u.api.DeleteAvatar(ctx)
}

func (u *userService) DeleteAccount(ctx context.Context) error {
	return u.api.DeleteAccount(ctx)
}
