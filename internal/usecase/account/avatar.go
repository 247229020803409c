package account

import (
	"context"
	"io"
	"net/http"

	domain "github.com/espacoviv/agendamento/internal/domain/account"
	"github.com/espacoviv/agendamento/internal/httperr"
	"github.com/espacoviv/agendamento/internal/infra/storage"
)

var ErrAvatarDisabled = httperr.BusinessError{Code: "avatar_upload_disabled", Status: http.StatusServiceUnavailable}

type UploadAvatar struct {
	repo  domain.Repository
	store storage.AvatarStore
}

// NewUploadAvatar creates the use case; a nil store disables uploads.
func NewUploadAvatar(repo domain.Repository, store storage.AvatarStore) *UploadAvatar {
	return &UploadAvatar{repo: repo, store: store}
}

// Execute stores the normalized image and saves its URL on the profile.
func (uc *UploadAvatar) Execute(ctx context.Context, userID uint, upload io.Reader) (string, error) {
	if uc.store == nil {
		return "", ErrAvatarDisabled
	}

	u, err := uc.repo.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}

	data, err := storage.NormalizeAvatar(upload)
	if err != nil {
		return "", err
	}

	url, err := uc.store.PutAvatar(ctx, u.ID, data)
	if err != nil {
		return "", err
	}

	u.AvatarURL = url
	if err := uc.repo.UpdateUser(ctx, u, nil); err != nil {
		return "", err
	}
	return url, nil
}
