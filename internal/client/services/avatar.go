package services

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/heavyhire/internal/client/models"
	"github.com/dmitrijs2005/heavyhire/internal/client/storage"
	"github.com/dmitrijs2005/heavyhire/internal/filex"
	"github.com/dmitrijs2005/heavyhire/internal/logging"
	"github.com/dmitrijs2005/heavyhire/internal/netx"
)

// MaxAvatarSize is the largest avatar accepted.
const MaxAvatarSize = 5 << 20

// ObjectStore presigns uploads and names public objects.
type ObjectStore interface {
	PresignPut(ctx context.Context, key, contentType string) (string, error)
	PublicURL(key string) string
}

var _ ObjectStore = (*storage.Presigner)(nil)

type AvatarService interface {
	// Upload stores the image at path and sets it as the profile avatar.
	// It returns the avatar's public URL.
	Upload(ctx context.Context, path string) (string, error)
}

type avatarService struct {
	session ProfileWriter
	objects ObjectStore
	client  *http.Client
	log     logging.Logger
	now     func() time.Time
}

func NewAvatarService(session ProfileWriter, objects ObjectStore, client *http.Client, log logging.Logger) AvatarService {
	if log == nil {
		log = logging.Nop()
	}
	return &avatarService{session: session, objects: objects, client: client, log: log.With("module", "avatar"), now: time.Now}
}

func (s *avatarService) Upload(ctx context.Context, path string) (string, error) {
	user, _, err := currentUser(s.session)
	if err != nil {
		return "", err
	}

	data, contentType, err := filex.ReadLimited(path, MaxAvatarSize)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	key := storage.AvatarKey(user.ID, filepath.Ext(path), s.now())
	url, err := s.objects.PresignPut(ctx, key, contentType)
	if err != nil {
		return "", err
	}
	if err := netx.UploadToPresignedURL(ctx, s.client, url, contentType, data); err != nil {
		return "", err
	}

	public := s.objects.PublicURL(key)
	if err := s.session.UpdateProfile(ctx, models.ProfileUpdate{AvatarURL: &public}); err != nil {
		return "", err
	}

	s.log.Info(ctx, "avatar uploaded", "user_id", user.ID, "key", key, "bytes", len(data))
	return public, nil
}
