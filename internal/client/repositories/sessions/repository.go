package sessions

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/heavyhire/internal/client/models"
	"github.com/dmitrijs2005/heavyhire/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/heavyhire/internal/common"
	"github.com/dmitrijs2005/heavyhire/internal/cryptox"
	"github.com/dmitrijs2005/heavyhire/internal/logging"
)

const saltSize = 16

type envelope struct {
	Nonce []byte `json:"nonce"`
	Data  []byte `json:"data"`
}

// Repository stores one session. It satisfies rest.SessionStorage.
type Repository struct {
	meta       metadata.Repository
	passphrase []byte
	log        logging.Logger

	mu  sync.Mutex
	key []byte
}

func NewRepository(meta metadata.Repository, passphrase string, log logging.Logger) *Repository {
	if log == nil {
		log = logging.Nop()
	}
	return &Repository{
		meta:       meta,
		passphrase: []byte(passphrase),
		log:        log.With("module", "sessions"),
	}
}

func (r *Repository) encryptionKey(ctx context.Context) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.key != nil {
		return r.key, nil
	}

	salt, err := r.meta.Get(ctx, common.MetadataKeySessionSalt)
	if err != nil {
		return nil, err
	}
	if salt == nil {
		salt = common.GenerateRandByteArray(saltSize)
		if err := r.meta.Set(ctx, common.MetadataKeySessionSalt, salt); err != nil {
			return nil, err
		}
	}

	key, err := cryptox.DeriveKey(r.passphrase, salt)
	if err != nil {
		return nil, fmt.Errorf("derive session key: %w", err)
	}
	r.key = key
	return key, nil
}

// Load returns the stored session, or nil when there is none. A blob that
// no longer decrypts (for example after a passphrase change) is discarded.
func (r *Repository) Load(ctx context.Context) (*models.Session, error) {
	blob, err := r.meta.Get(ctx, common.MetadataKeySession)
	if err != nil || blob == nil {
		return nil, err
	}

	key, err := r.encryptionKey(ctx)
	if err != nil {
		return nil, err
	}

	var env envelope
	var s models.Session
	if err := json.Unmarshal(blob, &env); err == nil {
		err = cryptox.OpenJSON(env.Data, env.Nonce, key, &s)
		if err == nil {
			return &s, nil
		}
	}

	r.log.Warn(ctx, "stored session is unreadable, discarding")
	if err := r.meta.Delete(ctx, common.MetadataKeySession); err != nil {
		return nil, err
	}
	return nil, nil
}

func (r *Repository) Save(ctx context.Context, s *models.Session) error {
	if s == nil {
		return r.Clear(ctx)
	}

	key, err := r.encryptionKey(ctx)
	if err != nil {
		return err
	}

	data, nonce, err := cryptox.SealJSON(s, key)
	if err != nil {
		return fmt.Errorf("seal session: %w", err)
	}
	blob, err := json.Marshal(envelope{Nonce: nonce, Data: data})
	if err != nil {
		return err
	}
	return r.meta.Set(ctx, common.MetadataKeySession, blob)
}

func (r *Repository) Clear(ctx context.Context) error {
	return r.meta.Delete(ctx, common.MetadataKeySession)
}
