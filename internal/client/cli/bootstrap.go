package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/heavyhire/internal/client/backend"
	"github.com/dmitrijs2005/heavyhire/internal/client/backend/postgres"
	"github.com/dmitrijs2005/heavyhire/internal/client/backend/rest"
	"github.com/dmitrijs2005/heavyhire/internal/client/config"
	"github.com/dmitrijs2005/heavyhire/internal/client/localdb"
	"github.com/dmitrijs2005/heavyhire/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/heavyhire/internal/client/repositories/sessions"
	"github.com/dmitrijs2005/heavyhire/internal/client/services"
	"github.com/dmitrijs2005/heavyhire/internal/client/session"
	"github.com/dmitrijs2005/heavyhire/internal/client/storage"
	"github.com/dmitrijs2005/heavyhire/internal/logging"
)

// NewAppFromConfig wires the whole client from c: local database, auth
// provider, row backend, session store, services and object storage.
// The returned close function releases everything in reverse order.
func NewAppFromConfig(ctx context.Context, c *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, func(), error) {
	if log == nil {
		log = logging.Nop()
	}

	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (*App, func(), error) {
		closeAll()
		return nil, nil, err
	}

	httpClient := &http.Client{Timeout: c.RequestTimeout}

	var sessionStorage rest.SessionStorage
	if c.SessionPassphrase != "" {
		db, err := localdb.Open(ctx, c.LocalDBPath)
		if err != nil {
			return fail(fmt.Errorf("error initializing database: %w", err))
		}
		closers = append(closers, func() { _ = db.Close() })
		sessionStorage = sessions.NewRepository(metadata.NewSQLiteRepository(db), c.SessionPassphrase, log)
	} else {
		log.Warn(ctx, "no session passphrase configured, the session is kept in memory only")
	}

	auth, err := rest.NewAuth(rest.AuthOptions{
		BaseURL:       c.BackendURL,
		APIKey:        c.APIKey,
		HTTPClient:    httpClient,
		Storage:       sessionStorage,
		RefreshMargin: c.RefreshMargin,
		Logger:        log,
	})
	if err != nil {
		return fail(err)
	}
	closers = append(closers, auth.Close)

	rows, err := newRowStore(ctx, c, httpClient, auth, &closers)
	if err != nil {
		return fail(err)
	}

	store := session.New(auth, rows, session.Config{
		RedirectTo:     c.RedirectTo,
		RequestTimeout: c.RequestTimeout,
	}, log)
	closers = append(closers, store.Close)

	deps := Deps{
		Session:  store,
		Reviews:  services.NewReviewService(store, rows, log),
		Wallet:   services.NewWalletService(store, rows, log),
		Bookings: services.NewBookingService(store, rows, log),
		Logger:   log,
	}
	if c.StorageEndpoint != "" {
		presigner := storage.NewPresigner(storage.Config{
			Endpoint:  c.StorageEndpoint,
			Region:    c.StorageRegion,
			Bucket:    c.StorageBucket,
			AccessKey: c.StorageAccessKey,
			SecretKey: c.StorageSecretKey,
			PublicURL: c.StoragePublicURL,
		})
		deps.Avatars = services.NewAvatarService(store, presigner, httpClient, log)
	}

	return NewApp(deps, in, out), closeAll, nil
}

func newRowStore(ctx context.Context, c *config.Config, client *http.Client, tokens rest.TokenSource, closers *[]func()) (backend.RowStore, error) {
	switch c.RowBackend {
	case config.RowBackendREST, "":
		rows, err := rest.NewRows(c.BackendURL, c.APIKey, client, tokens)
		if err != nil {
			return nil, err
		}
		return rows, nil
	case config.RowBackendPostgres:
		if c.DatabaseDSN == "" {
			return nil, errors.New("row backend postgres needs a database DSN")
		}
		db, err := postgres.Open(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, func() { _ = db.Close() })
		return postgres.NewRowStore(db), nil
	}
	return nil, fmt.Errorf("unknown row backend %q", c.RowBackend)
}
