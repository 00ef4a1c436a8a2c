package services

import (
	"context"

	"github.com/dmitrijs2005/heavyhire/internal/client/backend"
	"github.com/dmitrijs2005/heavyhire/internal/client/models"
	"github.com/dmitrijs2005/heavyhire/internal/logging"
	"golang.org/x/sync/errgroup"
)

// WalletView is what the wallet screen shows. Wallet is nil when the user
// has none or it could not be loaded.
type WalletView struct {
	Wallet       *models.Wallet
	Transactions []models.Transaction
}

type WalletService interface {
	Load(ctx context.Context) (WalletView, error)
}

type walletService struct {
	session SessionReader
	wallets backend.Wallets
	log     logging.Logger
}

func NewWalletService(session SessionReader, wallets backend.Wallets, log logging.Logger) WalletService {
	if log == nil {
		log = logging.Nop()
	}
	return &walletService{session: session, wallets: wallets, log: log.With("module", "wallet")}
}

// Load reads the wallet and its transactions (newest first). Fetch errors
// are logged and leave the corresponding part empty; only a missing session
// is returned as an error.
func (s *walletService) Load(ctx context.Context) (WalletView, error) {
	user, _, err := currentUser(s.session)
	if err != nil {
		return WalletView{}, err
	}

	var view WalletView
	var g errgroup.Group
	g.Go(func() error {
		w, err := s.wallets.GetWallet(ctx, user.ID)
		if err != nil {
			s.log.Error(ctx, "wallet fetch failed", "user_id", user.ID, "error", err)
			return nil
		}
		view.Wallet = w
		return nil
	})
	g.Go(func() error {
		txs, err := s.wallets.ListTransactions(ctx, user.ID)
		if err != nil {
			s.log.Error(ctx, "transactions fetch failed", "user_id", user.ID, "error", err)
			return nil
		}
		view.Transactions = txs
		return nil
	})
	_ = g.Wait()

	return view, nil
}
