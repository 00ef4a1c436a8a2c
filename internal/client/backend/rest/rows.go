package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/heavyhire/internal/client/backend"
	"github.com/dmitrijs2005/heavyhire/internal/client/models"
)

const (
	preferMinimal        = "return=minimal"
	preferRepresentation = "return=representation"
)

// TokenSource supplies the access token used to authorise row requests.
// An empty token means the request is made with the public API key.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// Rows is the PostgREST row client. It implements backend.RowStore.
type Rows struct {
	t      *transport
	tokens TokenSource
}

var _ backend.RowStore = (*Rows)(nil)

// NewRows builds a row client. tokens may be nil for anonymous access.
func NewRows(baseURL, apiKey string, client *http.Client, tokens TokenSource) (*Rows, error) {
	t, err := newTransport(baseURL, apiKey, client)
	if err != nil {
		return nil, err
	}
	return &Rows{t: t, tokens: tokens}, nil
}

func (r *Rows) bearer(ctx context.Context) (string, error) {
	if r.tokens == nil {
		return "", nil
	}
	return r.tokens.AccessToken(ctx)
}

func (r *Rows) get(ctx context.Context, table string, q url.Values, out any) error {
	token, err := r.bearer(ctx)
	if err != nil {
		return err
	}
	return r.t.do(ctx, request{method: http.MethodGet, path: "/rest/v1/" + table, query: q, bearer: token}, out)
}

func (r *Rows) write(ctx context.Context, method, table string, q url.Values, body any) error {
	token, err := r.bearer(ctx)
	if err != nil {
		return err
	}
	return r.t.do(ctx, request{
		method: method,
		path:   "/rest/v1/" + table,
		query:  q,
		bearer: token,
		prefer: preferMinimal,
		body:   body,
	}, nil)
}

func eq(v string) string { return "eq." + v }

func (r *Rows) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var rows []models.Profile
	q := url.Values{"select": {"*"}, "id": {eq(userID)}, "limit": {"1"}}
	if err := r.get(ctx, "profiles", q, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *Rows) GetRole(ctx context.Context, userID string) (models.Role, error) {
	var rows []struct {
		Role string `json:"role"`
	}
	q := url.Values{"select": {"role"}, "user_id": {eq(userID)}, "order": {"role.desc"}}
	if err := r.get(ctx, "user_roles", q, &rows); err != nil {
		return models.RoleNone, err
	}

	roles := make([]models.Role, 0, len(rows))
	for _, row := range rows {
		role, err := models.ParseRole(row.Role)
		if err != nil {
			return models.RoleNone, err
		}
		roles = append(roles, role)
	}
	return models.HighestRole(roles...), nil
}

func (r *Rows) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) error {
	if update.Empty() {
		return nil
	}
	token, err := r.bearer(ctx)
	if err != nil {
		return err
	}

	// PATCH matching no row still answers 2xx; ask for the row back to tell
	var updated []struct {
		ID string `json:"id"`
	}
	err = r.t.do(ctx, request{
		method: http.MethodPatch,
		path:   "/rest/v1/profiles",
		query:  url.Values{"id": {eq(userID)}, "select": {"id"}},
		bearer: token,
		prefer: preferRepresentation,
		body:   update,
	}, &updated)
	if err != nil {
		return err
	}
	if len(updated) == 0 {
		return fmt.Errorf("profile %s: %w", userID, backend.ErrNotFound)
	}
	return nil
}

type walletRow struct {
	UserID      string    `json:"user_id"`
	Balance     float64   `json:"balance"`
	HeldBalance float64   `json:"held_balance"`
	Currency    string    `json:"currency"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (r *Rows) GetWallet(ctx context.Context, userID string) (*models.Wallet, error) {
	var rows []walletRow
	q := url.Values{"select": {"*"}, "user_id": {eq(userID)}, "limit": {"1"}}
	if err := r.get(ctx, "wallets", q, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	w := rows[0]
	return &models.Wallet{
		UserID:      w.UserID,
		Balance:     models.CentsFromDecimal(w.Balance),
		HeldBalance: models.CentsFromDecimal(w.HeldBalance),
		Currency:    w.Currency,
		UpdatedAt:   w.UpdatedAt,
	}, nil
}

type transactionRow struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	BookingID   string    `json:"booking_id"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (r *Rows) ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	var rows []transactionRow
	q := url.Values{"select": {"*"}, "user_id": {eq(userID)}, "order": {"created_at.desc"}}
	if err := r.get(ctx, "transactions", q, &rows); err != nil {
		return nil, err
	}

	out := make([]models.Transaction, 0, len(rows))
	for _, t := range rows {
		out = append(out, models.Transaction{
			ID:          t.ID,
			UserID:      t.UserID,
			BookingID:   t.BookingID,
			Type:        models.TransactionType(t.Type),
			Amount:      models.CentsFromDecimal(t.Amount),
			Status:      t.Status,
			Description: t.Description,
			CreatedAt:   t.CreatedAt,
		})
	}
	return out, nil
}

type statusLogRow struct {
	ID        string    `json:"id"`
	BookingID string    `json:"booking_id"`
	Status    string    `json:"status"`
	ChangedBy string    `json:"changed_by,omitempty"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

func (r *Rows) ListBookingStatusLogs(ctx context.Context, bookingID string) ([]models.BookingStatusLog, error) {
	var rows []statusLogRow
	q := url.Values{"select": {"*"}, "booking_id": {eq(bookingID)}, "order": {"created_at.asc"}}
	if err := r.get(ctx, "booking_status_logs", q, &rows); err != nil {
		return nil, err
	}

	out := make([]models.BookingStatusLog, 0, len(rows))
	for _, l := range rows {
		out = append(out, models.BookingStatusLog{
			ID:        l.ID,
			BookingID: l.BookingID,
			Status:    models.BookingStatus(l.Status),
			ChangedBy: l.ChangedBy,
			Note:      l.Note,
			CreatedAt: l.CreatedAt,
		})
	}
	return out, nil
}

func (r *Rows) InsertBookingStatusLog(ctx context.Context, entry *models.BookingStatusLog) error {
	return r.write(ctx, http.MethodPost, "booking_status_logs", nil, statusLogRow{
		ID:        entry.ID,
		BookingID: entry.BookingID,
		Status:    string(entry.Status),
		ChangedBy: entry.ChangedBy,
		Note:      entry.Note,
		CreatedAt: entry.CreatedAt,
	})
}

type reviewRow struct {
	ID          string  `json:"id"`
	BookingID   string  `json:"booking_id"`
	ReviewerID  string  `json:"reviewer_id"`
	RevieweeID  string  `json:"reviewee_id"`
	EquipmentID *string `json:"equipment_id"`
	Rating      int     `json:"rating"`
	Comment     *string `json:"comment"`
}

func (r *Rows) InsertReview(ctx context.Context, review *models.Review) error {
	row := reviewRow{
		ID:         review.ID,
		BookingID:  review.BookingID,
		ReviewerID: review.ReviewerID,
		RevieweeID: review.RevieweeID,
		Rating:     review.Rating,
	}
	if review.EquipmentID != "" {
		row.EquipmentID = &review.EquipmentID
	}
	if review.Comment != "" {
		row.Comment = &review.Comment
	}
	return r.write(ctx, http.MethodPost, "reviews", nil, row)
}
