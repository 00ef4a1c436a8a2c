package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/heavyhire/internal/client/backend"
	"github.com/dmitrijs2005/heavyhire/internal/client/models"
	"github.com/dmitrijs2005/heavyhire/internal/dbx"
)

type RowStore struct {
	db dbx.DBTX
}

var _ backend.RowStore = (*RowStore)(nil)

func NewRowStore(db dbx.DBTX) *RowStore {
	return &RowStore{db: db}
}

func (r *RowStore) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	query :=
		`SELECT id, COALESCE(full_name, ''), COALESCE(phone, ''), COALESCE(company_name, ''),
		        COALESCE(avatar_url, ''), COALESCE(location, ''), COALESCE(bio, ''),
		        created_at, updated_at
		 FROM profiles
		 WHERE id = $1`

	p := &models.Profile{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.ID, &p.FullName, &p.Phone, &p.CompanyName,
		&p.AvatarURL, &p.Location, &p.Bio,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(err)
	}
	return p, nil
}

// GetRole returns the highest role when a user holds several.
func (r *RowStore) GetRole(ctx context.Context, userID string) (models.Role, error) {
	query :=
		`SELECT user_roles.role::text FROM user_roles
		 WHERE user_roles.user_id = $1
		 ORDER BY user_roles.role DESC`

	roles, err := dbx.QueryAll(ctx, r.db, scanRole, query, userID)
	if err != nil {
		return models.RoleNone, mapError(err)
	}
	return models.HighestRole(roles...), nil
}

func scanRole(rows *sql.Rows) (models.Role, error) {
	var s string
	if err := rows.Scan(&s); err != nil {
		return models.RoleNone, err
	}
	return models.ParseRole(s)
}

func (r *RowStore) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) error {
	cols, args := update.Columns()
	if len(cols) == 0 {
		return nil
	}

	sets := make([]string, 0, len(cols)+1)
	for i, c := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", c, i+1))
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, userID)

	query := fmt.Sprintf(`UPDATE profiles SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if n == 0 {
		return fmt.Errorf("profile %s: %w", userID, backend.ErrNotFound)
	}
	return nil
}

func (r *RowStore) GetWallet(ctx context.Context, userID string) (*models.Wallet, error) {
	query :=
		`SELECT user_id, (balance * 100)::bigint, (held_balance * 100)::bigint, currency, updated_at
		 FROM wallets
		 WHERE user_id = $1`

	w := &models.Wallet{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&w.UserID, &w.Balance, &w.HeldBalance, &w.Currency, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(err)
	}
	return w, nil
}

func (r *RowStore) ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	query :=
		`SELECT id, user_id, COALESCE(booking_id::text, ''), type, (amount * 100)::bigint,
		        status, COALESCE(description, ''), created_at
		 FROM transactions
		 WHERE user_id = $1
		 ORDER BY created_at DESC`

	result, err := dbx.QueryAll(ctx, r.db, scanTransaction, query, userID)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

func scanTransaction(rows *sql.Rows) (models.Transaction, error) {
	var t models.Transaction
	var typ string
	err := rows.Scan(&t.ID, &t.UserID, &t.BookingID, &typ, &t.Amount, &t.Status, &t.Description, &t.CreatedAt)
	t.Type = models.TransactionType(typ)
	return t, err
}

func (r *RowStore) ListBookingStatusLogs(ctx context.Context, bookingID string) ([]models.BookingStatusLog, error) {
	query :=
		`SELECT id, booking_id, status, COALESCE(changed_by::text, ''), COALESCE(note, ''), created_at
		 FROM booking_status_logs
		 WHERE booking_id = $1
		 ORDER BY created_at ASC`

	result, err := dbx.QueryAll(ctx, r.db, scanStatusLog, query, bookingID)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

func scanStatusLog(rows *sql.Rows) (models.BookingStatusLog, error) {
	var l models.BookingStatusLog
	var status string
	err := rows.Scan(&l.ID, &l.BookingID, &status, &l.ChangedBy, &l.Note, &l.CreatedAt)
	l.Status = models.BookingStatus(status)
	return l, err
}

func (r *RowStore) InsertBookingStatusLog(ctx context.Context, entry *models.BookingStatusLog) error {
	query :=
		`INSERT INTO booking_status_logs (id, booking_id, status, changed_by, note)
		 VALUES ($1, $2, $3, NULLIF($4, '')::uuid, NULLIF($5, ''))`

	_, err := r.db.ExecContext(ctx, query, entry.ID, entry.BookingID, string(entry.Status), entry.ChangedBy, entry.Note)
	if err != nil {
		return mapError(err)
	}
	return nil
}

func (r *RowStore) InsertReview(ctx context.Context, review *models.Review) error {
	query :=
		`INSERT INTO reviews (id, booking_id, reviewer_id, reviewee_id, equipment_id, rating, comment)
		 VALUES ($1, $2, $3, $4, NULLIF($5, '')::uuid, $6, NULLIF($7, ''))`

	_, err := r.db.ExecContext(ctx, query,
		review.ID, review.BookingID, review.ReviewerID, review.RevieweeID,
		review.EquipmentID, review.Rating, review.Comment)
	if err != nil {
		return mapError(err)
	}
	return nil
}
