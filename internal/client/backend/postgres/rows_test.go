package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/heavyhire/internal/client/backend"
	"github.com/dmitrijs2005/heavyhire/internal/client/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoreWithMock(t *testing.T) (*RowStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewRowStore(db), mock
}

func TestGetProfile_Found(t *testing.T) {
	store, mock := newStoreWithMock(t)
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	q := `(?s)^SELECT\s+id,\s*COALESCE\(full_name.*FROM\s+profiles\s+WHERE\s+id\s*=\s*\$1$`
	rows := sqlmock.NewRows([]string{"id", "full_name", "phone", "company_name", "avatar_url", "location", "bio", "created_at", "updated_at"}).
		AddRow("u1", "Olga Owner", "", "Diggers Ltd", "", "Riga", "", created, created)
	mock.ExpectQuery(q).WithArgs("u1").WillReturnRows(rows)

	p, err := store.GetProfile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, &models.Profile{
		ID: "u1", FullName: "Olga Owner", CompanyName: "Diggers Ltd", Location: "Riga",
		CreatedAt: created, UpdatedAt: created,
	}, p)
}

func TestGetProfile_NoRow(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectQuery(`FROM\s+profiles`).WithArgs("u2").WillReturnError(sql.ErrNoRows)

	p, err := store.GetProfile(context.Background(), "u2")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestGetProfile_DBError(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectQuery(`FROM\s+profiles`).WithArgs("u1").WillReturnError(errors.New("db down"))

	_, err := store.GetProfile(context.Background(), "u1")
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*db down`), err.Error())
}

func TestGetRole(t *testing.T) {
	q := `(?s)^SELECT\s+user_roles\.role::text\s+FROM\s+user_roles\s+WHERE\s+user_roles\.user_id\s*=\s*\$1\s+ORDER\s+BY\s+user_roles\.role\s+DESC$`

	tests := []struct {
		name    string
		roles   []string
		want    models.Role
		wantErr bool
	}{
		{name: "single", roles: []string{"owner"}, want: models.RoleOwner},
		{name: "unassigned", want: models.RoleNone},
		{name: "admin beats owner", roles: []string{"owner", "admin"}, want: models.RoleAdmin},
		{name: "owner beats contractor", roles: []string{"contractor", "owner"}, want: models.RoleOwner},
		{name: "unknown value", roles: []string{"pilot"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newStoreWithMock(t)
			rows := sqlmock.NewRows([]string{"role"})
			for _, r := range tt.roles {
				rows.AddRow(r)
			}
			mock.ExpectQuery(q).WithArgs("u1").WillReturnRows(rows)

			role, err := store.GetRole(context.Background(), "u1")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, role)
		})
	}
}

func TestUpdateProfile(t *testing.T) {
	name, bio := "New Name", "Excavators since 1999"

	t.Run("updates set columns only", func(t *testing.T) {
		store, mock := newStoreWithMock(t)
		q := `^UPDATE profiles SET full_name = \$1, bio = \$2, updated_at = now\(\) WHERE id = \$3$`
		mock.ExpectExec(q).WithArgs(name, bio, "u1").WillReturnResult(sqlmock.NewResult(0, 1))

		err := store.UpdateProfile(context.Background(), "u1", models.ProfileUpdate{FullName: &name, Bio: &bio})
		require.NoError(t, err)
	})

	t.Run("missing row", func(t *testing.T) {
		store, mock := newStoreWithMock(t)
		mock.ExpectExec(`^UPDATE profiles`).WithArgs(name, "u9").WillReturnResult(sqlmock.NewResult(0, 0))

		err := store.UpdateProfile(context.Background(), "u9", models.ProfileUpdate{FullName: &name})
		assert.ErrorIs(t, err, backend.ErrNotFound)
	})

	t.Run("empty update is a no-op", func(t *testing.T) {
		store, _ := newStoreWithMock(t)
		require.NoError(t, store.UpdateProfile(context.Background(), "u1", models.ProfileUpdate{}))
	})
}

func TestGetWallet(t *testing.T) {
	store, mock := newStoreWithMock(t)
	updated := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	q := `(?s)^SELECT\s+user_id,\s*\(balance \* 100\)::bigint,\s*\(held_balance \* 100\)::bigint,\s*currency,\s*updated_at\s+FROM\s+wallets\s+WHERE\s+user_id\s*=\s*\$1$`
	mock.ExpectQuery(q).WithArgs("u1").WillReturnRows(
		sqlmock.NewRows([]string{"user_id", "balance", "held_balance", "currency", "updated_at"}).
			AddRow("u1", int64(125050), int64(30000), "EUR", updated))

	w, err := store.GetWallet(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(95050), w.Available())
	assert.Equal(t, "EUR", w.Currency)

	mock.ExpectQuery(`FROM\s+wallets`).WithArgs("u2").WillReturnError(sql.ErrNoRows)
	w, err = store.GetWallet(context.Background(), "u2")
	require.NoError(t, err)
	assert.Nil(t, w)
}

func TestListTransactions(t *testing.T) {
	store, mock := newStoreWithMock(t)
	t1 := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	q := `(?s)FROM\s+transactions\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC$`
	mock.ExpectQuery(q).WithArgs("u1").WillReturnRows(
		sqlmock.NewRows([]string{"id", "user_id", "booking_id", "type", "amount", "status", "description", "created_at"}).
			AddRow("t2", "u1", "b1", "hold", int64(30000), "completed", "Booking hold", t2).
			AddRow("t1", "u1", "", "deposit", int64(125050), "completed", "", t1))

	txs, err := store.ListTransactions(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, models.TransactionHold, txs[0].Type)
	assert.Equal(t, "b1", txs[0].BookingID)
	assert.Equal(t, int64(125050), txs[1].Amount)
}

func TestListTransactions_RowsError(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectQuery(`FROM\s+transactions`).WithArgs("u1").WillReturnRows(
		sqlmock.NewRows([]string{"id", "user_id", "booking_id", "type", "amount", "status", "description", "created_at"}).
			AddRow("t1", "u1", "", "deposit", int64(1), "completed", "", time.Now()).
			RowError(0, errors.New("iter boom")))

	_, err := store.ListTransactions(context.Background(), "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "iter boom")
}

func TestBookingStatusLogs(t *testing.T) {
	store, mock := newStoreWithMock(t)
	created := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)FROM\s+booking_status_logs\s+WHERE\s+booking_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+ASC$`).
		WithArgs("b1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "status", "changed_by", "note", "created_at"}).
			AddRow("l1", "b1", "pending", "", "", created).
			AddRow("l2", "b1", "confirmed", "u1", "approved", created.Add(time.Minute)))

	logs, err := store.ListBookingStatusLogs(context.Background(), "b1")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, models.BookingConfirmed, logs[1].Status)
	assert.Equal(t, "u1", logs[1].ChangedBy)

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+booking_status_logs\s*\(id,\s*booking_id,\s*status,\s*changed_by,\s*note\)`).
		WithArgs("l3", "b1", "active", "u1", "").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = store.InsertBookingStatusLog(context.Background(), &models.BookingStatusLog{ID: "l3", BookingID: "b1", Status: models.BookingActive, ChangedBy: "u1"})
	require.NoError(t, err)
}

func TestInsertReview(t *testing.T) {
	q := `(?s)^INSERT\s+INTO\s+reviews\s*\(id,\s*booking_id,\s*reviewer_id,\s*reviewee_id,\s*equipment_id,\s*rating,\s*comment\)`
	review := &models.Review{ID: "r1", BookingID: "b1", ReviewerID: "u1", RevieweeID: "u9", Rating: 5, Comment: "smooth rental"}

	t.Run("ok", func(t *testing.T) {
		store, mock := newStoreWithMock(t)
		mock.ExpectExec(q).WithArgs("r1", "b1", "u1", "u9", "", 5, "smooth rental").WillReturnResult(sqlmock.NewResult(0, 1))
		require.NoError(t, store.InsertReview(context.Background(), review))
	})

	t.Run("duplicate review is rejected", func(t *testing.T) {
		store, mock := newStoreWithMock(t)
		mock.ExpectExec(q).WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value"})

		err := store.InsertReview(context.Background(), review)
		assert.ErrorIs(t, err, backend.ErrRejected)
	})

	t.Run("row level security", func(t *testing.T) {
		store, mock := newStoreWithMock(t)
		mock.ExpectExec(q).WillReturnError(&pgconn.PgError{Code: "42501", Message: "permission denied"})

		err := store.InsertReview(context.Background(), review)
		assert.ErrorIs(t, err, backend.ErrUnauthorized)
	})
}

func TestMapError(t *testing.T) {
	assert.ErrorIs(t, mapError(&pgconn.PgError{Code: "08006"}), backend.ErrUnavailable)
	assert.ErrorIs(t, mapError(sql.ErrConnDone), backend.ErrUnavailable)

	err := mapError(errors.New("plain"))
	assert.EqualError(t, err, "db error: plain")
	assert.NotErrorIs(t, err, backend.ErrUnavailable)
}
