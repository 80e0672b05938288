package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventbooking/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		user    *domain.User
		mock    func(mock sqlmock.Sqlmock)
		wantID  int64
		wantErr error
	}{
		{
			name: "success",
			user: &domain.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "hash", Role: domain.RoleUser, CreatedAt: created},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users \(name, email, password_hash, role, created_at\)`).
					WithArgs("Alice", "alice@example.com", "hash", domain.RoleUser, created).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
			},
			wantID: 1,
		},
		{
			name: "duplicate email",
			user: &domain.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "hash", Role: domain.RoleUser, CreatedAt: created},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: domain.ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewUserRepository(db)
			err = repo.Create(ctx, tt.user)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.user.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cols := []string{"id", "name", "email", "password_hash", "role", "created_at"}

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, name, email, password_hash, role, created_at`).
			WithArgs("alice@example.com").
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(int64(1), "Alice", "alice@example.com", "hash", "admin", created))

		repo := NewUserRepository(db)
		got, err := repo.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, int64(1), got.ID)
		require.Equal(t, domain.RoleAdmin, got.Role)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, name, email, password_hash, role, created_at`).
			WithArgs("missing@example.com").
			WillReturnError(sql.ErrNoRows)

		repo := NewUserRepository(db)
		got, err := repo.GetByEmail(ctx, "missing@example.com")
		require.ErrorIs(t, err, domain.ErrUserNotFound)
		require.Nil(t, got)
	})
}

func TestUserRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cols := []string{"id", "name", "email", "password_hash", "role", "created_at"}

	t.Run("unknown role falls back to public", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, name, email, password_hash, role, created_at`).
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(int64(2), "Bob", "bob@example.com", "hash", "superuser", created))

		repo := NewUserRepository(db)
		got, err := repo.GetByID(ctx, 2)
		require.NoError(t, err)
		require.Equal(t, domain.RolePublic, got.Role)
	})
}
