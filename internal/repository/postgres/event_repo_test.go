package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventbooking/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, 7, 1, 19, 0, 0, 0, time.UTC)
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		event   *domain.Event
		mock    func(mock sqlmock.Sqlmock)
		wantID  int64
		wantErr bool
	}{
		{
			name:  "success",
			event: &domain.Event{Name: "Concert", Venue: "Main Hall", Date: date, TotalCapacity: 100, CreatedAt: created},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events \(name, venue, date, total_capacity, created_at\)`).
					WithArgs("Concert", "Main Hall", date, 100, created).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
			},
			wantID:  1,
			wantErr: false,
		},
		{
			name:  "db error",
			event: &domain.Event{Name: "Concert", Venue: "Main Hall", Date: date, TotalCapacity: 100, CreatedAt: created},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			err = repo.Create(ctx, tt.event)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.event.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, 7, 1, 19, 0, 0, 0, time.UTC)
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		id      int64
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Event
		wantErr error
	}{
		{
			name: "success",
			id:   1,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, venue, date, total_capacity, created_at`).
					WithArgs(int64(1)).
					WillReturnRows(sqlmock.NewRows([]string{"id", "name", "venue", "date", "total_capacity", "created_at"}).
						AddRow(int64(1), "Concert", "Main Hall", date, 100, created))
			},
			want: &domain.Event{ID: 1, Name: "Concert", Venue: "Main Hall", Date: date, TotalCapacity: 100, CreatedAt: created},
		},
		{
			name: "not found",
			id:   99,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, venue, date, total_capacity, created_at`).
					WithArgs(int64(99)).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			got, err := repo.GetByID(ctx, tt.id)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_List(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, 7, 1, 19, 0, 0, 0, time.UTC)
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cols := []string{"id", "name", "venue", "date", "total_capacity", "created_at"}

	t.Run("no filter", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, name, venue, date, total_capacity, created_at`).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(int64(1), "Concert", "Main Hall", date, 100, created).
				AddRow(int64(2), "Expo", "Annex", date, 50, created))

		repo := NewEventRepository(db)
		got, err := repo.List(ctx, domain.EventFilter{})
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("name and venue filter", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`WHERE name ILIKE \$1 AND venue ILIKE \$2`).
			WithArgs("%Conc%", "%Hall%").
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(int64(1), "Concert", "Main Hall", date, 100, created))

		repo := NewEventRepository(db)
		got, err := repo.List(ctx, domain.EventFilter{Name: "Conc", Venue: "Hall"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "Concert", got[0].Name)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty result", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, name, venue, date, total_capacity, created_at`).
			WillReturnRows(sqlmock.NewRows(cols))

		repo := NewEventRepository(db)
		got, err := repo.List(ctx, domain.EventFilter{})
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Empty(t, got)
	})
}
