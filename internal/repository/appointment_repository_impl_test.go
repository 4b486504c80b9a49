package repository

import (
	"context"
	"testing"

	"medconnect/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentRepository_UpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
	}{
		{name: "status still matches", affected: 1},
		{name: "changed concurrently", affected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewAppointmentRepository()
			id := uuid.New()

			mock.ExpectBegin()
			mock.ExpectExec(`UPDATE "appointments" SET .* WHERE id = \$\d+ AND status = \$\d+`).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))
			mock.ExpectCommit()

			rows, err := repo.UpdateStatus(context.Background(), db, id,
				entity.AppointmentStatusPending, entity.AppointmentStatusCancelled, "sick")
			require.NoError(t, err)
			assert.Equal(t, tt.affected, rows)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAppointmentRepository_CountByStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()

	mock.ExpectQuery(`SELECT status, COUNT\(\*\) AS count FROM "appointments"`).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("pending", 3).
			AddRow("completed", 7))

	counts, err := repo.CountByStatus(context.Background(), db, nil)
	require.NoError(t, err)
	assert.Equal(t, []entity.StatusCount{{Status: "pending", Count: 3}, {Status: "completed", Count: 7}}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()

	mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	appointment, err := repo.FindByID(context.Background(), db, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, appointment)
}
