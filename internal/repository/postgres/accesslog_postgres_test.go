package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinicdocs/internal/model"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var accessLogColumns = []string{"id", "clinic_id", "requested_by", "allowed", "decision_reason", "requested_at"}

func TestAccessLogPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewAccessLogPostgres(db)

	entry := &model.AccessLog{
		ClinicID:       "c1",
		RequestedBy:    "12345678",
		Allowed:        true,
		DecisionReason: "policy",
	}

	rows := sqlmock.NewRows(accessLogColumns).
		AddRow(int64(1), entry.ClinicID, entry.RequestedBy, entry.Allowed, entry.DecisionReason, time.Now())

	mock.ExpectQuery("INSERT INTO clinical_history_access_logs").
		WithArgs(entry.ClinicID, entry.RequestedBy, entry.Allowed, entry.DecisionReason).
		WillReturnRows(rows)

	out, err := repo.Create(context.Background(), entry)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.ID)
	assert.False(t, out.RequestedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessLogPostgres_Create_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewAccessLogPostgres(db)

	mock.ExpectQuery("INSERT INTO clinical_history_access_logs").
		WillReturnError(errors.New("insert failed"))

	out, err := repo.Create(context.Background(), &model.AccessLog{ClinicID: "c1"})

	assert.Error(t, err)
	assert.Nil(t, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessLogPostgres_ListByClinic(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewAccessLogPostgres(db)

	rows := sqlmock.NewRows(accessLogColumns).
		AddRow(int64(2), "c1", "11111111", false, "denied-by-policy", time.Now()).
		AddRow(int64(1), "c1", "22222222", true, "", time.Now())

	mock.ExpectQuery("SELECT (.+) FROM clinical_history_access_logs").
		WithArgs("c1").
		WillReturnRows(rows)

	entries, err := repo.ListByClinic(context.Background(), "c1")

	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, int64(2), entries[0].ID)
	assert.False(t, entries[0].Allowed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
