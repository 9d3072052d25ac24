package utils

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Govind-619/TripSphere/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newMockDB opens gorm's postgres dialect on top of sqlmock so the exact
// statements sent to the production database can be asserted
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

const incrementSQL = `UPDATE "trips" SET "current_participants"=current_participants + $1 WHERE id = $2`

func TestIncrementTripParticipantsIsSingleUpdate(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(incrementSQL)).
		WithArgs(3, "trip-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, IncrementTripParticipants(db, "trip-1", 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementTripParticipantsUnknownTrip(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(incrementSQL)).
		WithArgs(2, "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := IncrementTripParticipants(db, "missing", 2)
	assert.ErrorIs(t, err, models.ErrTripNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementTripParticipantsWrapsDriverErrors(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(incrementSQL)).
		WithArgs(1, "trip-1").
		WillReturnError(assert.AnError)

	err := IncrementTripParticipants(db, "trip-1", 1)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, models.ErrTripNotFound)
}

func TestGrantRoleSkipsExistingRole(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "user_roles" WHERE user_id = $1 AND role = $2`)).
		WithArgs("user-1", models.RoleOrganizer).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	require.NoError(t, GrantRole(db, "user-1", models.RoleOrganizer))
	assert.NoError(t, mock.ExpectationsWereMet())
}
