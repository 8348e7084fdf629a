package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xblade/league-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// These tests pin the SQL shape of the membership primitives against a
// mocked postgres connection: the add has to be a single conditional
// insert, not a check-then-insert, and the cross-membership count has to
// exclude the doomed season set in the query itself.

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestAddClub_SingleConditionalInsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMembershipRepository(db)

	mock.ExpectQuery(`INSERT INTO "season_clubs" .+ ON CONFLICT \("season_id","club_id"\) DO NOTHING RETURNING "id"`).
		WithArgs(uint64(1), uint64(2), true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))

	sc := &models.SeasonClub{SeasonID: 1, ClubID: 2, Assigned: true}
	created, err := repo.AddClub(sc)
	require.NoError(t, err)

	assert.True(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddClub_ConflictFetchesExistingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMembershipRepository(db)

	// DO NOTHING returns no row on conflict; the existing row is then read
	mock.ExpectQuery(`INSERT INTO "season_clubs" .+ ON CONFLICT \("season_id","club_id"\) DO NOTHING RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "season_clubs" WHERE season_id = \$1 AND club_id = \$2`).
		WithArgs(uint64(1), uint64(2), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "season_id", "club_id", "assigned"}).
			AddRow(10, 1, 2, true))

	sc := &models.SeasonClub{SeasonID: 1, ClubID: 2, Assigned: true}
	created, err := repo.AddClub(sc)
	require.NoError(t, err)

	assert.False(t, created)
	assert.Equal(t, uint64(10), sc.ID)
	assert.True(t, sc.Assigned)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveClub_ReportsMissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMembershipRepository(db)

	mock.ExpectExec(`DELETE FROM "season_clubs" WHERE season_id = \$1 AND club_id = \$2`).
		WithArgs(uint64(1), uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	removed, err := repo.RemoveClub(1, 2)
	require.NoError(t, err)

	assert.False(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountClubMembershipsOutside_ExcludesSeasonSet(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMembershipRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "season_clubs" WHERE club_id = \$1 AND season_id NOT IN \(\$2,\$3\)`).
		WithArgs(uint64(7), uint64(1), uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	count, err := repo.CountClubMembershipsOutside(7, []uint64{1, 2})
	require.NoError(t, err)

	assert.Equal(t, int64(1), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountPlayerMembershipsOutside_EmptyExclusionCountsAll(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMembershipRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "season_players" WHERE player_id = \$1`).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountPlayerMembershipsOutside(7, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
