package repositories

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"aeroclub/flightdesk/internal/constants"
	"aeroclub/flightdesk/internal/models/entities"
	gormModels "aeroclub/flightdesk/internal/models/gorm"
)

// The conflict queries run against Postgres in production. To pin the
// predicate itself, the test rewrites the positional parameters to named
// ones and drops the uuid cast; the WHERE clause runs unchanged on the
// sqlite test database.
func conflictQueryForTest(q string) string {
	q = strings.ReplaceAll(q, "$5::uuid", "@exclude")
	for _, sub := range [][2]string{
		{"$1", "@org"}, {"$2", "@resource"}, {"$3", "@from"}, {"$4", "@to"}, {"$5", "@exclude"},
	} {
		q = strings.ReplaceAll(q, sub[0], sub[1])
	}
	return q
}

func runConflictQuery(t *testing.T, db *gorm.DB, query, orgID, resourceID string,
	from, to time.Time, excludeID *string) []entities.BookingRow {
	t.Helper()

	var exclude interface{}
	if excludeID != nil {
		exclude = *excludeID
	}

	var rows []entities.BookingRow
	err := db.Raw(conflictQueryForTest(query),
		sql.Named("org", orgID),
		sql.Named("resource", resourceID),
		sql.Named("from", from),
		sql.Named("to", to),
		sql.Named("exclude", exclude),
	).Scan(&rows).Error
	require.NoError(t, err)
	return rows
}

type conflictFixture struct {
	db           *gorm.DB
	orgID        string
	aircraftID   string
	instructorID string
	blockerID    string
}

func newConflictFixture(t *testing.T) *conflictFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&gormModels.Organization{},
		&gormModels.User{},
		&gormModels.Aircraft{},
		&gormModels.Booking{},
	))

	org := &gormModels.Organization{Name: "Test Aero Club", Code: "TAC"}
	require.NoError(t, db.Create(org).Error)

	f := &conflictFixture{
		db:           db,
		orgID:        org.ID,
		aircraftID:   "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa",
		instructorID: "11111111-1111-1111-1111-111111111111",
	}

	// The blocker holds VH-ABC and the instructor 10:00 to 11:00. Status is
	// stored in legacy upper case to exercise the lower() comparison.
	blocker := &gormModels.Booking{
		OrganizationID: org.ID,
		StartTime:      time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
		EndTime:        time.Date(2026, 3, 14, 11, 0, 0, 0, time.UTC),
		Type:           "flight",
		Status:         "CONFIRMED",
		AircraftID:     &f.aircraftID,
		InstructorID:   &f.instructorID,
	}
	require.NoError(t, db.Create(blocker).Error)
	f.blockerID = blocker.ID

	// A pending booking on the same aircraft and slot never blocks.
	pending := &gormModels.Booking{
		OrganizationID: org.ID,
		StartTime:      time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
		EndTime:        time.Date(2026, 3, 14, 11, 0, 0, 0, time.UTC),
		Type:           "flight",
		Status:         "pending",
		AircraftID:     &f.aircraftID,
	}
	require.NoError(t, db.Create(pending).Error)

	return f
}

func TestAircraftConflictQueryClosedInterval(t *testing.T) {
	f := newConflictFixture(t)
	day := func(hour, min int) time.Time {
		return time.Date(2026, 3, 14, hour, min, 0, 0, time.UTC)
	}

	cases := []struct {
		name string
		from time.Time
		to   time.Time
		hits int
	}{
		{"inside the blocker", day(10, 15), day(10, 45), 1},
		{"starts where the blocker ends", day(11, 0), day(12, 0), 1},
		{"ends where the blocker starts", day(9, 0), day(10, 0), 1},
		{"one minute after the blocker", day(11, 1), day(12, 0), 0},
		{"one minute before the blocker", day(8, 0), day(9, 59), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rows := runConflictQuery(t, f.db, constants.FindAircraftConflicts,
				f.orgID, f.aircraftID, tc.from, tc.to, nil)
			require.Len(t, rows, tc.hits)
			if tc.hits > 0 {
				assert.Equal(t, f.blockerID, rows[0].ID, "only the confirmed booking blocks")
			}
		})
	}
}

func TestAircraftConflictQueryScoping(t *testing.T) {
	f := newConflictFixture(t)
	from := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	to := time.Date(2026, 3, 14, 11, 30, 0, 0, time.UTC)

	rows := runConflictQuery(t, f.db, constants.FindAircraftConflicts,
		f.orgID, "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb", from, to, nil)
	assert.Empty(t, rows, "another aircraft is free")

	rows = runConflictQuery(t, f.db, constants.FindAircraftConflicts,
		"99999999-9999-9999-9999-999999999999", f.aircraftID, from, to, nil)
	assert.Empty(t, rows, "another organization never sees the blocker")
}

func TestAircraftConflictQueryExcludesEditedBooking(t *testing.T) {
	f := newConflictFixture(t)
	from := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	to := time.Date(2026, 3, 14, 11, 30, 0, 0, time.UTC)

	rows := runConflictQuery(t, f.db, constants.FindAircraftConflicts,
		f.orgID, f.aircraftID, from, to, &f.blockerID)
	assert.Empty(t, rows, "a booking must not conflict with itself while being moved")
}

func TestInstructorConflictQueryClosedInterval(t *testing.T) {
	f := newConflictFixture(t)

	rows := runConflictQuery(t, f.db, constants.FindInstructorConflicts,
		f.orgID, f.instructorID,
		time.Date(2026, 3, 14, 11, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		nil)
	require.Len(t, rows, 1, "a back-to-back slot needs a gap for the handover")
	assert.Equal(t, f.blockerID, rows[0].ID)

	rows = runConflictQuery(t, f.db, constants.FindInstructorConflicts,
		f.orgID, f.instructorID,
		time.Date(2026, 3, 14, 11, 1, 0, 0, time.UTC),
		time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		nil)
	assert.Empty(t, rows)
}
