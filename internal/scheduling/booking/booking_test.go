package booking

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sunfieldhq/solarops-backend/pkg/db/models"
	"github.com/sunfieldhq/solarops-backend/pkg/enums"
	pkgerrors "github.com/sunfieldhq/solarops-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:booking_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AvailabilitySlot{}, &models.TimeWindow{}))
	return db
}

func seedSlot(t *testing.T, db *gorm.DB, installerID uuid.UUID, date string, windows ...models.TimeWindow) models.AvailabilitySlot {
	t.Helper()
	slot := models.AvailabilitySlot{
		ID:          uuid.New(),
		InstallerID: installerID,
		Date:        date,
		CrewSize:    3,
	}
	require.NoError(t, db.Create(&slot).Error)
	for i := range windows {
		windows[i].ID = uuid.New()
		windows[i].SlotID = slot.ID
		windows[i].Position = i
		if windows[i].Status == "" {
			windows[i].Status = enums.WindowStatusAvailable
		}
		require.NoError(t, db.Create(&windows[i]).Error)
	}
	return slot
}

func TestBookClaimsExactWindow(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	installerID := uuid.New()
	projectID := uuid.New()
	seedSlot(t, db, installerID, "2026-09-01",
		models.TimeWindow{StartTime: "08:00", EndTime: "12:00"},
		models.TimeWindow{StartTime: "13:00", EndTime: "17:00"},
	)

	err := db.Transaction(func(tx *gorm.DB) error {
		window, err := Book(context.Background(), tx, Request{
			InstallerID: installerID,
			Date:        "2026-09-01",
			WindowStart: "13:00",
			WindowEnd:   "17:00",
			ProjectID:   projectID,
		})
		require.NoError(t, err)
		assert.Equal(t, "13:00", window.StartTime)
		assert.Equal(t, enums.WindowStatusBooked, window.Status)
		return nil
	})
	require.NoError(t, err)

	var booked models.TimeWindow
	require.NoError(t, db.First(&booked, "start_time = ?", "13:00").Error)
	assert.Equal(t, enums.WindowStatusBooked, booked.Status)
	require.NotNil(t, booked.BoundProjectID)
	assert.Equal(t, projectID, *booked.BoundProjectID)

	var untouched models.TimeWindow
	require.NoError(t, db.First(&untouched, "start_time = ?", "08:00").Error)
	assert.Equal(t, enums.WindowStatusAvailable, untouched.Status)
}

func TestBookFallsBackToFirstAvailable(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	installerID := uuid.New()
	seedSlot(t, db, installerID, "2026-09-02",
		models.TimeWindow{StartTime: "08:00", EndTime: "12:00", Status: enums.WindowStatusBooked},
		models.TimeWindow{StartTime: "13:00", EndTime: "17:00"},
	)

	err := db.Transaction(func(tx *gorm.DB) error {
		window, err := Book(context.Background(), tx, Request{
			InstallerID: installerID,
			Date:        "2026-09-02",
			ProjectID:   uuid.New(),
		})
		require.NoError(t, err)
		assert.Equal(t, "13:00", window.StartTime)
		return nil
	})
	require.NoError(t, err)
}

func TestBookConflictWhenWindowTaken(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	installerID := uuid.New()
	seedSlot(t, db, installerID, "2026-09-03",
		models.TimeWindow{StartTime: "08:00", EndTime: "12:00"},
	)

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := Book(context.Background(), tx, Request{
			InstallerID: installerID,
			Date:        "2026-09-03",
			ProjectID:   uuid.New(),
		})
		return err
	})
	require.NoError(t, err)

	err = db.Transaction(func(tx *gorm.DB) error {
		_, err := Book(context.Background(), tx, Request{
			InstallerID: installerID,
			Date:        "2026-09-03",
			ProjectID:   uuid.New(),
		})
		return err
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestBookUnknownInstallerDay(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := Book(context.Background(), tx, Request{
			InstallerID: uuid.New(),
			Date:        "2026-09-04",
			ProjectID:   uuid.New(),
		})
		return err
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestReleaseReturnsWindowAndIsIdempotent(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	installerID := uuid.New()
	projectID := uuid.New()
	seedSlot(t, db, installerID, "2026-09-05",
		models.TimeWindow{StartTime: "08:00", EndTime: "12:00"},
	)

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := Book(context.Background(), tx, Request{
			InstallerID: installerID,
			Date:        "2026-09-05",
			ProjectID:   projectID,
		})
		return err
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		err = db.Transaction(func(tx *gorm.DB) error {
			return Release(context.Background(), tx, installerID, "2026-09-05", projectID)
		})
		require.NoError(t, err)
	}

	var window models.TimeWindow
	require.NoError(t, db.First(&window, "start_time = ?", "08:00").Error)
	assert.Equal(t, enums.WindowStatusAvailable, window.Status)
	assert.Nil(t, window.BoundProjectID)
}

func TestReleaseOtherProjectBookingUntouched(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	installerID := uuid.New()
	owner := uuid.New()
	seedSlot(t, db, installerID, "2026-09-06",
		models.TimeWindow{StartTime: "08:00", EndTime: "12:00"},
	)

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := Book(context.Background(), tx, Request{
			InstallerID: installerID,
			Date:        "2026-09-06",
			ProjectID:   owner,
		})
		return err
	})
	require.NoError(t, err)

	err = db.Transaction(func(tx *gorm.DB) error {
		return Release(context.Background(), tx, installerID, "2026-09-06", uuid.New())
	})
	require.NoError(t, err)

	var window models.TimeWindow
	require.NoError(t, db.First(&window, "start_time = ?", "08:00").Error)
	assert.Equal(t, enums.WindowStatusBooked, window.Status)
}
