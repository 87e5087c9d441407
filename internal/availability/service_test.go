package availability

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sunfieldhq/solarops-backend/internal/projects"
	"github.com/sunfieldhq/solarops-backend/pkg/db/models"
	"github.com/sunfieldhq/solarops-backend/pkg/enums"
	pkgerrors "github.com/sunfieldhq/solarops-backend/pkg/errors"
	"github.com/sunfieldhq/solarops-backend/pkg/logger"
	"github.com/sunfieldhq/solarops-backend/pkg/outbox"
)

type testTxRunner struct {
	db *gorm.DB
}

func (r *testTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(tx)
	})
}

func newAvailabilityHarness(t *testing.T) (*gorm.DB, Service, uuid.UUID) {
	t.Helper()
	dsn := "file:availability_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Installer{},
		&models.AvailabilitySlot{},
		&models.TimeWindow{},
		&models.OutboxEvent{},
	))

	installer := models.Installer{ID: uuid.New(), Name: "Solstice Installs"}
	require.NoError(t, db.Create(&installer).Error)

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	ob := outbox.NewService(outbox.NewRepository(db), logg)
	svc, err := NewService(NewRepository(db), projects.NewRepository(db), &testTxRunner{db: db}, ob, logg)
	require.NoError(t, err)
	return db, svc, installer.ID
}

func windowInputs(spans ...[2]string) []WindowInput {
	out := make([]WindowInput, len(spans))
	for i, span := range spans {
		out[i] = WindowInput{Start: span[0], End: span[1]}
	}
	return out
}

func errCode(t *testing.T, err error) pkgerrors.Code {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	return typed.Code()
}

func TestSetCreatesInstallerDay(t *testing.T) {
	t.Parallel()

	db, svc, installerID := newAvailabilityHarness(t)

	slot, err := svc.Set(context.Background(), SetInput{
		InstallerID:      installerID,
		Date:             "2026-09-01",
		Windows:          windowInputs([2]string{"08:00", "12:00"}, [2]string{"13:00", "17:00"}),
		CrewSize:         3,
		ServiceAreaMiles: 50,
		Equipment:        []string{"crane"},
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-09-01", slot.Date)
	assert.Equal(t, 3, slot.CrewSize)
	require.Len(t, slot.Windows, 2)
	assert.Equal(t, enums.WindowStatusAvailable, slot.Windows[0].Status)
	assert.Equal(t, 0, slot.Windows[0].Position)
	assert.Equal(t, 1, slot.Windows[1].Position)

	var events []models.OutboxEvent
	require.NoError(t, db.Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, enums.EventAvailabilityChanged, events[0].EventType)
	assert.Equal(t, slot.ID, events[0].AggregateID)
}

func TestSetReplacesExistingDay(t *testing.T) {
	t.Parallel()

	db, svc, installerID := newAvailabilityHarness(t)

	_, err := svc.Set(context.Background(), SetInput{
		InstallerID: installerID,
		Date:        "2026-09-01",
		Windows:     windowInputs([2]string{"08:00", "12:00"}),
		CrewSize:    2,
	})
	require.NoError(t, err)

	slot, err := svc.Set(context.Background(), SetInput{
		InstallerID: installerID,
		Date:        "2026-09-01",
		Windows:     windowInputs([2]string{"07:00", "11:00"}, [2]string{"12:00", "16:00"}),
		CrewSize:    4,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, slot.CrewSize)
	require.Len(t, slot.Windows, 2)
	assert.Equal(t, "07:00", slot.Windows[0].StartTime)

	var count int64
	require.NoError(t, db.Model(&models.TimeWindow{}).Count(&count).Error)
	assert.Equal(t, int64(2), count, "old windows removed")

	var slots int64
	require.NoError(t, db.Model(&models.AvailabilitySlot{}).Count(&slots).Error)
	assert.Equal(t, int64(1), slots, "upsert keeps one row per installer-day")
}

func TestSetRejectsBookedDayWithoutForce(t *testing.T) {
	t.Parallel()

	db, svc, installerID := newAvailabilityHarness(t)

	slot, err := svc.Set(context.Background(), SetInput{
		InstallerID: installerID,
		Date:        "2026-09-01",
		Windows:     windowInputs([2]string{"08:00", "12:00"}),
		CrewSize:    2,
	})
	require.NoError(t, err)

	projectID := uuid.New()
	require.NoError(t, db.Model(&models.TimeWindow{}).
		Where("slot_id = ?", slot.ID).
		Updates(map[string]any{"status": enums.WindowStatusBooked, "bound_project_id": projectID}).Error)

	_, err = svc.Set(context.Background(), SetInput{
		InstallerID: installerID,
		Date:        "2026-09-01",
		Windows:     windowInputs([2]string{"09:00", "13:00"}),
		CrewSize:    2,
	})
	assert.Equal(t, pkgerrors.CodeConflict, errCode(t, err))

	var window models.TimeWindow
	require.NoError(t, db.First(&window, "slot_id = ?", slot.ID).Error)
	assert.Equal(t, enums.WindowStatusBooked, window.Status, "booking survives rejected rewrite")
}

func TestSetForceReleasesBookedDay(t *testing.T) {
	t.Parallel()

	db, svc, installerID := newAvailabilityHarness(t)

	slot, err := svc.Set(context.Background(), SetInput{
		InstallerID: installerID,
		Date:        "2026-09-01",
		Windows:     windowInputs([2]string{"08:00", "12:00"}),
		CrewSize:    2,
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.TimeWindow{}).
		Where("slot_id = ?", slot.ID).
		Updates(map[string]any{"status": enums.WindowStatusBooked, "bound_project_id": uuid.New()}).Error)

	refreshed, err := svc.Set(context.Background(), SetInput{
		InstallerID: installerID,
		Date:        "2026-09-01",
		Windows:     windowInputs([2]string{"09:00", "13:00"}),
		CrewSize:    2,
		Force:       true,
	})
	require.NoError(t, err)
	require.Len(t, refreshed.Windows, 1)
	assert.Equal(t, "09:00", refreshed.Windows[0].StartTime)
	assert.Equal(t, enums.WindowStatusAvailable, refreshed.Windows[0].Status)
}

func TestSetValidation(t *testing.T) {
	t.Parallel()

	_, svc, installerID := newAvailabilityHarness(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input SetInput
	}{
		{"missing installer", SetInput{Date: "2026-09-01", Windows: windowInputs([2]string{"08:00", "12:00"}), CrewSize: 1}},
		{"bad date", SetInput{InstallerID: installerID, Date: "09/01/2026", Windows: windowInputs([2]string{"08:00", "12:00"}), CrewSize: 1}},
		{"no windows", SetInput{InstallerID: installerID, Date: "2026-09-01", CrewSize: 1}},
		{"zero crew", SetInput{InstallerID: installerID, Date: "2026-09-01", Windows: windowInputs([2]string{"08:00", "12:00"})}},
		{"bad clock", SetInput{InstallerID: installerID, Date: "2026-09-01", Windows: windowInputs([2]string{"8am", "noon"}), CrewSize: 1}},
		{"inverted span", SetInput{InstallerID: installerID, Date: "2026-09-01", Windows: windowInputs([2]string{"12:00", "08:00"}), CrewSize: 1}},
		{"overlapping", SetInput{InstallerID: installerID, Date: "2026-09-01", Windows: windowInputs([2]string{"08:00", "12:00"}, [2]string{"11:00", "15:00"}), CrewSize: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Set(ctx, tc.input)
			assert.Equal(t, pkgerrors.CodeValidation, errCode(t, err))
		})
	}
}

func TestSetUnknownInstaller(t *testing.T) {
	t.Parallel()

	_, svc, _ := newAvailabilityHarness(t)
	_, err := svc.Set(context.Background(), SetInput{
		InstallerID: uuid.New(),
		Date:        "2026-09-01",
		Windows:     windowInputs([2]string{"08:00", "12:00"}),
		CrewSize:    1,
	})
	assert.Equal(t, pkgerrors.CodeNotFound, errCode(t, err))
}

func TestGetRangeOrdersByDate(t *testing.T) {
	t.Parallel()

	_, svc, installerID := newAvailabilityHarness(t)
	ctx := context.Background()

	for _, date := range []string{"2026-09-03", "2026-09-01", "2026-09-10"} {
		_, err := svc.Set(ctx, SetInput{
			InstallerID: installerID,
			Date:        date,
			Windows:     windowInputs([2]string{"08:00", "12:00"}),
			CrewSize:    2,
		})
		require.NoError(t, err)
	}

	slots, err := svc.GetRange(ctx, RangeInput{
		InstallerID: installerID,
		StartDate:   "2026-09-01",
		EndDate:     "2026-09-05",
	})
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "2026-09-01", slots[0].Date)
	assert.Equal(t, "2026-09-03", slots[1].Date)

	_, err = svc.GetRange(ctx, RangeInput{
		InstallerID: installerID,
		StartDate:   "2026-09-05",
		EndDate:     "2026-09-01",
	})
	assert.Equal(t, pkgerrors.CodeValidation, errCode(t, err))
}
