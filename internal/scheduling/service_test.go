package scheduling

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sunfieldhq/solarops-backend/internal/availability"
	"github.com/sunfieldhq/solarops-backend/internal/projects"
	"github.com/sunfieldhq/solarops-backend/pkg/config"
	"github.com/sunfieldhq/solarops-backend/pkg/db/models"
	"github.com/sunfieldhq/solarops-backend/pkg/enums"
	pkgerrors "github.com/sunfieldhq/solarops-backend/pkg/errors"
	"github.com/sunfieldhq/solarops-backend/pkg/logger"
	"github.com/sunfieldhq/solarops-backend/pkg/outbox"
)

var testNow = time.Date(2026, 8, 23, 9, 0, 0, 0, time.UTC)

type testTxRunner struct {
	db *gorm.DB
}

func (r *testTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(tx)
	})
}

type serviceHarness struct {
	db  *gorm.DB
	svc Service
}

func newServiceHarness(t *testing.T) *serviceHarness {
	t.Helper()
	dsn := "file:scheduling_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Installer{},
		&models.Project{},
		&models.AvailabilitySlot{},
		&models.TimeWindow{},
		&models.ScheduleRecord{},
		&models.ScheduleNotification{},
		&models.OutboxEvent{},
	))

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(ServiceParams{
		Repo:         NewRepository(db),
		Availability: availability.NewRepository(db),
		Projects:     projects.NewRepository(db),
		Tx:           &testTxRunner{db: db},
		Outbox:       outbox.NewService(outbox.NewRepository(db), logg),
		Logger:       logg,
		Matcher:      config.MatcherConfig{LookaheadDays: 14, MaxProposals: 3},
		Limits:       config.SchedulerConfig{UpcomingInstallsLimit: 100},
		Now:          func() time.Time { return testNow },
	})
	require.NoError(t, err)
	return &serviceHarness{db: db, svc: svc}
}

func (h *serviceHarness) seedProject(t *testing.T, customerID uuid.UUID) models.Project {
	t.Helper()
	project := models.Project{ID: uuid.New(), CustomerID: customerID, SiteAddress: "12 Sunrise Ct"}
	require.NoError(t, h.db.Create(&project).Error)
	return project
}

func (h *serviceHarness) seedInstallerDay(t *testing.T, date string, crew int, windows ...models.TimeWindow) uuid.UUID {
	t.Helper()
	installer := models.Installer{ID: uuid.New(), Name: "Helios Crew"}
	require.NoError(t, h.db.Create(&installer).Error)
	slot := models.AvailabilitySlot{ID: uuid.New(), InstallerID: installer.ID, Date: date, CrewSize: crew}
	require.NoError(t, h.db.Create(&slot).Error)
	for i := range windows {
		windows[i].ID = uuid.New()
		windows[i].SlotID = slot.ID
		windows[i].Position = i
		if windows[i].Status == "" {
			windows[i].Status = enums.WindowStatusAvailable
		}
		require.NoError(t, h.db.Create(&windows[i]).Error)
	}
	return installer.ID
}

func (h *serviceHarness) propose(t *testing.T, projectID uuid.UUID) *models.ScheduleRecord {
	t.Helper()
	record, err := h.svc.Propose(context.Background(), ProposeInput{
		ProjectID: projectID,
		PermitID:  "PERMIT-001",
	})
	require.NoError(t, err)
	return record
}

func errCode(t *testing.T, err error) pkgerrors.Code {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	return typed.Code()
}

func TestProposeHoldsTopRankedSlot(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)
	project := h.seedProject(t, uuid.New())
	later := h.seedInstallerDay(t, "2026-08-28", 2,
		models.TimeWindow{StartTime: "08:00", EndTime: "12:00"})
	sooner := h.seedInstallerDay(t, "2026-08-25", 4,
		models.TimeWindow{StartTime: "08:00", EndTime: "12:00"})

	record := h.propose(t, project.ID)

	assert.Equal(t, enums.ScheduleStatusProposed, record.Status)
	require.Len(t, record.ProposedSlots, 2)
	assert.Equal(t, sooner, record.ProposedSlots[0].InstallerID)
	assert.Equal(t, later, record.ProposedSlots[1].InstallerID)

	require.NotNil(t, record.InstallerID)
	assert.Equal(t, sooner, *record.InstallerID)
	require.NotNil(t, record.Date)
	assert.Equal(t, "2026-08-25", *record.Date)

	require.Len(t, record.Notifications, 1)
	assert.Equal(t, enums.NotificationScheduleProposed, record.Notifications[0].Type)

	var events []models.OutboxEvent
	require.NoError(t, h.db.Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, enums.EventScheduleProposed, events[0].EventType)

	// The hold is tentative: nothing is booked yet.
	var windows []models.TimeWindow
	require.NoError(t, h.db.Find(&windows).Error)
	for _, w := range windows {
		assert.Equal(t, enums.WindowStatusAvailable, w.Status)
	}
}

func TestProposeIgnoresAvailabilityBeyondLookahead(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)
	project := h.seedProject(t, uuid.New())
	h.seedInstallerDay(t, "2026-09-20", 3,
		models.TimeWindow{StartTime: "08:00", EndTime: "12:00"})

	record := h.propose(t, project.ID)

	assert.Empty(t, record.ProposedSlots)
	assert.Nil(t, record.InstallerID)
	assert.Equal(t, enums.ScheduleStatusProposed, record.Status)
}

func TestProposeUnknownProject(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)
	_, err := h.svc.Propose(context.Background(), ProposeInput{
		ProjectID: uuid.New(),
		PermitID:  "PERMIT-404",
	})
	assert.Equal(t, pkgerrors.CodeNotFound, errCode(t, err))
}

func TestConfirmBothPartiesBooksWindow(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)
	project := h.seedProject(t, uuid.New())
	h.seedInstallerDay(t, "2026-08-25", 3,
		models.TimeWindow{StartTime: "08:00", EndTime: "12:00"})
	record := h.propose(t, project.ID)

	record, err := h.svc.Confirm(context.Background(), ConfirmInput{
		ScheduleID:  record.ID,
		ConfirmedBy: enums.ConfirmPartyCustomer,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.ScheduleStatusCustomerConfirmed, record.Status)

	record, err = h.svc.Confirm(context.Background(), ConfirmInput{
		ScheduleID:  record.ID,
		ConfirmedBy: enums.ConfirmPartyInstaller,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.ScheduleStatusBothConfirmed, record.Status)

	var window models.TimeWindow
	require.NoError(t, h.db.First(&window, "start_time = ?", "08:00").Error)
	assert.Equal(t, enums.WindowStatusBooked, window.Status)
	require.NotNil(t, window.BoundProjectID)
	assert.Equal(t, project.ID, *window.BoundProjectID)

	types := notificationTypes(record.Notifications)
	assert.Contains(t, types, enums.NotificationCustomerConfirmed)
	assert.Contains(t, types, enums.NotificationInstallerConfirmed)
	assert.Contains(t, types, enums.NotificationScheduleBooked)
}

func TestConfirmInstallerFirstThenCustomer(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)
	project := h.seedProject(t, uuid.New())
	h.seedInstallerDay(t, "2026-08-25", 3,
		models.TimeWindow{StartTime: "08:00", EndTime: "12:00"})
	record := h.propose(t, project.ID)

	record, err := h.svc.Confirm(context.Background(), ConfirmInput{
		ScheduleID:  record.ID,
		ConfirmedBy: enums.ConfirmPartyInstaller,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.ScheduleStatusInstallerConfirmed, record.Status)

	record, err = h.svc.Confirm(context.Background(), ConfirmInput{
		ScheduleID:  record.ID,
		ConfirmedBy: enums.ConfirmPartyCustomer,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.ScheduleStatusBothConfirmed, record.Status)
}

func TestConfirmSameRoleTwiceDoesNotAdvance(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)
	project := h.seedProject(t, uuid.New())
	h.seedInstallerDay(t, "2026-08-25", 3,
		models.TimeWindow{StartTime: "08:00", EndTime: "12:00"})
	record := h.propose(t, project.ID)

	for i := 0; i < 2; i++ {
		var err error
		record, err = h.svc.Confirm(context.Background(), ConfirmInput{
			ScheduleID:  record.ID,
			ConfirmedBy: enums.ConfirmPartyCustomer,
		})
		require.NoError(t, err)
	}
	assert.Equal(t, enums.ScheduleStatusCustomerConfirmed, record.Status)

	var window models.TimeWindow
	require.NoError(t, h.db.First(&window, "start_time = ?", "08:00").Error)
	assert.Equal(t, enums.WindowStatusAvailable, window.Status)
}

func TestConfirmOnTerminalRecordRejected(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)
	project := h.seedProject(t, uuid.New())
	h.seedInstallerDay(t, "2026-08-25", 3,
		models.TimeWindow{StartTime: "08:00", EndTime: "12:00"})
	record := h.propose(t, project.ID)

	_, err := h.svc.Cancel(context.Background(), CancelInput{ScheduleID: record.ID, Reason: "customer withdrew"})
	require.NoError(t, err)

	_, err = h.svc.Confirm(context.Background(), ConfirmInput{
		ScheduleID:  record.ID,
		ConfirmedBy: enums.ConfirmPartyCustomer,
	})
	assert.Equal(t, pkgerrors.CodeStateConflict, errCode(t, err))
}

func TestConfirmRaceLoserGetsConflict(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)
	projectA := h.seedProject(t, uuid.New())
	projectB := h.seedProject(t, uuid.New())
	h.seedInstallerDay(t, "2026-08-25", 3,
		models.TimeWindow{StartTime: "08:00", EndTime: "12:00"})

	recordA := h.propose(t, projectA.ID)
	recordB := h.propose(t, projectB.ID)

	confirmBoth := func(id uuid.UUID) error {
		if _, err := h.svc.Confirm(context.Background(), ConfirmInput{ScheduleID: id, ConfirmedBy: enums.ConfirmPartyCustomer}); err != nil {
			return err
		}
		_, err := h.svc.Confirm(context.Background(), ConfirmInput{ScheduleID: id, ConfirmedBy: enums.ConfirmPartyInstaller})
		return err
	}

	require.NoError(t, confirmBoth(recordA.ID))
	err := confirmBoth(recordB.ID)
	assert.Equal(t, pkgerrors.CodeConflict, errCode(t, err))

	// The losing record never reached both_confirmed.
	loser, getErr := h.svc.Get(context.Background(), recordB.ID)
	require.NoError(t, getErr)
	assert.Equal(t, enums.ScheduleStatusCustomerConfirmed, loser.Status)
}

func TestRescheduleReleasesBookingAndOpensSuccessor(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)
	project := h.seedProject(t, uuid.New())
	installerID := h.seedInstallerDay(t, "2026-08-25", 3,
		models.TimeWindow{StartTime: "08:00", EndTime: "12:00"})
	record := h.propose(t, project.ID)

	for _, party := range []enums.ConfirmParty{enums.ConfirmPartyCustomer, enums.ConfirmPartyInstaller} {
		var err error
		record, err = h.svc.Confirm(context.Background(), ConfirmInput{ScheduleID: record.ID, ConfirmedBy: party})
		require.NoError(t, err)
	}

	successor, err := h.svc.Reschedule(context.Background(), RescheduleInput{
		ScheduleID:  record.ID,
		NewDate:     "2026-08-30",
		WindowStart: "09:00",
		WindowEnd:   "13:00",
		Reason:      "permit inspection moved",
	})
	require.NoError(t, err)

	assert.Equal(t, enums.ScheduleStatusProposed, successor.Status)
	require.NotNil(t, successor.RescheduledFrom)
	assert.Equal(t, record.ID, *successor.RescheduledFrom)
	require.NotNil(t, successor.InstallerID)
	assert.Equal(t, installerID, *successor.InstallerID)
	require.NotNil(t, successor.Date)
	assert.Equal(t, "2026-08-30", *successor.Date)

	closed, err := h.svc.Get(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.ScheduleStatusRescheduled, closed.Status)
	require.NotNil(t, closed.RescheduleReason)
	assert.Equal(t, "permit inspection moved", *closed.RescheduleReason)

	var window models.TimeWindow
	require.NoError(t, h.db.First(&window, "start_time = ?", "08:00").Error)
	assert.Equal(t, enums.WindowStatusAvailable, window.Status)
	assert.Nil(t, window.BoundProjectID)
}

func TestRescheduleUnbookedRecordNeedsNoRelease(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)
	project := h.seedProject(t, uuid.New())
	h.seedInstallerDay(t, "2026-08-25", 3,
		models.TimeWindow{StartTime: "08:00", EndTime: "12:00"})
	record := h.propose(t, project.ID)

	successor, err := h.svc.Reschedule(context.Background(), RescheduleInput{
		ScheduleID:  record.ID,
		NewDate:     "2026-08-30",
		WindowStart: "09:00",
		WindowEnd:   "13:00",
		Reason:      "customer travel",
	})
	require.NoError(t, err)
	assert.Equal(t, enums.ScheduleStatusProposed, successor.Status)

	_, err = h.svc.Reschedule(context.Background(), RescheduleInput{
		ScheduleID:  record.ID,
		NewDate:     "2026-09-01",
		WindowStart: "09:00",
		WindowEnd:   "13:00",
		Reason:      "double move",
	})
	assert.Equal(t, pkgerrors.CodeStateConflict, errCode(t, err))
}

func TestCancelReleasesBooking(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)
	project := h.seedProject(t, uuid.New())
	h.seedInstallerDay(t, "2026-08-25", 3,
		models.TimeWindow{StartTime: "08:00", EndTime: "12:00"})
	record := h.propose(t, project.ID)

	for _, party := range []enums.ConfirmParty{enums.ConfirmPartyCustomer, enums.ConfirmPartyInstaller} {
		var err error
		record, err = h.svc.Confirm(context.Background(), ConfirmInput{ScheduleID: record.ID, ConfirmedBy: party})
		require.NoError(t, err)
	}

	cancelled, err := h.svc.Cancel(context.Background(), CancelInput{
		ScheduleID: record.ID,
		Reason:     "project on hold",
	})
	require.NoError(t, err)
	assert.Equal(t, enums.ScheduleStatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelReason)
	assert.Equal(t, "project on hold", *cancelled.CancelReason)

	var window models.TimeWindow
	require.NoError(t, h.db.First(&window, "start_time = ?", "08:00").Error)
	assert.Equal(t, enums.WindowStatusAvailable, window.Status)
}

func TestAssignCrewRequiresBothConfirmed(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)
	project := h.seedProject(t, uuid.New())
	h.seedInstallerDay(t, "2026-08-25", 3,
		models.TimeWindow{StartTime: "08:00", EndTime: "12:00"})
	record := h.propose(t, project.ID)

	_, err := h.svc.AssignCrew(context.Background(), AssignCrewInput{
		ScheduleID: record.ID,
		Crew:       []string{"R. Vega", "T. Okafor"},
	})
	assert.Equal(t, pkgerrors.CodeStateConflict, errCode(t, err))

	for _, party := range []enums.ConfirmParty{enums.ConfirmPartyCustomer, enums.ConfirmPartyInstaller} {
		record, err = h.svc.Confirm(context.Background(), ConfirmInput{ScheduleID: record.ID, ConfirmedBy: party})
		require.NoError(t, err)
	}

	record, err = h.svc.AssignCrew(context.Background(), AssignCrewInput{
		ScheduleID: record.ID,
		Crew:       []string{"R. Vega", "T. Okafor"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"R. Vega", "T. Okafor"}, []string(record.Crew))
}

func TestStartAndCompleteLifecycle(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)
	project := h.seedProject(t, uuid.New())
	h.seedInstallerDay(t, "2026-08-25", 3,
		models.TimeWindow{StartTime: "08:00", EndTime: "12:00"})
	record := h.propose(t, project.ID)

	_, err := h.svc.Start(context.Background(), record.ID)
	assert.Equal(t, pkgerrors.CodeStateConflict, errCode(t, err), "start requires both confirmations")

	for _, party := range []enums.ConfirmParty{enums.ConfirmPartyCustomer, enums.ConfirmPartyInstaller} {
		record, err = h.svc.Confirm(context.Background(), ConfirmInput{ScheduleID: record.ID, ConfirmedBy: party})
		require.NoError(t, err)
	}

	record, err = h.svc.Start(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.ScheduleStatusInProgress, record.Status)

	record, err = h.svc.Complete(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.ScheduleStatusCompleted, record.Status)

	types := notificationTypes(record.Notifications)
	assert.Contains(t, types, enums.NotificationInstallStarted)
	assert.Contains(t, types, enums.NotificationInstallCompleted)

	_, err = h.svc.Complete(context.Background(), record.ID)
	assert.Equal(t, pkgerrors.CodeStateConflict, errCode(t, err))
}

func TestUpcomingFiltersByInstallerAndStatus(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)
	installerID := uuid.New()
	otherInstaller := uuid.New()

	seed := func(installer uuid.UUID, date string, status enums.ScheduleStatus) {
		id := installer
		d := date
		require.NoError(t, h.db.Create(&models.ScheduleRecord{
			ID:          uuid.New(),
			ProjectID:   uuid.New(),
			PermitID:    "PERMIT-XYZ",
			InstallerID: &id,
			Date:        &d,
			Status:      status,
		}).Error)
	}

	seed(installerID, "2026-08-30", enums.ScheduleStatusBothConfirmed)
	seed(installerID, "2026-08-25", enums.ScheduleStatusProposed)
	seed(installerID, "2026-08-01", enums.ScheduleStatusBothConfirmed) // past
	seed(installerID, "2026-08-28", enums.ScheduleStatusCancelled)    // inactive
	seed(otherInstaller, "2026-08-26", enums.ScheduleStatusProposed)

	records, err := h.svc.Upcoming(context.Background(), UpcomingInput{InstallerID: installerID})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2026-08-25", *records[0].Date)
	assert.Equal(t, "2026-08-30", *records[1].Date)
}

func TestCustomerScheduleSpansProjects(t *testing.T) {
	t.Parallel()

	h := newServiceHarness(t)
	customerID := uuid.New()
	first := h.seedProject(t, customerID)
	second := h.seedProject(t, customerID)
	h.seedProject(t, uuid.New()) // another customer

	h.seedInstallerDay(t, "2026-08-25", 3,
		models.TimeWindow{StartTime: "08:00", EndTime: "12:00"},
		models.TimeWindow{StartTime: "13:00", EndTime: "17:00"})

	recordA := h.propose(t, first.ID)
	_, err := h.svc.Cancel(context.Background(), CancelInput{ScheduleID: recordA.ID, Reason: "switched plans"})
	require.NoError(t, err)
	h.propose(t, second.ID)

	records, err := h.svc.CustomerSchedule(context.Background(), customerID)
	require.NoError(t, err)
	require.Len(t, records, 2)

	statuses := map[enums.ScheduleStatus]bool{}
	for _, r := range records {
		statuses[r.Status] = true
	}
	assert.True(t, statuses[enums.ScheduleStatusCancelled], "history keeps cancelled attempts")
	assert.True(t, statuses[enums.ScheduleStatusProposed])
}

func notificationTypes(entries []models.ScheduleNotification) []enums.ScheduleNotificationType {
	out := make([]enums.ScheduleNotificationType, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.Type)
	}
	return out
}
