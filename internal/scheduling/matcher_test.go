package scheduling

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunfieldhq/solarops-backend/pkg/db/models"
	"github.com/sunfieldhq/solarops-backend/pkg/enums"
)

func slotFixture(installerID uuid.UUID, date string, crew int, windows ...models.TimeWindow) models.AvailabilitySlot {
	for i := range windows {
		windows[i].Position = i
		if windows[i].Status == "" {
			windows[i].Status = enums.WindowStatusAvailable
		}
	}
	return models.AvailabilitySlot{
		ID:          uuid.New(),
		InstallerID: installerID,
		Date:        date,
		CrewSize:    crew,
		Windows:     windows,
	}
}

func TestRankSlotsDateThenCrew(t *testing.T) {
	t.Parallel()

	a := slotFixture(uuid.New(), "2026-09-03", 2)
	b := slotFixture(uuid.New(), "2026-09-01", 2)
	c := slotFixture(uuid.New(), "2026-09-01", 5)

	ranked := RankSlots([]models.AvailabilitySlot{a, b, c})
	require.Len(t, ranked, 3)
	assert.Equal(t, c.ID, ranked[0].ID, "same-day larger crew ranks first")
	assert.Equal(t, b.ID, ranked[1].ID)
	assert.Equal(t, a.ID, ranked[2].ID)
}

func TestRankSlotsDeterministicOnTies(t *testing.T) {
	t.Parallel()

	low := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	high := uuid.MustParse("99999999-9999-9999-9999-999999999999")
	a := slotFixture(high, "2026-09-01", 3)
	b := slotFixture(low, "2026-09-01", 3)

	first := RankSlots([]models.AvailabilitySlot{a, b})
	second := RankSlots([]models.AvailabilitySlot{b, a})
	assert.Equal(t, low, first[0].InstallerID)
	assert.Equal(t, first[0].InstallerID, second[0].InstallerID)
	assert.Equal(t, first[1].InstallerID, second[1].InstallerID)
}

func TestRankSlotsDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	a := slotFixture(uuid.New(), "2026-09-03", 2)
	b := slotFixture(uuid.New(), "2026-09-01", 2)
	input := []models.AvailabilitySlot{a, b}

	RankSlots(input)
	assert.Equal(t, a.ID, input[0].ID)
}

func TestPickWindowHonorsTimeOfDay(t *testing.T) {
	t.Parallel()

	slot := slotFixture(uuid.New(), "2026-09-01", 3,
		models.TimeWindow{StartTime: "08:00", EndTime: "12:00"},
		models.TimeWindow{StartTime: "13:00", EndTime: "17:00"},
	)

	morning := PickWindow(slot, enums.TimeOfDayMorning)
	require.NotNil(t, morning)
	assert.Equal(t, "08:00", morning.StartTime)

	afternoon := PickWindow(slot, enums.TimeOfDayAfternoon)
	require.NotNil(t, afternoon)
	assert.Equal(t, "13:00", afternoon.StartTime)

	any := PickWindow(slot, enums.TimeOfDayAny)
	require.NotNil(t, any)
	assert.Equal(t, "08:00", any.StartTime)
}

func TestPickWindowFallsBackWhenPreferenceUnavailable(t *testing.T) {
	t.Parallel()

	slot := slotFixture(uuid.New(), "2026-09-01", 3,
		models.TimeWindow{StartTime: "08:00", EndTime: "12:00"},
	)

	afternoon := PickWindow(slot, enums.TimeOfDayAfternoon)
	require.NotNil(t, afternoon)
	assert.Equal(t, "08:00", afternoon.StartTime, "preference steers, never excludes")
}

func TestPickWindowSkipsBooked(t *testing.T) {
	t.Parallel()

	slot := slotFixture(uuid.New(), "2026-09-01", 3,
		models.TimeWindow{StartTime: "08:00", EndTime: "12:00", Status: enums.WindowStatusBooked},
		models.TimeWindow{StartTime: "13:00", EndTime: "17:00"},
	)

	picked := PickWindow(slot, enums.TimeOfDayAny)
	require.NotNil(t, picked)
	assert.Equal(t, "13:00", picked.StartTime)

	allBooked := slotFixture(uuid.New(), "2026-09-01", 3,
		models.TimeWindow{StartTime: "08:00", EndTime: "12:00", Status: enums.WindowStatusBooked},
	)
	assert.Nil(t, PickWindow(allBooked, enums.TimeOfDayAny))
}

func TestBuildProposalsCapsAtMax(t *testing.T) {
	t.Parallel()

	var slots []models.AvailabilitySlot
	dates := []string{"2026-09-01", "2026-09-02", "2026-09-03", "2026-09-04", "2026-09-05"}
	for _, date := range dates {
		slots = append(slots, slotFixture(uuid.New(), date, 3,
			models.TimeWindow{StartTime: "08:00", EndTime: "12:00"},
		))
	}

	proposals := BuildProposals(RankSlots(slots), enums.TimeOfDayAny, 3)
	require.Len(t, proposals, 3)
	assert.Equal(t, "2026-09-01", proposals[0].Date)
	assert.Equal(t, "2026-09-03", proposals[2].Date)
	assert.Equal(t, 3, proposals[0].CrewSize)
}

func TestBuildProposalsSkipsFullyBookedDays(t *testing.T) {
	t.Parallel()

	open := slotFixture(uuid.New(), "2026-09-02", 3,
		models.TimeWindow{StartTime: "08:00", EndTime: "12:00"},
	)
	full := slotFixture(uuid.New(), "2026-09-01", 3,
		models.TimeWindow{StartTime: "08:00", EndTime: "12:00", Status: enums.WindowStatusBooked},
	)

	proposals := BuildProposals(RankSlots([]models.AvailabilitySlot{open, full}), enums.TimeOfDayAny, 3)
	require.Len(t, proposals, 1)
	assert.Equal(t, "2026-09-02", proposals[0].Date)
}
