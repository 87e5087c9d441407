package scheduling

import (
	"sort"

	"github.com/sunfieldhq/solarops-backend/pkg/db/models"
	dbtypes "github.com/sunfieldhq/solarops-backend/pkg/db/types"
	"github.com/sunfieldhq/solarops-backend/pkg/enums"
	"github.com/sunfieldhq/solarops-backend/pkg/types"
)

// RankSlots orders candidate installer-days: earliest date first, larger crews
// breaking ties (bigger crews finish faster and absorb contingencies), then
// installer ID so equal candidates rank deterministically.
func RankSlots(slots []models.AvailabilitySlot) []models.AvailabilitySlot {
	ranked := make([]models.AvailabilitySlot, len(slots))
	copy(ranked, slots)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Date != ranked[j].Date {
			return ranked[i].Date < ranked[j].Date
		}
		if ranked[i].CrewSize != ranked[j].CrewSize {
			return ranked[i].CrewSize > ranked[j].CrewSize
		}
		return ranked[i].InstallerID.String() < ranked[j].InstallerID.String()
	})
	return ranked
}

// PickWindow chooses the window proposed from a ranked day. The customer's
// coarse preference steers the choice within the day; it never reorders days.
func PickWindow(slot models.AvailabilitySlot, pref enums.TimeOfDay) *models.TimeWindow {
	var first *models.TimeWindow
	for i := range slot.Windows {
		w := &slot.Windows[i]
		if w.Status != enums.WindowStatusAvailable {
			continue
		}
		if first == nil {
			first = w
		}
		switch pref {
		case enums.TimeOfDayMorning:
			if types.ClockBefore(w.StartTime, types.Noon) {
				return w
			}
		case enums.TimeOfDayAfternoon:
			if !types.ClockBefore(w.StartTime, types.Noon) {
				return w
			}
		default:
			return w
		}
	}
	return first
}

// BuildProposals converts the top-ranked slots into the immutable snapshot
// stored on the schedule record, at most max entries.
func BuildProposals(ranked []models.AvailabilitySlot, pref enums.TimeOfDay, max int) dbtypes.ProposedSlots {
	var proposals dbtypes.ProposedSlots
	for _, slot := range ranked {
		if len(proposals) >= max {
			break
		}
		window := PickWindow(slot, pref)
		if window == nil {
			continue
		}
		proposals = append(proposals, dbtypes.ProposedSlot{
			InstallerID: slot.InstallerID,
			Date:        slot.Date,
			WindowStart: window.StartTime,
			WindowEnd:   window.EndTime,
			CrewSize:    slot.CrewSize,
		})
	}
	return proposals
}
