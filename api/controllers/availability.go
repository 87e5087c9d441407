package controllers

import (
	"net/http"

	"github.com/sunfieldhq/solarops-backend/api/responses"
	"github.com/sunfieldhq/solarops-backend/api/validators"
	"github.com/sunfieldhq/solarops-backend/internal/availability"
	"github.com/sunfieldhq/solarops-backend/pkg/db/models"
	dbtypes "github.com/sunfieldhq/solarops-backend/pkg/db/types"
	pkgerrors "github.com/sunfieldhq/solarops-backend/pkg/errors"
	"github.com/sunfieldhq/solarops-backend/pkg/logger"
)

type setAvailabilityRequest struct {
	Windows          []availability.WindowInput `json:"windows" validate:"required,min=1,dive"`
	CrewSize         int                        `json:"crew_size" validate:"required,min=1"`
	ServiceAreaMiles int                        `json:"service_area_miles" validate:"omitempty,min=0"`
	Equipment        []string                   `json:"equipment,omitempty"`
	Force            bool                       `json:"force,omitempty"`
}

// AvailabilitySet publishes or replaces one installer-day of time windows.
func AvailabilitySet(svc availability.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "availability service unavailable"))
			return
		}

		installerID, err := validators.ParseUUIDParam(r, "installerID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		date, err := validators.ParseDateParam(r, "date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req setAvailabilityRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		slot, err := svc.Set(r.Context(), availability.SetInput{
			InstallerID:      installerID,
			Date:             date,
			Windows:          req.Windows,
			CrewSize:         req.CrewSize,
			ServiceAreaMiles: req.ServiceAreaMiles,
			Equipment:        dbtypes.StringList(req.Equipment),
			Force:            req.Force,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, slot)
	}
}

// AvailabilityRange lists an installer's published days over a date span.
func AvailabilityRange(svc availability.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "availability service unavailable"))
			return
		}

		installerID, err := validators.ParseUUIDParam(r, "installerID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		start, err := validators.ParseQueryDate(r, "start", "")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		end, err := validators.ParseQueryDate(r, "end", "")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if start == "" || end == "" {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "start and end query parameters required"))
			return
		}

		slots, err := svc.GetRange(r.Context(), availability.RangeInput{
			InstallerID: installerID,
			StartDate:   start,
			EndDate:     end,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if slots == nil {
			slots = []models.AvailabilitySlot{}
		}
		responses.WriteSuccess(w, slots)
	}
}
