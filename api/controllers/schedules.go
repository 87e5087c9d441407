package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/sunfieldhq/solarops-backend/api/responses"
	"github.com/sunfieldhq/solarops-backend/api/validators"
	"github.com/sunfieldhq/solarops-backend/internal/scheduling"
	"github.com/sunfieldhq/solarops-backend/pkg/db/models"
	dbtypes "github.com/sunfieldhq/solarops-backend/pkg/db/types"
	"github.com/sunfieldhq/solarops-backend/pkg/enums"
	pkgerrors "github.com/sunfieldhq/solarops-backend/pkg/errors"
	"github.com/sunfieldhq/solarops-backend/pkg/logger"
)

type proposeScheduleRequest struct {
	ProjectID          uuid.UUID `json:"project_id" validate:"required"`
	PermitID           string    `json:"permit_id" validate:"required"`
	PreferredDates     []string  `json:"preferred_dates,omitempty" validate:"omitempty,dive,datetime=2006-01-02"`
	PreferredTimeOfDay string    `json:"preferred_time_of_day,omitempty" validate:"omitempty,oneof=any morning afternoon"`
}

type confirmScheduleRequest struct {
	ConfirmedBy string `json:"confirmed_by" validate:"required,oneof=customer installer"`
}

type rescheduleRequest struct {
	InstallerID uuid.UUID `json:"installer_id,omitempty"`
	NewDate     string    `json:"new_date" validate:"required,datetime=2006-01-02"`
	WindowStart string    `json:"window_start" validate:"required,datetime=15:04"`
	WindowEnd   string    `json:"window_end" validate:"required,datetime=15:04"`
	Reason      string    `json:"reason" validate:"required"`
}

type cancelScheduleRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type assignCrewRequest struct {
	Crew []string `json:"crew" validate:"required,min=1,dive,min=1"`
}

// SchedulePropose kicks off matching for a permitted project and returns the
// new record with its ranked slot proposals.
func SchedulePropose(svc scheduling.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scheduling service unavailable"))
			return
		}

		var req proposeScheduleRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Propose(r.Context(), scheduling.ProposeInput{
			ProjectID: req.ProjectID,
			PermitID:  req.PermitID,
			Preferences: dbtypes.CustomerPreferences{
				PreferredDates:     req.PreferredDates,
				PreferredTimeOfDay: enums.TimeOfDay(req.PreferredTimeOfDay),
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, record)
	}
}

// ScheduleGet returns one schedule record with its notification log.
func ScheduleGet(svc scheduling.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scheduling service unavailable"))
			return
		}

		scheduleID, err := validators.ParseUUIDParam(r, "scheduleID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Get(r.Context(), scheduleID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

// ScheduleConfirm records one party's confirmation of the held slot.
func ScheduleConfirm(svc scheduling.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scheduling service unavailable"))
			return
		}

		scheduleID, err := validators.ParseUUIDParam(r, "scheduleID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req confirmScheduleRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Confirm(r.Context(), scheduling.ConfirmInput{
			ScheduleID:  scheduleID,
			ConfirmedBy: enums.ConfirmParty(req.ConfirmedBy),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

// ScheduleReschedule closes the current attempt and returns the successor.
func ScheduleReschedule(svc scheduling.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scheduling service unavailable"))
			return
		}

		scheduleID, err := validators.ParseUUIDParam(r, "scheduleID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req rescheduleRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Reschedule(r.Context(), scheduling.RescheduleInput{
			ScheduleID:  scheduleID,
			InstallerID: req.InstallerID,
			NewDate:     req.NewDate,
			WindowStart: req.WindowStart,
			WindowEnd:   req.WindowEnd,
			Reason:      req.Reason,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, record)
	}
}

// ScheduleCancel terminates an install attempt.
func ScheduleCancel(svc scheduling.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scheduling service unavailable"))
			return
		}

		scheduleID, err := validators.ParseUUIDParam(r, "scheduleID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req cancelScheduleRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Cancel(r.Context(), scheduling.CancelInput{
			ScheduleID: scheduleID,
			Reason:     req.Reason,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

// ScheduleAssignCrew names the workers for a confirmed install.
func ScheduleAssignCrew(svc scheduling.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scheduling service unavailable"))
			return
		}

		scheduleID, err := validators.ParseUUIDParam(r, "scheduleID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req assignCrewRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.AssignCrew(r.Context(), scheduling.AssignCrewInput{
			ScheduleID: scheduleID,
			Crew:       req.Crew,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

// ScheduleStart marks the crew on site and the install underway.
func ScheduleStart(svc scheduling.Service, logg *logger.Logger) http.HandlerFunc {
	return scheduleProgress(svc, logg, func(r *http.Request, id uuid.UUID) (*models.ScheduleRecord, error) {
		return svc.Start(r.Context(), id)
	})
}

// ScheduleComplete closes out an in-progress install.
func ScheduleComplete(svc scheduling.Service, logg *logger.Logger) http.HandlerFunc {
	return scheduleProgress(svc, logg, func(r *http.Request, id uuid.UUID) (*models.ScheduleRecord, error) {
		return svc.Complete(r.Context(), id)
	})
}

func scheduleProgress(svc scheduling.Service, logg *logger.Logger, advance func(*http.Request, uuid.UUID) (*models.ScheduleRecord, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scheduling service unavailable"))
			return
		}

		scheduleID, err := validators.ParseUUIDParam(r, "scheduleID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := advance(r, scheduleID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

// UpcomingInstalls lists an installer's active installs from today forward.
func UpcomingInstalls(svc scheduling.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scheduling service unavailable"))
			return
		}

		installerID, err := validators.ParseUUIDParam(r, "installerID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := svc.Upcoming(r.Context(), scheduling.UpcomingInput{
			InstallerID: installerID,
			Limit:       limit,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if records == nil {
			records = []models.ScheduleRecord{}
		}
		responses.WriteSuccess(w, records)
	}
}

// CustomerSchedule returns the full history across the customer's projects.
func CustomerSchedule(svc scheduling.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scheduling service unavailable"))
			return
		}

		customerID, err := validators.ParseUUIDParam(r, "customerID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := svc.CustomerSchedule(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if records == nil {
			records = []models.ScheduleRecord{}
		}
		responses.WriteSuccess(w, records)
	}
}
