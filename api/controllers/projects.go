package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/sunfieldhq/solarops-backend/api/responses"
	"github.com/sunfieldhq/solarops-backend/api/validators"
	"github.com/sunfieldhq/solarops-backend/internal/projects"
	pkgerrors "github.com/sunfieldhq/solarops-backend/pkg/errors"
	"github.com/sunfieldhq/solarops-backend/pkg/logger"
)

type createProjectRequest struct {
	CustomerID  uuid.UUID `json:"customer_id" validate:"required"`
	SiteAddress string    `json:"site_address" validate:"required,min=1"`
}

type createInstallerRequest struct {
	Name             string   `json:"name" validate:"required,min=1"`
	ServiceAreaMiles int      `json:"service_area_miles" validate:"omitempty,min=0"`
	Equipment        []string `json:"equipment,omitempty"`
}

// ProjectCreate registers a customer project for scheduling.
func ProjectCreate(svc projects.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "projects service unavailable"))
			return
		}

		var req createProjectRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		project, err := svc.CreateProject(r.Context(), projects.CreateProjectInput{
			CustomerID:  req.CustomerID,
			SiteAddress: req.SiteAddress,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, project)
	}
}

// ProjectGet returns one project.
func ProjectGet(svc projects.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "projects service unavailable"))
			return
		}

		projectID, err := validators.ParseUUIDParam(r, "projectID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		project, err := svc.GetProject(r.Context(), projectID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, project)
	}
}

// InstallerCreate registers an installer able to publish availability.
func InstallerCreate(svc projects.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "projects service unavailable"))
			return
		}

		var req createInstallerRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		installer, err := svc.CreateInstaller(r.Context(), projects.CreateInstallerInput{
			Name:             req.Name,
			ServiceAreaMiles: req.ServiceAreaMiles,
			Equipment:        req.Equipment,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, installer)
	}
}

// InstallerGet returns one installer.
func InstallerGet(svc projects.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "projects service unavailable"))
			return
		}

		installerID, err := validators.ParseUUIDParam(r, "installerID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		installer, err := svc.GetInstaller(r.Context(), installerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, installer)
	}
}
