// Package booking is the sole writer of time-window occupancy. Book and
// Release run inside the caller's transaction and guard the status flip with a
// conditional update, so two confirmations racing for the same window cannot
// both succeed.
package booking

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sunfieldhq/solarops-backend/pkg/db/models"
	"github.com/sunfieldhq/solarops-backend/pkg/enums"
	pkgerrors "github.com/sunfieldhq/solarops-backend/pkg/errors"
)

// Request identifies the window a schedule record wants to own. WindowStart
// and WindowEnd pin the exact span the customer confirmed; when empty, the
// first available window of the day is taken.
type Request struct {
	InstallerID uuid.UUID
	Date        string
	WindowStart string
	WindowEnd   string
	ProjectID   uuid.UUID
}

// Book marks one available window of the installer-day as booked for the
// project. A lost race (the window was taken between read and write) surfaces
// as CONFLICT so the caller can re-propose instead of silently overwriting.
func Book(ctx context.Context, tx *gorm.DB, req Request) (*models.TimeWindow, error) {
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "booking requires a transaction")
	}
	if req.InstallerID == uuid.Nil || req.ProjectID == uuid.Nil || req.Date == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "installer, project and date required to book")
	}

	var slot models.AvailabilitySlot
	err := tx.WithContext(ctx).
		Where("installer_id = ? AND date = ?", req.InstallerID, req.Date).
		First(&slot).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "installer has no published availability for this date")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load availability slot")
	}

	window, err := pickWindow(ctx, tx, slot.ID, req)
	if err != nil {
		return nil, err
	}

	// Conditional update: only wins if the window is still available.
	result := tx.WithContext(ctx).
		Model(&models.TimeWindow{}).
		Where("id = ? AND status = ?", window.ID, enums.WindowStatusAvailable).
		Updates(map[string]any{
			"status":           enums.WindowStatusBooked,
			"bound_project_id": req.ProjectID,
		})
	if result.Error != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "book time window")
	}
	if result.RowsAffected != 1 {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "time window no longer available")
	}

	window.Status = enums.WindowStatusBooked
	projectID := req.ProjectID
	window.BoundProjectID = &projectID
	return window, nil
}

// Release returns the project's booked window on the installer-day to
// available. Releasing a window that is not booked for the project is a no-op,
// which keeps reschedules idempotent.
func Release(ctx context.Context, tx *gorm.DB, installerID uuid.UUID, date string, projectID uuid.UUID) error {
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "release requires a transaction")
	}
	if installerID == uuid.Nil || projectID == uuid.Nil || date == "" {
		return nil
	}

	var slot models.AvailabilitySlot
	err := tx.WithContext(ctx).
		Where("installer_id = ? AND date = ?", installerID, date).
		First(&slot).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load availability slot")
	}

	result := tx.WithContext(ctx).
		Model(&models.TimeWindow{}).
		Where("slot_id = ? AND bound_project_id = ? AND status = ?", slot.ID, projectID, enums.WindowStatusBooked).
		Updates(map[string]any{
			"status":           enums.WindowStatusAvailable,
			"bound_project_id": nil,
		})
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "release time window")
	}
	return nil
}

func pickWindow(ctx context.Context, tx *gorm.DB, slotID uuid.UUID, req Request) (*models.TimeWindow, error) {
	query := tx.WithContext(ctx).
		Where("slot_id = ? AND status = ?", slotID, enums.WindowStatusAvailable)
	if req.WindowStart != "" && req.WindowEnd != "" {
		query = query.Where("start_time = ? AND end_time = ?", req.WindowStart, req.WindowEnd)
	}

	var window models.TimeWindow
	if err := query.Order("position ASC").First(&window).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "time window no longer available")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find available window")
	}
	return &window, nil
}
