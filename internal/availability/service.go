package availability

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sunfieldhq/solarops-backend/pkg/db/models"
	"github.com/sunfieldhq/solarops-backend/pkg/enums"
	pkgerrors "github.com/sunfieldhq/solarops-backend/pkg/errors"
	"github.com/sunfieldhq/solarops-backend/pkg/logger"
	"github.com/sunfieldhq/solarops-backend/pkg/outbox"
	"github.com/sunfieldhq/solarops-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type installerFinder interface {
	FindInstaller(ctx context.Context, id uuid.UUID) (*models.Installer, error)
}

type outboxEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service defines the installer-facing availability operations.
type Service interface {
	Set(ctx context.Context, input SetInput) (*models.AvailabilitySlot, error)
	GetRange(ctx context.Context, input RangeInput) ([]models.AvailabilitySlot, error)
}

type service struct {
	repo       Repository
	installers installerFinder
	tx         txRunner
	outbox     outboxEmitter
	logg       *logger.Logger
}

// NewService builds an availability service with the required dependencies.
func NewService(repo Repository, installers installerFinder, tx txRunner, ob outboxEmitter, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("availability repository required")
	}
	if installers == nil {
		return nil, fmt.Errorf("installer finder required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if ob == nil {
		return nil, fmt.Errorf("outbox emitter required")
	}
	return &service{repo: repo, installers: installers, tx: tx, outbox: ob, logg: logg}, nil
}

// AvailabilityEvent is the outbox payload for a published installer-day.
type AvailabilityEvent struct {
	InstallerID    uuid.UUID `json:"installer_id"`
	Date           string    `json:"date"`
	Windows        int       `json:"windows"`
	ReleasedBooked int       `json:"released_booked,omitempty"`
	Forced         bool      `json:"forced,omitempty"`
}

// Set upserts one installer-day. Windows are reinitialized to available; a day
// that still holds a booked window is rejected with CONFLICT unless Force is
// set, so confirmed installs cannot be wiped by a routine calendar update.
func (s *service) Set(ctx context.Context, input SetInput) (*models.AvailabilitySlot, error) {
	if err := validateSetInput(input); err != nil {
		return nil, err
	}

	if _, err := s.installers.FindInstaller(ctx, input.InstallerID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "installer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load installer")
	}

	var out *models.AvailabilitySlot
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		windows := make([]models.TimeWindow, len(input.Windows))
		for i, w := range input.Windows {
			windows[i] = models.TimeWindow{
				StartTime: w.Start,
				EndTime:   w.End,
				Status:    enums.WindowStatusAvailable,
			}
		}

		existing, err := repo.FindByInstallerDate(ctx, input.InstallerID, input.Date)
		switch {
		case err == gorm.ErrRecordNotFound:
			slot := &models.AvailabilitySlot{
				InstallerID:      input.InstallerID,
				Date:             input.Date,
				CrewSize:         input.CrewSize,
				ServiceAreaMiles: input.ServiceAreaMiles,
				Equipment:        input.Equipment,
				Windows:          windows,
			}
			if err := repo.Create(ctx, slot); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create availability slot")
			}
			if err := s.emitChanged(ctx, tx, slot, 0, false); err != nil {
				return err
			}
			out = slot
			return nil
		case err != nil:
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load availability slot")
		}

		if booked := bookedWindows(existing.Windows); len(booked) > 0 && !input.Force {
			return pkgerrors.New(pkgerrors.CodeConflict, "day holds a booked window; reschedule the install or set force").
				WithDetails(map[string]any{"booked_windows": booked})
		} else if len(booked) > 0 && s.logg != nil {
			logCtx := s.logg.WithFields(ctx, map[string]any{
				"installer_id": input.InstallerID.String(),
				"date":         input.Date,
			})
			s.logg.Warn(logCtx, "forced availability rewrite released booked windows")
		}

		if err := repo.ReplaceWindows(ctx, existing, windows); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace time windows")
		}
		if err := repo.UpdateAttributes(ctx, existing.ID, map[string]any{
			"crew_size":          input.CrewSize,
			"service_area_miles": input.ServiceAreaMiles,
			"equipment":          input.Equipment,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update slot attributes")
		}

		refreshed, err := repo.FindByInstallerDate(ctx, input.InstallerID, input.Date)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload availability slot")
		}
		if err := s.emitChanged(ctx, tx, refreshed, len(bookedWindows(existing.Windows)), input.Force); err != nil {
			return err
		}
		out = refreshed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetRange returns the installer's published days in [start, end], date ascending.
func (s *service) GetRange(ctx context.Context, input RangeInput) ([]models.AvailabilitySlot, error) {
	if input.InstallerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "installer id required")
	}
	if !types.ValidDate(input.StartDate) || !types.ValidDate(input.EndDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "start and end must be YYYY-MM-DD dates")
	}
	if input.EndDate < input.StartDate {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end date before start date")
	}
	slots, err := s.repo.FindRange(ctx, input.InstallerID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list availability")
	}
	return slots, nil
}

func validateSetInput(input SetInput) error {
	if input.InstallerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "installer id required")
	}
	if !types.ValidDate(input.Date) {
		return pkgerrors.New(pkgerrors.CodeValidation, "date must be YYYY-MM-DD")
	}
	if len(input.Windows) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one time window required")
	}
	if input.CrewSize < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "crew size must be at least 1")
	}
	for i, w := range input.Windows {
		if !types.ValidClock(w.Start) || !types.ValidClock(w.End) {
			return pkgerrors.New(pkgerrors.CodeValidation, "window times must be HH:MM").
				WithDetails(map[string]any{"window": i})
		}
		if !types.ClockBefore(w.Start, w.End) {
			return pkgerrors.New(pkgerrors.CodeValidation, "window start must precede end").
				WithDetails(map[string]any{"window": i})
		}
		if i > 0 && types.ClockBefore(w.Start, input.Windows[i-1].End) {
			return pkgerrors.New(pkgerrors.CodeValidation, "windows must be ordered and non-overlapping").
				WithDetails(map[string]any{"window": i})
		}
	}
	return nil
}

func (s *service) emitChanged(ctx context.Context, tx *gorm.DB, slot *models.AvailabilitySlot, released int, forced bool) error {
	err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
		EventType:     enums.EventAvailabilityChanged,
		AggregateType: enums.AggregateAvailabilitySlot,
		AggregateID:   slot.ID,
		Version:       1,
		Data: AvailabilityEvent{
			InstallerID:    slot.InstallerID,
			Date:           slot.Date,
			Windows:        len(slot.Windows),
			ReleasedBooked: released,
			Forced:         forced,
		},
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "emit availability event")
	}
	return nil
}

func bookedWindows(windows []models.TimeWindow) []string {
	var booked []string
	for _, w := range windows {
		if w.Status == enums.WindowStatusBooked {
			booked = append(booked, w.StartTime+"-"+w.EndTime)
		}
	}
	return booked
}
