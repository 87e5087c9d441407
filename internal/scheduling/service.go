package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sunfieldhq/solarops-backend/internal/scheduling/booking"
	"github.com/sunfieldhq/solarops-backend/pkg/config"
	"github.com/sunfieldhq/solarops-backend/pkg/db/models"
	dbtypes "github.com/sunfieldhq/solarops-backend/pkg/db/types"
	"github.com/sunfieldhq/solarops-backend/pkg/enums"
	pkgerrors "github.com/sunfieldhq/solarops-backend/pkg/errors"
	"github.com/sunfieldhq/solarops-backend/pkg/logger"
	"github.com/sunfieldhq/solarops-backend/pkg/outbox"
	"github.com/sunfieldhq/solarops-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type availabilityReader interface {
	FindOpenInRange(ctx context.Context, startDate, endDate string) ([]models.AvailabilitySlot, error)
}

type projectResolver interface {
	FindProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	ProjectIDsByCustomer(ctx context.Context, customerID uuid.UUID) ([]uuid.UUID, error)
}

// Service drives one install attempt from proposal through bilateral
// confirmation to completion, and owns the read projections over schedule
// records.
type Service interface {
	Propose(ctx context.Context, input ProposeInput) (*models.ScheduleRecord, error)
	Confirm(ctx context.Context, input ConfirmInput) (*models.ScheduleRecord, error)
	Reschedule(ctx context.Context, input RescheduleInput) (*models.ScheduleRecord, error)
	Cancel(ctx context.Context, input CancelInput) (*models.ScheduleRecord, error)
	AssignCrew(ctx context.Context, input AssignCrewInput) (*models.ScheduleRecord, error)
	Start(ctx context.Context, scheduleID uuid.UUID) (*models.ScheduleRecord, error)
	Complete(ctx context.Context, scheduleID uuid.UUID) (*models.ScheduleRecord, error)
	Get(ctx context.Context, scheduleID uuid.UUID) (*models.ScheduleRecord, error)
	Upcoming(ctx context.Context, input UpcomingInput) ([]models.ScheduleRecord, error)
	CustomerSchedule(ctx context.Context, customerID uuid.UUID) ([]models.ScheduleRecord, error)
}

// ServiceParams collect the service dependencies.
type ServiceParams struct {
	Repo         Repository
	Availability availabilityReader
	Projects     projectResolver
	Tx           txRunner
	Outbox       outboxPublisher
	Logger       *logger.Logger
	Matcher      config.MatcherConfig
	Limits       config.SchedulerConfig
	Now          func() time.Time
}

type service struct {
	repo         Repository
	availability availabilityReader
	projects     projectResolver
	tx           txRunner
	outbox       outboxPublisher
	logg         *logger.Logger
	matcher      config.MatcherConfig
	limits       config.SchedulerConfig
	now          func() time.Time
}

// NewService builds the scheduling service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("scheduling repository required")
	}
	if params.Availability == nil {
		return nil, fmt.Errorf("availability reader required")
	}
	if params.Projects == nil {
		return nil, fmt.Errorf("project resolver required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if params.Matcher.LookaheadDays <= 0 {
		params.Matcher.LookaheadDays = 14
	}
	if params.Matcher.MaxProposals <= 0 {
		params.Matcher.MaxProposals = 3
	}
	if params.Limits.UpcomingInstallsLimit <= 0 {
		params.Limits.UpcomingInstallsLimit = 100
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &service{
		repo:         params.Repo,
		availability: params.Availability,
		projects:     params.Projects,
		tx:           params.Tx,
		outbox:       params.Outbox,
		logg:         params.Logger,
		matcher:      params.Matcher,
		limits:       params.Limits,
		now:          params.Now,
	}, nil
}

// ScheduleEvent is the payload shape shared by every schedule outbox event.
type ScheduleEvent struct {
	ScheduleID  uuid.UUID            `json:"schedule_id"`
	ProjectID   uuid.UUID            `json:"project_id"`
	PermitID    string               `json:"permit_id"`
	InstallerID *uuid.UUID           `json:"installer_id,omitempty"`
	Date        *string              `json:"date,omitempty"`
	WindowStart *string              `json:"window_start,omitempty"`
	WindowEnd   *string              `json:"window_end,omitempty"`
	Status      enums.ScheduleStatus `json:"status"`
	Reason      string               `json:"reason,omitempty"`
}

// Propose ranks open availability over the lookahead horizon and creates a
// schedule record in proposed. The top-ranked slot becomes a tentative hold on
// the record; no window is booked until both parties confirm. Finding no
// candidates is not an error: the record is created with an empty proposal
// list and the portal falls back to manual scheduling.
func (s *service) Propose(ctx context.Context, input ProposeInput) (*models.ScheduleRecord, error) {
	if input.ProjectID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "project id required")
	}
	if input.PermitID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "permit id required")
	}
	if input.Preferences.PreferredTimeOfDay != "" && !input.Preferences.PreferredTimeOfDay.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid preferred time of day")
	}

	if _, err := s.projects.FindProject(ctx, input.ProjectID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "project not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load project")
	}

	today := types.FormatDate(s.now())
	horizon, err := types.AddDays(today, s.matcher.LookaheadDays)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "compute lookahead horizon")
	}

	open, err := s.availability.FindOpenInRange(ctx, today, horizon)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "scan availability")
	}

	ranked := RankSlots(open)
	proposals := BuildProposals(ranked, input.Preferences.PreferredTimeOfDay, s.matcher.MaxProposals)

	record := &models.ScheduleRecord{
		ProjectID:     input.ProjectID,
		PermitID:      input.PermitID,
		Status:        enums.ScheduleStatusProposed,
		ProposedSlots: proposals,
		Preferences:   input.Preferences,
	}
	if len(proposals) > 0 {
		top := proposals[0]
		installerID := top.InstallerID
		date := top.Date
		start := top.WindowStart
		end := top.WindowEnd
		record.InstallerID = &installerID
		record.Date = &date
		record.WindowStart = &start
		record.WindowEnd = &end
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Create(ctx, record); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create schedule record")
		}
		if err := repo.AppendNotification(ctx, &models.ScheduleNotification{
			ScheduleID: record.ID,
			Type:       enums.NotificationScheduleProposed,
			Channel:    enums.ChannelInApp,
			SentAt:     s.now().UTC(),
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append proposal notification")
		}
		return s.emit(ctx, tx, enums.EventScheduleProposed, record, "")
	})
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		logCtx := s.logg.WithScheduleID(ctx, record.ID.String())
		logCtx = s.logg.WithField(logCtx, "proposal_count", len(proposals))
		s.logg.Info(logCtx, "schedule proposed")
	}
	return s.Get(ctx, record.ID)
}

// Confirm records one party's confirmation. The first role to confirm moves
// the record to its single-role state; the counterpart's confirmation reaches
// both_confirmed, at which point the held window is booked in the same
// transaction. Confirming twice as the same role does not advance the record.
func (s *service) Confirm(ctx context.Context, input ConfirmInput) (*models.ScheduleRecord, error) {
	if input.ScheduleID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "schedule id required")
	}
	if !input.ConfirmedBy.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "confirmedBy must be customer or installer")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		record, err := repo.Find(ctx, input.ScheduleID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "schedule record not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load schedule record")
		}

		next := nextConfirmationStatus(record.Status, input.ConfirmedBy)
		if !record.Status.CanTransitionTo(next) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "confirmation not allowed in current state").
				WithDetails(map[string]any{"status": record.Status})
		}

		if next == enums.ScheduleStatusBothConfirmed {
			if record.InstallerID == nil || record.Date == nil {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "record holds no slot to book")
			}
			req := booking.Request{
				InstallerID: *record.InstallerID,
				Date:        *record.Date,
				ProjectID:   record.ProjectID,
			}
			if record.WindowStart != nil && record.WindowEnd != nil {
				req.WindowStart = *record.WindowStart
				req.WindowEnd = *record.WindowEnd
			}
			if _, err := booking.Book(ctx, tx, req); err != nil {
				return err
			}
		}

		if next != record.Status {
			if err := repo.Update(ctx, record.ID, map[string]any{"status": next}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update schedule status")
			}
		}

		notifType := enums.NotificationCustomerConfirmed
		if input.ConfirmedBy == enums.ConfirmPartyInstaller {
			notifType = enums.NotificationInstallerConfirmed
		}
		if err := repo.AppendNotification(ctx, &models.ScheduleNotification{
			ScheduleID: record.ID,
			Type:       notifType,
			Channel:    enums.ChannelInApp,
			SentAt:     s.now().UTC(),
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append confirmation notification")
		}

		record.Status = next
		if err := s.emit(ctx, tx, enums.EventScheduleConfirmed, record, string(input.ConfirmedBy)); err != nil {
			return err
		}
		if next == enums.ScheduleStatusBothConfirmed {
			if err := repo.AppendNotification(ctx, &models.ScheduleNotification{
				ScheduleID: record.ID,
				Type:       enums.NotificationScheduleBooked,
				Channel:    enums.ChannelInApp,
				SentAt:     s.now().UTC(),
			}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append booking notification")
			}
			return s.emit(ctx, tx, enums.EventScheduleBooked, record, "")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, input.ScheduleID)
}

// Reschedule closes the current attempt and opens a successor in proposed with
// the new installer-day/window. Any window booked for the project is released
// in the same transaction; releasing an already-free window is a no-op.
func (s *service) Reschedule(ctx context.Context, input RescheduleInput) (*models.ScheduleRecord, error) {
	if input.ScheduleID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "schedule id required")
	}
	if !types.ValidDate(input.NewDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "new date must be YYYY-MM-DD")
	}
	if !types.ValidClock(input.WindowStart) || !types.ValidClock(input.WindowEnd) ||
		!types.ClockBefore(input.WindowStart, input.WindowEnd) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "new time window must be a valid HH:MM span")
	}

	var successor *models.ScheduleRecord
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		record, err := repo.Find(ctx, input.ScheduleID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "schedule record not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load schedule record")
		}
		if !record.Status.CanTransitionTo(enums.ScheduleStatusRescheduled) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "record can no longer be rescheduled").
				WithDetails(map[string]any{"status": record.Status})
		}

		if record.Status.HoldsBooking() && record.InstallerID != nil && record.Date != nil {
			if err := booking.Release(ctx, tx, *record.InstallerID, *record.Date, record.ProjectID); err != nil {
				return err
			}
		}

		reason := input.Reason
		if err := repo.Update(ctx, record.ID, map[string]any{
			"status":            enums.ScheduleStatusRescheduled,
			"reschedule_reason": reason,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "close rescheduled record")
		}
		if err := repo.AppendNotification(ctx, &models.ScheduleNotification{
			ScheduleID: record.ID,
			Type:       enums.NotificationScheduleRescheduled,
			Channel:    enums.ChannelInApp,
			Reason:     &reason,
			SentAt:     s.now().UTC(),
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append reschedule notification")
		}

		installerID := record.InstallerID
		if input.InstallerID != uuid.Nil {
			id := input.InstallerID
			installerID = &id
		}
		newDate := input.NewDate
		start := input.WindowStart
		end := input.WindowEnd
		fromID := record.ID
		successor = &models.ScheduleRecord{
			ProjectID:       record.ProjectID,
			PermitID:        record.PermitID,
			InstallerID:     installerID,
			Date:            &newDate,
			WindowStart:     &start,
			WindowEnd:       &end,
			Status:          enums.ScheduleStatusProposed,
			Preferences:     record.Preferences,
			RescheduledFrom: &fromID,
		}
		if installerID != nil {
			successor.ProposedSlots = dbtypes.ProposedSlots{{
				InstallerID: *installerID,
				Date:        newDate,
				WindowStart: start,
				WindowEnd:   end,
			}}
		}
		if err := repo.Create(ctx, successor); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create successor record")
		}

		record.Status = enums.ScheduleStatusRescheduled
		return s.emit(ctx, tx, enums.EventScheduleRescheduled, successor, input.Reason)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, successor.ID)
}

// Cancel terminates the attempt, releasing any booked window.
func (s *service) Cancel(ctx context.Context, input CancelInput) (*models.ScheduleRecord, error) {
	if input.ScheduleID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "schedule id required")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		record, err := repo.Find(ctx, input.ScheduleID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "schedule record not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load schedule record")
		}
		if !record.Status.CanTransitionTo(enums.ScheduleStatusCancelled) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "record can no longer be cancelled").
				WithDetails(map[string]any{"status": record.Status})
		}

		if record.Status.HoldsBooking() && record.InstallerID != nil && record.Date != nil {
			if err := booking.Release(ctx, tx, *record.InstallerID, *record.Date, record.ProjectID); err != nil {
				return err
			}
		}

		reason := input.Reason
		if err := repo.Update(ctx, record.ID, map[string]any{
			"status":        enums.ScheduleStatusCancelled,
			"cancel_reason": reason,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel schedule record")
		}
		if err := repo.AppendNotification(ctx, &models.ScheduleNotification{
			ScheduleID: record.ID,
			Type:       enums.NotificationScheduleCancelled,
			Channel:    enums.ChannelInApp,
			Reason:     &reason,
			SentAt:     s.now().UTC(),
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append cancel notification")
		}

		record.Status = enums.ScheduleStatusCancelled
		return s.emit(ctx, tx, enums.EventScheduleCancelled, record, input.Reason)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, input.ScheduleID)
}

// AssignCrew names the workers for a confirmed install.
func (s *service) AssignCrew(ctx context.Context, input AssignCrewInput) (*models.ScheduleRecord, error) {
	if input.ScheduleID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "schedule id required")
	}
	if len(input.Crew) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "crew list required")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		record, err := repo.Find(ctx, input.ScheduleID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "schedule record not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load schedule record")
		}
		if record.Status != enums.ScheduleStatusBothConfirmed && record.Status != enums.ScheduleStatusInProgress {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "crew is assigned after both parties confirm").
				WithDetails(map[string]any{"status": record.Status})
		}
		if err := repo.Update(ctx, record.ID, map[string]any{
			"crew": dbtypes.StringList(input.Crew),
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign crew")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, input.ScheduleID)
}

// Start moves a fully confirmed install to in_progress.
func (s *service) Start(ctx context.Context, scheduleID uuid.UUID) (*models.ScheduleRecord, error) {
	return s.progress(ctx, scheduleID, enums.ScheduleStatusInProgress,
		enums.NotificationInstallStarted, enums.EventInstallStarted)
}

// Complete closes out an in-progress install.
func (s *service) Complete(ctx context.Context, scheduleID uuid.UUID) (*models.ScheduleRecord, error) {
	return s.progress(ctx, scheduleID, enums.ScheduleStatusCompleted,
		enums.NotificationInstallCompleted, enums.EventInstallCompleted)
}

func (s *service) progress(ctx context.Context, scheduleID uuid.UUID, next enums.ScheduleStatus,
	notifType enums.ScheduleNotificationType, eventType enums.OutboxEventType) (*models.ScheduleRecord, error) {
	if scheduleID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "schedule id required")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		record, err := repo.Find(ctx, scheduleID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "schedule record not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load schedule record")
		}
		if !record.Status.CanTransitionTo(next) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "transition not allowed in current state").
				WithDetails(map[string]any{"status": record.Status, "target": next})
		}
		if err := repo.Update(ctx, record.ID, map[string]any{"status": next}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update schedule status")
		}
		if err := repo.AppendNotification(ctx, &models.ScheduleNotification{
			ScheduleID: record.ID,
			Type:       notifType,
			Channel:    enums.ChannelInApp,
			SentAt:     s.now().UTC(),
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append progress notification")
		}
		record.Status = next
		return s.emit(ctx, tx, eventType, record, "")
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, scheduleID)
}

// Get loads one schedule record with its notification log.
func (s *service) Get(ctx context.Context, scheduleID uuid.UUID) (*models.ScheduleRecord, error) {
	if scheduleID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "schedule id required")
	}
	record, err := s.repo.Find(ctx, scheduleID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "schedule record not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load schedule record")
	}
	return record, nil
}

// Upcoming lists the installer's active installs from today forward, date ascending.
func (s *service) Upcoming(ctx context.Context, input UpcomingInput) ([]models.ScheduleRecord, error) {
	if input.InstallerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "installer id required")
	}
	limit := input.Limit
	if limit <= 0 || limit > s.limits.UpcomingInstallsLimit {
		limit = s.limits.UpcomingInstallsLimit
	}
	today := types.FormatDate(s.now())
	records, err := s.repo.FindUpcomingByInstaller(ctx, input.InstallerID, today, enums.ActiveScheduleStatuses(), limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list upcoming installs")
	}
	return records, nil
}

// CustomerSchedule returns the full schedule history across the customer's
// projects, newest first, cancelled and rescheduled attempts included.
func (s *service) CustomerSchedule(ctx context.Context, customerID uuid.UUID) ([]models.ScheduleRecord, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	projectIDs, err := s.projects.ProjectIDsByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve customer projects")
	}
	records, err := s.repo.FindByProjects(ctx, projectIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customer schedule")
	}
	return records, nil
}

// nextConfirmationStatus resolves the bilateral rule: a role confirming after
// its counterpart reaches both_confirmed, otherwise it lands on its own
// single-role state.
func nextConfirmationStatus(current enums.ScheduleStatus, party enums.ConfirmParty) enums.ScheduleStatus {
	switch party {
	case enums.ConfirmPartyCustomer:
		if current == enums.ScheduleStatusInstallerConfirmed {
			return enums.ScheduleStatusBothConfirmed
		}
		return enums.ScheduleStatusCustomerConfirmed
	default:
		if current == enums.ScheduleStatusCustomerConfirmed {
			return enums.ScheduleStatusBothConfirmed
		}
		return enums.ScheduleStatusInstallerConfirmed
	}
}

func (s *service) emit(ctx context.Context, tx *gorm.DB, eventType enums.OutboxEventType, record *models.ScheduleRecord, reason string) error {
	return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
		EventType:     eventType,
		AggregateType: enums.AggregateScheduleRecord,
		AggregateID:   record.ID,
		Version:       1,
		Data: ScheduleEvent{
			ScheduleID:  record.ID,
			ProjectID:   record.ProjectID,
			PermitID:    record.PermitID,
			InstallerID: record.InstallerID,
			Date:        record.Date,
			WindowStart: record.WindowStart,
			WindowEnd:   record.WindowEnd,
			Status:      record.Status,
			Reason:      reason,
		},
	})
}
