package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/sunfieldhq/solarops-backend/internal/scheduling"
	"github.com/sunfieldhq/solarops-backend/pkg/db/models"
	"github.com/sunfieldhq/solarops-backend/pkg/enums"
	"github.com/sunfieldhq/solarops-backend/pkg/logger"
	"github.com/sunfieldhq/solarops-backend/pkg/outbox"
)

const (
	defaultProposalTTLDays = 14
	expiredCancelReason    = "proposal expired without confirmation"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type staleScheduleReader interface {
	FindStaleUnconfirmed(ctx context.Context, cutoff time.Time) ([]models.ScheduleRecord, error)
}

type transactionalScheduleRepo interface {
	Find(ctx context.Context, id uuid.UUID) (*models.ScheduleRecord, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	AppendNotification(ctx context.Context, entry *models.ScheduleNotification) error
}

type scheduleRepoFactory func(tx *gorm.DB) transactionalScheduleRepo

func defaultScheduleRepo(tx *gorm.DB) transactionalScheduleRepo {
	return scheduling.NewRepository(tx)
}

// ProposalExpiryJobParams configure the stale-proposal sweep.
type ProposalExpiryJobParams struct {
	Logger      *logger.Logger
	DB          txRunner
	StaleReader staleScheduleReader
	Outbox      outboxEmitter
	RepoFactory scheduleRepoFactory
	TTLDays     int
}

// NewProposalExpiryJob builds the cron job that cancels schedule attempts
// still waiting on confirmation past the proposal TTL.
func NewProposalExpiryJob(params ProposalExpiryJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	if params.StaleReader == nil {
		return nil, fmt.Errorf("stale schedule reader required")
	}
	if params.Outbox == nil {
		return nil, fmt.Errorf("outbox service required")
	}
	repoFactory := params.RepoFactory
	if repoFactory == nil {
		repoFactory = defaultScheduleRepo
	}
	ttlDays := params.TTLDays
	if ttlDays <= 0 {
		ttlDays = defaultProposalTTLDays
	}
	return &proposalExpiryJob{
		logg:        params.Logger,
		db:          params.DB,
		staleReader: params.StaleReader,
		outbox:      params.Outbox,
		repoFactory: repoFactory,
		ttlDays:     ttlDays,
		now:         time.Now,
	}, nil
}

type proposalExpiryJob struct {
	logg        *logger.Logger
	db          txRunner
	staleReader staleScheduleReader
	outbox      outboxEmitter
	repoFactory scheduleRepoFactory
	ttlDays     int
	now         func() time.Time
}

func (j *proposalExpiryJob) Name() string { return "proposal-expiry" }

func (j *proposalExpiryJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-time.Duration(j.ttlDays) * 24 * time.Hour)
	stale, err := j.staleReader.FindStaleUnconfirmed(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("query stale schedule records: %w", err)
	}

	var errs []error
	expired := 0
	for _, record := range stale {
		if err := j.expireRecord(ctx, record); err != nil {
			errs = append(errs, fmt.Errorf("expire schedule %s: %w", record.ID, err))
			continue
		}
		expired++
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":   cutoff,
		"ttl_days": j.ttlDays,
		"expired":  expired,
		"failed":   len(errs),
	})
	j.logg.Info(logCtx, "proposal expiry sweep complete")
	return multierr.Combine(errs...)
}

// expireRecord re-reads the record inside the transaction so a confirmation
// landing between the sweep query and the cancel does not get clobbered.
func (j *proposalExpiryJob) expireRecord(ctx context.Context, record models.ScheduleRecord) error {
	return j.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := j.repoFactory(tx)
		current, err := repo.Find(ctx, record.ID)
		if err != nil {
			return err
		}
		if current.Status.HoldsBooking() || current.Status.IsTerminal() {
			return nil
		}
		reason := expiredCancelReason
		if err := repo.Update(ctx, current.ID, map[string]any{
			"status":        enums.ScheduleStatusCancelled,
			"cancel_reason": reason,
		}); err != nil {
			return err
		}
		if err := repo.AppendNotification(ctx, &models.ScheduleNotification{
			ScheduleID: current.ID,
			Type:       enums.NotificationProposalExpired,
			Channel:    enums.ChannelInApp,
			Reason:     &reason,
			SentAt:     j.now().UTC(),
		}); err != nil {
			return err
		}
		return j.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventScheduleCancelled,
			AggregateType: enums.AggregateScheduleRecord,
			AggregateID:   current.ID,
			Version:       1,
			OccurredAt:    j.now().UTC(),
			Data: scheduling.ScheduleEvent{
				ScheduleID:  current.ID,
				ProjectID:   current.ProjectID,
				PermitID:    current.PermitID,
				InstallerID: current.InstallerID,
				Date:        current.Date,
				WindowStart: current.WindowStart,
				WindowEnd:   current.WindowEnd,
				Status:      enums.ScheduleStatusCancelled,
				Reason:      reason,
			},
		})
	})
}
