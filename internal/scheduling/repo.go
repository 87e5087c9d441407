package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sunfieldhq/solarops-backend/pkg/db/models"
	"github.com/sunfieldhq/solarops-backend/pkg/enums"
)

// Repository persists schedule records and their notification logs.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, record *models.ScheduleRecord) error
	Find(ctx context.Context, id uuid.UUID) (*models.ScheduleRecord, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	AppendNotification(ctx context.Context, entry *models.ScheduleNotification) error
	FindUpcomingByInstaller(ctx context.Context, installerID uuid.UUID, fromDate string, statuses []enums.ScheduleStatus, limit int) ([]models.ScheduleRecord, error)
	FindByProjects(ctx context.Context, projectIDs []uuid.UUID) ([]models.ScheduleRecord, error)
	FindStaleUnconfirmed(ctx context.Context, cutoff time.Time) ([]models.ScheduleRecord, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a scheduling repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, record *models.ScheduleRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) Find(ctx context.Context, id uuid.UUID) (*models.ScheduleRecord, error) {
	var record models.ScheduleRecord
	err := r.db.WithContext(ctx).
		Preload("Notifications", notificationOrder).
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.ScheduleRecord{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) AppendNotification(ctx context.Context, entry *models.ScheduleNotification) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.SentAt.IsZero() {
		entry.SentAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindUpcomingByInstaller(ctx context.Context, installerID uuid.UUID, fromDate string, statuses []enums.ScheduleStatus, limit int) ([]models.ScheduleRecord, error) {
	var records []models.ScheduleRecord
	err := r.db.WithContext(ctx).
		Where("installer_id = ? AND date >= ? AND status IN ?", installerID, fromDate, statuses).
		Order("date ASC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) FindByProjects(ctx context.Context, projectIDs []uuid.UUID) ([]models.ScheduleRecord, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	var records []models.ScheduleRecord
	err := r.db.WithContext(ctx).
		Preload("Notifications", notificationOrder).
		Where("project_id IN ?", projectIDs).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// FindStaleUnconfirmed returns records still waiting on confirmation whose
// last activity predates the cutoff. Used by the expiry sweep.
func (r *repository) FindStaleUnconfirmed(ctx context.Context, cutoff time.Time) ([]models.ScheduleRecord, error) {
	var records []models.ScheduleRecord
	err := r.db.WithContext(ctx).
		Where("status IN ? AND updated_at < ?", []enums.ScheduleStatus{
			enums.ScheduleStatusProposed,
			enums.ScheduleStatusCustomerConfirmed,
			enums.ScheduleStatusInstallerConfirmed,
		}, cutoff).
		Order("updated_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func notificationOrder(db *gorm.DB) *gorm.DB {
	return db.Order("sent_at ASC")
}
