package availability

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sunfieldhq/solarops-backend/pkg/db/models"
)

// Repository persists availability slots and their windows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByInstallerDate(ctx context.Context, installerID uuid.UUID, date string) (*models.AvailabilitySlot, error)
	FindRange(ctx context.Context, installerID uuid.UUID, startDate, endDate string) ([]models.AvailabilitySlot, error)
	FindOpenInRange(ctx context.Context, startDate, endDate string) ([]models.AvailabilitySlot, error)
	Create(ctx context.Context, slot *models.AvailabilitySlot) error
	ReplaceWindows(ctx context.Context, slot *models.AvailabilitySlot, windows []models.TimeWindow) error
	UpdateAttributes(ctx context.Context, slotID uuid.UUID, updates map[string]any) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an availability repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByInstallerDate(ctx context.Context, installerID uuid.UUID, date string) (*models.AvailabilitySlot, error) {
	var slot models.AvailabilitySlot
	err := r.db.WithContext(ctx).
		Preload("Windows", windowOrder).
		Where("installer_id = ? AND date = ?", installerID, date).
		First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *repository) FindRange(ctx context.Context, installerID uuid.UUID, startDate, endDate string) ([]models.AvailabilitySlot, error) {
	var slots []models.AvailabilitySlot
	err := r.db.WithContext(ctx).
		Preload("Windows", windowOrder).
		Where("installer_id = ? AND date >= ? AND date <= ?", installerID, startDate, endDate).
		Order("date ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// FindOpenInRange returns every installer's slots in the window that still
// carry at least one available time window, ordered by date.
func (r *repository) FindOpenInRange(ctx context.Context, startDate, endDate string) ([]models.AvailabilitySlot, error) {
	var slots []models.AvailabilitySlot
	err := r.db.WithContext(ctx).
		Preload("Windows", windowOrder).
		Where("date >= ? AND date <= ?", startDate, endDate).
		Where("EXISTS (SELECT 1 FROM time_windows tw WHERE tw.slot_id = availability_slots.id AND tw.status = ?)", "available").
		Order("date ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *repository) Create(ctx context.Context, slot *models.AvailabilitySlot) error {
	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}
	for i := range slot.Windows {
		if slot.Windows[i].ID == uuid.Nil {
			slot.Windows[i].ID = uuid.New()
		}
		slot.Windows[i].SlotID = slot.ID
		slot.Windows[i].Position = i
	}
	return r.db.WithContext(ctx).Create(slot).Error
}

// ReplaceWindows drops the slot's windows and writes the new set.
func (r *repository) ReplaceWindows(ctx context.Context, slot *models.AvailabilitySlot, windows []models.TimeWindow) error {
	if err := r.db.WithContext(ctx).
		Where("slot_id = ?", slot.ID).
		Delete(&models.TimeWindow{}).Error; err != nil {
		return err
	}
	for i := range windows {
		if windows[i].ID == uuid.Nil {
			windows[i].ID = uuid.New()
		}
		windows[i].SlotID = slot.ID
		windows[i].Position = i
	}
	if len(windows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&windows).Error
}

func (r *repository) UpdateAttributes(ctx context.Context, slotID uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.AvailabilitySlot{}).
		Where("id = ?", slotID).
		Updates(updates).Error
}

func windowOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
