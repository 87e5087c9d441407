package projects

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sunfieldhq/solarops-backend/pkg/db/models"
)

// Repository exposes the project/installer reference data the scheduling core
// depends on. The wider project pipeline (leads, permits, funding) lives in
// other services; this repo only closes the references the scheduler needs.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateProject(ctx context.Context, project *models.Project) error
	FindProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	ProjectIDsByCustomer(ctx context.Context, customerID uuid.UUID) ([]uuid.UUID, error)
	CreateInstaller(ctx context.Context, installer *models.Installer) error
	FindInstaller(ctx context.Context, id uuid.UUID) (*models.Installer, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a projects repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateProject(ctx context.Context, project *models.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *repository) FindProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *repository) ProjectIDsByCustomer(ctx context.Context, customerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("customer_id = ?", customerID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repository) CreateInstaller(ctx context.Context, installer *models.Installer) error {
	if installer.ID == uuid.Nil {
		installer.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(installer).Error
}

func (r *repository) FindInstaller(ctx context.Context, id uuid.UUID) (*models.Installer, error) {
	var installer models.Installer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&installer).Error; err != nil {
		return nil, err
	}
	return &installer, nil
}
