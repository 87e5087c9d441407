package projects

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sunfieldhq/solarops-backend/pkg/db/models"
	dbtypes "github.com/sunfieldhq/solarops-backend/pkg/db/types"
	pkgerrors "github.com/sunfieldhq/solarops-backend/pkg/errors"
)

// CreateProjectInput registers a customer project eligible for scheduling.
type CreateProjectInput struct {
	CustomerID  uuid.UUID
	SiteAddress string
}

// CreateInstallerInput registers an installer able to publish availability.
type CreateInstallerInput struct {
	Name             string
	ServiceAreaMiles int
	Equipment        []string
}

// Service manages the installer and project registries.
type Service interface {
	CreateProject(ctx context.Context, input CreateProjectInput) (*models.Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	CreateInstaller(ctx context.Context, input CreateInstallerInput) (*models.Installer, error)
	GetInstaller(ctx context.Context, id uuid.UUID) (*models.Installer, error)
}

type service struct {
	repo Repository
}

// NewService builds the registry service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("projects repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateProject(ctx context.Context, input CreateProjectInput) (*models.Project, error) {
	if input.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if input.SiteAddress == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "site address required")
	}
	project := &models.Project{
		CustomerID:  input.CustomerID,
		SiteAddress: input.SiteAddress,
	}
	if err := s.repo.CreateProject(ctx, project); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create project")
	}
	return project, nil
}

func (s *service) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "project id required")
	}
	project, err := s.repo.FindProject(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "project not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load project")
	}
	return project, nil
}

func (s *service) CreateInstaller(ctx context.Context, input CreateInstallerInput) (*models.Installer, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "installer name required")
	}
	if input.ServiceAreaMiles < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "service area must be non-negative")
	}
	installer := &models.Installer{
		Name:             input.Name,
		ServiceAreaMiles: input.ServiceAreaMiles,
		Equipment:        dbtypes.StringList(input.Equipment),
	}
	if err := s.repo.CreateInstaller(ctx, installer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create installer")
	}
	return installer, nil
}

func (s *service) GetInstaller(ctx context.Context, id uuid.UUID) (*models.Installer, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "installer id required")
	}
	installer, err := s.repo.FindInstaller(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "installer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load installer")
	}
	return installer, nil
}
