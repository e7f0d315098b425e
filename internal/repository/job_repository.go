package repository

import (
	"context"

	"gorm.io/gorm"

	"kitchensaver/internal/model"
)

// JobFilter holds the five optional equality predicates of the job
// filter endpoint. A nil field means the predicate is not applied.
type JobFilter struct {
	Status                *string
	InstallerID           *uint
	MaterialOrderStatus   *string
	MaterialArrivalStatus *string
	Office                *string
}

// JobRepository defines job persistence operations. All read paths
// preload the cabinet maker and installer references so the service
// can flatten them into display names.
type JobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	Save(ctx context.Context, job *model.Job) error
	FindByID(ctx context.Context, id uint) (*model.Job, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]model.Job, error)
	ListByCabinetMaker(ctx context.Context, id uint) ([]model.Job, error)
	ListByInstaller(ctx context.Context, id uint) ([]model.Job, error)
	Filter(ctx context.Context, f JobFilter) ([]model.Job, error)
}

type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository builds a GORM-backed repository.
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) withRefs(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("CabinetMaker").Preload("Installer")
}

func (r *jobRepository) Create(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *jobRepository) Save(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Save(job).Error
}

func (r *jobRepository) FindByID(ctx context.Context, id uint) (*model.Job, error) {
	var job model.Job
	if err := r.withRefs(ctx).First(&job, id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Job{}, id).Error
}

func (r *jobRepository) List(ctx context.Context) ([]model.Job, error) {
	var jobs []model.Job
	if err := r.withRefs(ctx).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *jobRepository) ListByCabinetMaker(ctx context.Context, id uint) ([]model.Job, error) {
	var jobs []model.Job
	if err := r.withRefs(ctx).Where("cabinet_maker_id = ?", id).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *jobRepository) ListByInstaller(ctx context.Context, id uint) ([]model.Job, error) {
	var jobs []model.Job
	if err := r.withRefs(ctx).Where("installer_id = ?", id).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// Filter narrows the job list by each predicate that is set. With no
// predicates set it is equivalent to List.
func (r *jobRepository) Filter(ctx context.Context, f JobFilter) ([]model.Job, error) {
	q := r.withRefs(ctx)
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.InstallerID != nil {
		q = q.Where("installer_id = ?", *f.InstallerID)
	}
	if f.MaterialOrderStatus != nil {
		q = q.Where("material_order_status = ?", *f.MaterialOrderStatus)
	}
	if f.MaterialArrivalStatus != nil {
		q = q.Where("material_arrival_status = ?", *f.MaterialArrivalStatus)
	}
	if f.Office != nil {
		q = q.Where("office = ?", *f.Office)
	}
	var jobs []model.Job
	if err := q.Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}
