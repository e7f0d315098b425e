package service

import (
	"context"
	"fmt"
	"time"

	"kitchensaver/internal/errors"
	"kitchensaver/internal/model"
	"kitchensaver/internal/repository"
)

// JobInput carries the mutable job fields. Create and Update both take
// the full set: unlike user updates, a job update is a full replace.
type JobInput struct {
	JobNumber             string    `json:"jobNumber"`
	JobName               string    `json:"jobName"`
	NumCabinets           int       `json:"numCabinets"`
	NumUppers             int       `json:"numUppers"`
	NumLowers             int       `json:"numLowers"`
	CabinetMakerID        uint      `json:"cabinetMakerId"`
	InstallerID           uint      `json:"installerId"`
	DueDate               time.Time `json:"dueDate"`
	JobColor              string    `json:"jobColor"`
	Office                string    `json:"office"`
	Status                string    `json:"status"`
	MaterialOrderStatus   string    `json:"materialOrderStatus"`
	MaterialArrivalStatus string    `json:"materialArrivalStatus"`
}

// JobView is the response shape for every job read path: the two user
// references are flattened into ids and display names, never exposed
// as raw sub-objects.
type JobView struct {
	ID                    uint      `json:"id"`
	JobNumber             string    `json:"jobNumber"`
	JobName               string    `json:"jobName"`
	NumCabinets           int       `json:"numCabinets"`
	NumUppers             int       `json:"numUppers"`
	NumLowers             int       `json:"numLowers"`
	CabinetMakerID        uint      `json:"cabinetMakerId"`
	CabinetMakerName      string    `json:"cabinetMakerName"`
	InstallerID           uint      `json:"installerId"`
	InstallerName         string    `json:"installerName"`
	DueDate               time.Time `json:"dueDate"`
	JobColor              string    `json:"jobColor"`
	Office                string    `json:"office"`
	Status                string    `json:"status"`
	MaterialOrderStatus   string    `json:"materialOrderStatus"`
	MaterialArrivalStatus string    `json:"materialArrivalStatus"`
	Image                 string    `json:"image"`
}

// JobService handles job records and their status, image and filter
// operations.
type JobService interface {
	Create(ctx context.Context, in *JobInput) (*JobView, error)
	Update(ctx context.Context, id uint, in *JobInput) (*JobView, error)
	UpdateStatus(ctx context.Context, id uint, status, materialOrderStatus, materialArrivalStatus string) (*JobView, error)
	UpdateImage(ctx context.Context, id uint, image string) (*JobView, error)
	Delete(ctx context.Context, id uint) error
	ListAll(ctx context.Context) ([]JobView, error)
	ListByCabinetMaker(ctx context.Context, id uint) ([]JobView, error)
	ListByInstaller(ctx context.Context, id uint) ([]JobView, error)
	ListVisible(ctx context.Context, role model.Role, userID uint) ([]JobView, error)
	Filter(ctx context.Context, f repository.JobFilter) ([]JobView, error)
}

type jobService struct {
	jobs  repository.JobRepository
	users repository.UserRepository
}

// NewJobService builds a JobService over the job and user repositories.
func NewJobService(jobs repository.JobRepository, users repository.UserRepository) JobService {
	return &jobService{jobs: jobs, users: users}
}

// apply copies in onto job, resolving the two user references by id.
func (s *jobService) apply(ctx context.Context, in *JobInput, job *model.Job) error {
	maker, err := s.users.FindByID(ctx, in.CabinetMakerID)
	if err != nil {
		return errors.ErrCabinetMakerNotFound
	}
	installer, err := s.users.FindByID(ctx, in.InstallerID)
	if err != nil {
		return errors.ErrInstallerNotFound
	}

	job.JobNumber = in.JobNumber
	job.JobName = in.JobName
	job.NumCabinets = in.NumCabinets
	job.NumUppers = in.NumUppers
	job.NumLowers = in.NumLowers
	job.CabinetMakerID = maker.ID
	job.CabinetMaker = maker
	job.InstallerID = installer.ID
	job.Installer = installer
	job.DueDate = in.DueDate
	job.JobColor = in.JobColor
	job.Office = in.Office
	job.Status = in.Status
	job.MaterialOrderStatus = in.MaterialOrderStatus
	job.MaterialArrivalStatus = in.MaterialArrivalStatus
	return nil
}

func toView(job *model.Job) *JobView {
	view := &JobView{
		ID:                    job.ID,
		JobNumber:             job.JobNumber,
		JobName:               job.JobName,
		NumCabinets:           job.NumCabinets,
		NumUppers:             job.NumUppers,
		NumLowers:             job.NumLowers,
		CabinetMakerID:        job.CabinetMakerID,
		InstallerID:           job.InstallerID,
		DueDate:               job.DueDate,
		JobColor:              job.JobColor,
		Office:                job.Office,
		Status:                job.Status,
		MaterialOrderStatus:   job.MaterialOrderStatus,
		MaterialArrivalStatus: job.MaterialArrivalStatus,
		Image:                 job.Image,
	}
	if job.CabinetMaker != nil {
		view.CabinetMakerName = job.CabinetMaker.FullName()
	}
	if job.Installer != nil {
		view.InstallerName = job.Installer.FullName()
	}
	return view
}

func toViews(jobs []model.Job) []JobView {
	views := make([]JobView, 0, len(jobs))
	for i := range jobs {
		views = append(views, *toView(&jobs[i]))
	}
	return views
}

func (s *jobService) Create(ctx context.Context, in *JobInput) (*JobView, error) {
	job := &model.Job{}
	if err := s.apply(ctx, in, job); err != nil {
		return nil, err
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	return toView(job), nil
}

func (s *jobService) Update(ctx context.Context, id uint, in *JobInput) (*JobView, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, errors.ErrJobNotFound
	}
	if err := s.apply(ctx, in, job); err != nil {
		return nil, err
	}
	if err := s.jobs.Save(ctx, job); err != nil {
		return nil, fmt.Errorf("save job: %w", err)
	}
	return toView(job), nil
}

// UpdateStatus is a three-field partial update, independent of Update.
func (s *jobService) UpdateStatus(ctx context.Context, id uint, status, materialOrderStatus, materialArrivalStatus string) (*JobView, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, errors.ErrJobNotFound
	}
	job.Status = status
	job.MaterialOrderStatus = materialOrderStatus
	job.MaterialArrivalStatus = materialArrivalStatus
	if err := s.jobs.Save(ctx, job); err != nil {
		return nil, fmt.Errorf("save job: %w", err)
	}
	return toView(job), nil
}

func (s *jobService) UpdateImage(ctx context.Context, id uint, image string) (*JobView, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, errors.ErrJobNotFound
	}
	job.Image = image
	if err := s.jobs.Save(ctx, job); err != nil {
		return nil, fmt.Errorf("save job: %w", err)
	}
	return toView(job), nil
}

func (s *jobService) Delete(ctx context.Context, id uint) error {
	if _, err := s.jobs.FindByID(ctx, id); err != nil {
		return errors.ErrJobNotFound
	}
	return s.jobs.Delete(ctx, id)
}

func (s *jobService) ListAll(ctx context.Context) ([]JobView, error) {
	jobs, err := s.jobs.List(ctx)
	if err != nil {
		return nil, err
	}
	return toViews(jobs), nil
}

func (s *jobService) ListByCabinetMaker(ctx context.Context, id uint) ([]JobView, error) {
	jobs, err := s.jobs.ListByCabinetMaker(ctx, id)
	if err != nil {
		return nil, err
	}
	return toViews(jobs), nil
}

func (s *jobService) ListByInstaller(ctx context.Context, id uint) ([]JobView, error) {
	jobs, err := s.jobs.ListByInstaller(ctx, id)
	if err != nil {
		return nil, err
	}
	return toViews(jobs), nil
}

// ListVisible selects the listing by the caller's role: admins see
// everything, cabinet makers and installers only their own jobs. The
// switch is exhaustive over the role enum; anything else in a token is
// a client error.
func (s *jobService) ListVisible(ctx context.Context, role model.Role, userID uint) ([]JobView, error) {
	switch role {
	case model.RoleAdmin:
		return s.ListAll(ctx)
	case model.RoleCabinetMaker:
		return s.ListByCabinetMaker(ctx, userID)
	case model.RoleInstaller:
		return s.ListByInstaller(ctx, userID)
	default:
		return nil, errors.ErrInvalidRole
	}
}

func (s *jobService) Filter(ctx context.Context, f repository.JobFilter) ([]JobView, error) {
	jobs, err := s.jobs.Filter(ctx, f)
	if err != nil {
		return nil, err
	}
	return toViews(jobs), nil
}
