package repositories

import (
	"errors"

	"workhub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	CreateJob(job *models.Job) error
	FindJobByID(id string) (*models.Job, error)
	FindJobsByEmployer(employerID string) ([]models.Job, error)
	CreateApplication(application *models.JobApplication) error
	FindApplicationsByJob(jobID string) ([]models.JobApplication, error)
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) CreateJob(job *models.Job) error {
	return r.db.Create(job).Error
}

func (r *JobRepositoryImpl) FindJobByID(id string) (*models.Job, error) {
	var job models.Job
	err := r.db.First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindJobsByEmployer(employerID string) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.Where("employer_id = ?", employerID).
		Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) CreateApplication(application *models.JobApplication) error {
	return r.db.Create(application).Error
}

func (r *JobRepositoryImpl) FindApplicationsByJob(jobID string) ([]models.JobApplication, error) {
	var applications []models.JobApplication
	err := r.db.Where("job_id = ?", jobID).
		Order("created_at ASC").Find(&applications).Error
	return applications, err
}
