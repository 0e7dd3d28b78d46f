package services

import (
	"workhub_backend/internal/models"
	"workhub_backend/internal/repositories"
	"workhub_backend/pkg/apperrors"
)

type JobService interface {
	// PostJob creates a job for the employer. The quota for job posting is
	// consumed only when the job actually lands.
	PostJob(employerID, title, description string) (*models.Job, error)

	// ApplyToJob files a worker's application against quota.
	ApplyToJob(workerID, jobID, message string) (*models.JobApplication, error)

	GetJob(id string) (*models.Job, error)
	MyJobs(employerID string) ([]models.Job, error)

	// Applications lists applications for a job the employer owns.
	Applications(employerID, jobID string) ([]models.JobApplication, error)
}

type jobService struct {
	jobRepo repositories.JobRepository
	quota   QuotaService
}

func NewJobService(jobRepo repositories.JobRepository, quota QuotaService) JobService {
	return &jobService{jobRepo: jobRepo, quota: quota}
}

func (s *jobService) PostJob(employerID, title, description string) (*models.Job, error) {
	if _, err := s.quota.Enforce(employerID, models.CapabilityPostJob, nil); err != nil {
		return nil, err
	}

	job := &models.Job{
		EmployerID:  employerID,
		Title:       title,
		Description: description,
		Status:      models.JobStatusActive,
	}
	if err := s.jobRepo.CreateJob(job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.quota.RecordUsage(employerID, models.CapabilityPostJob, nil,
		map[string]interface{}{"job_id": job.ID}); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *jobService) ApplyToJob(workerID, jobID, message string) (*models.JobApplication, error) {
	job, err := s.GetJob(jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != models.JobStatusActive {
		return nil, apperrors.ErrInvalidOperation("jobs", "Job is not accepting applications")
	}
	if job.EmployerID == workerID {
		return nil, apperrors.ErrInvalidOperation("jobs", "Cannot apply to your own job")
	}

	if _, err := s.quota.Enforce(workerID, models.CapabilityApplyJob, nil); err != nil {
		return nil, err
	}

	application := &models.JobApplication{
		JobID:    jobID,
		WorkerID: workerID,
		Message:  message,
		Status:   models.ApplicationStatusPending,
	}
	if err := s.jobRepo.CreateApplication(application); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.quota.RecordUsage(workerID, models.CapabilityApplyJob, nil,
		map[string]interface{}{"job_id": jobID}); err != nil {
		return nil, err
	}
	return application, nil
}

func (s *jobService) GetJob(id string) (*models.Job, error) {
	job, err := s.jobRepo.FindJobByID(id)
	if err != nil {
		if err == repositories.ErrJobNotFound {
			return nil, apperrors.ErrNotFound(err, "Job not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

func (s *jobService) MyJobs(employerID string) ([]models.Job, error) {
	jobs, err := s.jobRepo.FindJobsByEmployer(employerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return jobs, nil
}

func (s *jobService) Applications(employerID, jobID string) ([]models.JobApplication, error) {
	job, err := s.GetJob(jobID)
	if err != nil {
		return nil, err
	}
	if job.EmployerID != employerID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	applications, err := s.jobRepo.FindApplicationsByJob(jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return applications, nil
}
