package services

import (
	"testing"

	"workhub_backend/internal/models"
	"workhub_backend/internal/repositories"
	"workhub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJobRepo struct {
	jobs         map[string]*models.Job
	applications []models.JobApplication
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[string]*models.Job)}
}

func (f *fakeJobRepo) CreateJob(job *models.Job) error {
	if job.ID == "" {
		job.ID = "job-" + job.Title
	}
	f.jobs[job.ID] = job
	return nil
}

func (f *fakeJobRepo) FindJobByID(id string) (*models.Job, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, repositories.ErrJobNotFound
	}
	return job, nil
}

func (f *fakeJobRepo) FindJobsByEmployer(employerID string) ([]models.Job, error) {
	var out []models.Job
	for _, j := range f.jobs {
		if j.EmployerID == employerID {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) CreateApplication(application *models.JobApplication) error {
	f.applications = append(f.applications, *application)
	return nil
}

func (f *fakeJobRepo) FindApplicationsByJob(jobID string) ([]models.JobApplication, error) {
	var out []models.JobApplication
	for _, a := range f.applications {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out, nil
}

func newJobService(planRepo *fakePlanRepo, jobRepo *fakeJobRepo) JobService {
	return NewJobService(jobRepo, newTestQuota(planRepo, &fakeUsageRepo{}))
}

func TestPostJobConsumesQuota(t *testing.T) {
	t.Parallel()
	svc := newJobService(newFakePlanRepo(), newFakeJobRepo())

	// Free tier allows a single posting per month.
	_, err := svc.PostJob("employer-1", "First job", "desc")
	require.NoError(t, err)

	_, err = svc.PostJob("employer-1", "Second job", "desc")
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeQuotaExceeded, appErr.Code)
}

func TestApplyToJobRules(t *testing.T) {
	t.Parallel()
	planRepo := newFakePlanRepo()
	jobRepo := newFakeJobRepo()
	svc := newJobService(planRepo, jobRepo)

	job, err := svc.PostJob("employer-1", "Open role", "desc")
	require.NoError(t, err)

	_, err = svc.ApplyToJob("worker-1", job.ID, "hi")
	require.NoError(t, err)

	_, err = svc.ApplyToJob("employer-1", job.ID, "hi")
	assert.Error(t, err, "cannot apply to your own job")

	job.Status = models.JobStatusClosed
	_, err = svc.ApplyToJob("worker-2", job.ID, "hi")
	assert.Error(t, err, "closed jobs take no applications")
}

func TestApplicationsOwnerOnly(t *testing.T) {
	t.Parallel()
	planRepo := newFakePlanRepo()
	jobRepo := newFakeJobRepo()
	svc := newJobService(planRepo, jobRepo)

	job, err := svc.PostJob("employer-1", "Open role", "desc")
	require.NoError(t, err)
	_, err = svc.ApplyToJob("worker-1", job.ID, "hi")
	require.NoError(t, err)

	apps, err := svc.Applications("employer-1", job.ID)
	require.NoError(t, err)
	assert.Len(t, apps, 1)

	_, err = svc.Applications("employer-2", job.ID)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}
