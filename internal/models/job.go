package models

// Job is a minimal posting record; creating one is the archetypal
// quota-guarded action for employers.
type Job struct {
	BaseModel
	EmployerID  string    `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"type:text"`
	Status      JobStatus `gorm:"type:varchar(20);default:'active'"`
}

// JobApplication is a worker's response to a job; the quota-guarded action for
// workers.
type JobApplication struct {
	BaseModel
	JobID    string            `gorm:"type:uuid;not null;index"`
	WorkerID string            `gorm:"type:uuid;not null;index"`
	Message  string            `gorm:"type:text"`
	Status   ApplicationStatus `gorm:"type:varchar(20);default:'pending'"`
}
