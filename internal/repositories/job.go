package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tubegrow/clipforge/internal/models"
	"github.com/tubegrow/clipforge/internal/shared"
)

// RenderJobRepository persists submitted [models.RenderJob] records.
type RenderJobRepository struct {
	db *sql.DB
}

// NewRenderJobRepository creates a new [RenderJobRepository] with the given database connection
func NewRenderJobRepository(db *sql.DB) *RenderJobRepository {
	return &RenderJobRepository{db: db}
}

// Create records a submitted job, generating an id when the backend supplied none.
func (r *RenderJobRepository) Create(job *models.RenderJob) error {
	sequence, err := NextSequence(r.db, "render_jobs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	if job.ID == "" {
		job.ID = shared.GenerateID()
	}
	if job.SubmittedAt.IsZero() {
		job.SubmittedAt = time.Now()
	}

	now := time.Now()
	query := `
		INSERT INTO render_jobs (
			id, sequence, candidate_id, video_id, start_sec, end_sec, aspect_ratio,
			status, output_url, error_message, submitted_at, completed_at, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var candidateID any = job.CandidateID
	if candidateID == "" {
		candidateID = nil
	}
	var errorMessage any = job.Error
	if errorMessage == "" {
		errorMessage = nil
	}

	_, err = r.db.Exec(query,
		job.ID, sequence, candidateID, job.VideoID, job.StartTime, job.EndTime, string(job.Aspect),
		string(job.Status), job.OutputURL, errorMessage, job.SubmittedAt, job.CompletedAt, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert render job: %w", err)
	}

	return nil
}

// Get retrieves a job by ID, excluding soft-deleted records
func (r *RenderJobRepository) Get(id string) (*models.RenderJob, error) {
	query := `
		SELECT id, candidate_id, video_id, start_sec, end_sec, aspect_ratio,
		       status, output_url, error_message, submitted_at, completed_at
		FROM render_jobs
		WHERE id = ? AND deleted_at IS NULL
	`

	job, err := scanJob(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrJobNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query render job: %w", err)
	}
	return job, nil
}

// List retrieves all jobs, most recently submitted first.
func (r *RenderJobRepository) List() ([]models.RenderJob, error) {
	query := `
		SELECT id, candidate_id, video_id, start_sec, end_sec, aspect_ratio,
		       status, output_url, error_message, submitted_at, completed_at
		FROM render_jobs
		WHERE deleted_at IS NULL
		ORDER BY sequence DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query render jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.RenderJob
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan render job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

// UpdateStatus applies a backend status report to a recorded job.
func (r *RenderJobRepository) UpdateStatus(id string, status models.JobStatus, outputURL, errMessage string, completedAt *time.Time) error {
	var errVal any = errMessage
	if errMessage == "" {
		errVal = nil
	}

	result, err := r.db.Exec(`
		UPDATE render_jobs
		SET status = ?, output_url = ?, error_message = ?, completed_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`, string(status), outputURL, errVal, completedAt, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update render job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrJobNotFound, id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*models.RenderJob, error) {
	var (
		job          models.RenderJob
		candidateID  sql.NullString
		aspect       string
		status       string
		errorMessage sql.NullString
		completedAt  sql.NullTime
	)

	err := row.Scan(
		&job.ID, &candidateID, &job.VideoID, &job.StartTime, &job.EndTime, &aspect,
		&status, &job.OutputURL, &errorMessage, &job.SubmittedAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}

	job.CandidateID = candidateID.String
	job.Aspect = models.AspectRatio(aspect)
	job.Status = models.JobStatus(status)
	job.Error = errorMessage.String
	if completedAt.Valid {
		job.CompletedAt = &completedAt.Time
	}
	return &job, nil
}
