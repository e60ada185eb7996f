package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tubegrow/clipforge/internal/models"
	"github.com/tubegrow/clipforge/internal/shared"
)

// CandidateRepository persists [models.ClipCandidate] suggestion caches.
type CandidateRepository struct {
	db *sql.DB
}

// NewCandidateRepository creates a new [CandidateRepository] with the given database connection
func NewCandidateRepository(db *sql.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

// Create inserts a candidate, generating an id when the backend supplied none.
func (r *CandidateRepository) Create(candidate *models.ClipCandidate) error {
	if err := candidate.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "candidates")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	if candidate.ID == "" {
		candidate.ID = shared.GenerateID()
	}

	now := time.Now()
	query := `
		INSERT INTO candidates (id, sequence, video_id, title, summary, start_sec, end_sec, score, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		candidate.ID, sequence, candidate.VideoID, candidate.Title, candidate.Summary,
		candidate.OriginalStart, candidate.OriginalEnd, candidate.Score, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert candidate: %w", err)
	}

	return nil
}

// Get retrieves a candidate by ID, excluding soft-deleted records
func (r *CandidateRepository) Get(id string) (*models.ClipCandidate, error) {
	query := `
		SELECT id, video_id, title, summary, start_sec, end_sec, score
		FROM candidates
		WHERE id = ? AND deleted_at IS NULL
	`

	var c models.ClipCandidate
	err := r.db.QueryRow(query, id).Scan(&c.ID, &c.VideoID, &c.Title, &c.Summary, &c.OriginalStart, &c.OriginalEnd, &c.Score)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrCandidateNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query candidate: %w", err)
	}

	return &c, nil
}

// ListByVideo retrieves all cached candidates for a video, best score first.
func (r *CandidateRepository) ListByVideo(videoID string) ([]models.ClipCandidate, error) {
	query := `
		SELECT id, video_id, title, summary, start_sec, end_sec, score
		FROM candidates
		WHERE video_id = ? AND deleted_at IS NULL
		ORDER BY score DESC, sequence ASC
	`

	rows, err := r.db.Query(query, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	var candidates []models.ClipCandidate
	for rows.Next() {
		var c models.ClipCandidate
		if err := rows.Scan(&c.ID, &c.VideoID, &c.Title, &c.Summary, &c.OriginalStart, &c.OriginalEnd, &c.Score); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// ReplaceForVideo swaps the cached candidate set for a video with a fresh
// fetch, soft-deleting the previous entries.
func (r *CandidateRepository) ReplaceForVideo(videoID string, candidates []models.ClipCandidate) error {
	now := time.Now()
	if _, err := r.db.Exec(
		"UPDATE candidates SET deleted_at = ?, updated_at = ? WHERE video_id = ? AND deleted_at IS NULL",
		now, now, videoID,
	); err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}

	for i := range candidates {
		if err := r.Create(&candidates[i]); err != nil {
			return err
		}
	}
	return nil
}

// Delete soft-deletes a candidate by ID
func (r *CandidateRepository) Delete(id string) error {
	now := time.Now()
	result, err := r.db.Exec(
		"UPDATE candidates SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL",
		now, now, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrCandidateNotFound, id)
	}
	return nil
}
