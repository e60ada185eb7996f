package repositories

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/tubegrow/clipforge/internal/models"
	"github.com/tubegrow/clipforge/internal/shared"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func TestCandidateRepository(t *testing.T) {
	t.Run("Create and Get round-trip", func(t *testing.T) {
		repo := NewCandidateRepository(testDB(t))

		candidate := &models.ClipCandidate{
			VideoID:       "vid_1",
			Title:         "Hook moment",
			Summary:       "The retention spike",
			OriginalStart: 100,
			OriginalEnd:   115,
			Score:         0.91,
		}
		if err := repo.Create(candidate); err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if candidate.ID == "" {
			t.Fatal("expected generated id")
		}

		got, err := repo.Get(candidate.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.OriginalStart != 100 || got.OriginalEnd != 115 {
			t.Errorf("unexpected window: %+v", got)
		}
		if got.Title != "Hook moment" {
			t.Errorf("unexpected title: %q", got.Title)
		}
	})

	t.Run("Create rejects malformed windows", func(t *testing.T) {
		repo := NewCandidateRepository(testDB(t))

		err := repo.Create(&models.ClipCandidate{VideoID: "vid_1", OriginalStart: 90, OriginalEnd: 80})
		if err == nil {
			t.Fatal("expected validation error")
		}
	})

	t.Run("ListByVideo orders by score", func(t *testing.T) {
		repo := NewCandidateRepository(testDB(t))

		for _, c := range []models.ClipCandidate{
			{VideoID: "vid_1", OriginalStart: 10, OriginalEnd: 25, Score: 0.5},
			{VideoID: "vid_1", OriginalStart: 40, OriginalEnd: 55, Score: 0.9},
			{VideoID: "vid_2", OriginalStart: 5, OriginalEnd: 20, Score: 0.7},
		} {
			c := c
			if err := repo.Create(&c); err != nil {
				t.Fatalf("create failed: %v", err)
			}
		}

		candidates, err := repo.ListByVideo("vid_1")
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(candidates) != 2 {
			t.Fatalf("expected 2 candidates, got %d", len(candidates))
		}
		if candidates[0].Score != 0.9 {
			t.Errorf("expected best score first, got %+v", candidates[0])
		}
	})

	t.Run("ReplaceForVideo invalidates the old cache", func(t *testing.T) {
		repo := NewCandidateRepository(testDB(t))

		old := &models.ClipCandidate{VideoID: "vid_1", OriginalStart: 10, OriginalEnd: 25}
		if err := repo.Create(old); err != nil {
			t.Fatalf("create failed: %v", err)
		}

		fresh := []models.ClipCandidate{
			{VideoID: "vid_1", OriginalStart: 100, OriginalEnd: 115, Score: 0.8},
		}
		if err := repo.ReplaceForVideo("vid_1", fresh); err != nil {
			t.Fatalf("replace failed: %v", err)
		}

		candidates, err := repo.ListByVideo("vid_1")
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(candidates) != 1 || candidates[0].OriginalStart != 100 {
			t.Errorf("expected only the fresh candidate, got %+v", candidates)
		}

		if _, err := repo.Get(old.ID); !errors.Is(err, shared.ErrCandidateNotFound) {
			t.Errorf("expected old candidate soft-deleted, got %v", err)
		}
	})

	t.Run("Delete soft-deletes", func(t *testing.T) {
		repo := NewCandidateRepository(testDB(t))

		candidate := &models.ClipCandidate{VideoID: "vid_1", OriginalStart: 10, OriginalEnd: 25}
		if err := repo.Create(candidate); err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if err := repo.Delete(candidate.ID); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if err := repo.Delete(candidate.ID); !errors.Is(err, shared.ErrCandidateNotFound) {
			t.Errorf("expected not found on second delete, got %v", err)
		}
	})
}

func TestRenderJobRepository(t *testing.T) {
	t.Run("Create and Get round-trip", func(t *testing.T) {
		repo := NewRenderJobRepository(testDB(t))

		job := &models.RenderJob{
			CandidateID: "cand_1",
			VideoID:     "vid_1",
			StartTime:   98.5,
			EndTime:     112,
			Aspect:      models.AspectVertical,
			Status:      models.JobQueued,
		}
		if err := repo.Create(job); err != nil {
			t.Fatalf("create failed: %v", err)
		}

		got, err := repo.Get(job.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.Aspect != models.AspectVertical || got.Status != models.JobQueued {
			t.Errorf("unexpected job: %+v", got)
		}
		if got.StartTime != 98.5 || got.EndTime != 112 {
			t.Errorf("unexpected range: %+v", got)
		}
		if got.CompletedAt != nil {
			t.Error("expected no completion time on a queued job")
		}
	})

	t.Run("List returns newest first", func(t *testing.T) {
		repo := NewRenderJobRepository(testDB(t))

		first := &models.RenderJob{VideoID: "vid_1", StartTime: 1, EndTime: 10, Aspect: models.AspectSquare, Status: models.JobQueued}
		second := &models.RenderJob{VideoID: "vid_2", StartTime: 2, EndTime: 12, Aspect: models.AspectVertical, Status: models.JobQueued}
		if err := repo.Create(first); err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if err := repo.Create(second); err != nil {
			t.Fatalf("create failed: %v", err)
		}

		jobs, err := repo.List()
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(jobs) != 2 || jobs[0].VideoID != "vid_2" {
			t.Errorf("expected newest first, got %+v", jobs)
		}
	})

	t.Run("UpdateStatus records completion", func(t *testing.T) {
		repo := NewRenderJobRepository(testDB(t))

		job := &models.RenderJob{VideoID: "vid_1", StartTime: 1, EndTime: 10, Aspect: models.AspectVertical, Status: models.JobQueued}
		if err := repo.Create(job); err != nil {
			t.Fatalf("create failed: %v", err)
		}

		done := time.Now()
		if err := repo.UpdateStatus(job.ID, models.JobCompleted, "https://cdn.tubegrow.app/clips/1.mp4", "", &done); err != nil {
			t.Fatalf("update failed: %v", err)
		}

		got, err := repo.Get(job.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.Status != models.JobCompleted || got.OutputURL == "" {
			t.Errorf("unexpected job after update: %+v", got)
		}
		if got.CompletedAt == nil {
			t.Error("expected completion time recorded")
		}
		if !got.Terminal() {
			t.Error("completed job should be terminal")
		}
	})

	t.Run("UpdateStatus on unknown job fails", func(t *testing.T) {
		repo := NewRenderJobRepository(testDB(t))

		err := repo.UpdateStatus("missing", models.JobFailed, "", "boom", nil)
		if !errors.Is(err, shared.ErrJobNotFound) {
			t.Errorf("expected ErrJobNotFound, got %v", err)
		}
	})
}
