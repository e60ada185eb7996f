// package formatter provides functions to export clip candidates and render jobs to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/tubegrow/clipforge/internal/models"
	"github.com/tubegrow/clipforge/internal/shared"
)

// CandidatesToCSV converts clip candidates to CSV format with columns: ID, Title, Start, End, Duration, Score
func CandidatesToCSV(candidates []models.ClipCandidate) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Start", "End", "Duration", "Score"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, c := range candidates {
		record := []string{
			c.ID,
			c.Title,
			strconv.FormatFloat(c.OriginalStart, 'f', 1, 64),
			strconv.FormatFloat(c.OriginalEnd, 'f', 1, 64),
			strconv.FormatFloat(c.Duration(), 'f', 1, 64),
			strconv.FormatFloat(c.Score, 'f', 2, 64),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// CandidatesToMarkdown converts clip candidates to Markdown format, best scored first when pre-sorted
func CandidatesToMarkdown(video *models.Video, candidates []models.ClipCandidate) ([]byte, error) {
	var buf bytes.Buffer

	title := "Clip Candidates"
	if video != nil && video.Title != "" {
		title = video.Title
	}
	buf.WriteString(fmt.Sprintf("# %s\n\n", title))

	if video != nil {
		buf.WriteString(fmt.Sprintf("**Video**: %s\n", video.ID))
		if video.Duration > 0 {
			buf.WriteString(fmt.Sprintf("**Length**: %s\n", shared.FormatDuration(int(video.Duration))))
		}
	}
	buf.WriteString(fmt.Sprintf("**Candidates**: %d\n\n", len(candidates)))

	buf.WriteString("## Candidates\n\n")
	for i, c := range candidates {
		window := fmt.Sprintf("%s - %s", shared.FormatTimecode(c.OriginalStart), shared.FormatTimecode(c.OriginalEnd))
		buf.WriteString(fmt.Sprintf("%d. %s [%s] (score %.2f)\n", i+1, c.Title, window, c.Score))
		if c.Summary != "" {
			buf.WriteString(fmt.Sprintf("   %s\n", c.Summary))
		}
	}

	return buf.Bytes(), nil
}

// CandidatesToText converts clip candidates to plain text format
func CandidatesToText(candidates []models.ClipCandidate) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Candidates: %d\n\n", len(candidates)))
	for i, c := range candidates {
		buf.WriteString(fmt.Sprintf("%d. %s [%s - %s]\n", i+1, c.Title,
			shared.FormatTimecode(c.OriginalStart), shared.FormatTimecode(c.OriginalEnd)))
	}

	return buf.Bytes(), nil
}

// JobsToCSV converts render jobs to CSV format with columns: ID, Video, Start, End, Aspect, Status, Output
func JobsToCSV(jobs []models.RenderJob) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Video", "Start", "End", "Aspect", "Status", "Output"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, j := range jobs {
		record := []string{
			j.ID,
			j.VideoID,
			strconv.FormatFloat(j.StartTime, 'f', 1, 64),
			strconv.FormatFloat(j.EndTime, 'f', 1, 64),
			string(j.Aspect),
			string(j.Status),
			j.OutputURL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ToManifestJSON generates a JSON manifest of candidates for downstream tooling
func ToManifestJSON(videoID string, candidates []models.ClipCandidate) ([]byte, error) {
	manifest := struct {
		VideoID    string                 `json:"video_id"`
		Count      int                    `json:"count"`
		Candidates []models.ClipCandidate `json:"candidates"`
	}{
		VideoID:    videoID,
		Count:      len(candidates),
		Candidates: candidates,
	}
	return shared.MarshalJSON(manifest, true)
}

// ExportResult contains the paths of files created by WriteCandidateExport
type ExportResult struct {
	CSVFile      string
	ManifestFile string
}

// WriteCandidateExport exports candidates to CSV with an accompanying JSON manifest.
//
// Defaults to the video ID as the base filename & creates {base}_candidates.csv and {base}_manifest.json
func WriteCandidateExport(videoID string, candidates []models.ClipCandidate, baseFilepath string) (*ExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = videoID
	}

	csvData, err := CandidatesToCSV(candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	csvFile := baseFilepath + "_candidates.csv"
	if err := os.WriteFile(csvFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	manifestJSON, err := ToManifestJSON(videoID, candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to generate manifest JSON: %w", err)
	}

	manifestFile := baseFilepath + "_manifest.json"
	if err := os.WriteFile(manifestFile, manifestJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write manifest file: %w", err)
	}

	return &ExportResult{
		CSVFile:      csvFile,
		ManifestFile: manifestFile,
	}, nil
}
