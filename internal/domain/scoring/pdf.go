package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

// GenerateScorecardPDF renders one performance record to a PDF under the
// service storage directory and returns the file path.
func (s *Service) GenerateScorecardPDF(ctx context.Context, recordID string) (string, error) {
	record, err := s.store.GetRecord(ctx, recordID)
	if err != nil {
		return "", err
	}

	name, err := s.store.EmployeeName(ctx, record.EmployeeID)
	if err != nil {
		slog.Warn("scorecard employee name lookup failed", "employeeId", record.EmployeeID, "err", err)
		name = record.EmployeeID
	}

	dir := filepath.Join(s.storageDir, "scorecards")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(dir, record.ID+".pdf")

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Performance Scorecard")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", name))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", record.EvaluationPeriod))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Date: %s", record.Date.Format("2006-01-02")))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Overall rating: %.1f / 5.0", record.OverallRating))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Punctuality: %.0f%%", record.PunctualityScore))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Hours worked: %.1f across %d timesheet entries", record.HoursWorked, record.TasksCompleted))

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}
