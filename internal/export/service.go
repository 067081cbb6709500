package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/tripdocs/internal/entity"
	"github.com/joseph-ayodele/tripdocs/internal/importqueue"
	"github.com/joseph-ayodele/tripdocs/internal/repository"
)

const (
	ReviewSheet = "Review"
	SavedSheet  = "Reservations"
)

var recordHeaders = []string{
	"Type",
	"Name",
	"Provider",
	"Reservation Code",
	"Traveler",
	"Start Date",
	"Start Time",
	"End Date",
	"End Time",
	"Origin",
	"Destination",
	"Amount",
	"Currency",
	"Payment",
	"Confidence",
	"Quality",
	"Scope",
	"Missing Fields",
}

// Service turns queue snapshots and saved reservations into XLSX bytes.
type Service struct {
	store  repository.ReservationStore
	logger *slog.Logger
}

// NewService accepts a nil store when only queue exports are needed.
func NewService(store repository.ReservationStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// ExportQueueXLSX writes one review row per queue item, in queue order.
// Items without a record still get a row so failures stay visible.
func (s *Service) ExportQueueXLSX(items []importqueue.Item) ([]byte, error) {
	start := time.Now()
	headers := append([]string{"File", "Status"}, recordHeaders...)
	headers = append(headers, "Warnings")

	rows := make([][]any, 0, len(items))
	for _, it := range items {
		row := []any{it.Document.FileName, string(it.Status)}
		row = append(row, recordCells(it.Record, it.Missing)...)
		row = append(row, truncate(strings.Join(it.Warnings, " | "), 240))
		rows = append(rows, row)
	}

	b, err := writeWorkbook(ReviewSheet, headers, rows)
	if err != nil {
		return nil, err
	}
	s.logger.Info("export.xlsx.ok",
		"sheet", ReviewSheet,
		"rows", len(rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return b, nil
}

// ExportSavedXLSX writes the confirmed reservations matching f.
func (s *Service) ExportSavedXLSX(ctx context.Context, f repository.ListFilter) ([]byte, error) {
	if s.store == nil {
		return nil, fmt.Errorf("export: no reservation store configured")
	}
	start := time.Now()
	saved, err := s.store.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("query reservations: %w", err)
	}

	headers := append([]string{"File", "Saved At"}, recordHeaders...)
	rows := make([][]any, 0, len(saved))
	for _, r := range saved {
		row := []any{r.FileName, r.SavedAt.UTC().Format(time.RFC3339)}
		var missing []string
		if r.Record != nil {
			missing = r.Record.MissingFields
		}
		rows = append(rows, append(row, recordCells(r.Record, missing)...))
	}

	b, err := writeWorkbook(SavedSheet, headers, rows)
	if err != nil {
		return nil, err
	}
	s.logger.Info("export.xlsx.ok",
		"sheet", SavedSheet,
		"rows", len(rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return b, nil
}

func recordCells(rec *entity.Record, missing []string) []any {
	cells := make([]any, len(recordHeaders))
	for i := range cells {
		cells[i] = ""
	}
	if rec == nil {
		cells[len(cells)-1] = strings.Join(missing, ", ")
		return cells
	}
	var amount any = ""
	if entity.IsFinite(rec.TotalAmount) {
		amount = *rec.TotalAmount
	}
	copy(cells, []any{
		string(rec.Type),
		rec.DisplayName,
		rec.Provider,
		rec.ReservationCode,
		rec.TravelerName,
		rec.StartDate,
		rec.StartTime,
		rec.EndDate,
		rec.EndTime,
		rec.Origin,
		rec.Destination,
		amount,
		rec.Currency,
		rec.PaymentMethod,
		rec.Confidence,
		string(rec.Quality),
		string(rec.Scope),
		strings.Join(missing, ", "),
	})
	return cells
}

func writeWorkbook(sheet string, headers []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	last, _ := excelize.ColumnNumberToName(len(headers))
	_ = f.SetColWidth(sheet, "A", "A", 32)
	_ = f.SetColWidth(sheet, "B", last, 16)
	_ = f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
