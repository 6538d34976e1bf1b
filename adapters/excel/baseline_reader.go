package excel

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"growthcast/domain/forecast"
)

// Sheet names of the baseline workbook.
const (
	sheetDAU          = "DAU"
	sheetAcquisitions = "Acquisitions"
	sheetRetention    = "Retention"
)

// BaselineReader loads a BaselineDataset from a three-sheet workbook:
//
//	DAU:          segment | platform | current_dau
//	Acquisitions: segment | platform | weekly_acquisitions
//	Retention:    cohort  | d1 | d7 | d14 | d28 | d360 | d720
//
// The first row of each sheet is a header. The Retention sheet carries one
// "existing" row and one "new" row, percentages on the 0-100 scale.
type BaselineReader struct {
	filePath string
}

// NewBaselineReader creates a workbook baseline reader
func NewBaselineReader(filePath string) *BaselineReader {
	return &BaselineReader{filePath: filePath}
}

// Read parses the workbook into a baseline dataset.
func (r *BaselineReader) Read(path string) (*forecast.BaselineDataset, error) {
	if path == "" {
		path = r.filePath
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("baseline workbook not found: %s", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	dau, err := readSliceSheet(f, sheetDAU)
	if err != nil {
		return nil, err
	}
	acquisitions, err := readSliceSheet(f, sheetAcquisitions)
	if err != nil {
		return nil, err
	}
	curves, err := readRetentionSheet(f)
	if err != nil {
		return nil, err
	}

	baseline := &forecast.BaselineDataset{
		CurrentDAU:         dau,
		WeeklyAcquisitions: acquisitions,
		RetentionCurves:    *curves,
	}
	if err := baseline.Validate(); err != nil {
		return nil, fmt.Errorf("workbook %s: %w", path, err)
	}
	return baseline, nil
}

// readSliceSheet parses a segment/platform/value sheet into a slice map.
func readSliceSheet(f *excelize.File, sheet string) (map[forecast.SliceKey]float64, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %s has no data rows", sheet)
	}

	out := make(map[forecast.SliceKey]float64, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) < 3 {
			continue // tolerate trailing blank rows
		}
		segment := strings.TrimSpace(row[0])
		platform := strings.TrimSpace(row[1])
		if segment == "" && platform == "" {
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("sheet %s row %d: bad value %q: %w", sheet, i+2, row[2], err)
		}
		out[forecast.NewSliceKey(segment, platform)] = value
	}
	return out, nil
}

// readRetentionSheet parses the existing/new retention rows.
func readRetentionSheet(f *excelize.File) (*forecast.RetentionCurves, error) {
	rows, err := f.GetRows(sheetRetention)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheetRetention, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %s has no data rows", sheetRetention)
	}

	curves := &forecast.RetentionCurves{}
	for i, row := range rows[1:] {
		if len(row) < 1+len(forecast.RetentionDays) {
			continue
		}
		series := make(forecast.RetentionSeries, len(forecast.RetentionDays))
		for j, day := range forecast.RetentionDays {
			pct, err := strconv.ParseFloat(strings.TrimSpace(row[j+1]), 64)
			if err != nil {
				return nil, fmt.Errorf("sheet %s row %d col %d: bad percentage %q: %w",
					sheetRetention, i+2, j+2, row[j+1], err)
			}
			series[day] = pct
		}

		switch strings.ToLower(strings.TrimSpace(row[0])) {
		case "existing":
			curves.Existing = series
		case "new":
			curves.New = series
		default:
			return nil, fmt.Errorf("sheet %s row %d: unknown cohort %q", sheetRetention, i+2, row[0])
		}
	}

	if curves.Existing == nil || curves.New == nil {
		return nil, fmt.Errorf("sheet %s must carry one existing and one new row", sheetRetention)
	}
	return curves, nil
}
