// Package workbook persists the datasets in a single Excel workbook, the
// format field supervisors already maintain. Sheets: "Project List" and
// "Technician List" are mandatory reference data, "Inputs" is the submissions
// log and is created on first write. The phone registry lives in a sibling
// users.csv file.
package workbook

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"ppm-service/internal/model"
	"ppm-service/internal/store"
)

// Sheet names in the backing workbook.
const (
	SheetProjects    = "Project List"
	SheetTechnicians = "Technician List"
	SheetInputs      = "Inputs"
)

// legacyColumnSuffix marks misspelt count columns from early versions of the
// workbook. They are dropped on load and never written back.
const legacyColumnSuffix = "Compelet"

// Workbook is a store.Store backed by one xlsx file plus a users CSV. Writes
// replace the Inputs sheet wholesale, so last writer wins when two sessions
// race; the mutex only serializes writers within this process.
type Workbook struct {
	path      string
	usersPath string

	mu sync.Mutex
}

var _ store.Store = (*Workbook)(nil)

// New returns a workbook store for the given xlsx and users CSV paths. The
// files are not opened until first use.
func New(path, usersPath string) *Workbook {
	return &Workbook{path: path, usersPath: usersPath}
}

// Load reads the three tables from the workbook. Project and technician rows
// missing their identity fields are dropped; a missing Inputs sheet yields an
// empty log.
func (w *Workbook) Load() (*store.Dataset, error) {
	f, err := w.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	projects, err := readProjects(f)
	if err != nil {
		return nil, err
	}
	technicians, err := readTechnicians(f)
	if err != nil {
		return nil, err
	}
	submissions, err := readSubmissions(f)
	if err != nil {
		return nil, err
	}

	return &store.Dataset{
		Projects:    projects,
		Technicians: technicians,
		Submissions: submissions,
	}, nil
}

// AppendSubmission re-reads the current log, appends the record last and
// rewrites the Inputs sheet in one save. Other sheets are untouched. There is
// no partial-write recovery beyond what the xlsx writer itself guarantees.
func (w *Workbook) AppendSubmission(sub model.Submission) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := w.open()
	if err != nil {
		return err
	}
	defer f.Close()

	current, err := readSubmissions(f)
	if err != nil {
		return err
	}
	updated := append(current, sub)

	if err := writeInputs(f, updated); err != nil {
		return fmt.Errorf("%w: %v", store.ErrPersist, err)
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrPersist, err)
	}
	return nil
}

func (w *Workbook) open() (*excelize.File, error) {
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", store.ErrSourceNotFound, w.path)
		}
		return nil, fmt.Errorf("open workbook %s: %w", w.path, err)
	}
	return f, nil
}

// sheetRows returns the rows of a sheet, or nil when the sheet is absent.
func sheetRows(f *excelize.File, sheet string) ([][]string, bool, error) {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return nil, false, nil
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, false, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	return rows, true, nil
}

// header maps column names to indices, skipping legacy misspelt columns so
// their values never reach the typed records.
func header(row []string) map[string]int {
	cols := make(map[string]int, len(row))
	for i, name := range row {
		name = strings.TrimSpace(name)
		if name == "" || strings.HasSuffix(name, legacyColumnSuffix) {
			continue
		}
		cols[name] = i
	}
	return cols
}

func cell(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// cellInt treats blanks and anything non-numeric as zero, matching how the
// original workbook data was tallied.
func cellInt(row []string, cols map[string]int, name string) int {
	v := cell(row, cols, name)
	if v == "" {
		return 0
	}
	// Excel often renders integer cells as "4.0".
	if n, err := strconv.ParseFloat(v, 64); err == nil {
		return int(n)
	}
	return 0
}

func readProjects(f *excelize.File) ([]model.Project, error) {
	rows, ok, err := sheetRows(f, SheetProjects)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrSheetMissing, SheetProjects)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	cols := header(rows[0])
	var projects []model.Project
	for _, row := range rows[1:] {
		owner := cell(row, cols, "Project Owner")
		name := cell(row, cols, "Project Name")
		if owner == "" || name == "" {
			continue
		}
		projects = append(projects, model.Project{
			Owner:     owner,
			Name:      name,
			Emirate:   cell(row, cols, "Emirate"),
			IndoorQty: cellInt(row, cols, "Indoors Qty"),
			VRFQty:    cellInt(row, cols, "VRF OD Qty"),
			DXQty:     cellInt(row, cols, "DX Outdoor Qty"),
			AHUQty:    cellInt(row, cols, "AHU Qty"),
		})
	}
	return projects, nil
}

func readTechnicians(f *excelize.File) ([]model.Technician, error) {
	rows, ok, err := sheetRows(f, SheetTechnicians)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrSheetMissing, SheetTechnicians)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	cols := header(rows[0])
	var technicians []model.Technician
	for _, row := range rows[1:] {
		name := cell(row, cols, "Technician Name")
		if name == "" {
			continue
		}
		technicians = append(technicians, model.Technician{Name: name})
	}
	sort.Slice(technicians, func(i, j int) bool { return technicians[i].Name < technicians[j].Name })
	return technicians, nil
}

func readSubmissions(f *excelize.File) ([]model.Submission, error) {
	rows, ok, err := sheetRows(f, SheetInputs)
	if err != nil {
		return nil, err
	}
	if !ok || len(rows) == 0 {
		return nil, nil
	}
	cols := header(rows[0])
	var subs []model.Submission
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		subs = append(subs, model.Submission{
			Date:            cell(row, cols, "Date"),
			ProjectOwner:    cell(row, cols, "Project Owner"),
			ProjectName:     cell(row, cols, "Project Name"),
			Emirate:         cell(row, cols, "Emirate"),
			IndoorCompleted: cellInt(row, cols, "Indoors Completed"),
			VRFCompleted:    cellInt(row, cols, "VRF OD Completed"),
			DXCompleted:     cellInt(row, cols, "DX Outdoor Completed"),
			AHUCompleted:    cellInt(row, cols, "AHU Completed"),
			Technician1:     cell(row, cols, "Technician name 1"),
			Technician2:     cell(row, cols, "Technician name 2"),
			Technician3:     cell(row, cols, "Technician name 3"),
			Helper1:         cell(row, cols, "Helper name 1"),
			Helper2:         cell(row, cols, "Helper name 2"),
			Helper3:         cell(row, cols, "Helper name 3"),
		})
	}
	return subs, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// writeInputs recreates the Inputs sheet with the fixed 14-column schema.
// Recreating rather than overlaying is what removes legacy columns for good.
func writeInputs(f *excelize.File, subs []model.Submission) error {
	if idx, err := f.GetSheetIndex(SheetInputs); err == nil && idx >= 0 {
		if err := f.DeleteSheet(SheetInputs); err != nil {
			return err
		}
	}
	if _, err := f.NewSheet(SheetInputs); err != nil {
		return err
	}
	if err := setRow(f, 1, model.SubmissionColumns); err != nil {
		return err
	}
	for i, sub := range subs {
		if err := setRow(f, i+2, sub.Row()); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, rowNum int, values []string) error {
	cellName, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return f.SetSheetRow(SheetInputs, cellName, &row)
}
