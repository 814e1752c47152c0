package export

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v2"

	"github.com/locvowork/employee_api_gateway/internal/domain"
)

// Column maps one employee field to a spreadsheet column.
type Column struct {
	Field  string  `yaml:"field"`
	Header string  `yaml:"header"`
	Width  float64 `yaml:"width"`
}

// Layout describes the roster sheet. Loaded from YAML when a layout file is
// configured, otherwise DefaultLayout applies.
type Layout struct {
	Sheet   string   `yaml:"sheet"`
	Columns []Column `yaml:"columns"`
}

func DefaultLayout() Layout {
	return Layout{
		Sheet: "Employees",
		Columns: []Column{
			{Field: "id", Header: "ID", Width: 12},
			{Field: "name", Header: "Name", Width: 25},
			{Field: "salary", Header: "Salary", Width: 12},
			{Field: "age", Header: "Age", Width: 8},
			{Field: "title", Header: "Title", Width: 25},
		},
	}
}

// LoadLayout reads a layout file and checks every column against the known
// employee fields.
func LoadLayout(path string) (Layout, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, err
	}

	var layout Layout
	if err := yaml.Unmarshal(raw, &layout); err != nil {
		return Layout{}, fmt.Errorf("parse layout %s: %w", path, err)
	}
	if layout.Sheet == "" {
		layout.Sheet = "Employees"
	}
	if len(layout.Columns) == 0 {
		return Layout{}, fmt.Errorf("layout %s has no columns", path)
	}
	for _, col := range layout.Columns {
		if _, ok := fieldValue(domain.Employee{}, col.Field); !ok {
			return Layout{}, fmt.Errorf("layout %s: unknown field %q", path, col.Field)
		}
	}
	return layout, nil
}

// RosterExporter renders an employee roster as an .xlsx workbook.
type RosterExporter struct {
	layout Layout
}

func NewRosterExporter(layout Layout) *RosterExporter {
	return &RosterExporter{layout: layout}
}

// Build writes one header row plus one row per employee, in fetch order.
func (e *RosterExporter) Build(employees []domain.Employee) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := e.layout.Sheet
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := make([]interface{}, len(e.layout.Columns))
	for i, col := range e.layout.Columns {
		headers[i] = col.Header
		if col.Width > 0 {
			name, err := excelize.ColumnNumberToName(i + 1)
			if err != nil {
				return nil, err
			}
			if err := f.SetColWidth(sheet, name, name, col.Width); err != nil {
				return nil, err
			}
		}
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, err
	}

	for i, emp := range employees {
		row := make([]interface{}, len(e.layout.Columns))
		for j, col := range e.layout.Columns {
			val, _ := fieldValue(emp, col.Field)
			row[j] = val
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fieldValue(e domain.Employee, field string) (interface{}, bool) {
	switch field {
	case "id":
		return e.ID, true
	case "name":
		return e.Name, true
	case "salary":
		return e.Salary, true
	case "age":
		return e.Age, true
	case "title":
		return e.Title, true
	}
	return nil, false
}
