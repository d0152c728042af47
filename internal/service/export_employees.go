package service

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"orgdirectory/backend/internal/entity"
)

const employeeSheet = "Employees"

// ExcelContentType is the MIME type of the workbook written by EmployeesToExcel.
const ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var employeeHeaders = []string{"ID", "Name", "Phone", "Company Code", "Reporting Manager ID", "Created At"}

// EmployeesToExcel renders employees as an xlsx workbook with a header row.
func EmployeesToExcel(employees []entity.Employee) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", employeeSheet); err != nil {
		return nil, errors.Wrap(err, "naming sheet")
	}

	for i, header := range employeeHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err = f.SetCellValue(employeeSheet, cell, header); err != nil {
			return nil, errors.Wrap(err, "writing header")
		}
	}

	rowNum := 2
	for _, e := range employees {
		manager := ""
		if e.ReportingManagerID != nil {
			manager = *e.ReportingManagerID
		}

		row := []any{e.ID, e.Name, e.Phone, e.CompanyCode, manager, e.CreatedAt.Format("2006-01-02 15:04:05")}
		if err := f.SetSheetRow(employeeSheet, fmt.Sprintf("A%d", rowNum), &row); err != nil {
			return nil, errors.Wrapf(err, "writing row %d", rowNum)
		}
		rowNum++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, errors.Wrap(err, "writing workbook")
	}

	return buf.Bytes(), nil
}
