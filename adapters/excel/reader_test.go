package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"qpcrfold/ports"
)

var _ ports.ObservationReader = (*DataReader)(nil)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRead_CSV(t *testing.T) {
	path := writeCSV(t, "Condition,E,Ct,Eref,Ctref\nControl,2,30.0,2,30\nTreat,2,27.0,2,30\n")

	table, err := NewDataReader(path).Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"Condition", "E", "Ct", "Eref", "Ctref"}, table.Columns)
	require.Equal(t, 2, table.RowCount())
	assert.Equal(t, []string{"Control", "2", "30.0", "2", "30"}, table.Rows[0])
}

func TestRead_CSVTrimsCells(t *testing.T) {
	path := writeCSV(t, "Condition, Ct \n Control , 30.0 \n")

	table, err := NewDataReader(path).Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"Condition", "Ct"}, table.Columns)
	assert.Equal(t, []string{"Control", "30.0"}, table.Rows[0])
}

func TestRead_Excel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")
	f := excelize.NewFile()
	cells := [][]interface{}{
		{"Condition", "E", "Ct", "Eref", "Ctref"},
		{"Control", 2, 30.0, 2, 30},
		{"Treat", 2, 27.0, 2, 30},
	}
	for ri, row := range cells {
		for ci, v := range row {
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := NewDataReader(path).Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"Condition", "E", "Ct", "Eref", "Ctref"}, table.Columns)
	assert.Equal(t, 2, table.RowCount())
	assert.Equal(t, "Control", table.Rows[0][0])
}

func TestRead_ExcelPadsShortRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"A", "B", "C"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"x", "y"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := NewDataReader(path).Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", ""}, table.Rows[0])
}

func TestRead_MissingFile(t *testing.T) {
	_, err := NewDataReader(filepath.Join(t.TempDir(), "absent.csv")).Read()
	assert.Error(t, err)
}

func TestRead_HeaderOnly(t *testing.T) {
	path := writeCSV(t, "Condition,Ct\n")
	_, err := NewDataReader(path).Read()
	assert.Error(t, err)
}

func TestRead_UnknownSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"A"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := NewDataReader(path).WithSheet("Missing").Read()
	assert.Error(t, err)
}
