package tabular

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeCSVNormalizesHeaders(t *testing.T) {
	csv := "Requester Name, Document Type ,purpose\nJuan Dela Cruz,Certificate,Enrollment\n"

	sheet, err := Decode(strings.NewReader(csv), "upload.csv")
	require.NoError(t, err)
	require.Equal(t, []string{"requester_name", "document_type", "purpose"}, sheet.Columns)
	require.Len(t, sheet.Rows, 1)
	require.Equal(t, "Juan Dela Cruz", sheet.Rows[0].Get("requester_name").String())
}

func TestDecodeCSVTypesCells(t *testing.T) {
	csv := "q1,q2,q3\n5,needs improvement,\n"

	sheet, err := Decode(strings.NewReader(csv), "responses.csv")
	require.NoError(t, err)
	row := sheet.Rows[0]

	require.Equal(t, Number, row.Get("q1").Kind)
	require.Equal(t, 5.0, row.Get("q1").Number)
	require.Equal(t, Text, row.Get("q2").Kind)
	require.True(t, row.Get("q3").Blank())
	require.True(t, row.Get("missing_column").Blank())
}

func TestDecodeCSVRaggedRows(t *testing.T) {
	csv := "visitor_name,purpose\nAna Santos\n"

	sheet, err := Decode(strings.NewReader(csv), "logbook.csv")
	require.NoError(t, err)
	require.Equal(t, "Ana Santos", sheet.Rows[0].Get("visitor_name").String())
	require.True(t, sheet.Rows[0].Get("purpose").Blank())
}

func TestDecodeUnsupportedExtension(t *testing.T) {
	_, err := Decode(strings.NewReader("a,b\n"), "data.txt")
	require.Error(t, err)
}

func TestDecodeExcelRejectsGarbage(t *testing.T) {
	_, err := Decode(strings.NewReader("definitely not a zip archive"), "data.xlsx")
	require.Error(t, err)
}

func TestMissingColumns(t *testing.T) {
	sheet := &Sheet{Columns: []string{"requester_name"}}
	missing := sheet.MissingColumns([]string{"requester_name", "document_type"})
	require.Equal(t, []string{"document_type"}, missing)

	sheet.Columns = append(sheet.Columns, "document_type")
	require.Nil(t, sheet.MissingColumns([]string{"requester_name", "document_type"}))
}

func TestAllowedExtension(t *testing.T) {
	require.True(t, AllowedExtension("data.csv"))
	require.True(t, AllowedExtension("Data.XLSX"))
	require.True(t, AllowedExtension("legacy.xls"))
	require.False(t, AllowedExtension("data.txt"))
	require.False(t, AllowedExtension("data"))
}
