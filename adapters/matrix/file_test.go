package matrix

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "matrix.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestOpenFile_CSV(t *testing.T) {
	path := writeTempCSV(t, "feature,s1,s2,s3\ngeneA,1.5,2,3\ngeneB,4,5.5,6\ngeneC,7,8,9.5\n")

	f, err := OpenFile(path)
	require.NoError(t, err)

	assert.Equal(t, 3, f.NumFeatures())
	assert.Equal(t, 3, f.NumSamples())
	assert.Equal(t, []string{"geneA", "geneB", "geneC"}, f.FeatureNames())
	assert.Equal(t, []string{"s1", "s2", "s3"}, f.SampleNames())

	idx, ok := f.FeatureIndex("geneB")
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	col, err := f.Column(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 5.5, 8}, col)
}

func TestOpenFile_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matrix.xlsx")

	book := excelize.NewFile()
	require.NoError(t, book.SetSheetRow("Sheet1", "A1", &[]interface{}{"feature", "s1", "s2"}))
	require.NoError(t, book.SetSheetRow("Sheet1", "A2", &[]interface{}{"geneA", 1.25, 2.5}))
	require.NoError(t, book.SetSheetRow("Sheet1", "A3", &[]interface{}{"geneB", 3.0, 4.0}))
	require.NoError(t, book.SaveAs(path))
	require.NoError(t, book.Close())

	f, err := OpenFile(path)
	require.NoError(t, err)

	assert.Equal(t, 2, f.NumFeatures())
	assert.Equal(t, 2, f.NumSamples())

	col, err := f.Column(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.25, 3.0}, col)
}

func TestOpenFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "header only", content: "feature,s1\n"},
		{name: "no sample columns", content: "feature\ngeneA\n"},
		{name: "non-numeric cell", content: "feature,s1\ngeneA,abc\n"},
		{name: "unnamed feature row", content: "feature,s1\n,1.0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := OpenFile(writeTempCSV(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestOpenFile_NotFound(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}
