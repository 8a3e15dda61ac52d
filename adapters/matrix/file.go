package matrix

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"pairscore/internal"
	apperrors "pairscore/internal/errors"

	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/mat"
)

// File implements ports.MatrixPort for xlsx and csv matrices on disk.
// Expected layout: first row holds sample names (first cell is the
// feature-name column header), each following row holds a feature name
// and one numeric value per sample. The whole file is read eagerly.
type File struct {
	path     string
	fileType string // "xlsx" or "csv"
	dense    *Dense

	featureNames []string
	sampleNames  []string
	featureIndex map[string]int

	log *internal.Logger
}

// OpenFile reads a feature-by-sample matrix from an xlsx or csv file.
func OpenFile(path string) (*File, error) {
	ext := strings.ToLower(filepath.Ext(path))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}

	f := &File{
		path:     path,
		fileType: fileType,
		log:      internal.DefaultLogger,
	}
	if err := f.read(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) read() error {
	if _, err := os.Stat(f.path); os.IsNotExist(err) {
		return apperrors.DataFormat(fmt.Sprintf("matrix file not found: %s", f.path))
	}

	var rows [][]string
	var err error
	switch f.fileType {
	case "csv":
		rows, err = f.readCSVRows()
	case "xlsx":
		rows, err = f.readExcelRows()
	default:
		return apperrors.DataFormat(fmt.Sprintf("unsupported file type: %s", f.fileType))
	}
	if err != nil {
		return err
	}

	return f.processRows(rows)
}

func (f *File) readExcelRows() ([][]string, error) {
	book, err := excelize.OpenFile(f.path)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to open Excel file %s", f.path)
	}
	defer book.Close()

	rows, err := book.GetRows("Sheet1")
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read Sheet1")
	}
	f.log.Debug("[Matrix] read %d rows from %s", len(rows), f.path)
	return rows, nil
}

func (f *File) readCSVRows() ([][]string, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to open CSV file %s", f.path)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read CSV file")
	}
	f.log.Debug("[Matrix] read %d rows from %s", len(rows), f.path)
	return rows, nil
}

func (f *File) processRows(rows [][]string) error {
	if len(rows) < 2 {
		return apperrors.DataFormat("matrix file must have a header row and at least one feature row")
	}

	header := rows[0]
	if len(header) < 2 {
		return apperrors.DataFormat("header row must name at least one sample")
	}
	f.sampleNames = append([]string(nil), header[1:]...)
	nsamples := len(f.sampleNames)

	featureRows := rows[1:]
	nfeatures := len(featureRows)
	f.featureNames = make([]string, nfeatures)
	f.featureIndex = make(map[string]int, nfeatures)

	data := mat.NewDense(nfeatures, nsamples, nil)
	for i, row := range featureRows {
		if len(row) == 0 || row[0] == "" {
			return apperrors.DataFormat(fmt.Sprintf("row %d has no feature name", i+2))
		}
		name := row[0]
		f.featureNames[i] = name
		f.featureIndex[name] = i

		// Excel drops trailing empty cells; treat absent cells as zero.
		for j := 0; j < nsamples; j++ {
			cell := ""
			if j+1 < len(row) {
				cell = strings.TrimSpace(row[j+1])
			}
			if cell == "" {
				continue
			}
			value, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return apperrors.DataFormat(fmt.Sprintf(
					"feature %q sample %q: not numeric: %q", name, f.sampleNames[j], cell))
			}
			data.Set(i, j, value)
		}
	}

	f.dense = NewDense(data)
	f.log.Info("[Matrix] loaded %s: %d features x %d samples", f.path, nfeatures, nsamples)
	return nil
}

// Column returns a copy of the feature vector for one sample.
func (f *File) Column(ctx context.Context, sample int) ([]float64, error) {
	return f.dense.Column(ctx, sample)
}

// NumFeatures returns the number of feature rows.
func (f *File) NumFeatures() int {
	return f.dense.NumFeatures()
}

// NumSamples returns the number of sample columns.
func (f *File) NumSamples() int {
	return f.dense.NumSamples()
}

// FeatureNames returns the feature names in row order.
func (f *File) FeatureNames() []string {
	return f.featureNames
}

// SampleNames returns the sample names in column order.
func (f *File) SampleNames() []string {
	return f.sampleNames
}

// FeatureIndex resolves a feature name to its row index.
func (f *File) FeatureIndex(name string) (int, bool) {
	i, ok := f.featureIndex[name]
	return i, ok
}
