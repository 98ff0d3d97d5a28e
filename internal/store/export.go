// Package store exports integration results to JSON and CSV.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/slayoo/odesys/internal/ode"
)

// ExportData is the JSON layout of a completed run.
type ExportData struct {
	Method  string      `json:"method"`
	Problem string      `json:"problem"`
	Points  int         `json:"points"`
	X       []float64   `json:"x"`
	Y       [][]float64 `json:"y"`
	Stats   ode.Stats   `json:"stats"`
}

func newExportData(method, problem string, result *ode.Result) ExportData {
	data := ExportData{
		Method:  method,
		Problem: problem,
		Points:  len(result.X),
		X:       result.X,
		Y:       make([][]float64, len(result.Y)),
		Stats:   result.Stats,
	}
	for i, y := range result.Y {
		data.Y[i] = y
	}
	return data
}

func WriteJSON(w io.Writer, method, problem string, result *ode.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newExportData(method, problem, result))
}

func ExportJSON(path, method, problem string, result *ode.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, method, problem, result)
}

// WriteCSV writes one row per trajectory point: x followed by the state
// components y0..y{ny-1}.
func WriteCSV(w io.Writer, result *ode.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if len(result.Y) == 0 {
		return nil
	}
	header := []string{"x"}
	for i := range result.Y[0] {
		header = append(header, fmt.Sprintf("y%d", i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range result.X {
		row := []string{strconv.FormatFloat(result.X[i], 'g', -1, 64)}
		for _, v := range result.Y[i] {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ExportCSV(path string, result *ode.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteCSV(file, result)
}
