// Package export writes a finished run to JSON or CSV. This is driver-level
// output for downstream tooling, not a persistence layer; nothing is ever
// read back.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/forcesim/forcesim/internal/workforce"
)

type RunData struct {
	Label             string        `json:"label"`
	Integrator        string        `json:"integrator"`
	Years             float64       `json:"years"`
	Dt                float64       `json:"dt"`
	Ranks             int           `json:"ranks"`
	Specialties       int           `json:"specialties"`
	Times             []float64     `json:"times"`
	Population        [][][]float64 `json:"population"`
	TotalForce        []float64     `json:"total_force"`
	SpecialtyShare    [][]float64   `json:"specialty_share"`
	JuniorSeniorRatio []float64     `json:"junior_senior_ratio"`
	SeniorCount       []float64     `json:"senior_count"`
	MinPopulation     float64       `json:"min_population"`
}

func runData(label, integrator string, years, dt float64, result *workforce.Result) RunData {
	ranks, specs := 0, 0
	if len(result.Grids) > 0 {
		ranks = result.Grids[0].Ranks()
		specs = result.Grids[0].Specialties()
	}
	data := RunData{
		Label:             label,
		Integrator:        integrator,
		Years:             years,
		Dt:                dt,
		Ranks:             ranks,
		Specialties:       specs,
		Times:             result.Times,
		Population:        make([][][]float64, len(result.Grids)),
		TotalForce:        result.Metrics.TotalForce,
		SpecialtyShare:    result.Metrics.SpecialtyShare,
		JuniorSeniorRatio: result.Metrics.JuniorSeniorRatio,
		SeniorCount:       result.Metrics.SeniorCount,
		MinPopulation:     result.MinPopulation,
	}
	for i, g := range result.Grids {
		data.Population[i] = g
	}
	return data
}

// WriteJSON emits the full run, population tensor included.
func WriteJSON(w io.Writer, label, integrator string, years, dt float64, result *workforce.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(runData(label, integrator, years, dt, result))
}

// WriteCSV emits one row per sample point: time, every (rank, specialty)
// cell, then the derived metrics.
func WriteCSV(w io.Writer, result *workforce.Result) error {
	if len(result.Grids) == 0 {
		return fmt.Errorf("empty result")
	}
	ranks := result.Grids[0].Ranks()
	specs := result.Grids[0].Specialties()

	cw := csv.NewWriter(w)

	header := []string{"time"}
	for r := 0; r < ranks; r++ {
		for s := 0; s < specs; s++ {
			header = append(header, fmt.Sprintf("pop_r%d_s%d", r, s))
		}
	}
	header = append(header, "total_force", "junior_senior_ratio", "senior_count")
	for s := 0; s < specs; s++ {
		header = append(header, fmt.Sprintf("share_s%d", s))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, t := range result.Times {
		row := []string{fmt.Sprintf("%.4f", t)}
		for r := 0; r < ranks; r++ {
			for s := 0; s < specs; s++ {
				row = append(row, fmt.Sprintf("%.4f", result.Grids[i][r][s]))
			}
		}
		row = append(row,
			fmt.Sprintf("%.4f", result.Metrics.TotalForce[i]),
			fmt.Sprintf("%.6f", result.Metrics.JuniorSeniorRatio[i]),
			fmt.Sprintf("%.4f", result.Metrics.SeniorCount[i]),
		)
		for s := 0; s < specs; s++ {
			row = append(row, fmt.Sprintf("%.6f", result.Metrics.SpecialtyShare[s][i]))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// JSONFile writes the run to path, creating or truncating it.
func JSONFile(path, label, integrator string, years, dt float64, result *workforce.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteJSON(f, label, integrator, years, dt, result)
}

// CSVFile writes the run to path, creating or truncating it.
func CSVFile(path string, result *workforce.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteCSV(f, result)
}
