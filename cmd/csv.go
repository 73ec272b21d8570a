/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/valpere/palabra/internal/orchestrator"
)

var (
	csvInputFile   string
	csvOutputFile  string
	csvColumn      int
	csvHeader      bool
	csvConcurrency int
)

var csvCmd = &cobra.Command{
	Use:   "csv",
	Short: "Analyze one column of a CSV file",
	Long: `Analyze the sentences in one column of a CSV file and append two columns,
explanation and translation, to every row.

Rows are independent and are analyzed concurrently (--concurrency). Empty
cells are left without analysis. A failed generation is written as the
row's explanation, like in single-text mode.

Example:
  palabra analyze csv -i sentences.csv -o annotated.csv -c 1 --header`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if csvInputFile == csvOutputFile {
			return fmt.Errorf("input file and output file cannot be the same")
		}
		if csvColumn < 0 {
			return fmt.Errorf("--column must not be negative")
		}
		if csvConcurrency < 1 {
			return fmt.Errorf("--concurrency must be at least 1")
		}

		f, err := os.Open(csvInputFile)
		if err != nil {
			return fmt.Errorf("failed to open input CSV: %w", err)
		}
		defer f.Close()

		reader := csv.NewReader(f)
		reader.FieldsPerRecord = -1
		records, err := reader.ReadAll()
		if err != nil {
			return fmt.Errorf("failed to read CSV: %w", err)
		}

		if len(records) == 0 {
			return fmt.Errorf("CSV file is empty")
		}

		ctx := cmd.Context()
		dict := cfg.LoadDictionary(ctx, logger)

		orch, err := buildOrchestrator(ctx)
		if err != nil {
			return err
		}

		out := make([][]string, len(records))
		first := 0
		if csvHeader {
			out[0] = append(append([]string{}, records[0]...), "explanation", "translation")
			first = 1
		}

		var failed atomic.Int32
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(csvConcurrency)

		for rowIdx := first; rowIdx < len(records); rowIdx++ {
			row := records[rowIdx]
			g.Go(func() error {
				exp, tr := "", ""
				if csvColumn < len(row) {
					report, err := orch.Analyze(gctx, row[csvColumn], dict)
					switch {
					case errors.Is(err, orchestrator.ErrEmptyInput):
					case err != nil:
						return fmt.Errorf("row %d: %w", rowIdx, err)
					default:
						exp, tr = report.Result.Explanation, report.Result.Translation
						if report.Err != nil {
							failed.Add(1)
							logger.Warn("row analysis failed",
								zap.Int("row", rowIdx),
								zap.Error(report.Err))
						}
					}
				}
				out[rowIdx] = append(append([]string{}, row...), exp, tr)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		outFile, err := os.Create(csvOutputFile)
		if err != nil {
			return fmt.Errorf("failed to create output CSV: %w", err)
		}
		defer outFile.Close()

		writer := csv.NewWriter(outFile)
		if err := writer.WriteAll(out); err != nil {
			return fmt.Errorf("failed to write output CSV: %w", err)
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			return fmt.Errorf("failed to flush output CSV: %w", err)
		}

		fmt.Printf("CSV analyzed successfully: %s (%d rows, %d failed)\n",
			csvOutputFile, len(records)-first, failed.Load())
		return nil
	},
}

func init() {
	analyzeCmd.AddCommand(csvCmd)

	csvCmd.Flags().StringVarP(&csvInputFile, "input", "i", "", "Input CSV file (required)")
	csvCmd.Flags().StringVarP(&csvOutputFile, "output", "o", "", "Output CSV file (required)")
	csvCmd.Flags().IntVarP(&csvColumn, "column", "c", 0, "Column index holding the text (0-indexed)")
	csvCmd.Flags().BoolVar(&csvHeader, "header", false, "First row is a header")
	csvCmd.Flags().IntVar(&csvConcurrency, "concurrency", 4, "Rows analyzed in parallel")

	csvCmd.MarkFlagRequired("input")
	csvCmd.MarkFlagRequired("output")
}
