// Package writer persists backtest artifacts: the trade list as CSV plus
// stats and diagnostics as YAML.
package writer

import (
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/roelofgootjesgit/edgelab/internal/types"
	"github.com/roelofgootjesgit/edgelab/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ResultWriter writes one run's artifacts into a folder.
type ResultWriter struct {
	folder string
}

// NewResultWriter creates a writer rooted at the given folder. The folder is
// created on the first write.
func NewResultWriter(folder string) *ResultWriter {
	return &ResultWriter{folder: folder}
}

// Folder returns the output folder path.
func (w *ResultWriter) Folder() string {
	return w.folder
}

// Write persists the result: trades.csv, stats.yaml and diagnostics.yaml.
func (w *ResultWriter) Write(result *types.BacktestResult, stats types.TradeStats) error {
	if err := os.MkdirAll(w.folder, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeUnknown, "failed to create results folder", err)
	}

	if err := w.writeTrades(result.Trades); err != nil {
		return err
	}

	if err := writeYAML(filepath.Join(w.folder, "stats.yaml"), stats); err != nil {
		return err
	}

	return writeYAML(filepath.Join(w.folder, "diagnostics.yaml"), result.Diagnostics)
}

func (w *ResultWriter) writeTrades(trades []types.Trade) error {
	file, err := os.Create(filepath.Join(w.folder, "trades.csv"))
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnknown, "failed to create trades.csv", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&trades, file); err != nil {
		return errors.Wrap(errors.ErrCodeUnknown, "failed to write trades.csv", err)
	}

	return nil
}

func writeYAML(path string, v any) error {
	content, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeUnknown, err, "failed to marshal %s", filepath.Base(path))
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return errors.Wrapf(errors.ErrCodeUnknown, err, "failed to write %s", filepath.Base(path))
	}

	return nil
}
