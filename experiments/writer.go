package experiments

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

type Writer struct {
	baseDir string
}

// NewWriter creates a subfolder of root named by the current timestamp.
func NewWriter(root string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, "throughput", timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create directory")
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string { return w.baseDir }

func (w *Writer) write(name string, header []string, rows [][]string) (err error) {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", name)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "failed to close %s", name)
		}
	}()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return errors.Wrapf(err, "failed to write %s header", name)
	}
	if err := writer.WriteAll(rows); err != nil {
		return errors.Wrapf(err, "failed to write %s rows", name)
	}
	return nil
}

func (w *Writer) WriteConfigs(configs []Config) error {
	header := []string{"id", "game", "strategy", "goroutines", "duration", "playouts", "prune", "factor", "seed"}
	rows := make([][]string, 0, len(configs))
	for _, c := range configs {
		rows = append(rows, []string{
			strconv.Itoa(c.ID),
			c.Game,
			c.Strategy,
			strconv.Itoa(c.Goroutines),
			c.Duration.String(),
			strconv.Itoa(c.Playouts),
			strconv.FormatBool(c.Prune),
			strconv.FormatBool(c.Factor),
			strconv.FormatUint(c.Seed, 10),
		})
	}
	return w.write("run_configs.csv", header, rows)
}

func (w *Writer) WriteRecords(records []Record) error {
	header := []string{"id", "components", "playouts", "elapsed", "playouts_per_second", "propagations", "recomputed", "cache_hits", "transitions"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			strconv.Itoa(r.Components),
			strconv.FormatInt(r.Playouts, 10),
			r.Evaluation.Duration.String(),
			strconv.FormatFloat(r.PlayoutsPerSecond, 'f', 2, 64),
			strconv.FormatInt(r.Evaluation.Propagations, 10),
			strconv.FormatInt(r.Evaluation.Recomputed, 10),
			strconv.FormatInt(r.Evaluation.CacheHits, 10),
			strconv.FormatInt(r.Evaluation.Transitions, 10),
		})
	}
	return w.write("run_records.csv", header, rows)
}
