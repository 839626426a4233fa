package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

type GameRecord struct {
	ID  int
	Run string // Tournament run ID
	GameMetric
}

type GenerationRecord struct {
	Run string // Search run ID
	GenerationMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped directory for the records of one experiment
// under root.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create directory")
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

// Path returns the location of a file inside the experiment directory.
func (w *Writer) Path(name string) string {
	return filepath.Join(w.baseDir, name)
}

func (w *Writer) WriteGameRecords(name string, records []GameRecord) error {
	header := []string{"id", "run", "player1", "player2", "winner", "turns", "penalty_chains", "longest_chain", "reshuffles", "start_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			record.Run,
			record.Player1,
			record.Player2,
			record.Winner,
			strconv.Itoa(record.Turns),
			strconv.Itoa(record.PenaltyChains),
			strconv.Itoa(record.LongestChain),
			strconv.Itoa(record.Reshuffles),
			record.StartTime.Format(time.RFC3339Nano),
			record.Duration.String(),
		})
	}
	return errors.WithMessage(w.write(name+"_games.csv", header, rows), "failed to write game records")
}

func (w *Writer) WriteGenerationRecords(name string, records []GenerationRecord) error {
	header := []string{"run", "generation", "best_wins", "mean_wins", "best_id", "winner_changed", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Run,
			strconv.Itoa(record.Generation),
			strconv.Itoa(record.BestWins),
			strconv.FormatFloat(record.MeanWins, 'f', 3, 64),
			record.BestID,
			strconv.FormatBool(record.WinnerChanged),
			record.Duration.String(),
		})
	}
	return errors.WithMessage(w.write(name+"_generations.csv", header, rows), "failed to write generation records")
}

func (w *Writer) write(file string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(w.baseDir, file))
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", file)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	err = writer.Write(header)
	if err != nil {
		return errors.Wrap(err, "failed to write header")
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return errors.Wrap(err, "failed to write rows")
	}
	return nil
}
