package qlearning

import (
	"encoding/csv"
	"os"
	"strconv"

	"uno/game"

	"github.com/pkg/errors"
)

const (
	qSuffix     = "-q.csv"
	visitSuffix = "-visits.csv"
	separator   = ';'
	stateColumn = "state"
)

// Load reads the value and visit tables of the model stored at <model>-q.csv and
// <model>-visits.csv.
func Load(model string) (q, visits *Table, err error) {
	q, err = LoadTable(model + qSuffix)
	if err != nil {
		return nil, nil, err
	}
	visits, err = LoadTable(model + visitSuffix)
	if err != nil {
		return nil, nil, err
	}
	return q, visits, nil
}

// Save writes both tables next to each other.
func Save(model string, q, visits *Table) error {
	if err := SaveTable(model+qSuffix, q); err != nil {
		return err
	}
	return SaveTable(model+visitSuffix, visits)
}

// SaveTable writes one row per written state, keyed by the state's textual key,
// with one column per action.
func SaveTable(path string, t *Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create table %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = errors.Wrapf(cerr, "failed to close table %s", path)
		}
	}()

	writer := csv.NewWriter(f)
	writer.Comma = separator

	header := make([]string, 0, game.NumActions+1)
	header = append(header, stateColumn)
	for _, a := range game.Actions {
		header = append(header, a.String())
	}
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "failed to write table header")
	}

	record := make([]string, game.NumActions+1)
	for _, s := range t.States() {
		record[0] = s.Key()
		for i, a := range game.Actions {
			record[i+1] = strconv.FormatFloat(t.Get(s, a), 'g', -1, 64)
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(err, "failed to write table row %s", s.Key())
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "failed to flush table")
}

// LoadTable reads a table written by SaveTable. Columns are matched by action
// name, so their order does not matter.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open table %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = separator
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read table %s", path)
	}
	if len(records) == 0 {
		return nil, errors.Errorf("table %s has no header", path)
	}

	header := records[0]
	if len(header) != game.NumActions+1 || header[0] != stateColumn {
		return nil, errors.Errorf("table %s has an unexpected header %v", path, header)
	}
	columns := make([]game.Action, game.NumActions)
	for i, name := range header[1:] {
		a, ok := game.ParseAction(name)
		if !ok {
			return nil, errors.Errorf("table %s has an unknown action column %q", path, name)
		}
		columns[i] = a
	}

	t := NewTable()
	for line, record := range records[1:] {
		s, err := game.ParseStateKey(record[0])
		if err != nil {
			return nil, errors.WithMessagef(err, "table %s line %d", path, line+2)
		}
		for i, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "table %s line %d", path, line+2)
			}
			t.Set(s, columns[i], v)
		}
	}
	return t, nil
}
