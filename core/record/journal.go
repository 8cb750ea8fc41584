package record

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const journalDirName = "journal"

// intent is a write-ahead record of one cascading delete. It exists on disk
// from just before the first collection save until after the last one.
type intent struct {
	ID         string      `json:"id"`
	Parent     string      `json:"parent"`
	Field      string      `json:"field"`
	Value      string      `json:"value"`
	Dependents []Dependent `json:"dependents"`
	CreatedAt  time.Time   `json:"created_at"`
}

type journal struct {
	dir string
}

func newJournal(dataDir string) *journal {
	return &journal{dir: filepath.Join(dataDir, journalDirName)}
}

func (j *journal) record(parent, field, value string, deps []Dependent) (intent, error) {
	in := intent{
		ID:         uuid.New().String(),
		Parent:     parent,
		Field:      field,
		Value:      value,
		Dependents: deps,
		CreatedAt:  time.Now().UTC(),
	}
	if err := os.MkdirAll(j.dir, 0o755); err != nil {
		return intent{}, err
	}
	data, err := json.Marshal(in)
	if err != nil {
		return intent{}, err
	}
	if err := os.WriteFile(j.path(in.ID), data, 0o644); err != nil {
		return intent{}, err
	}
	return in, nil
}

func (j *journal) clear(id string) error {
	err := os.Remove(j.path(id))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (j *journal) pending() ([]intent, error) {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading cascade journal")
	}

	var intents []intent
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(j.dir, e.Name()))
		if err != nil {
			return nil, errors.Wrapf(err, "reading cascade intent %s", e.Name())
		}
		var in intent
		if err := json.Unmarshal(data, &in); err != nil {
			return nil, errors.Wrapf(err, "decoding cascade intent %s", e.Name())
		}
		intents = append(intents, in)
	}
	return intents, nil
}

func (j *journal) path(id string) string {
	return filepath.Join(j.dir, id+".json")
}
