// Package csvstore persists each named collection as one UTF-8 (BOM-prefixed)
// delimited text file with a header row of column names, under a single data
// directory. The whole file is rewritten on every save.
package csvstore

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/moyeohq/moyeo/core"
)

const (
	fileExt = ".csv"
	bom     = "\ufeff"
)

type Store struct {
	dataDir string
	log     core.Logger

	mu      sync.Mutex // guards locks
	locks   map[string]*sync.Mutex
	schemas map[string]core.Schema
}

var _ core.Store = (*Store)(nil) // interface compliance check

// New prepares the data directory and registers the durable schema for every
// known collection, creating missing files.
func New(conf *core.Config, log core.Logger) (*Store, error) {
	if err := os.MkdirAll(conf.DataDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating data directory %s", conf.DataDir)
	}

	st := &Store{
		dataDir: conf.DataDir,
		log:     log,
		locks:   make(map[string]*sync.Mutex),
		schemas: make(map[string]core.Schema),
	}
	for _, sch := range core.Collections() {
		if err := st.EnsureSchema(sch); err != nil {
			return nil, err
		}
	}
	return st, nil
}

func (st *Store) path(name string) string {
	return filepath.Join(st.dataDir, name+fileExt)
}

// nameLock returns the exclusive-access handle for a collection name. All
// writes to a collection are serialized through it (single-writer arbiter).
func (st *Store) nameLock(name string) *sync.Mutex {
	st.mu.Lock()
	defer st.mu.Unlock()
	l, ok := st.locks[name]
	if !ok {
		l = &sync.Mutex{}
		st.locks[name] = l
	}
	return l
}

func (st *Store) EnsureSchema(sch core.Schema) error {
	l := st.nameLock(sch.Name)
	l.Lock()
	defer l.Unlock()

	st.mu.Lock()
	st.schemas[sch.Name] = sch
	st.mu.Unlock()

	if _, err := os.Stat(st.path(sch.Name)); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, "checking collection %s", sch.Name)
	}
	return st.write(sch.Name, core.NewTable(sch.Columns))
}

func (st *Store) Schema(name string) (core.Schema, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	sch, ok := st.schemas[name]
	return sch, ok
}

func (st *Store) Load(name string) (core.Table, error) {
	l := st.nameLock(name)
	l.Lock()
	defer l.Unlock()
	return st.read(name), nil
}

func (st *Store) Save(name string, t core.Table) error {
	l := st.nameLock(name)
	l.Lock()
	defer l.Unlock()
	return st.write(name, t)
}

func (st *Store) Mutate(name string, fn func(t *core.Table) (bool, error)) error {
	l := st.nameLock(name)
	l.Lock()
	defer l.Unlock()

	t := st.read(name)
	changed, err := fn(&t)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return st.write(name, t)
}

// read returns the current contents of a collection. Absence of the file and
// unreadable contents are both normal "no data yet" states, not failures.
func (st *Store) read(name string) core.Table {
	empty := func() core.Table {
		if sch, ok := st.Schema(name); ok {
			return core.NewTable(sch.Columns)
		}
		return core.Table{}
	}

	f, err := os.Open(st.path(name))
	if err != nil {
		if !os.IsNotExist(err) && st.log != nil {
			st.log.Warn("csvstore: opening collection", name, err)
		}
		return empty()
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if err != io.EOF && st.log != nil {
			st.log.Warn("csvstore: reading collection header", name, err)
		}
		return empty()
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], bom)
	}

	t := core.NewTable(header)
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if st.log != nil {
				st.log.Warn("csvstore: reading collection", name, err)
			}
			return empty()
		}
		row := make(core.Row, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			} else {
				row[col] = ""
			}
		}
		t.Append(row)
	}
	return t
}

// write atomically replaces the collection file: the new contents go to a
// temp file in the same directory first, then rename over the target.
func (st *Store) write(name string, t core.Table) error {
	tmp, err := os.CreateTemp(st.dataDir, name+".*.tmp")
	if err != nil {
		return core.NewWriteError(name, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err = tmp.WriteString(bom); err != nil {
		_ = tmp.Close()
		return core.NewWriteError(name, err)
	}

	w := csv.NewWriter(tmp)
	if err = w.Write(t.Columns); err != nil {
		_ = tmp.Close()
		return core.NewWriteError(name, err)
	}
	rec := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			rec[i] = row[col]
		}
		if err = w.Write(rec); err != nil {
			_ = tmp.Close()
			return core.NewWriteError(name, err)
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		_ = tmp.Close()
		return core.NewWriteError(name, err)
	}
	if err = tmp.Close(); err != nil {
		return core.NewWriteError(name, err)
	}
	if err = os.Rename(tmpName, st.path(name)); err != nil {
		return core.NewWriteError(name, err)
	}
	return nil
}
