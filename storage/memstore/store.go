// Package memstore is an in-memory core.Store used by tests and local tooling.
package memstore

import (
	"sync"

	"github.com/moyeohq/moyeo/core"
)

type Store struct {
	mu      sync.RWMutex
	schemas map[string]core.Schema
	tables  map[string]core.Table
}

var _ core.Store = (*Store)(nil) // interface compliance check

// New returns a store pre-registered with every known collection schema.
func New() *Store {
	st := &Store{
		schemas: make(map[string]core.Schema),
		tables:  make(map[string]core.Table),
	}
	for _, sch := range core.Collections() {
		_ = st.EnsureSchema(sch)
	}
	return st
}

func (st *Store) EnsureSchema(sch core.Schema) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.schemas[sch.Name] = sch
	if _, ok := st.tables[sch.Name]; !ok {
		st.tables[sch.Name] = core.NewTable(sch.Columns)
	}
	return nil
}

func (st *Store) Schema(name string) (core.Schema, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	sch, ok := st.schemas[name]
	return sch, ok
}

func (st *Store) Load(name string) (core.Table, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.get(name), nil
}

func (st *Store) Save(name string, t core.Table) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.tables[name] = t.Clone()
	return nil
}

func (st *Store) Mutate(name string, fn func(t *core.Table) (bool, error)) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	t := st.get(name)
	changed, err := fn(&t)
	if err != nil {
		return err
	}
	if changed {
		st.tables[name] = t.Clone()
	}
	return nil
}

// get returns a copy so callers never alias the stored table.
func (st *Store) get(name string) core.Table {
	if t, ok := st.tables[name]; ok {
		return t.Clone()
	}
	if sch, ok := st.schemas[name]; ok {
		return core.NewTable(sch.Columns)
	}
	return core.Table{}
}
