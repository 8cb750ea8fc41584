// Package record provides identity-safe mutation helpers on top of a
// core.Store: inserts with surrogate-id assignment, predicate updates and
// cascading deletes guarded by an intent journal.
package record

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/moyeohq/moyeo/core"
)

type Service struct {
	store   core.Store
	log     core.Logger
	journal *journal
}

// NewService wires the record layer. The cascade intent journal lives under
// the data directory; a nil conf disables journaling.
func NewService(store core.Store, log core.Logger, conf *core.Config) *Service {
	svc := &Service{store: store, log: log}
	if conf != nil && conf.DataDir != "" {
		svc.journal = newJournal(conf.DataDir)
	}
	return svc
}

// NextID computes the next surrogate id as max(existing ids)+1. Row count is
// never used: ids must not be reused after deletions. Rows with unparsable
// ids are skipped.
func NextID(t core.Table) int {
	max := 0
	for _, row := range t.Rows {
		id, err := strconv.Atoi(row["id"])
		if err != nil {
			continue
		}
		if id > max {
			max = id
		}
	}
	return max + 1
}

// Insert appends a row, assigning a surrogate id when the collection's schema
// has one. Returns the assigned id (0 for natural-key collections).
func (svc *Service) Insert(name string, row core.Row) (int, error) {
	// schema lookup happens before Mutate: the store's lock is already held
	// inside the callback
	sch, ok := svc.store.Schema(name)

	var id int
	err := svc.store.Mutate(name, func(t *core.Table) (bool, error) {
		if ok && sch.HasID {
			id = NextID(*t)
			row["id"] = strconv.Itoa(id)
		}
		t.Append(row)
		return true, nil
	})
	if err != nil {
		return 0, errors.Wrapf(err, "inserting into %s", name)
	}
	return id, nil
}

// UpdateWhere applies patch to every row matching pred and reports the number
// of rows matched. Nothing is saved when no row matches.
func (svc *Service) UpdateWhere(name string, pred func(core.Row) bool, patch func(core.Row)) (int, error) {
	var count int
	err := svc.store.Mutate(name, func(t *core.Table) (bool, error) {
		for _, row := range t.Rows {
			if pred(row) {
				patch(row)
				count++
			}
		}
		return count > 0, nil
	})
	if err != nil {
		return 0, errors.Wrapf(err, "updating %s", name)
	}
	return count, nil
}

// DeleteWhere removes every row matching pred and reports the number removed.
func (svc *Service) DeleteWhere(name string, pred func(core.Row) bool) (int, error) {
	var count int
	err := svc.store.Mutate(name, func(t *core.Table) (bool, error) {
		kept := t.Filter(func(row core.Row) bool { return !pred(row) })
		count = len(t.Rows) - len(kept.Rows)
		*t = kept
		return count > 0, nil
	})
	if err != nil {
		return 0, errors.Wrapf(err, "deleting from %s", name)
	}
	return count, nil
}

// Delete removes every row whose field equals value.
func (svc *Service) Delete(name, field, value string) (int, error) {
	return svc.DeleteWhere(name, func(row core.Row) bool { return row[field] == value })
}

// Dependent names a child collection whose rows reference a parent through
// ForeignKey.
type Dependent struct {
	Collection string `json:"collection"`
	ForeignKey string `json:"foreign_key"`
}

// DeleteCascade removes the parent row(s) matching field=value, then every
// dependent row referencing value. Saves are per-collection and not atomic
// across collections: an intent record is journaled first so an interrupted
// cascade can be replayed by Recover.
func (svc *Service) DeleteCascade(name, field, value string, deps ...Dependent) error {
	var in intent
	if svc.journal != nil {
		var err error
		if in, err = svc.journal.record(name, field, value, deps); err != nil {
			return errors.Wrap(err, "recording cascade intent")
		}
	}

	if err := svc.runCascade(name, field, value, deps); err != nil {
		return err
	}

	if svc.journal != nil {
		if err := svc.journal.clear(in.ID); err != nil && svc.log != nil {
			svc.log.Warn("record: clearing cascade intent", in.ID, err)
		}
	}
	return nil
}

func (svc *Service) runCascade(name, field, value string, deps []Dependent) error {
	if _, err := svc.Delete(name, field, value); err != nil {
		return err
	}
	for _, dep := range deps {
		if _, err := svc.Delete(dep.Collection, dep.ForeignKey, value); err != nil {
			return err
		}
	}
	return nil
}

// Recover replays pending cascade intents left behind by interrupted deletes.
// Deletion by key is idempotent, so replaying a partially applied cascade is
// safe. Returns the number of intents replayed.
func (svc *Service) Recover() (int, error) {
	if svc.journal == nil {
		return 0, nil
	}
	pending, err := svc.journal.pending()
	if err != nil {
		return 0, err
	}
	for _, in := range pending {
		if err := svc.runCascade(in.Parent, in.Field, in.Value, in.Dependents); err != nil {
			return 0, errors.Wrapf(err, "replaying cascade intent %s", in.ID)
		}
		if err := svc.journal.clear(in.ID); err != nil {
			return 0, errors.Wrapf(err, "clearing cascade intent %s", in.ID)
		}
	}
	return len(pending), nil
}
