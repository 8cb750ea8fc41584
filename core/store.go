package core

// Schema describes the durable shape of one named collection.
type Schema struct {
	Name    string
	Columns []string
	// HasID marks collections with a surrogate integer id column assigned at
	// insert time.
	HasID bool
}

type (
	// Store owns durable named collections.
	Store interface {
		// EnsureSchema creates an empty durable table for sch if absent. Idempotent.
		EnsureSchema(sch Schema) error
		// Schema reports the registered schema for a collection name.
		Schema(name string) (Schema, bool)
		// Load returns the full current contents of a collection. A missing or
		// unreadable file yields an empty table with the registered columns,
		// not an error.
		Load(name string) (Table, error)
		// Save atomically replaces the collection's durable contents. The
		// entire collection is rewritten on every save.
		Save(name string, t Table) error
		// Mutate runs one load→mutate→save cycle under the collection's
		// exclusive lock. fn reports whether the table was changed and must be
		// saved. Serialized per collection name to avoid lost updates.
		Mutate(name string, fn func(t *Table) (bool, error)) error
	}
)
