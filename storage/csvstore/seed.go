package csvstore

import (
	"time"

	"github.com/moyeohq/moyeo/core"
	"github.com/moyeohq/moyeo/core/club"
)

// Seed populates the default clubs and membership links on first-ever
// initialization. Skipped whenever the clubs collection already holds rows.
func (st *Store) Seed() error {
	seeded := false
	err := st.Mutate(core.ColClubs, func(t *core.Table) (bool, error) {
		if !t.IsEmpty() {
			return false, nil
		}
		for _, c := range club.DefaultClubs(time.Now()) {
			t.Append(c.Row())
		}
		seeded = true
		return true, nil
	})
	if err != nil || !seeded {
		return err
	}

	if st.log != nil {
		st.log.Info("csvstore: seeded default clubs")
	}
	return st.Mutate(core.ColUserClubs, func(t *core.Table) (bool, error) {
		for _, m := range club.DefaultMemberships(time.Now()) {
			t.Append(m.Row())
		}
		return true, nil
	})
}
