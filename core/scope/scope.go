// Package scope computes a principal's accessible club scope and assembles
// cross-collection views.
package scope

import (
	"sort"

	"github.com/moyeohq/moyeo/core"
	"github.com/moyeohq/moyeo/core/account"
)

// Set is the set of club names a principal may see. All marks administrator
// scope and is distinct from the all-clubs content sentinel: content rows
// carrying core.AllClubs are visible to everyone, but membership of a literal
// club named like the sentinel grants nothing beyond that club's rows.
type Set struct {
	All   bool
	clubs map[string]bool
}

// Admin returns the unrestricted administrator scope.
func Admin() Set { return Set{All: true} }

// Of returns a scope over the given club names.
func Of(clubs ...string) Set {
	s := Set{clubs: make(map[string]bool, len(clubs))}
	for _, c := range clubs {
		s.clubs[c] = true
	}
	return s
}

// Allows reports whether a row carrying clubValue is visible to this scope.
func (s Set) Allows(clubValue string) bool {
	if s.All || clubValue == core.AllClubs {
		return true
	}
	return s.clubs[clubValue]
}

// Clubs returns the scoped club names in sorted order. Empty for admin scope.
func (s Set) Clubs() []string {
	names := make([]string, 0, len(s.clubs))
	for c := range s.clubs {
		names = append(names, c)
	}
	sort.Strings(names)
	return names
}

type Resolver struct {
	store core.Store
}

func NewResolver(store core.Store) *Resolver {
	return &Resolver{store: store}
}

// ForUser resolves the accessible scope of acct: administrators get the
// unrestricted scope, everyone else the clubs of their membership rows.
func (r *Resolver) ForUser(acct account.Account) (Set, error) {
	if acct.IsAdmin() {
		return Admin(), nil
	}
	t, err := r.store.Load(core.ColUserClubs)
	if err != nil {
		return Set{}, err
	}
	var clubs []string
	for _, row := range t.Rows {
		if row["username"] == acct.Username {
			clubs = append(clubs, row["club_name"])
		}
	}
	return Of(clubs...), nil
}

// FilterByScope keeps the rows whose clubField value is visible to s.
func FilterByScope(t core.Table, s Set, clubField string) core.Table {
	if s.All {
		return t
	}
	return t.Filter(func(row core.Row) bool { return s.Allows(row[clubField]) })
}

// Join inner-joins left and right on leftKey == rightKey; unmatched left rows
// are dropped.
func Join(left, right core.Table, leftKey, rightKey string) core.Table {
	return join(left, right, leftKey, rightKey, false)
}

// LeftJoin keeps unmatched left rows with empty right-side fields.
func LeftJoin(left, right core.Table, leftKey, rightKey string) core.Table {
	return join(left, right, leftKey, rightKey, true)
}

func join(left, right core.Table, leftKey, rightKey string, keepUnmatched bool) core.Table {
	leftCols := make(map[string]bool, len(left.Columns))
	for _, c := range left.Columns {
		leftCols[c] = true
	}
	// The right join-key column is redundant (it equals the left key) and is
	// dropped; other right-side collisions are prefixed with the right key.
	rightCols := make([]string, 0, len(right.Columns))
	for _, c := range right.Columns {
		if c == rightKey {
			continue
		}
		rightCols = append(rightCols, c)
	}
	rightName := func(c string) string {
		if leftCols[c] {
			return rightKey + "_" + c
		}
		return c
	}

	out := core.Table{Columns: append([]string(nil), left.Columns...)}
	for _, c := range rightCols {
		out.Columns = append(out.Columns, rightName(c))
	}

	byKey := make(map[string][]core.Row)
	for _, row := range right.Rows {
		byKey[row[rightKey]] = append(byKey[row[rightKey]], row)
	}

	for _, lrow := range left.Rows {
		matches := byKey[lrow[leftKey]]
		if len(matches) == 0 {
			if !keepUnmatched {
				continue
			}
			merged := lrow.Clone()
			for _, c := range rightCols {
				merged[rightName(c)] = ""
			}
			out.Append(merged)
			continue
		}
		for _, rrow := range matches {
			merged := lrow.Clone()
			for _, c := range rightCols {
				merged[rightName(c)] = rrow[c]
			}
			out.Append(merged)
		}
	}
	return out
}
