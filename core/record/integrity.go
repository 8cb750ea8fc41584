package record

import (
	"fmt"

	"github.com/moyeohq/moyeo/core"
)

// Dangling reports a dependent row whose foreign key matches no parent row.
// Such rows can be left behind by a cascade interrupted between collection
// saves.
type Dangling struct {
	Collection string
	ForeignKey string
	Value      string
	RowID      string
}

func (d Dangling) String() string {
	return fmt.Sprintf("%s[%s]: %s=%q matches no parent", d.Collection, d.RowID, d.ForeignKey, d.Value)
}

type refPair struct {
	parent    string
	parentKey string
	child     string
	childKey  string
	// allowAll accepts the all-clubs sentinel as a valid reference.
	allowAll bool
}

var refPairs = []refPair{
	{parent: core.ColClubs, parentKey: "name", child: core.ColUserClubs, childKey: "club_name"},
	{parent: core.ColClubs, parentKey: "name", child: core.ColAssignments, childKey: "club", allowAll: true},
	{parent: core.ColAssignments, parentKey: "id", child: core.ColSubmissions, childKey: "assignment_id"},
	{parent: core.ColVotes, parentKey: "id", child: core.ColVoteResponses, childKey: "vote_id"},
	{parent: core.ColQuizzes, parentKey: "id", child: core.ColQuizAttempts, childKey: "quiz_id"},
	{parent: core.ColGalleries, parentKey: "id", child: core.ColGalleryComments, childKey: "gallery_id"},
	{parent: core.ColNotifications, parentKey: "id", child: core.ColNotificationReads, childKey: "notification_id"},
}

// CheckIntegrity scans every known parent/child pair and reports dependent
// rows whose parent no longer exists. Reconciliation is left to the caller.
func (svc *Service) CheckIntegrity() ([]Dangling, error) {
	var report []Dangling
	for _, pair := range refPairs {
		parents, err := svc.store.Load(pair.parent)
		if err != nil {
			return nil, err
		}
		known := make(map[string]bool, len(parents.Rows))
		for _, row := range parents.Rows {
			known[row[pair.parentKey]] = true
		}

		children, err := svc.store.Load(pair.child)
		if err != nil {
			return nil, err
		}
		for _, row := range children.Rows {
			val := row[pair.childKey]
			if known[val] {
				continue
			}
			if pair.allowAll && val == core.AllClubs {
				continue
			}
			report = append(report, Dangling{
				Collection: pair.child,
				ForeignKey: pair.childKey,
				Value:      val,
				RowID:      row["id"],
			})
		}
	}
	return report, nil
}
