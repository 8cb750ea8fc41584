package club

import (
	"errors"
	"time"

	"github.com/moyeohq/moyeo/core"
	"github.com/moyeohq/moyeo/core/record"
	"github.com/moyeohq/moyeo/core/scope"
)

var (
	// errors
	ErrNotFound      = errors.New("club not found")
	ErrNameExists    = errors.New("a club with this name already exists")
	ErrAlreadyMember = errors.New("already a member of this club")
	ErrClubFull      = errors.New("club is full")
)

type Service struct {
	store core.Store
	rec   *record.Service
}

func NewService(store core.Store, rec *record.Service) *Service {
	return &Service{store: store, rec: rec}
}

func (svc *Service) CheckUniqueness(name string) error {
	t, err := svc.store.Load(core.ColClubs)
	if err != nil {
		return err
	}
	for _, row := range t.Rows {
		if row["name"] == name {
			return core.NewValidationError(ErrNameExists, core.FieldError{Field: "name", Error: ErrNameExists.Error()})
		}
	}
	return nil
}

func (svc *Service) Create(nc NewClub) (Club, error) {
	if err := nc.Validate(svc); err != nil {
		return Club{}, err
	}
	c := Club{
		Name:        nc.Name,
		Icon:        nc.Icon,
		Description: nc.Description,
		President:   nc.President,
		MaxMembers:  nc.MaxMembers,
		CreatedAt:   time.Now(),
	}
	if _, err := svc.rec.Insert(core.ColClubs, c.Row()); err != nil {
		return Club{}, err
	}
	return c, nil
}

func (svc *Service) Get(name string) (Club, error) {
	t, err := svc.store.Load(core.ColClubs)
	if err != nil {
		return Club{}, err
	}
	for _, row := range t.Rows {
		if row["name"] == name {
			return FromRow(row)
		}
	}
	return Club{}, ErrNotFound
}

func (svc *Service) All() ([]Club, error) {
	t, err := svc.store.Load(core.ColClubs)
	if err != nil {
		return nil, err
	}
	clubs := make([]Club, 0, len(t.Rows))
	for _, row := range t.Rows {
		c, err := FromRow(row)
		if err != nil {
			return nil, err
		}
		clubs = append(clubs, c)
	}
	return clubs, nil
}

// Delete removes the club together with its memberships and its club-scoped
// assignments; submissions of those assignments are pruned as well.
func (svc *Service) Delete(name string) error {
	assignments, err := svc.store.Load(core.ColAssignments)
	if err != nil {
		return err
	}
	doomed := make(map[string]bool)
	for _, row := range assignments.Rows {
		if row["club"] == name {
			doomed[row["id"]] = true
		}
	}

	err = svc.rec.DeleteCascade(core.ColClubs, "name", name,
		record.Dependent{Collection: core.ColUserClubs, ForeignKey: "club_name"},
		record.Dependent{Collection: core.ColAssignments, ForeignKey: "club"},
	)
	if err != nil {
		return err
	}

	if len(doomed) > 0 {
		if _, err := svc.rec.DeleteWhere(core.ColSubmissions, func(row core.Row) bool {
			return doomed[row["assignment_id"]]
		}); err != nil {
			return err
		}
	}
	return nil
}

// AddMember links username to clubName, enforcing the membership pair's
// uniqueness and the club's member capacity.
func (svc *Service) AddMember(username, clubName string) (Membership, error) {
	c, err := svc.Get(clubName)
	if err != nil {
		return Membership{}, err
	}

	memberships, err := svc.Members(clubName)
	if err != nil {
		return Membership{}, err
	}
	for _, m := range memberships {
		if m.Username == username {
			return Membership{}, ErrAlreadyMember
		}
	}
	if len(memberships) >= c.MaxMembers {
		return Membership{}, ErrClubFull
	}

	m := Membership{Username: username, ClubName: clubName, JoinedAt: time.Now()}
	if _, err := svc.rec.Insert(core.ColUserClubs, m.Row()); err != nil {
		return Membership{}, err
	}
	return m, nil
}

func (svc *Service) Members(clubName string) ([]Membership, error) {
	t, err := svc.store.Load(core.ColUserClubs)
	if err != nil {
		return nil, err
	}
	var members []Membership
	for _, row := range t.Rows {
		if row["club_name"] != clubName {
			continue
		}
		m, err := MembershipFromRow(row)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, nil
}

// MembersWithAccounts joins a club's membership rows with account rows.
func (svc *Service) MembersWithAccounts(clubName string) (core.Table, error) {
	memberships, err := svc.store.Load(core.ColUserClubs)
	if err != nil {
		return core.Table{}, err
	}
	memberships = memberships.Filter(func(row core.Row) bool { return row["club_name"] == clubName })

	accounts, err := svc.store.Load(core.ColAccounts)
	if err != nil {
		return core.Table{}, err
	}
	return scope.Join(memberships, accounts, "username", "username"), nil
}

// ClubsOf returns username's membership rows joined with the club rows they
// reference; memberships of vanished clubs are kept with empty club fields.
func (svc *Service) ClubsOf(username string) (core.Table, error) {
	memberships, err := svc.store.Load(core.ColUserClubs)
	if err != nil {
		return core.Table{}, err
	}
	memberships = memberships.Filter(func(row core.Row) bool { return row["username"] == username })

	clubs, err := svc.store.Load(core.ColClubs)
	if err != nil {
		return core.Table{}, err
	}
	return scope.LeftJoin(memberships, clubs, "club_name", "name"), nil
}
