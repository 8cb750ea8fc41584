package club

import (
	"strconv"
	"time"

	"github.com/moyeohq/moyeo/core"
)

// Club is keyed by its name; there is no surrogate id.
type Club struct {
	Name        string
	Icon        string
	Description string
	President   string
	MaxMembers  int
	CreatedAt   time.Time
}

func (c Club) Row() core.Row {
	return core.Row{
		"name":         c.Name,
		"icon":         c.Icon,
		"description":  c.Description,
		"president":    c.President,
		"max_members":  strconv.Itoa(c.MaxMembers),
		"created_date": core.FormatTime(c.CreatedAt),
	}
}

func FromRow(row core.Row) (Club, error) {
	maxMembers, err := strconv.Atoi(row["max_members"])
	if err != nil {
		return Club{}, core.NewMalformedRowError(core.ColClubs, row["name"], err)
	}
	createdAt, err := core.ParseTime(row["created_date"])
	if err != nil {
		return Club{}, core.NewMalformedRowError(core.ColClubs, row["name"], err)
	}
	return Club{
		Name:        row["name"],
		Icon:        row["icon"],
		Description: row["description"],
		President:   row["president"],
		MaxMembers:  maxMembers,
		CreatedAt:   createdAt,
	}, nil
}

// Membership links an account to a club; the pair is the natural key.
type Membership struct {
	Username string
	ClubName string
	JoinedAt time.Time
}

func (m Membership) Row() core.Row {
	return core.Row{
		"username":    m.Username,
		"club_name":   m.ClubName,
		"joined_date": m.JoinedAt.Format(core.DateFormat),
	}
}

func MembershipFromRow(row core.Row) (Membership, error) {
	joinedAt, err := core.ParseTime(row["joined_date"])
	if err != nil {
		return Membership{}, core.NewMalformedRowError(core.ColUserClubs, row["username"], err)
	}
	return Membership{
		Username: row["username"],
		ClubName: row["club_name"],
		JoinedAt: joinedAt,
	}, nil
}

// NewClub contains information needed to create a new Club.
type NewClub struct {
	Name        string `json:"name" validate:"required"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	President   string `json:"president" validate:"required"`
	MaxMembers  int    `json:"max_members" validate:"gte=1"`
}

func (nc *NewClub) Validate(svc *Service) error {
	nc.Name = core.CleanString(nc.Name)
	nc.President = core.CleanString(nc.President, true /* lower */)

	if err := core.Validate.Struct(nc); err != nil {
		return err
	}
	return svc.CheckUniqueness(nc.Name)
}
