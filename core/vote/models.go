package vote

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/moyeohq/moyeo/core"
)

// Vote carries its option list embedded as a JSON array inside the options
// column.
type Vote struct {
	ID          int
	Title       string
	Description string
	Options     []string
	Creator     string
	Club        string
	EndDate     time.Time
	CreatedAt   time.Time
}

func (v Vote) Row() (core.Row, error) {
	opts, err := json.Marshal(v.Options)
	if err != nil {
		return nil, err
	}
	return core.Row{
		"id":           strconv.Itoa(v.ID),
		"title":        v.Title,
		"description":  v.Description,
		"options":      string(opts),
		"creator":      v.Creator,
		"club":         v.Club,
		"end_date":     v.EndDate.Format(core.DateFormat),
		"created_date": core.FormatTime(v.CreatedAt),
	}, nil
}

func FromRow(row core.Row) (Vote, error) {
	id, err := strconv.Atoi(row["id"])
	if err != nil {
		return Vote{}, core.NewMalformedRowError(core.ColVotes, row["id"], err)
	}
	options, err := ParseOptions(row["options"])
	if err != nil {
		return Vote{}, core.NewMalformedRowError(core.ColVotes, row["id"], err)
	}
	endDate, err := core.ParseTime(row["end_date"])
	if err != nil {
		return Vote{}, core.NewMalformedRowError(core.ColVotes, row["id"], err)
	}
	createdAt, err := core.ParseTime(row["created_date"])
	if err != nil {
		return Vote{}, core.NewMalformedRowError(core.ColVotes, row["id"], err)
	}
	return Vote{
		ID:          id,
		Title:       row["title"],
		Description: row["description"],
		Options:     options,
		Creator:     row["creator"],
		Club:        row["club"],
		EndDate:     endDate,
		CreatedAt:   createdAt,
	}, nil
}

// ParseOptions decodes the embedded option list, validating it instead of
// passing an opaque blob downstream.
func ParseOptions(raw string) ([]string, error) {
	var options []string
	if err := json.Unmarshal([]byte(raw), &options); err != nil {
		return nil, errors.Wrap(err, "decoding vote options")
	}
	if len(options) < 2 {
		return nil, errors.Errorf("vote needs at least 2 options, got %d", len(options))
	}
	return options, nil
}

type Response struct {
	ID             int
	VoteID         int
	Username       string
	SelectedOption string
	VotedAt        time.Time
}

func (r Response) Row() core.Row {
	return core.Row{
		"id":              strconv.Itoa(r.ID),
		"vote_id":         strconv.Itoa(r.VoteID),
		"username":        r.Username,
		"selected_option": r.SelectedOption,
		"voted_date":      core.FormatTime(r.VotedAt),
	}
}

func ResponseFromRow(row core.Row) (Response, error) {
	id, err := strconv.Atoi(row["id"])
	if err != nil {
		return Response{}, core.NewMalformedRowError(core.ColVoteResponses, row["id"], err)
	}
	voteID, err := strconv.Atoi(row["vote_id"])
	if err != nil {
		return Response{}, core.NewMalformedRowError(core.ColVoteResponses, row["id"], err)
	}
	votedAt, err := core.ParseTime(row["voted_date"])
	if err != nil {
		return Response{}, core.NewMalformedRowError(core.ColVoteResponses, row["id"], err)
	}
	return Response{
		ID:             id,
		VoteID:         voteID,
		Username:       row["username"],
		SelectedOption: row["selected_option"],
		VotedAt:        votedAt,
	}, nil
}

// NewVote contains information needed to create a new Vote.
type NewVote struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Options     []string  `json:"options" validate:"min=2,dive,required"`
	Creator     string    `json:"creator" validate:"required"`
	Club        string    `json:"club" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required"`
}

func (nv *NewVote) Validate() error {
	nv.Title = core.CleanString(nv.Title)
	nv.Club = core.CleanString(nv.Club)
	nv.Creator = core.CleanString(nv.Creator, true /* lower */)
	for i, opt := range nv.Options {
		nv.Options[i] = core.CleanString(opt)
	}
	return core.Validate.Struct(nv)
}
