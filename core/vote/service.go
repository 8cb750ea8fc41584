package vote

import (
	"errors"
	"strconv"
	"time"

	"github.com/moyeohq/moyeo/core"
	"github.com/moyeohq/moyeo/core/record"
)

var (
	// errors
	ErrNotFound     = errors.New("vote not found")
	ErrAlreadyVoted = errors.New("already voted")
	ErrVoteClosed   = errors.New("vote has ended")
)

type Service struct {
	store core.Store
	rec   *record.Service
}

func NewService(store core.Store, rec *record.Service) *Service {
	return &Service{store: store, rec: rec}
}

func (svc *Service) Create(nv NewVote) (Vote, error) {
	if err := nv.Validate(); err != nil {
		return Vote{}, err
	}
	v := Vote{
		Title:       nv.Title,
		Description: nv.Description,
		Options:     nv.Options,
		Creator:     nv.Creator,
		Club:        nv.Club,
		EndDate:     nv.EndDate,
		CreatedAt:   time.Now(),
	}
	row, err := v.Row()
	if err != nil {
		return Vote{}, err
	}
	id, err := svc.rec.Insert(core.ColVotes, row)
	if err != nil {
		return Vote{}, err
	}
	v.ID = id
	return v, nil
}

func (svc *Service) Get(id int) (Vote, error) {
	t, err := svc.store.Load(core.ColVotes)
	if err != nil {
		return Vote{}, err
	}
	want := strconv.Itoa(id)
	for _, row := range t.Rows {
		if row["id"] == want {
			return FromRow(row)
		}
	}
	return Vote{}, ErrNotFound
}

// Respond records username's choice. One response per user per vote; votes
// past their end date no longer accept responses.
func (svc *Service) Respond(voteID int, username, selectedOption string) (Response, error) {
	v, err := svc.Get(voteID)
	if err != nil {
		return Response{}, err
	}
	// the end date itself still accepts responses; compare calendar dates so
	// time zones cannot shift the boundary
	if time.Now().Format(core.DateFormat) > v.EndDate.Format(core.DateFormat) {
		return Response{}, ErrVoteClosed
	}

	responses, err := svc.Responses(voteID)
	if err != nil {
		return Response{}, err
	}
	for _, r := range responses {
		if r.Username == username {
			return Response{}, ErrAlreadyVoted
		}
	}

	r := Response{
		VoteID:         voteID,
		Username:       username,
		SelectedOption: selectedOption,
		VotedAt:        time.Now(),
	}
	id, err := svc.rec.Insert(core.ColVoteResponses, r.Row())
	if err != nil {
		return Response{}, err
	}
	r.ID = id
	return r, nil
}

func (svc *Service) Responses(voteID int) ([]Response, error) {
	t, err := svc.store.Load(core.ColVoteResponses)
	if err != nil {
		return nil, err
	}
	want := strconv.Itoa(voteID)
	var responses []Response
	for _, row := range t.Rows {
		if row["vote_id"] != want {
			continue
		}
		r, err := ResponseFromRow(row)
		if err != nil {
			return nil, err
		}
		responses = append(responses, r)
	}
	return responses, nil
}

// Results tallies responses per option. Every declared option appears in the
// result, responses for withdrawn options are ignored.
func (svc *Service) Results(voteID int) (map[string]int, error) {
	v, err := svc.Get(voteID)
	if err != nil {
		return nil, err
	}
	responses, err := svc.Responses(voteID)
	if err != nil {
		return nil, err
	}

	tally := make(map[string]int, len(v.Options))
	for _, opt := range v.Options {
		tally[opt] = 0
	}
	for _, r := range responses {
		if _, ok := tally[r.SelectedOption]; ok {
			tally[r.SelectedOption]++
		}
	}
	return tally, nil
}

// Delete removes the vote together with its responses.
func (svc *Service) Delete(id int) error {
	return svc.rec.DeleteCascade(core.ColVotes, "id", strconv.Itoa(id),
		record.Dependent{Collection: core.ColVoteResponses, ForeignKey: "vote_id"},
	)
}
