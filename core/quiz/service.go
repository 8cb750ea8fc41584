package quiz

import (
	"errors"
	"strconv"
	"time"

	"github.com/moyeohq/moyeo/core"
	"github.com/moyeohq/moyeo/core/record"
)

var ErrNotFound = errors.New("quiz not found")

type Service struct {
	store core.Store
	rec   *record.Service
}

func NewService(store core.Store, rec *record.Service) *Service {
	return &Service{store: store, rec: rec}
}

func (svc *Service) Create(nq NewQuiz) (Quiz, error) {
	if err := nq.Validate(); err != nil {
		return Quiz{}, err
	}
	q := Quiz{
		Title:       nq.Title,
		Description: nq.Description,
		Club:        nq.Club,
		Difficulty:  nq.Difficulty,
		TimeLimit:   nq.TimeLimit,
		Questions:   nq.Questions,
		Creator:     nq.Creator,
		CreatedAt:   time.Now(),
	}
	row, err := q.Row()
	if err != nil {
		return Quiz{}, err
	}
	id, err := svc.rec.Insert(core.ColQuizzes, row)
	if err != nil {
		return Quiz{}, err
	}
	q.ID = id
	return q, nil
}

func (svc *Service) Get(id int) (Quiz, error) {
	t, err := svc.store.Load(core.ColQuizzes)
	if err != nil {
		return Quiz{}, err
	}
	want := strconv.Itoa(id)
	for _, row := range t.Rows {
		if row["id"] == want {
			return FromRow(row)
		}
	}
	return Quiz{}, ErrNotFound
}

// Attempt grades answers against the quiz's questions and records the result.
func (svc *Service) Attempt(quizID int, username string, answers map[int]string) (Attempt, error) {
	q, err := svc.Get(quizID)
	if err != nil {
		return Attempt{}, err
	}

	a := Attempt{
		QuizID:      quizID,
		Username:    username,
		Answers:     answers,
		Score:       Grade(q.Questions, answers),
		AttemptedAt: time.Now(),
	}
	row, err := a.Row()
	if err != nil {
		return Attempt{}, err
	}
	id, err := svc.rec.Insert(core.ColQuizAttempts, row)
	if err != nil {
		return Attempt{}, err
	}
	a.ID = id
	return a, nil
}

func (svc *Service) Attempts(quizID int) ([]Attempt, error) {
	t, err := svc.store.Load(core.ColQuizAttempts)
	if err != nil {
		return nil, err
	}
	want := strconv.Itoa(quizID)
	var attempts []Attempt
	for _, row := range t.Rows {
		if row["quiz_id"] != want {
			continue
		}
		a, err := AttemptFromRow(row)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, nil
}

// Delete removes the quiz together with its attempts.
func (svc *Service) Delete(id int) error {
	return svc.rec.DeleteCascade(core.ColQuizzes, "id", strconv.Itoa(id),
		record.Dependent{Collection: core.ColQuizAttempts, ForeignKey: "quiz_id"},
	)
}
