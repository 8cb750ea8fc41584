package quiz

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/moyeohq/moyeo/core"
)

type Quiz struct {
	ID          int
	Title       string
	Description string
	Club        string
	Difficulty  string
	TimeLimit   int // minutes
	Questions   []Question
	Creator     string
	CreatedAt   time.Time
}

func (q Quiz) Row() (core.Row, error) {
	questions, err := EncodeQuestions(q.Questions)
	if err != nil {
		return nil, err
	}
	return core.Row{
		"id":           strconv.Itoa(q.ID),
		"title":        q.Title,
		"description":  q.Description,
		"club":         q.Club,
		"difficulty":   q.Difficulty,
		"time_limit":   strconv.Itoa(q.TimeLimit),
		"questions":    questions,
		"creator":      q.Creator,
		"created_date": core.FormatTime(q.CreatedAt),
	}, nil
}

func FromRow(row core.Row) (Quiz, error) {
	id, err := strconv.Atoi(row["id"])
	if err != nil {
		return Quiz{}, core.NewMalformedRowError(core.ColQuizzes, row["id"], err)
	}
	timeLimit, err := strconv.Atoi(row["time_limit"])
	if err != nil {
		return Quiz{}, core.NewMalformedRowError(core.ColQuizzes, row["id"], err)
	}
	questions, err := DecodeQuestions(row["questions"])
	if err != nil {
		return Quiz{}, core.NewMalformedRowError(core.ColQuizzes, row["id"], err)
	}
	createdAt, err := core.ParseTime(row["created_date"])
	if err != nil {
		return Quiz{}, core.NewMalformedRowError(core.ColQuizzes, row["id"], err)
	}
	return Quiz{
		ID:          id,
		Title:       row["title"],
		Description: row["description"],
		Club:        row["club"],
		Difficulty:  row["difficulty"],
		TimeLimit:   timeLimit,
		Questions:   questions,
		Creator:     row["creator"],
		CreatedAt:   createdAt,
	}, nil
}

type Attempt struct {
	ID          int
	QuizID      int
	Username    string
	Answers     map[int]string
	Score       int
	AttemptedAt time.Time
}

func (a Attempt) Row() (core.Row, error) {
	answers, err := json.Marshal(a.Answers)
	if err != nil {
		return nil, err
	}
	return core.Row{
		"id":             strconv.Itoa(a.ID),
		"quiz_id":        strconv.Itoa(a.QuizID),
		"username":       a.Username,
		"answers":        string(answers),
		"score":          strconv.Itoa(a.Score),
		"attempted_date": core.FormatTime(a.AttemptedAt),
	}, nil
}

func AttemptFromRow(row core.Row) (Attempt, error) {
	id, err := strconv.Atoi(row["id"])
	if err != nil {
		return Attempt{}, core.NewMalformedRowError(core.ColQuizAttempts, row["id"], err)
	}
	quizID, err := strconv.Atoi(row["quiz_id"])
	if err != nil {
		return Attempt{}, core.NewMalformedRowError(core.ColQuizAttempts, row["id"], err)
	}
	var answers map[int]string
	if err := json.Unmarshal([]byte(row["answers"]), &answers); err != nil {
		return Attempt{}, core.NewMalformedRowError(core.ColQuizAttempts, row["id"], err)
	}
	score, err := strconv.Atoi(row["score"])
	if err != nil {
		return Attempt{}, core.NewMalformedRowError(core.ColQuizAttempts, row["id"], err)
	}
	attemptedAt, err := core.ParseTime(row["attempted_date"])
	if err != nil {
		return Attempt{}, core.NewMalformedRowError(core.ColQuizAttempts, row["id"], err)
	}
	return Attempt{
		ID:          id,
		QuizID:      quizID,
		Username:    row["username"],
		Answers:     answers,
		Score:       score,
		AttemptedAt: attemptedAt,
	}, nil
}

// NewQuiz contains information needed to create a new Quiz.
type NewQuiz struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description" validate:"required"`
	Club        string     `json:"club" validate:"required"`
	Difficulty  string     `json:"difficulty"`
	TimeLimit   int        `json:"time_limit" validate:"gte=0"`
	Questions   []Question `json:"questions" validate:"min=1"`
	Creator     string     `json:"creator" validate:"required"`
}

func (nq *NewQuiz) Validate() error {
	nq.Title = core.CleanString(nq.Title)
	nq.Club = core.CleanString(nq.Club)
	nq.Creator = core.CleanString(nq.Creator, true /* lower */)

	if err := core.Validate.Struct(nq); err != nil {
		return err
	}
	for i, q := range nq.Questions {
		if err := q.validate(); err != nil {
			return core.NewValidationError(err, core.FieldError{
				Field: "questions", Error: "question " + strconv.Itoa(i+1) + ": " + err.Error(),
			})
		}
	}
	return nil
}
