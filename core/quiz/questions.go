package quiz

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Question kinds.
const (
	MultipleChoice = "multiple_choice"
	ShortAnswer    = "short_answer"
)

// Question is the tagged union embedded as JSON inside the questions column.
// Options is only meaningful for multiple choice.
type Question struct {
	Type          string   `json:"type"`
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer"`
}

func (q Question) validate() error {
	if q.Question == "" {
		return errors.New("question text is required")
	}
	switch q.Type {
	case MultipleChoice:
		if len(q.Options) < 2 {
			return errors.Errorf("multiple choice needs at least 2 options, got %d", len(q.Options))
		}
		for _, opt := range q.Options {
			if opt == q.CorrectAnswer {
				return nil
			}
		}
		return errors.New("correct answer is not one of the options")
	case ShortAnswer:
		if q.CorrectAnswer == "" {
			return errors.New("short answer needs a correct answer")
		}
		return nil
	default:
		return errors.Errorf("unknown question type %q", q.Type)
	}
}

// DecodeQuestions parses and validates an embedded question list. Opaque or
// half-shaped blobs fail here, at the record boundary, instead of crashing
// downstream consumers.
func DecodeQuestions(raw string) ([]Question, error) {
	var questions []Question
	if err := json.Unmarshal([]byte(raw), &questions); err != nil {
		return nil, errors.Wrap(err, "decoding quiz questions")
	}
	if len(questions) == 0 {
		return nil, errors.New("quiz has no questions")
	}
	for i, q := range questions {
		if err := q.validate(); err != nil {
			return nil, errors.Wrapf(err, "question %d", i+1)
		}
	}
	return questions, nil
}

func EncodeQuestions(questions []Question) (string, error) {
	data, err := json.Marshal(questions)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Grade scores answers (indexed by question position) against questions:
// multiple choice answers must match exactly, short answers are compared
// trimmed and case-insensitively. One point per correct answer.
func Grade(questions []Question, answers map[int]string) int {
	score := 0
	for i, q := range questions {
		answer, ok := answers[i]
		if !ok {
			continue
		}
		switch q.Type {
		case MultipleChoice:
			if answer == q.CorrectAnswer {
				score++
			}
		case ShortAnswer:
			if strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(q.CorrectAnswer)) {
				score++
			}
		}
	}
	return score
}
