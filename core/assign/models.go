package assign

import (
	"strconv"
	"time"

	"github.com/moyeohq/moyeo/core"
)

// Assignment statuses.
const (
	StatusActive = "active"
	StatusClosed = "closed"
)

type Assignment struct {
	ID          int
	Title       string
	Description string
	Club        string
	DueDate     time.Time
	Creator     string
	Status      string
	CreatedAt   time.Time
}

func (a Assignment) Row() core.Row {
	return core.Row{
		"id":           strconv.Itoa(a.ID),
		"title":        a.Title,
		"description":  a.Description,
		"club":         a.Club,
		"due_date":     a.DueDate.Format(core.DateFormat),
		"creator":      a.Creator,
		"status":       a.Status,
		"created_date": core.FormatTime(a.CreatedAt),
	}
}

func FromRow(row core.Row) (Assignment, error) {
	id, err := strconv.Atoi(row["id"])
	if err != nil {
		return Assignment{}, core.NewMalformedRowError(core.ColAssignments, row["id"], err)
	}
	dueDate, err := core.ParseTime(row["due_date"])
	if err != nil {
		return Assignment{}, core.NewMalformedRowError(core.ColAssignments, row["id"], err)
	}
	createdAt, err := core.ParseTime(row["created_date"])
	if err != nil {
		return Assignment{}, core.NewMalformedRowError(core.ColAssignments, row["id"], err)
	}
	return Assignment{
		ID:          id,
		Title:       row["title"],
		Description: row["description"],
		Club:        row["club"],
		DueDate:     dueDate,
		Creator:     row["creator"],
		Status:      row["status"],
		CreatedAt:   createdAt,
	}, nil
}

type Submission struct {
	ID           int
	AssignmentID int
	Username     string
	Content      string
	FilePath     string
	Score        int
	Feedback     string
	SubmittedAt  time.Time
}

func (s Submission) Row() core.Row {
	return core.Row{
		"id":             strconv.Itoa(s.ID),
		"assignment_id":  strconv.Itoa(s.AssignmentID),
		"username":       s.Username,
		"content":        s.Content,
		"file_path":      s.FilePath,
		"score":          strconv.Itoa(s.Score),
		"feedback":       s.Feedback,
		"submitted_date": core.FormatTime(s.SubmittedAt),
	}
}

func SubmissionFromRow(row core.Row) (Submission, error) {
	id, err := strconv.Atoi(row["id"])
	if err != nil {
		return Submission{}, core.NewMalformedRowError(core.ColSubmissions, row["id"], err)
	}
	assignmentID, err := strconv.Atoi(row["assignment_id"])
	if err != nil {
		return Submission{}, core.NewMalformedRowError(core.ColSubmissions, row["id"], err)
	}
	score, err := strconv.Atoi(row["score"])
	if err != nil {
		return Submission{}, core.NewMalformedRowError(core.ColSubmissions, row["id"], err)
	}
	submittedAt, err := core.ParseTime(row["submitted_date"])
	if err != nil {
		return Submission{}, core.NewMalformedRowError(core.ColSubmissions, row["id"], err)
	}
	return Submission{
		ID:           id,
		AssignmentID: assignmentID,
		Username:     row["username"],
		Content:      row["content"],
		FilePath:     row["file_path"],
		Score:        score,
		Feedback:     row["feedback"],
		SubmittedAt:  submittedAt,
	}, nil
}

// NewAssignment contains information needed to create a new Assignment.
type NewAssignment struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Club        string    `json:"club" validate:"required"`
	DueDate     time.Time `json:"due_date" validate:"required"`
	Creator     string    `json:"creator" validate:"required"`
}

func (na *NewAssignment) Validate() error {
	na.Title = core.CleanString(na.Title)
	na.Club = core.CleanString(na.Club)
	na.Creator = core.CleanString(na.Creator, true /* lower */)
	return core.Validate.Struct(na)
}
