package assign

import (
	"errors"
	"strconv"
	"time"

	"github.com/moyeohq/moyeo/core"
	"github.com/moyeohq/moyeo/core/account"
	"github.com/moyeohq/moyeo/core/record"
	"github.com/moyeohq/moyeo/core/scope"
)

var ErrNotFound = errors.New("assignment not found")

type Service struct {
	store    core.Store
	rec      *record.Service
	resolver *scope.Resolver
}

func NewService(store core.Store, rec *record.Service, resolver *scope.Resolver) *Service {
	return &Service{store: store, rec: rec, resolver: resolver}
}

func (svc *Service) Create(na NewAssignment) (Assignment, error) {
	if err := na.Validate(); err != nil {
		return Assignment{}, err
	}
	a := Assignment{
		Title:       na.Title,
		Description: na.Description,
		Club:        na.Club,
		DueDate:     na.DueDate,
		Creator:     na.Creator,
		Status:      StatusActive,
		CreatedAt:   time.Now(),
	}
	id, err := svc.rec.Insert(core.ColAssignments, a.Row())
	if err != nil {
		return Assignment{}, err
	}
	a.ID = id
	return a, nil
}

func (svc *Service) Get(id int) (Assignment, error) {
	t, err := svc.store.Load(core.ColAssignments)
	if err != nil {
		return Assignment{}, err
	}
	want := strconv.Itoa(id)
	for _, row := range t.Rows {
		if row["id"] == want {
			return FromRow(row)
		}
	}
	return Assignment{}, ErrNotFound
}

// Visible returns the assignments within acct's club scope.
func (svc *Service) Visible(acct account.Account) ([]Assignment, error) {
	t, err := svc.store.Load(core.ColAssignments)
	if err != nil {
		return nil, err
	}
	set, err := svc.resolver.ForUser(acct)
	if err != nil {
		return nil, err
	}
	t = scope.FilterByScope(t, set, "club")

	as := make([]Assignment, 0, len(t.Rows))
	for _, row := range t.Rows {
		a, err := FromRow(row)
		if err != nil {
			return nil, err
		}
		as = append(as, a)
	}
	return as, nil
}

// Submit records username's submission for an assignment. A resubmission
// replaces the content, file path and submission time of the existing row.
func (svc *Service) Submit(assignmentID int, username, content, filePath string) (Submission, error) {
	if _, err := svc.Get(assignmentID); err != nil {
		return Submission{}, err
	}

	want := strconv.Itoa(assignmentID)
	now := time.Now()

	n, err := svc.rec.UpdateWhere(core.ColSubmissions,
		func(row core.Row) bool {
			return row["assignment_id"] == want && row["username"] == username
		},
		func(row core.Row) {
			row["content"] = content
			row["file_path"] = filePath
			row["submitted_date"] = core.FormatTime(now)
		},
	)
	if err != nil {
		return Submission{}, err
	}
	if n > 0 {
		return svc.submissionOf(assignmentID, username)
	}

	s := Submission{
		AssignmentID: assignmentID,
		Username:     username,
		Content:      content,
		FilePath:     filePath,
		SubmittedAt:  now,
	}
	id, err := svc.rec.Insert(core.ColSubmissions, s.Row())
	if err != nil {
		return Submission{}, err
	}
	s.ID = id
	return s, nil
}

func (svc *Service) submissionOf(assignmentID int, username string) (Submission, error) {
	subs, err := svc.SubmissionsFor(assignmentID)
	if err != nil {
		return Submission{}, err
	}
	for _, s := range subs {
		if s.Username == username {
			return s, nil
		}
	}
	return Submission{}, ErrNotFound
}

func (svc *Service) SetScore(submissionID, score int) error {
	return svc.patchSubmission(submissionID, func(row core.Row) {
		row["score"] = strconv.Itoa(score)
	})
}

func (svc *Service) SetFeedback(submissionID int, feedback string) error {
	return svc.patchSubmission(submissionID, func(row core.Row) {
		row["feedback"] = feedback
	})
}

func (svc *Service) patchSubmission(submissionID int, patch func(core.Row)) error {
	want := strconv.Itoa(submissionID)
	n, err := svc.rec.UpdateWhere(core.ColSubmissions,
		func(row core.Row) bool { return row["id"] == want },
		patch,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the assignment together with its submissions.
func (svc *Service) Delete(id int) error {
	return svc.rec.DeleteCascade(core.ColAssignments, "id", strconv.Itoa(id),
		record.Dependent{Collection: core.ColSubmissions, ForeignKey: "assignment_id"},
	)
}

func (svc *Service) SubmissionsFor(assignmentID int) ([]Submission, error) {
	t, err := svc.store.Load(core.ColSubmissions)
	if err != nil {
		return nil, err
	}
	want := strconv.Itoa(assignmentID)
	var subs []Submission
	for _, row := range t.Rows {
		if row["assignment_id"] != want {
			continue
		}
		s, err := SubmissionFromRow(row)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, nil
}

// ForUser returns username's submission rows joined with the assignments they
// answer; submissions of vanished assignments keep empty assignment fields.
func (svc *Service) ForUser(username string) (core.Table, error) {
	subs, err := svc.store.Load(core.ColSubmissions)
	if err != nil {
		return core.Table{}, err
	}
	subs = subs.Filter(func(row core.Row) bool { return row["username"] == username })

	assignments, err := svc.store.Load(core.ColAssignments)
	if err != nil {
		return core.Table{}, err
	}
	return scope.LeftJoin(subs, assignments, "assignment_id", "id"), nil
}
