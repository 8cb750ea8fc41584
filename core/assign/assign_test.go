package assign

import (
	"testing"
	"time"

	"github.com/moyeohq/moyeo/core"
	"github.com/moyeohq/moyeo/core/account"
	"github.com/moyeohq/moyeo/core/record"
	"github.com/moyeohq/moyeo/core/scope"
	"github.com/moyeohq/moyeo/storage/memstore"
)

func setup(t *testing.T) (*Service, *record.Service, core.Store) {
	store := memstore.New()
	rec := record.NewService(store, nil, nil)
	if _, err := rec.Insert(core.ColUserClubs, core.Row{"username": "member1", "club_name": "코딩", "joined_date": "2026-03-02"}); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
	return NewService(store, rec, scope.NewResolver(store)), rec, store
}

func createAssignment(t *testing.T, svc *Service, clubName string) Assignment {
	a, err := svc.Create(NewAssignment{
		Title:   "과제",
		Club:    clubName,
		DueDate: time.Now().AddDate(0, 0, 7),
		Creator: "president1",
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	return a
}

func TestService_Create(t *testing.T) {
	svc, _, _ := setup(t)

	a := createAssignment(t, svc, "코딩")
	if a.ID != 1 {
		t.Errorf("Create() id = %d, want 1", a.ID)
	}
	if a.Status != StatusActive {
		t.Errorf("Create() status = %q, want %q", a.Status, StatusActive)
	}

	if _, err := svc.Create(NewAssignment{Club: "코딩", Creator: "p"}); err == nil {
		t.Error("Create() accepted an assignment without title and due date")
	}
}

func TestService_Submit_resubmissionReplaces(t *testing.T) {
	svc, _, store := setup(t)
	a := createAssignment(t, svc, "코딩")

	first, err := svc.Submit(a.ID, "member1", "첫 제출", "report_v1.pdf")
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	second, err := svc.Submit(a.ID, "member1", "수정 제출", "report_v2.pdf")
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("resubmission created a new row: id = %d, want %d", second.ID, first.ID)
	}
	if second.Content != "수정 제출" || second.FilePath != "report_v2.pdf" {
		t.Errorf("resubmission did not replace content: %+v", second)
	}

	subs, _ := store.Load(core.ColSubmissions)
	if subs.Len() != 1 {
		t.Errorf("submissions = %d, want 1", subs.Len())
	}

	// another member gets their own row
	if _, err := svc.Submit(a.ID, "member2", "내 제출", ""); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	subs, _ = store.Load(core.ColSubmissions)
	if subs.Len() != 2 {
		t.Errorf("submissions = %d, want 2", subs.Len())
	}

	if _, err := svc.Submit(999, "member1", "x", ""); err != ErrNotFound {
		t.Errorf("Submit(999) error = %v, want %v", err, ErrNotFound)
	}
}

func TestService_grading(t *testing.T) {
	svc, _, _ := setup(t)
	a := createAssignment(t, svc, "코딩")
	s, err := svc.Submit(a.ID, "member1", "제출", "")
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	if err := svc.SetScore(s.ID, 95); err != nil {
		t.Fatalf("SetScore() failed: %v", err)
	}
	if err := svc.SetFeedback(s.ID, "잘했어요"); err != nil {
		t.Fatalf("SetFeedback() failed: %v", err)
	}

	subs, err := svc.SubmissionsFor(a.ID)
	if err != nil {
		t.Fatalf("SubmissionsFor() failed: %v", err)
	}
	if len(subs) != 1 || subs[0].Score != 95 || subs[0].Feedback != "잘했어요" {
		t.Errorf("SubmissionsFor() = %+v", subs)
	}

	if err := svc.SetScore(999, 1); err != ErrNotFound {
		t.Errorf("SetScore(999) error = %v, want %v", err, ErrNotFound)
	}
}

func TestService_Visible(t *testing.T) {
	svc, _, _ := setup(t)
	createAssignment(t, svc, "코딩")
	createAssignment(t, svc, "댄스")
	createAssignment(t, svc, core.AllClubs)

	member := account.Account{Username: "member1", Role: account.RoleMember}
	as, err := svc.Visible(member)
	if err != nil {
		t.Fatalf("Visible() failed: %v", err)
	}
	if len(as) != 2 {
		t.Errorf("Visible(member) = %d assignments, want 2", len(as))
	}

	teacher := account.Account{Username: "teacher1", Role: account.RoleTeacher}
	as, err = svc.Visible(teacher)
	if err != nil {
		t.Fatalf("Visible() failed: %v", err)
	}
	if len(as) != 3 {
		t.Errorf("Visible(teacher) = %d assignments, want 3", len(as))
	}
}

func TestService_Delete_cascades(t *testing.T) {
	svc, _, store := setup(t)
	a := createAssignment(t, svc, "코딩")
	other := createAssignment(t, svc, "코딩")
	if _, err := svc.Submit(a.ID, "member1", "제출", ""); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if _, err := svc.Submit(other.ID, "member1", "제출", ""); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	if err := svc.Delete(a.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := svc.Get(a.ID); err != ErrNotFound {
		t.Errorf("Get() error = %v, want %v", err, ErrNotFound)
	}
	subs, _ := store.Load(core.ColSubmissions)
	if subs.Len() != 1 {
		t.Errorf("submissions remaining = %d, want 1", subs.Len())
	}
}

func TestService_ForUser(t *testing.T) {
	svc, _, _ := setup(t)
	a := createAssignment(t, svc, "코딩")
	if _, err := svc.Submit(a.ID, "member1", "제출", ""); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if _, err := svc.Submit(a.ID, "member2", "남의 제출", ""); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	got, err := svc.ForUser("member1")
	if err != nil {
		t.Fatalf("ForUser() failed: %v", err)
	}
	if got.Len() != 1 {
		t.Fatalf("ForUser() rows = %d, want 1", got.Len())
	}
	if got.Rows[0]["title"] != "과제" {
		t.Errorf("ForUser() joined row = %v", got.Rows[0])
	}
}
