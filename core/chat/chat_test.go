package chat

import (
	"testing"

	"github.com/moyeohq/moyeo/core"
	"github.com/moyeohq/moyeo/core/account"
	"github.com/moyeohq/moyeo/core/record"
	"github.com/moyeohq/moyeo/core/scope"
	"github.com/moyeohq/moyeo/storage/memstore"
)

var (
	teacher = account.Account{Username: "teacher1", Role: account.RoleTeacher}
	member  = account.Account{Username: "member1", Role: account.RoleMember}
)

func setup(t *testing.T) (*Service, *record.Service) {
	store := memstore.New()
	rec := record.NewService(store, nil, nil)
	if _, err := rec.Insert(core.ColUserClubs, core.Row{"username": "member1", "club_name": "코딩", "joined_date": "2026-03-02"}); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
	return NewService(store, rec, scope.NewResolver(store)), rec
}

func post(t *testing.T, svc *Service, username, body, clubName string) Message {
	m, err := svc.Post(username, body, clubName)
	if err != nil {
		t.Fatalf("Post() failed: %v", err)
	}
	return m
}

func TestService_softDeleteVisibility(t *testing.T) {
	svc, _ := setup(t)

	kept := post(t, svc, "member1", "안녕하세요", "코딩")
	doomed := post(t, svc, "member2", "삭제될 메시지", "코딩")

	if err := svc.SoftDelete(doomed.ID); err != nil {
		t.Fatalf("SoftDelete() failed: %v", err)
	}

	// members never observe soft-deleted rows
	msgs, err := svc.History("코딩", member)
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if len(msgs) != 1 || msgs[0].ID != kept.ID {
		t.Errorf("History(member) = %v, want only message %d", msgs, kept.ID)
	}

	// admins see the full history, with the flag set
	msgs, err = svc.History("코딩", teacher)
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("History(teacher) = %d messages, want 2", len(msgs))
	}
	for _, m := range msgs {
		if m.ID == doomed.ID && !m.Deleted {
			t.Error("soft-deleted message lost its flag")
		}
	}

	deleted, err := svc.DeletedMessages()
	if err != nil {
		t.Fatalf("DeletedMessages() failed: %v", err)
	}
	if len(deleted) != 1 || deleted[0].ID != doomed.ID {
		t.Errorf("DeletedMessages() = %v, want only message %d", deleted, doomed.ID)
	}

	// restore brings the message back for everyone
	if err := svc.Restore(doomed.ID); err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	msgs, err = svc.History("코딩", member)
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if len(msgs) != 2 {
		t.Errorf("History(member) after restore = %d messages, want 2", len(msgs))
	}

	if err := svc.SoftDelete(999); err != ErrNotFound {
		t.Errorf("SoftDelete(999) error = %v, want %v", err, ErrNotFound)
	}
}

func TestService_Visible_scoping(t *testing.T) {
	svc, _ := setup(t)

	mine := post(t, svc, "member1", "우리 동아리", "코딩")
	post(t, svc, "member2", "남의 동아리", "댄스")
	broadcast := post(t, svc, "teacher1", "전체 공지", core.AllClubs)

	msgs, err := svc.Visible(member)
	if err != nil {
		t.Fatalf("Visible() failed: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("Visible(member) = %d messages, want 2", len(msgs))
	}
	ids := map[int]bool{msgs[0].ID: true, msgs[1].ID: true}
	if !ids[mine.ID] || !ids[broadcast.ID] {
		t.Errorf("Visible(member) = %v, want own club and broadcast", msgs)
	}

	msgs, err = svc.Visible(teacher)
	if err != nil {
		t.Fatalf("Visible() failed: %v", err)
	}
	if len(msgs) != 3 {
		t.Errorf("Visible(teacher) = %d messages, want 3", len(msgs))
	}
}

func TestService_legacyDeletedFlag(t *testing.T) {
	svc, rec := setup(t)

	// rows written by older tooling carry "True" rather than "true"
	if _, err := rec.Insert(core.ColChatLogs, core.Row{
		"username": "member2", "message": "옛날 메시지", "club": "코딩",
		"timestamp": "2026-03-02 14:00:00", "deleted": "True",
	}); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}

	msgs, err := svc.History("코딩", member)
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("History(member) = %d messages, want 0 (legacy flag honored)", len(msgs))
	}
}
