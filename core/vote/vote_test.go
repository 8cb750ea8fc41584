package vote

import (
	"testing"
	"time"

	"github.com/moyeohq/moyeo/core"
	"github.com/moyeohq/moyeo/core/record"
	"github.com/moyeohq/moyeo/storage/memstore"
)

func setup(t *testing.T) (*Service, core.Store) {
	store := memstore.New()
	return NewService(store, record.NewService(store, nil, nil)), store
}

func createVote(t *testing.T, svc *Service, endDate time.Time) Vote {
	v, err := svc.Create(NewVote{
		Title:   "점심 메뉴",
		Options: []string{"떡볶이", "김밥", "라면"},
		Creator: "president1",
		Club:    "코딩",
		EndDate: endDate,
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	return v
}

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{name: "valid", raw: `["떡볶이","김밥"]`, want: 2},
		{name: "not json", raw: "lol", wantErr: true},
		{name: "empty string", raw: "", wantErr: true},
		{name: "wrong shape", raw: `{"a":1}`, wantErr: true},
		{name: "single option", raw: `["떡볶이"]`, wantErr: true},
		{name: "empty list", raw: `[]`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := ParseOptions(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOptions() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && len(opts) != tt.want {
				t.Errorf("ParseOptions() = %d options, want %d", len(opts), tt.want)
			}
		})
	}
}

func TestService_Create(t *testing.T) {
	svc, _ := setup(t)

	tests := []struct {
		name    string
		nv      NewVote
		wantErr bool
	}{
		{name: "valid", nv: NewVote{Title: "t", Options: []string{"a", "b"}, Creator: "c", Club: "코딩", EndDate: time.Now()}},
		{name: "single option", nv: NewVote{Title: "t", Options: []string{"a"}, Creator: "c", Club: "코딩", EndDate: time.Now()}, wantErr: true},
		{name: "blank option", nv: NewVote{Title: "t", Options: []string{"a", "  "}, Creator: "c", Club: "코딩", EndDate: time.Now()}, wantErr: true},
		{name: "no end date", nv: NewVote{Title: "t", Options: []string{"a", "b"}, Creator: "c", Club: "코딩"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(tt.nv)
			if (err != nil) != tt.wantErr {
				t.Errorf("Create() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestService_Respond(t *testing.T) {
	svc, _ := setup(t)
	open := createVote(t, svc, time.Now().AddDate(0, 0, 7))
	endsToday := createVote(t, svc, time.Now())
	closed := createVote(t, svc, time.Now().AddDate(0, 0, -3))

	if _, err := svc.Respond(open.ID, "member1", "김밥"); err != nil {
		t.Fatalf("Respond() failed: %v", err)
	}
	// one response per user
	if _, err := svc.Respond(open.ID, "member1", "라면"); err != ErrAlreadyVoted {
		t.Errorf("Respond() error = %v, want %v", err, ErrAlreadyVoted)
	}
	// the end date itself still accepts responses
	if _, err := svc.Respond(endsToday.ID, "member1", "김밥"); err != nil {
		t.Errorf("Respond() on end date error = %v, want nil", err)
	}
	if _, err := svc.Respond(closed.ID, "member1", "김밥"); err != ErrVoteClosed {
		t.Errorf("Respond() error = %v, want %v", err, ErrVoteClosed)
	}
	if _, err := svc.Respond(999, "member1", "김밥"); err != ErrNotFound {
		t.Errorf("Respond(999) error = %v, want %v", err, ErrNotFound)
	}
}

func TestService_Results(t *testing.T) {
	svc, store := setup(t)
	v := createVote(t, svc, time.Now().AddDate(0, 0, 7))

	for i, choice := range []string{"김밥", "김밥", "떡볶이"} {
		uname := string(rune('a' + i))
		if _, err := svc.Respond(v.ID, uname, choice); err != nil {
			t.Fatalf("Respond() failed: %v", err)
		}
	}
	// a stale response for a withdrawn option
	rec := record.NewService(store, nil, nil)
	if _, err := rec.Insert(core.ColVoteResponses, core.Row{
		"vote_id": "1", "username": "z", "selected_option": "없어진 메뉴", "voted_date": "2026-03-02 14:00:00",
	}); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}

	got, err := svc.Results(v.ID)
	if err != nil {
		t.Fatalf("Results() failed: %v", err)
	}
	want := map[string]int{"떡볶이": 1, "김밥": 2, "라면": 0}
	if len(got) != len(want) {
		t.Fatalf("Results() = %v, want %v", got, want)
	}
	for opt, n := range want {
		if got[opt] != n {
			t.Errorf("Results()[%s] = %d, want %d", opt, got[opt], n)
		}
	}
}

func TestService_Delete_cascades(t *testing.T) {
	svc, store := setup(t)
	v := createVote(t, svc, time.Now().AddDate(0, 0, 7))
	if _, err := svc.Respond(v.ID, "member1", "김밥"); err != nil {
		t.Fatalf("Respond() failed: %v", err)
	}

	if err := svc.Delete(v.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := svc.Get(v.ID); err != ErrNotFound {
		t.Errorf("Get() error = %v, want %v", err, ErrNotFound)
	}
	responses, _ := store.Load(core.ColVoteResponses)
	if responses.Len() != 0 {
		t.Errorf("responses remaining = %d, want 0", responses.Len())
	}
}
