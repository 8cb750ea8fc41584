package search

import (
	"strings"
	"testing"
	"time"

	"github.com/moyeohq/moyeo/core"
	"github.com/moyeohq/moyeo/core/account"
	"github.com/moyeohq/moyeo/core/record"
	"github.com/moyeohq/moyeo/core/scope"
	"github.com/moyeohq/moyeo/storage/memstore"
)

var (
	teacher = account.Account{Username: "teacher1", Role: account.RoleTeacher}
	coder   = account.Account{Username: "member1", Role: account.RoleMember}
	maker   = account.Account{Username: "member3", Role: account.RoleMember}
)

func setup(t *testing.T) *Aggregator {
	store := memstore.New()
	rec := record.NewService(store, nil, nil)

	seed := []struct {
		col string
		row core.Row
	}{
		{core.ColUserClubs, core.Row{"username": "member1", "club_name": "코딩"}},
		{core.ColUserClubs, core.Row{"username": "member3", "club_name": "만들기"}},
		{core.ColPosts, core.Row{"title": "Robot 프로젝트 모집", "content": "라인트레이서 robot 만들 사람", "author": "president1", "club": "코딩", "timestamp": "2026-03-02 14:00:00", "likes": "3"}},
		{core.ColPosts, core.Row{"title": "댄스 발표회", "content": "연습 일정 공지", "author": "member2", "club": "댄스", "timestamp": "2026-03-05 09:00:00", "likes": "0"}},
		{core.ColChatLogs, core.Row{"username": "member1", "message": "ROBOT 부품 주문했어요", "club": "코딩", "timestamp": "2026-03-03 16:20:00", "deleted": "false"}},
		{core.ColChatLogs, core.Row{"username": "member2", "message": "robot 얘기는 비밀", "club": "코딩", "timestamp": "2026-03-04 11:00:00", "deleted": "true"}},
		{core.ColAssignments, core.Row{"title": "robot 설계도 제출", "description": "각자 설계도를 올리세요", "club": "코딩", "due_date": "2026-03-20", "creator": "president1", "status": "active", "created_date": "2026-03-01 10:00:00"}},
		{core.ColSchedule, core.Row{"title": "코딩 정기 모임", "description": "robot 시연 포함", "date": "이상한 날짜", "club": "코딩", "creator": "president1", "created_date": "2026-03-01 10:00:00"}},
		{core.ColGalleries, core.Row{"title": "작품 사진", "description": "지난 학기 robot 사진 모음", "image_path": "g1.png", "author": "member1", "club": "코딩", "created_date": "2026-03-06 13:00:00", "likes": "1"}},
	}
	for _, s := range seed {
		if _, err := rec.Insert(s.col, s.row); err != nil {
			t.Fatalf("Insert() failed: %v", err)
		}
	}
	return NewAggregator(store, scope.NewResolver(store), nil)
}

func kindsOf(results []Result) map[Kind]int {
	counts := make(map[Kind]int)
	for _, r := range results {
		counts[r.Kind]++
	}
	return counts
}

func TestAggregator_Search(t *testing.T) {
	ag := setup(t)

	// matching is case-insensitive in both directions
	for _, query := range []string{"robot", "ROBOT", "RoBoT"} {
		results, err := ag.Search(query, AllKinds(), coder, Filters{})
		if err != nil {
			t.Fatalf("Search(%q) failed: %v", query, err)
		}
		counts := kindsOf(results)
		want := map[Kind]int{KindPost: 1, KindChat: 1, KindAssignment: 1, KindSchedule: 1, KindGallery: 1}
		for k, n := range want {
			if counts[k] != n {
				t.Errorf("Search(%q) %s results = %d, want %d", query, k, counts[k], n)
			}
		}
	}

	// a member scoped to another club sees nothing
	results, err := ag.Search("robot", AllKinds(), maker, Filters{})
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Search(maker) = %d results, want 0", len(results))
	}

	// blank queries match nothing at all
	results, err = ag.Search("   ", AllKinds(), teacher, Filters{})
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Search(blank) = %d results, want 0", len(results))
	}
}

func TestAggregator_softDeletedChat(t *testing.T) {
	ag := setup(t)

	results, err := ag.Search("robot", []Kind{KindChat}, coder, Filters{})
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Search(member) chat results = %d, want 1", len(results))
	}
	if !strings.HasPrefix(results[0].Title, "채팅 메시지 - ") {
		t.Errorf("chat result title = %q", results[0].Title)
	}

	// admins see soft-deleted chat rows too
	results, err = ag.Search("robot", []Kind{KindChat}, teacher, Filters{})
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("Search(teacher) chat results = %d, want 2", len(results))
	}
}

func TestAggregator_filters(t *testing.T) {
	ag := setup(t)

	day := func(s string) time.Time {
		d, err := time.ParseInLocation(core.DateFormat, s, time.Local)
		if err != nil {
			t.Fatalf("ParseInLocation() failed: %v", err)
		}
		return d
	}

	// author filter
	results, err := ag.Search("robot", AllKinds(), teacher, Filters{Authors: []string{"president1"}})
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}
	for _, r := range results {
		if r.Author != "president1" {
			t.Errorf("author filter leaked %q", r.Author)
		}
	}
	if len(results) != 3 {
		t.Errorf("author-filtered results = %d, want 3", len(results))
	}

	// club filter
	results, err = ag.Search("공지", AllKinds(), teacher, Filters{Clubs: []string{"코딩"}})
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("club-filtered results = %d, want 0 (only 댄스 matches)", len(results))
	}

	// inclusive date range; the schedule row's unparsable date is kept
	results, err = ag.Search("robot", AllKinds(), teacher, Filters{
		From: day("2026-03-02"),
		To:   day("2026-03-03"),
	})
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}
	counts := kindsOf(results)
	if counts[KindPost] != 1 || counts[KindChat] != 1 {
		t.Errorf("date filter dropped boundary rows: %v", counts)
	}
	if counts[KindSchedule] != 1 {
		t.Error("date filter dropped the row with an unparsable date")
	}
	if counts[KindAssignment] != 0 || counts[KindGallery] != 0 {
		t.Errorf("date filter kept out-of-range rows: %v", counts)
	}
}

func TestAggregator_preview(t *testing.T) {
	store := memstore.New()
	rec := record.NewService(store, nil, nil)

	long := strings.Repeat("가", 150) + " robot"
	if _, err := rec.Insert(core.ColPosts, core.Row{
		"title": "긴 글", "content": long, "author": "member1", "club": "코딩",
		"timestamp": "2026-03-02 14:00:00", "likes": "0",
	}); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
	ag := NewAggregator(store, scope.NewResolver(store), nil)

	results, err := ag.Search("robot", []Kind{KindPost}, teacher, Filters{})
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Search() = %d results, want 1", len(results))
	}
	snippet := results[0].Snippet
	if !strings.HasSuffix(snippet, "...") {
		t.Errorf("long snippet lacks ellipsis: %q", snippet)
	}
	if got := len([]rune(strings.TrimSuffix(snippet, "..."))); got != previewLen {
		t.Errorf("snippet length = %d runes, want %d", got, previewLen)
	}
}

func TestHighlight(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query string
		want  string
	}{
		{name: "single match", text: "my robot rocks", query: "robot", want: "my [[robot]] rocks"},
		{name: "casing preserved", text: "ROBOT and robot", query: "Robot", want: "[[ROBOT]] and [[robot]]"},
		{name: "no match", text: "nothing here", query: "robot", want: "nothing here"},
		{name: "korean", text: "코딩 동아리의 코딩 숙제", query: "코딩", want: "[[코딩]] 동아리의 [[코딩]] 숙제"},
		{name: "adjacent matches", text: "aaaa", query: "aa", want: "[[aa]][[aa]]"},
		{name: "empty query", text: "text", query: "", want: "text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Highlight(tt.text, tt.query); got != tt.want {
				t.Errorf("Highlight() = %q, want %q", got, tt.want)
			}
		})
	}
}
