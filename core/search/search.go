// Package search scans multiple collections for a text query, normalizes the
// heterogeneous matches into one result shape and applies post-hoc filters.
package search

import (
	"strings"
	"time"

	"github.com/moyeohq/moyeo/core"
	"github.com/moyeohq/moyeo/core/account"
	"github.com/moyeohq/moyeo/core/scope"
)

// Kind selects one searchable collection.
type Kind string

const (
	KindPost       Kind = "post"
	KindChat       Kind = "chat"
	KindAssignment Kind = "assignment"
	KindSchedule   Kind = "schedule"
	KindGallery    Kind = "gallery"
)

// AllKinds returns every searchable kind, in result order.
func AllKinds() []Kind {
	return []Kind{KindPost, KindChat, KindAssignment, KindSchedule, KindGallery}
}

// Result is the uniform shape every matched row is mapped into.
type Result struct {
	Kind    Kind
	Title   string
	Snippet string
	Author  string
	Club    string
	Date    string
}

// Filters narrow an already-matched result set. Zero values disable a filter.
type Filters struct {
	From    time.Time // inclusive
	To      time.Time // inclusive
	Clubs   []string
	Authors []string
}

// previewLen bounds the snippet of long text fields.
const previewLen = 100

type kindSpec struct {
	kind        Kind
	collection  string
	fields      []string // searched case-insensitively
	titleField  string   // empty: composite chat title
	bodyField   string
	authorField string
	clubField   string
	dateField   string
	truncate    bool
}

var kindSpecs = []kindSpec{
	{kind: KindPost, collection: core.ColPosts, fields: []string{"title", "content"},
		titleField: "title", bodyField: "content", authorField: "author", clubField: "club", dateField: "timestamp", truncate: true},
	{kind: KindChat, collection: core.ColChatLogs, fields: []string{"message"},
		bodyField: "message", authorField: "username", clubField: "club", dateField: "timestamp"},
	{kind: KindAssignment, collection: core.ColAssignments, fields: []string{"title", "description"},
		titleField: "title", bodyField: "description", authorField: "creator", clubField: "club", dateField: "created_date", truncate: true},
	{kind: KindSchedule, collection: core.ColSchedule, fields: []string{"title", "description"},
		titleField: "title", bodyField: "description", authorField: "creator", clubField: "club", dateField: "date"},
	{kind: KindGallery, collection: core.ColGalleries, fields: []string{"title", "description"},
		titleField: "title", bodyField: "description", authorField: "author", clubField: "club", dateField: "created_date", truncate: true},
}

type Aggregator struct {
	store    core.Store
	resolver *scope.Resolver
	log      core.Logger
}

func NewAggregator(store core.Store, resolver *scope.Resolver, log core.Logger) *Aggregator {
	return &Aggregator{store: store, resolver: resolver, log: log}
}

// Search scans the enabled kinds for rows containing query as a
// case-insensitive substring in any searchable field, within acct's scope.
// Results are concatenated in kind order; there is no cross-kind ranking.
func (ag *Aggregator) Search(query string, kinds []Kind, acct account.Account, f Filters) ([]Result, error) {
	query = core.CleanString(query)
	if query == "" {
		return nil, nil
	}

	set, err := ag.resolver.ForUser(acct)
	if err != nil {
		return nil, err
	}

	enabled := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		enabled[k] = true
	}

	var results []Result
	for _, spec := range kindSpecs {
		if len(kinds) > 0 && !enabled[spec.kind] {
			continue
		}
		t, err := ag.store.Load(spec.collection)
		if err != nil {
			return nil, err
		}
		t = scope.FilterByScope(t, set, spec.clubField)
		if spec.collection == core.ColChatLogs && !acct.IsAdmin() {
			t = t.Filter(func(row core.Row) bool { return !strings.EqualFold(row["deleted"], "true") })
		}

		for _, row := range t.Rows {
			if !matches(row, spec.fields, query) {
				continue
			}
			results = append(results, mapRow(row, spec, query))
		}
	}
	return applyFilters(results, f), nil
}

func matches(row core.Row, fields []string, query string) bool {
	lq := strings.ToLower(query)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(row[field]), lq) {
			return true
		}
	}
	return false
}

func mapRow(row core.Row, spec kindSpec, query string) Result {
	title := row[spec.titleField]
	if spec.titleField == "" {
		title = "채팅 메시지 - " + row[spec.clubField]
	}
	snippet := row[spec.bodyField]
	if spec.truncate {
		snippet = preview(snippet)
	}
	return Result{
		Kind:    spec.kind,
		Title:   Highlight(title, query),
		Snippet: Highlight(snippet, query),
		Author:  row[spec.authorField],
		Club:    row[spec.clubField],
		Date:    row[spec.dateField],
	}
}

// preview bounds text to its first previewLen characters, appending an
// ellipsis when truncated.
func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLen {
		return text
	}
	return string(runes[:previewLen]) + "..."
}

func applyFilters(results []Result, f Filters) []Result {
	if f.From.IsZero() && f.To.IsZero() && len(f.Clubs) == 0 && len(f.Authors) == 0 {
		return results
	}

	clubs := toSet(f.Clubs)
	authors := toSet(f.Authors)

	var filtered []Result
	for _, res := range results {
		if len(clubs) > 0 && !clubs[res.Club] {
			continue
		}
		if len(authors) > 0 && !authors[res.Author] {
			continue
		}
		if !inDateRange(res.Date, f.From, f.To) {
			continue
		}
		filtered = append(filtered, res)
	}
	return filtered
}

func toSet(vals []string) map[string]bool {
	if len(vals) == 0 {
		return nil
	}
	set := make(map[string]bool, len(vals))
	for _, v := range vals {
		set[v] = true
	}
	return set
}

// inDateRange applies the inclusive date range. Rows whose date fails to
// parse are kept rather than dropped. Days are compared as calendar dates,
// not instants, so row and filter time zones cannot shift the boundary.
func inDateRange(date string, from, to time.Time) bool {
	if from.IsZero() && to.IsZero() {
		return true
	}
	t, err := core.ParseTime(date)
	if err != nil {
		return true
	}
	day := t.Format(core.DateFormat)
	if !from.IsZero() && day < from.Format(core.DateFormat) {
		return false
	}
	if !to.IsZero() && day > to.Format(core.DateFormat) {
		return false
	}
	return true
}

// Highlight wraps each case-insensitive occurrence of query in [[ ]] markers,
// preserving the original casing. A pure string transform with no effect on
// the match set.
func Highlight(text, query string) string {
	if text == "" || query == "" {
		return text
	}
	lower := strings.ToLower(text)
	lq := strings.ToLower(query)
	if len(lower) != len(text) {
		// lowering shifted byte offsets; leave the text unmarked
		return text
	}

	var b strings.Builder
	i := 0
	for {
		j := strings.Index(lower[i:], lq)
		if j < 0 {
			b.WriteString(text[i:])
			return b.String()
		}
		j += i
		b.WriteString(text[i:j])
		b.WriteString("[[")
		b.WriteString(text[j : j+len(lq)])
		b.WriteString("]]")
		i = j + len(lq)
	}
}
