package chat

import (
	"errors"
	"strconv"
	"time"

	"github.com/moyeohq/moyeo/core"
	"github.com/moyeohq/moyeo/core/account"
	"github.com/moyeohq/moyeo/core/record"
	"github.com/moyeohq/moyeo/core/scope"
)

var ErrNotFound = errors.New("chat message not found")

type Service struct {
	store    core.Store
	rec      *record.Service
	resolver *scope.Resolver
}

func NewService(store core.Store, rec *record.Service, resolver *scope.Resolver) *Service {
	return &Service{store: store, rec: rec, resolver: resolver}
}

func (svc *Service) Post(username, body, clubName string) (Message, error) {
	m := Message{
		Username: username,
		Body:     body,
		Club:     clubName,
		SentAt:   time.Now(),
	}
	id, err := svc.rec.Insert(core.ColChatLogs, m.Row())
	if err != nil {
		return Message{}, err
	}
	m.ID = id
	return m, nil
}

// SoftDelete marks the message deleted without removing its row.
func (svc *Service) SoftDelete(id int) error {
	return svc.setDeleted(id, true)
}

// Restore clears the deleted flag; an admin-only path in consuming screens.
func (svc *Service) Restore(id int) error {
	return svc.setDeleted(id, false)
}

func (svc *Service) setDeleted(id int, deleted bool) error {
	want := strconv.Itoa(id)
	n, err := svc.rec.UpdateWhere(core.ColChatLogs,
		func(row core.Row) bool { return row["id"] == want },
		func(row core.Row) { row["deleted"] = strconv.FormatBool(deleted) },
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// History returns one club's messages; soft-deleted rows are dropped unless
// the caller is an admin.
func (svc *Service) History(clubName string, acct account.Account) ([]Message, error) {
	t, err := svc.store.Load(core.ColChatLogs)
	if err != nil {
		return nil, err
	}
	t = t.Filter(func(row core.Row) bool { return row["club"] == clubName })
	return svc.decodeVisible(t, acct)
}

// Visible returns every message within acct's club scope, applying the
// soft-delete rule.
func (svc *Service) Visible(acct account.Account) ([]Message, error) {
	t, err := svc.store.Load(core.ColChatLogs)
	if err != nil {
		return nil, err
	}
	set, err := svc.resolver.ForUser(acct)
	if err != nil {
		return nil, err
	}
	return svc.decodeVisible(scope.FilterByScope(t, set, "club"), acct)
}

// DeletedMessages lists soft-deleted rows for the admin management screen.
func (svc *Service) DeletedMessages() ([]Message, error) {
	t, err := svc.store.Load(core.ColChatLogs)
	if err != nil {
		return nil, err
	}
	return decode(t.Filter(isDeleted))
}

func (svc *Service) decodeVisible(t core.Table, acct account.Account) ([]Message, error) {
	if !acct.IsAdmin() {
		t = t.Filter(func(row core.Row) bool { return !isDeleted(row) })
	}
	return decode(t)
}

func decode(t core.Table) ([]Message, error) {
	msgs := make([]Message, 0, len(t.Rows))
	for _, row := range t.Rows {
		m, err := FromRow(row)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}
