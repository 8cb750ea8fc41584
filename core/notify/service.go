package notify

import (
	"errors"
	"strconv"
	"time"

	"github.com/moyeohq/moyeo/core"
	"github.com/moyeohq/moyeo/core/record"
)

var ErrNotFound = errors.New("notification not found")

type Service struct {
	store core.Store
	rec   *record.Service
}

func NewService(store core.Store, rec *record.Service) *Service {
	return &Service{store: store, rec: rec}
}

func (svc *Service) Send(title, content, sender, recipient, category, priority string) (Notification, error) {
	n := Notification{
		Title:     title,
		Content:   content,
		Sender:    sender,
		Recipient: recipient,
		Category:  category,
		Priority:  priority,
		CreatedAt: time.Now(),
	}
	id, err := svc.rec.Insert(core.ColNotifications, n.Row())
	if err != nil {
		return Notification{}, err
	}
	n.ID = id
	return n, nil
}

// For returns the notifications addressed to username, including broadcasts.
func (svc *Service) For(username string) ([]Notification, error) {
	t, err := svc.store.Load(core.ColNotifications)
	if err != nil {
		return nil, err
	}
	var ns []Notification
	for _, row := range t.Rows {
		if row["recipient"] != username && row["recipient"] != core.AllClubs {
			continue
		}
		n, err := FromRow(row)
		if err != nil {
			return nil, err
		}
		ns = append(ns, n)
	}
	return ns, nil
}

// MarkRead records that username has read the notification. Idempotent.
func (svc *Service) MarkRead(notificationID int, username string) error {
	want := strconv.Itoa(notificationID)

	reads, err := svc.store.Load(core.ColNotificationReads)
	if err != nil {
		return err
	}
	for _, row := range reads.Rows {
		if row["notification_id"] == want && row["username"] == username {
			return nil
		}
	}

	_, err = svc.rec.Insert(core.ColNotificationReads, core.Row{
		"notification_id": want,
		"username":        username,
		"read_date":       core.FormatTime(time.Now()),
	})
	return err
}

// MarkAllRead marks every notification addressed to username as read.
func (svc *Service) MarkAllRead(username string) error {
	ns, err := svc.For(username)
	if err != nil {
		return err
	}
	for _, n := range ns {
		if err := svc.MarkRead(n.ID, username); err != nil {
			return err
		}
	}
	return nil
}

func (svc *Service) UnreadCount(username string) (int, error) {
	ns, err := svc.For(username)
	if err != nil {
		return 0, err
	}
	reads, err := svc.store.Load(core.ColNotificationReads)
	if err != nil {
		return 0, err
	}

	read := make(map[string]bool)
	for _, row := range reads.Rows {
		if row["username"] == username {
			read[row["notification_id"]] = true
		}
	}

	count := 0
	for _, n := range ns {
		if !read[strconv.Itoa(n.ID)] {
			count++
		}
	}
	return count, nil
}

// Delete removes the notification together with its read records.
func (svc *Service) Delete(id int) error {
	return svc.rec.DeleteCascade(core.ColNotifications, "id", strconv.Itoa(id),
		record.Dependent{Collection: core.ColNotificationReads, ForeignKey: "notification_id"},
	)
}
