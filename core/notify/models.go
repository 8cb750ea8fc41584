package notify

import (
	"strconv"
	"time"

	"github.com/moyeohq/moyeo/core"
)

// Priorities.
const (
	PriorityNormal = "보통"
	PriorityHigh   = "높음"
	PriorityUrgent = "긴급"
)

// Notification is addressed to a single username, or to everyone via the
// all-recipients sentinel.
type Notification struct {
	ID        int
	Title     string
	Content   string
	Sender    string
	Recipient string
	Category  string
	Priority  string
	CreatedAt time.Time
}

func (n Notification) Row() core.Row {
	return core.Row{
		"id":           strconv.Itoa(n.ID),
		"title":        n.Title,
		"content":      n.Content,
		"sender":       n.Sender,
		"recipient":    n.Recipient,
		"category":     n.Category,
		"priority":     n.Priority,
		"created_date": core.FormatTime(n.CreatedAt),
	}
}

func FromRow(row core.Row) (Notification, error) {
	id, err := strconv.Atoi(row["id"])
	if err != nil {
		return Notification{}, core.NewMalformedRowError(core.ColNotifications, row["id"], err)
	}
	createdAt, err := core.ParseTime(row["created_date"])
	if err != nil {
		return Notification{}, core.NewMalformedRowError(core.ColNotifications, row["id"], err)
	}
	return Notification{
		ID:        id,
		Title:     row["title"],
		Content:   row["content"],
		Sender:    row["sender"],
		Recipient: row["recipient"],
		Category:  row["category"],
		Priority:  row["priority"],
		CreatedAt: createdAt,
	}, nil
}
