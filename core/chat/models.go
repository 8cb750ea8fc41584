package chat

import (
	"strconv"
	"strings"
	"time"

	"github.com/moyeohq/moyeo/core"
)

// Message lifecycle: Active --delete--> SoftDeleted --restore--> Active.
// Deletion is a flag, never row removal; non-admin readers must not observe
// soft-deleted rows.
type Message struct {
	ID       int
	Username string
	Body     string
	Club     string
	SentAt   time.Time
	Deleted  bool
}

func (m Message) Row() core.Row {
	return core.Row{
		"id":        strconv.Itoa(m.ID),
		"username":  m.Username,
		"message":   m.Body,
		"club":      m.Club,
		"timestamp": core.FormatTime(m.SentAt),
		"deleted":   strconv.FormatBool(m.Deleted),
	}
}

func FromRow(row core.Row) (Message, error) {
	id, err := strconv.Atoi(row["id"])
	if err != nil {
		return Message{}, core.NewMalformedRowError(core.ColChatLogs, row["id"], err)
	}
	sentAt, err := core.ParseTime(row["timestamp"])
	if err != nil {
		return Message{}, core.NewMalformedRowError(core.ColChatLogs, row["id"], err)
	}
	return Message{
		ID:       id,
		Username: row["username"],
		Body:     row["message"],
		Club:     row["club"],
		SentAt:   sentAt,
		Deleted:  isDeleted(row),
	}, nil
}

// isDeleted accepts both Go-style and legacy Python-style booleans.
func isDeleted(row core.Row) bool {
	return strings.EqualFold(row["deleted"], "true")
}
