package core

// Collection names. The base name doubles as the durable file name.
const (
	ColClubs                    = "clubs"
	ColAccounts                 = "accounts"
	ColUserClubs                = "user_clubs"
	ColPosts                    = "posts"
	ColChatLogs                 = "chat_logs"
	ColAssignments              = "assignments"
	ColSubmissions              = "submissions"
	ColAttendance               = "attendance"
	ColSchedule                 = "schedule"
	ColBadges                   = "badges"
	ColPoints                   = "points"
	ColVotes                    = "votes"
	ColVoteResponses            = "vote_responses"
	ColQuizzes                  = "quizzes"
	ColQuizAttempts             = "quiz_attempts"
	ColGalleries                = "galleries"
	ColGalleryComments          = "gallery_comments"
	ColNotifications            = "notifications"
	ColNotificationReads        = "notification_reads"
	ColNotificationSettings     = "notification_settings"
	ColUserNotificationSettings = "user_notification_settings"
	ColReports                  = "reports"
)

// Collections returns the full durable schema registry. Column order is the
// durable contract and must not change.
func Collections() []Schema {
	return []Schema{
		{Name: ColClubs, Columns: []string{"name", "icon", "description", "president", "max_members", "created_date"}},
		{Name: ColAccounts, Columns: []string{"username", "password", "name", "role", "created_date"}},
		{Name: ColUserClubs, Columns: []string{"username", "club_name", "joined_date"}},
		{Name: ColPosts, Columns: []string{"id", "title", "content", "author", "club", "timestamp", "likes"}, HasID: true},
		{Name: ColChatLogs, Columns: []string{"id", "username", "message", "club", "timestamp", "deleted"}, HasID: true},
		{Name: ColAssignments, Columns: []string{"id", "title", "description", "club", "due_date", "creator", "status", "created_date"}, HasID: true},
		{Name: ColSubmissions, Columns: []string{"id", "assignment_id", "username", "content", "file_path", "score", "feedback", "submitted_date"}, HasID: true},
		{Name: ColAttendance, Columns: []string{"id", "username", "club", "date", "status", "recorder"}, HasID: true},
		{Name: ColSchedule, Columns: []string{"id", "title", "description", "date", "club", "creator", "created_date"}, HasID: true},
		{Name: ColBadges, Columns: []string{"id", "username", "badge_name", "description", "awarded_date", "awarded_by"}, HasID: true},
		{Name: ColPoints, Columns: []string{"id", "username", "points", "reason", "date", "awarded_by"}, HasID: true},
		{Name: ColVotes, Columns: []string{"id", "title", "description", "options", "creator", "club", "end_date", "created_date"}, HasID: true},
		{Name: ColVoteResponses, Columns: []string{"id", "vote_id", "username", "selected_option", "voted_date"}, HasID: true},
		{Name: ColQuizzes, Columns: []string{"id", "title", "description", "club", "difficulty", "time_limit", "questions", "creator", "created_date"}, HasID: true},
		{Name: ColQuizAttempts, Columns: []string{"id", "quiz_id", "username", "answers", "score", "attempted_date"}, HasID: true},
		{Name: ColGalleries, Columns: []string{"id", "title", "description", "image_path", "author", "club", "created_date", "likes"}, HasID: true},
		{Name: ColGalleryComments, Columns: []string{"id", "gallery_id", "username", "comment", "created_date"}, HasID: true},
		{Name: ColNotifications, Columns: []string{"id", "title", "content", "sender", "recipient", "category", "priority", "created_date"}, HasID: true},
		{Name: ColNotificationReads, Columns: []string{"id", "notification_id", "username", "read_date"}, HasID: true},
		{Name: ColNotificationSettings, Columns: []string{"deadline_reminder", "schedule_reminder", "new_member_notification", "chat_mention", "updated_date"}},
		{Name: ColUserNotificationSettings, Columns: []string{"username", "frequency", "quiet_hours_enabled", "quiet_start", "quiet_end", "updated_date"}},
		{Name: ColReports, Columns: []string{"id", "title", "content", "creator", "club", "report_date", "created_date"}, HasID: true},
	}
}
