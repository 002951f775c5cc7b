package types

// MentionEvent is one inbound bot-mention occurrence. Text has the bot
// mention token already stripped. ThreadTS is the root timestamp of the
// thread the mention happened in; for a top-level mention it equals TS.
type MentionEvent struct {
	Text     string `json:"text"`
	Channel  string `json:"channel"`
	TS       string `json:"ts"`
	ThreadTS string `json:"thread_ts"`
}

// ThreadMessage is one message of a conversation thread, in thread order.
type ThreadMessage struct {
	UserID string `json:"user"`
	Text   string `json:"text"`
	TS     string `json:"ts"`
}
