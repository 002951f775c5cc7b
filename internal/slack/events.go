package slack

import (
	"encoding/json"
	"strings"
)

// eventEnvelope is the outer payload of an Events API delivery. Only
// the fields this service reads are declared.
type eventEnvelope struct {
	Type      string       `json:"type"`
	Challenge string       `json:"challenge"`
	Event     inboundEvent `json:"event"`
}

type inboundEvent struct {
	Type     string `json:"type"`
	User     string `json:"user"`
	Text     string `json:"text"`
	Channel  string `json:"channel"`
	TS       string `json:"ts"`
	ThreadTS string `json:"thread_ts"`
}

func parseEnvelope(body []byte) (eventEnvelope, error) {
	var env eventEnvelope
	err := json.Unmarshal(body, &env)
	return env, err
}

// StripMention removes every occurrence of the bot's mention token from
// text. Slack renders mentions as "<@USERID>".
func StripMention(text, botUserID string) string {
	if botUserID == "" {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(strings.ReplaceAll(text, "<@"+botUserID+">", ""))
}
