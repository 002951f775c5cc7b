package slack

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/davidahmann/intake/pkg/types"
)

// MentionHandler consumes classified-worthy mention events. The
// orchestrator implements it; tests supply fakes.
type MentionHandler interface {
	HandleMention(ctx context.Context, ev types.MentionEvent)
}

// EventsHandler is the inbound webhook endpoint. It verifies the
// request signature, answers the one-shot URL verification handshake,
// and dispatches app_mention events. Everything else is acknowledged
// and dropped.
//
// Slack expects an acknowledgement within a few seconds, so mention
// handling runs after the response is written. Dispatch is injectable
// so tests can run it synchronously; nil means one goroutine per event.
type EventsHandler struct {
	SigningSecret string
	BotUserID     string
	Mentions      MentionHandler
	Now           func() time.Time
	Dispatch      func(func())
}

func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Mentions == nil {
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if h.SigningSecret != "" {
		sig := r.Header.Get("X-Slack-Signature")
		timestamp := r.Header.Get("X-Slack-Request-Timestamp")
		if err := VerifySignature(h.SigningSecret, sig, timestamp, body, h.now()); err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
	}

	env, err := parseEnvelope(body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch env.Type {
	case "url_verification":
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"challenge": env.Challenge})
	case "event_callback":
		if env.Event.Type == "app_mention" {
			h.dispatch(mentionFromEvent(env.Event, h.BotUserID))
		}
		w.WriteHeader(http.StatusAccepted)
	default:
		w.WriteHeader(http.StatusAccepted)
	}
}

func mentionFromEvent(ev inboundEvent, botUserID string) types.MentionEvent {
	threadTS := ev.ThreadTS
	if threadTS == "" {
		threadTS = ev.TS
	}
	return types.MentionEvent{
		Text:     StripMention(ev.Text, botUserID),
		Channel:  ev.Channel,
		TS:       ev.TS,
		ThreadTS: threadTS,
	}
}

func (h *EventsHandler) dispatch(ev types.MentionEvent) {
	run := func() {
		h.Mentions.HandleMention(context.Background(), ev)
	}
	if h.Dispatch != nil {
		h.Dispatch(run)
		return
	}
	go run()
}

func (h *EventsHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}
