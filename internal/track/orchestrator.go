// Package track is the request-lifecycle brain: it takes classified
// mention commands and decides what to fetch, validate, mutate, and
// report back. All durable state lives in the external record store;
// every invocation is handled independently with no carried context.
package track

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/davidahmann/intake/internal/command"
	"github.com/davidahmann/intake/internal/request"
	"github.com/davidahmann/intake/internal/slack"
	"github.com/davidahmann/intake/internal/store"
	"github.com/davidahmann/intake/pkg/types"
)

// Conversation is the outbound chat transport.
type Conversation interface {
	PostMessage(ctx context.Context, channel, threadTS, text string) (string, error)
	UpdateMessage(ctx context.Context, channel, ts, text string) error
	FetchThread(ctx context.Context, channel, rootTS string) ([]types.ThreadMessage, error)
	UserDisplayName(ctx context.Context, userID string) (string, error)
}

// RecordStore is the external record store.
type RecordStore interface {
	Query(ctx context.Context, collection string, q types.RecordQuery) ([]types.Record, error)
	FetchByID(ctx context.Context, collection, id string) (types.Record, error)
	Create(ctx context.Context, collection string, draft types.RecordDraft) (types.Record, error)
	UpdateStatus(ctx context.Context, collection, id, status string) error
}

// listPageSize bounds status listings.
const listPageSize = 10

const provisionalText = "⏳ Fetching current requests, one moment..."

const emptyThreadText = "⚠️ I couldn't find any messages in this thread to archive."

// Orchestrator handles one mention event at a time; many may run
// concurrently for different events. It holds no mutable state, so no
// locking is needed. Concurrent status updates to the same record from
// two simultaneous commands are not serialized; the store's
// last-write-wins semantics apply.
type Orchestrator struct {
	Conversation Conversation
	Store        RecordStore
	Collections  map[request.Category]string
	WorkspaceURL string
	BotUserID    string
	Logger       *zap.Logger

	// Create-path retry knobs; zero values mean 3 attempts with a
	// 500ms fixed backoff. Sleep is a seam for tests.
	CreateAttempts int
	CreateBackoff  time.Duration
	Sleep          func(time.Duration)
}

// HandleMention classifies the mention and runs the matching handler.
// Every user-triggering error is converted into a chat reply here; a
// returned transport failure gets logged and a best-effort secondary
// reply, never a crash.
func (o *Orchestrator) HandleMention(ctx context.Context, ev types.MentionEvent) {
	cmd := command.Classify(ev.Text)
	logger := o.logger().With(
		zap.String("kind", cmd.Kind.String()),
		zap.String("category", string(cmd.Category)),
		zap.String("channel", ev.Channel),
		zap.String("thread_ts", ev.ThreadTS),
	)

	var err error
	switch cmd.Kind {
	case command.Help:
		err = o.reply(ctx, ev, RenderHelp(cmd.Category))
	case command.Status:
		err = o.handleStatus(ctx, ev, cmd)
	case command.Update:
		err = o.handleUpdate(ctx, ev, cmd)
	default:
		err = o.handleCreate(ctx, ev, cmd)
	}

	if err != nil {
		logger.Error("mention handling failed", zap.Error(err))
		if _, rerr := o.Conversation.PostMessage(ctx, ev.Channel, ev.ThreadTS,
			"⚠️ Something went wrong handling that mention. Please try again."); rerr != nil {
			logger.Error("secondary reply failed", zap.Error(rerr))
		}
		return
	}
	logger.Info("mention handled")
}

// handleStatus posts a provisional reply before the store round-trip so
// the user sees acknowledgement, then overwrites it in place with the
// results. Terminal-status records are excluded unless asked for.
func (o *Orchestrator) handleStatus(ctx context.Context, ev types.MentionEvent, cmd command.Command) error {
	ts, err := o.Conversation.PostMessage(ctx, ev.Channel, ev.ThreadTS, provisionalText)
	if err != nil {
		return fmt.Errorf("post provisional reply: %w", err)
	}

	q := types.RecordQuery{PageSize: listPageSize}
	hint := ""
	if !cmd.IncludeDone {
		q.StatusNot = cmd.Category.Terminal()
		hint = HiddenHint(cmd.Category)
	}

	var text string
	records, qerr := o.Store.Query(ctx, o.collection(cmd.Category), q)
	if qerr != nil {
		text = storeErrorText(qerr)
	} else {
		text = RenderRecords(Header(cmd.Category), records, hint)
	}

	if err := o.Conversation.UpdateMessage(ctx, ev.Channel, ts, text); err != nil {
		return fmt.Errorf("update provisional reply: %w", err)
	}
	return nil
}

// handleUpdate validates the requested status before touching the
// store, then resolves the query to exactly one record. Zero or
// multiple matches short-circuit; the system never guesses among
// candidates. The previous status is whatever the fetched record
// carried; there is no optimistic-concurrency check.
func (o *Orchestrator) handleUpdate(ctx context.Context, ev types.MentionEvent, cmd command.Command) error {
	canonical, ok := cmd.Category.Canonical(cmd.NewStatus)
	if !ok {
		return o.reply(ctx, ev, invalidStatusText(cmd.Category, cmd.NewStatus))
	}

	collection := o.collection(cmd.Category)
	matches, err := o.match(ctx, collection, cmd.Query)
	if err != nil {
		return o.reply(ctx, ev, storeErrorText(err))
	}
	switch {
	case len(matches) == 0:
		return o.reply(ctx, ev, noMatchText(cmd.Query))
	case len(matches) > 1:
		return o.reply(ctx, ev, ambiguousText(matches))
	}

	rec := matches[0]
	previous := rec.Status
	if err := o.Store.UpdateStatus(ctx, collection, rec.ID, canonical); err != nil {
		return o.reply(ctx, ev, storeErrorText(err))
	}
	return o.reply(ctx, ev, fmt.Sprintf("✅ Updated status of %q from %q to %q", rec.Title, previous, canonical))
}

// handleCreate archives the thread as a new record: title from the root
// message's first line, body as an attributed transcript, status set to
// the category's initial value. Record creation is retried a bounded
// number of times before the error is surfaced.
func (o *Orchestrator) handleCreate(ctx context.Context, ev types.MentionEvent, cmd command.Command) error {
	msgs, err := o.Conversation.FetchThread(ctx, ev.Channel, ev.ThreadTS)
	if err != nil {
		return o.reply(ctx, ev, "⚠️ I couldn't read this thread: "+err.Error())
	}
	msgs = o.archivable(msgs)
	if len(msgs) == 0 {
		return o.reply(ctx, ev, emptyThreadText)
	}

	root := msgs[0]
	draft := types.RecordDraft{
		Title:     request.Title(cmd.Category, root.Text),
		Status:    cmd.Category.Initial(),
		Category:  string(cmd.Category),
		SourceRef: o.permalink(ev.Channel, root.TS),
		CreatedAt: slackTimestampToRFC3339(root.TS),
		Body:      o.transcript(ctx, msgs),
	}

	rec, err := o.createWithRetry(ctx, o.collection(cmd.Category), draft)
	if err != nil {
		return o.reply(ctx, ev, storeErrorText(err))
	}
	return o.reply(ctx, ev, fmt.Sprintf("📌 Archived this thread as %q with status %q.", rec.Title, rec.Status))
}

func (o *Orchestrator) createWithRetry(ctx context.Context, collection string, draft types.RecordDraft) (types.Record, error) {
	var lastErr error
	for attempt := 0; attempt < o.attempts(); attempt++ {
		if attempt > 0 {
			o.sleep(o.backoff())
		}
		rec, err := o.Store.Create(ctx, collection, draft)
		if err == nil {
			return rec, nil
		}
		lastErr = err
		o.logger().Warn("record creation failed",
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
	}
	return types.Record{}, lastErr
}

// archivable keeps the root message and every reply that does not
// itself contain the bot mention (those are commands, not content). A
// top-level mention makes the root message the command itself, so the
// mention token is stripped from the root's text; a root left empty
// with no replies means there is nothing to archive.
func (o *Orchestrator) archivable(msgs []types.ThreadMessage) []types.ThreadMessage {
	if len(msgs) == 0 {
		return msgs
	}
	kept := make([]types.ThreadMessage, 1, len(msgs))
	kept[0] = msgs[0]
	kept[0].Text = slack.StripMention(kept[0].Text, o.BotUserID)

	token := "<@" + o.BotUserID + ">"
	for _, m := range msgs[1:] {
		if o.BotUserID != "" && strings.Contains(m.Text, token) {
			continue
		}
		kept = append(kept, m)
	}
	if len(kept) == 1 && kept[0].Text == "" {
		return nil
	}
	return kept
}

func (o *Orchestrator) reply(ctx context.Context, ev types.MentionEvent, text string) error {
	if _, err := o.Conversation.PostMessage(ctx, ev.Channel, ev.ThreadTS, text); err != nil {
		return fmt.Errorf("post reply: %w", err)
	}
	return nil
}

func (o *Orchestrator) permalink(channel, ts string) string {
	return strings.TrimSuffix(o.WorkspaceURL, "/") + "/archives/" + channel + "/p" + strings.Replace(ts, ".", "", 1)
}

func (o *Orchestrator) collection(c request.Category) string {
	return o.Collections[c]
}

func (o *Orchestrator) attempts() int {
	if o.CreateAttempts > 0 {
		return o.CreateAttempts
	}
	return 3
}

func (o *Orchestrator) backoff() time.Duration {
	if o.CreateBackoff > 0 {
		return o.CreateBackoff
	}
	return 500 * time.Millisecond
}

func (o *Orchestrator) sleep(d time.Duration) {
	if o.Sleep != nil {
		o.Sleep(d)
		return
	}
	time.Sleep(d)
}

func (o *Orchestrator) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

func storeErrorText(err error) string {
	if errors.Is(err, store.ErrTimeout) {
		return "⌛ The record store is not responding right now. Please try again in a little while."
	}
	return "⚠️ Record store error: " + err.Error()
}

// slackTimestampToRFC3339 converts a "seconds.fraction" message
// timestamp to RFC 3339 UTC. The fraction is a uniqueness suffix, not
// meaningful precision, so it is dropped.
func slackTimestampToRFC3339(ts string) string {
	sec := ts
	if i := strings.IndexByte(ts, '.'); i >= 0 {
		sec = ts[:i]
	}
	n, err := strconv.ParseInt(sec, 10, 64)
	if err != nil {
		return ""
	}
	return time.Unix(n, 0).UTC().Format(time.RFC3339)
}
