package track

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/davidahmann/intake/pkg/types"
)

// lookupConcurrency bounds parallel display-name lookups during thread
// transcription.
const lookupConcurrency = 4

// transcript renders a thread as attributed lines, one per message, in
// thread order. Display names are resolved concurrently; completion
// order does not matter because lines are collated from the original
// message sequence. A failed lookup falls back to the raw user id so a
// flaky directory never blocks archiving.
func (o *Orchestrator) transcript(ctx context.Context, msgs []types.ThreadMessage) []string {
	names := o.displayNames(ctx, msgs)
	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		lines = append(lines, names[m.UserID]+": "+m.Text)
	}
	return lines
}

func (o *Orchestrator) displayNames(ctx context.Context, msgs []types.ThreadMessage) map[string]string {
	unique := make([]string, 0, len(msgs))
	seen := make(map[string]bool, len(msgs))
	for _, m := range msgs {
		if !seen[m.UserID] {
			seen[m.UserID] = true
			unique = append(unique, m.UserID)
		}
	}

	var mu sync.Mutex
	names := make(map[string]string, len(unique))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupConcurrency)
	for _, id := range unique {
		id := id
		g.Go(func() error {
			name, err := o.Conversation.UserDisplayName(gctx, id)
			if err != nil || name == "" {
				name = id
			}
			mu.Lock()
			names[id] = name
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return names
}
