package track

import (
	"context"
	"regexp"

	"github.com/davidahmann/intake/pkg/types"
)

// matchPageSize caps how many title matches a lookup considers. More
// than a handful means the query needs refining anyway.
const matchPageSize = 5

// recordIDPattern is the store's identifier shape: 32 lowercase hex
// characters.
var recordIDPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

// match finds records whose title contains query as a substring. When
// that finds nothing and the query looks like a store identifier, it
// falls back to a direct fetch; a failed fetch (not found, inaccessible)
// yields an empty result rather than an error. Fuzzy first for people
// typing a few words of a title, exact second for pasted ids.
func (o *Orchestrator) match(ctx context.Context, collection, query string) ([]types.Record, error) {
	records, err := o.Store.Query(ctx, collection, types.RecordQuery{
		TitleContains: query,
		PageSize:      matchPageSize,
	})
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		return records, nil
	}

	if !recordIDPattern.MatchString(query) {
		return nil, nil
	}
	rec, err := o.Store.FetchByID(ctx, collection, query)
	if err != nil {
		return nil, nil
	}
	return []types.Record{rec}, nil
}
