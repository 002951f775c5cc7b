package types

// Record is one tracked request in the external record store. The store
// assigns the ID; everything else is set at creation and only Status is
// ever mutated afterwards.
type Record struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
	Category  string `json:"category,omitempty"`
	SourceRef string `json:"source_ref,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	URL       string `json:"url,omitempty"`
}

// RecordDraft is the creation payload for a new record. Body holds the
// attributed thread transcript, one line per message; it is stored as
// document content rather than a field because it is unbounded.
type RecordDraft struct {
	Title     string   `json:"title"`
	Status    string   `json:"status"`
	Category  string   `json:"category"`
	SourceRef string   `json:"source_ref"`
	CreatedAt string   `json:"created_at"`
	Body      []string `json:"body,omitempty"`
}

// RecordQuery bounds a collection query. Zero values mean "no filter";
// results are sorted most-recently-edited first by the store.
type RecordQuery struct {
	TitleContains string `json:"title_contains,omitempty"`
	StatusNot     string `json:"status_not,omitempty"`
	PageSize      int    `json:"page_size,omitempty"`
}
