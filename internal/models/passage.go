package models

// RetrievedPassage is one span of corpus text returned by similarity search.
// Rank is 0-based and relevance-descending; passages are ephemeral and never
// persisted beyond the request that produced them.
type RetrievedPassage struct {
	Text     string `json:"text"`
	SourceID string `json:"source_id"`
	Rank     int    `json:"rank"`
}
