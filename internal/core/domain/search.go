package domain

// Default retrieval parameters, matching the settings defaults.
const (
	// DefaultTopK is the number of results returned when k is not set.
	DefaultTopK = 5

	// DefaultRecencyBoost is the weight of the recency term when not set.
	DefaultRecencyBoost = 0.2

	// CandidateLimit caps how many recency-ordered chunks are scored per
	// query. It bounds the scoring workload and biases toward recent
	// entries even before scoring.
	CandidateLimit = 100

	// RecencyDecayRate is the per-day exponential decay applied to the
	// recency score: exp(-days * RecencyDecayRate).
	RecencyDecayRate = 0.1
)

// SearchOptions configures a retrieval query.
type SearchOptions struct {
	// TopK is the maximum number of results. Defaults to DefaultTopK.
	TopK int

	// RecencyBoost scales the exponential recency term added to the
	// similarity score. Zero disables the recency bias.
	RecencyBoost float64
}

// SearchResult is a single retrieval hit. Scores are internal to the
// retriever and deliberately not exposed past this boundary.
type SearchResult struct {
	// ID is the chunk id.
	ID string `json:"id"`

	// Path is the vault path of the source document.
	Path string `json:"path"`

	// Heading is the chunk's markdown heading. May be empty.
	Heading string `json:"heading"`

	// Text is the chunk text.
	Text string `json:"text"`

	// Date is the source document's date in DateLayout form.
	Date string `json:"date"`
}

// Citation returns the "{date} - {heading}" reference used when quoting
// this result in chat context.
func (r SearchResult) Citation() string {
	return r.Date + " - " + r.Heading
}
