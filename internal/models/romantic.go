package models

// RomanticEntry is one (input phrase -> canned reply) pair from the trained
// corpus. Entries are read-only during request handling.
type RomanticEntry struct {
	InputPhrase string  `json:"input_phrase"`
	Response    string  `json:"response"`
	Category    string  `json:"category"`
	Confidence  float64 `json:"confidence"`
}

// RomanticMatch is a corpus entry paired with the similarity score that
// selected it. Score is 1.0 for exact matches.
type RomanticMatch struct {
	Entry RomanticEntry
	Score float64
}

// RomanticResult is the outcome of a romantic lookup for one message.
type RomanticResult struct {
	Success    bool    `json:"success"`
	Response   string  `json:"response,omitempty"`
	Category   string  `json:"category,omitempty"`
	MatchScore float64 `json:"match_score,omitempty"`
}

// RomanticStats summarizes the loaded corpus.
type RomanticStats struct {
	TotalRomanticResponses int            `json:"total_romantic_responses"`
	Categories             []string       `json:"categories"`
	ByCategory             map[string]int `json:"by_category"`
}
