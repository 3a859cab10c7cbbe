package fragment

// Record is the persistence shape of one fragment.
type Record struct {
	Order     int    `json:"order"` // 1-based
	Text      string `json:"text"`
	WordCount int    `json:"wordCount"`
	IsLong    bool   `json:"isLong"`
}

// Records converts fragments into persistence records.
func Records(fragments []string, p Policy) []Record {
	out := make([]Record, len(fragments))
	for i, f := range fragments {
		s := StatsFor(f, p)
		out[i] = Record{
			Order:     i + 1,
			Text:      f,
			WordCount: s.WordCount,
			IsLong:    s.IsLong,
		}
	}
	return out
}

// Texts extracts the fragment texts from records, in record order.
func Texts(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Text
	}
	return out
}
