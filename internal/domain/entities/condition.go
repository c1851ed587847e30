package entities

// ConditionRecord maps a stored symptom pattern to a condition and its
// suggested medicines. Records are seeded once at startup and read-only
// afterwards.
type ConditionRecord struct {
	// Seq is the insertion index. It defines the deterministic tie-break
	// when several patterns contain the same query.
	Seq int `json:"seq" db:"seq"`

	// SymptomPattern is a comma-delimited list of symptom tokens, e.g.
	// "headache,cold". Matching checks whether the normalized query is a
	// substring of this string.
	SymptomPattern string `json:"symptom_pattern" db:"symptom_pattern"`

	ConditionName string `json:"condition_name" db:"condition_name"`
	Medicines     string `json:"medicines" db:"medicines"`
}
