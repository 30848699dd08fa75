package models

// HistoryEvent is a normalized "today in history" record. Text carries the
// plain-text form, HTML the renderable form (synthesized from Text when the
// upstream omits it).
type HistoryEvent struct {
	Text string `json:"text"`
	HTML string `json:"html"`
}
