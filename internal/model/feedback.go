package model

// swagger:model FeedbackItem
type FeedbackItem struct {
	Type    FeedbackType `json:"type"`
	Title   string       `json:"title"`
	Message string       `json:"message"`
}
