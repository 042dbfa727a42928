package response

// WebhookResult is the body answered to the payment gateway.
type WebhookResult struct {
	Success bool   `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ScoreIngestResult is the body answered to an external score source.
type ScoreIngestResult struct {
	Success    bool     `json:"success"`
	ScoreID    string   `json:"scoreId,omitempty"`
	TotalScore *float64 `json:"totalScore,omitempty"`
	Message    string   `json:"message,omitempty"`
	Error      string   `json:"error,omitempty"`
}
