package httptransport

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorEnvelope struct {
	Status string    `json:"status" example:"error"`
	Error  ErrorBody `json:"error"`
}

type QueueItemDTO struct {
	Kind        string `json:"kind"`
	EntityID    string `json:"entityId"`
	Summary     string `json:"summary,omitempty"`
	EntryStatus string `json:"entryStatus"`
	NeedsReview bool   `json:"needsReview"`
	CreatedBy   string `json:"createdBy,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

type ListQueueResponse struct {
	Status string `json:"status" example:"success"`
	Data   struct {
		Items []QueueItemDTO `json:"items"`
	} `json:"data"`
}

type ReviewActionRequest struct {
	Kind     string `json:"kind"`
	EntityID string `json:"entityId"`
	Reason   string `json:"reason,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

type DecisionDTO struct {
	DecisionID string `json:"decisionId"`
	Kind       string `json:"kind"`
	EntityID   string `json:"entityId"`
	ReviewerID string `json:"reviewerId"`
	Action     string `json:"action"`
	Reason     string `json:"reason,omitempty"`
	Notes      string `json:"notes,omitempty"`
	CreatedAt  string `json:"createdAt"`
}

type ReviewActionResponse struct {
	Status string      `json:"status" example:"success"`
	Data   DecisionDTO `json:"data"`
}
