package http

type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Status    string    `json:"status"`
	Error     ErrorBody `json:"error"`
	Timestamp string    `json:"timestamp"`
}

type SubmitEditRequest struct {
	TargetKind     string `json:"target_kind"`
	TargetID       string `json:"target_id"`
	Field          string `json:"field"`
	SuggestedValue string `json:"suggested_value"`
	Reason         string `json:"reason,omitempty"`
}

type SubmitEditResponse struct {
	Status string `json:"status"`
	Data   struct {
		SuggestionID string `json:"suggestion_id"`
		EditStatus   string `json:"edit_status"`
		Applied      bool   `json:"applied"`
		NeedsReview  bool   `json:"needs_review"`
		Message      string `json:"message"`
	} `json:"data"`
}

type SuggestionDTO struct {
	SuggestionID        string `json:"suggestion_id"`
	TargetKind          string `json:"target_kind"`
	TargetID            string `json:"target_id"`
	Field               string `json:"field"`
	OriginalValue       string `json:"original_value"`
	SuggestedValue      string `json:"suggested_value"`
	Reason              string `json:"reason,omitempty"`
	UserID              string `json:"user_id"`
	Status              string `json:"status"`
	TrustedContribution bool   `json:"trusted_contribution"`
	AutoApplied         bool   `json:"auto_applied"`
	NeedsReview         bool   `json:"needs_review"`
	ReviewedBy          string `json:"reviewed_by,omitempty"`
	ReviewedAt          string `json:"reviewed_at,omitempty"`
	CreatedAt           string `json:"created_at"`
}

type ListSuggestionsResponse struct {
	Status string `json:"status"`
	Data   struct {
		Suggestions []SuggestionDTO `json:"suggestions"`
	} `json:"data"`
}

type GetSuggestionResponse struct {
	Status string        `json:"status"`
	Data   SuggestionDTO `json:"data"`
}

type ReviewSuggestionResponse struct {
	Status string        `json:"status"`
	Data   SuggestionDTO `json:"data"`
}
