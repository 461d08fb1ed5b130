package httptransport

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorEnvelope struct {
	Status string    `json:"status" example:"error"`
	Error  ErrorBody `json:"error"`
}

type ReportAvailabilityRequest struct {
	ProductID  string `json:"productId"`
	StoreID    string `json:"storeId"`
	Source     string `json:"source,omitempty"`
	PriceRange string `json:"priceRange,omitempty"`
}

type ReportAvailabilityResponse struct {
	Status string `json:"status" example:"success"`
	Data   struct {
		RecordID    string `json:"recordId"`
		EntryStatus string `json:"entryStatus"`
		NeedsReview bool   `json:"needsReview"`
		Message     string `json:"message"`
	} `json:"data"`
}

type StatusCountsDTO struct {
	Confirmed int `json:"confirmed"`
	Pending   int `json:"pending"`
	Rejected  int `json:"rejected"`
	Total     int `json:"total"`
}

type CountsByStoreResponse struct {
	Status string `json:"status" example:"success"`
	Data   struct {
		Counts map[string]StatusCountsDTO `json:"counts"`
	} `json:"data"`
}

type VisibleProductsResponse struct {
	Status string `json:"status" example:"success"`
	Data   struct {
		StoreID  string   `json:"storeId"`
		Products []string `json:"products"`
	} `json:"data"`
}
