package httptransport

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorEnvelope struct {
	Status string    `json:"status" example:"error"`
	Error  ErrorBody `json:"error"`
}

type SubmitStoreRequest struct {
	Name            string `json:"name"`
	Type            string `json:"type"`
	PlaceID         string `json:"placeId,omitempty"`
	WebsiteURL      string `json:"websiteUrl,omitempty"`
	Address         string `json:"address,omitempty"`
	Phone           string `json:"phone,omitempty"`
	OpeningHours    string `json:"openingHours,omitempty"`
	OverrideSimilar bool   `json:"overrideSimilar,omitempty"`
}

type SubmitStoreResponse struct {
	Status string `json:"status" example:"success"`
	Data   struct {
		StoreID     string `json:"storeId"`
		EntryStatus string `json:"entryStatus"`
		NeedsReview bool   `json:"needsReview"`
		Message     string `json:"message"`
	} `json:"data"`
}

type StoreDTO struct {
	StoreID      string `json:"storeId"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	PlaceID      string `json:"placeId,omitempty"`
	WebsiteURL   string `json:"websiteUrl,omitempty"`
	Address      string `json:"address,omitempty"`
	Phone        string `json:"phone,omitempty"`
	OpeningHours string `json:"openingHours,omitempty"`
	EntryStatus  string `json:"entryStatus"`
}

type GetStoreResponse struct {
	Status string   `json:"status" example:"success"`
	Data   StoreDTO `json:"data"`
}

type ListStoresResponse struct {
	Status string `json:"status" example:"success"`
	Data   struct {
		Stores []StoreDTO `json:"stores"`
	} `json:"data"`
}

type CheckDuplicateRequest struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	PlaceID    string `json:"placeId,omitempty"`
	WebsiteURL string `json:"websiteUrl,omitempty"`
}

type CheckDuplicateResponse struct {
	Status string `json:"status" example:"success"`
	Data   struct {
		ExactMatch    *StoreDTO  `json:"exactMatch,omitempty"`
		SimilarStores []StoreDTO `json:"similarStores"`
	} `json:"data"`
}
