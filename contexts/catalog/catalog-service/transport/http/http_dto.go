package httptransport

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorEnvelope struct {
	Status string    `json:"status" example:"error"`
	Error  ErrorBody `json:"error"`
}

type SubmitProductRequest struct {
	Name        string `json:"name"`
	Brand       string `json:"brand,omitempty"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	WebsiteURL  string `json:"websiteUrl,omitempty"`
}

type SubmitProductResponse struct {
	Status string `json:"status" example:"success"`
	Data   struct {
		ProductID   string `json:"productId"`
		EntryStatus string `json:"entryStatus"`
		NeedsReview bool   `json:"needsReview"`
		Message     string `json:"message"`
	} `json:"data"`
}

type ProductDTO struct {
	ProductID   string  `json:"productId"`
	Source      string  `json:"source"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand,omitempty"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	WebsiteURL  string  `json:"websiteUrl,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	Archived    bool    `json:"archived,omitempty"`
}

type GetProductResponse struct {
	Status string     `json:"status" example:"success"`
	Data   ProductDTO `json:"data"`
}

type ProductSummaryDTO struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Brand     string  `json:"brand,omitempty"`
	Category  string  `json:"category,omitempty"`
	ImageURL  string  `json:"imageUrl,omitempty"`
	Rating    float64 `json:"rating,omitempty"`
	Source    string  `json:"source"`
}

type ListProductsResponse struct {
	Status string `json:"status" example:"success"`
	Data   struct {
		Products []ProductSummaryDTO `json:"products"`
		Total    int                 `json:"total"`
		Page     int                 `json:"page"`
		Limit    int                 `json:"limit"`
	} `json:"data"`
}
