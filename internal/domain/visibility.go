package domain

// Visibility is what the storefront receives when it asks for reviews
type Visibility struct {
	Visible      bool           `json:"visible"`
	Reviews      []*Review      `json:"reviews"`
	DisplayStyle string         `json:"displayStyle"`
	ReviewLimit  int            `json:"reviewLimit"`
	Heading      string         `json:"heading"`
	FormHeading  string         `json:"formHeading"`
	Summary      *RatingSummary `json:"summary,omitempty"`
}

// FormStatus tells the storefront whether to render the submission form
type FormStatus struct {
	RatingStatus      bool   `json:"rating_status"`
	ReviewFormHeading string `json:"reviewFormHeading"`
}
