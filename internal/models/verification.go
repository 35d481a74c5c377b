package models

// Document sides reported by the text-extraction service.
const (
	SideFront   = "front"
	SideBack    = "back"
	SideUnknown = "unknown"
)

// DocumentAnalysis is the text-extraction service's verdict on an uploaded
// identity document image.
type DocumentAnalysis struct {
	Text               string  `json:"text"`
	IsIdentityDocument bool    `json:"is_identity_document"`
	Side               string  `json:"side"`
	Confidence         float64 `json:"confidence"`
	ExtractedName      string  `json:"extracted_name"`
}

// NameMatchResult compares the name printed on an identity document against
// the names the submitter provided. Computed per request and embedded into
// the booking record; never persisted on its own.
type NameMatchResult struct {
	ExtractedName     string  `json:"extracted_name"`
	ProvidedFirstName string  `json:"provided_first_name"`
	ProvidedLastName  string  `json:"provided_last_name"`
	Match             bool    `json:"match"`
	Confidence        float64 `json:"confidence"`
	Reason            string  `json:"reason"`
}
