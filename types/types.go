package types

// Mode selects which KYCAID credential the gateway uses.
const (
	ModeTest = "test"
	ModeProd = "prod"
)

// IsValidMode reports whether the given string names a known mode.
func IsValidMode(mode string) bool {
	return mode == ModeTest || mode == ModeProd
}

// ConfigResponse is returned by GET /api/config. The credential itself is
// never revealed, only whether one is configured.
type ConfigResponse struct {
	Mode      string `json:"mode"`
	APIKeySet bool   `json:"apiKeySet"`
}

// SetModeRequest is the body of POST /api/config/mode.
type SetModeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

// SetModeResponse acknowledges a mode change.
type SetModeResponse struct {
	Success bool   `json:"success"`
	Mode    string `json:"mode"`
}

// ApplicantPayload mirrors the KYCAID applicant resource.
type ApplicantPayload struct {
	Type             string `json:"type" binding:"required"`
	FirstName        string `json:"first_name" binding:"required"`
	LastName         string `json:"last_name" binding:"required"`
	Email            string `json:"email,omitempty"`
	DOB              string `json:"dob,omitempty"`
	Phone            string `json:"phone,omitempty"`
	ResidenceCountry string `json:"residence_country,omitempty"`
}

// DocumentPayload mirrors the KYCAID document resource. A document always
// references an existing applicant and an uploaded file.
type DocumentPayload struct {
	ApplicantID    string `json:"applicant_id" binding:"required"`
	Type           string `json:"type" binding:"required"`
	FrontSideID    string `json:"front_side_id" binding:"required"`
	BackSideID     string `json:"back_side_id,omitempty"`
	DocumentNumber string `json:"document_number,omitempty"`
	IssueDate      string `json:"issue_date,omitempty"`
	ExpiryDate     string `json:"expiry_date,omitempty"`
}

// AddressPayload mirrors the KYCAID address resource.
type AddressPayload struct {
	ApplicantID     string `json:"applicant_id" binding:"required"`
	Type            string `json:"type" binding:"required,oneof=REGISTERED RESIDENTIAL"`
	Country         string `json:"country" binding:"required"`
	StateOrProvince string `json:"state_or_province,omitempty"`
	City            string `json:"city,omitempty"`
	PostalCode      string `json:"postal_code,omitempty"`
	StreetName      string `json:"street_name,omitempty"`
	BuildingNumber  string `json:"building_number,omitempty"`
	FlatNumber      string `json:"flat_number,omitempty"`
}

// VerificationPayload creates a KYCAID verification for one applicant.
type VerificationPayload struct {
	ApplicantID string   `json:"applicant_id" binding:"required"`
	Types       []string `json:"types,omitempty"`
	CallbackURL string   `json:"callback_url,omitempty"`
}

// VerificationSnapshot is the provider's view of a verification at one
// poll. Verified is tri-state: nil means the provider has not decided yet.
type VerificationSnapshot struct {
	VerificationID string   `json:"verification_id"`
	ApplicantID    string   `json:"applicant_id,omitempty"`
	Status         string   `json:"status"`
	Verified       *bool    `json:"verified"`
	VerifiedAt     int64    `json:"verified_at,omitempty"`
	DeclineReasons []string `json:"decline_reasons,omitempty"`
}

// Terminal reports whether the provider has reached a decision. Polling
// stops once the verified flag resolves either way.
func (v *VerificationSnapshot) Terminal() bool {
	return v.Verified != nil
}

// RecognitionRequest asks the provider to extract data from an uploaded
// document image.
type RecognitionRequest struct {
	FileID       string `json:"file_id" binding:"required"`
	DocumentType string `json:"document_type" binding:"required"`
}

// OCRExtractionRequest runs the local heuristic extractor over raw
// recognized text.
type OCRExtractionRequest struct {
	Text         string `json:"text" binding:"required"`
	DocumentType string `json:"document_type,omitempty"`
}

// ExtractedRecord is a best-effort structured view of a document. Every
// field defaults to the empty string; extraction never fails outright.
type ExtractedRecord struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	DOB              string `json:"dob"`
	Email            string `json:"email,omitempty"`
	Phone            string `json:"phone,omitempty"`
	ResidenceCountry string `json:"residence_country,omitempty"`
	DocumentNumber   string `json:"document_number"`
	IssueDate        string `json:"issue_date"`
	ExpiryDate       string `json:"expiry_date"`
	StreetName       string `json:"street_name,omitempty"`
	City             string `json:"city,omitempty"`
	State            string `json:"state,omitempty"`
	PostalCode       string `json:"postal_code,omitempty"`
	Country          string `json:"country,omitempty"`
	OCRNote          string `json:"ocr_note,omitempty"`
}

// ErrorData is the struct for error data i.e when Status is "error"
type ErrorData struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Mode   string `json:"mode"`
}
