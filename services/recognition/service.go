// Package recognition drives KYCAID's document data extraction. The
// provider only extracts data for documents attached to an applicant, so
// the service creates a throwaway applicant and document, reads back
// whatever the provider parsed, and deletes the temporary document.
package recognition

import (
	"context"
	"fmt"
	"time"

	"github.com/kycflow/gateway/config"
	"github.com/kycflow/gateway/services/kycaid"
	"github.com/kycflow/gateway/types"
	"github.com/kycflow/gateway/utils/logger"
)

// UnavailableNote is returned in place of an error whenever automatic
// extraction cannot be performed. The wizard proceeds with manual entry.
const UnavailableNote = "Automatic data extraction not available. Please enter information manually."

type Service struct {
	client   *kycaid.Client
	registry *config.DocumentTypeRegistry
}

// NewService builds a recognition service around the gateway client.
func NewService(client *kycaid.Client) (*Service, error) {
	registry, err := config.DocumentTypes()
	if err != nil {
		return nil, err
	}
	return &Service{client: client, registry: registry}, nil
}

// Recognize extracts a best-effort record for an already-uploaded file.
// Extraction failures are not surfaced as errors: the caller gets an
// empty record with an advisory note instead.
func (s *Service) Recognize(ctx context.Context, fileID, documentType string) types.ExtractedRecord {
	resolved := s.registry.ResolveDocumentType(documentType)
	logger.Infof("document recognition: requested type %q resolved to %q", documentType, resolved)

	record, err := s.extract(ctx, fileID, resolved)
	if err != nil {
		logger.Warnf("document recognition failed: %v", err)
		return types.ExtractedRecord{OCRNote: UnavailableNote}
	}
	return record
}

func (s *Service) extract(ctx context.Context, fileID, documentType string) (types.ExtractedRecord, error) {
	var record types.ExtractedRecord

	applicant, err := s.client.CreateApplicant(ctx, map[string]interface{}{
		"type":       "PERSON",
		"first_name": "Temp",
		"last_name":  "OCR",
		"email":      fmt.Sprintf("temp-ocr-%d@example.com", time.Now().UnixNano()),
	})
	if err != nil {
		return record, fmt.Errorf("temp applicant: %w", err)
	}
	applicantID, _ := applicant["applicant_id"].(string)
	if applicantID == "" {
		return record, fmt.Errorf("temp applicant: no applicant_id in response")
	}

	document, err := s.client.CreateDocument(ctx, map[string]interface{}{
		"applicant_id":  applicantID,
		"type":          documentType,
		"front_side_id": fileID,
	})
	if err != nil {
		return record, fmt.Errorf("temp document: %w", err)
	}
	documentID, _ := document["document_id"].(string)

	// The temporary document is removed whatever happens next. Temporary
	// applicants cannot be deleted through the API; test-mode ones are
	// cleaned up by the provider.
	defer func() {
		if documentID == "" {
			return
		}
		if _, err := s.client.DeleteDocument(ctx, documentID); err != nil {
			logger.Warnf("failed to delete temp document %s: %v", documentID, err)
		}
	}()

	documentData, err := s.client.GetDocument(ctx, documentID)
	if err != nil {
		return record, fmt.Errorf("read temp document: %w", err)
	}
	applicantData, err := s.client.GetApplicant(ctx, applicantID)
	if err != nil {
		return record, fmt.Errorf("read temp applicant: %w", err)
	}

	record.FirstName = stringField(applicantData, "first_name")
	record.LastName = stringField(applicantData, "last_name")
	record.DOB = stringField(applicantData, "dob", "date_of_birth")
	record.Email = stringField(applicantData, "email")
	record.Phone = stringField(applicantData, "phone")
	record.ResidenceCountry = stringField(applicantData, "residence_country")
	record.DocumentNumber = stringField(documentData, "document_number", "number")
	record.IssueDate = stringField(documentData, "issue_date")
	record.ExpiryDate = stringField(documentData, "expiry_date")
	record.Country = record.ResidenceCountry

	return record, nil
}

// stringField returns the first non-empty string value among the given
// keys. The provider has shipped both snake_case and legacy field names.
func stringField(data map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := data[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
