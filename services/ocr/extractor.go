// Package ocr extracts structured applicant fields from raw recognized
// document text. It is a heuristic, not a grammar: each field has one
// rule, rules run in a fixed order, the first match wins, and a missed
// field degrades to the empty string instead of an error.
package ocr

import (
	"github.com/kycflow/gateway/types"
)

// Extract maps raw OCR text and a document-type hint to a best-effort
// record. It is a pure function: identical input always yields the
// identical record, and it never fails.
func Extract(text, documentType string) types.ExtractedRecord {
	var record types.ExtractedRecord

	lines := SplitLines(text)
	if len(lines) == 0 {
		return record
	}

	if dob, ok := DateOfBirth(lines); ok {
		record.DOB = dob
	}
	if expiry, ok := ExpiryDate(lines); ok {
		record.ExpiryDate = expiry
	}
	if first, last, ok := Name(lines); ok {
		record.FirstName = first
		record.LastName = last
	}
	if number, ok := DocumentNumber(lines); ok {
		record.DocumentNumber = number
	}
	if addr, ok := Address(lines); ok {
		record.StreetName = addr.Street
		record.State = addr.State
		record.PostalCode = addr.PostalCode
	}

	return record
}
