// Package wizard sequences the verification workflow as an explicit
// finite-state machine, independent of any rendering layer. Steps run in
// a fixed order; each forward transition carries the identifiers gathered
// so far, "back" never discards context, and only the supplementary
// documents step may be skipped.
package wizard

import (
	"fmt"

	"github.com/kycflow/gateway/types"
)

// Step names one stage of the verification wizard.
type Step string

const (
	StepUploadID            Step = "upload-id"
	StepCaptureSelfie       Step = "capture-selfie"
	StepReviewAndSubmit     Step = "review-and-submit"
	StepAdditionalDocuments Step = "additional-documents"
	StepVerify              Step = "verify"
)

// stepOrder is the canonical sequence. The machine is linear and
// non-reentrant: there are no branches, only forward, back, skip on the
// optional step, and reset.
var stepOrder = []Step{
	StepUploadID,
	StepCaptureSelfie,
	StepReviewAndSubmit,
	StepAdditionalDocuments,
	StepVerify,
}

// Context is the state carried across steps: identifiers minted by the
// provider plus the extracted record awaiting review.
type Context struct {
	DocumentType   string                 `json:"document_type,omitempty"`
	IDFileID       string                 `json:"id_file_id,omitempty"`
	SelfieFileID   string                 `json:"selfie_file_id,omitempty"`
	ApplicantID    string                 `json:"applicant_id,omitempty"`
	AddressID      string                 `json:"address_id,omitempty"`
	DocumentIDs    []string               `json:"document_ids,omitempty"`
	VerificationID string                 `json:"verification_id,omitempty"`
	Extracted      *types.ExtractedRecord `json:"extracted,omitempty"`
}

// ContextUpdate is the partial context a step submits when advancing.
// Empty fields leave the existing context untouched; document ids append.
type ContextUpdate struct {
	DocumentType   string                 `json:"document_type,omitempty"`
	IDFileID       string                 `json:"id_file_id,omitempty"`
	SelfieFileID   string                 `json:"selfie_file_id,omitempty"`
	ApplicantID    string                 `json:"applicant_id,omitempty"`
	AddressID      string                 `json:"address_id,omitempty"`
	DocumentIDs    []string               `json:"document_ids,omitempty"`
	VerificationID string                 `json:"verification_id,omitempty"`
	Extracted      *types.ExtractedRecord `json:"extracted,omitempty"`
}

// Merge folds an update into the context.
func (c *Context) Merge(update ContextUpdate) {
	if update.DocumentType != "" {
		c.DocumentType = update.DocumentType
	}
	if update.IDFileID != "" {
		c.IDFileID = update.IDFileID
	}
	if update.SelfieFileID != "" {
		c.SelfieFileID = update.SelfieFileID
	}
	if update.ApplicantID != "" {
		c.ApplicantID = update.ApplicantID
	}
	if update.AddressID != "" {
		c.AddressID = update.AddressID
	}
	if update.VerificationID != "" {
		c.VerificationID = update.VerificationID
	}
	if update.Extracted != nil {
		c.Extracted = update.Extracted
	}
	c.DocumentIDs = append(c.DocumentIDs, update.DocumentIDs...)
}

// FSM errors.
type (
	ErrAtFinalStep     struct{}
	ErrAtFirstStep     struct{}
	ErrStepNotSkippable struct{ Step Step }
	ErrMissingContext  struct {
		Step  Step
		Field string
	}
)

func (e ErrAtFinalStep) Error() string { return "wizard is already at the final step" }
func (e ErrAtFirstStep) Error() string { return "wizard is already at the first step" }

func (e ErrStepNotSkippable) Error() string {
	return fmt.Sprintf("step %q cannot be skipped", e.Step)
}

func (e ErrMissingContext) Error() string {
	return fmt.Sprintf("step %q requires %s before advancing", e.Step, e.Field)
}

// FirstStep returns the entry step.
func FirstStep() Step {
	return stepOrder[0]
}

// Next returns the step after s, or an error at the end of the sequence.
func Next(s Step) (Step, error) {
	for i, step := range stepOrder {
		if step == s {
			if i == len(stepOrder)-1 {
				return s, ErrAtFinalStep{}
			}
			return stepOrder[i+1], nil
		}
	}
	return s, fmt.Errorf("unknown step %q", s)
}

// Prev returns the step before s, or an error at the start.
func Prev(s Step) (Step, error) {
	for i, step := range stepOrder {
		if step == s {
			if i == 0 {
				return s, ErrAtFirstStep{}
			}
			return stepOrder[i-1], nil
		}
	}
	return s, fmt.Errorf("unknown step %q", s)
}

// Skippable reports whether s is an optional step.
func Skippable(s Step) bool {
	return s == StepAdditionalDocuments
}

// ValidateAdvance checks that the context gathered at step s is complete
// enough to move forward.
func ValidateAdvance(s Step, ctx *Context) error {
	switch s {
	case StepUploadID:
		if ctx.IDFileID == "" {
			return ErrMissingContext{Step: s, Field: "an uploaded ID file"}
		}
	case StepCaptureSelfie:
		if ctx.SelfieFileID == "" {
			return ErrMissingContext{Step: s, Field: "an uploaded selfie"}
		}
	case StepReviewAndSubmit:
		if ctx.ApplicantID == "" {
			return ErrMissingContext{Step: s, Field: "a created applicant"}
		}
	case StepAdditionalDocuments:
		// Optional step, nothing required.
	case StepVerify:
		return ErrAtFinalStep{}
	}
	return nil
}
