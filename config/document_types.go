package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed document_types.json
var documentTypesJSON []byte

//go:embed document_types_schema.json
var documentTypesSchemaJSON []byte

// DocumentType describes one KYCAID document type together with the legacy
// names older clients still send for it.
type DocumentType struct {
	Type     string   `json:"type"`
	Label    string   `json:"label"`
	Synonyms []string `json:"synonyms"`
}

// DocumentTypeRegistry is the parsed document_types.json file.
type DocumentTypeRegistry struct {
	Fallback string         `json:"fallback"`
	Types    []DocumentType `json:"types"`
}

var (
	documentTypesOnce sync.Once
	documentTypes     *DocumentTypeRegistry
	documentTypesErr  error
)

// ValidateDocumentTypes checks the embedded registry against its JSON
// schema. Called once at startup so a bad edit fails fast.
func ValidateDocumentTypes() error {
	schemaLoader := gojsonschema.NewBytesLoader(documentTypesSchemaJSON)
	documentLoader := gojsonschema.NewBytesLoader(documentTypesJSON)
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate document types: %w", err)
	}
	if !result.Valid() {
		var errs []string
		for _, e := range result.Errors() {
			errs = append(errs, e.String())
		}
		return fmt.Errorf("document types config is invalid: %s", strings.Join(errs, "; "))
	}
	return nil
}

// DocumentTypes returns the parsed registry.
func DocumentTypes() (*DocumentTypeRegistry, error) {
	documentTypesOnce.Do(func() {
		var registry DocumentTypeRegistry
		if err := json.Unmarshal(documentTypesJSON, &registry); err != nil {
			documentTypesErr = fmt.Errorf("failed to parse document types: %w", err)
			return
		}
		documentTypes = &registry
	})
	return documentTypes, documentTypesErr
}

// ResolveDocumentType maps a requested type, canonical or legacy, to the
// KYCAID type the provider accepts. Unknown values fall back to the
// registry's fallback type.
func (r *DocumentTypeRegistry) ResolveDocumentType(requested string) string {
	requested = strings.ToUpper(strings.TrimSpace(requested))
	for _, dt := range r.Types {
		if dt.Type == requested {
			return dt.Type
		}
		for _, syn := range dt.Synonyms {
			if syn == requested {
				return dt.Type
			}
		}
	}
	return r.Fallback
}
