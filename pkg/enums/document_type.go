package enums

import "fmt"

// DocumentType identifies the government document used for verification.
type DocumentType string

const (
	DocumentTypeAadhaar DocumentType = "aadhaar"
	DocumentTypeRation  DocumentType = "ration"
	DocumentTypeVoter   DocumentType = "voter"
)

var validDocumentTypes = []DocumentType{
	DocumentTypeAadhaar,
	DocumentTypeRation,
	DocumentTypeVoter,
}

// String implements fmt.Stringer.
func (d DocumentType) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DocumentType.
func (d DocumentType) IsValid() bool {
	for _, candidate := range validDocumentTypes {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDocumentType converts raw input into a DocumentType.
func ParseDocumentType(value string) (DocumentType, error) {
	for _, candidate := range validDocumentTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid document type %q", value)
}
