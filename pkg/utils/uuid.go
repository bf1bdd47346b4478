package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateDocumentNo generates a unique document number with the given prefix,
// e.g. GenerateDocumentNo("RCT") -> "RCT-3F2A9B1C"
func GenerateDocumentNo(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateProductCode generates a unique product code
func GenerateProductCode() string {
	return "PROD-" + strings.ToUpper(uuid.New().String()[:8])
}
