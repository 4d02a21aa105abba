package domain

// FindingStatus is the outcome of one evaluated compliance rule.
type FindingStatus string

const (
	FindingStatusPassed        FindingStatus = "passed"
	FindingStatusWarning       FindingStatus = "warning"
	FindingStatusFailed        FindingStatus = "failed"
	FindingStatusNotApplicable FindingStatus = "not_applicable"
	FindingStatusPending       FindingStatus = "pending"
	FindingStatusRunning       FindingStatus = "running"
)

// ValidFindingStatuses is the closed set of finding statuses.
var ValidFindingStatuses = map[FindingStatus]bool{
	FindingStatusPassed:        true,
	FindingStatusWarning:       true,
	FindingStatusFailed:        true,
	FindingStatusNotApplicable: true,
	FindingStatusPending:       true,
	FindingStatusRunning:       true,
}

// FindingCategory groups rules into the issuer review taxonomy.
type FindingCategory string

const (
	CategoryLogoUsage               FindingCategory = "logoUsage"
	CategoryColorPalette            FindingCategory = "colorPalette"
	CategoryLegalRequirements       FindingCategory = "legalRequirements"
	CategoryIndustryRegulations     FindingCategory = "industryRegulations"
	CategoryDesignStandards         FindingCategory = "designStandards"
	CategoryAccessibilityCompliance FindingCategory = "accessibilityCompliance"
)

// ValidFindingCategories is the closed set of finding categories.
var ValidFindingCategories = map[FindingCategory]bool{
	CategoryLogoUsage:               true,
	CategoryColorPalette:            true,
	CategoryLegalRequirements:       true,
	CategoryIndustryRegulations:     true,
	CategoryDesignStandards:         true,
	CategoryAccessibilityCompliance: true,
}

// ReferenceDocumentType classifies issuer reference material.
type ReferenceDocumentType string

const (
	DocumentTypeBrandGuidelines   ReferenceDocumentType = "brand-guidelines"
	DocumentTypeComplianceRules   ReferenceDocumentType = "compliance-rules"
	DocumentTypeLegalRequirements ReferenceDocumentType = "legal-requirements"
)

// ValidReferenceDocumentTypes is the set of accepted reference document types.
var ValidReferenceDocumentTypes = map[ReferenceDocumentType]bool{
	DocumentTypeBrandGuidelines:   true,
	DocumentTypeComplianceRules:   true,
	DocumentTypeLegalRequirements: true,
}

// ExtractionStatus represents the lifecycle of reference text extraction.
type ExtractionStatus string

const (
	ExtractionStatusPending    ExtractionStatus = "pending"
	ExtractionStatusProcessing ExtractionStatus = "processing"
	ExtractionStatusCompleted  ExtractionStatus = "completed"
	ExtractionStatusFailed     ExtractionStatus = "failed"
)

// AllowedReferenceContentTypes maps reference file extensions (without dot) to MIME types.
var AllowedReferenceContentTypes = map[string]string{
	"txt":  "text/plain",
	"md":   "text/markdown",
	"html": "text/html",
	"htm":  "text/html",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// AllowedImageContentTypes lists the creative image formats accepted for analysis.
var AllowedImageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}
