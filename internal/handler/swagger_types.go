package handler

import (
	"cardcomply/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// AnalyzeAssets holds the creative under review.
type AnalyzeAssets struct {
	StaticAds   []string `json:"staticAds" example:"data:image/png;base64,iVBORw0KGgo..."`
	PrimaryText []string `json:"primaryText" example:"Earn 5X points on flights with the Platinum Card"`
	Headlines   []string `json:"headlines" example:"Apply today"`
}

// AnalyzeRequest represents the compliance analysis request body.
type AnalyzeRequest struct {
	Assets AnalyzeAssets `json:"assets"`
	Issuer string        `json:"issuer" example:"amex"`
	Demo   bool          `json:"demo" example:"false"`
}

// ShareRequest represents the share link request body.
type ShareRequest struct {
	RecipientEmail string `json:"recipientEmail" example:"reviewer@agency.com"`
}

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status             string `json:"status" example:"ok"`
	AnalysisConfigured bool   `json:"analysisConfigured" example:"true"`
	Error              string `json:"error,omitempty" example:"database not reachable"`
}

// AnalysisStatusResponse reports whether live analysis can run.
type AnalysisStatusResponse struct {
	Configured bool   `json:"configured" example:"false"`
	Message    string `json:"message,omitempty"`
}

// ReferenceDocumentResponse is a reference document with a download link.
type ReferenceDocumentResponse struct {
	*domain.ReferenceDocument
	DownloadURL string `json:"downloadUrl,omitempty"`
}

// CountResponse holds a count.
type CountResponse struct {
	Count int `json:"count" example:"3"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// Response is the generic success envelope.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody is the error envelope of the management endpoints.
type ErrorResponseBody struct {
	Success bool     `json:"success" example:"false"`
	Error   APIError `json:"error"`
}
