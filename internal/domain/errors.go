package domain

import "errors"

var (
	ErrNotFound                  = errors.New("resource not found")
	ErrInvalidRequest            = errors.New("invalid request")
	ErrAnalysisNotConfigured     = errors.New("compliance analysis is not configured")
	ErrInvalidFinding            = errors.New("invalid compliance finding")
	ErrUnsupportedFileType       = errors.New("unsupported file type")
	ErrUnsupportedImageType      = errors.New("unsupported image type")
	ErrFileTooLarge              = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed              = errors.New("file upload to storage failed")
	ErrReferenceDocumentNotFound = errors.New("reference document not found")
	ErrInvalidDocumentType       = errors.New("invalid reference document type")
	ErrAnalysisRunNotFound       = errors.New("analysis run not found")
	ErrShareTokenInvalid         = errors.New("share token is invalid or expired")
	ErrTooManyImages             = errors.New("too many images in submission")
)
