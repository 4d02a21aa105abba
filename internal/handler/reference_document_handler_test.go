package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cardcomply/internal/domain"
	"cardcomply/internal/handler"
	"cardcomply/internal/service"
	"cardcomply/mocks"
)

func TestReferenceDocumentHandler_Upload_Success(t *testing.T) {
	svc := new(mocks.MockReferenceDocumentService)
	h := handler.NewReferenceDocumentHandler(svc)

	doc := &domain.ReferenceDocument{ID: uuid.New(), Issuer: "amex", ExtractionStatus: domain.ExtractionStatusPending}
	svc.On("Upload", mock.Anything, mock.MatchedBy(func(in service.ReferenceUploadInput) bool {
		return in.Issuer == "amex" &&
			in.DocumentType == domain.DocumentTypeLegalRequirements &&
			in.Header.Filename == "legal.txt"
	})).Return(doc, nil)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("file", "legal.txt")
	_, _ = part.Write([]byte("Terms apply."))
	_ = writer.WriteField("issuer", "amex")
	_ = writer.WriteField("documentType", "legal-requirements")
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/reference-documents", body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())

	h.Upload(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	svc.AssertExpectations(t)
}

func TestReferenceDocumentHandler_Upload_MissingFile(t *testing.T) {
	svc := new(mocks.MockReferenceDocumentService)
	h := handler.NewReferenceDocumentHandler(svc)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	_ = writer.WriteField("documentType", "brand-guidelines")
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/reference-documents", body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())

	h.Upload(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_FILE")
}

func TestReferenceDocumentHandler_List_Pagination(t *testing.T) {
	svc := new(mocks.MockReferenceDocumentService)
	h := handler.NewReferenceDocumentHandler(svc)

	svc.On("List", mock.Anything, "visa", 10, 20).Return([]domain.ReferenceDocument{{Issuer: "visa"}}, 11, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/reference-documents?issuer=visa&offset=10&limit=500", http.NoBody)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 11, resp.Meta.Total)
	assert.Equal(t, 20, resp.Meta.Limit)
}

func TestReferenceDocumentHandler_GetByID(t *testing.T) {
	svc := new(mocks.MockReferenceDocumentService)
	h := handler.NewReferenceDocumentHandler(svc)

	id := uuid.New()
	svc.On("GetByID", mock.Anything, id).Return(&domain.ReferenceDocument{ID: id, Name: "Guide"}, nil)
	svc.On("GetDownloadURL", mock.Anything, id).Return("", errors.New("presign failed"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/reference-documents/"+id.String(), http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Guide"`)
	assert.NotContains(t, w.Body.String(), "downloadUrl")
}

func TestReferenceDocumentHandler_GetByID_Errors(t *testing.T) {
	svc := new(mocks.MockReferenceDocumentService)
	h := handler.NewReferenceDocumentHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/reference-documents/nope", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}
	h.GetByID(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	id := uuid.New()
	svc.On("GetByID", mock.Anything, id).Return(nil, domain.ErrReferenceDocumentNotFound)
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/reference-documents/"+id.String(), http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.GetByID(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "REFERENCE_DOCUMENT_NOT_FOUND")
}

func TestReferenceDocumentHandler_DeleteAndCount(t *testing.T) {
	svc := new(mocks.MockReferenceDocumentService)
	h := handler.NewReferenceDocumentHandler(svc)

	id := uuid.New()
	svc.On("Delete", mock.Anything, id).Return(nil)
	svc.On("CountCompleted", mock.Anything).Return(4, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/api/v1/reference-documents/"+id.String(), http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.Delete(c)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/reference-documents/count", http.NoBody)
	h.Count(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":4`)
}
