package handler

import (
	"github.com/gin-gonic/gin"

	"cardcomply/internal/issuer"
)

// IssuerHandler serves the issuer brand profile catalog.
type IssuerHandler struct {
	catalog *issuer.Catalog
}

// NewIssuerHandler creates a new IssuerHandler.
func NewIssuerHandler(catalog *issuer.Catalog) *IssuerHandler {
	return &IssuerHandler{catalog: catalog}
}

// List handles GET /api/v1/issuers
// @Summary List issuers
// @Description Known card issuers and the brand constants applied during analysis
// @Tags issuers
// @Produce json
// @Success 200 {object} Response{data=[]domain.IssuerProfile} "Issuer profiles"
// @Router /issuers [get]
func (h *IssuerHandler) List(c *gin.Context) {
	RespondOK(c, h.catalog.List())
}
