// Package http provides HTTP handlers for vault encryption and storage.
//
// Decryption outcomes map to status codes: FORMAT is 422, AUTH_FAILED is 401 and an
// unavailable crypto provider is 503. Failed decrypt responses still carry the JSON
// result body so clients can read the reason.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ClavisPass/ClavisPass-sub001/internal/httputil"
	customValidation "github.com/ClavisPass/ClavisPass-sub001/internal/validation"
	vaultDomain "github.com/ClavisPass/ClavisPass-sub001/internal/vault/domain"
	"github.com/ClavisPass/ClavisPass-sub001/internal/vault/http/dto"
	vaultUseCase "github.com/ClavisPass/ClavisPass-sub001/internal/vault/usecase"
)

// ContentHandler handles stateless envelope operations. Nothing is stored.
type ContentHandler struct {
	contentUseCase vaultUseCase.ContentUseCase
	logger         *slog.Logger
}

// NewContentHandler creates a new content handler.
func NewContentHandler(contentUseCase vaultUseCase.ContentUseCase, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{
		contentUseCase: contentUseCase,
		logger:         logger,
	}
}

// EncryptHandler seals a payload as a V1 envelope.
// POST /v1/vault/encrypt
func (h *ContentHandler) EncryptHandler(c *gin.Context) {
	var req dto.EncryptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	content, err := h.contentUseCase.Encrypt(c.Request.Context(), req.Password, req.Payload)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.EncryptResponse{Content: content})
}

// DecryptHandler opens envelope content in either format. A legacy envelope comes back
// with its V1 replacement in migrated_content.
// POST /v1/vault/decrypt
func (h *ContentHandler) DecryptHandler(c *gin.Context) {
	var req dto.DecryptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result, err := h.contentUseCase.Decrypt(c.Request.Context(), req.Content, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(decryptStatus(result), dto.MapDecryptResult(result, true))
}

// InspectHandler reports the envelope format and public parameters of content.
// POST /v1/vault/inspect
func (h *ContentHandler) InspectHandler(c *gin.Context) {
	var req dto.InspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	info, err := h.contentUseCase.Inspect(c.Request.Context(), req.Content)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEnvelopeInfo(info))
}

// decryptStatus maps a decrypt outcome to an HTTP status code.
func decryptStatus(result *vaultDomain.DecryptResult) int {
	switch {
	case result.OK:
		return http.StatusOK
	case result.Reason == vaultDomain.ReasonFormat:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusUnauthorized
	}
}
