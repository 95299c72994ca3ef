package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ClavisPass/ClavisPass-sub001/internal/httputil"
	customValidation "github.com/ClavisPass/ClavisPass-sub001/internal/validation"
	"github.com/ClavisPass/ClavisPass-sub001/internal/vault/http/dto"
	vaultUseCase "github.com/ClavisPass/ClavisPass-sub001/internal/vault/usecase"
)

// VaultHandler handles HTTP requests for stored vaults.
type VaultHandler struct {
	vaultUseCase vaultUseCase.VaultUseCase
	logger       *slog.Logger
}

// NewVaultHandler creates a new vault handler.
func NewVaultHandler(vaultUseCase vaultUseCase.VaultUseCase, logger *slog.Logger) *VaultHandler {
	return &VaultHandler{
		vaultUseCase: vaultUseCase,
		logger:       logger,
	}
}

// ListHandler lists stored vaults without their content.
// GET /v1/vaults?offset=0&limit=50
func (h *VaultHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	vaults, err := h.vaultUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapVaultsToListResponse(vaults))
}

// SaveHandler encrypts a payload and stores it under the vault name.
// PUT /v1/vaults/:name
func (h *VaultHandler) SaveHandler(c *gin.Context) {
	var req dto.SaveVaultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	vault, err := h.vaultUseCase.Save(c.Request.Context(), c.Param("name"), req.Password, req.Payload)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapVaultToResponse(vault))
}

// OpenHandler decrypts a stored vault. Legacy vaults are migrated in storage as a side
// effect and reported with migrated=true.
// POST /v1/vaults/:name/open
func (h *VaultHandler) OpenHandler(c *gin.Context) {
	var req dto.OpenVaultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result, err := h.vaultUseCase.Open(c.Request.Context(), c.Param("name"), req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(decryptStatus(result), dto.MapDecryptResult(result, false))
}

// ChangePasswordHandler re-encrypts a stored vault under a new password.
// POST /v1/vaults/:name/password
func (h *VaultHandler) ChangePasswordHandler(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	vault, err := h.vaultUseCase.ChangePassword(
		c.Request.Context(),
		c.Param("name"),
		req.OldPassword,
		req.NewPassword,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapVaultToResponse(vault))
}

// DeleteHandler removes a stored vault.
// DELETE /v1/vaults/:name
func (h *VaultHandler) DeleteHandler(c *gin.Context) {
	if err := h.vaultUseCase.Delete(c.Request.Context(), c.Param("name")); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
