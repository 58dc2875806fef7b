package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/ermis/jwt-rsa256-api/internal/domain"
	"github.com/ermis/jwt-rsa256-api/internal/interfaces/http/errors"
	"go.uber.org/zap"
)

// KeyHandler handles key management HTTP requests
type KeyHandler struct {
	service        domain.KeyService
	tokens         domain.TokenService
	defaultKeySize int
	logger         *zap.Logger
}

// NewKeyHandler creates a new key handler
func NewKeyHandler(service domain.KeyService, tokens domain.TokenService, defaultKeySize int, logger *zap.Logger) *KeyHandler {
	return &KeyHandler{
		service:        service,
		tokens:         tokens,
		defaultKeySize: defaultKeySize,
		logger:         logger,
	}
}

// GenerateKeys godoc
// @Summary Generate a key pair
// @Description Generates a new RSA key pair, replacing any existing pair
// @Tags keys
// @Accept json
// @Produce json
// @Param request body GenerateKeysRequest false "Key size in bits (1024-4096)"
// @Success 200 {object} GenerateKeysResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/keys/generate [post]
func (h *KeyHandler) GenerateKeys(w http.ResponseWriter, r *http.Request) {
	var req GenerateKeysRequest
	if err := decodeRequest(r, &req, true); err != nil {
		respondRequestError(w, h.logger, err)
		return
	}

	bits := h.defaultKeySize
	if req.KeySize != nil {
		bits = *req.KeySize
	}

	generated, err := h.service.GenerateKeys(r.Context(), bits)
	if err != nil {
		h.logger.Error("Failed to generate keys", zap.Int("bits", bits), zap.Error(err))
		errors.RespondWithError(w, errors.FromError(err))
		return
	}

	h.logger.Info("Generated key pair", zap.Int("bits", bits))
	respondJSON(w, h.logger, http.StatusOK, GenerateKeysResponse{
		Success:          true,
		GeneratedKeyPair: *generated,
	})
}

// Status godoc
// @Summary Key status
// @Description Reports whether a key pair has been generated
// @Tags keys
// @Produce json
// @Success 200 {object} domain.KeyStatus
// @Router /api/keys/status [get]
func (h *KeyHandler) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.logger, http.StatusOK, h.service.Status(r.Context()))
}

// PublicKey godoc
// @Summary Get the public key
// @Description Returns the PEM encoded public key
// @Tags keys
// @Produce json
// @Success 200 {object} PublicKeyResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/keys/public [get]
func (h *KeyHandler) PublicKey(w http.ResponseWriter, r *http.Request) {
	publicKey, err := h.service.PublicKey(r.Context())
	if err != nil {
		h.respondKeyLookupError(w, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, PublicKeyResponse{
		Success:   true,
		PublicKey: publicKey,
	})
}

// DeleteKeys godoc
// @Summary Delete the key pair
// @Description Removes the stored key pair. Deleting absent keys succeeds.
// @Tags keys
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/keys/delete [delete]
func (h *KeyHandler) DeleteKeys(w http.ResponseWriter, r *http.Request) {
	msg, err := h.service.DeleteKeys(r.Context())
	if err != nil {
		errors.RespondWithError(w, errors.FromError(err))
		return
	}

	h.logger.Info("Deleted key pair")
	respondJSON(w, h.logger, http.StatusOK, MessageResponse{
		Success: true,
		Message: msg,
	})
}

// JWKS godoc
// @Summary Public key as a JWK set
// @Description Returns the public key as a JSON Web Key Set
// @Tags keys
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/keys/jwks [get]
func (h *KeyHandler) JWKS(w http.ResponseWriter, r *http.Request) {
	set, err := h.tokens.JWKS(r.Context())
	if err != nil {
		h.respondKeyLookupError(w, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, set)
}

func (h *KeyHandler) respondKeyLookupError(w http.ResponseWriter, err error) {
	if stderrors.Is(err, domain.ErrKeysNotFound) {
		errors.RespondWithStatus(w, domain.ErrKeysNotFound, http.StatusNotFound)
		return
	}

	h.logger.Error("Failed to read public key", zap.Error(err))
	errors.RespondWithError(w, errors.FromError(err))
}
