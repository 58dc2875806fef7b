package handlers

import (
	"net/http"

	"github.com/ermis/jwt-rsa256-api/internal/domain"
	"github.com/ermis/jwt-rsa256-api/internal/interfaces/http/errors"
	"go.uber.org/zap"
)

// TokenHandler handles JWT HTTP requests
type TokenHandler struct {
	service domain.TokenService
	logger  *zap.Logger
}

// NewTokenHandler creates a new token handler
func NewTokenHandler(service domain.TokenService, logger *zap.Logger) *TokenHandler {
	return &TokenHandler{
		service: service,
		logger:  logger,
	}
}

// CreateToken godoc
// @Summary Create a token
// @Description Signs the payload with the stored private key using RS256
// @Tags jwt
// @Accept json
// @Produce json
// @Param request body CreateTokenRequest true "Payload and signing options"
// @Success 200 {object} CreateTokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/jwt/create [post]
func (h *TokenHandler) CreateToken(w http.ResponseWriter, r *http.Request) {
	var req CreateTokenRequest
	if err := decodeRequest(r, &req, false); err != nil {
		respondRequestError(w, h.logger, err)
		return
	}

	created, err := h.service.CreateToken(r.Context(), req.Payload, req.Options)
	if err != nil {
		h.logger.Warn("Failed to create token", zap.Error(err))
		errors.RespondWithError(w, errors.FromError(err))
		return
	}

	respondJSON(w, h.logger, http.StatusOK, CreateTokenResponse{
		Success:      true,
		CreatedToken: *created,
	})
}

// VerifyToken godoc
// @Summary Verify a token
// @Description Verifies signature and claims. Invalid tokens are reported in the body with status 200.
// @Tags jwt
// @Accept json
// @Produce json
// @Param request body VerifyTokenRequest true "Token and verification options"
// @Success 200 {object} domain.VerificationResult
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/jwt/verify [post]
func (h *TokenHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	var req VerifyTokenRequest
	if err := decodeRequest(r, &req, false); err != nil {
		respondRequestError(w, h.logger, err)
		return
	}

	result := h.service.VerifyToken(r.Context(), req.Token, req.Options)
	respondJSON(w, h.logger, http.StatusOK, result)
}

// DecodeToken godoc
// @Summary Decode a token
// @Description Splits a token into header, payload and signature without verifying it
// @Tags jwt
// @Accept json
// @Produce json
// @Param request body TokenRequest true "Token"
// @Success 200 {object} DecodeTokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/jwt/decode [post]
func (h *TokenHandler) DecodeToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := decodeRequest(r, &req, false); err != nil {
		respondRequestError(w, h.logger, err)
		return
	}

	decoded, err := h.service.DecodeToken(req.Token)
	if err != nil {
		errors.RespondWithError(w, errors.FromError(err))
		return
	}

	respondJSON(w, h.logger, http.StatusOK, DecodeTokenResponse{
		Success:      true,
		DecodedToken: *decoded,
	})
}

// CheckExpiration godoc
// @Summary Check token expiration
// @Description Reports whether the token's exp claim has passed and how much time remains
// @Tags jwt
// @Accept json
// @Produce json
// @Param request body TokenRequest true "Token"
// @Success 200 {object} ExpirationResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/jwt/check-expiration [post]
func (h *TokenHandler) CheckExpiration(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := decodeRequest(r, &req, false); err != nil {
		respondRequestError(w, h.logger, err)
		return
	}

	status, err := h.service.CheckTokenExpiration(req.Token)
	if err != nil {
		errors.RespondWithError(w, errors.FromError(err))
		return
	}

	respondJSON(w, h.logger, http.StatusOK, ExpirationResponse{
		Success:          true,
		ExpirationStatus: *status,
	})
}
