package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ermis/jwt-rsa256-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockKeyService is a mock implementation of the key service
type MockKeyService struct {
	mock.Mock
}

func (m *MockKeyService) GenerateKeys(ctx context.Context, bits int) (*domain.GeneratedKeyPair, error) {
	args := m.Called(ctx, bits)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneratedKeyPair), args.Error(1)
}

func (m *MockKeyService) Status(ctx context.Context) *domain.KeyStatus {
	args := m.Called(ctx)
	return args.Get(0).(*domain.KeyStatus)
}

func (m *MockKeyService) PublicKey(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockKeyService) DeleteKeys(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestKeyHandler_GenerateKeys(t *testing.T) {
	generated := &domain.GeneratedKeyPair{
		Message:        "Successfully generated RSA key pair (2048 bits)",
		PrivateKeyPath: "keys/private.pem",
		PublicKeyPath:  "keys/public.pem",
		PublicKey:      "-----BEGIN PUBLIC KEY-----\n",
	}

	tests := []struct {
		name           string
		body           string
		mockSetup      func(*MockKeyService)
		expectedStatus int
		expectedBody   map[string]interface{}
	}{
		{
			name: "default size on empty body",
			body: "",
			mockSetup: func(m *MockKeyService) {
				m.On("GenerateKeys", mock.Anything, 2048).Return(generated, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: map[string]interface{}{
				"success":        true,
				"message":        generated.Message,
				"privateKeyPath": generated.PrivateKeyPath,
				"publicKeyPath":  generated.PublicKeyPath,
				"publicKey":      generated.PublicKey,
			},
		},
		{
			name: "explicit size",
			body: `{"keySize": 4096}`,
			mockSetup: func(m *MockKeyService) {
				m.On("GenerateKeys", mock.Anything, 4096).Return(generated, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: map[string]interface{}{
				"success":        true,
				"message":        generated.Message,
				"privateKeyPath": generated.PrivateKeyPath,
				"publicKeyPath":  generated.PublicKeyPath,
				"publicKey":      generated.PublicKey,
			},
		},
		{
			name: "size out of range",
			body: `{"keySize": 512}`,
			mockSetup: func(m *MockKeyService) {
				m.On("GenerateKeys", mock.Anything, 512).Return(nil, domain.ErrInvalidKeySize)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody: map[string]interface{}{
				"success": false,
				"error":   "Key size must be between 1024 and 4096 bits",
				"code":    "K0003",
			},
		},
		{
			name:           "unknown field",
			body:           `{"bits": 2048}`,
			mockSetup:      func(m *MockKeyService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed body",
			body:           `{"keySize":`,
			mockSetup:      func(m *MockKeyService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockKeyService)
			tt.mockSetup(service)
			handler := NewKeyHandler(service, new(MockTokenService), domain.DefaultKeySize, zap.NewNop())

			req := httptest.NewRequest(http.MethodPost, "/api/keys/generate", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.GenerateKeys(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decodeBody(t, w)
			if tt.expectedBody != nil {
				assert.Equal(t, tt.expectedBody, body)
			} else {
				assert.Equal(t, false, body["success"])
				assert.Equal(t, "R0001", body["code"])
			}
			service.AssertExpectations(t)
		})
	}
}

func TestKeyHandler_Status(t *testing.T) {
	service := new(MockKeyService)
	service.On("Status", mock.Anything).Return(&domain.KeyStatus{Exists: false, Message: "Keys have not been generated"})
	handler := NewKeyHandler(service, new(MockTokenService), domain.DefaultKeySize, zap.NewNop())

	w := httptest.NewRecorder()
	handler.Status(w, httptest.NewRequest(http.MethodGet, "/api/keys/status", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{
		"exists":  false,
		"message": "Keys have not been generated",
	}, decodeBody(t, w))
}

func TestKeyHandler_PublicKey(t *testing.T) {
	tests := []struct {
		name           string
		mockSetup      func(*MockKeyService)
		expectedStatus int
		expectedBody   map[string]interface{}
	}{
		{
			name: "Success",
			mockSetup: func(m *MockKeyService) {
				m.On("PublicKey", mock.Anything).Return("PEM", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: map[string]interface{}{
				"success":   true,
				"publicKey": "PEM",
			},
		},
		{
			name: "Keys not generated",
			mockSetup: func(m *MockKeyService) {
				m.On("PublicKey", mock.Anything).Return("", domain.ErrKeysNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody: map[string]interface{}{
				"success": false,
				"error":   "Keys have not been generated. Please generate keys first.",
				"code":    "K0001",
			},
		},
		{
			name: "Storage failure",
			mockSetup: func(m *MockKeyService) {
				m.On("PublicKey", mock.Anything).Return("", domain.ErrKeyStorage.Wrapf("permission denied"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody: map[string]interface{}{
				"success": false,
				"error":   "Key storage failure: permission denied",
				"code":    "K0002",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockKeyService)
			tt.mockSetup(service)
			handler := NewKeyHandler(service, new(MockTokenService), domain.DefaultKeySize, zap.NewNop())

			w := httptest.NewRecorder()
			handler.PublicKey(w, httptest.NewRequest(http.MethodGet, "/api/keys/public", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedBody, decodeBody(t, w))
		})
	}
}

func TestKeyHandler_DeleteKeys(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		service := new(MockKeyService)
		service.On("DeleteKeys", mock.Anything).Return("Successfully deleted RSA key pair", nil)
		handler := NewKeyHandler(service, new(MockTokenService), domain.DefaultKeySize, zap.NewNop())

		w := httptest.NewRecorder()
		handler.DeleteKeys(w, httptest.NewRequest(http.MethodDelete, "/api/keys/delete", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, map[string]interface{}{
			"success": true,
			"message": "Successfully deleted RSA key pair",
		}, decodeBody(t, w))
	})

	t.Run("Storage failure", func(t *testing.T) {
		service := new(MockKeyService)
		service.On("DeleteKeys", mock.Anything).Return("", domain.ErrKeyStorage.Wrapf("read-only file system"))
		handler := NewKeyHandler(service, new(MockTokenService), domain.DefaultKeySize, zap.NewNop())

		w := httptest.NewRecorder()
		handler.DeleteKeys(w, httptest.NewRequest(http.MethodDelete, "/api/keys/delete", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "K0002", body["code"])
		assert.Equal(t, false, body["success"])
	})
}

func TestKeyHandler_JWKS(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		tokens := new(MockTokenService)
		set := map[string]interface{}{
			"keys": []interface{}{
				map[string]interface{}{"kty": "RSA", "alg": "RS256", "use": "sig"},
			},
		}
		tokens.On("JWKS", mock.Anything).Return(set, nil)
		handler := NewKeyHandler(new(MockKeyService), tokens, domain.DefaultKeySize, zap.NewNop())

		w := httptest.NewRecorder()
		handler.JWKS(w, httptest.NewRequest(http.MethodGet, "/api/keys/jwks", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, set, decodeBody(t, w))
	})

	t.Run("Keys not generated", func(t *testing.T) {
		tokens := new(MockTokenService)
		tokens.On("JWKS", mock.Anything).Return(nil, domain.ErrKeysNotFound)
		handler := NewKeyHandler(new(MockKeyService), tokens, domain.DefaultKeySize, zap.NewNop())

		w := httptest.NewRecorder()
		handler.JWKS(w, httptest.NewRequest(http.MethodGet, "/api/keys/jwks", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "K0001", decodeBody(t, w)["code"])
	})
}
