package v1

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/servercurio/fabric-sub000/internal/domain/algorithms"
	"github.com/servercurio/fabric-sub000/internal/domain/providers"
	"github.com/servercurio/fabric-sub000/internal/pkg/cryptoerr"
	"github.com/servercurio/fabric-sub000/internal/pkg/validators"
)

// FacadeHandler defines the interface for handling cryptographic façade
// operations over REST.
type FacadeHandler interface {
	Digest(ctx *gin.Context)
	Authenticate(ctx *gin.Context)
	Encrypt(ctx *gin.Context)
	Decrypt(ctx *gin.Context)
	GenerateNonce(ctx *gin.Context)
	GenerateKey(ctx *gin.Context)
}

type facadeHandler struct {
	digests    providers.DigestProvider
	macs       providers.MacProvider
	encryption providers.EncryptionProvider
}

// NewFacadeHandler creates a new FacadeHandler.
func NewFacadeHandler(digests providers.DigestProvider, macs providers.MacProvider, encryption providers.EncryptionProvider) FacadeHandler {
	return &facadeHandler{
		digests:    digests,
		macs:       macs,
		encryption: encryption,
	}
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Message string `json:"message"`
}

// DigestRequest selects a hash algorithm by id and carries the input
// bytes base64 encoded.
type DigestRequest struct {
	AlgorithmID int    `json:"algorithm_id" binding:"required"`
	Data        string `json:"data"`
}

// DigestResponse carries the algorithm name and the digest bytes.
type DigestResponse struct {
	Algorithm string `json:"algorithm"`
	Digest    string `json:"digest"`
}

// Digest computes a message digest.
func (handler *facadeHandler) Digest(ctx *gin.Context) {
	var req DigestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request payload"})
		return
	}

	algorithm, ok := algorithms.HashByID(req.AlgorithmID)
	if !ok {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: "unknown hash algorithm id"})
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "data must be base64 encoded"})
		return
	}

	digest, err := handler.digests.Digest(ctx.Request.Context(), algorithm, data)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, DigestResponse{
		Algorithm: digest.Algorithm().CanonicalName(),
		Digest:    base64.StdEncoding.EncodeToString(digest.Bytes()),
	})
}

// MacRequest selects a MAC algorithm by id and carries key and input
// bytes base64 encoded.
type MacRequest struct {
	AlgorithmID int    `json:"algorithm_id" binding:"required"`
	Key         string `json:"key" binding:"required"`
	Data        string `json:"data"`
}

// Authenticate computes a keyed message-authentication code.
func (handler *facadeHandler) Authenticate(ctx *gin.Context) {
	var req MacRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request payload"})
		return
	}

	algorithm, ok := algorithms.MacByID(req.AlgorithmID)
	if !ok {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: "unknown MAC algorithm id"})
		return
	}

	key, err := base64.StdEncoding.DecodeString(req.Key)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "key must be base64 encoded"})
		return
	}
	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "data must be base64 encoded"})
		return
	}

	code, err := handler.macs.Authenticate(ctx.Request.Context(), algorithm, key, data)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, DigestResponse{
		Algorithm: code.Algorithm().CanonicalName(),
		Digest:    base64.StdEncoding.EncodeToString(code.Bytes()),
	})
}

// CipherRequest selects a transformation and carries key, nonce and
// input bytes base64 encoded.
type CipherRequest struct {
	CipherID int    `json:"cipher_id" binding:"required"`
	Mode     string `json:"mode"`
	Padding  string `json:"padding"`
	Key      string `json:"key" binding:"required"`
	Nonce    string `json:"nonce"`
	Data     string `json:"data"`
}

// CipherResponse carries the transformation name and the output bytes.
type CipherResponse struct {
	Transformation string `json:"transformation"`
	Data           string `json:"data"`
}

// Encrypt encrypts the request payload.
func (handler *facadeHandler) Encrypt(ctx *gin.Context) {
	handler.runCipher(ctx, true)
}

// Decrypt decrypts the request payload.
func (handler *facadeHandler) Decrypt(ctx *gin.Context) {
	handler.runCipher(ctx, false)
}

func (handler *facadeHandler) runCipher(ctx *gin.Context, encrypt bool) {
	transformation, key, nonce, data, ok := bindCipherRequest(ctx)
	if !ok {
		return
	}

	var output []byte
	var err error
	if encrypt {
		output, err = handler.encryption.Encrypt(ctx.Request.Context(), transformation, key, nonce, data)
	} else {
		output, err = handler.encryption.Decrypt(ctx.Request.Context(), transformation, key, nonce, data)
	}
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, CipherResponse{
		Transformation: transformation.String(),
		Data:           base64.StdEncoding.EncodeToString(output),
	})
}

// NonceRequest selects the transformation a nonce is generated for.
type NonceRequest struct {
	CipherID int    `json:"cipher_id" binding:"required"`
	Mode     string `json:"mode"`
	Padding  string `json:"padding"`
}

// NonceResponse carries the generated nonce.
type NonceResponse struct {
	Transformation string `json:"transformation"`
	Nonce          string `json:"nonce"`
}

// GenerateNonce draws a fresh nonce of the transformation's expected length.
func (handler *facadeHandler) GenerateNonce(ctx *gin.Context) {
	var req NonceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request payload"})
		return
	}

	algorithm, ok := algorithms.CipherByID(req.CipherID)
	if !ok {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: "unknown cipher algorithm id"})
		return
	}
	transformation := algorithms.NewTransformationWithMode(algorithm,
		algorithms.Mode(req.Mode), algorithms.Padding(req.Padding))

	nonce, err := handler.encryption.GenerateNonce(ctx.Request.Context(), transformation)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, NonceResponse{
		Transformation: transformation.String(),
		Nonce:          base64.StdEncoding.EncodeToString(nonce),
	})
}

// KeyRequest selects the symmetric cipher a key is generated for by
// algorithm name and key size in bits.
type KeyRequest struct {
	Algorithm string `json:"algorithm" binding:"required" validate:"required"`
	KeySize   uint   `json:"key_size" validate:"required,keySizeValidation"`
}

// Validate checks the algorithm and key-size combination.
func (k *KeyRequest) Validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("keySizeValidation", validators.KeySizeValidation); err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

	err := validate.Struct(k)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// KeyResponse carries the generated key.
type KeyResponse struct {
	Algorithm string `json:"algorithm"`
	KeySize   uint   `json:"key_size"`
	Key       string `json:"key"`
}

// GenerateKey draws a fresh symmetric key of the requested size.
func (handler *facadeHandler) GenerateKey(ctx *gin.Context) {
	var req KeyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request payload"})
		return
	}
	if err := req.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	cipher, ok := algorithms.CipherByKeyAlgorithm(req.Algorithm, int(req.KeySize))
	if !ok {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "key generation is limited to symmetric ciphers"})
		return
	}

	key, err := handler.encryption.GenerateKey(ctx.Request.Context(), cipher)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, KeyResponse{
		Algorithm: req.Algorithm,
		KeySize:   req.KeySize,
		Key:       base64.StdEncoding.EncodeToString(key),
	})
}

func bindCipherRequest(ctx *gin.Context) (algorithms.Transformation, []byte, []byte, []byte, bool) {
	var req CipherRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request payload"})
		return algorithms.Transformation{}, nil, nil, nil, false
	}

	algorithm, ok := algorithms.CipherByID(req.CipherID)
	if !ok {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: "unknown cipher algorithm id"})
		return algorithms.Transformation{}, nil, nil, nil, false
	}
	transformation := algorithms.NewTransformationWithMode(algorithm,
		algorithms.Mode(req.Mode), algorithms.Padding(req.Padding))

	key, err := base64.StdEncoding.DecodeString(req.Key)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "key must be base64 encoded"})
		return algorithms.Transformation{}, nil, nil, nil, false
	}
	nonce, err := base64.StdEncoding.DecodeString(req.Nonce)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "nonce must be base64 encoded"})
		return algorithms.Transformation{}, nil, nil, nil, false
	}
	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "data must be base64 encoded"})
		return algorithms.Transformation{}, nil, nil, nil, false
	}

	return transformation, key, nonce, data, true
}

func respondError(ctx *gin.Context, err error) {
	if cryptoerr.IsArgument(err) {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}
	// Engine failures are reported uniformly so the API cannot be used
	// as an error oracle.
	ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: "cryptography operation failed"})
}
