package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/servercurio/fabric-sub000/internal/domain/providers"
)

// BasePath is the versioned API prefix.
const BasePath = "/api/v1"

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine,
	digests providers.DigestProvider,
	macs providers.MacProvider,
	encryption providers.EncryptionProvider) {

	v1 := r.Group(BasePath)

	handler := NewFacadeHandler(digests, macs, encryption)
	v1.POST("/digests", handler.Digest)
	v1.POST("/macs", handler.Authenticate)
	v1.POST("/encryption/encrypt", handler.Encrypt)
	v1.POST("/encryption/decrypt", handler.Decrypt)
	v1.POST("/encryption/nonces", handler.GenerateNonce)
	v1.POST("/encryption/keys", handler.GenerateKey)
}
