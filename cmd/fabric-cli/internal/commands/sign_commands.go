package commands

import (
	"context"
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/servercurio/fabric-sub000/internal/app"
	"github.com/servercurio/fabric-sub000/internal/domain/algorithms"
	"github.com/servercurio/fabric-sub000/internal/domain/values"
	"github.com/servercurio/fabric-sub000/internal/pkg/logger"
)

// SignCommandHandler encapsulates logic for handling digital signature
// operations via CLI. Keys are exchanged as PKCS#8 / PKIX PEM files.
type SignCommandHandler struct {
	facade *app.Cryptography
	logger logger.Logger
}

// NewSignCommandHandler initializes and returns a SignCommandHandler instance with
// configured logger and cryptography façade.
func NewSignCommandHandler() (*SignCommandHandler, error) {
	facade, loggerInstance, err := setupFacade()
	if err != nil {
		return nil, err
	}

	return &SignCommandHandler{
		facade: facade,
		logger: loggerInstance,
	}, nil
}

func (commandHandler *SignCommandHandler) readSignatureArgs(cmd *cobra.Command) (algorithms.Signature, string, string, bool) {
	algorithmName, err := cmd.Flags().GetString("algorithm")
	if err != nil {
		commandHandler.logger.Error("invalid algorithm flag ", err)
		return algorithms.SignatureNone, "", "", false
	}
	inputFilePath, err := cmd.Flags().GetString("input-file")
	if err != nil {
		commandHandler.logger.Error("invalid input-file flag ", err)
		return algorithms.SignatureNone, "", "", false
	}
	signatureFilePath, err := cmd.Flags().GetString("signature-file")
	if err != nil {
		commandHandler.logger.Error("invalid signature-file flag ", err)
		return algorithms.SignatureNone, "", "", false
	}

	algorithm, ok := algorithms.SignatureByName(algorithmName)
	if !ok {
		commandHandler.logger.Error("unknown signature algorithm ", algorithmName)
		return algorithms.SignatureNone, "", "", false
	}

	return algorithm, inputFilePath, signatureFilePath, true
}

// GenerateSigningKeysCmd generates a signing key pair and persists it in a selected directory
func (commandHandler *SignCommandHandler) GenerateSigningKeysCmd(cmd *cobra.Command, _ []string) {
	algorithmName, err := cmd.Flags().GetString("algorithm")
	if err != nil {
		commandHandler.logger.Error("invalid algorithm flag ", err)
		return
	}
	keyDir, err := cmd.Flags().GetString("key-dir")
	if err != nil {
		commandHandler.logger.Error("invalid key-dir flag ", err)
		return
	}

	algorithm, ok := algorithms.SignatureByName(algorithmName)
	if !ok {
		commandHandler.logger.Error("unknown signature algorithm ", algorithmName)
		return
	}

	var privateKey crypto.PrivateKey
	var publicKey crypto.PublicKey
	switch algorithm.KeyAlgorithmName() {
	case "RSA":
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			commandHandler.logger.Error(err)
			return
		}
		privateKey, publicKey = key, &key.PublicKey
	case "ECDSA":
		key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		if err != nil {
			commandHandler.logger.Error(err)
			return
		}
		privateKey, publicKey = key, &key.PublicKey
	default:
		commandHandler.logger.Error("no key generator for ", algorithm.CanonicalName())
		return
	}

	uniqueID := uuid.New()
	privateKeyFilePath := filepath.Join(keyDir, fmt.Sprintf("%s-private-key.pem", uniqueID))
	if err := savePrivateKeyToFile(privateKey, privateKeyFilePath); err != nil {
		commandHandler.logger.Error(err)
		return
	}
	publicKeyFilePath := filepath.Join(keyDir, fmt.Sprintf("%s-public-key.pem", uniqueID))
	if err := savePublicKeyToFile(publicKey, publicKeyFilePath); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Signing keys saved to ", privateKeyFilePath, " and ", publicKeyFilePath)
}

// SignFileCmd signs the contents of a file and writes the raw signature bytes
func (commandHandler *SignCommandHandler) SignFileCmd(cmd *cobra.Command, _ []string) {
	algorithm, inputFilePath, signatureFilePath, ok := commandHandler.readSignatureArgs(cmd)
	if !ok {
		return
	}
	privateKeyFilePath, err := cmd.Flags().GetString("private-key")
	if err != nil {
		commandHandler.logger.Error("invalid private-key flag ", err)
		return
	}

	privateKey, err := readPrivateKey(privateKeyFilePath)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	file, err := os.Open(filepath.Clean(inputFilePath))
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			commandHandler.logger.Error(err)
		}
	}()

	seal, err := commandHandler.facade.SignStream(context.Background(), algorithm, privateKey, file)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if err := os.WriteFile(signatureFilePath, seal.Bytes(), 0600); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Signature saved to ", signatureFilePath)
}

// VerifyFileCmd verifies a detached signature against the contents of a file
func (commandHandler *SignCommandHandler) VerifyFileCmd(cmd *cobra.Command, _ []string) {
	algorithm, inputFilePath, signatureFilePath, ok := commandHandler.readSignatureArgs(cmd)
	if !ok {
		return
	}
	publicKeyFilePath, err := cmd.Flags().GetString("public-key")
	if err != nil {
		commandHandler.logger.Error("invalid public-key flag ", err)
		return
	}

	publicKey, err := readPublicKey(publicKeyFilePath)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	signatureBytes, err := os.ReadFile(filepath.Clean(signatureFilePath))
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	seal, err := values.NewSeal(algorithm, signatureBytes)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	file, err := os.Open(filepath.Clean(inputFilePath))
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			commandHandler.logger.Error(err)
		}
	}()

	valid, err := commandHandler.facade.VerifyStream(context.Background(), seal, publicKey, file)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Signature valid: ", valid)
}

func savePrivateKeyToFile(privateKey crypto.PrivateKey, filePath string) error {
	keyBytes, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return fmt.Errorf("failed to marshal private key: %w", err)
	}
	block := &pem.Block{Type: "PRIVATE KEY", Bytes: keyBytes}
	return os.WriteFile(filePath, pem.EncodeToMemory(block), 0600)
}

func savePublicKeyToFile(publicKey crypto.PublicKey, filePath string) error {
	keyBytes, err := x509.MarshalPKIXPublicKey(publicKey)
	if err != nil {
		return fmt.Errorf("failed to marshal public key: %w", err)
	}
	block := &pem.Block{Type: "PUBLIC KEY", Bytes: keyBytes}
	return os.WriteFile(filePath, pem.EncodeToMemory(block), 0600)
}

func readPrivateKey(filePath string) (crypto.PrivateKey, error) {
	pemBytes, err := os.ReadFile(filepath.Clean(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to read private key file: %w", err)
	}
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("no PEM block found in %s", filePath)
	}
	return x509.ParsePKCS8PrivateKey(block.Bytes)
}

func readPublicKey(filePath string) (crypto.PublicKey, error) {
	pemBytes, err := os.ReadFile(filepath.Clean(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to read public key file: %w", err)
	}
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("no PEM block found in %s", filePath)
	}
	return x509.ParsePKIXPublicKey(block.Bytes)
}

// InitSignCommands registers signature-related commands
func InitSignCommands(rootCmd *cobra.Command) error {
	handler, err := NewSignCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create sign command handler %w", err)
	}

	var generateKeysCmd = &cobra.Command{
		Use:   "generate-signing-keys",
		Short: "Generate a signing key pair",
		Run:   handler.GenerateSigningKeysCmd,
	}
	generateKeysCmd.Flags().StringP("algorithm", "", "RSA-SHA256", "Signature algorithm (RSA-SHA256, RSA-SHA384 or ECDSA-SHA256)")
	generateKeysCmd.Flags().StringP("key-dir", "", "", "Directory to store the key pair")
	rootCmd.AddCommand(generateKeysCmd)

	var signFileCmd = &cobra.Command{
		Use:   "sign",
		Short: "Sign a file",
		Run:   handler.SignFileCmd,
	}
	signFileCmd.Flags().StringP("algorithm", "", "RSA-SHA256", "Signature algorithm (RSA-SHA256, RSA-SHA384 or ECDSA-SHA256)")
	signFileCmd.Flags().StringP("input-file", "", "", "Path to input file to sign")
	signFileCmd.Flags().StringP("signature-file", "", "", "Path to write the signature")
	signFileCmd.Flags().StringP("private-key", "", "", "Path to the PEM encoded private key")
	rootCmd.AddCommand(signFileCmd)

	var verifyFileCmd = &cobra.Command{
		Use:   "verify",
		Short: "Verify a detached file signature",
		Run:   handler.VerifyFileCmd,
	}
	verifyFileCmd.Flags().StringP("algorithm", "", "RSA-SHA256", "Signature algorithm (RSA-SHA256, RSA-SHA384 or ECDSA-SHA256)")
	verifyFileCmd.Flags().StringP("input-file", "", "", "Path to the signed input file")
	verifyFileCmd.Flags().StringP("signature-file", "", "", "Path to the detached signature")
	verifyFileCmd.Flags().StringP("public-key", "", "", "Path to the PEM encoded public key")
	rootCmd.AddCommand(verifyFileCmd)

	return nil
}
