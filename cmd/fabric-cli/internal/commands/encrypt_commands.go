package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/servercurio/fabric-sub000/internal/app"
	"github.com/servercurio/fabric-sub000/internal/domain/algorithms"
	"github.com/servercurio/fabric-sub000/internal/pkg/logger"
)

// EncryptCommandHandler encapsulates logic for handling symmetric
// encryption operations via CLI. Files are encrypted with AES-GCM; the
// generated nonce is stored next to the ciphertext.
type EncryptCommandHandler struct {
	facade *app.Cryptography
	logger logger.Logger
}

// NewEncryptCommandHandler initializes and returns an EncryptCommandHandler instance with
// configured logger and cryptography façade.
func NewEncryptCommandHandler() (*EncryptCommandHandler, error) {
	facade, loggerInstance, err := setupFacade()
	if err != nil {
		return nil, err
	}

	return &EncryptCommandHandler{
		facade: facade,
		logger: loggerInstance,
	}, nil
}

func (commandHandler *EncryptCommandHandler) transformation(cmd *cobra.Command) (algorithms.Transformation, error) {
	keySize, err := cmd.Flags().GetInt("key-size")
	if err != nil {
		return algorithms.Transformation{}, fmt.Errorf("invalid key-size flag: %w", err)
	}
	algorithm, ok := algorithms.CipherByName("AES", keySize)
	if !ok {
		return algorithms.Transformation{}, fmt.Errorf("key size %d not supported for AES", keySize)
	}
	return algorithms.NewTransformationWithMode(algorithm, algorithms.ModeGCM, algorithms.PaddingNoPad), nil
}

// GenerateKeyCmd generates an AES key and persists it in a selected directory
func (commandHandler *EncryptCommandHandler) GenerateKeyCmd(cmd *cobra.Command, _ []string) {
	keySize, err := cmd.Flags().GetInt("key-size")
	if err != nil {
		commandHandler.logger.Error("invalid key-size flag ", err)
		return
	}
	keyDir, err := cmd.Flags().GetString("key-dir")
	if err != nil {
		commandHandler.logger.Error("invalid key-dir flag ", err)
		return
	}

	algorithm, ok := algorithms.CipherByName("AES", keySize)
	if !ok {
		commandHandler.logger.Error("key size not supported for AES: ", keySize)
		return
	}

	key, err := commandHandler.facade.GenerateKey(context.Background(), algorithm)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	uniqueID := uuid.New()
	keyFilePath := filepath.Join(keyDir, fmt.Sprintf("%s-symmetric-key.bin", uniqueID))
	if err := os.WriteFile(keyFilePath, key, 0600); err != nil {
		commandHandler.logger.Error(err)
		return
	}
	commandHandler.logger.Info("AES key saved to ", keyFilePath)
}

// EncryptFileCmd encrypts a file using AES-GCM and stores the nonce alongside
func (commandHandler *EncryptCommandHandler) EncryptFileCmd(cmd *cobra.Command, _ []string) {
	inputFilePath, outputFilePath, key, ok := commandHandler.readFileArgs(cmd)
	if !ok {
		return
	}

	transformation, err := commandHandler.transformation(cmd)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	plainText, err := os.ReadFile(filepath.Clean(inputFilePath))
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	nonce, err := commandHandler.facade.GenerateNonce(context.Background(), transformation)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	encryptedData, err := commandHandler.facade.Encrypt(context.Background(), transformation, key, nonce, plainText)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if err := os.WriteFile(outputFilePath, encryptedData, 0600); err != nil {
		commandHandler.logger.Error(err)
		return
	}
	if err := os.WriteFile(outputFilePath+".nonce", nonce, 0600); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Encrypted data saved to ", outputFilePath)
}

// DecryptFileCmd decrypts a file using AES-GCM, reading the nonce stored alongside
func (commandHandler *EncryptCommandHandler) DecryptFileCmd(cmd *cobra.Command, _ []string) {
	inputFilePath, outputFilePath, key, ok := commandHandler.readFileArgs(cmd)
	if !ok {
		return
	}

	transformation, err := commandHandler.transformation(cmd)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	encryptedData, err := os.ReadFile(filepath.Clean(inputFilePath))
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	nonce, err := os.ReadFile(filepath.Clean(inputFilePath + ".nonce"))
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	decryptedData, err := commandHandler.facade.Decrypt(context.Background(), transformation, key, nonce, encryptedData)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if err := os.WriteFile(outputFilePath, decryptedData, 0600); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Decrypted data saved to ", outputFilePath)
}

func (commandHandler *EncryptCommandHandler) readFileArgs(cmd *cobra.Command) (string, string, []byte, bool) {
	inputFilePath, err := cmd.Flags().GetString("input-file")
	if err != nil {
		commandHandler.logger.Error("invalid input-file flag ", err)
		return "", "", nil, false
	}
	outputFilePath, err := cmd.Flags().GetString("output-file")
	if err != nil {
		commandHandler.logger.Error("invalid output-file flag ", err)
		return "", "", nil, false
	}
	symmetricKey, err := cmd.Flags().GetString("symmetric-key")
	if err != nil {
		commandHandler.logger.Error("invalid symmetric-key flag ", err)
		return "", "", nil, false
	}

	key, err := os.ReadFile(filepath.Clean(symmetricKey))
	if err != nil {
		commandHandler.logger.Error(err)
		return "", "", nil, false
	}

	return inputFilePath, outputFilePath, key, true
}

// InitEncryptCommands registers encryption-related commands
func InitEncryptCommands(rootCmd *cobra.Command) error {
	handler, err := NewEncryptCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create encrypt command handler %w", err)
	}

	var generateKeyCmd = &cobra.Command{
		Use:   "generate-key",
		Short: "Generate an AES key",
		Run:   handler.GenerateKeyCmd,
	}
	generateKeyCmd.Flags().IntP("key-size", "", 256, "AES key size in bits (128, 192 or 256)")
	generateKeyCmd.Flags().StringP("key-dir", "", "", "Directory to store the encryption key")
	rootCmd.AddCommand(generateKeyCmd)

	var encryptFileCmd = &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt a file using AES-GCM",
		Run:   handler.EncryptFileCmd,
	}
	encryptFileCmd.Flags().StringP("input-file", "", "", "Path to input file that needs to be encrypted")
	encryptFileCmd.Flags().StringP("output-file", "", "", "Path to encrypted output file")
	encryptFileCmd.Flags().StringP("symmetric-key", "", "", "Path to the symmetric key")
	encryptFileCmd.Flags().IntP("key-size", "", 256, "AES key size in bits (128, 192 or 256)")
	rootCmd.AddCommand(encryptFileCmd)

	var decryptFileCmd = &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt a file using AES-GCM",
		Run:   handler.DecryptFileCmd,
	}
	decryptFileCmd.Flags().StringP("input-file", "", "", "Input encrypted file path")
	decryptFileCmd.Flags().StringP("output-file", "", "", "Path to decrypted output file")
	decryptFileCmd.Flags().StringP("symmetric-key", "", "", "Path to the symmetric key")
	decryptFileCmd.Flags().IntP("key-size", "", 256, "AES key size in bits (128, 192 or 256)")
	rootCmd.AddCommand(decryptFileCmd)

	return nil
}
