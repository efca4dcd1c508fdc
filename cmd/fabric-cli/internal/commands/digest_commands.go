package commands

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/servercurio/fabric-sub000/internal/app"
	"github.com/servercurio/fabric-sub000/internal/domain/algorithms"
	"github.com/servercurio/fabric-sub000/internal/pkg/logger"
)

// DigestCommandHandler encapsulates logic for handling digest operations via CLI.
type DigestCommandHandler struct {
	facade *app.Cryptography
	logger logger.Logger
}

// NewDigestCommandHandler initializes and returns a DigestCommandHandler instance with
// configured logger and cryptography façade.
func NewDigestCommandHandler() (*DigestCommandHandler, error) {
	facade, loggerInstance, err := setupFacade()
	if err != nil {
		return nil, err
	}

	return &DigestCommandHandler{
		facade: facade,
		logger: loggerInstance,
	}, nil
}

// DigestFileCmd hashes a file with the selected algorithm and prints the digest
func (commandHandler *DigestCommandHandler) DigestFileCmd(cmd *cobra.Command, _ []string) {
	inputFilePath, err := cmd.Flags().GetString("input-file")
	if err != nil {
		commandHandler.logger.Error("invalid input-file flag ", err)
		return
	}
	algorithmName, err := cmd.Flags().GetString("algorithm")
	if err != nil {
		commandHandler.logger.Error("invalid algorithm flag ", err)
		return
	}

	algorithm, ok := algorithms.HashByName(algorithmName)
	if !ok {
		commandHandler.logger.Error("unknown hash algorithm ", algorithmName)
		return
	}

	file, err := os.Open(filepath.Clean(inputFilePath))
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			commandHandler.logger.Warn("failed to close input file: ", err)
		}
	}()

	digest, err := commandHandler.facade.DigestStream(context.Background(), algorithm, file)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info(fmt.Sprintf("%s(%s) = %s",
		algorithm.CanonicalName(), inputFilePath, hex.EncodeToString(digest.Bytes())))
}

// InitDigestCommands registers digest-related commands
func InitDigestCommands(rootCmd *cobra.Command) error {
	handler, err := NewDigestCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create digest command handler %w", err)
	}

	var digestFileCmd = &cobra.Command{
		Use:   "digest",
		Short: "Hash a file with the selected algorithm",
		Run:   handler.DigestFileCmd,
	}
	digestFileCmd.Flags().StringP("input-file", "", "", "Path to the file to hash")
	digestFileCmd.Flags().StringP("algorithm", "", "SHA-384", "Hash algorithm canonical name")
	rootCmd.AddCommand(digestFileCmd)

	return nil
}
