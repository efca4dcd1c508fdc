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

// MacCommandHandler encapsulates logic for computing keyed message
// authentication codes over files via CLI.
type MacCommandHandler struct {
	facade *app.Cryptography
	logger logger.Logger
}

// NewMacCommandHandler initializes and returns a MacCommandHandler instance with
// configured logger and cryptography façade.
func NewMacCommandHandler() (*MacCommandHandler, error) {
	facade, loggerInstance, err := setupFacade()
	if err != nil {
		return nil, err
	}

	return &MacCommandHandler{
		facade: facade,
		logger: loggerInstance,
	}, nil
}

// AuthenticateFileCmd computes the HMAC of a file and prints it hex encoded
func (commandHandler *MacCommandHandler) AuthenticateFileCmd(cmd *cobra.Command, _ []string) {
	inputFilePath, err := cmd.Flags().GetString("input-file")
	if err != nil {
		commandHandler.logger.Error("invalid input-file flag ", err)
		return
	}
	keyFilePath, err := cmd.Flags().GetString("key-file")
	if err != nil {
		commandHandler.logger.Error("invalid key-file flag ", err)
		return
	}
	algorithmName, err := cmd.Flags().GetString("algorithm")
	if err != nil {
		commandHandler.logger.Error("invalid algorithm flag ", err)
		return
	}

	algorithm, ok := algorithms.MacByName(algorithmName)
	if !ok {
		commandHandler.logger.Error("unknown MAC algorithm ", algorithmName)
		return
	}

	key, err := os.ReadFile(filepath.Clean(keyFilePath))
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

	mac, err := commandHandler.facade.AuthenticateStream(context.Background(), algorithm, key, file)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info(algorithm.CanonicalName(), " of ", inputFilePath, ": ", hex.EncodeToString(mac.Bytes()))
}

// InitMacCommands registers MAC-related commands
func InitMacCommands(rootCmd *cobra.Command) error {
	handler, err := NewMacCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create mac command handler %w", err)
	}

	var authenticateFileCmd = &cobra.Command{
		Use:   "mac",
		Short: "Compute the HMAC of a file",
		Run:   handler.AuthenticateFileCmd,
	}
	authenticateFileCmd.Flags().StringP("input-file", "", "", "Path to input file to authenticate")
	authenticateFileCmd.Flags().StringP("key-file", "", "", "Path to the MAC key")
	authenticateFileCmd.Flags().StringP("algorithm", "", "HMAC-SHA384", "MAC algorithm (HMAC-SHA256, HMAC-SHA384 or HMAC-SHA512)")
	rootCmd.AddCommand(authenticateFileCmd)

	return nil
}
