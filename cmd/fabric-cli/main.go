// Package main is the entry point for the fabric-cli application.
// It initializes the root command and registers the digest, encryption,
// MAC and signature sub-commands, then executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "github.com/servercurio/fabric-sub000/cmd/fabric-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "fabric-cli",
		Short: "Cryptographic operations CLI tool",
		Long: `fabric-cli is a command-line tool for cryptographic operations.
Supports message digests over files, AES-GCM encryption/decryption,
HMAC computation, and RSA/ECDSA key generation, signing and verification.`,
	}

	// Initialize all command groups BEFORE executing
	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	// Execute root command ONCE after all commands are registered
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitDigestCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize digest commands: %w", err)
	}

	if err := commands.InitEncryptCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize encrypt commands: %w", err)
	}

	if err := commands.InitMacCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize mac commands: %w", err)
	}

	if err := commands.InitSignCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize sign commands: %w", err)
	}

	return nil
}

// init sets up any necessary initialization before main runs.
func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
