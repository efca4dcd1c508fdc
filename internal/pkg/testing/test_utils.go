package testing

import (
	"fmt"
	"os"
	"testing"

	"github.com/servercurio/fabric-sub000/internal/pkg/config"
	"github.com/servercurio/fabric-sub000/internal/pkg/logger"

	"github.com/stretchr/testify/require"
)

// SetupTestLogger sets up a logger for testing purposes.
func SetupTestLogger(t *testing.T) logger.Logger {
	t.Helper()

	settings := &config.LoggerSettings{
		LogLevel: config.LogLevelInfo,
		LogType:  config.LogTypeConsole,
	}

	err := logger.InitLogger(settings)
	require.NoError(t, err)

	log, err := logger.GetLogger()
	require.NoError(t, err)

	return log
}

// FacadeSettings returns valid façade settings for testing.
func FacadeSettings() *config.FacadeSettings {
	return &config.FacadeSettings{
		Workers:        4,
		Contexts:       2,
		ReseedInterval: config.DefaultReseedInterval,
		Logger: config.LoggerSettings{
			LogLevel: config.LogLevelInfo,
			LogType:  config.LogTypeConsole,
		},
	}
}

// CreateTestFile create a test files
func CreateTestFile(fileName string, content []byte) error {
	err := os.WriteFile(fileName, content, 0600)
	if err != nil {
		return fmt.Errorf("failed to create test file: %w", err)
	}
	return nil
}
