package commands

import (
	"fmt"

	"github.com/servercurio/fabric-sub000/internal/app"
	"github.com/servercurio/fabric-sub000/internal/pkg/config"
	"github.com/servercurio/fabric-sub000/internal/pkg/logger"
)

func setupLogger() (logger.Logger, error) {
	settings := &config.LoggerSettings{
		LogLevel: "info",
		LogType:  "console",
		FilePath: "",
	}

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// setupFacade wires a cryptography façade with default settings for CLI use.
func setupFacade() (*app.Cryptography, logger.Logger, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	settings := &config.FacadeSettings{
		Workers:        config.DefaultWorkers,
		Contexts:       config.DefaultContexts,
		ReseedInterval: config.DefaultReseedInterval,
		Logger: config.LoggerSettings{
			LogLevel: config.LogLevelInfo,
			LogType:  config.LogTypeConsole,
		},
	}

	facade, err := app.NewCryptography(settings, loggerInstance)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create cryptography facade: %w", err)
	}

	return facade, loggerInstance, nil
}
