package setup

import (
	"io"
	"log"

	"github.com/google/uuid"
	"github.com/robalyx/collegemsg/internal/setup/config"
	"github.com/robalyx/collegemsg/internal/setup/telemetry"
	"go.uber.org/zap"
)

// App bundles the configuration and logging every command needs.
type App struct {
	Config     *config.Config     // Application configuration
	ConfigPath string             // Config file in use, empty for defaults
	RunID      string             // Unique identifier of this run
	Logger     *zap.Logger        // Main application logger
	LogManager *telemetry.Manager // Log management system
}

// InitializeApp loads the configuration and starts the logging session.
// An empty logDir uses the configured one; a nil console logs to files only.
func InitializeApp(configPath, logDir string, console io.Writer) (*App, error) {
	// Load app configuration
	cfg, usedPath, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if logDir == "" {
		logDir = cfg.Export.LogDir
	}

	if logDir == "" {
		logDir = config.Default().Export.LogDir
	}

	runID := uuid.New().String()

	logManager := telemetry.NewManager(logDir, runID, &cfg.Debug)
	if console != nil {
		logManager.WithConsole(console)
	}

	logger, err := logManager.GetLogger()
	if err != nil {
		return nil, err
	}

	if usedPath == "" {
		logger.Debug("No config file found, using defaults")
	} else {
		logger.Debug("Loaded config", zap.String("path", usedPath))
	}

	return &App{
		Config:     cfg,
		ConfigPath: usedPath,
		RunID:      runID,
		Logger:     logger,
		LogManager: logManager,
	}, nil
}

// Cleanup flushes and closes the log files.
// Logs but does not fail on cleanup errors.
func (s *App) Cleanup() {
	// Sync buffered logs before shutdown
	if err := s.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	if err := s.LogManager.Stop(); err != nil {
		log.Printf("Failed to close log files: %v", err)
	}
}
