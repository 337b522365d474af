package telemetry

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/robalyx/collegemsg/internal/setup/config"
	"github.com/robalyx/collegemsg/internal/setup/telemetry/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// sessionLayout names session directories after their start time.
const sessionLayout = "2006-01-02_15-04-05"

// Manager handles the creation and management of log files and directories.
// Every run logs into its own timestamped session directory.
type Manager struct {
	runID             string      // Unique identifier for this run
	currentSessionDir string      // Path to the current session's log directory
	logDir            string      // Base directory for all logs
	level             string      // Logging level (debug, info, warn, error)
	maxLogsToKeep     int         // Maximum number of log sessions to retain
	maxLogLines       int         // Maximum number of lines to keep in each log file
	console           io.Writer   // Optional console mirror, nil for files only
	closers           []io.Closer // Log files opened by this manager
}

// NewManager creates a new Manager instance.
func NewManager(logDir, runID string, debugCfg *config.Debug) *Manager {
	return &Manager{
		runID:         runID,
		logDir:        logDir,
		level:         debugCfg.LogLevel,
		maxLogsToKeep: debugCfg.MaxLogsToKeep,
		maxLogLines:   debugCfg.MaxLogLines,
	}
}

// WithConsole mirrors every log entry to w.
func (lm *Manager) WithConsole(w io.Writer) *Manager {
	lm.console = w
	return lm
}

// GetLogger sets up a new session directory and returns the main logger.
func (lm *Manager) GetLogger() (*zap.Logger, error) {
	if err := lm.setupLogDirectories(); err != nil {
		return nil, err
	}

	mainLogger, err := lm.initLogger(filepath.Join(lm.currentSessionDir, "main.log"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize main logger: %w", err)
	}

	return mainLogger.With(zap.String("run_id", lm.runID)), nil
}

// GetCurrentSessionDir returns the current session directory.
func (lm *Manager) GetCurrentSessionDir() string {
	return lm.currentSessionDir
}

// GetRunID returns the unique identifier of this run.
func (lm *Manager) GetRunID() string {
	return lm.runID
}

// Stop closes every log file opened by the manager.
func (lm *Manager) Stop() error {
	var errs []error
	for _, c := range lm.closers {
		errs = append(errs, c.Close())
	}

	lm.closers = nil

	return errors.Join(errs...)
}

// setupLogDirectories creates and manages the log directory structure.
// It ensures the base directory exists, rotates old logs, and creates a new session directory.
func (lm *Manager) setupLogDirectories() error {
	// Ensure base log directory exists
	if err := os.MkdirAll(lm.logDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	// Clean up old log sessions
	if err := lm.rotateLogSessions(); err != nil {
		return fmt.Errorf("failed to rotate log sessions: %w", err)
	}

	// Runs started within the same second share the session directory
	lm.currentSessionDir = filepath.Join(lm.logDir, time.Now().Format(sessionLayout))
	if err := os.MkdirAll(lm.currentSessionDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	return nil
}

// initLogger creates a new zap logger writing to path and the console mirror.
func (lm *Manager) initLogger(path string) (*zap.Logger, error) {
	zapLevel, err := zapcore.ParseLevel(lm.level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	rotator, err := logger.Open(path, lm.maxLogLines)
	if err != nil {
		return nil, err
	}

	lm.closers = append(lm.closers, rotator)

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), rotator, zapLevel),
	}

	if lm.console != nil {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.Lock(zapcore.AddSync(struct{ io.Writer }{lm.console})),
			zapLevel,
		))
	}

	return zap.New(
		zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	), nil
}

// rotateLogSessions maintains the log directory by removing old sessions.
// Keeps the most recent maxLogsToKeep-1 so the new session fits the limit.
func (lm *Manager) rotateLogSessions() error {
	if lm.maxLogsToKeep <= 0 {
		return nil
	}

	sessions, err := filepath.Glob(filepath.Join(lm.logDir, "*"))
	if err != nil {
		return err
	}

	keep := lm.maxLogsToKeep - 1
	if len(sessions) <= keep {
		return nil
	}

	// Sort sessions by modification time (oldest first)
	sort.Slice(sessions, func(i, j int) bool {
		iInfo, _ := os.Stat(sessions[i])
		jInfo, _ := os.Stat(sessions[j])

		return iInfo.ModTime().Before(jInfo.ModTime())
	})

	for _, session := range sessions[:len(sessions)-keep] {
		if err := os.RemoveAll(session); err != nil {
			return err
		}
	}

	return nil
}
