package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
	"tagrade.dev/pkg/tagrade/internal/adapter"
	"tagrade.dev/pkg/tagrade/internal/domain"
	m "tagrade.dev/pkg/tagrade/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "tagrade"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	pathFlagName    = "path"
	sectionFlagName = "section"
	projectFlagName = "project"
	editorFlagName  = "editor"
	verboseFlagName = "verbose"
	logFileFlagName = "log-file"
	formatFlagName  = "format"

	pathConfigKey             = "path"
	sectionConfigKey          = "section"
	projectConfigKey          = "project"
	editorConfigKey           = "editor"
	sourceExtConfigKey        = "grade.source_ext"
	discoverParallelConfigKey = "discover.parallel"

	defaultHandinRoot       = "/user/cse231/Handin"
	defaultSection          = 0
	defaultProject          = 0
	defaultEditor           = adapter.DefaultEditor
	defaultSourceExt        = domain.DefaultSourceExt
	defaultDiscoverParallel = domain.DefaultDiscoverParallel

	envPrefix = "TAGRADE"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".tagrade.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(pathConfigKey, defaultHandinRoot)
	viper.SetDefault(sectionConfigKey, defaultSection)
	viper.SetDefault(projectConfigKey, defaultProject)
	viper.SetDefault(editorConfigKey, defaultEditor)
	viper.SetDefault(sourceExtConfigKey, defaultSourceExt)
	viper.SetDefault(discoverParallelConfigKey, defaultDiscoverParallel)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

// loadConfig resolves the grading configuration from viper. Positional args,
// when given, are the section and then the project number and win over
// flags and config.
func loadConfig(args []string) (m.Config, error) {
	cfg := m.Config{
		HandinRoot: m.Path(viper.GetString(pathConfigKey)),
		Section:    viper.GetInt(sectionConfigKey),
		Project:    viper.GetInt(projectConfigKey),
		Editor:     viper.GetString(editorConfigKey),
		SourceExt:  viper.GetString(sourceExtConfigKey),
		Parallel:   viper.GetInt(discoverParallelConfigKey),
	}

	if len(args) > 0 {
		section, err := parsePositiveInt(sectionFlagName, args[0])
		if err != nil {
			return m.Config{}, err
		}

		cfg.Section = section
	}

	if len(args) > 1 {
		project, err := parsePositiveInt(projectFlagName, args[1])
		if err != nil {
			return m.Config{}, err
		}

		cfg.Project = project
	}

	if cfg.Section <= 0 {
		return m.Config{}, errors.New("a section number is required (--section, TAGRADE_SECTION or section in " + configFileName + ")")
	}

	if cfg.Project < 0 {
		return m.Config{}, fmt.Errorf("invalid project number %d", cfg.Project)
	}

	if strings.TrimSpace(string(cfg.HandinRoot)) == "" {
		cfg.HandinRoot = defaultHandinRoot
	}

	if strings.TrimSpace(cfg.Editor) == "" {
		cfg.Editor = defaultEditor
	}

	return cfg, nil
}

func parsePositiveInt(name, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive number, got %q", name, value)
	}

	return n, nil
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
