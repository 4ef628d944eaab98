package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "spm"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	modelFlagName      = "model"
	baseURLFlagName    = "base-url"
	verboseFlagName    = "verbose"
	outputFlagName     = "output"
	maxInsertsFlagName = "max-inserts"
	parallelFlagName   = "parallel"
	seedFlagName       = "seed"
	supplyFileFlagName = "supply-file"
	matchedFlagName    = "matched"
	csvFlagName        = "csv"
	toleranceFlagName  = "tolerance"
	countFlagName      = "count"

	modelConfigKey      = "llm.model"
	baseURLConfigKey    = "llm.base_url"
	outputConfigKey     = "mutate.output"
	maxInsertsConfigKey = "mutate.max_inserts"
	parallelConfigKey   = "mutate.parallel"
	seedConfigKey       = "mutate.seed"
	supplyFileConfigKey = "mutate.supply_file"
	csvConfigKey        = "evaluate.csv"
	toleranceConfigKey  = "evaluate.tolerance"

	defaultModel      = "qwen2.5-coder"
	defaultBaseURL    = "http://localhost:11434"
	defaultOutputDir  = "mutated"
	defaultMaxInserts = 3
	defaultParallel   = 1
	defaultSeed       = "seedlab-vt"
	defaultCSVPath    = "results.csv"
	defaultTolerance  = 2

	envPrefix = "SPM"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".spm.log"
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
	viper.SetDefault(modelConfigKey, defaultModel)
	viper.SetDefault(baseURLConfigKey, defaultBaseURL)
	viper.SetDefault(outputConfigKey, defaultOutputDir)
	viper.SetDefault(maxInsertsConfigKey, defaultMaxInserts)
	viper.SetDefault(parallelConfigKey, defaultParallel)
	viper.SetDefault(seedConfigKey, defaultSeed)
	viper.SetDefault(supplyFileConfigKey, "")
	viper.SetDefault(csvConfigKey, defaultCSVPath)
	viper.SetDefault(toleranceConfigKey, defaultTolerance)

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
