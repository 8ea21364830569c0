package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"codepub.dev/pkg/codepub/internal/adapter"
	"codepub.dev/pkg/codepub/internal/highlight"
	m "codepub.dev/pkg/codepub/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "codepub"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	outputFlagName   = "output"
	excludeFlagName  = "exclude"
	verboseFlagName  = "verbose"
	logFileFlagName  = "log-file"
	titleFlagName    = "title"
	subtitleFlagName = "subtitle"
	authorFlagName   = "author"
	noPDFFlagName    = "no-pdf"
	formatFlagName   = "format"

	excludeConfigKey  = "paths.exclude"
	titleConfigKey    = "document.title"
	subtitleConfigKey = "document.subtitle"
	authorConfigKey   = "document.author"
	pdfConfigKey      = "publish.pdf"
	diagramToolKey    = "tools.diagram"
	compilerToolKey   = "tools.compiler"
	toolTimeoutKey    = "tools.timeout"
	highlightStyleKey = "highlight.style"
	extensionsKey     = "extensions"

	defaultTitle    = "Assignment"
	defaultSubtitle = ""
	defaultAuthor   = ""
	defaultPDF      = true

	envPrefix = "CODEPUB"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".codepub.log"
	defaultLogLevel      = "info"
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	// Values from .env feed AutomaticEnv below; a missing file is fine.
	_ = godotenv.Load()

	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	setConfigDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

func setConfigDefaults() {
	profile := m.DefaultProfile()

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(outputFlagName, m.DefaultOutputDir)
	viper.SetDefault(excludeConfigKey, []string{})

	viper.SetDefault(titleConfigKey, defaultTitle)
	viper.SetDefault(subtitleConfigKey, defaultSubtitle)
	viper.SetDefault(authorConfigKey, defaultAuthor)
	viper.SetDefault(pdfConfigKey, defaultPDF)

	viper.SetDefault(diagramToolKey, adapter.DefaultDiagramCommand)
	viper.SetDefault(compilerToolKey, adapter.DefaultCompilerCommand)
	viper.SetDefault(toolTimeoutKey, int64(adapter.DefaultToolTimeout.Seconds()))
	viper.SetDefault(highlightStyleKey, highlight.DefaultStyle)

	for _, kind := range m.FileKinds {
		viper.SetDefault(extensionKey(kind), profile.Extensions[kind])
	}

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)
}

func extensionKey(kind m.Kind) string {
	return extensionsKey + "." + kind.String()
}

// profileFromConfig builds the classification profile from the defaults,
// then applies extension overrides and the extra exclude names.
func profileFromConfig() m.Profile {
	profile := m.DefaultProfile()

	for _, kind := range m.FileKinds {
		if exts := viper.GetStringSlice(extensionKey(kind)); len(exts) > 0 {
			profile.Extensions[kind] = exts
		}
	}

	for _, name := range viper.GetStringSlice(excludeConfigKey) {
		if name = strings.TrimSpace(name); name != "" {
			profile.Skip = append(profile.Skip, name)
		}
	}

	return profile
}

func toolTimeout() time.Duration {
	seconds := viper.GetInt64(toolTimeoutKey)
	if seconds <= 0 {
		return adapter.DefaultToolTimeout
	}

	return time.Duration(seconds) * time.Second
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

	// Numeric slog levels, e.g. -4 for debug.
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger installs the rotating file logger as the slog default.
// It logs at the configured level, or at Debug when verbose is set.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose || viper.GetBool(logVerboseKey) {
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
