// This file re-exports configuration types and functions from the config
// package so callers can configure the library from one import.
package chatbotlibrary

import (
	"github.com/voidfemme/chatbot-library/config"
	"github.com/voidfemme/chatbot-library/utils"
)

type (
	// Config is the library-wide configuration, loadable from the
	// environment. See config.Config for the variable names.
	Config = config.Config

	// ConfigOption modifies a Config instance.
	ConfigOption = config.ConfigOption

	// LogLevel controls logging verbosity, LogLevelOff through
	// LogLevelDebug.
	LogLevel = utils.LogLevel

	// Logger is the logging interface used across the library.
	Logger = utils.Logger
)

// Log levels.
const (
	LogLevelOff   = utils.LogLevelOff
	LogLevelError = utils.LogLevelError
	LogLevelWarn  = utils.LogLevelWarn
	LogLevelInfo  = utils.LogLevelInfo
	LogLevelDebug = utils.LogLevelDebug
)

var (
	// LoadConfig builds a Config from the environment.
	LoadConfig = config.LoadConfig

	// NewConfig returns a Config with library defaults.
	NewConfig = config.NewConfig

	// ApplyOptions applies ConfigOptions to a Config.
	ApplyOptions = config.ApplyOptions

	// Configuration setters.
	SetLogLevel            = config.SetLogLevel
	SetEnableTemplateCache = config.SetEnableTemplateCache
	SetMaxTemplateSize     = config.SetMaxTemplateSize
	SetDefaultCategory     = config.SetDefaultCategory
	SetTokenModel          = config.SetTokenModel

	// NewLogger creates the default slog-backed logger.
	NewLogger = utils.NewLogger
)
