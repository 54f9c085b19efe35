package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aundre1/incentedge/internal/config"
	"github.com/aundre1/incentedge/internal/engine"
	"github.com/aundre1/incentedge/internal/server"
	"github.com/aundre1/incentedge/pkg/constants"
	"github.com/aundre1/incentedge/pkg/output"
	"github.com/aundre1/incentedge/pkg/validation"
)

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	projectLocation := flag.String("project", "", "path to the project record file (YAML or JSON)")
	programsLocation := flag.String("programs", "", "path to the program catalog file (YAML or JSON)")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	serve := flag.Bool("serve", false, "run the JSON evaluation API instead of a one-shot evaluation")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	if *serve {
		handler := server.NewHandler(logger, conf.Server.MaxRequestSizeBytes, constants.EngineVersion)
		logger.Info("starting evaluation API",
			zap.String("op", "main"),
			zap.String("address", conf.Server.Address),
		)
		if err := http.ListenAndServe(conf.Server.Address, handler); err != nil {
			logger.Fatal("server stopped",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	if *projectLocation == "" || *programsLocation == "" {
		logger.Fatal("both -project and -programs are required for a one-shot evaluation",
			zap.String("op", "main"),
		)
	}

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	project, err := config.LoadProject(*projectLocation)
	if err != nil {
		logger.Fatal("failed to load project record",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	programs, err := config.LoadPrograms(*programsLocation)
	if err != nil {
		logger.Fatal("failed to load program catalog",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if err := validation.ValidateProject(project); err != nil {
		logger.Fatal("invalid project record",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	if err := validation.ValidatePrograms(programs); err != nil {
		logger.Fatal("invalid program record",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	for _, warning := range validation.ProgramWarnings(programs) {
		logger.Warn("program record warning: "+warning,
			zap.String("op", "main"),
		)
	}

	engineConfig, err := conf.Engine.ToEngineConfig()
	if err != nil {
		logger.Fatal("invalid engine settings",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	result := engine.EvaluateEligibility(logger, engine.Input{
		Project:  *project,
		Programs: programs,
		Config:   engineConfig,
	})

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(os.Stdout, result)
	case constants.OutputFormatCSV:
		output.CsvFormat(os.Stdout, result)
	case constants.OutputFormatJSON:
		if err := output.JSONFormat(os.Stdout, result); err != nil {
			logger.Fatal("failed to encode results",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}
}
