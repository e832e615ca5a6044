package krakenlogs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger interface defines logging methods
type Logger interface {
    GetMemoryLog() string
    Debug(msg string, fields ...zap.Field)
    Info(msg string, fields ...zap.Field)
    Warn(msg string, fields ...zap.Field)
    Error(msg string, fields ...zap.Field)
    Fatal(msg string, fields ...zap.Field)
    Sync() error
}

// LoggerManager manages multiple loggers (local, CloudWatch)
type LoggerManager struct {
    LocalLogger Logger
    CloudLogger Logger
}

// NewLoggerManager initializes local and CloudWatch loggers based on the log mode.
//
// @Parameters
// - ctx:  The context handler for CloudWatch group and stream setup
// - logMode:  Where the logs will be stored (local, cloudwatch, both)
// - localLogFile:  Path where the logs will be stored locally on file
// - awsConfig:  The initialized AWS configuration instance
// - group:  The CloudWatch logging group
// - logToMemory:  Boolean toggler whether to log to memory instead of file
//
// @Returns
// - The initialzed logging manager
// - Error if it occurs, otherwise nil on success
//
func NewLoggerManager(ctx context.Context, logMode string, localLogFile string,
                      awsConfig aws.Config, group string, logToMemory bool) (
                      *LoggerManager, error) {
    var localLogger Logger
    var cloudLogger Logger
    var err error

    // Initialize file-based local logger with optional memory logging
    if logMode == "local" || logMode == "both" {
        localLogger, err = NewZapLogger(localLogFile, logToMemory)
        if err != nil {
            return nil, err
        }
    }

    // Initialize CloudWatch logger if needed
    if logMode == "cloudwatch" || logMode == "both" {
        cloudLogger, err = NewCloudWatchLogger(ctx, awsConfig, group)
        if err != nil {
            return nil, err
        }
    }

    // If the mode matched neither logger
    if localLogger == nil && cloudLogger == nil {
        return nil, fmt.Errorf("unknown log mode %q", logMode)
    }

    return &LoggerManager{
        LocalLogger: localLogger,
        CloudLogger: cloudLogger,
    }, nil
}

// Gets the in-memory log from the local logger, empty when logging to file.
func (logMan *LoggerManager) GetLog() string {
    if logMan.LocalLogger == nil {
        return ""
    }
    return logMan.LocalLogger.GetMemoryLog()
}

// Parses the variable length args based on data type into different lists.
//
// @Parameters
// - level:  The level of logging
// - message:  The message to be logged, supports printf format with below args
// - args:  Variadic length list of args with zap.Fields and regular data types
//          supporting printf format
//
func (logMan *LoggerManager) LogMessage(level string, message string, args ...any) {
    argList := []any{}
    zapFields := []zap.Field{}
    formattedMessage := message

    // Iterate through passed in arg list
    for _, arg := range args {
        // Case logic based on arg data type
        switch argType := arg.(type) {
        // If the arg type is a zap field, add it to the zap field list
        case zap.Field:
            zapFields = append(zapFields, argType)
        // For other arg types, add it to the arg list
        default:
            argList = append(argList, argType)
        }
    }

    // If there are any non-zap args to format into the message
    if len(argList) > 0 {
        formattedMessage = fmt.Sprintf(message, argList...)
    }

    // Log based on the level and include the fields
    switch level {
    case "debug":
        logMan.LogDebug(formattedMessage, zapFields...)
    case "info":
        logMan.LogInfo(formattedMessage, zapFields...)
    case "warn":
        logMan.LogWarn(formattedMessage, zapFields...)
    case "error":
        logMan.LogError(formattedMessage, zapFields...)
    case "fatal":
        logMan.LogFatal(formattedMessage, zapFields...)
    default:
        logMan.LogError("unknown logging level " + level + ": " + formattedMessage,
                        zapFields...)
    }
}

// Logs debug message using both local and CloudWatch loggers
func (logMan *LoggerManager) LogDebug(msg string, fields ...zap.Field) {
    logMan.each(func(logger Logger) { logger.Debug(msg, fields...) })
}

// Logs info message using both local and CloudWatch loggers
func (logMan *LoggerManager) LogInfo(msg string, fields ...zap.Field) {
    logMan.each(func(logger Logger) { logger.Info(msg, fields...) })
}

// Logs warning message using both local and CloudWatch loggers
func (logMan *LoggerManager) LogWarn(msg string, fields ...zap.Field) {
    logMan.each(func(logger Logger) { logger.Warn(msg, fields...) })
}

// Logs error message using both local and CloudWatch loggers
func (logMan *LoggerManager) LogError(msg string, fields ...zap.Field) {
    logMan.each(func(logger Logger) { logger.Error(msg, fields...) })
}

// Logs fatal message using both local and CloudWatch loggers then exits.
// CloudWatch is written first since the zap fatal call does not return.
func (logMan *LoggerManager) LogFatal(msg string, fields ...zap.Field) {
    if logMan.CloudLogger != nil {
        logMan.CloudLogger.Fatal(msg, fields...)

        // If only CloudWatch logging is active
        if logMan.LocalLogger == nil {
            os.Exit(1)
        }
    }

    if logMan.LocalLogger != nil {
        logMan.LocalLogger.Fatal(msg, fields...)
    }
}

// Flushes any buffered entries of the active loggers
func (logMan *LoggerManager) Sync() error {
    var errs []string

    logMan.each(func(logger Logger) {
        if err := logger.Sync(); err != nil {
            errs = append(errs, err.Error())
        }
    })

    if len(errs) > 0 {
        return fmt.Errorf("error syncing loggers: %s", strings.Join(errs, "; "))
    }
    return nil
}

// Runs the passed in function against each active logger
func (logMan *LoggerManager) each(function func(Logger)) {
    if logMan.LocalLogger != nil {
        function(logMan.LocalLogger)
    }

    if logMan.CloudLogger != nil {
        function(logMan.CloudLogger)
    }
}


// ZapLogger implements Logger interface using file
// and optional memory logging
type ZapLogger struct {
    logger       *zap.Logger
    memoryBuffer *lockedBuffer
}

// Buffer safe for the concurrent writes zap may issue
type lockedBuffer struct {
    mutex  sync.Mutex
    buffer bytes.Buffer
}

func (lb *lockedBuffer) Write(data []byte) (int, error) {
    lb.mutex.Lock()
    defer lb.mutex.Unlock()
    return lb.buffer.Write(data)
}

func (lb *lockedBuffer) String() string {
    lb.mutex.Lock()
    defer lb.mutex.Unlock()
    return lb.buffer.String()
}

// NewZapLogger creates a zap logger instance with either file or memory logging.
//
// @Parameters
// - logFile:  The path for the output log file
// - logToMemory:  Boolean toggle to specify whether to log to memory or not
//
// @Returns
// - Initialzed zap logging instance
// - Error if it occurs, otherwise nil on success
//
func NewZapLogger(logFile string, logToMemory bool) (Logger, error) {
    // If logging to memory
    if logToMemory {
        // Create a buffer to capture logs in memory
        memoryBuffer := new(lockedBuffer)

        // Use zapcore directly for logging to memory
        core := zapcore.NewCore(
            zapcore.NewJSONEncoder(zap.NewProductionConfig().EncoderConfig),
            zapcore.AddSync(memoryBuffer),
            zap.DebugLevel,
        )

        return &ZapLogger{
            logger:       zap.New(core),
            memoryBuffer: memoryBuffer,
        }, nil
    }

    // Otherwise log to stdout and the log file
    cfg := zap.NewProductionConfig()
    cfg.OutputPaths = []string{"stdout", logFile}
    cfg.ErrorOutputPaths = []string{"stderr", logFile}

    // Build the file-based logger
    logger, err := cfg.Build()
    if err != nil {
        return nil, fmt.Errorf("could not create file logger: %w", err)
    }

    return &ZapLogger{logger: logger}, nil
}

// Gets the zap log from the memory buffer, empty when logging to file.
func (zapLog *ZapLogger) GetMemoryLog() string {
    if zapLog.memoryBuffer != nil {
        return zapLog.memoryBuffer.String()
    }
    return ""
}

// Logs a debug message to zap logger
func (zapLog *ZapLogger) Debug(msg string, fields ...zap.Field) {
    zapLog.logger.Debug(msg, fields...)
}

// Logs a info message to zap logger
func (zapLog *ZapLogger) Info(msg string, fields ...zap.Field) {
    zapLog.logger.Info(msg, fields...)
}

// Logs a warning message to zap logger
func (zapLog *ZapLogger) Warn(msg string, fields ...zap.Field) {
    zapLog.logger.Warn(msg, fields...)
}

// Logs a error message to zap logger
func (zapLog *ZapLogger) Error(msg string, fields ...zap.Field) {
    zapLog.logger.Error(msg, fields...)
}

// Logs a fatal message to zap logger
func (zapLog *ZapLogger) Fatal(msg string, fields ...zap.Field) {
    zapLog.logger.Fatal(msg, fields...)
}

// Flushes buffered zap entries
func (zapLog *ZapLogger) Sync() error {
    return zapLog.logger.Sync()
}


// Takes the passed in JSON formatted string and maps into a map via unmarshal.
//
// @Parameters
// - jsonStr:  The JSON string to unmarshal into map
//
// @Returns
// - The map with unmarshaled JSON data
// - Error if it occurs, otherwise nil on success
//
func LogToMap(jsonStr string) (map[string]any, error) {
    var logMap map[string]any

    // Store the json string data as key-values in log map
    err := json.Unmarshal([]byte(jsonStr), &logMap)
    if err != nil {
        return nil, fmt.Errorf("failed to unmarshal JSON log: %w", err)
    }

    return logMap, nil
}
