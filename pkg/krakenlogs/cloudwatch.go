package krakenlogs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	cwl "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	cwlTypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CloudWatchAPI is the subset of the CloudWatch Logs client the logger uses
type CloudWatchAPI interface {
    CreateLogGroup(ctx context.Context, params *cwl.CreateLogGroupInput,
                   optFns ...func(*cwl.Options)) (*cwl.CreateLogGroupOutput, error)
    CreateLogStream(ctx context.Context, params *cwl.CreateLogStreamInput,
                    optFns ...func(*cwl.Options)) (*cwl.CreateLogStreamOutput, error)
    PutLogEvents(ctx context.Context, params *cwl.PutLogEventsInput,
                 optFns ...func(*cwl.Options)) (*cwl.PutLogEventsOutput, error)
}

// CloudWatchLogger implements Logger interface for CloudWatch
type CloudWatchLogger struct {
    client    CloudWatchAPI
    cwMutex   sync.Mutex
    logGroup  string
    logStream string
    timeout   time.Duration
}

// Creates and returns CloudWatch logger instance with a log stream named
// after the local host and start time.
//
// @Parameters
// - ctx:  The context handler for the group and stream setup
// - awsConfig:  The AWS configuration config struct
// - group:  The CloudWatch logging group
//
// @Returns
// - The initialized CloudWatch logger instance
// - Error if it occurs, otherwise nil on success
//
func NewCloudWatchLogger(ctx context.Context, awsConfig aws.Config, group string) (
                         Logger, error) {
    hostname, err := os.Hostname()
    if err != nil {
        return nil, fmt.Errorf("cannot determine host identity: %w", err)
    }

    stream := fmt.Sprintf("%s-%s", hostname, time.Now().UTC().Format("20060102T150405Z"))

    logger, err := NewCloudWatchLoggerWithClient(ctx, cwl.NewFromConfig(awsConfig), group, stream)
    if err != nil {
        return nil, err
    }

    return logger, nil
}

// Creates the log group (if missing) and stream through the passed in client.
//
// @Parameters
// - ctx:  The context handler for the group and stream setup
// - client:  The CloudWatch Logs client
// - group:  The CloudWatch logging group
// - stream:  The CloudWatch logging stream
//
// @Returns
// - The initialized CloudWatch logger instance
// - Error if it occurs, otherwise nil on success
//
func NewCloudWatchLoggerWithClient(ctx context.Context, client CloudWatchAPI,
                                   group string, stream string) (*CloudWatchLogger, error) {
    // Create the CloudWatch log group
    _, err := client.CreateLogGroup(ctx, &cwl.CreateLogGroupInput{
        LogGroupName: aws.String(group),
    })
    if err != nil {
        var ae *cwlTypes.ResourceAlreadyExistsException

        // If the error is not having to do with group already existing
        if !errors.As(err, &ae) {
            return nil, fmt.Errorf("CreateLogGroup: %w", err)
        }
    }

    // Create the CloudWatch log stream
    _, err = client.CreateLogStream(ctx, &cwl.CreateLogStreamInput{
        LogGroupName:  aws.String(group),
        LogStreamName: aws.String(stream),
    })
    if err != nil {
        return nil, fmt.Errorf("CreateLogStream: %w", err)
    }

    return &CloudWatchLogger{
        client:    client,
        logGroup:  group,
        logStream: stream,
        timeout:   10 * time.Second,
    }, nil
}

// Method that packages message & fields and sends them to CloudWatch.
// Upload failures are reported on stderr, never fatal.
//
// @Parameters
// - level:  The level that the log event will be set to
// - msg:  The message of log event
// - fields:  Any additional zap field to be added to log entry
//
func (cloudWatchLog *CloudWatchLogger) log(level string, msg string, fields ...zap.Field) {
    now := time.Now()

    // Encode the fields with zap so they keep their native types
    encoder := zapcore.NewMapObjectEncoder()
    for _, field := range fields {
        field.AddTo(encoder)
    }

    entry := map[string]any{
        "timestamp": now.UTC().Format(time.RFC3339Nano),
        "level":     level,
        "message":   msg,
    }

    // Add fields in log entry map
    for key, value := range encoder.Fields {
        entry[key] = value
    }

    // Format the data into JSON for transporting to CloudWatch
    payload, err := json.Marshal(entry)
    if err != nil {
        fmt.Fprintf(os.Stderr, "CloudWatch: marshal log entry: %v\n", err)
        return
    }

    // Set mutex for logging operation
    cloudWatchLog.cwMutex.Lock()
    defer cloudWatchLog.cwMutex.Unlock()

    ctx, cancel := context.WithTimeout(context.Background(), cloudWatchLog.timeout)
    defer cancel()

    // Upload log entry via the log stream
    _, err = cloudWatchLog.client.PutLogEvents(ctx, &cwl.PutLogEventsInput{
        LogGroupName:  aws.String(cloudWatchLog.logGroup),
        LogStreamName: aws.String(cloudWatchLog.logStream),
        LogEvents: []cwlTypes.InputLogEvent{{
            Message:   aws.String(string(payload)),
            Timestamp: aws.Int64(now.UnixMilli()),
        }},
    })
    if err != nil {
        fmt.Fprintf(os.Stderr, "CloudWatch: PutLogEvents: %v\n", err)
    }
}

// Current dummy handler to follow interface contract (zap only)
func (cloudWatchLog *CloudWatchLogger) GetMemoryLog() string {
    return ""
}

// Logs a debug message to CloudWatch
func (cloudWatchLog *CloudWatchLogger) Debug(msg string, fields ...zap.Field) {
    cloudWatchLog.log("DEBUG", msg, fields...)
}

// Logs a info message to CloudWatch
func (cloudWatchLog *CloudWatchLogger) Info(msg string, fields ...zap.Field) {
    cloudWatchLog.log("INFO", msg, fields...)
}

// Logs a warn message to CloudWatch
func (cloudWatchLog *CloudWatchLogger) Warn(msg string, fields ...zap.Field) {
    cloudWatchLog.log("WARN", msg, fields...)
}

// Logs a error message to CloudWatch
func (cloudWatchLog *CloudWatchLogger) Error(msg string, fields ...zap.Field) {
    cloudWatchLog.log("ERROR", msg, fields...)
}

// Logs a fatal message to CloudWatch, exiting is left to the manager
func (cloudWatchLog *CloudWatchLogger) Fatal(msg string, fields ...zap.Field) {
    cloudWatchLog.log("FATAL", msg, fields...)
}

// Events are sent synchronously so there is nothing to flush
func (cloudWatchLog *CloudWatchLogger) Sync() error {
    return nil
}
