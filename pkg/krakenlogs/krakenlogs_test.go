package krakenlogs_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	cwl "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	cwlTypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/ngimb64/Kolor-Kraken/pkg/krakenlogs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Records CloudWatch calls in place of the AWS client
type fakeCloudWatch struct {
    mutex      sync.Mutex
    groupErr   error
    streamErr  error
    groups     []string
    streams    []string
    messages   []string
}

func (fake *fakeCloudWatch) CreateLogGroup(ctx context.Context, params *cwl.CreateLogGroupInput,
                                           optFns ...func(*cwl.Options)) (*cwl.CreateLogGroupOutput, error) {
    fake.groups = append(fake.groups, aws.ToString(params.LogGroupName))
    return &cwl.CreateLogGroupOutput{}, fake.groupErr
}

func (fake *fakeCloudWatch) CreateLogStream(ctx context.Context, params *cwl.CreateLogStreamInput,
                                            optFns ...func(*cwl.Options)) (*cwl.CreateLogStreamOutput, error) {
    fake.streams = append(fake.streams, aws.ToString(params.LogStreamName))
    return &cwl.CreateLogStreamOutput{}, fake.streamErr
}

func (fake *fakeCloudWatch) PutLogEvents(ctx context.Context, params *cwl.PutLogEventsInput,
                                         optFns ...func(*cwl.Options)) (*cwl.PutLogEventsOutput, error) {
    fake.mutex.Lock()
    defer fake.mutex.Unlock()

    for _, event := range params.LogEvents {
        fake.messages = append(fake.messages, aws.ToString(event.Message))
    }
    return &cwl.PutLogEventsOutput{}, nil
}


func TestLogToMap(t *testing.T) {
    // Make reusable assert instance
    assert := assert.New(t)

    testJsonStr := "{\"key1\":\"value1\",\"key2\":\"value2\"," +
                   "\"key3\":\"value3\",\"key4\":\"value4\"}"
    jsonMap, err := krakenlogs.LogToMap(testJsonStr)
    // Ensure the error is nil meaning successful operation
    assert.Equal(nil, err)

    for counter := 1; counter <= 4; counter++ {
        // Compared the formatted value to the return value of
        // the map based on the key used to access the value
        assert.Equal(fmt.Sprintf("%s%d", "value", counter),
                     jsonMap[fmt.Sprintf("%s%d", "key", counter)])
    }

    _, err = krakenlogs.LogToMap("not json")
    assert.NotEqual(nil, err)
}


func TestLogMessage(t *testing.T) {
    // Make reusable assert instance
    assert := assert.New(t)

    // Initialize the LoggerManager with memory logging
    logMan, err := krakenlogs.NewLoggerManager(context.Background(), "local", "",
                                               aws.Config{}, "", true)
    require.NoError(t, err)

    logMan.LogMessage("info", "Detected %s at distance %d", "Black", 30,
                      zap.String("source", "rgb"), zap.Int("red", 10))

    lines := strings.Split(strings.TrimSpace(logMan.GetLog()), "\n")
    // Ensure a single entry was written
    require.Equal(t, 1, len(lines))

    logMap, err := krakenlogs.LogToMap(lines[0])
    assert.Equal(nil, err)
    // Ensure the printf args were formatted into the message
    assert.Equal("Detected Black at distance 30", logMap["msg"])
    assert.Equal("info", logMap["level"])
    // Ensure the zap fields were kept as structured fields
    assert.Equal("rgb", logMap["source"])
    assert.Equal(float64(10), logMap["red"])
}


func TestLogMessageUnknownLevel(t *testing.T) {
    logMan, err := krakenlogs.NewLoggerManager(context.Background(), "local", "",
                                               aws.Config{}, "", true)
    require.NoError(t, err)

    logMan.LogMessage("verbose", "palette loaded")

    logMap, err := krakenlogs.LogToMap(strings.TrimSpace(logMan.GetLog()))
    require.NoError(t, err)
    // Ensure unknown levels are downgraded to an error entry
    assert.Equal(t, "error", logMap["level"])
    assert.Contains(t, logMap["msg"], "palette loaded")
}


func TestNewLoggerManagerFile(t *testing.T) {
    // Make reusable assert instance
    assert := assert.New(t)

    logFile := filepath.Join(t.TempDir(), "KolorKraken.log")
    logMan, err := krakenlogs.NewLoggerManager(context.Background(), "local", logFile,
                                               aws.Config{}, "", false)
    require.NoError(t, err)

    logMan.LogInfo("file logging test", zap.String("key1", "value1"))
    // Sync errors from stdout are platform dependent and ignored here
    _ = logMan.Sync()

    // Ensure the entry reached the log file
    contents, err := os.ReadFile(logFile)
    assert.Equal(nil, err)
    assert.Contains(string(contents), "file logging test")
    // File loggers keep nothing in memory
    assert.Equal("", logMan.GetLog())

    _, err = krakenlogs.NewLoggerManager(context.Background(), "syslog", logFile,
                                         aws.Config{}, "", false)
    assert.NotEqual(nil, err)
}


func TestCloudWatchLogger(t *testing.T) {
    // Make reusable assert instance
    assert := assert.New(t)
    fake := &fakeCloudWatch{
        groupErr: &cwlTypes.ResourceAlreadyExistsException{},
    }

    // Ensure an existing group is not treated as a failure
    logger, err := krakenlogs.NewCloudWatchLoggerWithClient(context.Background(), fake,
                                                            "Kolor-Kraken", "test-stream")
    require.NoError(t, err)
    assert.Equal([]string{"Kolor-Kraken"}, fake.groups)
    assert.Equal([]string{"test-stream"}, fake.streams)

    logMan := &krakenlogs.LoggerManager{CloudLogger: logger}
    logMan.LogMessage("warn", "Query rejected", zap.Int("x", 500))

    require.Equal(t, 1, len(fake.messages))
    logMap, err := krakenlogs.LogToMap(fake.messages[0])
    assert.Equal(nil, err)
    assert.Equal("WARN", logMap["level"])
    assert.Equal("Query rejected", logMap["message"])
    assert.Equal(float64(500), logMap["x"])
    assert.Equal(nil, logMan.Sync())
}


func TestCloudWatchLoggerSetupError(t *testing.T) {
    fake := &fakeCloudWatch{streamErr: errors.New("access denied")}

    _, err := krakenlogs.NewCloudWatchLoggerWithClient(context.Background(), fake,
                                                       "Kolor-Kraken", "test-stream")
    // Ensure the stream failure is surfaced
    assert.ErrorContains(t, err, "CreateLogStream")
}
