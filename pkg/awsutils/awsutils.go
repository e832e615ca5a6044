package awsutils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/ngimb64/Kolor-Kraken/internal/globals"
	"github.com/ngimb64/Kolor-Kraken/pkg/palette"
)

// Largest palette object that will be read from S3
const MaxPaletteObjectSize = 8 * 1024 * 1024

// ErrObjectNotFound is returned when the palette bucket or key does not exist
var ErrObjectNotFound = errors.New("s3 object not found")

// S3GetObjectAPI is the subset of the S3 client used to fetch palettes
type S3GetObjectAPI interface {
    GetObject(ctx context.Context, params *s3.GetObjectInput,
              optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}


// Attempts to load the default credential chain (env, ~/.aws, etc.) for the
// region and retrieve credentials within the passed in time.
//
// @Parameters
// - region:  The AWS region where the API credentials are to be utilized
// - callTime:  The deadline for retrieving the credentials
//
// @Returns
// - The loaded AWS config
// - true/false depending on whether usable credentials were found
//
func AttemptLoadDefaultCredChain(region string, callTime time.Duration) (aws.Config, bool) {
    // Retrieve credentials with a deadline
    ctx, cancel := context.WithTimeout(context.Background(), callTime)
    defer cancel()

    awsConfig, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
    if err != nil {
        return awsConfig, false
    }

    // Retreive the credentials from the credentials provider
    _, err = awsConfig.Credentials.Retrieve(ctx)
    if err != nil {
        return awsConfig, false
    }

    return awsConfig, true
}


// IsS3Uri reports whether the palette source points at S3.
func IsS3Uri(source string) bool {
    return strings.HasPrefix(source, globals.S3_SCHEME)
}


// Splits an s3://bucket/key uri into its bucket and key.
//
// @Parameters
// - uri:  The S3 uri to parse
//
// @Returns
// - The bucket name
// - The object key
// - Error if it occurs, otherwise nil on success
//
func ParseS3Uri(uri string) (string, string, error) {
    if !IsS3Uri(uri) {
        return "", "", fmt.Errorf("uri %q does not start with %s", uri, globals.S3_SCHEME)
    }

    bucket, key, found := strings.Cut(strings.TrimPrefix(uri, globals.S3_SCHEME), "/")
    // If either the bucket or key is missing
    if !found || bucket == "" || key == "" {
        return "", "", fmt.Errorf("uri %q must be of the form s3://bucket/key", uri)
    }

    return bucket, key, nil
}


// Downloads the object into memory, refusing objects larger than
// MaxPaletteObjectSize. Missing buckets or keys map to ErrObjectNotFound.
//
// @Parameters
// - ctx:  The context handler for the request
// - client:  The S3 client
// - bucket:  The bucket holding the object
// - key:  The object key
//
// @Returns
// - The object contents
// - Error if it occurs, otherwise nil on success
//
func GetS3Object(ctx context.Context, client S3GetObjectAPI, bucket string,
                 key string) ([]byte, error) {
    output, err := client.GetObject(ctx, &s3.GetObjectInput{
        Bucket: aws.String(bucket),
        Key:    aws.String(key),
    })
    if err != nil {
        var apiErr smithy.APIError

        // If the service reported the bucket or key as missing
        if errors.As(err, &apiErr) {
            switch apiErr.ErrorCode() {
            case "NoSuchKey", "NoSuchBucket", "NotFound":
                return nil, fmt.Errorf("%w: s3://%s/%s", ErrObjectNotFound, bucket, key)
            }
        }

        return nil, fmt.Errorf("error getting s3://%s/%s: %w", bucket, key, err)
    }
    // Close the body on local exit
    defer output.Body.Close()

    // Read one byte past the limit to detect oversized objects
    contents, err := io.ReadAll(io.LimitReader(output.Body, MaxPaletteObjectSize+1))
    if err != nil {
        return nil, fmt.Errorf("error reading s3://%s/%s: %w", bucket, key, err)
    }

    if len(contents) > MaxPaletteObjectSize {
        return nil, fmt.Errorf("s3://%s/%s exceeds %d bytes", bucket, key,
                               MaxPaletteObjectSize)
    }

    return contents, nil
}


// Returns a palette Opener that fetches the palette object from S3.
//
// @Parameters
// - client:  The S3 client
// - uri:  The s3://bucket/key location of the palette
//
// @Returns
// - The opener for use with palette.NewCache()
// - Error if the uri is malformed, otherwise nil on success
//
func S3Opener(client S3GetObjectAPI, uri string) (palette.Opener, error) {
    bucket, key, err := ParseS3Uri(uri)
    if err != nil {
        return nil, err
    }

    return func(ctx context.Context) (io.ReadCloser, error) {
        contents, err := GetS3Object(ctx, client, bucket, key)
        if err != nil {
            return nil, err
        }

        return io.NopCloser(bytes.NewReader(contents)), nil
    }, nil
}


// NewS3Client creates an S3 client from the AWS config.
func NewS3Client(awsConfig aws.Config) *s3.Client {
    return s3.NewFromConfig(awsConfig)
}
