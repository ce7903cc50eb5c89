package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultHTTPTimeout applies when NewHTTPReader gets a zero timeout.
const DefaultHTTPTimeout = 30 * time.Second

// =============================================================================
// HTTP READER
// =============================================================================

// HTTPReader fetches sources over HTTP(S).
type HTTPReader struct {
	client *http.Client
}

// NewHTTPReader creates an HTTPReader with the given request timeout.
func NewHTTPReader(timeout time.Duration) *HTTPReader {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	return &HTTPReader{client: &http.Client{Timeout: timeout}}
}

// ReadFile implements Reader.
func (r *HTTPReader) ReadFile(ctx context.Context, name string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, name, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("failed to fetch %s: unexpected status %s", name, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	return string(body), nil
}

// =============================================================================
// S3 READER
// =============================================================================

// S3API is the subset of the S3 client used by S3Reader.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Reader fetches sources named s3://bucket/key.
type S3Reader struct {
	client S3API
}

// NewS3Reader wraps an existing client.
func NewS3Reader(client S3API) *S3Reader {
	return &S3Reader{client: client}
}

// NewS3ReaderFromConfig loads the default AWS configuration (credentials and
// region from the environment). A non-empty region overrides it.
func NewS3ReaderFromConfig(ctx context.Context, region string) (*S3Reader, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return NewS3Reader(s3.NewFromConfig(cfg)), nil
}

// ReadFile implements Reader.
func (r *S3Reader) ReadFile(ctx context.Context, name string) (string, error) {
	bucket, key, err := ParseS3URL(name)
	if err != nil {
		return "", err
	}

	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get s3 object %s: %w", name, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read s3 object %s: %w", name, err)
	}

	return string(body), nil
}

// ParseS3URL splits s3://bucket/key into its bucket and key.
//
// RETURNS:
//   - bucket: The URL host.
//   - key: The path without its leading slash. Must not be empty.
//   - err: Set for any other scheme, a missing bucket or a missing key.
func ParseS3URL(name string) (bucket, key string, err error) {
	u, err := url.Parse(name)
	if err != nil {
		return "", "", fmt.Errorf("invalid s3 url %q: %w", name, err)
	}
	if u.Scheme != "s3" || u.Host == "" {
		return "", "", fmt.Errorf("invalid s3 url %q: expected s3://bucket/key", name)
	}

	key = strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", "", fmt.Errorf("invalid s3 url %q: missing object key", name)
	}

	return u.Host, key, nil
}
