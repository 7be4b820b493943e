package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"go-shelter-triage-board/internal/config"
	"go-shelter-triage-board/internal/predictions"
	"go-shelter-triage-board/internal/schema"
)

// maxObjectBytes caps how much of the prediction table we are willing to pull
// into memory per refresh.
const maxObjectBytes = 256 << 20

// ServiceStats holds lightweight reachability data for the status dashboard.
type ServiceStats struct {
	PingMS        int64      `json:"ping_ms"`
	Bucket        string     `json:"bucket"`
	Key           string     `json:"key"`
	ContentLength int64      `json:"content_length"`
	LastModified  *time.Time `json:"last_modified,omitempty"`
}

// Loader fetches the prediction table snapshot from the blob store. One
// GetObject per refresh, no retries; every failure is a DataUnavailable
// condition for the board.
type Loader struct {
	bucket  string
	key     string
	mapping schema.Mapping
	client  *awss3.Client
	timeout time.Duration
}

// NewLoader builds an S3 client from static credentials supplied through the
// secrets mechanism.
func NewLoader(cfg config.Config, mapping schema.Mapping) *Loader {
	client := awss3.New(awss3.Options{
		Region: cfg.AWSRegion,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		),
	})

	return &Loader{
		bucket:  strings.TrimSpace(cfg.S3Bucket),
		key:     strings.TrimSpace(cfg.S3Key),
		mapping: mapping,
		client:  client,
		timeout: cfg.S3FetchTimeout,
	}
}

func (l *Loader) Enabled() bool {
	return l != nil && l.bucket != "" && l.key != ""
}

// Name identifies the source in snapshot metadata and metrics.
func (l *Loader) Name() string {
	return "s3"
}

// Fetch pulls and decodes the full current snapshot.
func (l *Loader) Fetch(ctx context.Context) ([]predictions.PredictionRow, int, error) {
	if !l.Enabled() {
		return nil, 0, fmt.Errorf("%w: s3 source disabled", predictions.ErrUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	obj, err := l.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(l.key),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("%w: get s3://%s/%s: %v", predictions.ErrUnavailable, l.bucket, l.key, err)
	}
	defer obj.Body.Close()

	blob, err := io.ReadAll(io.LimitReader(obj.Body, maxObjectBytes))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: read s3://%s/%s: %v", predictions.ErrUnavailable, l.bucket, l.key, err)
	}

	rows, skipped, err := predictions.DecodeCSV(bytes.NewReader(blob), l.mapping)
	if err != nil {
		// A misconfigured column mapping is a deployment defect, not a
		// transient load failure; let it through undisguised.
		var missing *schema.MissingColumnError
		if errors.As(err, &missing) {
			return nil, 0, err
		}
		return nil, 0, fmt.Errorf("%w: decode s3://%s/%s: %v", predictions.ErrUnavailable, l.bucket, l.key, err)
	}
	return rows, skipped, nil
}

// ServiceStats probes the object without downloading it.
func (l *Loader) ServiceStats(ctx context.Context) (*ServiceStats, error) {
	if !l.Enabled() {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	start := time.Now()
	head, err := l.client.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(l.key),
	})
	if err != nil {
		return nil, fmt.Errorf("head s3://%s/%s: %w", l.bucket, l.key, err)
	}

	out := &ServiceStats{
		PingMS:       time.Since(start).Milliseconds(),
		Bucket:       l.bucket,
		Key:          l.key,
		LastModified: head.LastModified,
	}
	if head.ContentLength != nil {
		out.ContentLength = *head.ContentLength
	}
	return out, nil
}
