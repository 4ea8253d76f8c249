// Package snapshot exports a consistent copy of the registry as a JSON
// document to S3-compatible object storage.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/landlease/internal/clock"
	"github.com/dmitrijs2005/landlease/internal/common"
	"github.com/dmitrijs2005/landlease/internal/logging"
	"github.com/dmitrijs2005/landlease/internal/server/services"
	"github.com/google/uuid"
)

// LinkValidity is how long the returned download URL stays valid.
const LinkValidity = 15 * time.Minute

// Source yields the registry snapshot.
type Source interface {
	Snapshot(ctx context.Context) (services.Snapshot, error)
}

// Result describes an uploaded snapshot.
type Result struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
	Assets    int       `json:"assets"`
	Leases    int       `json:"leases"`
}

type Exporter struct {
	source    Source
	uploader  Uploader
	presigner Presigner
	bucket    string
	clock     clock.Clock
	newID     func() string
	log       logging.Logger
}

func NewExporter(src Source, up Uploader, pre Presigner, bucket string, clk clock.Clock, log logging.Logger) *Exporter {
	return &Exporter{
		source:    src,
		uploader:  up,
		presigner: pre,
		bucket:    bucket,
		clock:     clk,
		newID:     func() string { return uuid.NewString() },
		log:       log.With("module", "snapshot"),
	}
}

// StorageKey returns snapshots/YYYY/MM/DD/<id>.json for t.
func StorageKey(t time.Time, id string) string {
	return fmt.Sprintf("snapshots/%04d/%02d/%02d/%s.json", t.Year(), t.Month(), t.Day(), id)
}

// Export uploads the current snapshot and returns a presigned GET link.
// A nil Exporter or one without a bucket returns common.ErrSnapshotDisabled.
func (e *Exporter) Export(ctx context.Context) (Result, error) {
	if e == nil || e.bucket == "" {
		return Result{}, common.ErrSnapshotDisabled
	}

	snap, err := e.source.Snapshot(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("read snapshot: %w", err)
	}

	body, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return Result{}, fmt.Errorf("encode snapshot: %w", err)
	}

	now := e.clock.Now()
	key := StorageKey(now, e.newID())

	_, err = e.uploader.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(e.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String("application/json"),
	})
	if err != nil {
		return Result{}, fmt.Errorf("upload snapshot %s: %w", key, err)
	}

	req, err := e.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(e.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(LinkValidity))
	if err != nil {
		return Result{}, fmt.Errorf("presign snapshot %s: %w", key, err)
	}

	res := Result{
		Key:       key,
		URL:       req.URL,
		ExpiresAt: now.Add(LinkValidity),
		Assets:    len(snap.Assets),
		Leases:    len(snap.Leases),
	}
	e.log.Info(ctx, "snapshot exported", "key", key, "assets", res.Assets, "leases", res.Leases)
	return res, nil
}
