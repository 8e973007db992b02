package network

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	domainNet "github.com/sboesen2/Drug-Interaction-Dashboard/internal/domain/network"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/database/neo4j/repositories"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/messaging/kafka"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/monitoring/logging"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/storage/minio"
	"github.com/sboesen2/Drug-Interaction-Dashboard/pkg/errors"
)

// ExportRecorder observes stored documents. Implemented by the Prometheus
// collector.
type ExportRecorder interface {
	RecordExport(size int64, err error)
}

// ExportNotifier announces stored documents to downstream consumers.
type ExportNotifier interface {
	PublishNetworkExported(ctx context.Context, p kafka.NetworkExportedPayload) error
}

type nopExportRecorder struct{}

func (nopExportRecorder) RecordExport(int64, error) {}

// ExportResult describes a stored network document.
type ExportResult struct {
	Drug        string                    `json:"drug"`
	Key         string                    `json:"key"`
	Size        int64                     `json:"size"`
	ContentType string                    `json:"content_type"`
	URL         string                    `json:"url"`
	ExpiresAt   time.Time                 `json:"expires_at"`
	Mirrored    *repositories.MirrorStats `json:"mirrored,omitempty"`
	Announced   bool                      `json:"announced"`
}

// Exporter stores rendered documents and optionally mirrors the graph.
type Exporter struct {
	store    minio.ArtifactStore
	sink     repositories.GraphSink
	notifier ExportNotifier
	expiry   time.Duration
	logger   logging.Logger
	recorder ExportRecorder
	newID    func() string
	now      func() time.Time
}

type ExporterOption func(*Exporter)

// WithGraphSink mirrors every exported graph into the graph database.
func WithGraphSink(sink repositories.GraphSink) ExporterOption {
	return func(e *Exporter) { e.sink = sink }
}

// WithExportNotifier publishes an event after every stored document.
func WithExportNotifier(n ExportNotifier) ExporterOption {
	return func(e *Exporter) { e.notifier = n }
}

// WithExportRecorder attaches export instrumentation.
func WithExportRecorder(r ExportRecorder) ExporterOption {
	return func(e *Exporter) {
		if r != nil {
			e.recorder = r
		}
	}
}

// WithPresignExpiry sets the lifetime of returned download URLs.
func WithPresignExpiry(d time.Duration) ExporterOption {
	return func(e *Exporter) {
		if d > 0 {
			e.expiry = d
		}
	}
}

func NewExporter(store minio.ArtifactStore, log logging.Logger, opts ...ExporterOption) *Exporter {
	e := &Exporter{
		store:    store,
		expiry:   time.Hour,
		logger:   log.Named("network_export"),
		recorder: nopExportRecorder{},
		newID:    uuid.NewString,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ObjectKey returns "networks/<slug>/<id>.html".
func ObjectKey(drugName, id string) string {
	return minio.ExportPrefix + Slug(drugName) + "/" + id + ".html"
}

// Slug lower-cases name and collapses every run of other characters into a
// single hyphen.
func Slug(name string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			hyphen = false
			continue
		}
		if !hyphen && b.Len() > 0 {
			b.WriteByte('-')
			hyphen = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "drug"
	}
	return s
}

// Export stores document for g and returns its key and a presigned URL.
// Mirroring and notification faults are logged and do not fail the export.
func (e *Exporter) Export(ctx context.Context, g *domainNet.Graph, document []byte) (*ExportResult, error) {
	if g == nil || len(document) == 0 {
		return nil, errors.New(errors.ErrCodeExportFailed, "nothing to export")
	}
	log := logging.FromContext(ctx, e.logger).With(logging.String(logging.FieldDrug, g.Selected))

	key := ObjectKey(g.Selected, e.newID())
	artifact, err := e.store.Put(ctx, &minio.PutRequest{
		Key:         key,
		Data:        document,
		ContentType: ContentTypeHTML,
		Metadata: map[string]string{
			"drug":   g.Selected,
			"policy": string(g.Policy),
		},
	})
	if err != nil {
		e.recorder.RecordExport(0, err)
		log.Error("Failed to store network document", logging.String("key", key), logging.Err(err))
		return nil, errors.Wrap(err, errors.ErrCodeExportFailed, "failed to store network document")
	}

	// An unreachable document is removed so a retried export leaves no orphan.
	url, err := e.store.PresignedURL(ctx, key, e.expiry)
	if err != nil {
		e.recorder.RecordExport(0, err)
		log.Error("Failed to presign network document", logging.String("key", key), logging.Err(err))
		if derr := e.store.Delete(ctx, key); derr != nil {
			log.Warn("Failed to remove unpresigned network document", logging.String("key", key), logging.Err(derr))
		}
		return nil, errors.Wrap(err, errors.ErrCodeExportFailed, "failed to presign network document")
	}
	e.recorder.RecordExport(artifact.Size, nil)

	result := &ExportResult{
		Drug:        g.Selected,
		Key:         key,
		Size:        artifact.Size,
		ContentType: ContentTypeHTML,
		URL:         url,
		ExpiresAt:   e.now().Add(e.expiry),
	}

	if e.sink != nil {
		stats, err := e.sink.MirrorNetwork(ctx, g)
		if err != nil {
			log.Warn("Failed to mirror network into graph database", logging.Err(err))
		} else {
			result.Mirrored = stats
		}
	}

	if e.notifier != nil {
		err := e.notifier.PublishNetworkExported(ctx, kafka.NetworkExportedPayload{
			Drug:       result.Drug,
			Key:        result.Key,
			Size:       result.Size,
			URL:        result.URL,
			ExpiresAt:  result.ExpiresAt,
			Policy:     string(g.Policy),
			Mechanisms: len(g.NodesOfKind(domainNet.KindMechanism)),
			Drugs:      len(g.NodesOfKind(domainNet.KindDrug)),
		})
		if err != nil {
			log.Warn("Failed to publish export event", logging.Err(err))
		} else {
			result.Announced = true
		}
	}

	log.Info("Exported network document", logging.String("key", key), logging.Int64("size", artifact.Size))
	return result, nil
}

//Personal.AI order the ending
