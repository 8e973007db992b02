package minio

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/monitoring/logging"
	"github.com/sboesen2/Drug-Interaction-Dashboard/pkg/errors"
)

// ExportPrefix is the key prefix of every exported network document.
const ExportPrefix = "networks/"

const defaultListLimit = 100

var (
	ErrObjectNotFound = errors.New(errors.ErrCodeNotFound, "object not found")
	ErrInvalidRequest = errors.New(errors.ErrCodeValidation, "invalid request")
)

// ArtifactStore persists rendered documents in the artifact bucket.
type ArtifactStore interface {
	Put(ctx context.Context, req *PutRequest) (*Artifact, error)
	Stat(ctx context.Context, key string) (*Artifact, error)
	Exists(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, prefix string, limit int) ([]Artifact, error)
	Delete(ctx context.Context, key string) error
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

type PutRequest struct {
	Key         string
	Data        []byte
	ContentType string
	Metadata    map[string]string
}

// Artifact describes a stored object.
type Artifact struct {
	Key          string            `json:"key"`
	Size         int64             `json:"size"`
	ContentType  string            `json:"content_type,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	LastModified time.Time         `json:"last_modified"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

type artifactStore struct {
	client *Client
	logger logging.Logger
}

// NewArtifactStore returns an ArtifactStore over client's bucket.
func NewArtifactStore(client *Client, log logging.Logger) ArtifactStore {
	return &artifactStore{client: client, logger: log.Named("artifact_store")}
}

func (s *artifactStore) Put(ctx context.Context, req *PutRequest) (*Artifact, error) {
	if req == nil || req.Key == "" {
		return nil, ErrInvalidRequest
	}
	if err := s.client.checkOpen(); err != nil {
		return nil, err
	}
	opts := minio.PutObjectOptions{
		ContentType:  req.ContentType,
		UserMetadata: req.Metadata,
	}
	info, err := s.client.api.PutObject(ctx, s.client.Bucket(), req.Key, bytes.NewReader(req.Data), int64(len(req.Data)), opts)
	if err != nil {
		s.logger.Error("artifact upload failed", logging.String("key", req.Key), logging.Err(err))
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "upload failed").WithDetail(req.Key)
	}
	s.logger.Info("artifact stored", logging.String("key", info.Key), logging.Int64("size", info.Size))
	return &Artifact{
		Key:          info.Key,
		Size:         info.Size,
		ContentType:  req.ContentType,
		ETag:         info.ETag,
		LastModified: time.Now().UTC(),
		Metadata:     req.Metadata,
	}, nil
}

func (s *artifactStore) Stat(ctx context.Context, key string) (*Artifact, error) {
	if err := s.client.checkOpen(); err != nil {
		return nil, err
	}
	info, err := s.client.api.StatObject(ctx, s.client.Bucket(), key, minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, ErrObjectNotFound
		}
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "stat failed").WithDetail(key)
	}
	return &Artifact{
		Key:          key,
		Size:         info.Size,
		ContentType:  info.ContentType,
		ETag:         info.ETag,
		LastModified: info.LastModified,
		Metadata:     info.UserMetadata,
	}, nil
}

func (s *artifactStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.Stat(ctx, key)
	if err == ErrObjectNotFound {
		return false, nil
	}
	return err == nil, err
}

// List returns up to limit artifacts under prefix, newest last as MinIO
// orders keys lexically.
func (s *artifactStore) List(ctx context.Context, prefix string, limit int) ([]Artifact, error) {
	if err := s.client.checkOpen(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := s.client.api.ListObjects(ctx, s.client.Bucket(), minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})
	out := make([]Artifact, 0)
	for obj := range ch {
		if obj.Err != nil {
			return nil, errors.Wrap(obj.Err, errors.ErrCodeStorageError, "list failed").WithDetail(prefix)
		}
		out = append(out, Artifact{Key: obj.Key, Size: obj.Size, ETag: obj.ETag, LastModified: obj.LastModified})
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (s *artifactStore) Delete(ctx context.Context, key string) error {
	if err := s.client.checkOpen(); err != nil {
		return err
	}
	if err := s.client.api.RemoveObject(ctx, s.client.Bucket(), key, minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrap(err, errors.ErrCodeStorageError, "delete failed").WithDetail(key)
	}
	return nil
}

func (s *artifactStore) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return s.client.PresignedGetURL(ctx, key, expiry)
}

func isNoSuchKey(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || strings.EqualFold(code, "NotFound")
}

//Personal.AI order the ending
