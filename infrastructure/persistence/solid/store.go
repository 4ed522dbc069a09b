// Package solid implements the DocumentStore contract against a remote
// linked-data pod over HTTP: GET a whole document, PUT a whole document
// back. No field-level merge, no compare-and-swap; the last PUT to land
// wins.
package solid

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"hypey-backend/application/ports"
	"hypey-backend/domain/core/valueobjects"
	"hypey-backend/domain/document"
	"hypey-backend/pkg/auth"
	pkgerrors "hypey-backend/pkg/errors"
	"hypey-backend/pkg/observability"
)

const contentType = "application/ld+json"

// Store talks to the pod. Requests authenticate with the bearer token the
// session middleware put on the context; the breaker stops hammering a pod
// that is down.
type Store struct {
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	metrics *observability.Metrics
	logger  *zap.Logger
}

var _ ports.DocumentStore = (*Store)(nil)

// NewStore creates a pod-backed document store
func NewStore(client *http.Client, metrics *observability.Metrics, logger *zap.Logger) *Store {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "solid-pod",
		Timeout: 15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &Store{
		client:  client,
		breaker: breaker,
		metrics: metrics,
		logger:  logger,
	}
}

// Fetch GETs the document containing ref. A 404 maps to the distinguished
// NotFound condition.
func (s *Store) Fetch(ctx context.Context, ref valueobjects.Ref) (*document.Document, error) {
	if !ref.IsDurable() {
		return nil, pkgerrors.NewValidationError("cannot fetch a non-durable ref")
	}
	docURL, err := ref.DocumentURL()
	if err != nil {
		return nil, pkgerrors.NewValidationError("invalid ref")
	}

	body, status, err := s.do(ctx, http.MethodGet, docURL, nil)
	if err != nil {
		return nil, pkgerrors.NewStoreError("fetch failed", err)
	}
	switch {
	case status == http.StatusNotFound:
		return nil, pkgerrors.NewNotFoundError("document")
	case status < 200 || status >= 300:
		return nil, pkgerrors.NewStoreError(fmt.Sprintf("fetch returned status %d", status), nil)
	}

	s.metrics.DocumentsFetched.Inc()
	return UnmarshalDocument(docURL, body)
}

// Save PUTs the whole document, replacing the stored state. On success the
// returned document carries durable refs for everything the input held as a
// local token; the pod resolves bare fragments against the resource URL, so
// promotion is deterministic and computed locally.
func (s *Store) Save(ctx context.Context, doc *document.Document) (*document.Document, error) {
	if doc.URL() == "" {
		return nil, pkgerrors.NewValidationError("document has no URL")
	}

	payload, err := MarshalDocument(doc)
	if err != nil {
		return nil, pkgerrors.NewInternalError("marshal document", err)
	}

	_, status, err := s.do(ctx, http.MethodPut, doc.URL(), payload)
	if err != nil {
		return nil, pkgerrors.NewSaveFailedError("save failed", err)
	}
	if status < 200 || status >= 300 {
		return nil, pkgerrors.NewSaveFailedError(fmt.Sprintf("save returned status %d", status), nil)
	}

	saved := doc.Clone()
	saved.PromoteLocalRefs()
	return saved, nil
}

// EnsureContainer idempotently creates a container. An existing container
// answers with a conflict status, which counts as success.
func (s *Store) EnsureContainer(ctx context.Context, url string) error {
	_, status, err := s.do(ctx, http.MethodPut, url, nil)
	if err != nil {
		return pkgerrors.NewStoreError("container creation failed", err)
	}
	switch status {
	case http.StatusCreated, http.StatusNoContent, http.StatusOK,
		http.StatusConflict, http.StatusMethodNotAllowed:
		return nil
	}
	return pkgerrors.NewStoreError(fmt.Sprintf("container creation returned status %d", status), nil)
}

func (s *Store) do(ctx context.Context, method, url string, body []byte) ([]byte, int, error) {
	result, err := s.breaker.Execute(func() (interface{}, error) {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", contentType)
		if body != nil {
			req.Header.Set("Content-Type", contentType)
		}
		if token, ok := auth.AccessTokenFromContext(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := s.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		return &httpResult{body: data, status: resp.StatusCode}, nil
	})
	if err != nil {
		s.logger.Warn("pod request failed",
			zap.String("method", method),
			zap.String("url", url),
			zap.Error(err),
		)
		return nil, 0, err
	}

	r := result.(*httpResult)
	return r.body, r.status, nil
}

type httpResult struct {
	body   []byte
	status int
}
