package services

import (
	"context"

	"go.uber.org/zap"

	"hypey-backend/application/ports"
	"hypey-backend/domain/core/valueobjects"
	"hypey-backend/domain/document"
	pkgerrors "hypey-backend/pkg/errors"
	"hypey-backend/pkg/observability"
)

// Outcome says what happened to an optimistic mutation
type Outcome string

const (
	// OutcomeSaved means the save landed; the returned document is the
	// authoritative post-mutation state.
	OutcomeSaved Outcome = "saved"

	// OutcomeRolledBack means the save failed and the returned document is
	// a fresh authoritative read — the optimistic edit is gone.
	OutcomeRolledBack Outcome = "rolled_back"
)

// MutationResult is what every entity mutation resolves to. The caller swaps
// in whichever document came back; there is no third possibility.
type MutationResult struct {
	Outcome  Outcome
	Document *document.Document

	// SaveErr carries the save failure when rolled back, for logging only
	SaveErr error
}

// Saved reports whether the mutation landed
func (r *MutationResult) Saved() bool {
	return r.Outcome == OutcomeSaved
}

// Mutator implements the optimistic mutation and revalidation protocol over
// the document store. Every entity-level mutation follows one pattern: save
// the whole mutated document; on success adopt the saved state; on any
// failure discard the optimistic edit and re-read the authoritative
// document. No automatic retry — the user re-triggers the gesture.
type Mutator struct {
	store   ports.DocumentStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewMutator creates a mutator
func NewMutator(store ports.DocumentStore, metrics *observability.Metrics, logger *zap.Logger) *Mutator {
	return &Mutator{
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// Apply attempts to persist the mutated document. The error return is
// reserved for the case where even revalidation failed; a failed save with a
// successful re-read is a normal RolledBack result, not an error.
func (m *Mutator) Apply(ctx context.Context, doc *document.Document) (*MutationResult, error) {
	saved, saveErr := m.store.Save(ctx, doc)
	if saveErr == nil {
		m.metrics.MutationsSaved.Inc()
		return &MutationResult{Outcome: OutcomeSaved, Document: saved}, nil
	}

	m.logger.Warn("save failed, revalidating",
		zap.String("document", doc.URL()),
		zap.Error(saveErr),
	)
	m.metrics.MutationsRolledBack.Inc()

	if doc.URL() == "" {
		// Never-persisted document: nothing authoritative to fall back to
		return nil, pkgerrors.NewSaveFailedError("initial save failed", saveErr)
	}

	docRef, err := valueobjects.NewRefFromString(doc.URL())
	if err != nil {
		return nil, pkgerrors.NewInternalError("invalid document URL", err)
	}

	fresh, fetchErr := m.store.Fetch(ctx, docRef)
	if fetchErr != nil {
		return nil, pkgerrors.NewStoreError("revalidation fetch failed", fetchErr)
	}

	return &MutationResult{
		Outcome:  OutcomeRolledBack,
		Document: fresh,
		SaveErr:  saveErr,
	}, nil
}
