package services

import (
	"github.com/custodia-labs/sitegen/internal/core/domain"
	"github.com/custodia-labs/sitegen/internal/core/ports/driven"
	"github.com/custodia-labs/sitegen/internal/logger"
)

// ReconcileDecision describes how a batch was applied to the file collection.
type ReconcileDecision string

const (
	// DecisionCleared means the batch was empty and the collection was cleared.
	DecisionCleared ReconcileDecision = "cleared"

	// DecisionReplaced means the batch replaced the whole collection.
	DecisionReplaced ReconcileDecision = "replaced"

	// DecisionMerged means the batch updated and extended the collection.
	DecisionMerged ReconcileDecision = "merged"
)

// Reconcile applies one turn's raw file batch to state and returns the new
// state. The input state is not modified.
//
// An empty batch clears the collection. Otherwise the normalised batch
// replaces the collection when there is no prior batch, when the collection
// is empty, or when none of the previous batch's names reappear; in every
// other case it is merged, updating existing files in place and appending
// new ones.
func Reconcile(
	state domain.ReconciliationState,
	batch []domain.RawFileRecord,
	normaliser driven.FileNormaliser,
) domain.ReconciliationState {
	next, _ := reconcile(state, batch, normaliser)
	return next
}

func reconcile(
	state domain.ReconciliationState,
	batch []domain.RawFileRecord,
	normaliser driven.FileNormaliser,
) (domain.ReconciliationState, ReconcileDecision) {
	next := state.Clone()

	if len(batch) == 0 {
		next.Files.Clear()
		return next, DecisionCleared
	}

	incoming := normaliser.NormaliseBatch(batch)

	decision := DecisionMerged
	if shouldReplace(&next, incoming) {
		decision = DecisionReplaced
		next.Files = domain.NewFileCollection(incoming)
	} else {
		for _, f := range incoming {
			next.Files.Upsert(f)
		}
	}

	next.Previous = fileNames(incoming)
	next.Batches++
	return next, decision
}

// shouldReplace reports whether incoming is a fresh generation rather than
// an incremental edit. A name set fully disjoint from the previous batch
// counts as fresh.
func shouldReplace(state *domain.ReconciliationState, incoming []domain.CanonicalFile) bool {
	if state.Batches == 0 || state.Files.Len() == 0 {
		return true
	}
	names := make(map[string]struct{}, len(incoming))
	for _, f := range incoming {
		names[f.Name] = struct{}{}
	}
	for _, prev := range state.Previous {
		if _, ok := names[prev]; ok {
			return false
		}
	}
	return true
}

func fileNames(files []domain.CanonicalFile) []string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	return names
}

// ReconcileService binds Reconcile to a normaliser and logs each decision.
type ReconcileService struct {
	normaliser driven.FileNormaliser
}

// NewReconcileService creates a reconcile service.
func NewReconcileService(normaliser driven.FileNormaliser) *ReconcileService {
	return &ReconcileService{normaliser: normaliser}
}

// Apply reconciles batch into state and returns the new state and the
// decision taken.
func (s *ReconcileService) Apply(
	state domain.ReconciliationState,
	batch []domain.RawFileRecord,
) (domain.ReconciliationState, ReconcileDecision) {
	next, decision := reconcile(state, batch, s.normaliser)
	logger.Debug("reconcile: %s batch of %d records, collection now %d files",
		decision, len(batch), next.Files.Len())
	return next, decision
}
