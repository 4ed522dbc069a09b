package services

import (
	"sync"

	"go.uber.org/zap"

	"hypey-backend/domain/core/valueobjects"
	pkgerrors "hypey-backend/pkg/errors"
	"hypey-backend/pkg/observability"
)

// gesturePhase is the per-element gesture state. Dragging and resizing are
// mutually exclusive for one element; different elements gesture
// independently.
type gesturePhase int

const (
	phaseIdle gesturePhase = iota
	phaseDragging
	phaseResizing
)

type gestureState struct {
	phase gesturePhase

	// resize only: committed width at gesture start plus the transient
	// delta accumulated so far. The delta lives here and nowhere else —
	// it gives live feedback without a single intermediate store write,
	// and is merged into the committed value only at gesture end.
	baseWidth      float64
	transientDelta float64
}

// GestureTracker runs the per-element gesture state machine:
// Idle → Dragging → Idle and Idle → Resizing → Idle. It owns all transient
// gesture state; nothing here touches the store.
type GestureTracker struct {
	mu      sync.Mutex
	states  map[string]*gestureState
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewGestureTracker creates a tracker
func NewGestureTracker(metrics *observability.Metrics, logger *zap.Logger) *GestureTracker {
	return &GestureTracker{
		states:  make(map[string]*gestureState),
		metrics: metrics,
		logger:  logger,
	}
}

func (g *GestureTracker) state(ref valueobjects.Ref) *gestureState {
	s, ok := g.states[ref.String()]
	if !ok {
		s = &gestureState{}
		g.states[ref.String()] = s
	}
	return s
}

// BeginDrag moves an element into the dragging phase
func (g *GestureTracker) BeginDrag(ref valueobjects.Ref) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := g.state(ref)
	if s.phase == phaseResizing {
		return pkgerrors.NewConflictError("element is mid-resize")
	}
	s.phase = phaseDragging
	return nil
}

// EndDrag finishes a drag and converts the drop point to percentage
// coordinates. A zero or unavailable rendered box (the layout was not
// settled, or the drop reported no target) drops the move entirely: ok is
// false and no mutation must be attempted. This is a defined no-op, not an
// error.
func (g *GestureTracker) EndDrag(ref valueobjects.Ref, dropX, dropY, boxW, boxH float64) (x, y float64, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := g.state(ref)
	s.phase = phaseIdle

	x, y, ok = valueobjects.PositionFromPixels(dropX, dropY, boxW, boxH)
	if !ok {
		g.metrics.GesturesDropped.Inc()
		g.logger.Debug("move dropped, degenerate box",
			zap.String("element", ref.String()),
			zap.Float64("boxW", boxW),
			zap.Float64("boxH", boxH),
		)
	}
	return x, y, ok
}

// BeginResize moves an element into the resizing phase, capturing the
// committed width as the gesture baseline. A missing stored width has
// already been defaulted by the entity, so the first-ever resize starts
// from 10.
func (g *GestureTracker) BeginResize(ref valueobjects.Ref, baseWidth float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := g.state(ref)
	if s.phase == phaseDragging {
		return pkgerrors.NewConflictError("element is mid-drag")
	}
	s.phase = phaseResizing
	s.baseWidth = baseWidth
	s.transientDelta = 0
	return nil
}

// UpdateResize folds a pixel delta into the transient width delta and
// returns the preview width. Purely local view state; never persisted.
func (g *GestureTracker) UpdateResize(ref valueobjects.Ref, pixelDeltaX, boxW float64) (preview float64, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := g.state(ref)
	if s.phase != phaseResizing {
		return 0, false
	}
	delta, ok := valueobjects.WidthDeltaFromPixels(pixelDeltaX, boxW)
	if !ok {
		return s.baseWidth + s.transientDelta, false
	}
	s.transientDelta = delta
	return s.baseWidth + s.transientDelta, true
}

// EndResize finishes a resize and returns the final width. A result at or
// below zero is a degenerate size: the gesture is discarded, the old width
// stands, and ok is false so no mutation is attempted.
func (g *GestureTracker) EndResize(ref valueobjects.Ref, pixelDeltaX, boxW float64) (finalWidth float64, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := g.state(ref)
	s.phase = phaseIdle
	s.transientDelta = 0

	delta, wellFormed := valueobjects.WidthDeltaFromPixels(pixelDeltaX, boxW)
	if !wellFormed {
		g.metrics.GesturesDropped.Inc()
		return 0, false
	}

	finalWidth = s.baseWidth + delta
	if finalWidth <= 0 {
		g.metrics.GesturesDropped.Inc()
		g.logger.Debug("resize discarded, non-positive width",
			zap.String("element", ref.String()),
			zap.Float64("finalWidth", finalWidth),
		)
		return 0, false
	}
	return finalWidth, true
}

// Cancel abandons any in-flight gesture for an element
func (g *GestureTracker) Cancel(ref valueobjects.Ref) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.states, ref.String())
}
