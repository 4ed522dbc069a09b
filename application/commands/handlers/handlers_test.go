package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hypey-backend/application/commands"
	"hypey-backend/application/services"
	"hypey-backend/domain/core/entities"
	"hypey-backend/domain/core/valueobjects"
	"hypey-backend/domain/document"
	"hypey-backend/infrastructure/persistence/memory"
	pkgerrors "hypey-backend/pkg/errors"
	"hypey-backend/pkg/observability"
)

const (
	aliceWebID = "https://alice.example/profile#me"
	bobWebID   = "https://bob.example/profile#me"
	storageURL = "https://pod.example/"
)

// countingStore wraps the in-memory store so tests can assert how many saves
// a command attempted and make saves fail on demand.
type countingStore struct {
	*memory.Store
	saves    int
	failSave error
}

func (s *countingStore) Save(ctx context.Context, doc *document.Document) (*document.Document, error) {
	s.saves = s.saves + 1
	if s.failSave != nil {
		return nil, s.failSave
	}
	return s.Store.Save(ctx, doc)
}

type fixture struct {
	store    *countingStore
	mutator  *services.Mutator
	gestures *services.GestureTracker
}

func newFixture() *fixture {
	store := &countingStore{Store: memory.NewStore()}
	metrics := observability.NewNopMetrics()
	logger := zap.NewNop()
	return &fixture{
		store:    store,
		mutator:  services.NewMutator(store, metrics, logger),
		gestures: services.NewGestureTracker(metrics, logger),
	}
}

func (f *fixture) initApp(t *testing.T) *entities.App {
	t.Helper()
	h := NewInitAppHandler(f.store, zap.NewNop())
	app, err := h.Handle(context.Background(), commands.InitAppCommand{
		WebID:      aliceWebID,
		StorageURL: storageURL,
	})
	require.NoError(t, err)
	return app
}

func (f *fixture) createCollage(t *testing.T) *entities.Collage {
	t.Helper()
	h := NewCreateCollageHandler(f.store, f.mutator, zap.NewNop())
	result, err := h.Handle(context.Background(), commands.CreateCollageCommand{
		WebID:              aliceWebID,
		StorageURL:         storageURL,
		BackgroundImageURL: "https://cdn.example/bg.png",
	})
	require.NoError(t, err)
	require.Equal(t, StatusSaved, result.Status)
	return result.Collage
}

func (f *fixture) addElement(t *testing.T, collageRef string) *entities.Element {
	t.Helper()
	h := NewAddElementHandler(f.store, f.mutator, zap.NewNop())
	result, err := h.Handle(context.Background(), commands.AddElementCommand{
		WebID:      aliceWebID,
		CollageRef: collageRef,
		ImageURL:   "https://cdn.example/cat.png",
	})
	require.NoError(t, err)
	require.Equal(t, StatusSaved, result.Status)
	require.NotNil(t, result.Element)
	return result.Element
}

func TestInitApp(t *testing.T) {
	t.Run("first run creates the app document and container", func(t *testing.T) {
		f := newFixture()
		app := f.initApp(t)

		assert.Equal(t, "https://pod.example/public/hypey/app.jsonld#app", app.Ref().String())
		assert.True(t, app.Ref().IsDurable())
		assert.Equal(t, "https://pod.example/public/hypey/images/", app.ImageUploadContainer())
		assert.True(t, f.store.HasContainer(app.ImageUploadContainer()))
	})

	t.Run("re-initialization is rejected", func(t *testing.T) {
		f := newFixture()
		f.initApp(t)

		h := NewInitAppHandler(f.store, zap.NewNop())
		_, err := h.Handle(context.Background(), commands.InitAppCommand{
			WebID:      aliceWebID,
			StorageURL: storageURL,
		})
		assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeConflict))
	})

	t.Run("validates input", func(t *testing.T) {
		f := newFixture()
		h := NewInitAppHandler(f.store, zap.NewNop())
		_, err := h.Handle(context.Background(), commands.InitAppCommand{WebID: aliceWebID})
		assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeValidation))
	})
}

func TestCreateCollage(t *testing.T) {
	t.Run("creates a durable collage owned by the caller", func(t *testing.T) {
		f := newFixture()
		f.initApp(t)
		collage := f.createCollage(t)

		assert.True(t, collage.Ref().IsDurable())
		assert.Equal(t, aliceWebID, collage.Creator())
		assert.True(t, collage.EditableBy(aliceWebID))
		assert.False(t, collage.EditableBy(bobWebID))
	})

	t.Run("app document gains the collage reference", func(t *testing.T) {
		f := newFixture()
		f.initApp(t)
		collage := f.createCollage(t)

		appRef, err := document.AppRef(storageURL)
		require.NoError(t, err)
		doc, err := f.store.Fetch(context.Background(), appRef)
		require.NoError(t, err)

		appThing, ok := doc.Thing(appRef)
		require.True(t, ok)
		app, err := entities.AppFromThing(appThing)
		require.NoError(t, err)

		refs := app.DurableCollageRefs()
		require.Len(t, refs, 1)
		assert.True(t, refs[0].Equals(collage.Ref()))
	})

	t.Run("without an app document", func(t *testing.T) {
		f := newFixture()
		h := NewCreateCollageHandler(f.store, f.mutator, zap.NewNop())
		_, err := h.Handle(context.Background(), commands.CreateCollageCommand{
			WebID:              aliceWebID,
			StorageURL:         storageURL,
			BackgroundImageURL: "https://cdn.example/bg.png",
		})
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("failed save rolls back", func(t *testing.T) {
		f := newFixture()
		f.initApp(t)
		f.store.failSave = errors.New("pod rejected the write")

		h := NewCreateCollageHandler(f.store, f.mutator, zap.NewNop())
		result, err := h.Handle(context.Background(), commands.CreateCollageCommand{
			WebID:              aliceWebID,
			StorageURL:         storageURL,
			BackgroundImageURL: "https://cdn.example/bg.png",
		})
		require.NoError(t, err)
		assert.Equal(t, StatusRolledBack, result.Status)
		assert.Nil(t, result.Collage)
	})
}

func TestAddElement(t *testing.T) {
	t.Run("first element gets the default placement", func(t *testing.T) {
		f := newFixture()
		f.initApp(t)
		collage := f.createCollage(t)
		element := f.addElement(t, collage.Ref().String())

		assert.True(t, element.Ref().IsDurable())
		p := element.Placement()
		assert.Equal(t, 0.0, p.X())
		assert.Equal(t, 0.0, p.Y())
		assert.Equal(t, 10.0, p.Width())
	})

	t.Run("collage element set gains a durable reference", func(t *testing.T) {
		f := newFixture()
		f.initApp(t)
		collage := f.createCollage(t)
		element := f.addElement(t, collage.Ref().String())

		doc, err := f.store.Fetch(context.Background(), collage.Ref())
		require.NoError(t, err)
		thing, ok := doc.Thing(collage.Ref())
		require.True(t, ok)
		fresh, err := entities.CollageFromThing(thing)
		require.NoError(t, err)

		refs := fresh.DurableElementRefs()
		require.Len(t, refs, 1)
		assert.True(t, refs[0].Equals(element.Ref()))
	})

	t.Run("non-creator is forbidden", func(t *testing.T) {
		f := newFixture()
		f.initApp(t)
		collage := f.createCollage(t)

		h := NewAddElementHandler(f.store, f.mutator, zap.NewNop())
		_, err := h.Handle(context.Background(), commands.AddElementCommand{
			WebID:      bobWebID,
			CollageRef: collage.Ref().String(),
			ImageURL:   "https://cdn.example/cat.png",
		})
		assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeForbidden))
	})

	t.Run("local collage ref is rejected", func(t *testing.T) {
		f := newFixture()
		h := NewAddElementHandler(f.store, f.mutator, zap.NewNop())
		_, err := h.Handle(context.Background(), commands.AddElementCommand{
			WebID:      aliceWebID,
			CollageRef: valueobjects.NewLocalRef().String(),
			ImageURL:   "https://cdn.example/cat.png",
		})
		assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeValidation))
	})
}

func TestMoveElement(t *testing.T) {
	t.Run("commits the drop as percentages", func(t *testing.T) {
		f := newFixture()
		f.initApp(t)
		collage := f.createCollage(t)
		element := f.addElement(t, collage.Ref().String())

		h := NewMoveElementHandler(f.store, f.mutator, f.gestures, zap.NewNop())
		result, err := h.Handle(context.Background(), commands.MoveElementCommand{
			WebID:      aliceWebID,
			ElementRef: element.Ref().String(),
			DropX:      200, DropY: 150,
			BoxWidth: 800, BoxHeight: 600,
		})
		require.NoError(t, err)
		require.Equal(t, StatusSaved, result.Status)

		p := result.Element.Placement()
		assert.Equal(t, 25.0, p.X())
		assert.Equal(t, 25.0, p.Y())
		assert.Equal(t, 10.0, p.Width(), "moving never touches the width")
	})

	t.Run("zero box is a no-op with no save", func(t *testing.T) {
		f := newFixture()
		f.initApp(t)
		collage := f.createCollage(t)
		element := f.addElement(t, collage.Ref().String())
		savesBefore := f.store.saves

		h := NewMoveElementHandler(f.store, f.mutator, f.gestures, zap.NewNop())
		result, err := h.Handle(context.Background(), commands.MoveElementCommand{
			WebID:      aliceWebID,
			ElementRef: element.Ref().String(),
			DropX:      200, DropY: 150,
			BoxWidth: 0, BoxHeight: 0,
		})
		require.NoError(t, err)

		assert.Equal(t, StatusNoop, result.Status)
		assert.Equal(t, savesBefore, f.store.saves, "a dropped gesture must not reach the store")
		p := result.Element.Placement()
		assert.Equal(t, 0.0, p.X())
		assert.Equal(t, 0.0, p.Y())
	})

	t.Run("failed save returns the authoritative state", func(t *testing.T) {
		f := newFixture()
		f.initApp(t)
		collage := f.createCollage(t)
		element := f.addElement(t, collage.Ref().String())
		f.store.failSave = errors.New("pod rejected the write")

		h := NewMoveElementHandler(f.store, f.mutator, f.gestures, zap.NewNop())
		result, err := h.Handle(context.Background(), commands.MoveElementCommand{
			WebID:      aliceWebID,
			ElementRef: element.Ref().String(),
			DropX:      200, DropY: 150,
			BoxWidth: 800, BoxHeight: 600,
		})
		require.NoError(t, err)

		assert.Equal(t, StatusRolledBack, result.Status)
		require.NotNil(t, result.Element)
		p := result.Element.Placement()
		assert.Equal(t, 0.0, p.X(), "optimistic position is gone after rollback")
	})

	t.Run("unknown element", func(t *testing.T) {
		f := newFixture()
		f.initApp(t)
		f.createCollage(t)

		h := NewMoveElementHandler(f.store, f.mutator, f.gestures, zap.NewNop())
		_, err := h.Handle(context.Background(), commands.MoveElementCommand{
			WebID:      aliceWebID,
			ElementRef: "https://pod.example/public/hypey/app.jsonld#missing",
			DropX:      1, DropY: 1, BoxWidth: 800, BoxHeight: 600,
		})
		assert.True(t, pkgerrors.IsNotFound(err))
	})
}

func TestResizeElement(t *testing.T) {
	t.Run("resizes from the committed baseline", func(t *testing.T) {
		f := newFixture()
		f.initApp(t)
		collage := f.createCollage(t)
		element := f.addElement(t, collage.Ref().String())

		h := NewResizeElementHandler(f.store, f.mutator, f.gestures, zap.NewNop())
		result, err := h.Handle(context.Background(), commands.ResizeElementCommand{
			WebID:       aliceWebID,
			ElementRef:  element.Ref().String(),
			PixelDeltaX: 80, BoxWidth: 800,
		})
		require.NoError(t, err)
		require.Equal(t, StatusSaved, result.Status)

		// Never-resized element starts from the default width of 10
		assert.Equal(t, 20.0, result.Element.Placement().Width())
	})

	t.Run("non-positive result is discarded", func(t *testing.T) {
		f := newFixture()
		f.initApp(t)
		collage := f.createCollage(t)
		element := f.addElement(t, collage.Ref().String())
		savesBefore := f.store.saves

		h := NewResizeElementHandler(f.store, f.mutator, f.gestures, zap.NewNop())
		result, err := h.Handle(context.Background(), commands.ResizeElementCommand{
			WebID:       aliceWebID,
			ElementRef:  element.Ref().String(),
			PixelDeltaX: -120, BoxWidth: 800, // 10 - 15 = -5
		})
		require.NoError(t, err)

		assert.Equal(t, StatusNoop, result.Status)
		assert.Equal(t, savesBefore, f.store.saves)
		assert.Equal(t, 10.0, result.Element.Placement().Width(), "the old width stands")
	})
}

func TestSetElementLink(t *testing.T) {
	f := newFixture()
	f.initApp(t)
	collage := f.createCollage(t)
	element := f.addElement(t, collage.Ref().String())
	h := NewSetElementLinkHandler(f.store, f.mutator, zap.NewNop())

	t.Run("sets the link", func(t *testing.T) {
		result, err := h.Handle(context.Background(), commands.SetElementLinkCommand{
			WebID:      aliceWebID,
			ElementRef: element.Ref().String(),
			URL:        "https://example.org",
		})
		require.NoError(t, err)
		require.Equal(t, StatusSaved, result.Status)

		link, ok := result.Element.LinkTarget()
		assert.True(t, ok)
		assert.Equal(t, "https://example.org", link)
	})

	t.Run("rewriting the same value does not touch the store", func(t *testing.T) {
		savesBefore := f.store.saves
		result, err := h.Handle(context.Background(), commands.SetElementLinkCommand{
			WebID:      aliceWebID,
			ElementRef: element.Ref().String(),
			URL:        "https://example.org",
		})
		require.NoError(t, err)

		assert.Equal(t, StatusNoop, result.Status)
		assert.Equal(t, savesBefore, f.store.saves)
	})

	t.Run("empty value clears the link", func(t *testing.T) {
		result, err := h.Handle(context.Background(), commands.SetElementLinkCommand{
			WebID:      aliceWebID,
			ElementRef: element.Ref().String(),
			URL:        "",
		})
		require.NoError(t, err)
		require.Equal(t, StatusSaved, result.Status)

		_, ok := result.Element.LinkTarget()
		assert.False(t, ok)
	})
}

func TestDeleteElement(t *testing.T) {
	t.Run("unconfirmed delete is a no-op", func(t *testing.T) {
		f := newFixture()
		f.initApp(t)
		collage := f.createCollage(t)
		element := f.addElement(t, collage.Ref().String())
		savesBefore := f.store.saves

		h := NewDeleteElementHandler(f.store, f.mutator, zap.NewNop())
		result, err := h.Handle(context.Background(), commands.DeleteElementCommand{
			WebID:      aliceWebID,
			ElementRef: element.Ref().String(),
			Confirmed:  false,
		})
		require.NoError(t, err)

		assert.Equal(t, StatusNoop, result.Status)
		assert.Equal(t, savesBefore, f.store.saves)
	})

	t.Run("confirmed delete removes reference and node", func(t *testing.T) {
		f := newFixture()
		f.initApp(t)
		collage := f.createCollage(t)
		element := f.addElement(t, collage.Ref().String())

		h := NewDeleteElementHandler(f.store, f.mutator, zap.NewNop())
		result, err := h.Handle(context.Background(), commands.DeleteElementCommand{
			WebID:      aliceWebID,
			ElementRef: element.Ref().String(),
			Confirmed:  true,
		})
		require.NoError(t, err)
		assert.Equal(t, StatusSaved, result.Status)
		assert.Nil(t, result.Element, "the element no longer exists")

		doc, err := f.store.Fetch(context.Background(), collage.Ref())
		require.NoError(t, err)
		_, ok := doc.Thing(element.Ref())
		assert.False(t, ok, "node is gone from the document")

		thing, ok := doc.Thing(collage.Ref())
		require.True(t, ok)
		fresh, err := entities.CollageFromThing(thing)
		require.NoError(t, err)
		assert.Empty(t, fresh.ElementRefs(), "reference is gone from the collage")
	})

	t.Run("non-creator is forbidden", func(t *testing.T) {
		f := newFixture()
		f.initApp(t)
		collage := f.createCollage(t)
		element := f.addElement(t, collage.Ref().String())

		h := NewDeleteElementHandler(f.store, f.mutator, zap.NewNop())
		_, err := h.Handle(context.Background(), commands.DeleteElementCommand{
			WebID:      bobWebID,
			ElementRef: element.Ref().String(),
			Confirmed:  true,
		})
		assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeForbidden))
	})
}
