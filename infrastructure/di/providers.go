package di

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	cmdbus "hypey-backend/application/commands/bus"
	querybus "hypey-backend/application/queries/bus"

	"hypey-backend/application/commands"
	cmdhandlers "hypey-backend/application/commands/handlers"
	"hypey-backend/application/ports"
	"hypey-backend/application/queries"
	queryhandlers "hypey-backend/application/queries/handlers"
	"hypey-backend/application/services"
	"hypey-backend/infrastructure/config"
	"hypey-backend/infrastructure/images"
	"hypey-backend/infrastructure/persistence/memory"
	"hypey-backend/infrastructure/persistence/solid"
	"hypey-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	Store      ports.DocumentStore
	Images     ports.ImageStore
	Metrics    *observability.Metrics
	Mutator    *services.Mutator
	Gestures   *services.GestureTracker
	CommandBus *cmdbus.CommandBus
	QueryBus   *querybus.QueryBus
}

// ProvideLogger creates the application logger
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// ProvideMetrics creates and registers the metric set
func ProvideMetrics(cfg *config.Config) *observability.Metrics {
	if !cfg.EnableMetrics {
		return observability.NewNopMetrics()
	}
	return observability.NewMetrics(prometheus.DefaultRegisterer)
}

// ProvideDocumentStore selects the configured store backend
func ProvideDocumentStore(cfg *config.Config, metrics *observability.Metrics, logger *zap.Logger) (ports.DocumentStore, error) {
	switch cfg.StoreBackend {
	case "solid":
		return solid.NewStore(nil, metrics, logger), nil
	case "memory":
		return memory.NewStore(), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}

// ProvideImageStore creates the image upload collaborator
func ProvideImageStore(logger *zap.Logger) ports.ImageStore {
	return images.NewUploader(nil, logger)
}

// ProvideMutator creates the optimistic mutation protocol service
func ProvideMutator(store ports.DocumentStore, metrics *observability.Metrics, logger *zap.Logger) *services.Mutator {
	return services.NewMutator(store, metrics, logger)
}

// ProvideGestureTracker creates the gesture state machine
func ProvideGestureTracker(metrics *observability.Metrics, logger *zap.Logger) *services.GestureTracker {
	return services.NewGestureTracker(metrics, logger)
}

// ProvideCommandBus builds the command bus with every handler registered
func ProvideCommandBus(
	store ports.DocumentStore,
	mutator *services.Mutator,
	gestures *services.GestureTracker,
	logger *zap.Logger,
) (*cmdbus.CommandBus, error) {
	bus := cmdbus.NewCommandBus()

	initApp := cmdhandlers.NewInitAppHandler(store, logger)
	createCollage := cmdhandlers.NewCreateCollageHandler(store, mutator, logger)
	addElement := cmdhandlers.NewAddElementHandler(store, mutator, logger)
	moveElement := cmdhandlers.NewMoveElementHandler(store, mutator, gestures, logger)
	resizeElement := cmdhandlers.NewResizeElementHandler(store, mutator, gestures, logger)
	setLink := cmdhandlers.NewSetElementLinkHandler(store, mutator, logger)
	deleteElement := cmdhandlers.NewDeleteElementHandler(store, mutator, logger)

	registrations := []struct {
		cmd     cmdbus.Command
		handler cmdbus.CommandHandler
	}{
		{commands.InitAppCommand{}, cmdbus.CommandHandlerFunc(func(ctx context.Context, c cmdbus.Command) (interface{}, error) {
			return initApp.Handle(ctx, c.(commands.InitAppCommand))
		})},
		{commands.CreateCollageCommand{}, cmdbus.CommandHandlerFunc(func(ctx context.Context, c cmdbus.Command) (interface{}, error) {
			return createCollage.Handle(ctx, c.(commands.CreateCollageCommand))
		})},
		{commands.AddElementCommand{}, cmdbus.CommandHandlerFunc(func(ctx context.Context, c cmdbus.Command) (interface{}, error) {
			return addElement.Handle(ctx, c.(commands.AddElementCommand))
		})},
		{commands.MoveElementCommand{}, cmdbus.CommandHandlerFunc(func(ctx context.Context, c cmdbus.Command) (interface{}, error) {
			return moveElement.Handle(ctx, c.(commands.MoveElementCommand))
		})},
		{commands.ResizeElementCommand{}, cmdbus.CommandHandlerFunc(func(ctx context.Context, c cmdbus.Command) (interface{}, error) {
			return resizeElement.Handle(ctx, c.(commands.ResizeElementCommand))
		})},
		{commands.SetElementLinkCommand{}, cmdbus.CommandHandlerFunc(func(ctx context.Context, c cmdbus.Command) (interface{}, error) {
			return setLink.Handle(ctx, c.(commands.SetElementLinkCommand))
		})},
		{commands.DeleteElementCommand{}, cmdbus.CommandHandlerFunc(func(ctx context.Context, c cmdbus.Command) (interface{}, error) {
			return deleteElement.Handle(ctx, c.(commands.DeleteElementCommand))
		})},
	}
	for _, reg := range registrations {
		if err := bus.Register(reg.cmd, reg.handler); err != nil {
			return nil, err
		}
	}
	return bus, nil
}

// ProvideQueryBus builds the query bus with every handler registered
func ProvideQueryBus(store ports.DocumentStore, logger *zap.Logger) (*querybus.QueryBus, error) {
	bus := querybus.NewQueryBus()

	getCollage := queryhandlers.NewGetCollageHandler(store, logger)
	listCollages := queryhandlers.NewListCollagesHandler(store, logger)
	getApp := queryhandlers.NewGetAppHandler(store, logger)

	registrations := []struct {
		query   querybus.Query
		handler querybus.QueryHandler
	}{
		{queries.GetCollageQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return getCollage.Handle(ctx, q.(queries.GetCollageQuery))
		})},
		{queries.ListCollagesQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return listCollages.Handle(ctx, q.(queries.ListCollagesQuery))
		})},
		{queries.GetAppQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return getApp.Handle(ctx, q.(queries.GetAppQuery))
		})},
	}
	for _, reg := range registrations {
		if err := bus.Register(reg.query, reg.handler); err != nil {
			return nil, err
		}
	}
	return bus, nil
}
