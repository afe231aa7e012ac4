package factory

import (
	"context"
	"sync"
	"time"

	"github.com/multiversx/mx-chain-core-go/core/check"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xray-tools/blob-stats-exporter/api"
	"github.com/xray-tools/blob-stats-exporter/blob"
	"github.com/xray-tools/blob-stats-exporter/common"
	"github.com/xray-tools/blob-stats-exporter/config"
	"github.com/xray-tools/blob-stats-exporter/metrics"
	"github.com/xray-tools/blob-stats-exporter/reconciler"
)

type componentsHandler struct {
	store        reconciler.SnapshotStore
	state        *metrics.State
	reconciler   Reconciler
	server       Server
	mutCancel    sync.Mutex
	cancel       func()
	pollInterval time.Duration
}

// ArgsComponentsHandler groups the inputs needed to build all components
type ArgsComponentsHandler struct {
	Config config.Config
	// Store overrides the snapshot store; an Azure-backed one is created when nil
	Store   reconciler.SnapshotStore
	Version string
}

// NewComponentsHandler creates all components and wires them together
func NewComponentsHandler(args ArgsComponentsHandler) (*componentsHandler, error) {
	store := args.Store
	if check.IfNil(store) {
		var err error
		store, err = blob.NewAzureStore(args.Config.StorageAccount, args.Config.ContainerName)
		if err != nil {
			return nil, err
		}
	}

	state := metrics.NewState(args.Config.ServerIDs())

	coll, err := metrics.NewCollector(state)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	err = registry.Register(coll)
	if err != nil {
		return nil, err
	}

	rec, err := reconciler.NewReconciler(args.Config.Servers, store, state)
	if err != nil {
		return nil, err
	}

	serverArgs := api.ArgsWebServer{
		ListenAddress:  args.Config.ListenAddress,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		StatusProvider: state,
		Version:        args.Version,
	}
	webServer, err := api.NewServer(serverArgs)
	if err != nil {
		return nil, err
	}

	return &componentsHandler{
		store:        store,
		state:        state,
		reconciler:   rec,
		server:       webServer,
		pollInterval: time.Duration(args.Config.PollIntervalInSeconds) * time.Second,
	}, nil
}

// GetStore returns the snapshot store component
func (ch *componentsHandler) GetStore() reconciler.SnapshotStore {
	return ch.store
}

// GetState returns the shared metrics state
func (ch *componentsHandler) GetState() *metrics.State {
	return ch.state
}

// GetReconciler returns the reconciler component
func (ch *componentsHandler) GetReconciler() Reconciler {
	return ch.reconciler
}

// GetServer returns the web server component
func (ch *componentsHandler) GetServer() Server {
	return ch.server
}

// Start starts the poll loop and the web server
func (ch *componentsHandler) Start() {
	ch.mutCancel.Lock()
	defer ch.mutCancel.Unlock()

	if ch.cancel != nil {
		return
	}

	var ctx context.Context
	ctx, ch.cancel = context.WithCancel(context.Background())

	common.PollLoopStarter(ctx, ch.reconciler.Process, ch.pollInterval)
	ch.server.Start()
}

// Close stops the poll loop and shuts down the web server
func (ch *componentsHandler) Close() {
	ch.mutCancel.Lock()
	defer ch.mutCancel.Unlock()

	if ch.cancel == nil {
		return
	}

	ch.cancel()
	ch.cancel = nil

	_ = ch.server.Close()
}
