//go:build wireinject
// +build wireinject

package wire

import (
	"leverbox/cmd/config"
	"leverbox/internal/infra/async"
	"leverbox/internal/session/httpapi"
	"leverbox/internal/session/persistence"
	"leverbox/internal/session/usecases"

	"github.com/google/wire"
)

var ApparatusSet = wire.NewSet(
	provideLogger,
	provideTaskSettings,
	provideBackend,
	provideApparatus,
	provideDecoder,
	provideAudioSink,
	providePlayer,
	providePeer,
	usecases.NewBrokerObserver,
	provideEngine,
)

var JournalSet = wire.NewSet(
	provideDatabase,
	persistence.NewJournalRepository,
	provideCache,
	provideCachedJournalRepository,
	wire.Bind(new(usecases.JournalRepository), new(*persistence.CachedJournalRepository)),
	usecases.NewJournalService,
	wire.Bind(new(usecases.JournalService), new(*usecases.SimpleJournalService)),
	provideJournalWorkerOpts,
	usecases.NewJournalWorker,
)

var HTTPSet = wire.NewSet(
	wire.Bind(new(usecases.StatusService), new(*usecases.StatusBoard)),
	httpapi.NewStatusController,
	httpapi.NewTrialController,
	httpapi.NewEventStreamController,
	provideServer,
)

func InitializeBox(cfg config.AppConfig, broker async.InternalBroker) (*Box, func(), error) {
	wire.Build(
		provideNode,
		provideMQTTClient,
		ApparatusSet,
		provideStatusBoard,
		provideTicker,
		provideControllerWorker,
		JournalSet,
		provideMetricWorker,
		provideRelayWorker,
		HTTPSet,
		wire.Struct(new(Box), "*"),
	)
	return nil, nil, nil
}
