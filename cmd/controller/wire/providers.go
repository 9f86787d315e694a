package wire

import (
	"fmt"
	"log/slog"
	"time"

	"leverbox/cmd/config"
	"leverbox/internal/apparatus/audio"
	"leverbox/internal/apparatus/domain"
	"leverbox/internal/apparatus/gesture"
	"leverbox/internal/apparatus/hardware"
	"leverbox/internal/apparatus/synclink"
	"leverbox/internal/apparatus/task"
	"leverbox/internal/infra/async"
	"leverbox/internal/infra/cache"
	"leverbox/internal/infra/httpserver"
	"leverbox/internal/infra/mqtt"
	"leverbox/internal/infra/node"
	"leverbox/internal/infra/sql"
	"leverbox/internal/logger"
	"leverbox/internal/session/communication"
	"leverbox/internal/session/httpapi"
	"leverbox/internal/session/persistence"
	"leverbox/internal/session/usecases"
)

const (
	_journalDatabase = "journal"
	_journalTimeout  = 5 * time.Second
)

// Box is everything cmd/controller starts and stops. Relay and Server are
// nil when mqtt or http are disabled.
type Box struct {
	Node       node.Node
	Player     *audio.Player
	Controller *usecases.ControllerWorker
	Journal    *usecases.JournalWorker
	Metrics    *usecases.MetricWorker
	Relay      *usecases.RelayWorker
	Stream     *httpapi.EventStreamController
	Server     *httpserver.StandardServer
}

// Workers lists the workers that are present.
func (b *Box) Workers() []async.Worker {
	workers := []async.Worker{b.Controller, b.Journal, b.Metrics}
	if b.Relay != nil {
		workers = append(workers, b.Relay)
	}
	return workers
}

func provideNode() node.Node {
	return node.GetNodeInfo()
}

func provideLogger(cfg config.AppConfig) logger.Logger {
	return logger.New(cfg.LoggerOptions())
}

func provideTaskSettings(cfg config.AppConfig) (task.Settings, error) {
	return cfg.TaskSettings()
}

// provideBackend releases the pins on cleanup. The control loop closes the
// backend too when it stops; a second close is a no-op.
func provideBackend(cfg config.AppConfig) (hardware.Backend, func(), error) {
	var backend hardware.Backend
	if cfg.Hardware.Backend == config.BackendGPIO {
		backend = hardware.NewGPIOBackend(cfg.GPIOConfig())
	} else {
		slog.Warn("using simulated hardware backend")
		backend = hardware.NewSimulatedBackend()
	}

	return backend, func() {
		if err := backend.Close(); err != nil {
			slog.Error("releasing hardware backend", slog.Any("error", err))
		}
	}, nil
}

func provideApparatus(cfg config.AppConfig, backend hardware.Backend, log logger.Logger) *hardware.Apparatus {
	return hardware.New(backend, cfg.InputWindows(), cfg.HardwareTiming(), log)
}

func provideDecoder(cfg config.AppConfig, log logger.Logger) *gesture.Decoder {
	return gesture.NewDecoder(cfg.GestureTiming(), log)
}

// provideMQTTClient returns a nil client when mqtt is disabled.
func provideMQTTClient(cfg config.AppConfig, box node.Node) (mqtt.Client, func(), error) {
	if !cfg.MQTT.Enabled {
		return nil, func() {}, nil
	}

	clientID := cfg.MQTT.ClientID
	if clientID == "" {
		clientID = fmt.Sprintf("leverbox-%s-%s", cfg.Box.Role, box.ShortID())
	}

	client, err := mqtt.NewSimpleClient(mqtt.SimpleClientOpts{
		Broker:         cfg.MQTT.Broker,
		ClientID:       clientID,
		Username:       cfg.MQTT.Username,
		Password:       cfg.MQTT.Password, //pragma: allowlist secret
		PublishTimeout: cfg.Radio.PublishTimeout,
	})
	if err != nil {
		return nil, nil, err
	}

	return client, client.Disconnect, nil
}

func provideAudioSink(cfg config.AppConfig, client mqtt.Client) audio.Sink {
	if cfg.Audio.Sink != config.SinkMQTT || client == nil {
		return nil
	}
	return communication.NewTonePublisher(client, cfg.Box.Channel, cfg.Box.Role)
}

func providePlayer(cfg config.AppConfig, sink audio.Sink, log logger.Logger) *audio.Player {
	return audio.NewPlayer(audio.DefaultCatalog(cfg.Audio.Folder), sink, cfg.Audio.Enabled, log)
}

func peerRole(role domain.Role) domain.Role {
	if role == domain.RoleMaster {
		return domain.RoleSlave
	}
	return domain.RoleMaster
}

// providePeer returns a nil peer for the training role.
func providePeer(cfg config.AppConfig, settings task.Settings, client mqtt.Client, log logger.Logger) (task.Peer, error) {
	if !settings.Role.Paired() {
		return nil, nil
	}
	if client == nil {
		return nil, fmt.Errorf("%w: role %s", task.ErrMissingPeer, settings.Role)
	}

	link, err := mqtt.NewLink(client, mqtt.LinkOpts{
		Channel:   cfg.Box.Channel,
		LocalRole: settings.Role.String(),
		PeerRole:  peerRole(settings.Role).String(),
	})
	if err != nil {
		return nil, err
	}

	return synclink.NewEndpoint(link, cfg.Radio.MaxAttempts, log), nil
}

func provideEngine(
	settings task.Settings,
	apparatus *hardware.Apparatus,
	player *audio.Player,
	peer task.Peer,
	decoder *gesture.Decoder,
	observer *usecases.BrokerObserver,
	log logger.Logger,
) (*task.Engine, error) {
	return task.New(settings, task.Ports{
		Apparatus: apparatus,
		Tones:     player,
		Peer:      peer,
		Gestures:  decoder,
		Observer:  observer,
		Log:       log,
	})
}

func provideStatusBoard(cfg config.AppConfig, box node.Node) *usecases.StatusBoard {
	return usecases.NewStatusBoard(box, cfg.Box.Channel)
}

func provideTicker(cfg config.AppConfig) (*time.Ticker, func()) {
	ticker := time.NewTicker(cfg.Timing.Tick)
	return ticker, ticker.Stop
}

func provideControllerWorker(
	cfg config.AppConfig,
	ticker *time.Ticker,
	apparatus *hardware.Apparatus,
	decoder *gesture.Decoder,
	engine *task.Engine,
	board *usecases.StatusBoard,
) *usecases.ControllerWorker {
	return usecases.NewControllerWorker(ticker, apparatus, decoder, engine, board, cfg.Timing.LeverDebounce)
}

func provideDatabase() (sql.ORM, error) {
	return sql.NewMemoryORM(_journalDatabase, _journalTimeout)
}

func provideCache() (*cache.RistrettoCache, func(), error) {
	store, err := cache.New(nil)
	if err != nil {
		return nil, nil, err
	}
	return store, store.Close, nil
}

func provideCachedJournalRepository(repository *persistence.SimpleJournalRepository, store *cache.RistrettoCache) (*persistence.CachedJournalRepository, error) {
	config := persistence.DefaultCachedJournalRepositoryConfig()
	config.Cache = store
	return persistence.NewCachedJournalRepository(repository, config)
}

func provideJournalWorkerOpts(cfg config.AppConfig, box node.Node) usecases.JournalWorkerOpts {
	return usecases.JournalWorkerOpts{
		BoxID:              box.ID,
		RecordStateChanges: cfg.Journal.RecordStateChanges,
	}
}

func provideMetricWorker(broker async.InternalBroker, settings task.Settings) (*usecases.MetricWorker, error) {
	return usecases.NewMetricWorker(broker, settings.RewardAmount)
}

// provideRelayWorker returns nil when there is no mqtt client to relay to.
func provideRelayWorker(cfg config.AppConfig, box node.Node, broker async.InternalBroker, client mqtt.Client) (*usecases.RelayWorker, error) {
	if client == nil {
		return nil, nil
	}
	publisher := communication.NewEventPublisher(client, cfg.Box.Channel, cfg.Box.Role)
	return usecases.NewRelayWorker(box.ID, broker, publisher)
}

// provideServer returns nil when the http api is disabled.
func provideServer(
	cfg config.AppConfig,
	status *httpapi.StatusController,
	trials *httpapi.TrialController,
	stream *httpapi.EventStreamController,
) *httpserver.StandardServer {
	if !cfg.HTTP.Enabled {
		return nil
	}
	return httpserver.NewServer(httpserver.ServerOpts{Addr: cfg.HTTP.Addr}, status, trials, stream)
}
