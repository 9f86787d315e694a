package driver

import (
	"context"
	"fmt"
	"net/http/httptest"
	"sync"
	"time"

	"leverbox/internal/apparatus/audio"
	"leverbox/internal/apparatus/domain"
	"leverbox/internal/apparatus/gesture"
	"leverbox/internal/apparatus/hardware"
	"leverbox/internal/apparatus/input"
	"leverbox/internal/apparatus/synclink"
	"leverbox/internal/apparatus/task"
	"leverbox/internal/infra/async"
	"leverbox/internal/infra/cache"
	"leverbox/internal/infra/httpserver"
	"leverbox/internal/infra/node"
	"leverbox/internal/infra/sql"
	"leverbox/internal/logger"
	"leverbox/internal/session/httpapi"
	"leverbox/internal/session/persistence"
	"leverbox/internal/session/usecases"

	"github.com/google/uuid"
)

const (
	_tick       = time.Millisecond
	_pullPhase  = 200 * time.Millisecond
	_settleTime = 100 * time.Millisecond
)

// Box is one simulated apparatus running the real session stack. Time only
// advances when the owning Session says so.
type Box struct {
	Role      domain.Role
	Backend   *hardware.SimulatedBackend
	Apparatus *hardware.Apparatus
	Player    *audio.Player
	Link      *synclink.MemoryLink
	API       *APIDriver

	controller *usecases.ControllerWorker
	journal    *usecases.JournalWorker
	broker     *async.LocalBroker
	cache      *cache.RistrettoCache
	server     *httptest.Server
}

type Session struct {
	Boxes map[domain.Role]*Box
	now   time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewSoloSession() (*Session, error) {
	s := newSession()
	if err := s.addBox(domain.RoleTraining, nil); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func NewPairedSession() (*Session, error) {
	s := newSession()
	masterLink, slaveLink := synclink.NewMemoryPair(0)
	if err := s.addBox(domain.RoleMaster, masterLink); err != nil {
		s.Close()
		return nil, err
	}
	if err := s.addBox(domain.RoleSlave, slaveLink); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func newSession() *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		Boxes:  make(map[domain.Role]*Box),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *Session) addBox(role domain.Role, link *synclink.MemoryLink) error {
	log := logger.NewNop()
	backend := hardware.NewSimulatedBackend()
	windows := input.Windows{Lever: 100 * time.Millisecond, Remote: 100 * time.Millisecond}
	apparatus := hardware.New(backend, windows, hardware.DefaultTiming(), log)
	decoder := gesture.NewDecoder(gesture.Timing{LongPress: 500 * time.Millisecond, Gap: 500 * time.Millisecond}, log)
	player := audio.NewPlayer(audio.DefaultCatalog(1), nil, true, log)
	broker := async.NewLocalBroker()

	ports := task.Ports{
		Apparatus: apparatus,
		Tones:     player,
		Gestures:  decoder,
		Observer:  usecases.NewBrokerObserver(broker),
		Log:       log,
	}
	if link != nil {
		ports.Peer = synclink.NewEndpoint(link, synclink.DefaultMaxAttempts, log)
	}
	engine, err := task.New(task.DefaultSettings(role), ports)
	if err != nil {
		return fmt.Errorf("building %s engine: %w", role, err)
	}

	orm, err := sql.NewMemoryORM(fmt.Sprintf("functional-%s", uuid.NewString()), 5*time.Second)
	if err != nil {
		return err
	}
	simple, err := persistence.NewJournalRepository(orm)
	if err != nil {
		return err
	}
	store, err := cache.New(nil)
	if err != nil {
		return err
	}
	cacheConfig := persistence.DefaultCachedJournalRepositoryConfig()
	cacheConfig.Cache = store
	repository, err := persistence.NewCachedJournalRepository(simple, cacheConfig)
	if err != nil {
		return err
	}
	journal, err := usecases.NewJournalWorker(usecases.JournalWorkerOpts{BoxID: role.String()}, broker, repository)
	if err != nil {
		return err
	}

	board := usecases.NewStatusBoard(node.GetNodeInfo(), "76")
	controller := usecases.NewControllerWorker(time.NewTicker(time.Hour), apparatus, decoder, engine, board, 0)

	server := httpserver.NewServer(
		httpserver.ServerOpts{},
		httpapi.NewStatusController(board),
		httpapi.NewTrialController(usecases.NewJournalService(repository)),
	)
	testServer := httptest.NewServer(server.Handler())

	s.wg.Add(1)
	go journal.Run(s.ctx, s.wg.Done)

	s.Boxes[role] = &Box{
		Role:       role,
		Backend:    backend,
		Apparatus:  apparatus,
		Player:     player,
		Link:       link,
		API:        NewAPIDriver(testServer.URL),
		controller: controller,
		journal:    journal,
		broker:     broker,
		cache:      store,
		server:     testServer,
	}
	return nil
}

// Box returns the box playing role, or nil.
func (s *Session) Box(role domain.Role) *Box {
	return s.Boxes[role]
}

// Advance ticks every box once per millisecond of simulated time. Boxes tick
// in role order so a paired run is deterministic.
func (s *Session) Advance(d time.Duration) {
	end := s.now + d
	for s.now < end {
		s.now += _tick
		for _, role := range []domain.Role{domain.RoleTraining, domain.RoleMaster, domain.RoleSlave} {
			if box, ok := s.Boxes[role]; ok {
				box.controller.Tick(s.now)
			}
		}
	}
}

// Pull moves the lever of role fully up, then fully down, then lets go.
func (s *Session) Pull(role domain.Role) {
	box := s.Boxes[role]
	box.Backend.SetLever(true, false)
	s.Advance(_pullPhase)
	box.Backend.SetLever(false, true)
	s.Advance(_pullPhase)
	box.Backend.SetLever(false, false)
	s.Advance(_settleTime)
}

// Press holds the remote of role for hold and then waits for the gesture to
// close.
func (s *Session) Press(role domain.Role, hold time.Duration) {
	box := s.Boxes[role]
	box.Backend.SetRemote(true)
	s.Advance(hold)
	box.Backend.SetRemote(false)
	s.Advance(time.Second)
}

func (s *Session) Now() time.Duration {
	return s.now
}

func (s *Session) Close() {
	for _, box := range s.Boxes {
		box.journal.Shutdown()
		box.controller.Shutdown()
	}
	s.cancel()
	s.wg.Wait()
	for _, box := range s.Boxes {
		box.server.Close()
		box.broker.Stop()
		box.cache.Close()
		_ = box.Apparatus.Close()
	}
}
