package session

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AcceptPolicy decides whether an incoming challenge should be accepted.
type AcceptPolicy func(challenger string) (accept bool, reason string)

// AcceptAll is the default AcceptPolicy: take every challenge.
func AcceptAll(string) (bool, string) { return true, "" }

// DeclineAll rejects every challenge, used by --no-accept.
func DeclineAll(string) (bool, string) { return false, "generic" }

// Manager owns the account-level event stream and spawns one Game task
// per active gameStart event, supervising each under its own errgroup.
type Manager struct {
	Transport Transport
	Pool      *SearchPool
	Logger    *zap.Logger
	Username  string
	Version   string
	Accept    AcceptPolicy
	Rematch   bool

	mu             sync.Mutex
	games          map[string]*Game
	lastChallenger string
}

// NewManager returns a Manager with AcceptAll as its default policy.
func NewManager(transport Transport, pool *SearchPool, logger *zap.Logger, username, version string) *Manager {
	return &Manager{
		Transport: transport,
		Pool:      pool,
		Logger:    logger,
		Username:  username,
		Version:   version,
		Accept:    AcceptAll,
		games:     make(map[string]*Game),
	}
}

// Run streams account events until ctx is canceled, dispatching each to
// challenge-response or game-spawn handling. It returns nil on a clean
// ctx cancellation and the first unrecovered error otherwise.
func (m *Manager) Run(ctx context.Context) error {
	events, err := m.Transport.StreamEvents(ctx)
	if err != nil {
		return err
	}

	grp, gctx := errgroup.WithContext(ctx)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return grp.Wait()
			}
			m.dispatch(gctx, grp, ev)
		case <-ctx.Done():
			return grp.Wait()
		}
	}
}

func (m *Manager) dispatch(ctx context.Context, grp *errgroup.Group, ev Event) {
	switch ev.Kind {
	case EventChallenge:
		m.handleChallenge(ctx, ev)
	case EventChallengeCanceled, EventChallengeDeclined:
		// No further action: the challenge never became a game.
	case EventGameStart:
		m.spawnGame(ctx, grp, ev.GameID)
	case EventGameFinish:
		m.retireGame(ev.GameID)
		m.maybeRematch(ctx)
	}
}

func (m *Manager) handleChallenge(ctx context.Context, ev Event) {
	accept, reason := m.Accept(ev.Challenger)
	var err error
	if accept {
		err = m.Transport.AcceptChallenge(ctx, ev.ChallengeID)
		if err == nil {
			m.mu.Lock()
			m.lastChallenger = ev.Challenger
			m.mu.Unlock()
		}
	} else {
		err = m.Transport.DeclineChallenge(ctx, ev.ChallengeID, reason)
	}
	if err != nil {
		m.Logger.Error("challenge response failed",
			zap.String("challenge", ev.ChallengeID), zap.Bool("accept", accept), zap.Error(err))
	}
}

// maybeRematch re-challenges the account's last accepted opponent when
// --rematch is set. The opponent ladder itself (matchmaking, ratings)
// is out of scope; this only repeats the most recent pairing.
func (m *Manager) maybeRematch(ctx context.Context) {
	if !m.Rematch {
		return
	}
	m.mu.Lock()
	opponent := m.lastChallenger
	m.mu.Unlock()
	if opponent == "" {
		return
	}
	if err := m.Transport.CreateChallenge(ctx, opponent, 0); err != nil {
		m.Logger.Error("rematch challenge failed", zap.String("opponent", opponent), zap.Error(err))
	}
}

func (m *Manager) spawnGame(ctx context.Context, grp *errgroup.Group, gameID string) {
	m.mu.Lock()
	if _, exists := m.games[gameID]; exists {
		m.mu.Unlock()
		return
	}
	g := NewGame(gameID, m.Username, m.Version, m.Transport, m.Pool, m.Logger)
	m.games[gameID] = g
	m.mu.Unlock()

	grp.Go(func() error {
		err := g.Run(ctx)
		m.retireGame(gameID)
		if err != nil && ctx.Err() == nil {
			m.Logger.Error("game task ended with error", zap.String("game", gameID), zap.Error(err))
		}
		return nil // a single game's failure must not tear down the manager.
	})
}

func (m *Manager) retireGame(gameID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, gameID)
}

// Abort sends MsgAbort to every active game, used by the --abort flag.
func (m *Manager) Abort() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.games {
		g.Send(Message{Kind: MsgAbort})
	}
}
