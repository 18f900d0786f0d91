package session

import (
	"context"
	"sync"
)

// fakeTransport is an in-memory Transport double: tests push Events and
// GameStateEvents into it directly and record outbound calls.
type fakeTransport struct {
	mu sync.Mutex

	events     chan Event
	gameEvents map[string]chan GameStateEvent

	accepted  []string
	declined  []string
	moves     []string
	resigns   []string
	chats     []string
	challenges []string
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		events:     make(chan Event, 16),
		gameEvents: make(map[string]chan GameStateEvent),
	}
}

func (f *fakeTransport) StreamEvents(ctx context.Context) (<-chan Event, error) {
	return f.events, nil
}

func (f *fakeTransport) gameChan(gameID string) chan GameStateEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.gameEvents[gameID]
	if !ok {
		ch = make(chan GameStateEvent, 16)
		f.gameEvents[gameID] = ch
	}
	return ch
}

func (f *fakeTransport) StreamGameState(ctx context.Context, gameID string) (<-chan GameStateEvent, error) {
	return f.gameChan(gameID), nil
}

func (f *fakeTransport) AcceptChallenge(ctx context.Context, challengeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accepted = append(f.accepted, challengeID)
	return nil
}

func (f *fakeTransport) DeclineChallenge(ctx context.Context, challengeID, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.declined = append(f.declined, challengeID)
	return nil
}

func (f *fakeTransport) CreateChallenge(ctx context.Context, target string, computerLevel int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.challenges = append(f.challenges, target)
	return nil
}

func (f *fakeTransport) PostChat(ctx context.Context, gameID, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chats = append(f.chats, text)
	return nil
}

func (f *fakeTransport) SubmitMove(ctx context.Context, gameID, move string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.moves = append(f.moves, move)
	return nil
}

func (f *fakeTransport) Resign(ctx context.Context, gameID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resigns = append(f.resigns, gameID)
	return nil
}

var _ Transport = (*fakeTransport)(nil)
