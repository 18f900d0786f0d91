package session

import "context"

// Transport is the contract the session manager drives the remote chess
// service through. The manager and per-game tasks depend only on this
// interface; HTTPTransport is one concrete implementation, and tests
// drive the same code against an in-memory fake.
type Transport interface {
	StreamEvents(ctx context.Context) (<-chan Event, error)
	StreamGameState(ctx context.Context, gameID string) (<-chan GameStateEvent, error)
	AcceptChallenge(ctx context.Context, challengeID string) error
	DeclineChallenge(ctx context.Context, challengeID, reason string) error
	CreateChallenge(ctx context.Context, target string, computerLevel int) error
	PostChat(ctx context.Context, gameID, text string) error
	SubmitMove(ctx context.Context, gameID, move string) error
	Resign(ctx context.Context, gameID string) error
}
