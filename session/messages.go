// Package session implements the agent's event-dispatch layer: it turns
// a remote chess service's event stream into one long-lived goroutine
// per game, mediates acceptance policy, and routes engine output back
// through Transport.
package session

import "github.com/havenwing/pawnbot/engine"

// Event is a top-level, account-scoped notification from the service,
// delivered by Transport.StreamEvents.
type Event struct {
	Kind        EventKind
	ChallengeID string
	Challenger  string
	GameID      string
}

// EventKind discriminates Event.
type EventKind int

const (
	EventChallenge EventKind = iota
	EventChallengeCanceled
	EventChallengeDeclined
	EventGameStart
	EventGameFinish
)

// GameStateEvent is a per-game notification from Transport.StreamGameState.
type GameStateEvent struct {
	Kind EventKind // one of GameFull/GameState/ChatLine below
	Full GameFull
	Move MoveList
	Chat ChatLine
}

const (
	EventGameFull EventKind = iota + 100
	EventGameState
	EventChatLine
)

// GameFull is sent once at the start of a board-state stream.
type GameFull struct {
	InitialFEN string
	White      string
	Black      string
	OurColor   engine.Color
	State      MoveList
}

// MoveList is a GameState update: the full move list so far plus status.
type MoveList struct {
	Moves     []string
	WhiteDraw bool
	BlackDraw bool
	Status    string // e.g. "started"; Game does not inspect it and acts on every update.
	Winner    string
}

// ChatLine is a single chat message observed in a game.
type ChatLine struct {
	Username string
	Text     string
}

// MessageKind discriminates Message, the per-game task's inbound queue
// element. These are the seven kinds named by the concurrency model.
type MessageKind int

const (
	MsgNewChallenge MessageKind = iota
	MsgNewGame
	MsgAbort
	MsgBoardChat
	MsgBoardState
	MsgOpponentMove
	MsgDrawOffer
)

// Message is one item on a per-game task's unbounded inbound channel.
type Message struct {
	Kind MessageKind

	// Populated for MsgBoardState: the initial position and our color.
	InitialFEN string
	OurColor   engine.Color

	// Populated for MsgBoardState/MsgOpponentMove: the move list observed
	// so far (MsgBoardState carries the full list at game start).
	Moves []string

	// Populated for MsgBoardChat.
	Chat ChatLine

	// Populated for MsgDrawOffer: which side offered.
	DrawOfferedBy engine.Color
}
