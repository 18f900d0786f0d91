package session

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/havenwing/pawnbot/engine"
)

// Game is the per-game task: an unbounded inbound Message queue fed by
// the manager and by a dedicated board-state-stream goroutine, draining
// into engine moves submitted back through Transport.
type Game struct {
	ID        string
	Username  string // our own account's username, to resolve OurColor
	Version   string // answered on a ".version" chat line
	Transport Transport
	Pool      *SearchPool
	Logger    *zap.Logger

	inbox *queue

	board           engine.Board
	ourColor        engine.Color
	toMove          engine.Color
	lastOwnMove     engine.Move
	haveLastOwnMove bool
}

// NewGame constructs a Game ready to have Run called on it.
func NewGame(id, username, version string, transport Transport, pool *SearchPool, logger *zap.Logger) *Game {
	return &Game{
		ID:        id,
		Username:  username,
		Version:   version,
		Transport: transport,
		Pool:      pool,
		Logger:    logger,
		inbox:     newQueue(),
	}
}

// Send enqueues a message for this game's task. Never blocks.
func (g *Game) Send(m Message) { g.inbox.Send(m) }

// Run drives the game to completion: the board-state-stream goroutine
// and the message loop are supervised together, so either one failing
// tears down the other. A panic in the message loop is recovered and
// returned as this game's error.
func (g *Game) Run(ctx context.Context) error {
	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	grp, gctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		return g.streamBoardState(streamCtx)
	})
	grp.Go(func() (err error) {
		defer cancel() // Abort (or any exit) stops the board-state stream too.
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("game %s: panic: %v", g.ID, r)
			}
		}()
		return g.messageLoop(gctx)
	})
	return grp.Wait()
}

// nextMessage blocks for the next inbound Message, but also respects ctx
// cancellation — the queue itself has no way to be woken by a context,
// so each call borrows a goroutine to bridge the two.
func (g *Game) nextMessage(ctx context.Context) (Message, bool) {
	type result struct {
		m  Message
		ok bool
	}
	ch := make(chan result, 1)
	go func() {
		m, ok := g.inbox.Recv()
		ch <- result{m, ok}
	}()
	select {
	case r := <-ch:
		return r.m, r.ok
	case <-ctx.Done():
		return Message{}, false
	}
}

func (g *Game) messageLoop(ctx context.Context) error {
	for {
		msg, ok := g.nextMessage(ctx)
		if !ok {
			return ctx.Err()
		}
		if err := g.handle(ctx, msg); err != nil {
			g.Logger.Error("game message handling failed", zap.String("game", g.ID), zap.Error(err))
		}
		if msg.Kind == MsgAbort {
			return nil
		}
	}
}

func (g *Game) handle(ctx context.Context, msg Message) error {
	switch msg.Kind {
	case MsgBoardState:
		return g.handleBoardState(ctx, msg)
	case MsgOpponentMove:
		return g.handleOpponentMove(ctx, msg)
	case MsgBoardChat:
		return g.handleChat(ctx, msg)
	case MsgAbort, MsgDrawOffer, MsgNewChallenge, MsgNewGame:
		return nil
	default:
		return nil
	}
}

func (g *Game) handleBoardState(ctx context.Context, msg Message) error {
	b, fenColor, err := engine.ParseFEN(msg.InitialFEN)
	if err != nil {
		return err
	}
	g.board = b
	g.ourColor = msg.OurColor

	mover := fenColor
	for _, uci := range msg.Moves {
		m, err := engine.ParseMove(uci)
		if err != nil {
			return err
		}
		g.board = engine.ApplyMove(g.board, mover, m)
		mover = mover.Opposite()
	}
	g.toMove = mover
	return g.maybeMove(ctx)
}

func (g *Game) handleOpponentMove(ctx context.Context, msg Message) error {
	if len(msg.Moves) == 0 {
		return nil
	}
	uci := msg.Moves[len(msg.Moves)-1]
	m, err := engine.ParseMove(uci)
	if err != nil {
		return err
	}
	if g.haveLastOwnMove && m == g.lastOwnMove {
		// The service can redeliver our own move on the state stream
		// after our SubmitMove lands; applying it twice would desync
		// the board. Skip it once.
		g.haveLastOwnMove = false
		return nil
	}
	g.board = engine.ApplyMove(g.board, g.toMove, m)
	g.toMove = g.toMove.Opposite()
	return g.maybeMove(ctx)
}

func (g *Game) handleChat(ctx context.Context, msg Message) error {
	if strings.TrimSpace(msg.Chat.Text) == ".version" {
		return g.Transport.PostChat(ctx, g.ID, "pawnbot "+g.Version)
	}
	return nil
}

// maybeMove submits a search job if it is now our turn, applying and
// submitting its result; a result with the zero Move means the root had
// no legal move (checkmate or stalemate), so the game is resigned.
func (g *Game) maybeMove(ctx context.Context) error {
	if g.toMove != g.ourColor {
		return nil
	}
	reply := g.Pool.Submit(g.board, g.toMove)
	select {
	case res := <-reply:
		if res.Move == (engine.Move{}) {
			return g.Transport.Resign(ctx, g.ID)
		}
		if err := g.Transport.SubmitMove(ctx, g.ID, res.Move.String()); err != nil {
			return err
		}
		g.board = engine.ApplyMove(g.board, g.toMove, res.Move)
		g.toMove = g.toMove.Opposite()
		g.lastOwnMove = res.Move
		g.haveLastOwnMove = true
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *Game) streamBoardState(ctx context.Context) error {
	events, err := g.Transport.StreamGameState(ctx, g.ID)
	if err != nil {
		return err
	}
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			g.inbox.Send(g.translateGameStateEvent(ev))
		case <-ctx.Done():
			return nil
		}
	}
}

func (g *Game) translateGameStateEvent(ev GameStateEvent) Message {
	switch ev.Kind {
	case EventGameFull:
		color := engine.White
		if ev.Full.Black == g.Username {
			color = engine.Black
		}
		fen := ev.Full.InitialFEN
		if fen == "" {
			fen = "startpos"
		}
		return Message{Kind: MsgBoardState, InitialFEN: fen, OurColor: color, Moves: ev.Full.State.Moves}
	case EventGameState:
		return Message{Kind: MsgOpponentMove, Moves: ev.Move.Moves}
	case EventChatLine:
		return Message{Kind: MsgBoardChat, Chat: ev.Chat}
	default:
		return Message{}
	}
}
