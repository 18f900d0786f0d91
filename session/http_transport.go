package session

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// HTTPTransport implements Transport against a lichess Board API-shaped
// service: NDJSON streaming endpoints over net/http. No third-party HTTP
// client library appears anywhere in the retrieval pack for this kind of
// polling/streaming client, so this stays on net/http — see DESIGN.md.
type HTTPTransport struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

// NewHTTPTransport returns a transport talking to baseURL, authenticated
// with a bearer token.
func NewHTTPTransport(baseURL, token string) *HTTPTransport {
	return &HTTPTransport{BaseURL: strings.TrimRight(baseURL, "/"), Token: token, Client: http.DefaultClient}
}

func (t *HTTPTransport) newRequest(ctx context.Context, method, path string, body string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, t.BaseURL+path, strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+t.Token)
	if body != "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return req, nil
}

func (t *HTTPTransport) do(ctx context.Context, method, path, body string) error {
	req, err := t.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	resp, err := t.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("transport: %s %s: status %d", method, path, resp.StatusCode)
	}
	return nil
}

// wireEvent is the JSON shape of a top-level account event.
type wireEvent struct {
	Type      string `json:"type"`
	Challenge struct {
		ID        string `json:"id"`
		Challenger struct {
			Name string `json:"name"`
		} `json:"challenger"`
	} `json:"challenge"`
	Game struct {
		ID string `json:"id"`
	} `json:"game"`
}

func (t *HTTPTransport) StreamEvents(ctx context.Context) (<-chan Event, error) {
	req, err := t.newRequest(ctx, http.MethodGet, "/api/stream/event", "")
	if err != nil {
		return nil, err
	}
	resp, err := t.Client.Do(req)
	if err != nil {
		return nil, err
	}
	out := make(chan Event)
	go func() {
		defer close(out)
		defer resp.Body.Close()
		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 64*1024), 1<<20)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue // NDJSON keep-alive lines are empty.
			}
			var we wireEvent
			if err := json.Unmarshal(line, &we); err != nil {
				continue
			}
			ev, ok := decodeEvent(we)
			if !ok {
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func decodeEvent(we wireEvent) (Event, bool) {
	switch we.Type {
	case "challenge":
		return Event{Kind: EventChallenge, ChallengeID: we.Challenge.ID, Challenger: we.Challenge.Challenger.Name}, true
	case "challengeCanceled":
		return Event{Kind: EventChallengeCanceled, ChallengeID: we.Challenge.ID}, true
	case "challengeDeclined":
		return Event{Kind: EventChallengeDeclined, ChallengeID: we.Challenge.ID}, true
	case "gameStart":
		return Event{Kind: EventGameStart, GameID: we.Game.ID}, true
	case "gameFinish":
		return Event{Kind: EventGameFinish, GameID: we.Game.ID}, true
	default:
		return Event{}, false
	}
}

type wireGameFull struct {
	Type     string `json:"type"`
	InitialFen string `json:"initialFen"`
	White    struct {
		ID string `json:"id"`
	} `json:"white"`
	Black struct {
		ID string `json:"id"`
	} `json:"black"`
	State wireGameState `json:"state"`
}

type wireGameState struct {
	Type    string `json:"type"`
	Moves   string `json:"moves"`
	WDraw   bool   `json:"wdraw"`
	BDraw   bool   `json:"bdraw"`
	Status  string `json:"status"`
	Winner  string `json:"winner"`
}

type wireChatLine struct {
	Type     string `json:"type"`
	Username string `json:"username"`
	Text     string `json:"text"`
}

func (t *HTTPTransport) StreamGameState(ctx context.Context, gameID string) (<-chan GameStateEvent, error) {
	req, err := t.newRequest(ctx, http.MethodGet, "/api/board/game/stream/"+url.PathEscape(gameID), "")
	if err != nil {
		return nil, err
	}
	resp, err := t.Client.Do(req)
	if err != nil {
		return nil, err
	}
	out := make(chan GameStateEvent)
	go func() {
		defer close(out)
		defer resp.Body.Close()
		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 64*1024), 1<<20)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}
			var head struct {
				Type string `json:"type"`
			}
			if err := json.Unmarshal(line, &head); err != nil {
				continue
			}
			var gse GameStateEvent
			switch head.Type {
			case "gameFull":
				var wgf wireGameFull
				if json.Unmarshal(line, &wgf) != nil {
					continue
				}
				gse = GameStateEvent{Kind: EventGameFull, Full: GameFull{
					InitialFEN: wgf.InitialFen,
					White:      wgf.White.ID,
					Black:      wgf.Black.ID,
					State:      decodeMoveList(wgf.State),
				}}
			case "gameState":
				var wgs wireGameState
				if json.Unmarshal(line, &wgs) != nil {
					continue
				}
				gse = GameStateEvent{Kind: EventGameState, Move: decodeMoveList(wgs)}
			case "chatLine":
				var wcl wireChatLine
				if json.Unmarshal(line, &wcl) != nil {
					continue
				}
				gse = GameStateEvent{Kind: EventChatLine, Chat: ChatLine{Username: wcl.Username, Text: wcl.Text}}
			default:
				continue
			}
			select {
			case out <- gse:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func decodeMoveList(s wireGameState) MoveList {
	var moves []string
	if s.Moves != "" {
		moves = strings.Fields(s.Moves)
	}
	return MoveList{Moves: moves, WhiteDraw: s.WDraw, BlackDraw: s.BDraw, Status: s.Status, Winner: s.Winner}
}

func (t *HTTPTransport) AcceptChallenge(ctx context.Context, challengeID string) error {
	return t.do(ctx, http.MethodPost, "/api/challenge/"+url.PathEscape(challengeID)+"/accept", "")
}

func (t *HTTPTransport) DeclineChallenge(ctx context.Context, challengeID, reason string) error {
	body := url.Values{"reason": {reason}}.Encode()
	return t.do(ctx, http.MethodPost, "/api/challenge/"+url.PathEscape(challengeID)+"/decline", body)
}

func (t *HTTPTransport) CreateChallenge(ctx context.Context, target string, computerLevel int) error {
	if computerLevel > 0 {
		body := url.Values{"level": {strconv.Itoa(computerLevel)}}.Encode()
		return t.do(ctx, http.MethodPost, "/api/challenge/ai", body)
	}
	return t.do(ctx, http.MethodPost, "/api/challenge/"+url.PathEscape(target), "")
}

func (t *HTTPTransport) PostChat(ctx context.Context, gameID, text string) error {
	body := url.Values{"room": {"player"}, "text": {text}}.Encode()
	return t.do(ctx, http.MethodPost, "/api/bot/game/"+url.PathEscape(gameID)+"/chat", body)
}

func (t *HTTPTransport) SubmitMove(ctx context.Context, gameID, move string) error {
	return t.do(ctx, http.MethodPost, "/api/bot/game/"+url.PathEscape(gameID)+"/move/"+url.PathEscape(move), "")
}

func (t *HTTPTransport) Resign(ctx context.Context, gameID string) error {
	return t.do(ctx, http.MethodPost, "/api/bot/game/"+url.PathEscape(gameID)+"/resign", "")
}

// UpgradeAccount converts the authenticated account to a bot account.
// This is a one-way operation outside the per-game Transport contract,
// so it is exposed directly on HTTPTransport rather than the interface.
func (t *HTTPTransport) UpgradeAccount(ctx context.Context) error {
	return t.do(ctx, http.MethodPost, "/api/bot/account/upgrade", "")
}

var _ Transport = (*HTTPTransport)(nil)
