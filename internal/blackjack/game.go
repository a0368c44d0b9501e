package blackjack

import (
	"sort"
	"sync"
	"time"

	"github.com/coder/quartz"
)

// DefaultMaxPlayers is the roster capacity of a single game session.
const DefaultMaxPlayers = 6

// dealerStandValue is the hand value at which the dealer stops drawing.
const dealerStandValue = 17

// State is the lifecycle state of a game session.
type State int

// Game session states.
const (
	StateWaiting State = iota
	StateInProgress
	StateFinished
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StateInProgress:
		return "in_progress"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Status is a player's status within the current round.
type Status int

// Player statuses.
const (
	StatusWaiting Status = iota
	StatusPlaying
	StatusStood
	StatusBusted
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusPlaying:
		return "playing"
	case StatusStood:
		return "stood"
	case StatusBusted:
		return "busted"
	default:
		return "unknown"
	}
}

// Result is a player's outcome for a resolved round.
type Result int

// Round results.
const (
	ResultNone Result = iota
	ResultWin
	ResultLose
	ResultPush
	ResultBust
	ResultDealerBust
)

// String returns the result name.
func (r Result) String() string {
	switch r {
	case ResultWin:
		return "win"
	case ResultLose:
		return "lose"
	case ResultPush:
		return "push"
	case ResultBust:
		return "bust"
	case ResultDealerBust:
		return "dealer_bust"
	default:
		return "none"
	}
}

// Outcome is the distinguished result of a game action, consumed by the
// handler layer to decide how to respond. Precondition violations such as
// acting out of turn are outcomes, not errors.
type Outcome int

// Action outcomes.
const (
	OutcomeNotYourTurn Outcome = iota
	OutcomeContinue
	OutcomeBust
	OutcomeStood
	OutcomeNextPlayer
	OutcomeGameOver
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeNotYourTurn:
		return "not_your_turn"
	case OutcomeContinue:
		return "continue"
	case OutcomeBust:
		return "bust"
	case OutcomeStood:
		return "stood"
	case OutcomeNextPlayer:
		return "next_player"
	case OutcomeGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Player is one seat at the table. Hand order is deal order. TotalScore
// accumulates across rematches within the same session; GameScore is the
// current round only.
type Player struct {
	ID         int64
	Name       string
	Hand       []Card
	Status     Status
	Result     Result
	GameScore  int
	TotalScore int
}

// Standing is one leaderboard row.
type Standing struct {
	Name       string
	TotalScore int
}

// Game is one chat's blackjack session. All exported methods serialize on
// an internal mutex, so a sweeper removing the session while a handler is
// mutating it observes a consistent state rather than a torn one.
type Game struct {
	mu sync.Mutex

	chatID    int64
	creatorID int64

	players    map[int64]*Player
	order      []int64 // join order, drives turn sequencing
	maxPlayers int

	dealerHand []Card
	deck       *Deck

	state State
	turn  int // index into order; len(order) means dealer's turn

	clock        quartz.Clock
	createdAt    time.Time
	lastActivity time.Time
}

// NewGame creates a session for a chat with the creator seated as the
// first player. A maxPlayers of zero or less falls back to
// DefaultMaxPlayers.
func NewGame(chatID, creatorID int64, creatorName string, maxPlayers int, clock quartz.Clock) *Game {
	if maxPlayers <= 0 {
		maxPlayers = DefaultMaxPlayers
	}
	now := clock.Now()
	g := &Game{
		chatID:       chatID,
		creatorID:    creatorID,
		players:      make(map[int64]*Player),
		maxPlayers:   maxPlayers,
		deck:         NewDeck(),
		state:        StateWaiting,
		clock:        clock,
		createdAt:    now,
		lastActivity: now,
	}
	g.addPlayerLocked(creatorID, creatorName)
	return g
}

// ChatID returns the chat this session belongs to.
func (g *Game) ChatID() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.chatID
}

// CreatorID returns the player allowed to start, cancel, and rematch.
func (g *Game) CreatorID() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.creatorID
}

// State returns the session's lifecycle state.
func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// PlayerCount returns the roster size.
func (g *Game) PlayerCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.order)
}

// Touch records activity on the session, deferring inactivity eviction.
func (g *Game) Touch() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.touchLocked()
}

func (g *Game) touchLocked() {
	g.lastActivity = g.clock.Now()
}

// IsInactive reports whether no activity has been recorded for longer
// than threshold.
func (g *Game) IsInactive(threshold time.Duration) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.clock.Since(g.lastActivity) > threshold
}

// AddPlayer seats a new player. It returns false without side effects if
// the round has already started, the player is already seated, or the
// table is full. A stale Join press mid-round must not seat anyone: a
// seat added after the deal would never get a turn and would be settled
// with an empty hand.
func (g *Game) AddPlayer(id int64, name string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.addPlayerLocked(id, name)
}

func (g *Game) addPlayerLocked(id int64, name string) bool {
	if g.state != StateWaiting {
		return false
	}
	if _, ok := g.players[id]; ok {
		return false
	}
	if len(g.order) >= g.maxPlayers {
		return false
	}
	g.players[id] = &Player{
		ID:     id,
		Name:   name,
		Status: StatusWaiting,
	}
	g.order = append(g.order, id)
	g.touchLocked()
	return true
}

// Start begins a round: fresh deck, two cards to every player and the
// dealer, statuses set to playing, round scores zeroed, turn handed to
// the first player in join order. Calling Start on a finished session is
// the rematch path; total scores are preserved. Returns false if the
// table is empty.
func (g *Game) Start() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.order) < 1 {
		return false
	}

	g.deck = NewDeck()
	g.dealerHand = nil

	for _, id := range g.order {
		p := g.players[id]
		p.Hand = []Card{g.deck.Deal(), g.deck.Deal()}
		p.Status = StatusPlaying
		p.Result = ResultNone
		p.GameScore = 0
	}

	g.dealerHand = []Card{g.deck.Deal(), g.deck.Deal()}
	g.turn = 0
	g.state = StateInProgress
	g.touchLocked()

	return true
}

// currentPlayerLocked returns the player whose turn it is, or nil when the
// turn index is past the end of the roster (dealer's turn).
func (g *Game) currentPlayerLocked() *Player {
	if g.turn < len(g.order) {
		return g.players[g.order[g.turn]]
	}
	return nil
}

// CurrentPlayerID returns the id of the player whose turn it is. The
// second return is false when all players are done and the dealer is up.
func (g *Game) CurrentPlayerID() (int64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if p := g.currentPlayerLocked(); p != nil {
		return p.ID, true
	}
	return 0, false
}

// Hit deals one card to the player if it is their turn. A hand going over
// 21 busts the player and yields OutcomeBust; otherwise OutcomeContinue is
// returned and the same player stays active. The turn never advances here;
// the caller invokes NextPlayer after a terminal outcome.
func (g *Game) Hit(id int64) Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()

	p := g.currentPlayerLocked()
	if p == nil || p.ID != id || p.Status != StatusPlaying {
		return OutcomeNotYourTurn
	}

	p.Hand = append(p.Hand, g.deck.Deal())
	g.touchLocked()

	if HandValue(p.Hand) > 21 {
		p.Status = StatusBusted
		return OutcomeBust
	}
	return OutcomeContinue
}

// Stand ends the player's turn if it is theirs. The caller invokes
// NextPlayer afterwards; Stand itself does not advance the turn.
func (g *Game) Stand(id int64) Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()

	p := g.currentPlayerLocked()
	if p == nil || p.ID != id || p.Status != StatusPlaying {
		return OutcomeNotYourTurn
	}

	p.Status = StatusStood
	g.touchLocked()
	return OutcomeStood
}

// NextPlayer advances the turn past players who have stood or busted. If a
// playing player remains it returns OutcomeNextPlayer and waits on them.
// Once the roster is exhausted the dealer draws to 17, results are
// computed for every player, the session moves to finished, and
// OutcomeGameOver is returned.
func (g *Game) NextPlayer() Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.turn++
	for {
		p := g.currentPlayerLocked()
		if p == nil || p.Status == StatusPlaying {
			break
		}
		g.turn++
	}

	if g.currentPlayerLocked() == nil {
		g.dealerPlayLocked()
		g.state = StateFinished
		g.calculateResultsLocked()
		g.touchLocked()
		return OutcomeGameOver
	}

	g.touchLocked()
	return OutcomeNextPlayer
}

// dealerPlayLocked draws for the dealer while the hand value is below 17.
// No soft-17 special casing.
func (g *Game) dealerPlayLocked() {
	for HandValue(g.dealerHand) < dealerStandValue {
		g.dealerHand = append(g.dealerHand, g.deck.Deal())
	}
}

// calculateResultsLocked scores every player against the dealer and folds
// the round score into the running total. Each player is scored
// independently: bust loses regardless of the dealer, a dealer bust pays
// every surviving player, otherwise values are compared.
func (g *Game) calculateResultsLocked() {
	dealerValue := HandValue(g.dealerHand)

	for _, id := range g.order {
		p := g.players[id]
		playerValue := HandValue(p.Hand)

		switch {
		case p.Status == StatusBusted:
			p.Result = ResultBust
			p.GameScore = -1
		case dealerValue > 21:
			p.Result = ResultDealerBust
			p.GameScore = 1
		case playerValue > dealerValue:
			p.Result = ResultWin
			p.GameScore = 1
		case playerValue < dealerValue:
			p.Result = ResultLose
			p.GameScore = -1
		default:
			p.Result = ResultPush
			p.GameScore = 0
		}

		p.TotalScore += p.GameScore
	}
}

// Standings returns the roster sorted by cumulative score, best first.
// Equal scores keep join order.
func (g *Game) Standings() []Standing {
	g.mu.Lock()
	defer g.mu.Unlock()

	standings := make([]Standing, 0, len(g.order))
	for _, id := range g.order {
		p := g.players[id]
		standings = append(standings, Standing{Name: p.Name, TotalScore: p.TotalScore})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].TotalScore > standings[j].TotalScore
	})
	return standings
}
