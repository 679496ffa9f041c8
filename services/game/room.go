package game

import (
	game_constants "Veinticuatro/constants/game"
	"log"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type GameState string

const (
	StateWaiting  GameState = "WAITING"
	StatePlaying  GameState = "PLAYING"
	StateSolving  GameState = "SOLVING"
	StateRoundEnd GameState = "ROUND_END"
	StateReplay   GameState = "REPLAY"
	StateGameOver GameState = "GAME_OVER"
)

// Round end reasons
const (
	ReasonCorrectSolution   = "correct_solution"
	ReasonIncorrectSolution = "incorrect_solution"
	ReasonTimeout           = "timeout"
	ReasonNoSolution        = "no_solution"
	ReasonForfeit           = "forfeit"
	ReasonDeckEmpty         = "deck_empty"
	ReasonDeckOverflow      = "deck_overflow"
)

// Timer keys. One outstanding handle per key per room, always cleared on a
// superseding transition so a stale timer can never fire into a later round.
const (
	timerRound   = "round"
	timerSolve   = "solve"
	timerReplay  = "replay"
	timerForfeit = "forfeit:" // + playerID
)

// Player holds one seat of a room. ID is the stable identity resolved from
// the JWT, SocketID is the only field that rebinds across reconnects.
type Player struct {
	ID             string     `json:"id"`
	SocketID       string     `json:"socketId"`
	Name           string     `json:"name"`
	Deck           []Card     `json:"-"`
	IsReady        bool       `json:"isReady"`
	Connected      bool       `json:"connected"`
	DisconnectedAt *time.Time `json:"-"`
}

// Emitter abstracts the socket.io broadcast so rooms can be tested in
// isolation. The production implementation emits to socket.Room(roomID).
type Emitter interface {
	EmitToRoom(roomID string, event string, payload gin.H)
}

// RoundResult is the settlement verdict broadcast as round-ended.
type RoundResult struct {
	Round    int       `json:"round"`
	WinnerID string    `json:"winnerId,omitempty"`
	LoserID  string    `json:"loserId,omitempty"`
	Correct  bool      `json:"correct"`
	Reason   string    `json:"reason"`
	Solution *Solution `json:"solution,omitempty"`
}

// GameRoom holds the authoritative state of one match. Every mutation runs
// under mu: the check-and-set of the claim, the card transfers and the timer
// bookkeeping are all serialized per room, which is the whole concurrency
// contract (rooms are independent of each other).
type GameRoom struct {
	mu sync.Mutex

	ID             string
	RoomType       string
	IsSoloPractice bool

	State        GameState
	Players      []*Player
	CenterCards  []Card
	DiscardPile  []Card
	CurrentRound int

	Stats GameStats

	ClaimantID     string
	claimedAt      time.Time
	roundStartedAt time.Time
	startedAt      time.Time

	// Terminal condition detected at settlement time but deferred until the
	// winning replay has been shown
	pendingOver *gameOverInfo

	timers    map[string]*time.Timer
	timings   Timings
	destroyed bool

	emitter  Emitter
	recorder OutcomeRecorder
	badges   BadgeHook
	onEmpty  func(roomID string)
}

type gameOverInfo struct {
	winnerID string
	loserID  string
	reason   string
}

// Timings groups the cancellable delays a room schedules. Production rooms
// use DefaultTimings, tests shrink them.
type Timings struct {
	Round           time.Duration
	Solve           time.Duration
	Replay          time.Duration
	DisconnectGrace time.Duration
}

func DefaultTimings() Timings {
	return Timings{
		Round:           game_constants.RoundTimeout,
		Solve:           game_constants.SolveTimeout,
		Replay:          game_constants.ReplayDuration,
		DisconnectGrace: game_constants.DisconnectGracePeriod,
	}
}

// SetTimings overrides the room's timer durations. Only safe before the
// match starts.
func (r *GameRoom) SetTimings(t Timings) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timings = t
}

func cardsPerPlayer(roomType string) int {
	if roomType == game_constants.RoomTypeSuper {
		return game_constants.SuperCardsPerPlayer
	}
	return game_constants.ClassicCardsPerPlayer
}

func NewGameRoom(id, roomType string, isSoloPractice bool, emitter Emitter) *GameRoom {
	if roomType != game_constants.RoomTypeSuper {
		roomType = game_constants.RoomTypeClassic
	}
	return &GameRoom{
		ID:             id,
		RoomType:       roomType,
		IsSoloPractice: isSoloPractice,
		State:          StateWaiting,
		Stats:          NewGameStats(),
		timings:        DefaultTimings(),
		timers:         make(map[string]*time.Timer),
		emitter:        emitter,
	}
}

// SetOutcomeRecorder installs the persistence hook invoked after game over.
func (r *GameRoom) SetOutcomeRecorder(recorder OutcomeRecorder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recorder = recorder
}

// SetBadgeHook installs the badge detection hook invoked after game over.
func (r *GameRoom) SetBadgeHook(hook BadgeHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.badges = hook
}

// SetOnEmpty installs the callback fired when the room ends up with no
// players (both gone), so the manager can drop it from the registry.
func (r *GameRoom) SetOnEmpty(fn func(roomID string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onEmpty = fn
}

// ---------------------------------------------------------------
// Seating
// ---------------------------------------------------------------

func (r *GameRoom) maxPlayers() int {
	if r.IsSoloPractice {
		return 1
	}
	return 2
}

// AddPlayer seats a player. Joining is only possible while the room is
// waiting, a running match only accepts reconnections.
func (r *GameRoom) AddPlayer(playerID, socketID, name string) (*Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.destroyed {
		return nil, ErrRoomClosed
	}
	if r.State != StateWaiting {
		return nil, ErrGameInProgress
	}
	if len(r.Players) >= r.maxPlayers() {
		return nil, ErrRoomFull
	}

	p := &Player{
		ID:        playerID,
		SocketID:  socketID,
		Name:      name,
		Deck:      Shuffle(BuildDeck(playerID)),
		Connected: true,
	}
	r.Players = append(r.Players, p)
	r.Stats.AddPlayer(playerID)

	log.Printf("[ROOM] Player %s (%s) joined room %s (%d/%d)",
		name, playerID, r.ID, len(r.Players), r.maxPlayers())
	return p, nil
}

func (r *GameRoom) playerLocked(playerID string) *Player {
	for _, p := range r.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

func (r *GameRoom) opponentLocked(playerID string) *Player {
	for _, p := range r.Players {
		if p.ID != playerID {
			return p
		}
	}
	return nil
}

// ToggleReady flips a player's ready flag. When every seat is taken and
// ready, the first round is dealt.
func (r *GameRoom) ToggleReady(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.State != StateWaiting {
		return ErrInvalidState
	}
	p := r.playerLocked(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	p.IsReady = !p.IsReady

	r.emitLocked("game-state-updated", gin.H{"room": r.snapshotLocked()})

	if len(r.Players) == r.maxPlayers() && r.allReadyLocked() {
		r.startedAt = time.Now()
		r.startRoundLocked()
	}
	return nil
}

func (r *GameRoom) allReadyLocked() bool {
	for _, p := range r.Players {
		if !p.IsReady {
			return false
		}
	}
	return len(r.Players) > 0
}

// ---------------------------------------------------------------
// Round lifecycle
// ---------------------------------------------------------------

// startRoundLocked deals the next round. A deck that cannot cover the deal
// is the structural end-of-game condition, not an error to retry.
func (r *GameRoom) startRoundLocked() {
	per := cardsPerPlayer(r.RoomType)

	if r.IsSoloPractice {
		p := r.Players[0]
		drawn, remaining, err := Draw(p.Deck, per*2)
		if err != nil {
			r.endGameLocked("", p.ID, ReasonDeckEmpty)
			return
		}
		p.Deck = remaining
		r.CenterCards = drawn
	} else {
		p1, p2 := r.Players[0], r.Players[1]
		center, rem1, rem2, err := Deal(p1.Deck, p2.Deck, per)
		if err != nil {
			// Whoever cannot cover the deal is out of cards and loses; if
			// both are short, the smaller deck loses and an exact tie falls
			// to the first seat
			loser, winner := p1, p2
			if len(p2.Deck) < len(p1.Deck) {
				loser, winner = p2, p1
			}
			r.endGameLocked(winner.ID, loser.ID, ReasonDeckEmpty)
			return
		}
		p1.Deck, p2.Deck = rem1, rem2
		r.CenterCards = center
	}

	for i := range r.CenterCards {
		r.CenterCards[i].Owner = ""
	}

	r.CurrentRound++
	r.State = StatePlaying
	r.ClaimantID = ""
	r.claimedAt = time.Time{}
	r.roundStartedAt = time.Now()
	r.pendingOver = nil

	log.Printf("[ROUND] Room %s round %d dealt %d center cards", r.ID, r.CurrentRound, len(r.CenterCards))

	r.emitLocked("round-started", gin.H{
		"round":       r.CurrentRound,
		"centerCards": r.CenterCards,
		"room":        r.snapshotLocked(),
	})

	round := r.CurrentRound
	r.setTimerLocked(timerRound, r.timings.Round, func() {
		r.onRoundTimeout(round)
	})
}

// TryClaim arbitrates the race between both players' "I know it" claims.
// The first claim while PLAYING wins and moves the room to SOLVING, the
// loser of the race gets ErrAlreadyClaimed. The check and the state
// mutation happen under the same lock acquisition with no I/O between them.
func (r *GameRoom) TryClaim(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.playerLocked(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	if r.State == StateSolving {
		return ErrAlreadyClaimed
	}
	if r.State != StatePlaying {
		return ErrInvalidState
	}

	r.ClaimantID = playerID
	r.claimedAt = time.Now()
	r.State = StateSolving
	r.Stats.RecordFirstSolve(playerID)

	r.clearTimerLocked(timerRound)

	log.Printf("[CLAIM] Player %s claimed round %d in room %s", playerID, r.CurrentRound, r.ID)

	r.emitLocked("solution-claimed", gin.H{
		"playerId":   playerID,
		"playerName": p.Name,
		"round":      r.CurrentRound,
	})

	round := r.CurrentRound
	r.setTimerLocked(timerSolve, r.timings.Solve, func() {
		r.onSolveTimeout(round)
	})
	return nil
}

// SubmitSolution verifies the claimant's submission and settles the round.
// Submissions from anyone but the current claimant are rejected outright.
// A malformed solution is NOT a protocol error: it settles the round as an
// incorrect solve, so a garbage-spamming client cannot stall the match.
func (r *GameRoom) SubmitSolution(playerID string, solution *Solution) (*RoundResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.playerLocked(playerID) == nil {
		return nil, ErrUnknownPlayer
	}
	if r.State != StateSolving {
		return nil, ErrInvalidState
	}
	if r.ClaimantID != playerID {
		return nil, ErrNotYourClaim
	}

	r.clearTimerLocked(timerSolve)

	eval := VerifySolution(r.CenterCards, solution)
	if eval.Valid {
		r.Stats.RecordRoundTime(playerID, time.Since(r.claimedAt))
		return r.settleLocked(true, ReasonCorrectSolution, solution), nil
	}

	log.Printf("[VERIFY] Room %s round %d: rejected solution from %s: %s",
		r.ID, r.CurrentRound, playerID, eval.Error)
	return r.settleLocked(false, ReasonIncorrectSolution, nil), nil
}

// SkipPuzzle discards the current center cards and deals fresh ones.
// Solo practice only.
func (r *GameRoom) SkipPuzzle(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.IsSoloPractice {
		return ErrNotSoloRoom
	}
	if r.playerLocked(playerID) == nil {
		return ErrUnknownPlayer
	}
	if r.State != StatePlaying {
		return ErrInvalidState
	}

	r.clearTimerLocked(timerRound)
	r.discardCenterLocked()
	r.startRoundLocked()
	return nil
}

// settleLocked applies the round outcome. Side effects are strictly ordered:
// stats, card transfer, terminal check, broadcast. No step is skipped even
// when a later one ends the game.
func (r *GameRoom) settleLocked(correct bool, reason string, solution *Solution) *RoundResult {
	claimant := r.playerLocked(r.ClaimantID)

	result := &RoundResult{
		Round:   r.CurrentRound,
		Correct: correct,
		Reason:  reason,
	}

	switch {
	case reason == ReasonNoSolution:
		// Nobody claimed: no transfer, cards go to the dead pile
		r.discardCenterLocked()

	case correct:
		result.Solution = solution
		result.WinnerID = claimant.ID
		r.Stats.RecordCorrectSolution(claimant.ID, solution)
		if opponent := r.opponentLocked(claimant.ID); opponent != nil {
			// The stake: the LOSER picks up the center cards
			result.LoserID = opponent.ID
			r.transferCenterLocked(opponent)
		} else {
			// Solo practice has nobody to punish
			r.discardCenterLocked()
		}

	default:
		// Incorrect solve or solve timeout: the false claim costs the
		// claimant the center cards
		result.LoserID = claimant.ID
		r.Stats.RecordIncorrectAttempt(claimant.ID)
		if opponent := r.opponentLocked(claimant.ID); opponent != nil {
			result.WinnerID = opponent.ID
		}
		r.transferCenterLocked(claimant)
	}

	if result.WinnerID != "" {
		r.Stats.RecordRoundWin(result.WinnerID)
	}

	// Terminal check happens at settlement, before any replay
	r.pendingOver = r.terminalConditionLocked()

	r.State = StateRoundEnd
	r.emitLocked("round-ended", gin.H{
		"round":    result.Round,
		"winnerId": result.WinnerID,
		"loserId":  result.LoserID,
		"correct":  result.Correct,
		"reason":   result.Reason,
		"solution": result.Solution,
		"room":     r.snapshotLocked(),
	})

	showReplay := correct && solution != nil && !r.IsSoloPractice
	if showReplay {
		// A winning solve is replayed even when it ends the game, the
		// GAME_OVER transition happens after the replay instead of the
		// next deal
		r.State = StateReplay
		r.emitLocked("replay-solution", gin.H{
			"round":    result.Round,
			"solution": solution,
			"winnerId": result.WinnerID,
		})
		round := r.CurrentRound
		r.setTimerLocked(timerReplay, r.timings.Replay, func() {
			r.onReplayDone(round)
		})
		return result
	}

	r.afterRoundLocked()
	return result
}

// afterRoundLocked proceeds past ROUND_END/REPLAY: either the game is over
// or the next round is dealt.
func (r *GameRoom) afterRoundLocked() {
	if r.pendingOver != nil {
		over := r.pendingOver
		r.pendingOver = nil
		r.endGameLocked(over.winnerID, over.loserID, over.reason)
		return
	}
	r.startRoundLocked()
}

// terminalConditionLocked checks the deck-based end conditions. Both rules
// name the starved side as loser: you lose when your own deck hits zero, or
// equivalently when the opponent has hoarded the whole threshold. Deck-empty
// is checked for both seats before any overflow check so the verdict never
// depends on seat order.
func (r *GameRoom) terminalConditionLocked() *gameOverInfo {
	for _, p := range r.Players {
		if len(p.Deck) == 0 {
			info := &gameOverInfo{loserID: p.ID, reason: ReasonDeckEmpty}
			if opponent := r.opponentLocked(p.ID); opponent != nil {
				info.winnerID = opponent.ID
			}
			return info
		}
	}
	for _, p := range r.Players {
		if len(p.Deck) >= game_constants.MaxDeckLoseThreshold {
			info := &gameOverInfo{winnerID: p.ID, reason: ReasonDeckOverflow}
			if opponent := r.opponentLocked(p.ID); opponent != nil {
				info.loserID = opponent.ID
			}
			return info
		}
	}
	return nil
}

// transferCenterLocked moves the center cards into a player's deck. Only
// Owner changes, card ids stay stable, nothing is created or destroyed.
func (r *GameRoom) transferCenterLocked(to *Player) {
	for i := range r.CenterCards {
		r.CenterCards[i].Owner = to.ID
	}
	to.Deck = append(to.Deck, r.CenterCards...)
	r.CenterCards = nil
}

func (r *GameRoom) discardCenterLocked() {
	for i := range r.CenterCards {
		r.CenterCards[i].Owner = ""
	}
	r.DiscardPile = append(r.DiscardPile, r.CenterCards...)
	r.CenterCards = nil
}

// ---------------------------------------------------------------
// Timer callbacks. Each one re-acquires the lock and re-checks both the
// state and the round it was armed for, so a superseded timer that lost
// the race to Stop() is a no-op.
// ---------------------------------------------------------------

func (r *GameRoom) onRoundTimeout(round int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.destroyed || r.State != StatePlaying || r.CurrentRound != round {
		return
	}
	log.Printf("[ROUND-TIMEOUT] Room %s round %d ended with no claim", r.ID, round)
	r.settleLocked(false, ReasonNoSolution, nil)
}

func (r *GameRoom) onSolveTimeout(round int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.destroyed || r.State != StateSolving || r.CurrentRound != round {
		return
	}
	log.Printf("[SOLVE-TIMEOUT] Room %s round %d: claimant %s never submitted", r.ID, round, r.ClaimantID)
	r.settleLocked(false, ReasonTimeout, nil)
}

func (r *GameRoom) onReplayDone(round int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.destroyed || r.State != StateReplay || r.CurrentRound != round {
		return
	}
	r.afterRoundLocked()
}

// ---------------------------------------------------------------
// Disconnect / forfeit supervision
// ---------------------------------------------------------------

func (r *GameRoom) activeMatchLocked() bool {
	switch r.State {
	case StatePlaying, StateSolving, StateRoundEnd, StateReplay:
		return true
	}
	return false
}

// HandleDisconnect marks a player offline. During an active match it arms
// the forfeit grace timer, in the lobby the seat is simply freed.
func (r *GameRoom) HandleDisconnect(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.playerLocked(playerID)
	if p == nil || r.destroyed {
		return
	}

	now := time.Now()
	p.Connected = false
	p.DisconnectedAt = &now

	if !r.activeMatchLocked() {
		r.removePlayerLocked(playerID)
		return
	}

	log.Printf("[FORFEIT] Player %s disconnected mid-game in room %s, grace period %s",
		playerID, r.ID, r.timings.DisconnectGrace)

	r.emitLocked("player-disconnected-active-game", gin.H{
		"playerId":       p.ID,
		"playerName":     p.Name,
		"timeoutSeconds": int(r.timings.DisconnectGrace.Seconds()),
	})

	r.setTimerLocked(timerForfeit+playerID, r.timings.DisconnectGrace, func() {
		r.onForfeitTimeout(playerID)
	})
}

// HandleReconnect rebinds a returning player's socket and cancels the
// forfeit timer if it has not fired yet.
func (r *GameRoom) HandleReconnect(playerID, socketID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.playerLocked(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}

	r.clearTimerLocked(timerForfeit + playerID)
	p.Connected = true
	p.DisconnectedAt = nil
	p.SocketID = socketID

	log.Printf("[RECONNECT] Player %s rejoined room %s", playerID, r.ID)

	r.emitLocked("player-reconnected", gin.H{
		"playerId":   p.ID,
		"playerName": p.Name,
		"room":       r.snapshotLocked(),
	})
	return nil
}

func (r *GameRoom) onForfeitTimeout(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.playerLocked(playerID)
	if r.destroyed || p == nil || p.Connected || !r.activeMatchLocked() {
		return
	}

	opponent := r.opponentLocked(playerID)
	if opponent == nil || !opponent.Connected {
		// Both gone, nobody left to win. Tear down silently.
		log.Printf("[FORFEIT] Room %s abandoned by all players, cleaning up", r.ID)
		r.teardownLocked()
		return
	}

	// An outstanding claim by the leaver is invalidated, not settled
	log.Printf("[FORFEIT] Player %s did not return in time, %s wins room %s by forfeit",
		playerID, opponent.ID, r.ID)
	r.endGameLocked(opponent.ID, playerID, ReasonForfeit)
}

func (r *GameRoom) removePlayerLocked(playerID string) {
	for i, p := range r.Players {
		if p.ID == playerID {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			break
		}
	}
	r.emitLocked("game-state-updated", gin.H{"room": r.snapshotLocked()})

	// A forfeit loser can still hold a seat with Connected=false after game
	// over; the room must not outlive its last connected player
	for _, p := range r.Players {
		if p.Connected {
			return
		}
	}
	r.teardownLocked()
}

// ---------------------------------------------------------------
// Game over / reset / teardown
// ---------------------------------------------------------------

func (r *GameRoom) endGameLocked(winnerID, loserID, reason string) {
	r.clearAllTimersLocked()
	r.ClaimantID = ""
	r.State = StateGameOver

	log.Printf("[GAME-OVER] Room %s: winner=%s loser=%s reason=%s", r.ID, winnerID, loserID, reason)

	r.emitLocked("game-over", gin.H{
		"winnerId": winnerID,
		"loserId":  loserID,
		"reason":   reason,
		"room":     r.snapshotLocked(),
	})

	outcome := r.buildOutcomeLocked(winnerID, loserID, reason)
	recorder, badges := r.recorder, r.badges
	if outcome != nil && (recorder != nil || badges != nil) {
		// Persistence must never block or break room teardown
		go func() {
			if recorder != nil {
				if err := recorder.RecordGameOutcome(outcome); err != nil {
					log.Printf("[SYNC-ERROR] Failed to record outcome for room %s: %v", outcome.RoomID, err)
				}
			}
			if badges != nil {
				badges.OnGameEnded(outcome)
			}
		}()
	}
}

// Reset tears the finished game back to the lobby: fresh shuffled decks,
// cleared stats, everyone un-readied.
func (r *GameRoom) Reset(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.playerLocked(playerID) == nil {
		return ErrUnknownPlayer
	}
	if r.State != StateGameOver {
		return ErrInvalidState
	}

	r.clearAllTimersLocked()
	r.State = StateWaiting
	r.CenterCards = nil
	r.DiscardPile = nil
	r.CurrentRound = 0
	r.ClaimantID = ""
	r.pendingOver = nil
	r.Stats = NewGameStats()
	for _, p := range r.Players {
		p.Deck = Shuffle(BuildDeck(p.ID))
		p.IsReady = false
		r.Stats.AddPlayer(p.ID)
	}

	log.Printf("[RESET] Room %s reset back to waiting", r.ID)
	r.emitLocked("game-reset", gin.H{"room": r.snapshotLocked()})
	return nil
}

// Destroy cancels all timers and marks the room dead. Idempotent.
func (r *GameRoom) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.teardownLocked()
}

func (r *GameRoom) teardownLocked() {
	if r.destroyed {
		return
	}
	r.clearAllTimersLocked()
	r.destroyed = true
	if r.onEmpty != nil {
		onEmpty, id := r.onEmpty, r.ID
		go onEmpty(id)
	}
}

// ---------------------------------------------------------------
// Timers
// ---------------------------------------------------------------

func (r *GameRoom) setTimerLocked(key string, d time.Duration, fn func()) {
	r.clearTimerLocked(key)
	r.timers[key] = time.AfterFunc(d, fn)
}

func (r *GameRoom) clearTimerLocked(key string) {
	if t, ok := r.timers[key]; ok {
		t.Stop()
		delete(r.timers, key)
	}
}

func (r *GameRoom) clearAllTimersLocked() {
	for key, t := range r.timers {
		t.Stop()
		delete(r.timers, key)
	}
}

// ---------------------------------------------------------------
// Snapshots / broadcasting
// ---------------------------------------------------------------

// PlayerView is the read-only projection of a seat sent to clients. Deck
// contents stay server-side, only the count is public.
type PlayerView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	DeckCount int    `json:"deckCount"`
	IsReady   bool   `json:"isReady"`
	Connected bool   `json:"connected"`
}

// RoomView is the consistent room snapshot carried by every broadcast.
type RoomView struct {
	ID             string         `json:"id"`
	RoomType       string         `json:"roomType"`
	IsSoloPractice bool           `json:"isSoloPractice"`
	State          GameState      `json:"state"`
	Players        []PlayerView   `json:"players"`
	CenterCards    []Card         `json:"centerCards"`
	CurrentRound   int            `json:"currentRound"`
	ClaimantID     string         `json:"claimantId,omitempty"`
	Scores         map[string]int `json:"scores"`
}

func (r *GameRoom) snapshotLocked() RoomView {
	players := make([]PlayerView, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, PlayerView{
			ID:        p.ID,
			Name:      p.Name,
			DeckCount: len(p.Deck),
			IsReady:   p.IsReady,
			Connected: p.Connected,
		})
	}
	center := make([]Card, len(r.CenterCards))
	copy(center, r.CenterCards)
	return RoomView{
		ID:             r.ID,
		RoomType:       r.RoomType,
		IsSoloPractice: r.IsSoloPractice,
		State:          r.State,
		Players:        players,
		CenterCards:    center,
		CurrentRound:   r.CurrentRound,
		ClaimantID:     r.ClaimantID,
		Scores:         r.Stats.ScoresCopy(),
	}
}

// Snapshot returns the current read-only projection of the room.
func (r *GameRoom) Snapshot() RoomView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *GameRoom) emitLocked(event string, payload gin.H) {
	if r.emitter != nil {
		r.emitter.EmitToRoom(r.ID, event, payload)
	}
}

func (r *GameRoom) buildOutcomeLocked(winnerID, loserID, reason string) *GameOutcome {
	if r.IsSoloPractice {
		return nil
	}
	names := make(map[string]string, len(r.Players))
	for _, p := range r.Players {
		names[p.ID] = p.Name
	}
	return &GameOutcome{
		RoomID:      r.ID,
		RoomType:    r.RoomType,
		WinnerID:    winnerID,
		LoserID:     loserID,
		Reason:      reason,
		Rounds:      r.CurrentRound,
		Duration:    time.Since(r.startedAt),
		PlayerNames: names,
		Stats:       r.Stats.Copy(),
	}
}
