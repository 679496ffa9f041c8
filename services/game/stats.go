package game

import "time"

// GameStats accumulates the per-game counters the badge detector and the
// stats layer consume after game over. Mutated only under the room lock.
type GameStats struct {
	Scores            map[string]int       `json:"scores"`
	RoundTimes        map[string][]float64 `json:"roundTimes"` // claim-to-submit, seconds
	FirstSolves       map[string]int       `json:"firstSolves"`
	CorrectSolutions  map[string]int       `json:"correctSolutions"`
	IncorrectAttempts map[string]int       `json:"incorrectAttempts"`
	WinningSolutions  []Solution           `json:"winningSolutions"`
}

func NewGameStats() GameStats {
	return GameStats{
		Scores:            make(map[string]int),
		RoundTimes:        make(map[string][]float64),
		FirstSolves:       make(map[string]int),
		CorrectSolutions:  make(map[string]int),
		IncorrectAttempts: make(map[string]int),
	}
}

func (s *GameStats) AddPlayer(playerID string) {
	if _, ok := s.Scores[playerID]; !ok {
		s.Scores[playerID] = 0
	}
}

func (s *GameStats) RecordFirstSolve(playerID string) {
	s.FirstSolves[playerID]++
}

func (s *GameStats) RecordRoundWin(playerID string) {
	s.Scores[playerID]++
}

func (s *GameStats) RecordCorrectSolution(playerID string, solution *Solution) {
	s.CorrectSolutions[playerID]++
	if solution != nil {
		s.WinningSolutions = append(s.WinningSolutions, *solution)
	}
}

func (s *GameStats) RecordIncorrectAttempt(playerID string) {
	s.IncorrectAttempts[playerID]++
}

func (s *GameStats) RecordRoundTime(playerID string, d time.Duration) {
	s.RoundTimes[playerID] = append(s.RoundTimes[playerID], d.Seconds())
}

func (s *GameStats) ScoresCopy() map[string]int {
	scores := make(map[string]int, len(s.Scores))
	for k, v := range s.Scores {
		scores[k] = v
	}
	return scores
}

// Copy deep-copies the stats so outcome persistence can run off the lock.
func (s *GameStats) Copy() GameStats {
	c := NewGameStats()
	for k, v := range s.Scores {
		c.Scores[k] = v
	}
	for k, v := range s.RoundTimes {
		times := make([]float64, len(v))
		copy(times, v)
		c.RoundTimes[k] = times
	}
	for k, v := range s.FirstSolves {
		c.FirstSolves[k] = v
	}
	for k, v := range s.CorrectSolutions {
		c.CorrectSolutions[k] = v
	}
	for k, v := range s.IncorrectAttempts {
		c.IncorrectAttempts[k] = v
	}
	c.WinningSolutions = append(c.WinningSolutions, s.WinningSolutions...)
	return c
}

// GameOutcome is handed to the stats layer and the badge hook once per
// finished (non-practice) match.
type GameOutcome struct {
	RoomID      string
	RoomType    string
	WinnerID    string
	LoserID     string
	Reason      string
	Rounds      int
	Duration    time.Duration
	PlayerNames map[string]string
	Stats       GameStats
}

// OutcomeRecorder is the opaque persistence/stat layer invoked after game
// over (win/loss records, rating updates).
type OutcomeRecorder interface {
	RecordGameOutcome(outcome *GameOutcome) error
}

// BadgeHook is the badge-detection consumer of "game ended" events. The
// catalogue and the detection heuristics live outside this server.
type BadgeHook interface {
	OnGameEnded(outcome *GameOutcome)
}
