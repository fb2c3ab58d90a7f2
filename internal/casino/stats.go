package casino

import (
	"github.com/google/uuid"

	"github.com/lox/minicasino/internal/games"
)

// GameStats is the running total of one game.
type GameStats struct {
	Rounds  int `json:"rounds"`
	Wagered int `json:"wagered"`
	Paid    int `json:"paid"`
}

// ReturnToPlayer is the share of wagered credits paid back.
func (g GameStats) ReturnToPlayer() float64 {
	if g.Wagered == 0 {
		return 0
	}
	return float64(g.Paid) / float64(g.Wagered)
}

// Stats summarises the session. Each settled round counts once.
type Stats struct {
	GamesPlayed int                      `json:"games_played"`
	Wins        int                      `json:"wins"`
	Losses      int                      `json:"losses"`
	Pushes      int                      `json:"pushes"`
	BiggestWin  int                      `json:"biggest_win"`
	PerGame     map[games.Game]GameStats `json:"per_game"`
}

func newStats() Stats {
	return Stats{PerGame: make(map[games.Game]GameStats, len(games.AllGames))}
}

func (s *Stats) add(st games.Settlement) {
	s.GamesPlayed++
	switch st.Result {
	case games.Win:
		s.Wins++
		s.BiggestWin = max(s.BiggestWin, st.Payout)
	case games.Push:
		s.Pushes++
	default:
		s.Losses++
	}

	g := s.PerGame[st.Game]
	g.Rounds++
	g.Wagered += st.Stake
	g.Paid += st.Payout
	s.PerGame[st.Game] = g
}

func (s Stats) clone() Stats {
	out := s
	out.PerGame = make(map[games.Game]GameStats, len(s.PerGame))
	for k, v := range s.PerGame {
		out.PerGame[k] = v
	}
	return out
}

// Stats returns a snapshot of the session statistics.
func (s *Session) Stats() Stats {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	return s.stats.clone()
}

// History returns up to n recent settlements, newest first. n <= 0 returns
// everything retained.
func (s *Session) History(n int) []games.Settlement {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	keys := s.history.Keys()
	if n <= 0 || n > len(keys) {
		n = len(keys)
	}
	out := make([]games.Settlement, 0, n)
	for i := len(keys) - 1; i >= 0 && len(out) < n; i-- {
		if st, ok := s.history.Peek(keys[i]); ok {
			out = append(out, st)
		}
	}
	return out
}

// Round looks up a retained settlement by round ID.
func (s *Session) Round(id uuid.UUID) (games.Settlement, bool) {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	return s.history.Peek(id)
}
