package models

// Level is a difficulty tier of the quiz
type Level string

const (
	LevelBase       Level = "base"
	LevelElementare Level = "elementare"
	LevelMedio      Level = "medio"
	LevelSuperiore  Level = "superiore"
)

// Levels lists the difficulty tiers in the order they are offered to players
var Levels = []Level{LevelBase, LevelElementare, LevelMedio, LevelSuperiore}

// Bound returns the inclusive ceiling for the sum of the two addends
func (l Level) Bound() (int, bool) {
	switch l {
	case LevelBase:
		return 10, true
	case LevelElementare:
		return 100, true
	case LevelMedio:
		return 1000, true
	case LevelSuperiore:
		return 10000, true
	}
	return 0, false
}

// SessionState is the record carried between the turns of one game session
type SessionState struct {
	Level          Level `json:"level"`
	FirstAddend    int   `json:"firstAddend"`
	SecondAddend   int   `json:"secondAddend"`
	CorrectGuesses int   `json:"correctGuesses"`
	TotalGuesses   int   `json:"totalGuesses"`
	FirstAttempt   bool  `json:"firstAttempt"`
	Misunderstood  bool  `json:"misunderstood"`
}

// CorrectAnswer returns the sum of the current problem
func (s *SessionState) CorrectAnswer() int {
	return s.FirstAddend + s.SecondAddend
}

// Clone returns a copy that can be modified without touching the original
func (s *SessionState) Clone() *SessionState {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
