package model

import "fmt"

type Status int8

const (
	WaitingForPlayer Status = iota
	InProgress
	WhiteWins
	BlackWins
	Draw
)

var statusNames = [...]string{
	WaitingForPlayer: "waiting_for_player",
	InProgress:       "in_progress",
	WhiteWins:        "white_wins",
	BlackWins:        "black_wins",
	Draw:             "draw",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("status(%d)", s)
	}
	return statusNames[s]
}

func (s Status) IsTerminal() bool {
	return s == WhiteWins || s == BlackWins || s == Draw
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for i, name := range statusNames {
		if name == string(text) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

func winner(c Color) Status {
	if c == White {
		return WhiteWins
	}
	return BlackWins
}
