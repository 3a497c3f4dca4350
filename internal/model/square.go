package model

import "fmt"

// Square is a board coordinate. File 0-7 maps to a-h, Rank 0-7 maps to 1-8.
type Square struct {
	File int `bson:"file"`
	Rank int `bson:"rank"`
}

func inBounds(file, rank int) bool {
	return file >= 0 && file < 8 && rank >= 0 && rank < 8
}

// NewSquare returns the square at file/rank, or false when either is outside 0-7.
func NewSquare(file, rank int) (Square, bool) {
	if !inBounds(file, rank) {
		return Square{}, false
	}
	return Square{File: file, Rank: rank}, true
}

// ParseSquare reads two-character algebraic notation such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	sq, ok := NewSquare(int(s[0])-'a', int(s[1])-'1')
	if !ok {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return sq, nil
}

// MustParseSquare is ParseSquare for literals known to be valid.
func MustParseSquare(s string) Square {
	sq, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return sq
}

func (s Square) valid() bool {
	return inBounds(s.File, s.Rank)
}

func (s Square) String() string {
	return fmt.Sprintf("%c%c", 'a'+s.File, '1'+s.Rank)
}

func (s Square) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("%w: file %d rank %d", ErrInvalidSquare, s.File, s.Rank)
	}
	return []byte(s.String()), nil
}

func (s *Square) UnmarshalText(text []byte) error {
	sq, err := ParseSquare(string(text))
	if err != nil {
		return err
	}
	*s = sq
	return nil
}
