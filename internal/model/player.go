package model

// PlayerID identifies a participant. The empty PlayerID means no player.
type PlayerID string

type ClientPlayer struct {
	ID    PlayerID `json:"id"`
	Color Color    `json:"color"`
}
