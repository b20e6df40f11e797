// Package broker relays moves between two game instances over HTTP. The
// relay holds a single slot: the last published move is served to every
// poll until the next one replaces it.
package broker

// Cell addresses one board coordinate on the wire.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Message is one published move. Turn is the mover's ply count after the
// move was applied, so the opposing instance accepts the message once
// Turn equals its own ply count plus one.
type Message struct {
	From Cell `json:"from"`
	To   Cell `json:"to"`
	Turn int  `json:"turn"`
}

type envelope struct {
	Success bool     `json:"success"`
	Data    *Message `json:"data"`
}
