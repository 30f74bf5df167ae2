package util

import (
	"fmt"
	"math/rand"
)

var adjectives = []string{
	"Lucky", "Sneaky", "Bold", "Reckless", "Patient", "Cunning", "Wild", "Quiet",
	"Daring", "Stubborn", "Swift", "Grinning", "Bluffing", "Fearless", "Clever",
	"Restless", "Sly", "Steady", "Brash", "Cheeky",
}

var nouns = []string{
	"Sixes", "Tens", "Aces", "Jokers", "Dealers", "Sharks", "Foxes", "Wolves",
	"Magpies", "Ravens", "Badgers", "Otters", "Weasels", "Hounds", "Crows",
	"Lynxes", "Vipers", "Herons", "Stoats", "Owls",
}

// RandomLobbyName returns a name for a lobby created without one
func RandomLobbyName() string {
	return fmt.Sprintf("%s %s", adjectives[rand.Intn(len(adjectives))], nouns[rand.Intn(len(nouns))])
}
