package arena

import (
	"fmt"
	"math/rand"
	"sync"
)

var adjectives = []string{
	"Brave", "Clever", "Wild", "Swift", "Bold", "Mighty", "Mystic", "Noble",
	"Fierce", "Silent", "Rapid", "Calm", "Proud", "Lucky", "Sneaky", "Cunning",
	"Golden", "Silver", "Royal", "Ancient", "Tiny", "Giant", "Stacked", "Hollow",
}

var nouns = []string{
	"Skull", "Combo", "Cascade", "Stack", "Chain", "Column", "Tower", "Cluster",
	"Avalanche", "Block", "Pillar", "Well", "Rubble", "Gravity", "Domino", "Quake",
}

// Namer hands out display names of the form AdjectiveNounNumber.
type Namer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewNamer(seed int64) *Namer {
	return &Namer{rng: rand.New(rand.NewSource(seed))}
}

func (n *Namer) Next() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	adjective := adjectives[n.rng.Intn(len(adjectives))]
	noun := nouns[n.rng.Intn(len(nouns))]
	return fmt.Sprintf("%s%s%d", adjective, noun, n.rng.Intn(100))
}
