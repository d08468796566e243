package game

import (
	"fmt"
	"math/rand"

	"github.com/Pallinder/go-randomdata"
)

const nameRetries = 32

// propNamer hands out unique prop names like "tree/Frostbite". The
// randomdata generator is package-global, so it is reseeded per namer.
type propNamer struct {
	used map[string]struct{}
}

func newPropNamer(seed int64) *propNamer {
	randomdata.CustomRand(rand.New(rand.NewSource(seed)))
	return &propNamer{used: make(map[string]struct{})}
}

func (n *propNamer) next(kind string) string {
	var name string
	for i := 0; i < nameRetries; i++ {
		name = kind + "/" + randomdata.SillyName()
		if _, exists := n.used[name]; !exists {
			n.used[name] = struct{}{}
			return name
		}
	}
	// The silly name pool ran dry for this kind; disambiguate with a counter.
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", name, i)
		if _, exists := n.used[candidate]; !exists {
			n.used[candidate] = struct{}{}
			return candidate
		}
	}
}
