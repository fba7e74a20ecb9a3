package filter

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// DefaultPresets are the named expressions available without configuration
var DefaultPresets = map[string]string{
	"acclaimed": `VoteAverage >= 8 and VoteCount >= 1000`,
	"recent":    `Released > daysAgo(90) and Released <= now()`,
	"family":    `(hasGenre("Family") or hasGenre("Animation")) and not Adult`,
	"unseen":    `not Favorite and not InLibrary and not Requested`,
}

// Presets resolves preset names to expressions. Configured presets override defaults.
type Presets map[string]string

// Resolve returns the expression of a preset
func (p Presets) Resolve(name string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if expression, ok := p[key]; ok {
		return expression, nil
	}
	if expression, ok := DefaultPresets[key]; ok {
		return expression, nil
	}
	return "", fmt.Errorf("unknown filter preset %q (available: %s)", name, strings.Join(p.Names(), ", "))
}

// Names returns every resolvable preset name, sorted
func (p Presets) Names() []string {
	all := maps.Clone(DefaultPresets)
	for name, expression := range p {
		all[strings.ToLower(name)] = expression
	}
	return slices.Sorted(maps.Keys(all))
}
