package core

import (
	"fmt"
	"sort"
	"sync"
)

// Series is one side of a compared pair: the source measure and the label
// it is shown under in legends and hover text.
type Series struct {
	Measure Measure
	Label   string
}

// SeriesPair is the two measures compared in one chart.
type SeriesPair struct {
	Title  string
	Series [2]Series
}

// ReportMode selects which column pairs feed the two charts and how they
// are labeled.
type ReportMode struct {
	Key        string // Stable identifier used in URLs: "library"
	Label      string // Text of the mode selector option
	Order      int    // Position in the selector
	Schools    SeriesPair
	Enrollment SeriesPair
}

var (
	modes   = make(map[string]ReportMode)
	modesMu sync.RWMutex
)

// RegisterMode adds a report mode to the registry.
// Panics if a mode with the same key is already registered.
func RegisterMode(m ReportMode) {
	modesMu.Lock()
	defer modesMu.Unlock()

	if _, exists := modes[m.Key]; exists {
		panic(fmt.Sprintf("report mode already registered: %s", m.Key))
	}
	modes[m.Key] = m
}

// GetMode returns a report mode by key.
func GetMode(key string) (ReportMode, bool) {
	modesMu.RLock()
	defer modesMu.RUnlock()

	m, ok := modes[key]
	return m, ok
}

// Modes returns all registered report modes in selector order.
func Modes() []ReportMode {
	modesMu.RLock()
	defer modesMu.RUnlock()

	result := make([]ReportMode, 0, len(modes))
	for _, m := range modes {
		result = append(result, m)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Order != result[j].Order {
			return result[i].Order < result[j].Order
		}
		return result[i].Key < result[j].Key
	})
	return result
}

// DefaultMode returns the first mode in selector order.
func DefaultMode() (ReportMode, bool) {
	all := Modes()
	if len(all) == 0 {
		return ReportMode{}, false
	}
	return all[0], true
}

// ModeCount returns the number of registered modes.
func ModeCount() int {
	modesMu.RLock()
	defer modesMu.RUnlock()
	return len(modes)
}

// ClearModes removes all registered modes.
// Primarily useful for testing.
func ClearModes() {
	modesMu.Lock()
	defer modesMu.Unlock()
	modes = make(map[string]ReportMode)
}
