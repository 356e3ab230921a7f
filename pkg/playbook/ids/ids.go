// Package ids assigns run-scoped record identifiers.
package ids

import (
	"crypto/rand"
	"fmt"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/playbook/pkg/playbook/records"
)

// CrossPlatform is the platform segment used for records with no platform.
const CrossPlatform = "all"

// Assigner hands out identifiers of the form <platform>_<kind>_<n>, with one
// counter per record kind. Counters live on the Assigner, so two runs in the
// same process never share them. Identifiers are unique within a run only.
type Assigner struct {
	mu       sync.Mutex
	runID    string
	counters map[records.Kind]int
}

// NewAssigner starts a new run with a fresh ULID run identifier.
func NewAssigner() *Assigner {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return &Assigner{
		runID:    ulid.MustNew(ulid.Now(), entropy).String(),
		counters: make(map[records.Kind]int),
	}
}

// RunID identifies the run this assigner belongs to.
func (a *Assigner) RunID() string {
	return a.runID
}

// Next returns the next identifier for kind.
func (a *Assigner) Next(kind records.Kind, platform string) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if platform == "" {
		platform = CrossPlatform
	}
	a.counters[kind]++
	return fmt.Sprintf("%s_%s_%d", platform, kind, a.counters[kind])
}

// Count reports how many identifiers of kind have been issued.
func (a *Assigner) Count(kind records.Kind) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.counters[kind]
}

// RoadmapID names the roadmap a task belongs to.
func RoadmapID(platform string, phase, week int) string {
	if platform == "" {
		platform = CrossPlatform
	}
	return fmt.Sprintf("%s_phase%d_week%d", platform, phase, week)
}
