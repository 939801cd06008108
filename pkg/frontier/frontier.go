package frontier

import (
	"github.com/itinera/itinera/pkg/journey"
	"github.com/itinera/itinera/pkg/util"
)

// Frontier keeps the set of mutually non-dominated journeys seen so far under
// a fixed criteria selection. Journey dominance is not antisymmetric, so an
// existing member that ties a candidate on every criterion wins and the
// candidate is rejected - first seen is kept.
//
// A frontier is owned by a single goroutine; journeys handed to it must be
// fully built and are never mutated.
type Frontier struct {
	considerTime      bool
	considerBoardings bool

	journeys []*journey.Journey
}

func NewFrontier(considerTime bool, considerBoardings bool) *Frontier {
	return &Frontier{
		considerTime:      considerTime,
		considerBoardings: considerBoardings,
	}
}

// Add offers a candidate journey. If any member dominates it the candidate is
// rejected and Add reports false. Otherwise every member the candidate
// dominates is evicted, the candidate joins the frontier and Add reports true.
func (f *Frontier) Add(candidate *journey.Journey) bool {
	for _, member := range f.journeys {
		if member.Dominates(candidate, f.considerTime, f.considerBoardings) {
			return false
		}
	}

	util.InPlaceFilter(&f.journeys, func(member *journey.Journey) bool {
		return !candidate.Dominates(member, f.considerTime, f.considerBoardings)
	})

	f.journeys = append(f.journeys, candidate)

	return true
}

// Journeys returns the current members in insertion order. The returned slice
// is a snapshot; later Adds do not affect it.
func (f *Frontier) Journeys() []*journey.Journey {
	snapshot := make([]*journey.Journey, len(f.journeys))
	copy(snapshot, f.journeys)

	return snapshot
}

func (f *Frontier) Len() int {
	return len(f.journeys)
}
