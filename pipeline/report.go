package pipeline

import (
	"errors"
	"log"

	"github.com/automoto/tilekit/shared/collision"
	"github.com/automoto/tilekit/shared/geom"
	"github.com/automoto/tilekit/shared/terrain"
	"github.com/automoto/tilekit/shared/wang"
)

// Report collects the isolated failures of each stage.
type Report struct {
	Warnings  []error // tileset-level problems, e.g. unsupported wang set types
	Collision []error
	Wang      []error
	Terrain   []error
	Physics   []error
}

// Issues returns the total number of collected failures.
func (r Report) Issues() int {
	return len(r.Warnings) + len(r.Collision) + len(r.Wang) + len(r.Terrain) + len(r.Physics)
}

// Counts tallies failures by kind, keyed by the sentinel's message.
func (r Report) Counts() map[string]int {
	kinds := []error{
		geom.ErrDegenerateShape,
		geom.ErrUnsupportedShape,
		collision.ErrUnsupportedPropertyKind,
		wang.ErrUnknownWangColor,
		wang.ErrMalformedWangID,
		terrain.ErrNoMatchingTile,
	}

	out := make(map[string]int)
	for _, group := range [][]error{r.Warnings, r.Collision, r.Wang, r.Terrain, r.Physics} {
		for _, err := range group {
			kind := "other"
			for _, k := range kinds {
				if errors.Is(err, k) {
					kind = k.Error()
					break
				}
			}
			out[kind]++
		}
	}
	return out
}

// Log prints every failure with the given component prefix.
func (r Report) Log(prefix string) {
	for _, err := range r.Warnings {
		log.Printf("[%s] warning: %v", prefix, err)
	}
	for _, err := range r.Collision {
		log.Printf("[%s] collision: %v", prefix, err)
	}
	for _, err := range r.Wang {
		log.Printf("[%s] wang: %v", prefix, err)
	}
	for _, err := range r.Terrain {
		log.Printf("[%s] terrain: %v", prefix, err)
	}
	for _, err := range r.Physics {
		log.Printf("[%s] physics: %v", prefix, err)
	}
}
