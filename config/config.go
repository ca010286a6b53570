package config

import (
	"runtime"

	"github.com/yohamta/donburi/ecs"
)

// Default is the ECS layer tile bodies are created on.
const Default ecs.LayerID = 0

// ShapeConfig controls geometry normalization.
type ShapeConfig struct {
	Tolerance float64 // snapping grid and near-equality threshold, in pixels
}

// ResolveConfig controls the parallel build and resolve stages.
type ResolveConfig struct {
	Workers int
}

// PhysicsConfig sizes the resolv space tile bodies are added to.
type PhysicsConfig struct {
	CellWidth  int
	CellHeight int
}

type TelemetryConfig struct {
	Enabled     bool
	ServiceName string
}

var (
	Shape     ShapeConfig
	Resolve   ResolveConfig
	Physics   PhysicsConfig
	Telemetry TelemetryConfig
)

func init() {
	Shape = ShapeConfig{
		Tolerance: 0.1,
	}

	Resolve = ResolveConfig{
		Workers: runtime.GOMAXPROCS(0),
	}

	Physics = PhysicsConfig{
		CellWidth:  16,
		CellHeight: 16,
	}

	Telemetry = TelemetryConfig{
		Enabled:     false,
		ServiceName: "tilekit",
	}
}
