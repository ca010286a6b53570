package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadEnv.
const (
	EnvTolerance = "TILEKIT_TOLERANCE"
	EnvWorkers   = "TILEKIT_WORKERS"
	EnvCellSize  = "TILEKIT_CELL_SIZE"
	EnvTelemetry = "TILEKIT_TELEMETRY"
)

// LoadEnv loads a .env file (if path is non-empty) into the process
// environment and applies any TILEKIT_* overrides to the globals. Variables
// already set in the environment win over the file.
func LoadEnv(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
	}
	return applyEnv()
}

func applyEnv() error {
	if v, ok := os.LookupEnv(EnvTolerance); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("%s: invalid tolerance %q", EnvTolerance, v)
		}
		Shape.Tolerance = f
	}
	if v, ok := os.LookupEnv(EnvWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s: invalid worker count %q", EnvWorkers, v)
		}
		Resolve.Workers = n
	}
	if v, ok := os.LookupEnv(EnvCellSize); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s: invalid cell size %q", EnvCellSize, v)
		}
		Physics.CellWidth = n
		Physics.CellHeight = n
	}
	if v, ok := os.LookupEnv(EnvTelemetry); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: invalid flag %q", EnvTelemetry, v)
		}
		Telemetry.Enabled = b
	}
	return nil
}
