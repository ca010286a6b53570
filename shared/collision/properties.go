package collision

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/automoto/tilekit/shared/tiledef"
)

// ErrUnsupportedPropertyKind marks an object carrying a property the builder
// does not understand. The object is skipped; the rest of the tile still builds.
var ErrUnsupportedPropertyKind = errors.New("unsupported property kind")

// Property names read from an object's custom properties.
const (
	PropBodyType       = "body_type"
	PropIsSensor       = "is_sensor"
	PropSensorBehavior = "sensor_behavior"
)

// BodyType is the physics body kind.
type BodyType uint8

const (
	Static BodyType = iota
	Dynamic
	Kinematic
)

func (t BodyType) String() string {
	switch t {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	case Kinematic:
		return "kinematic"
	default:
		return "BodyType(" + strconv.Itoa(int(t)) + ")"
	}
}

// ParseBodyType parses the editor's body_type value.
func ParseBodyType(s string) (BodyType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "static", "":
		return Static, nil
	case "dynamic":
		return Dynamic, nil
	case "kinematic":
		return Kinematic, nil
	}
	return Static, fmt.Errorf("%w: body_type %q", ErrUnsupportedPropertyKind, s)
}

// BodyProperties describes how a group of shapes behaves in the physics world.
// The zero value is a static, solid body.
type BodyProperties struct {
	Type           BodyType
	Sensor         bool
	SensorBehavior string // free-form tag for the consumer, e.g. "hide"
}

func (p BodyProperties) String() string {
	if !p.Sensor {
		return p.Type.String()
	}
	if p.SensorBehavior == "" {
		return p.Type.String() + "/sensor"
	}
	return p.Type.String() + "/sensor:" + p.SensorBehavior
}

// ParseProperties reads body properties from an object's custom properties.
// Unknown names and values of the wrong type fail with ErrUnsupportedPropertyKind.
func ParseProperties(props tiledef.Properties) (BodyProperties, error) {
	var bp BodyProperties
	for _, p := range props {
		switch p.Name {
		case PropBodyType:
			if !isType(p, "string") {
				return BodyProperties{}, fmt.Errorf("%w: %s has type %q", ErrUnsupportedPropertyKind, p.Name, p.Type)
			}
			t, err := ParseBodyType(p.Value)
			if err != nil {
				return BodyProperties{}, err
			}
			bp.Type = t
		case PropIsSensor:
			if !isType(p, "bool", "string") {
				return BodyProperties{}, fmt.Errorf("%w: %s has type %q", ErrUnsupportedPropertyKind, p.Name, p.Type)
			}
			v, err := strconv.ParseBool(strings.TrimSpace(p.Value))
			if err != nil {
				return BodyProperties{}, fmt.Errorf("%w: %s value %q", ErrUnsupportedPropertyKind, p.Name, p.Value)
			}
			bp.Sensor = v
		case PropSensorBehavior:
			if !isType(p, "string") {
				return BodyProperties{}, fmt.Errorf("%w: %s has type %q", ErrUnsupportedPropertyKind, p.Name, p.Type)
			}
			bp.SensorBehavior = p.Value
		default:
			return BodyProperties{}, fmt.Errorf("%w: %q", ErrUnsupportedPropertyKind, p.Name)
		}
	}
	return bp, nil
}

// isType accepts an untyped property or one of the given editor types.
func isType(p tiledef.Property, types ...string) bool {
	if p.Type == "" {
		return true
	}
	for _, t := range types {
		if p.Type == t {
			return true
		}
	}
	return false
}
