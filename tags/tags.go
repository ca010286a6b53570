package tags

import "github.com/yohamta/donburi"

var (
	Solid  = donburi.NewTag().SetName("Solid")
	Sensor = donburi.NewTag().SetName("Sensor")
)

// Resolv tags for tile bodies. Every object also carries its body type
// ("static", "dynamic", "kinematic") and, for sensors with a behavior, the
// behavior string itself.
const (
	ResolvSolid  = "solid"
	ResolvSensor = "sensor"
)
