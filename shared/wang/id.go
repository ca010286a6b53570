// Package wang indexes Wang tiles by the terrain colors on their corners and
// edges.
package wang

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedWangID marks a wangid attribute that cannot be parsed.
var ErrMalformedWangID = errors.New("malformed wang id")

// ColorID indexes a set's colors starting at 1. Zero means unset.
type ColorID uint8

// MaxColors is the largest number of colors a set may declare.
const MaxColors = 254

// Slot is a position in a wang id, clockwise from the top edge.
type Slot int

const (
	Top Slot = iota
	TopRight
	Right
	BottomRight
	Bottom
	BottomLeft
	Left
	TopLeft
)

// SlotCount is the fixed length of a wang id.
const SlotCount = 8

// IsCorner reports whether the slot is a corner.
func (s Slot) IsCorner() bool {
	return s%2 == 1
}

// Corner is one of the four tile corners.
type Corner int

const (
	CornerTopRight Corner = iota
	CornerBottomRight
	CornerBottomLeft
	CornerTopLeft
)

// Slot returns the wang id slot holding this corner.
func (c Corner) Slot() Slot {
	return Slot(2*int(c) + 1)
}

// Edge is one of the four tile edges.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeRight
	EdgeBottom
	EdgeLeft
)

// Slot returns the wang id slot holding this edge.
func (e Edge) Slot() Slot {
	return Slot(2 * int(e))
}

// Corners holds one color per corner, indexed by Corner.
type Corners [4]ColorID

// ID is the 8-slot color signature of a tile.
type ID [SlotCount]ColorID

// CornerID builds an id with the given corners and unset edges.
func CornerID(c Corners) ID {
	var id ID
	for i, color := range c {
		id[Corner(i).Slot()] = color
	}
	return id
}

// Slot returns the color in slot s.
func (id ID) Slot(s Slot) ColorID {
	return id[s]
}

// Corner returns the color on corner c.
func (id ID) Corner(c Corner) ColorID {
	return id[c.Slot()]
}

// Edge returns the color on edge e.
func (id ID) Edge(e Edge) ColorID {
	return id[e.Slot()]
}

// Corners returns the four corner colors.
func (id ID) Corners() Corners {
	var c Corners
	for i := range c {
		c[i] = id.Corner(Corner(i))
	}
	return c
}

// Masked clears the slots a set of type t does not match on.
func (id ID) Masked(t Type) ID {
	for s := range id {
		if !t.Uses(Slot(s)) {
			id[s] = 0
		}
	}
	return id
}

func (id ID) String() string {
	parts := make([]string, SlotCount)
	for i, c := range id {
		parts[i] = strconv.Itoa(int(c))
	}
	return strings.Join(parts, ",")
}

// ParseID parses a wangid attribute. Both the comma-separated form
// ("0,1,0,2,0,1,0,1") and the legacy 32-bit hex form ("0x10101010", one
// nibble per slot starting at the least significant) are accepted.
func ParseID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseUint(s[2:], 16, 32)
		if err != nil {
			return ID{}, fmt.Errorf("%w: %q", ErrMalformedWangID, s)
		}
		var id ID
		for i := range id {
			id[i] = ColorID((v >> (4 * i)) & 0xF)
		}
		return id, nil
	}

	fields := strings.Split(s, ",")
	if len(fields) != SlotCount {
		return ID{}, fmt.Errorf("%w: %q has %d slots, expected %d", ErrMalformedWangID, s, len(fields), SlotCount)
	}
	var id ID
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || v < 0 || v > MaxColors {
			return ID{}, fmt.Errorf("%w: %q slot %d", ErrMalformedWangID, s, i)
		}
		id[i] = ColorID(v)
	}
	return id, nil
}

// Type is the matching mode of a wang set.
type Type uint8

const (
	TypeCorner Type = iota
	TypeEdge
	TypeMixed
)

// ParseType parses a wangset type attribute. An empty value is a corner set.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "corner", "":
		return TypeCorner, nil
	case "edge":
		return TypeEdge, nil
	case "mixed":
		return TypeMixed, nil
	}
	return TypeCorner, fmt.Errorf("unknown wang set type %q", s)
}

func (t Type) String() string {
	switch t {
	case TypeCorner:
		return "corner"
	case TypeEdge:
		return "edge"
	case TypeMixed:
		return "mixed"
	default:
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
}

// Uses reports whether sets of this type match on slot s.
func (t Type) Uses(s Slot) bool {
	switch t {
	case TypeCorner:
		return s.IsCorner()
	case TypeEdge:
		return !s.IsCorner()
	default:
		return true
	}
}
