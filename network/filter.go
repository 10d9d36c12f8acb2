// SPDX-License-Identifier: MIT

package network

import "github.com/paulmach/osm"

// Highway values never usable by either mode.
var excludedAlways = map[string]struct{}{
	"motorway": {}, "motorway_link": {}, "trunk": {}, "trunk_link": {},
	"raceway": {}, "bus_guideway": {}, "escape": {}, "busway": {},
	"construction": {}, "proposed": {}, "abandoned": {}, "platform": {},
}

// Highway values a bicycle may not use.
var excludedBike = map[string]struct{}{
	"footway": {}, "steps": {}, "corridor": {}, "elevator": {}, "pedestrian": {},
}

// usable reports whether mode may travel along a way with tags.
func usable(tags osm.Tags, mode TravelMode) bool {
	hw := tags.Find("highway")
	if hw == "" {
		return false
	}
	if _, ok := excludedAlways[hw]; ok {
		return false
	}
	switch tags.Find("access") {
	case "no", "private":
		return false
	}
	switch mode {
	case Walk:
		return tags.Find("foot") != "no"
	case Bike:
		if _, ok := excludedBike[hw]; ok {
			return tags.Find("bicycle") == "yes" || tags.Find("bicycle") == "designated"
		}
		return tags.Find("bicycle") != "no"
	default:
		return false
	}
}

// direction is how a way's node order maps to travel.
type direction int

const (
	bothWays direction = iota
	forward
	backward
)

// wayDirection reads oneway tags. Walking is always two-way.
func wayDirection(tags osm.Tags, mode TravelMode) direction {
	if mode == Walk {
		return bothWays
	}
	if v := tags.Find("oneway:bicycle"); v == "no" {
		return bothWays
	}
	switch tags.Find("oneway") {
	case "yes", "true", "1":
		return forward
	case "-1", "reverse":
		return backward
	}
	switch tags.Find("junction") {
	case "roundabout", "circular":
		return forward
	}

	return bothWays
}
