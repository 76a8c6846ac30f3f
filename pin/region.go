// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: pin/region.go
// Summary: Pinned region geometry and the vertical-to-horizontal scrub mapping.

package pin

// Region is the published state of one pinned section.
type Region struct {
	RegionStart    float64 // scroll offset at which the section reaches the viewport top
	TrackWidth     float64
	ViewportWidth  float64
	TravelDistance float64
	Pinned         bool
	Progress       float64 // in [0, 1]
	TranslateX     float64 // horizontal shift applied to the track, <= 0
	Shift          float64 // rows of scroll consumed while held, in [0, TravelDistance]
}

// TravelDistance is how far a track must move to show its last column.
func TravelDistance(trackWidth, viewportWidth float64) float64 {
	if d := trackWidth - viewportWidth; d > 0 {
		return d
	}
	return 0
}

// apply maps an offset onto the region 1:1. A region with no travel never pins.
func (r *Region) apply(offset float64) {
	if r.TravelDistance <= 0 {
		r.Pinned = false
		r.Progress = 0
		r.TranslateX = 0
		r.Shift = 0
		return
	}
	held := offset - r.RegionStart
	r.Pinned = held >= 0 && held <= r.TravelDistance
	if held < 0 {
		held = 0
	} else if held > r.TravelDistance {
		held = r.TravelDistance
	}
	r.Shift = held
	r.Progress = held / r.TravelDistance
	r.TranslateX = -r.Progress * r.TravelDistance
}
