package controller

import "github.com/markusressel/gpufan2go/internal/util"

// ShouldUpdate decides whether the current temperature differs enough from the
// last applied one to recalculate the fan duty. The dead band is proportional
// to the last applied temperature. A nil last value always triggers an update,
// an unchanged temperature never does, not even with a hysteresis of 0.
func ShouldUpdate(last *int, current int, percent int) bool {
	if last == nil {
		return true
	}
	if current == *last {
		return false
	}
	threshold := util.DivRoundHalfUp(percent*(*last), 100)
	return util.Abs(current-*last) >= threshold
}
