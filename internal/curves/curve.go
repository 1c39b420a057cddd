package curves

import (
	"errors"
	"fmt"

	"github.com/markusressel/gpufan2go/internal/configuration"
	"github.com/markusressel/gpufan2go/internal/util"
)

const (
	MinDutyValue = 0
	MaxDutyValue = 255

	// interpolation is done on duty values multiplied by this factor
	precisionFactor = 100
)

// Point is a single vertex of a fan curve
type Point struct {
	// Temperature in 1/10 °C
	Temperature int `json:"temperature"`
	// Duty in native pwm units [0..255]
	Duty int `json:"duty"`
}

// Curve maps a temperature to a duty value, interpolating linearly between
// its points and holding the outermost values beyond them
type Curve struct {
	points []Point
}

// PercentToDuty scales a fan speed percentage to the native pwm range, rounding half up
func PercentToDuty(percent int) int {
	return util.DivRoundHalfUp(percent*(MaxDutyValue-MinDutyValue), 100) + MinDutyValue
}

// DutyToPercent is the inverse of PercentToDuty, for display purposes only
func DutyToPercent(duty int) float64 {
	return float64(duty-MinDutyValue) * 100 / float64(MaxDutyValue-MinDutyValue)
}

// NewCurveFromConfig converts the configured percentage points to native duty points
func NewCurveFromConfig(config []configuration.CurvePointConfig) (*Curve, error) {
	points := make([]Point, 0, len(config))
	for _, pointConfig := range config {
		points = append(points, Point{
			Temperature: pointConfig.Temp,
			Duty:        PercentToDuty(pointConfig.Speed),
		})
	}
	return NewCurve(points)
}

// NewCurve creates a curve from the given points, which have to be sorted by temperature.
// If the first point has a duty of 0 (zero-fan mode) its temperature is moved to
// one unit below the second point, so the fan stays off right up to that point.
func NewCurve(points []Point) (*Curve, error) {
	if len(points) < 2 {
		return nil, errors.New("at least 2 curve points are required")
	}

	for idx, point := range points {
		if point.Duty < MinDutyValue || point.Duty > MaxDutyValue {
			return nil, fmt.Errorf("point #%d: duty %d out of range [%d..%d]", idx+1, point.Duty, MinDutyValue, MaxDutyValue)
		}
		if idx == 0 {
			continue
		}
		previous := points[idx-1]
		if point.Temperature <= previous.Temperature {
			return nil, fmt.Errorf("point #%d: temperature %d must be greater than %d", idx+1, point.Temperature, previous.Temperature)
		}
		if point.Duty < previous.Duty || (point.Duty == previous.Duty && point.Duty != MinDutyValue) {
			return nil, fmt.Errorf("point #%d: duty %d must be greater than %d", idx+1, point.Duty, previous.Duty)
		}
	}

	c := &Curve{
		points: make([]Point, len(points)),
	}
	copy(c.points, points)

	if c.points[0].Duty == MinDutyValue {
		c.points[0].Temperature = c.points[1].Temperature - 1
	}

	return c, nil
}

// Points returns a copy of the (adjusted) curve points
func (c *Curve) Points() []Point {
	result := make([]Point, len(c.points))
	copy(result, c.points)
	return result
}

// UsesZeroFanMode indicates whether the fan is turned off below the second curve point
func (c *Curve) UsesZeroFanMode() bool {
	return c.points[0].Duty == MinDutyValue
}

// Evaluate calculates the duty value for the given temperature (in 1/10 °C).
// Exact matches and temperatures outside of the curve range map directly to
// the value of the nearest point, everything else is interpolated.
func (c *Curve) Evaluate(temperature int) int {
	points := c.points

	// first point with a temperature >= the input
	i := 0
	for i < len(points) && temperature > points[i].Temperature {
		i++
	}

	if i == 0 || i == len(points) || points[i].Temperature == temperature {
		if i == len(points) {
			i--
		}
		return points[i].Duty
	}

	lo := points[i-1]
	hi := points[i]
	scaled := lo.Duty*precisionFactor + util.DivRoundHalfUp(
		(hi.Duty-lo.Duty)*precisionFactor*(temperature-lo.Temperature),
		hi.Temperature-lo.Temperature,
	)
	return util.DivRoundHalfUp(scaled, precisionFactor)
}
