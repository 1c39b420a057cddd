package configuration

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// curvePointHookFunc returns a mapstructure decode hook that allows curve points to be
// written in the compact "<speed>,<temp>" notation, f.ex. "40,500" for 40% at 50.0°C,
// in addition to the regular {temp: 500, speed: 40} map notation.
func curvePointHookFunc() mapstructure.DecodeHookFuncType {
	pointType := reflect.TypeOf(CurvePointConfig{})

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != pointType || f.Kind() != reflect.String {
			return data, nil
		}
		return parseCurvePoint(data.(string))
	}
}

func parseCurvePoint(text string) (CurvePointConfig, error) {
	parts := strings.Split(text, ",")
	if len(parts) != 2 {
		return CurvePointConfig{}, fmt.Errorf("invalid curve point '%s', expected format: <speed in %%>,<temperature in 1/10 °C>", text)
	}
	speed, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return CurvePointConfig{}, fmt.Errorf("invalid speed in curve point '%s': %w", text, err)
	}
	temp, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return CurvePointConfig{}, fmt.Errorf("invalid temperature in curve point '%s': %w", text, err)
	}
	return CurvePointConfig{
		Temp:  temp,
		Speed: speed,
	}, nil
}
