package configuration

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCurvePoint(t *testing.T) {
	// WHEN
	result, err := parseCurvePoint("40, 500")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, CurvePointConfig{Temp: 500, Speed: 40}, result)
}

func TestParseCurvePoint_Invalid(t *testing.T) {
	for _, text := range []string{"40", "a,500", "40,b", "1,2,3"} {
		// WHEN
		_, err := parseCurvePoint(text)

		// THEN
		assert.Error(t, err, text)
	}
}

func TestCurvePointHookFunc(t *testing.T) {
	// GIVEN
	hook := curvePointHookFunc()

	// WHEN
	result, err := hook(reflect.TypeOf(""), reflect.TypeOf(CurvePointConfig{}), "100,900")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, CurvePointConfig{Temp: 900, Speed: 100}, result)
}

func TestCurvePointHookFunc_IgnoresOtherTypes(t *testing.T) {
	// GIVEN
	hook := curvePointHookFunc()
	data := map[string]interface{}{"temp": 300, "speed": 0}

	// WHEN
	result, err := hook(reflect.TypeOf(data), reflect.TypeOf(CurvePointConfig{}), data)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, data, result)
}
