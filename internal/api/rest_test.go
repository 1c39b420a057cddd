package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/markusressel/gpufan2go/internal/controller"
	"github.com/markusressel/gpufan2go/internal/curves"
	"github.com/markusressel/gpufan2go/internal/sensors"
	"github.com/markusressel/gpufan2go/internal/testingutils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerEngine(t *testing.T, id string) *controller.Engine {
	curve, err := curves.NewCurve([]curves.Point{
		{Temperature: 300, Duty: 0},
		{Temperature: 500, Duty: 100},
		{Temperature: 900, Duty: 255},
	})
	require.NoError(t, err)

	engine, err := controller.NewEngine(0, 0, controller.NewStopper(), false)
	require.NoError(t, err)
	err = engine.Attach(&testingutils.MockDevice{
		ID:      id,
		Sensors: []*sensors.Sensor{testingutils.CreateFileSensor(t, "edge", "50000\n")},
	}, curve)
	require.NoError(t, err)

	controller.EngineMap.Set(id, engine)
	t.Cleanup(func() {
		controller.EngineMap.Remove(id)
	})
	return engine
}

func request(t *testing.T, path string) *httptest.ResponseRecorder {
	rest := CreateRestService(prometheus.NewRegistry())
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	rest.ServeHTTP(rec, req)
	return rec
}

func TestAlive(t *testing.T) {
	rec := request(t, "/alive")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetDevices(t *testing.T) {
	// GIVEN
	registerEngine(t, "card0")

	// WHEN
	rec := request(t, "/device/")

	// THEN
	require.Equal(t, http.StatusOK, rec.Code)
	var data map[string]controller.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	require.Contains(t, data, "card0")
	assert.Equal(t, "card0", data["card0"].DeviceId)
	assert.Equal(t, "initializing", data["card0"].StateStr)
	assert.Nil(t, data["card0"].LastAppliedTemperature)
}

func TestGetDevice(t *testing.T) {
	// GIVEN
	registerEngine(t, "card1")

	// WHEN
	rec := request(t, "/device/card1/")

	// THEN
	require.Equal(t, http.StatusOK, rec.Code)
	var data controller.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	assert.Equal(t, "card1", data.DeviceId)
}

func TestGetDevice_NotFound(t *testing.T) {
	// WHEN
	rec := request(t, "/device/unknown/")

	// THEN
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var data Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	assert.Equal(t, "No item with id 'unknown' found", data.Message)
}

func TestGetDeviceCurve(t *testing.T) {
	// GIVEN
	registerEngine(t, "card2")

	// WHEN
	rec := request(t, "/device/card2/curve/")

	// THEN
	require.Equal(t, http.StatusOK, rec.Code)
	var data []CurvePoint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	require.Len(t, data, 3)
	// zero fan mode moves the first point right below the second one
	assert.Equal(t, CurvePoint{Temperature: 499, Duty: 0, Percent: 0}, data[0])
	assert.Equal(t, 255, data[2].Duty)
	assert.Equal(t, 100.0, data[2].Percent)
}
