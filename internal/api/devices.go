package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/gpufan2go/internal/controller"
	"github.com/markusressel/gpufan2go/internal/curves"
)

type CurvePoint struct {
	Temperature int     `json:"temperature"`
	Duty        int     `json:"duty"`
	Percent     float64 `json:"percent"`
}

func registerDeviceEndpoints(rest *echo.Echo) {
	group := rest.Group("/device")

	group.GET("/", getDevices)
	group.GET("/:"+urlParamId+"/", getDevice)
	group.GET("/:"+urlParamId+"/curve/", getDeviceCurve)
}

// returns the state of all controlled devices
func getDevices(c echo.Context) error {
	data := map[string]controller.Snapshot{}
	for item := range controller.EngineMap.IterBuffered() {
		data[item.Key] = item.Val.Snapshot()
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getDevice(c echo.Context) error {
	id := c.Param(urlParamId)
	engine, exists := controller.EngineMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}
	return c.JSONPretty(http.StatusOK, engine.Snapshot(), indentationChar)
}

func getDeviceCurve(c echo.Context) error {
	id := c.Param(urlParamId)
	engine, exists := controller.EngineMap.Get(id)
	if !exists || engine.GetCurve() == nil {
		return returnNotFound(c, id)
	}

	var data []CurvePoint
	for _, point := range engine.GetCurve().Points() {
		data = append(data, CurvePoint{
			Temperature: point.Temperature,
			Duty:        point.Duty,
			Percent:     curves.DutyToPercent(point.Duty),
		})
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}
