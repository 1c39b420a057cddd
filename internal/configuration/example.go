package configuration

// ExampleConfig is written by 'gpufan2go config init'
const ExampleConfig = `# gpufan2go configuration
# Path to the database file holding the last applied fan state
dbPath: /etc/gpufan2go/gpufan2go.db

# Time between two control cycles, in 1/10 seconds [0..300]
updateInterval: 20
# Minimum temperature change (in percent of the last applied temperature)
# required to recalculate the fan speed [0..30]
hysteresis: 5

amdgpu:
  id: card0
  modePath: /sys/class/drm/card0/device/hwmon/hwmon0/pwm1_enable
  enablePath: /sys/class/drm/card0/device/hwmon/hwmon0/fan1_enable
  pwmPath: /sys/class/drm/card0/device/hwmon/hwmon0/pwm1
  # up to 10 tempX_input files, the highest temperature is used
  sensors:
    - id: edge
      path: /sys/class/drm/card0/device/hwmon/hwmon0/temp1_input
    - id: junction
      path: /sys/class/drm/card0/device/hwmon/hwmon0/temp2_input
  # 2 to 32 points, temperature in 1/10 °C, speed in percent.
  # A first point with 0% keeps the fan off below the second point.
  # Points may also be written as "<speed>,<temperature>"
  curve:
    - temp: 0
      speed: 0
    - temp: 500
      speed: 30
    - "60,700"
    - "100,900"

statistics:
  enabled: false
  port: 9000

api:
  enabled: false
  host: localhost
  port: 9001
`
