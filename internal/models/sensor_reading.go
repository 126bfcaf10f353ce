package models

// SensorReading is the fixed-shape telemetry record served by the station.
// A reading is immutable once built; the updater installs complete
// replacements, so no consumer ever sees a half-written record.
type SensorReading struct {
	Temperature float64 `json:"temperature"` // °C
	Humidity    float64 `json:"humidity"`    // %RH
	Timestamp   uint64  `json:"timestamp"`   // seconds since epoch
}
