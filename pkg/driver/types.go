// pkg/driver/types.go
package driver

import "time"

// Telemetry is one snapshot of the measurable state of a servo.
// Values are in engineering units, already scaled by the driver facade.
type Telemetry struct {
	ServoID     int       `json:"servo_id"`
	Voltage     float32   `json:"voltage_v"`
	Temperature float32   `json:"temperature_c"`
	Current     float32   `json:"current_a"`
	Position    float32   `json:"position_deg"`
	Timestamp   time.Time `json:"timestamp"`
}

// ServoStatus is the motion and safety state of a servo
type ServoStatus struct {
	ServoID int    `json:"servo_id"`
	Status  string `json:"status"`
	Safety  string `json:"safety"`
}

// ServoInfo identifies the hardware behind an address
type ServoInfo struct {
	ServoID int    `json:"servo_id"`
	Model   string `json:"model"`
}

// OperationResult reports the outcome of one driver operation
type OperationResult struct {
	OperationID string        `json:"operation_id"`
	Success     bool          `json:"success"`
	Duration    time.Duration `json:"duration"`
	Timestamp   time.Time     `json:"timestamp"`
}
