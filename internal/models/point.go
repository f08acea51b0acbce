// ABOUTME: HealthDataPoint model and enums for raw health measurements.
// ABOUTME: Defines data types, units, and source identifiers for all adapters.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DataType represents the kind of measurement a data point records.
type DataType string

const (
	TypeSteps                  DataType = "steps"
	TypeSleepAsleep            DataType = "sleepAsleep"
	TypeSleepDeep              DataType = "sleepDeep"
	TypeSleepREM               DataType = "sleepREM"
	TypeHeartRate              DataType = "heartRate"
	TypeRestingHeartRate       DataType = "restingHeartRate"
	TypeHRV                    DataType = "heartRateVariability"
	TypeActiveEnergyBurned     DataType = "activeEnergyBurned"
	TypeDistanceWalkingRunning DataType = "distanceWalkingRunning"
	TypeWeight                 DataType = "weight"
	TypeBodyMassIndex          DataType = "bodyMassIndex"
	TypeWorkoutMinutes         DataType = "workoutMinutes"
	TypeRecoveryScore          DataType = "recoveryScore"
)

// DataUnit represents the unit a data point value is expressed in.
type DataUnit string

const (
	UnitCount          DataUnit = "count"
	UnitKilocalorie    DataUnit = "kilocalorie"
	UnitMeter          DataUnit = "meter"
	UnitBeatsPerMinute DataUnit = "beatsPerMinute"
	UnitMillisecond    DataUnit = "millisecond"
	UnitMinute         DataUnit = "minute"
	UnitKilogram       DataUnit = "kilogram"
	UnitPercent        DataUnit = "percent"
	UnitNoUnit         DataUnit = "noUnit"
)

// DataSource identifies the adapter a data point came from.
type DataSource string

const (
	SourcePlatformHealth DataSource = "platform-health"
	SourceFitbit         DataSource = "fitbit"
	SourceGarmin         DataSource = "garmin"
	SourceWhoop          DataSource = "whoop"
	SourceTechnogym      DataSource = "technogym"
	SourceFile           DataSource = "file"
	SourceManual         DataSource = "manual"
	SourceUnknown        DataSource = "unknown"
)

// DefaultUnits maps data types to the unit adapters normally report them in.
var DefaultUnits = map[DataType]DataUnit{
	TypeSteps:                  UnitCount,
	TypeSleepAsleep:            UnitMinute,
	TypeSleepDeep:              UnitMinute,
	TypeSleepREM:               UnitMinute,
	TypeHeartRate:              UnitBeatsPerMinute,
	TypeRestingHeartRate:       UnitBeatsPerMinute,
	TypeHRV:                    UnitMillisecond,
	TypeActiveEnergyBurned:     UnitKilocalorie,
	TypeDistanceWalkingRunning: UnitMeter,
	TypeWeight:                 UnitKilogram,
	TypeBodyMassIndex:          UnitNoUnit,
	TypeWorkoutMinutes:         UnitMinute,
	TypeRecoveryScore:          UnitPercent,
}

// AllDataTypes returns all valid data types.
var AllDataTypes = []DataType{
	TypeSteps, TypeSleepAsleep, TypeSleepDeep, TypeSleepREM,
	TypeHeartRate, TypeRestingHeartRate, TypeHRV,
	TypeActiveEnergyBurned, TypeDistanceWalkingRunning,
	TypeWeight, TypeBodyMassIndex, TypeWorkoutMinutes, TypeRecoveryScore,
}

// AllDataSources returns all known source identifiers.
var AllDataSources = []DataSource{
	SourcePlatformHealth, SourceFitbit, SourceGarmin, SourceWhoop,
	SourceTechnogym, SourceFile, SourceManual, SourceUnknown,
}

// IsValidDataType checks if a string is a valid data type.
func IsValidDataType(s string) bool {
	for _, t := range AllDataTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// NormalizeSource maps an arbitrary source string onto a known DataSource,
// falling back to SourceUnknown for anything unrecognized.
func NormalizeSource(s string) DataSource {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, src := range AllDataSources {
		if strings.ToLower(string(src)) == s {
			return src
		}
	}
	return SourceUnknown
}

// HealthDataPoint is a single observed measurement from an adapter or
// manual entry. ID is the natural key; re-storing the same ID replaces
// the prior row.
type HealthDataPoint struct {
	ID               string            `json:"id"`
	Type             DataType          `json:"type"`
	Value            float64           `json:"value"`
	Unit             DataUnit          `json:"unit"`
	Timestamp        time.Time         `json:"timestamp"`
	DateFrom         time.Time         `json:"date_from"`
	DateTo           time.Time         `json:"date_to"`
	Source           DataSource        `json:"source"`
	SourceDeviceName *string           `json:"source_device_name,omitempty"`
	SourceAppName    *string           `json:"source_app_name,omitempty"`
	Metadata         map[string]string `json:"metadata,omitempty"`
	IsManualEntry    bool              `json:"is_manual_entry"`
	SyncedAt         *time.Time        `json:"synced_at,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}

// PointID builds the natural key adapters use: source_type_timestamp.
func PointID(source DataSource, dataType DataType, ts time.Time) string {
	return fmt.Sprintf("%s_%s_%d", source, dataType, ts.UnixMilli())
}

// NewDataPoint creates an instantaneous data point with a derived natural key.
func NewDataPoint(source DataSource, dataType DataType, value float64, ts time.Time) *HealthDataPoint {
	return &HealthDataPoint{
		ID:        PointID(source, dataType, ts),
		Type:      dataType,
		Value:     value,
		Unit:      DefaultUnits[dataType],
		Timestamp: ts,
		DateFrom:  ts,
		DateTo:    ts,
		Source:    source,
		CreatedAt: time.Now(),
	}
}

// NewManualDataPoint creates a manually-entered data point. Manual entries
// get a UUID-based key so repeated entries of the same type never collide.
func NewManualDataPoint(dataType DataType, value float64, ts time.Time) *HealthDataPoint {
	p := NewDataPoint(SourceManual, dataType, value, ts)
	p.ID = fmt.Sprintf("%s_%s_%s", SourceManual, dataType, uuid.New().String())
	p.IsManualEntry = true
	return p
}

// WithRange sets the time range the measurement covers.
func (p *HealthDataPoint) WithRange(from, to time.Time) *HealthDataPoint {
	p.DateFrom = from
	p.DateTo = to
	return p
}

// WithMetadata attaches a metadata key-value pair.
func (p *HealthDataPoint) WithMetadata(key, value string) *HealthDataPoint {
	if p.Metadata == nil {
		p.Metadata = make(map[string]string)
	}
	p.Metadata[key] = value
	return p
}
