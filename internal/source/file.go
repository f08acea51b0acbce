// ABOUTME: File-backed health source reading JSON drop files from a directory.
// ABOUTME: Lets exports from other devices feed the aggregator offline.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/readiness/internal/models"
	"github.com/harperreed/readiness/internal/prefs"
)

// DropFile is one JSON document in the drop directory: a batch of data
// points from a single origin.
type DropFile struct {
	Source string                    `json:"source"`
	Points []*models.HealthDataPoint `json:"points"`
}

// FileSource reads health data from JSON drop files. Its sync cursor
// lives in the preference store.
type FileSource struct {
	dir   string
	prefs *prefs.Store
}

// NewFileSource creates a file source over the given drop directory.
func NewFileSource(dir string, p *prefs.Store) *FileSource {
	return &FileSource{dir: dir, prefs: p}
}

// Name returns the adapter name for logging.
func (f *FileSource) Name() string { return "file drop" }

// Kind returns the source enum file imports are attributed to.
func (f *FileSource) Kind() models.DataSource { return models.SourceFile }

// HasPermissions reports whether the drop directory is readable. A
// missing directory means the source is simply not set up.
func (f *FileSource) HasPermissions(ctx context.Context) (bool, error) {
	info, err := os.Stat(f.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat drop directory: %w", err)
	}
	return info.IsDir(), nil
}

// LastSync returns the persisted cursor for this source.
func (f *FileSource) LastSync(ctx context.Context) (time.Time, bool, error) {
	return f.prefs.LastSync(f.Kind())
}

// UpdateLastSync advances the persisted cursor.
func (f *FileSource) UpdateLastSync(ctx context.Context, t time.Time) error {
	return f.prefs.SetLastSync(f.Kind(), t)
}

// FetchData returns all points in the drop files whose timestamps fall
// inside [start, end]. Points carry their declared source; anything
// unrecognized is normalized to unknown.
func (f *FileSource) FetchData(ctx context.Context, start, end time.Time) ([]*models.HealthDataPoint, error) {
	files, err := f.dropFiles()
	if err != nil {
		return nil, err
	}

	var points []*models.HealthDataPoint
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		drop, err := readDropFile(path)
		if err != nil {
			return nil, err
		}
		src := models.NormalizeSource(drop.Source)
		for _, p := range drop.Points {
			if p.Timestamp.Before(start) || p.Timestamp.After(end) {
				continue
			}
			if p.Source == "" {
				p.Source = src
			}
			if p.ID == "" {
				p.ID = models.PointID(p.Source, p.Type, p.Timestamp)
			}
			points = append(points, p)
		}
	}
	return points, nil
}

// FetchTodayStats aggregates today's points from the drop files into a
// snapshot: steps and sleep minutes summed, HRV and recovery from the
// most recent reading.
func (f *FileSource) FetchTodayStats(ctx context.Context) (*models.DailyStats, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	points, err := f.FetchData(ctx, dayStart, now)
	if err != nil {
		return nil, err
	}
	return AggregateDay(now.Format(models.DateFormat), points), nil
}

// dropFiles lists *.json files in the drop directory, oldest name first
// so later files win when points collide.
func (f *FileSource) dropFiles() ([]string, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("read drop directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(f.dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func readDropFile(path string) (*DropFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read drop file %s: %w", filepath.Base(path), err)
	}
	var drop DropFile
	if err := json.Unmarshal(data, &drop); err != nil {
		return nil, fmt.Errorf("parse drop file %s: %w", filepath.Base(path), err)
	}
	return &drop, nil
}

// AggregateDay folds raw points for one local date into a DailyStats
// snapshot. Counted signals (steps, sleep, workout minutes, energy) sum;
// instantaneous signals (HRV, resting HR, recovery) take the latest
// reading of the day.
func AggregateDay(date string, points []*models.HealthDataPoint) *models.DailyStats {
	stats := models.NewDailyStats(date)

	var steps int
	var sleepMin, deepMin, workoutMin, energy float64
	var haveSteps, haveSleep, haveDeep, haveWorkout, haveEnergy bool
	var hrvAt, rhrAt, recoveryAt time.Time

	for _, p := range points {
		stats.AddSource(p.Source)
		switch p.Type {
		case models.TypeSteps:
			steps += int(p.Value)
			haveSteps = true
		case models.TypeSleepAsleep:
			sleepMin += p.Value
			haveSleep = true
		case models.TypeSleepDeep:
			deepMin += p.Value
			haveDeep = true
		case models.TypeWorkoutMinutes:
			workoutMin += p.Value
			haveWorkout = true
		case models.TypeActiveEnergyBurned:
			energy += p.Value
			haveEnergy = true
		case models.TypeHRV:
			if p.Timestamp.After(hrvAt) {
				v := p.Value
				stats.HRV = &v
				hrvAt = p.Timestamp
			}
		case models.TypeRestingHeartRate:
			if p.Timestamp.After(rhrAt) {
				v := p.Value
				stats.RestingHeartRate = &v
				rhrAt = p.Timestamp
			}
		case models.TypeRecoveryScore:
			if p.Timestamp.After(recoveryAt) {
				v := p.Value
				stats.RecoveryScore = &v
				recoveryAt = p.Timestamp
			}
		}
	}

	if haveSteps {
		stats.Steps = &steps
	}
	if haveSleep {
		stats.SleepMinutes = &sleepMin
	}
	if haveDeep {
		stats.DeepSleepMinutes = &deepMin
	}
	if haveWorkout {
		stats.WorkoutMinutes = &workoutMin
	}
	if haveEnergy {
		stats.ActiveEnergyBurned = &energy
	}

	return stats
}
