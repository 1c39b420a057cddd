package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/markusressel/gpufan2go/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketDevices = "devices"

	// DefaultLockTimeout is used by one-shot commands waiting for the daemon to release the db
	DefaultLockTimeout = 10 * time.Second
	// DaemonLockTimeout keeps a db held by another process from stalling the control loop
	DaemonLockTimeout = 100 * time.Millisecond
)

// DeviceState is the last fan state applied to a device.
// Only the most recent state is kept, there is no history.
type DeviceState struct {
	// Temperature in 1/10 °C the current duty was calculated for
	Temperature int `json:"temperature"`
	// Duty in native pwm units
	Duty       int       `json:"duty"`
	FanEnabled bool      `json:"fanEnabled"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Persistence interface {
	Init() error

	LoadDeviceState(deviceId string) (DeviceState, error)
	SaveDeviceState(deviceId string, state DeviceState) error
	DeleteDeviceState(deviceId string) error
}

type persistence struct {
	dbPath      string
	lockTimeout time.Duration
}

// NewPersistence creates a store at dbPath. Every operation opens the db and
// waits at most lockTimeout for the file lock.
func NewPersistence(dbPath string, lockTimeout time.Duration) Persistence {
	return &persistence{
		dbPath:      dbPath,
		lockTimeout: lockTimeout,
	}
}

func (p persistence) Init() (err error) {
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
	}
	return err
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	return bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: p.lockTimeout})
}

// SaveDeviceState replaces the stored state of the given device
func (p persistence) SaveDeviceState(deviceId string, state DeviceState) (err error) {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketDevices))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		return b.Put([]byte(deviceId), data)
	})
}

// LoadDeviceState returns os.ErrNotExist if no state was saved for the given device
func (p persistence) LoadDeviceState(deviceId string) (state DeviceState, err error) {
	db, err := p.openPersistence()
	if err != nil {
		return state, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	corrupt := false
	err = db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketDevices))
		if b == nil {
			return os.ErrNotExist
		}
		v := b.Get([]byte(deviceId))
		if v == nil {
			return os.ErrNotExist
		}

		err := json.Unmarshal(v, &state)
		if err != nil {
			// if we cannot read the saved data, delete it
			ui.Warning("Unable to unmarshal saved state of %s: %v", deviceId, err)
			if err := b.Delete([]byte(deviceId)); err != nil {
				ui.Error("Unable to delete corrupt data key %s: %v", deviceId, err)
			}
			corrupt = true
		}
		return nil
	})
	if err == nil && corrupt {
		err = os.ErrNotExist
	}

	return state, err
}

func (p persistence) DeleteDeviceState(deviceId string) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketDevices))
		if b == nil {
			// nothing saved yet
			return nil
		}
		return b.Delete([]byte(deviceId))
	})
}
