// Copyright 2025 The Helios Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package boot holds the boot-time configuration of the volume manager.
package boot

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"helios.dev/helios/pkg/fs"
	"helios.dev/helios/pkg/fs/volume"
)

// duration wraps time.Duration for TOML decoding ("100ms", "2s", ...).
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// Config is the volume manager's boot configuration.
type Config struct {
	// DevPath is the device namespace scanned for the system volume.
	DevPath string `toml:"dev_path"`

	// SystemVolumeName is the mount name given to the system volume.
	SystemVolumeName string `toml:"system_volume_name"`

	// ScanRetries is the number of additional boot-scan attempts.
	ScanRetries int `toml:"scan_retries"`

	// ScanRetryInterval is the delay between boot-scan attempts.
	ScanRetryInterval duration `toml:"scan_retry_interval"`
}

// Default returns the default boot configuration.
func Default() Config {
	return Config{
		DevPath:          "/dev",
		SystemVolumeName: volume.SystemVolumeName,
	}
}

// Load reads a Config from a TOML file, applying defaults for omitted
// fields.
func Load(path string) (Config, error) {
	c := Default()
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return Config{}, fmt.Errorf("decoding boot config %q: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the configuration for values the volume manager would
// reject later.
func (c *Config) Validate() error {
	if c.DevPath == "" {
		return fmt.Errorf("dev_path must not be empty")
	}
	if c.SystemVolumeName == "" {
		return fmt.Errorf("system_volume_name must not be empty")
	}
	if len(c.SystemVolumeName) > fs.NameMax {
		return fmt.Errorf("system_volume_name exceeds %d characters", fs.NameMax)
	}
	if c.ScanRetries < 0 {
		return fmt.Errorf("scan_retries must not be negative")
	}
	if c.ScanRetryInterval.Duration < 0 {
		return fmt.Errorf("scan_retry_interval must not be negative")
	}
	return nil
}

// VolumeOptions converts the configuration into volume manager options.
func (c *Config) VolumeOptions() volume.Options {
	return volume.Options{
		DevPath:           c.DevPath,
		SystemVolumeName:  c.SystemVolumeName,
		ScanRetries:       c.ScanRetries,
		ScanRetryInterval: c.ScanRetryInterval.Duration,
	}
}
