/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package config

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"

	"github.com/fe-daq/go-feb/pkg/calib"
	"github.com/fe-daq/go-feb/pkg/log"
)

// BoardConfig names one front-end board and the bus device it is
// reached through. Device is "sim", "udp://host:port" or a path to a
// memory-mapped device file.
type BoardConfig struct {
	Name   string `json:"name"`
	Device string `json:"device"`
}

type Config struct {
	LogLevel string                `json:"logLevel,omitempty"`
	IP       string                `json:"ip,omitempty"`
	DBPath   string                `json:"dbPath,omitempty"`
	Boards   []*BoardConfig        `json:"boards"`
	CalPulse *calib.CalPulseParams `json:"calpulse,omitempty"`
	Scan     *calib.ScanParams     `json:"scan,omitempty"`
	TTCGen   *calib.TTCGenParams   `json:"ttcgen,omitempty"`
	filepath string
}

func (c *Config) Persist(overwrite bool) error {
	if _, err := os.Stat(c.filepath); err == nil && !overwrite {
		return ErrConfigFileExists{Path: c.filepath}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.filepath)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	err = ioutil.WriteFile(c.filepath, data, 0644)
	if err != nil {
		return err
	}

	return nil
}

// Load reads the config file over the defaults. A missing file is not
// an error, the defaults stay in effect.
func (c *Config) Load() error {
	data, err := ioutil.ReadFile(c.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug("Config file %s not found, using defaults", c.filepath)
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, c)
}

// Validate checks the parts of the config that every command depends
// on. Board device specs are validated by the bus layer when opened.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	for _, board := range c.Boards {
		if board.Name == "" {
			return ErrBoardNotFound{Name: board.Name}
		}
	}
	return nil
}

// GetBoardByName returns the configured board with the given name.
func (c *Config) GetBoardByName(name string) (*BoardConfig, error) {
	for _, board := range c.Boards {
		if board.Name == name {
			return board, nil
		}
	}
	return nil, ErrBoardNotFound{Name: name}
}

// DefaultBoard returns the name of the first configured board, used
// as the default for the board flag of single-board commands.
func (c *Config) DefaultBoard() string {
	if len(c.Boards) == 0 {
		return DefaultBoardName
	}
	return c.Boards[0].Name
}

func (c *Config) Filepath() string {
	return c.filepath
}

func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ConfigDir, ConfigFile)
}

func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ConfigDir, DBFile)
}

func NewDefaultConfig() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		IP:       DefaultIP,
		DBPath:   DefaultDBPath(),
		Boards: []*BoardConfig{
			{
				Name:   DefaultBoardName,
				Device: DefaultBoardDevice,
			},
		},
		CalPulse: calib.NewCalPulseParams(),
		Scan:     calib.NewScanParams(),
		TTCGen:   calib.NewTTCGenParams(),
		filepath: DefaultConfigPath(),
	}
}

// NewConfigAt is NewDefaultConfig with the file location overridden,
// used by tests and by tools that keep several setups around.
func NewConfigAt(path string) *Config {
	cfg := NewDefaultConfig()
	cfg.filepath = path
	return cfg
}
