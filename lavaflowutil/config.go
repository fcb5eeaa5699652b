/*
Copyright © 2026 the Lavaflow authors.
This file is part of Lavaflow.

Lavaflow is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Lavaflow is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Lavaflow.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package lavaflowutil assembles lavaflow simulations from configuration
// files and drives whole runs for the command-line interface.
package lavaflowutil

import (
	"bufio"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ConfigData holds the run configuration for a lavaflow simulation.
type ConfigData struct {
	// Dx is the spatial step of the integrator [m].
	Dx float64

	// MaxIterations caps the number of integration steps. If < 1, the
	// run continues until a physical termination condition is met.
	MaxIterations int

	// ParameterFile is the path to the JSON file holding the physical
	// parameters of the lava, air, and sub-models. It can include
	// environment variables.
	ParameterFile string

	// ProfileFile is the path to a CSV channel profile (distance [m],
	// slope [degrees], width [m], depth [m] with a header row). If
	// empty, the Channel section describes a uniform channel instead.
	// It can include environment variables.
	ProfileFile string

	// Channel describes a uniform channel, used when ProfileFile is
	// empty.
	Channel struct {
		Width        float64 // [m]
		Depth        float64 // [m]
		SlopeDegrees float64 // [degrees]
		MaxLength    float64 // [m]
	}

	// OutputFile is the path the diagnostics CSV is written to. It can
	// include environment variables.
	OutputFile string

	// LogFile is the path run log messages are written to. If empty,
	// the log is saved next to the OutputFile.
	LogFile string
}

// ReadConfigFile reads and parses a TOML run-configuration file.
func ReadConfigFile(filename string) (*ConfigData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("the configuration file you have specified, %v, does not "+
			"appear to exist. Please check the file name and location and try again", filename)
	}
	defer file.Close()
	bytes, err := ioutil.ReadAll(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("problem reading configuration file: %v", err)
	}

	config := new(ConfigData)
	if _, err := toml.Decode(string(bytes), config); err != nil {
		return nil, fmt.Errorf("there has been an error parsing the configuration file: %v", err)
	}

	config.ParameterFile = os.ExpandEnv(config.ParameterFile)
	config.ProfileFile = os.ExpandEnv(config.ProfileFile)
	config.OutputFile = os.ExpandEnv(config.OutputFile)
	config.LogFile = os.ExpandEnv(config.LogFile)

	if !(config.Dx > 0) {
		return nil, fmt.Errorf("the Dx configuration variable must be a positive step "+
			"length in meters but is %g", config.Dx)
	}
	if config.ParameterFile == "" {
		return nil, fmt.Errorf("you need to specify a parameter file in the configuration " +
			`file (for example: ParameterFile="parameters.json")`)
	}
	if config.OutputFile == "" {
		return nil, fmt.Errorf("you need to specify an output file in the configuration " +
			`file (for example: OutputFile="output.csv")`)
	}
	if config.LogFile == "" {
		config.LogFile = strings.TrimSuffix(config.OutputFile, filepath.Ext(config.OutputFile)) + ".log"
	}

	outdir := filepath.Dir(config.OutputFile)
	if err := os.MkdirAll(outdir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("problem creating output directory: %v", err)
	}
	return config, nil
}
