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

package lavaflowutil

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is the Lavaflow version number.
const Version = "0.1.0"

var configFile string

// Root is the main command.
var Root = &cobra.Command{
	Use:   "lavaflow",
	Short: "A thermo-rheological model of channelized lava flows.",
	Long: `Lavaflow integrates the cooling, crystallization, and deceleration
of a channelized lava flow from the vent until it stalls, solidifies,
or reaches the end of its channel.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lavaflow v%s\n", Version)
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation.",
	Long: `run reads the configuration file given by --config, assembles the
simulation it describes, integrates the flow to termination, and writes
the diagnostics series to the configured output file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := ReadConfigFile(configFile)
		if err != nil {
			return err
		}
		sim, err := NewSimulation(config)
		if err != nil {
			return err
		}
		log, closeLog, err := newLogger(config.LogFile)
		if err != nil {
			return err
		}
		defer closeLog()
		return Run(config, sim, log)
	},
}

func init() {
	Root.PersistentFlags().StringVar(&configFile, "config", "lavaflow.toml",
		"configuration file location")
	Root.AddCommand(versionCmd, runCmd)
}

// newLogger creates a logrus logger writing to both stdout and the
// configured log file.
func newLogger(logFile string) (*logrus.Logger, func(), error) {
	f, err := os.Create(logFile)
	if err != nil {
		return nil, nil, fmt.Errorf("problem creating log file: %v", err)
	}
	log := logrus.New()
	log.Out = io.MultiWriter(os.Stdout, f)
	return log, func() { f.Close() }, nil
}
