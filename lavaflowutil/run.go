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
	"os"

	"github.com/sirupsen/logrus"
)

// VariableUnits maps the diagnostic variables the core produces to their
// units, for labeling output columns.
var VariableUnits = map[string]string{
	"characteristic_surface_temperature": "K",
	"effective_radiation_temperature":    "K",
	"crust_temperature":                  "K",
	"effective_cover_fraction":           "fraction",
	"channel_width":                      "m",
	"channel_depth":                      "m",
	"crystal_fraction":                   "fraction",
	"core_temperature":                   "K",
	"viscosity":                          "Pa·s",
	"mean_velocity":                      "m/s",
	"dphi_dx":                            "1/m",
	"dtemp_dx":                           "K/m",
	"dphi_dtemp":                         "1/K",
	"current_time":                       "s",
	"slope":                              "rad",
	"effusion_rate":                      "m³/s",
}

// Run drives the simulation to termination, logs progress to log, and
// writes the diagnostics CSV to the configured output file. The
// diagnostics written cover every committed step even if the run aborts
// with an error.
func Run(config *ConfigData, sim *Simulation, log *logrus.Logger) error {
	log.WithFields(logrus.Fields{
		"dx":                   config.Dx,
		"eruption_temperature": sim.State.CoreTemperature,
		"crystal_fraction":     sim.State.CrystalFraction,
	}).Info("starting run")

	runErr := sim.Integrator.Run(sim.State, sim.MaxIterations)

	// The state and diagnostics are valid up to the last committed
	// step, so the output is written before the error is surfaced.
	if err := writeOutput(config.OutputFile, sim); err != nil {
		if runErr != nil {
			return fmt.Errorf("%v (additionally, writing output failed: %v)", runErr, err)
		}
		return err
	}

	fields := logrus.Fields{
		"steps":            sim.Integrator.Iteration(),
		"position":         sim.State.Position,
		"core_temperature": sim.State.CoreTemperature,
		"crystal_fraction": sim.State.CrystalFraction,
		"effusion_rate":    sim.Integrator.EffusionRate(),
		"termination":      sim.Integrator.Termination().String(),
	}
	if runErr != nil {
		log.WithFields(fields).Error("run aborted")
		return runErr
	}
	log.WithFields(fields).Info("run finished")

	if summary, err := sim.Diagnostics.Summary("mean_velocity"); err == nil {
		log.WithFields(logrus.Fields{
			"min":  summary.Min,
			"max":  summary.Max,
			"mean": summary.Mean,
		}).Info("mean velocity along the channel")
	}
	return nil
}

func writeOutput(filename string, sim *Simulation) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("problem creating output file: %v", err)
	}
	defer f.Close()
	return sim.Diagnostics.WriteCSV(f, VariableUnits)
}
