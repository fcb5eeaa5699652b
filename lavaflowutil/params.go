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
	"math"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spf13/cast"

	"github.com/spatialmodel/lavaflow"
	"github.com/spatialmodel/lavaflow/material"
	"github.com/spatialmodel/lavaflow/science/cover"
	"github.com/spatialmodel/lavaflow/science/crust"
	"github.com/spatialmodel/lavaflow/science/crystallization"
	"github.com/spatialmodel/lavaflow/science/flux/conduction"
	"github.com/spatialmodel/lavaflow/science/flux/forcedconv"
	"github.com/spatialmodel/lavaflow/science/flux/radiative"
	"github.com/spatialmodel/lavaflow/science/flux/rainfall"
	"github.com/spatialmodel/lavaflow/science/rheology/costa"
	"github.com/spatialmodel/lavaflow/science/rheology/kriegerdougherty"
	"github.com/spatialmodel/lavaflow/science/rheology/vft"
	"github.com/spatialmodel/lavaflow/terrain"
)

// Simulation bundles everything a single run owns: the integrator, the
// state it advances, and the diagnostics sink all sub-models write to.
// Separate runs get separate Simulations and share nothing mutable.
type Simulation struct {
	Integrator  *lavaflow.Integrator
	State       *lavaflow.FlowState
	Diagnostics *lavaflow.Diagnostics

	// MaxIterations caps the run length; ≤ 0 means no cap.
	MaxIterations int
}

// floatParam returns the float value at key, or an error naming the key
// if it is missing or not a number.
func floatParam(v *viper.Viper, key string) (float64, error) {
	if !v.IsSet(key) {
		return 0, fmt.Errorf("the parameter file is missing the %s field", key)
	}
	f, err := cast.ToFloat64E(v.Get(key))
	if err != nil {
		return 0, fmt.Errorf("the %s field in the parameter file must be a number: %v", key, err)
	}
	return f, nil
}

// floatParamDefault is floatParam with a default for missing keys.
func floatParamDefault(v *viper.Viper, key string, def float64) (float64, error) {
	if !v.IsSet(key) {
		return def, nil
	}
	return floatParam(v, key)
}

func relativeViscosity(v *viper.Viper) (lavaflow.RelativeViscosityModel, error) {
	model := strings.ToLower(v.GetString("relative_viscosity_parameters.model"))
	switch model {
	case "costa":
		strainRate, err := floatParam(v, "relative_viscosity_parameters.strain_rate")
		if err != nil {
			return nil, err
		}
		return costa.New(strainRate)
	case "kriegerdougherty":
		maxPacking, err := floatParam(v, "relative_viscosity_parameters.max_packing")
		if err != nil {
			return nil, err
		}
		einsteinCoef, err := floatParam(v, "relative_viscosity_parameters.einstein_coef")
		if err != nil {
			return nil, err
		}
		return kriegerdougherty.New(maxPacking, einsteinCoef)
	default:
		return nil, fmt.Errorf("invalid relative viscosity model %q; valid options are "+
			"costa and kriegerdougherty", model)
	}
}

func meltViscosity(v *viper.Viper) (lavaflow.MeltViscosityModel, error) {
	model := strings.ToLower(v.GetString("melt_viscosity_parameters.model"))
	if model != "vft" {
		return nil, fmt.Errorf("invalid melt viscosity model %q; vft is the only valid option", model)
	}
	a, err := floatParam(v, "melt_viscosity_parameters.a")
	if err != nil {
		return nil, err
	}
	b, err := floatParam(v, "melt_viscosity_parameters.b")
	if err != nil {
		return nil, err
	}
	c, err := floatParam(v, "melt_viscosity_parameters.c")
	if err != nil {
		return nil, err
	}
	return vft.New(a, b, c)
}

func crystallizationModel(v *viper.Viper) (lavaflow.CrystallizationModel, error) {
	model := strings.ToLower(v.GetString("crystallization_parameters.model"))
	if model != "linear" {
		return nil, fmt.Errorf("invalid crystallization model %q; linear is the only valid option", model)
	}
	liquidus, err := floatParam(v, "crystallization_parameters.liquidus_temperature")
	if err != nil {
		return nil, err
	}
	solidus, err := floatParam(v, "crystallization_parameters.solidus_temperature")
	if err != nil {
		return nil, err
	}
	phiSolid, err := floatParam(v, "crystallization_parameters.solid_fraction")
	if err != nil {
		return nil, err
	}
	return crystallization.NewLinear(liquidus, solidus, phiSolid)
}

func crustModel(v *viper.Viper) (lavaflow.CrustTemperatureModel, error) {
	model := strings.ToLower(v.GetString("crust_parameters.model"))
	switch model {
	case "constant":
		t, err := floatParam(v, "crust_parameters.temperature")
		if err != nil {
			return nil, err
		}
		return crust.NewConstant(t)
	case "hon":
		return crust.Hon{}, nil
	default:
		return nil, fmt.Errorf("invalid crust temperature model %q; valid options are constant and hon", model)
	}
}

func coverModel(v *viper.Viper) (lavaflow.EffectiveCoverModel, error) {
	model := strings.ToLower(v.GetString("effective_cover_parameters.model"))
	switch model {
	case "constant":
		f, err := floatParam(v, "effective_cover_parameters.fraction")
		if err != nil {
			return nil, err
		}
		return cover.NewConstant(f)
	case "decay":
		initial, err := floatParam(v, "effective_cover_parameters.initial")
		if err != nil {
			return nil, err
		}
		timeScale, err := floatParam(v, "effective_cover_parameters.time_scale")
		if err != nil {
			return nil, err
		}
		return cover.NewDecay(initial, timeScale)
	default:
		return nil, fmt.Errorf("invalid effective cover model %q; valid options are constant and decay", model)
	}
}

func fluxModels(v *viper.Viper, air *material.Air, lava *material.Lava,
	crustModel lavaflow.CrustTemperatureModel, coverModel lavaflow.EffectiveCoverModel,
	log *lavaflow.Diagnostics) ([]lavaflow.FluxModel, error) {

	names := v.GetStringSlice("flux_models")
	if len(names) == 0 {
		return nil, fmt.Errorf("the parameter file must list at least one entry in flux_models")
	}
	var fluxes []lavaflow.FluxModel
	for _, name := range names {
		switch strings.ToLower(name) {
		case "forced_convection":
			f, err := forcedconv.New(air, lava, crustModel, coverModel, log)
			if err != nil {
				return nil, err
			}
			fluxes = append(fluxes, f)
		case "radiation":
			emissivity, err := floatParamDefault(v, "radiation_parameters.emissivity", 0.95)
			if err != nil {
				return nil, err
			}
			f, err := radiative.New(emissivity, air, lava, crustModel, coverModel, log)
			if err != nil {
				return nil, err
			}
			fluxes = append(fluxes, f)
		case "conduction":
			conductivity, err := floatParam(v, "conduction_parameters.conductivity")
			if err != nil {
				return nil, err
			}
			baseTemp, err := floatParam(v, "conduction_parameters.base_temperature")
			if err != nil {
				return nil, err
			}
			basalFraction, err := floatParam(v, "conduction_parameters.basal_fraction")
			if err != nil {
				return nil, err
			}
			f, err := conduction.New(conductivity, baseTemp, basalFraction)
			if err != nil {
				return nil, err
			}
			fluxes = append(fluxes, f)
		case "rainfall":
			rate, err := floatParam(v, "rainfall_parameters.rate")
			if err != nil {
				return nil, err
			}
			f, err := rainfall.New(rate, air)
			if err != nil {
				return nil, err
			}
			fluxes = append(fluxes, f)
		default:
			return nil, fmt.Errorf("invalid flux model %q; valid options are forced_convection, "+
				"radiation, conduction, and rainfall", name)
		}
	}
	return fluxes, nil
}

func terrainCondition(config *ConfigData) (lavaflow.TerrainCondition, error) {
	if config.ProfileFile != "" {
		return terrain.ReadProfile(config.ProfileFile)
	}
	ch := config.Channel
	return terrain.NewConstant(ch.Width, ch.Depth, ch.SlopeDegrees*math.Pi/180., ch.MaxLength)
}

// NewSimulation assembles a complete run from the run configuration and
// its parameter file: terrain, materials, sub-models, heat budget, a
// fresh diagnostics sink, and an initialized flow state. Every call
// returns an independent Simulation, so parameter sweeps can run
// concurrently as long as each Simulation stays on one goroutine.
func NewSimulation(config *ConfigData) (*Simulation, error) {
	v := viper.New()
	v.SetConfigFile(config.ParameterFile)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("there has been an error parsing the parameter file: %v", err)
	}

	terr, err := terrainCondition(config)
	if err != nil {
		return nil, err
	}

	melt, err := meltViscosity(v)
	if err != nil {
		return nil, err
	}
	relative, err := relativeViscosity(v)
	if err != nil {
		return nil, err
	}

	eruptionTemp, err := floatParam(v, "lava_parameters.eruption_temperature")
	if err != nil {
		return nil, err
	}
	denseRockDensity, err := floatParam(v, "lava_parameters.dense_rock_density")
	if err != nil {
		return nil, err
	}
	vesicleFraction, err := floatParamDefault(v, "lava_parameters.vesicle_fraction", 0)
	if err != nil {
		return nil, err
	}
	latentHeat, err := floatParam(v, "lava_parameters.latent_heat")
	if err != nil {
		return nil, err
	}
	lava, err := material.NewLava(material.LavaConfig{
		EruptionTemperature: eruptionTemp,
		DenseRockDensity:    denseRockDensity,
		VesicleFraction:     vesicleFraction,
		LatentHeat:          latentHeat,
	}, melt, relative)
	if err != nil {
		return nil, err
	}

	airTemp, err := floatParam(v, "air_parameters.temperature")
	if err != nil {
		return nil, err
	}
	airDensity, err := floatParam(v, "air_parameters.density")
	if err != nil {
		return nil, err
	}
	airSpecificHeat, err := floatParam(v, "air_parameters.specific_heat")
	if err != nil {
		return nil, err
	}
	windSpeed, err := floatParam(v, "air_parameters.wind_speed")
	if err != nil {
		return nil, err
	}
	frictionCoef, err := floatParam(v, "air_parameters.friction_coefficient")
	if err != nil {
		return nil, err
	}
	air, err := material.NewAir(material.AirConfig{
		Temperature:         airTemp,
		Density:             airDensity,
		SpecificHeat:        airSpecificHeat,
		WindSpeed:           windSpeed,
		FrictionCoefficient: frictionCoef,
	})
	if err != nil {
		return nil, err
	}

	crustM, err := crustModel(v)
	if err != nil {
		return nil, err
	}
	coverM, err := coverModel(v)
	if err != nil {
		return nil, err
	}
	cryst, err := crystallizationModel(v)
	if err != nil {
		return nil, err
	}

	diagnostics := lavaflow.NewDiagnostics()
	fluxes, err := fluxModels(v, air, lava, crustM, coverM, diagnostics)
	if err != nil {
		return nil, err
	}
	budget, err := lavaflow.NewHeatBudget(fluxes...)
	if err != nil {
		return nil, err
	}

	integrator, err := lavaflow.NewIntegrator(config.Dx, lava, terr, budget, cryst, diagnostics)
	if err != nil {
		return nil, err
	}
	if v.IsSet("max_packing_fraction") {
		maxPacking, err := floatParam(v, "max_packing_fraction")
		if err != nil {
			return nil, err
		}
		if !(maxPacking > 0) || maxPacking > 1 {
			return nil, fmt.Errorf("the max_packing_fraction field must be in (0,1] but is %g", maxPacking)
		}
		integrator.MaxPackingFraction = maxPacking
	}

	state := new(lavaflow.FlowState)
	state.Position, err = floatParamDefault(v, "initial_condition.position", 0)
	if err != nil {
		return nil, err
	}
	state.Time, err = floatParamDefault(v, "initial_condition.time", 0)
	if err != nil {
		return nil, err
	}
	if err := integrator.InitializeState(state); err != nil {
		return nil, err
	}

	return &Simulation{
		Integrator:    integrator,
		State:         state,
		Diagnostics:   diagnostics,
		MaxIterations: config.MaxIterations,
	}, nil
}
