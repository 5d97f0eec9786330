// Copyright 2025 podsim Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package engine runs the simulation pipeline end to end: synthetic ratings,
// pair sampling, dataset split and embedding training.
package engine

import (
	"context"

	"github.com/juju/errors"
	"go.uber.org/zap"

	"github.com/podsim-io/podsim/base"
	"github.com/podsim-io/podsim/base/log"
	"github.com/podsim-io/podsim/base/progress"
	"github.com/podsim-io/podsim/config"
	"github.com/podsim-io/podsim/dataset"
	"github.com/podsim-io/podsim/model"
	"github.com/podsim-io/podsim/model/sim"
	"github.com/podsim-io/podsim/simulate"
)

// Experiment runs the full simulation pipeline with a single configuration.
type Experiment struct {
	Config *config.Config
}

// NewExperiment creates an experiment from a configuration. A nil
// configuration falls back to the defaults.
func NewExperiment(cfg *config.Config) *Experiment {
	if cfg == nil {
		cfg = config.GetDefaultConfig()
	}
	return &Experiment{Config: cfg}
}

// Result carries every product of a run.
type Result struct {
	Ratings    *simulate.Ratings
	Polarity   *simulate.Polarity
	Titles     []string
	Pairs      *dataset.PairSet
	Stats      simulate.SampleStats
	Train      *dataset.PairSet
	Test       *dataset.PairSet
	Net        *sim.SimNet
	Score      sim.Score
	Embeddings [][]float32
}

// Run executes the pipeline. Every stage draws from one shared random
// generator in a fixed order, so equal configurations yield equal results.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	cfg := e.Config
	if err := cfg.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	newCtx, span := progress.Start(ctx, "Experiment.Run", 4)
	defer span.End()

	// generate synthetic ratings and catalog titles
	rng := base.NewRandomGenerator(cfg.Simulation.RandomSeed)
	result := &Result{}
	result.Ratings = simulate.GenerateRatings(cfg.Simulation.NumPeople, cfg.Simulation.NumPodcasts,
		cfg.Simulation.NumAttributes, cfg.Simulation.Variance, rng)
	result.Titles = simulate.GenerateTitles(cfg.Simulation.NumPodcasts, rng)
	log.Logger().Info("generated synthetic ratings",
		zap.Int("num_people", cfg.Simulation.NumPeople),
		zap.Int("num_podcasts", cfg.Simulation.NumPodcasts),
		zap.Int("num_attributes", cfg.Simulation.NumAttributes))
	span.Add(1)

	// threshold affinity and sample labeled pairs
	result.Polarity = simulate.Threshold(result.Ratings, cfg.Simulation.Threshold)
	pairs, stats, err := simulate.SamplePairs(result.Polarity, cfg.Simulation.NumPodcasts, rng)
	if err != nil {
		span.Error(err)
		return nil, errors.Trace(err)
	}
	result.Pairs = pairs
	result.Stats = stats
	span.Add(1)

	// split into train and test sets
	result.Train, result.Test = pairs.Split(cfg.Training.TestRatio, rng)
	span.Add(1)

	// train the embedding model
	net := sim.NewSimNet(model.Params{
		model.NFactors:    cfg.Training.EmbeddingSize,
		model.NEpochs:     cfg.Training.Epochs,
		model.BatchSize:   cfg.Training.BatchSize,
		model.Lr:          cfg.Training.Lr,
		model.RandomState: cfg.Simulation.RandomSeed,
	})
	fitConfig := sim.NewFitConfig().
		SetVerbose(cfg.Training.Verbose).
		SetJobs(cfg.Output.Jobs)
	score, err := net.Fit(newCtx, result.Train, result.Test, fitConfig)
	if err != nil {
		span.Error(err)
		return nil, errors.Trace(err)
	}
	result.Net = net
	result.Score = score
	result.Embeddings = net.Embeddings()
	span.Add(1)
	log.Logger().Info("experiment complete", score.ZapFields()...)
	return result, nil
}
