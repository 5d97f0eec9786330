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

package config

import (
	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/juju/errors"
	"github.com/spf13/viper"
)

// Config is the configuration for a simulation run.
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Training   TrainingConfig   `mapstructure:"training"`
	Output     OutputConfig     `mapstructure:"output"`
}

// SimulationConfig controls the synthetic rating generator and pair sampler.
type SimulationConfig struct {
	NumPeople     int     `mapstructure:"num_people" validate:"gt=0"`
	NumPodcasts   int     `mapstructure:"num_podcasts" validate:"gte=2"`
	NumAttributes int     `mapstructure:"num_attributes" validate:"gt=0"`
	Variance      float32 `mapstructure:"variance" validate:"gt=0"`
	Threshold     float32 `mapstructure:"threshold" validate:"gte=0"`
	RandomSeed    int64   `mapstructure:"random_seed"`
}

// TrainingConfig holds the embedding model hyperparameters.
type TrainingConfig struct {
	EmbeddingSize int     `mapstructure:"embedding_size" validate:"gt=0"`
	Epochs        int     `mapstructure:"epochs" validate:"gte=1"`
	BatchSize     int     `mapstructure:"batch_size" validate:"gte=1"`
	Lr            float32 `mapstructure:"lr" validate:"gt=0"`
	TestRatio     float32 `mapstructure:"test_ratio" validate:"gt=0,lt=1"`
	Verbose       int     `mapstructure:"verbose" validate:"gte=1"`
}

// OutputConfig selects the report size and optional artifacts. Empty paths
// disable the corresponding artifact.
type OutputConfig struct {
	Neighbors      int    `mapstructure:"neighbors" validate:"gte=0"`
	Jobs           int    `mapstructure:"jobs" validate:"gte=1"`
	PairsPath      string `mapstructure:"pairs_path"`
	EmbeddingsPath string `mapstructure:"embeddings_path"`
	PlotPath       string `mapstructure:"plot_path"`
}

// GetDefaultConfig returns the default configuration.
func GetDefaultConfig() *Config {
	return &Config{
		Simulation: SimulationConfig{
			NumPeople:     500,
			NumPodcasts:   50,
			NumAttributes: 5,
			Variance:      3,
			Threshold:     0.17,
			RandomSeed:    42,
		},
		Training: TrainingConfig{
			EmbeddingSize: 16,
			Epochs:        20,
			BatchSize:     32,
			Lr:            0.001,
			TestRatio:     0.25,
			Verbose:       1,
		},
		Output: OutputConfig{
			Neighbors: 5,
			Jobs:      1,
		},
	}
}

func setDefault() {
	defaultConfig := GetDefaultConfig()
	// [simulation]
	viper.SetDefault("simulation.num_people", defaultConfig.Simulation.NumPeople)
	viper.SetDefault("simulation.num_podcasts", defaultConfig.Simulation.NumPodcasts)
	viper.SetDefault("simulation.num_attributes", defaultConfig.Simulation.NumAttributes)
	viper.SetDefault("simulation.variance", defaultConfig.Simulation.Variance)
	viper.SetDefault("simulation.threshold", defaultConfig.Simulation.Threshold)
	viper.SetDefault("simulation.random_seed", defaultConfig.Simulation.RandomSeed)
	// [training]
	viper.SetDefault("training.embedding_size", defaultConfig.Training.EmbeddingSize)
	viper.SetDefault("training.epochs", defaultConfig.Training.Epochs)
	viper.SetDefault("training.batch_size", defaultConfig.Training.BatchSize)
	viper.SetDefault("training.lr", defaultConfig.Training.Lr)
	viper.SetDefault("training.test_ratio", defaultConfig.Training.TestRatio)
	viper.SetDefault("training.verbose", defaultConfig.Training.Verbose)
	// [output]
	viper.SetDefault("output.neighbors", defaultConfig.Output.Neighbors)
	viper.SetDefault("output.jobs", defaultConfig.Output.Jobs)
	viper.SetDefault("output.pairs_path", defaultConfig.Output.PairsPath)
	viper.SetDefault("output.embeddings_path", defaultConfig.Output.EmbeddingsPath)
	viper.SetDefault("output.plot_path", defaultConfig.Output.PlotPath)
}

// LoadConfig loads and validates configuration from a TOML file. Environment
// variables take precedence over values read from the file.
func LoadConfig(path string) (*Config, error) {
	setDefault()

	// bind environment variables
	type environment struct {
		key string
		env string
	}
	bindings := []environment{
		{"simulation.num_people", "PODSIM_NUM_PEOPLE"},
		{"simulation.num_podcasts", "PODSIM_NUM_PODCASTS"},
		{"simulation.num_attributes", "PODSIM_NUM_ATTRIBUTES"},
		{"simulation.variance", "PODSIM_VARIANCE"},
		{"simulation.threshold", "PODSIM_THRESHOLD"},
		{"simulation.random_seed", "PODSIM_RANDOM_SEED"},
		{"training.embedding_size", "PODSIM_EMBEDDING_SIZE"},
		{"training.epochs", "PODSIM_EPOCHS"},
		{"training.batch_size", "PODSIM_BATCH_SIZE"},
		{"training.lr", "PODSIM_LR"},
		{"training.test_ratio", "PODSIM_TEST_RATIO"},
		{"training.verbose", "PODSIM_VERBOSE"},
		{"output.neighbors", "PODSIM_NEIGHBORS"},
		{"output.jobs", "PODSIM_JOBS"},
		{"output.pairs_path", "PODSIM_PAIRS_PATH"},
		{"output.embeddings_path", "PODSIM_EMBEDDINGS_PATH"},
		{"output.plot_path", "PODSIM_PLOT_PATH"},
	}
	for _, binding := range bindings {
		if err := viper.BindEnv(binding.key, binding.env); err != nil {
			return nil, errors.Trace(err)
		}
	}

	// load config file
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return nil, errors.Trace(err)
	}
	var conf Config
	if err := viper.Unmarshal(&conf, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(",")))); err != nil {
		return nil, errors.Trace(err)
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &conf, nil
}
