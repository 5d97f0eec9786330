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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	assert.NoError(t, GetDefaultConfig().Validate())

	invalidate := func(mutate func(*Config)) error {
		config := GetDefaultConfig()
		mutate(config)
		return config.Validate()
	}
	assert.Error(t, invalidate(func(c *Config) { c.Simulation.NumPeople = 0 }))
	assert.Error(t, invalidate(func(c *Config) { c.Simulation.NumAttributes = 0 }))
	assert.Error(t, invalidate(func(c *Config) { c.Simulation.Variance = 0 }))
	assert.Error(t, invalidate(func(c *Config) { c.Simulation.Threshold = -0.1 }))
	assert.Error(t, invalidate(func(c *Config) { c.Training.EmbeddingSize = 0 }))
	assert.Error(t, invalidate(func(c *Config) { c.Training.Epochs = 0 }))
	assert.Error(t, invalidate(func(c *Config) { c.Training.BatchSize = 0 }))
	assert.Error(t, invalidate(func(c *Config) { c.Training.Lr = 0 }))
	assert.Error(t, invalidate(func(c *Config) { c.Training.TestRatio = 1 }))
	assert.Error(t, invalidate(func(c *Config) { c.Training.Verbose = 0 }))
	assert.Error(t, invalidate(func(c *Config) { c.Output.Neighbors = -1 }))
	assert.Error(t, invalidate(func(c *Config) { c.Output.Jobs = 0 }))

	err := invalidate(func(c *Config) { c.Simulation.NumPodcasts = 1 })
	assert.ErrorContains(t, err, "NumPodcasts")
}
