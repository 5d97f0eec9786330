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

package simulate

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/podsim-io/podsim/base"
	"github.com/podsim-io/podsim/common/floats"
)

func TestGenerateRatings(t *testing.T) {
	ratings := GenerateRatings(500, 50, 5, 3, base.NewRandomGenerator(42))
	assert.Len(t, ratings.Preferences, 500)
	assert.Len(t, ratings.Preferences[0], 5)
	assert.Len(t, ratings.Attributes, 50)
	assert.Len(t, ratings.Attributes[0], 5)
	assert.Len(t, ratings.Affinity, 500)
	assert.Len(t, ratings.Affinity[0], 50)
	// affinity is the dot product of the latent vectors
	for _, p := range []int{0, 123, 499} {
		for _, i := range []int{0, 25, 49} {
			assert.InDelta(t, floats.Dot(ratings.Preferences[p], ratings.Attributes[i]),
				ratings.Affinity[p][i], 1e-6)
		}
	}
	// coordinates follow N(0, variance)
	flat := make([]float32, 0, 500*5)
	for _, row := range ratings.Preferences {
		flat = append(flat, row...)
	}
	assert.InDelta(t, 0, floats.Mean(flat), 0.1)
	assert.InDelta(t, math32.Sqrt(3), floats.StdDev(flat), 0.1)
}

func TestGenerateRatings_Deterministic(t *testing.T) {
	a := GenerateRatings(20, 10, 4, 3, base.NewRandomGenerator(7))
	b := GenerateRatings(20, 10, 4, 3, base.NewRandomGenerator(7))
	assert.Equal(t, a, b)
}
