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

// Package simulate generates synthetic podcast preference data: latent
// vectors, thresholded like and dislike signals, and the labeled pair sets
// the embedding model trains on.
package simulate

import (
	"github.com/chewxy/math32"

	"github.com/podsim-io/podsim/base"
	"github.com/podsim-io/podsim/common/floats"
)

// Ratings holds the latent vectors of people and podcasts and the affinity
// between every combination of the two.
type Ratings struct {
	Preferences [][]float32 // numPeople x numAttributes
	Attributes  [][]float32 // numPodcasts x numAttributes
	Affinity    [][]float32 // numPeople x numPodcasts
}

// GenerateRatings draws latent vectors and scores every person-podcast
// combination by dot product. Each coordinate is normal with mean 0 and the
// given per-dimension variance. Preferences are drawn before attributes so
// the generator state is consumed in a fixed order.
func GenerateRatings(numPeople, numPodcasts, numAttributes int, variance float32, rng base.RandomGenerator) *Ratings {
	stdDev := math32.Sqrt(variance)
	preferences := rng.NormalMatrix(numPeople, numAttributes, 0, stdDev)
	attributes := rng.NormalMatrix(numPodcasts, numAttributes, 0, stdDev)
	affinity := base.NewMatrix32(numPeople, numPodcasts)
	for p := range preferences {
		for i := range attributes {
			affinity[p][i] = floats.Dot(preferences[p], attributes[i])
		}
	}
	return &Ratings{
		Preferences: preferences,
		Attributes:  attributes,
		Affinity:    affinity,
	}
}
