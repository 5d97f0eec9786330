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

package dataset

import (
	"github.com/juju/errors"

	"github.com/podsim-io/podsim/base"
)

// PairSet is an ordered list of podcast index pairs with binary labels.
// Similar pairs carry label 1, sampled contrast pairs carry label 0. The
// order of pairs is preserved, duplicates included.
type PairSet struct {
	pairs         [][2]int32
	labels        []float32
	numPodcasts   int
	positiveCount int
	negativeCount int
}

// NewPairSet creates an empty pair set over a catalog of numPodcasts podcasts.
func NewPairSet(numPodcasts int) *PairSet {
	return &PairSet{numPodcasts: numPodcasts}
}

// Add appends a labeled pair.
func (s *PairSet) Add(a, b int32, label float32) {
	s.pairs = append(s.pairs, [2]int32{a, b})
	s.labels = append(s.labels, label)
	if label > 0 {
		s.positiveCount++
	} else {
		s.negativeCount++
	}
}

// Count returns the number of pairs.
func (s *PairSet) Count() int {
	return len(s.pairs)
}

// CountPositive returns the number of pairs with label 1.
func (s *PairSet) CountPositive() int {
	return s.positiveCount
}

// CountNegative returns the number of pairs with label 0.
func (s *PairSet) CountNegative() int {
	return s.negativeCount
}

// NumPodcasts returns the catalog size the pair indices refer to.
func (s *PairSet) NumPodcasts() int {
	return s.numPodcasts
}

// Pair returns the i-th pair.
func (s *PairSet) Pair(i int) (int32, int32) {
	return s.pairs[i][0], s.pairs[i][1]
}

// Label returns the label of the i-th pair.
func (s *PairSet) Label(i int) float32 {
	return s.labels[i]
}

// Check verifies that pairs and labels are aligned, every index lies in
// [0, NumPodcasts()) and every label is 0 or 1.
func (s *PairSet) Check() error {
	if len(s.pairs) != len(s.labels) {
		return errors.Errorf("%d pairs do not match %d labels", len(s.pairs), len(s.labels))
	}
	for i, pair := range s.pairs {
		for _, index := range pair {
			if index < 0 || index >= int32(s.numPodcasts) {
				return errors.Errorf("pair %d: podcast index %d out of range [0, %d)",
					i, index, s.numPodcasts)
			}
		}
		if s.labels[i] != 0 && s.labels[i] != 1 {
			return errors.Errorf("pair %d: label %v is not binary", i, s.labels[i])
		}
	}
	return nil
}

// Split shuffles the pair set and divides it into a training set and a test
// set. The test set receives int(Count()*testRatio) pairs, the training set
// the rest. Each pair keeps its label.
func (s *PairSet) Split(testRatio float32, rng base.RandomGenerator) (*PairSet, *PairSet) {
	testSize := int(float32(s.Count()) * testRatio)
	perm := rng.Perm(s.Count())
	trainSet := NewPairSet(s.numPodcasts)
	testSet := NewPairSet(s.numPodcasts)
	for _, i := range perm[:testSize] {
		testSet.Add(s.pairs[i][0], s.pairs[i][1], s.labels[i])
	}
	for _, i := range perm[testSize:] {
		trainSet.Add(s.pairs[i][0], s.pairs[i][1], s.labels[i])
	}
	return trainSet, testSet
}
