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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/podsim-io/podsim/base"
)

func TestPairSet(t *testing.T) {
	s := NewPairSet(10)
	assert.Zero(t, s.Count())
	s.Add(1, 2, 1)
	s.Add(2, 1, 1)
	s.Add(3, 7, 0)
	assert.Equal(t, 3, s.Count())
	assert.Equal(t, 2, s.CountPositive())
	assert.Equal(t, 1, s.CountNegative())
	assert.Equal(t, 10, s.NumPodcasts())
	a, b := s.Pair(2)
	assert.Equal(t, int32(3), a)
	assert.Equal(t, int32(7), b)
	assert.Equal(t, float32(1), s.Label(0))
	assert.Equal(t, float32(0), s.Label(2))
}

func TestPairSet_Check(t *testing.T) {
	s := NewPairSet(4)
	s.Add(0, 3, 1)
	s.Add(3, 0, 0)
	assert.NoError(t, s.Check())

	outOfRange := NewPairSet(4)
	outOfRange.Add(0, 4, 1)
	assert.Error(t, outOfRange.Check())

	negative := NewPairSet(4)
	negative.Add(-1, 2, 1)
	assert.Error(t, negative.Check())

	badLabel := NewPairSet(4)
	badLabel.Add(0, 1, 0.5)
	assert.Error(t, badLabel.Check())
}

func TestPairSet_Split(t *testing.T) {
	// Labels encode their pair so the association survives the shuffle.
	s := NewPairSet(20)
	for i := 0; i < 100; i++ {
		a, b := int32(i%20), int32((i+7)%20)
		var label float32
		if a < b {
			label = 1
		}
		s.Add(a, b, label)
	}
	trainSet, testSet := s.Split(0.25, base.NewRandomGenerator(0))
	assert.Equal(t, 75, trainSet.Count())
	assert.Equal(t, 25, testSet.Count())
	for _, part := range []*PairSet{trainSet, testSet} {
		assert.NoError(t, part.Check())
		for i := 0; i < part.Count(); i++ {
			a, b := part.Pair(i)
			if a < b {
				assert.Equal(t, float32(1), part.Label(i))
			} else {
				assert.Equal(t, float32(0), part.Label(i))
			}
		}
	}
	assert.Equal(t, s.CountPositive(), trainSet.CountPositive()+testSet.CountPositive())
	assert.Equal(t, s.CountNegative(), trainSet.CountNegative()+testSet.CountNegative())

	// The same seed replays the same split.
	train2, test2 := s.Split(0.25, base.NewRandomGenerator(0))
	assert.Equal(t, trainSet, train2)
	assert.Equal(t, testSet, test2)
}

func TestPairSet_SplitSizes(t *testing.T) {
	s := NewPairSet(50)
	for i := 0; i < 8396; i++ {
		s.Add(int32(i%50), int32((i+1)%50), float32(i%2))
	}
	trainSet, testSet := s.Split(0.25, base.NewRandomGenerator(42))
	assert.Equal(t, 6297, trainSet.Count())
	assert.Equal(t, 2099, testSet.Count())
}
