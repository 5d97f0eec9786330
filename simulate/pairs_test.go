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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podsim-io/podsim/base"
)

func TestSamplePairs_Similar(t *testing.T) {
	// Person 0 likes three podcasts, person 1 has a single dislike and
	// contributes nothing, person 2 dislikes two podcasts.
	polarity := ThresholdAffinity([][]float32{
		{0.5, 0.5, 0.5, 0},
		{-0.5, 0, 0, 0},
		{0, -0.5, 0, -0.5},
	}, 0.17)
	set, stats, err := SamplePairs(polarity, 4, base.NewRandomGenerator(0))
	require.NoError(t, err)
	assert.Equal(t, 8, stats.NumSimilar)
	assert.Equal(t, 8, stats.NumDistinct)
	assert.Equal(t, 1, stats.NumMultiLiked)
	assert.Equal(t, 1, stats.NumMultiDisliked)
	assert.Equal(t, 16, set.Count())
	assert.Equal(t, set.CountPositive(), set.CountNegative())

	expected := [][2]int32{{0, 1}, {0, 2}, {1, 0}, {1, 2}, {2, 0}, {2, 1}, {1, 3}, {3, 1}}
	for i, want := range expected {
		a, b := set.Pair(i)
		assert.Equal(t, want[0], a)
		assert.Equal(t, want[1], b)
		assert.Equal(t, float32(1), set.Label(i))
	}
	for i := stats.NumSimilar; i < set.Count(); i++ {
		a, b := set.Pair(i)
		assert.NotEqual(t, a, b)
		assert.GreaterOrEqual(t, a, int32(0))
		assert.Less(t, a, int32(4))
		assert.GreaterOrEqual(t, b, int32(0))
		assert.Less(t, b, int32(4))
		assert.Equal(t, float32(0), set.Label(i))
	}
	assert.NoError(t, set.Check())
}

func TestSamplePairs_DuplicatesCounted(t *testing.T) {
	// Two people like the same two podcasts, so every similar pair shows up
	// twice in the raw list but once in the distinct count.
	polarity := ThresholdAffinity([][]float32{
		{0.5, 0.5},
		{0.5, 0.5},
	}, 0.17)
	set, stats, err := SamplePairs(polarity, 2, base.NewRandomGenerator(0))
	require.NoError(t, err)
	assert.Equal(t, 4, stats.NumSimilar)
	assert.Equal(t, 2, stats.NumDistinct)
	assert.Greater(t, stats.NumSimilar, stats.NumDistinct)
	assert.Equal(t, 8, set.Count())
	// Both people like everything, so no dissimilar draw can ever pass the
	// acceptance test and every request exhausts its retries.
	assert.Equal(t, 4, stats.NumExhausted)
}

func TestSamplePairs_Acceptance(t *testing.T) {
	// One qualifying person with likes, a dislike and neutral podcasts.
	polarity := ThresholdAffinity([][]float32{
		{0.5, 0.5, 0, -0.5, 0},
	}, 0.17)
	set, stats, err := SamplePairs(polarity, 5, base.NewRandomGenerator(42))
	require.NoError(t, err)
	assert.Equal(t, 2, stats.NumSimilar)
	assert.Zero(t, stats.NumExhausted)
	signs := polarity.Signs[0]
	for i := stats.NumSimilar; i < set.Count(); i++ {
		a, b := set.Pair(i)
		assert.True(t, signs[a] == 0 || signs[b] == 0 || signs[a] == -signs[b])
	}
}

func TestSamplePairs_Errors(t *testing.T) {
	polarity := ThresholdAffinity([][]float32{{0.5}}, 0.17)
	_, _, err := SamplePairs(polarity, 1, base.NewRandomGenerator(0))
	assert.Error(t, err)

	// nobody has two likes or two dislikes
	neutral := ThresholdAffinity([][]float32{
		{0, 0, 0},
		{0.5, -0.5, 0},
	}, 0.17)
	_, _, err = SamplePairs(neutral, 3, base.NewRandomGenerator(0))
	assert.Error(t, err)
}

func TestSamplePairs_Deterministic(t *testing.T) {
	ratings := GenerateRatings(50, 20, 5, 3, base.NewRandomGenerator(6))
	polarity := Threshold(ratings, 0.17)
	a, statsA, err := SamplePairs(polarity, 20, base.NewRandomGenerator(9))
	require.NoError(t, err)
	b, statsB, err := SamplePairs(polarity, 20, base.NewRandomGenerator(9))
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, statsA, statsB)
	assert.Equal(t, a.CountPositive(), a.CountNegative())
	assert.NoError(t, a.Check())
}
