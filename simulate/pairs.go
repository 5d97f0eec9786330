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
	"github.com/bits-and-blooms/bitset"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"
	"go.uber.org/zap"

	"github.com/podsim-io/podsim/base"
	"github.com/podsim-io/podsim/base/log"
	"github.com/podsim-io/podsim/dataset"
)

// maxSampleRetries bounds the redraws for a single dissimilar pair request.
const maxSampleRetries = 1000

// SampleStats summarizes pair construction for logging and inspection. The
// distinct count deduplicates similar pairs shared by several people; the raw
// list is what trains the model, so NumSimilar can exceed NumDistinct.
type SampleStats struct {
	NumSimilar       int
	NumDistinct      int
	NumMultiLiked    int
	NumMultiDisliked int
	NumExhausted     int
}

// SamplePairs builds the labeled pair set. Every person with at least two
// likes contributes all ordered permutations of two distinct liked podcasts
// as similar pairs, and likewise for dislikes. An equal number of dissimilar
// pairs is then sampled: each request picks one person uniformly from the
// concatenated multi-like and multi-dislike pools (a person in both pools is
// drawn with double weight) and redraws two distinct podcasts until the pair
// is opposite or neutral for that person, or the retry cap is hit and the
// held pair is accepted with a warning.
func SamplePairs(polarity *Polarity, numPodcasts int, rng base.RandomGenerator) (*dataset.PairSet, SampleStats, error) {
	if numPodcasts < 2 {
		return nil, SampleStats{}, errors.Errorf("cannot sample pairs from %d podcasts", numPodcasts)
	}
	set := dataset.NewPairSet(numPodcasts)
	distinct := mapset.NewSet[[2]int32]()
	var multiLiked, multiDisliked []int
	for p := range polarity.Signs {
		if liked := setBits(polarity.Liked[p]); len(liked) >= 2 {
			multiLiked = append(multiLiked, p)
			appendPermutations(set, distinct, liked)
		}
		if disliked := setBits(polarity.Disliked[p]); len(disliked) >= 2 {
			multiDisliked = append(multiDisliked, p)
			appendPermutations(set, distinct, disliked)
		}
	}
	stats := SampleStats{
		NumSimilar:       set.Count(),
		NumDistinct:      distinct.Cardinality(),
		NumMultiLiked:    len(multiLiked),
		NumMultiDisliked: len(multiDisliked),
	}
	log.Logger().Info("sampled similar pairs",
		zap.Int("num_similar", stats.NumSimilar),
		zap.Int("num_distinct", stats.NumDistinct),
		zap.Int("num_multi_liked", stats.NumMultiLiked),
		zap.Int("num_multi_disliked", stats.NumMultiDisliked))

	pool := append(append([]int{}, multiLiked...), multiDisliked...)
	if len(pool) == 0 {
		return nil, SampleStats{}, errors.New("no person has two likes or two dislikes")
	}
	for k := 0; k < stats.NumSimilar; k++ {
		person := pool[rng.Intn(len(pool))]
		signs := polarity.Signs[person]
		var first, second int32
		accepted := false
		for retry := 0; retry < maxSampleRetries; retry++ {
			sampled := rng.Sample(0, numPodcasts, 2)
			first, second = int32(sampled[0]), int32(sampled[1])
			if signs[first] == 0 || signs[second] == 0 || signs[first] == -signs[second] {
				accepted = true
				break
			}
		}
		if !accepted {
			stats.NumExhausted++
			log.Logger().Warn("dissimilar sampling exhausted retries",
				zap.Int("person", person),
				zap.Int("retries", maxSampleRetries))
		}
		set.Add(first, second, 0)
	}
	return set, stats, nil
}

// appendPermutations emits every ordered pair of two distinct entries with
// label 1 and records each pair in the distinct set.
func appendPermutations(set *dataset.PairSet, distinct mapset.Set[[2]int32], items []int32) {
	for _, i := range items {
		for _, j := range items {
			if i != j {
				set.Add(i, j, 1)
				distinct.Add([2]int32{i, j})
			}
		}
	}
}

// setBits lists the set bits in ascending order.
func setBits(bs *bitset.BitSet) []int32 {
	result := make([]int32, 0, bs.Count())
	for i, ok := bs.NextSet(0); ok; i, ok = bs.NextSet(i + 1) {
		result = append(result, int32(i))
	}
	return result
}
