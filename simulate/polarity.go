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

	"github.com/podsim-io/podsim/common/floats"
)

// Polarity holds per-person like and dislike signals. Liked and Disliked are
// indexed by person, one bit per podcast. Signs merges both into -1/0/+1.
type Polarity struct {
	Liked    []*bitset.BitSet
	Disliked []*bitset.BitSet
	Signs    [][]int8
}

// NormalizeAffinity scales each person's affinity row to unit L2 norm. Rows
// with zero norm carry no signal and stay all-zero.
func NormalizeAffinity(affinity [][]float32) [][]float32 {
	normalized := make([][]float32, len(affinity))
	for p, row := range affinity {
		normalized[p] = make([]float32, len(row))
		if norm := floats.Norm(row); norm > 0 {
			floats.MulConstTo(row, 1/norm, normalized[p])
		}
	}
	return normalized
}

// ThresholdAffinity turns normalized affinity into polarity signals. A
// podcast is liked above threshold and disliked below its negation.
func ThresholdAffinity(normalized [][]float32, threshold float32) *Polarity {
	polarity := &Polarity{
		Liked:    make([]*bitset.BitSet, len(normalized)),
		Disliked: make([]*bitset.BitSet, len(normalized)),
		Signs:    make([][]int8, len(normalized)),
	}
	for p, row := range normalized {
		liked := bitset.New(uint(len(row)))
		disliked := bitset.New(uint(len(row)))
		signs := make([]int8, len(row))
		for i, value := range row {
			if value > threshold {
				liked.Set(uint(i))
				signs[i] = 1
			} else if value < -threshold {
				disliked.Set(uint(i))
				signs[i] = -1
			}
		}
		polarity.Liked[p] = liked
		polarity.Disliked[p] = disliked
		polarity.Signs[p] = signs
	}
	return polarity
}

// Threshold derives polarity signals straight from raw affinity.
func Threshold(ratings *Ratings, threshold float32) *Polarity {
	return ThresholdAffinity(NormalizeAffinity(ratings.Affinity), threshold)
}
