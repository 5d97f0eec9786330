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

package heap

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"modernc.org/sortutil"
)

func TestPriorityQueue(t *testing.T) {
	pq := NewPriorityQueue(false)
	elements := []int32{5, 3, 7, 8, 6, 2, 9}
	for _, e := range elements {
		pq.Push(e, float32(e))
	}
	// duplicates are ignored
	pq.Push(5, 5)
	assert.Equal(t, len(elements), pq.Len())
	assert.ElementsMatch(t, elements, pq.Values())
	assert.Equal(t, len(elements), len(pq.Elems()))

	// test peek pop
	sort.Sort(sortutil.Int32Slice(elements))
	for _, e := range elements {
		value, weight := pq.Peek()
		assert.Equal(t, e, value)
		assert.Equal(t, e, int32(weight))
		value, weight = pq.Pop()
		assert.Equal(t, e, value)
		assert.Equal(t, e, int32(weight))
	}
}

func TestPriorityQueueNaN(t *testing.T) {
	pq := NewPriorityQueue(true)
	assert.Panics(t, func() {
		pq.Push(1, float32(math.NaN()))
	})
}

func TestTopKFilter(t *testing.T) {
	filter := NewTopKFilter(3)
	for i := int32(0); i < 10; i++ {
		filter.Push(i, float32(i))
	}
	values, weights := filter.PopAll()
	assert.Equal(t, []int32{9, 8, 7}, values)
	assert.Equal(t, []float32{9, 8, 7}, weights)
}

func TestTopKFilterFewerThanK(t *testing.T) {
	filter := NewTopKFilter(5)
	filter.Push(1, 0.5)
	filter.Push(2, 1.5)
	values, weights := filter.PopAll()
	assert.Equal(t, []int32{2, 1}, values)
	assert.Equal(t, []float32{1.5, 0.5}, weights)
}
