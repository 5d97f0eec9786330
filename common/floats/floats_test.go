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

package floats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatZero(t *testing.T) {
	a := [][]float32{
		{3, 2, 5, 6, 0, 0},
		{1, 2, 3, 4, 5, 6},
	}
	MatZero(a)
	assert.Equal(t, [][]float32{
		{0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0},
	}, a)
}

func TestZero(t *testing.T) {
	a := []float32{3, 2, 5, 6, 0, 0}
	Zero(a)
	assert.Equal(t, []float32{0, 0, 0, 0, 0, 0}, a)
}

func TestAddTo(t *testing.T) {
	a := []float32{1, 2, 3, 4}
	b := []float32{5, 6, 7, 8}
	c := make([]float32, 4)
	AddTo(a, b, c)
	assert.Equal(t, []float32{6, 8, 10, 12}, c)
	assert.Panics(t, func() { AddTo([]float32{1}, nil, nil) })
}

func TestSubTo(t *testing.T) {
	a := []float32{1, 2, 3, 4}
	b := []float32{5, 6, 7, 8}
	c := make([]float32, 4)
	SubTo(a, b, c)
	assert.Equal(t, []float32{-4, -4, -4, -4}, c)
	assert.Panics(t, func() { SubTo([]float32{1}, nil, nil) })
}

func TestMulConst(t *testing.T) {
	a := []float32{1, 2, 3, 4}
	MulConst(a, 2)
	assert.Equal(t, []float32{2, 4, 6, 8}, a)
}

func TestMulConstTo(t *testing.T) {
	a := []float32{1, 2, 3, 4}
	c := make([]float32, 4)
	MulConstTo(a, 2, c)
	assert.Equal(t, []float32{2, 4, 6, 8}, c)
	assert.Panics(t, func() { MulConstTo([]float32{1}, 2, nil) })
}

func TestMulConstAdd(t *testing.T) {
	a := []float32{1, 2, 3, 4}
	c := []float32{1, 1, 1, 1}
	MulConstAdd(a, 2, c)
	assert.Equal(t, []float32{3, 5, 7, 9}, c)
	assert.Panics(t, func() { MulConstAdd([]float32{1}, 2, nil) })
}

func TestDot(t *testing.T) {
	a := []float32{1, 2, 3, 4}
	b := []float32{5, 6, 7, 8}
	assert.Equal(t, float32(70), Dot(a, b))
	assert.Panics(t, func() { Dot([]float32{1}, nil) })
}

func TestNorm(t *testing.T) {
	assert.Equal(t, float32(5), Norm([]float32{3, 4}))
	assert.Zero(t, Norm([]float32{0, 0, 0}))
}

func TestMean(t *testing.T) {
	assert.Equal(t, float32(2.5), Mean([]float32{1, 2, 3, 4}))
}

func TestStdDev(t *testing.T) {
	assert.InDelta(t, 1.290994, StdDev([]float32{1, 2, 3, 4}), 1e-5)
}
