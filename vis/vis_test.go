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

package vis

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject(t *testing.T) {
	// Collinear points vary along a single direction, so the first component
	// carries all the spread and the second is constant.
	embeddings := [][]float32{
		{1, 2, 5},
		{2, 4, 5},
		{3, 6, 5},
		{4, 8, 5},
	}
	points, err := Project(embeddings)
	require.NoError(t, err)
	require.Len(t, points, 4)
	for _, point := range points {
		assert.InDelta(t, points[0][1], point[1], 1e-6)
	}
	step := math.Sqrt(5)
	for i := 1; i < len(points); i++ {
		assert.InDelta(t, step, math.Abs(points[i][0]-points[i-1][0]), 1e-6)
	}
}

func TestProject_Errors(t *testing.T) {
	_, err := Project([][]float32{{1, 2}})
	assert.Error(t, err)
	_, err = Project([][]float32{{1}, {2}})
	assert.Error(t, err)
	_, err = Project([][]float32{{1, 2}, {3, 4, 5}})
	assert.Error(t, err)
}

func TestPlotEmbeddings(t *testing.T) {
	embeddings := [][]float32{
		{0.1, 0.9, -0.3},
		{0.4, -0.2, 0.8},
		{-0.5, 0.3, 0.1},
		{0.7, 0.7, -0.6},
		{-0.2, -0.8, 0.5},
	}
	path := filepath.Join(t.TempDir(), "embeddings.png")
	require.NoError(t, PlotEmbeddings(embeddings, path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
