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

// Package vis renders trained embeddings as a two-dimensional scatter plot.
package vis

import (
	"os"
	"path/filepath"

	"github.com/juju/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Project reduces the embedding table to its first two principal components.
// The input matrix is left untouched.
func Project(embeddings [][]float32) ([][2]float64, error) {
	if len(embeddings) < 2 {
		return nil, errors.Errorf("cannot project %d embeddings", len(embeddings))
	}
	dims := len(embeddings[0])
	if dims < 2 {
		return nil, errors.Errorf("cannot project %d-dimensional embeddings", dims)
	}
	data := make([]float64, 0, len(embeddings)*dims)
	for i, row := range embeddings {
		if len(row) != dims {
			return nil, errors.Errorf("embedding %d has %d dimensions, expected %d", i, len(row), dims)
		}
		for _, v := range row {
			data = append(data, float64(v))
		}
	}
	m := mat.NewDense(len(embeddings), dims, data)
	var pc stat.PC
	if ok := pc.PrincipalComponents(m, nil); !ok {
		return nil, errors.New("principal component analysis failed")
	}
	var vec mat.Dense
	pc.VectorsTo(&vec)
	var proj mat.Dense
	proj.Mul(m, vec.Slice(0, dims, 0, 2))
	points := make([][2]float64, len(embeddings))
	for i := range points {
		points[i][0] = proj.At(i, 0)
		points[i][1] = proj.At(i, 1)
	}
	return points, nil
}

// SaveScatter writes the projected points to a PNG file at path.
func SaveScatter(points [][2]float64, path string) error {
	xys := make(plotter.XYs, len(points))
	for i, point := range points {
		xys[i].X = point[0]
		xys[i].Y = point[1]
	}
	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return errors.Trace(err)
	}
	p := plot.New()
	p.Title.Text = "Podcast Embeddings"
	p.X.Label.Text = "PC1"
	p.Y.Label.Text = "PC2"
	p.Add(scatter)
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(p.Save(6*vg.Inch, 6*vg.Inch, path))
}

// PlotEmbeddings projects the embedding table and saves the scatter plot.
func PlotEmbeddings(embeddings [][]float32, path string) error {
	points, err := Project(embeddings)
	if err != nil {
		return errors.Trace(err)
	}
	return SaveScatter(points, path)
}
