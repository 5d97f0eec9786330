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

package main

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/juju/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"github.com/podsim-io/podsim/base/heap"
	"github.com/podsim-io/podsim/base/parallel"
	"github.com/podsim-io/podsim/common/floats"
)

// topNeighbors finds the k most cosine-similar podcasts for every podcast.
// Each row is filled by exactly one worker, so the output does not depend on
// the number of jobs.
func topNeighbors(embeddings [][]float32, k, jobs int) ([][]int32, [][]float32, error) {
	ids := make([][]int32, len(embeddings))
	scores := make([][]float32, len(embeddings))
	if err := parallel.Parallel(len(embeddings), jobs, func(_, i int) error {
		filter := heap.NewTopKFilter(k)
		for j := range embeddings {
			if j != i {
				filter.Push(int32(j), cosine(embeddings[i], embeddings[j]))
			}
		}
		ids[i], scores[i] = filter.PopAll()
		return nil
	}); err != nil {
		return nil, nil, errors.Trace(err)
	}
	return ids, scores, nil
}

func cosine(a, b []float32) float32 {
	norm := floats.Norm(a) * floats.Norm(b)
	if norm == 0 {
		return 0
	}
	return floats.Dot(a, b) / norm
}

// printNeighbors renders the nearest-neighbor report as a console table.
func printNeighbors(w io.Writer, titles []string, embeddings [][]float32, k, jobs int) error {
	ids, scores, err := topNeighbors(embeddings, k, jobs)
	if err != nil {
		return errors.Trace(err)
	}
	table := tablewriter.NewWriter(w)
	table.Header("Podcast", "Rank", "Neighbor", "Similarity")
	for i := range ids {
		for j, id := range ids[i] {
			if err := table.Append([]string{
				lo.Ternary(j == 0, titles[i], ""),
				strconv.Itoa(j + 1),
				titles[id],
				strconv.FormatFloat(float64(scores[i][j]), 'f', 4, 32),
			}); err != nil {
				return errors.Trace(err)
			}
		}
	}
	return errors.Trace(table.Render())
}

// saveEmbeddings writes the embedding table to a CSV file, one podcast per row.
func saveEmbeddings(embeddings [][]float32, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return errors.Trace(err)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Trace(err)
	}
	defer f.Close()
	writer := csv.NewWriter(f)
	for _, embedding := range embeddings {
		row := lo.Map(embedding, func(v float32, _ int) string {
			return strconv.FormatFloat(float64(v), 'f', -1, 32)
		})
		if err := writer.Write(row); err != nil {
			return errors.Trace(err)
		}
	}
	writer.Flush()
	return errors.Trace(writer.Error())
}
