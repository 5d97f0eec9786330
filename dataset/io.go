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
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/juju/errors"
	"github.com/schollz/progressbar/v3"
)

// SaveCSV writes the pair set to a CSV file. Each row holds two podcast
// indices and a label.
func (s *PairSet) SaveCSV(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return errors.Trace(err)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Trace(err)
	}
	defer f.Close()
	writer := csv.NewWriter(f)
	for i, pair := range s.pairs {
		row := []string{
			strconv.FormatInt(int64(pair[0]), 10),
			strconv.FormatInt(int64(pair[1]), 10),
			strconv.FormatFloat(float64(s.labels[i]), 'f', -1, 32),
		}
		if err := writer.Write(row); err != nil {
			return errors.Trace(err)
		}
	}
	writer.Flush()
	return errors.Trace(writer.Error())
}

// LoadCSV reads a pair set written by SaveCSV. Rows must have exactly three
// fields, indices must lie in [0, numPodcasts) and labels must be 0 or 1.
func LoadCSV(path string, numPodcasts int) (*PairSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer f.Close()
	stat, err := f.Stat()
	if err != nil {
		return nil, errors.Trace(err)
	}
	pbReader := progressbar.NewReader(f, progressbar.DefaultBytes(stat.Size(), "Load pairs"))
	reader := csv.NewReader(&pbReader)
	reader.FieldsPerRecord = 3
	set := NewPairSet(numPodcasts)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Trace(err)
		}
		a, err := strconv.ParseInt(row[0], 10, 32)
		if err != nil {
			return nil, errors.Trace(err)
		}
		b, err := strconv.ParseInt(row[1], 10, 32)
		if err != nil {
			return nil, errors.Trace(err)
		}
		label, err := strconv.ParseFloat(row[2], 32)
		if err != nil {
			return nil, errors.Trace(err)
		}
		set.Add(int32(a), int32(b), float32(label))
	}
	if err := set.Check(); err != nil {
		return nil, errors.Trace(err)
	}
	return set, nil
}
