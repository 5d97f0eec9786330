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

package sim

import (
	"fmt"
	"io"
	"reflect"

	"github.com/juju/errors"
	"go.uber.org/zap"

	"github.com/podsim-io/podsim/common/encoding"
)

// Score records the evaluation of a pair classifier on a held-out pair set.
type Score struct {
	Loss      float32
	Accuracy  float32
	Precision float32
	Recall    float32
	AUC       float32
}

func (score Score) ZapFields() []zap.Field {
	return []zap.Field{
		zap.Float32("Loss", score.Loss),
		zap.Float32("Accuracy", score.Accuracy),
		zap.Float32("Precision", score.Precision),
		zap.Float32("Recall", score.Recall),
		zap.Float32("AUC", score.AUC),
	}
}

func (score Score) GetValue() float32 {
	return score.Accuracy
}

func (score Score) BetterThan(s Score) bool {
	return score.AUC > s.AUC
}

type FitConfig struct {
	Jobs     int
	Verbose  int
	Patience int
}

// NewFitConfig creates a default fit config. Patience 0 disables early
// stopping so training always runs the configured number of epochs.
func NewFitConfig() *FitConfig {
	return &FitConfig{
		Jobs:     1,
		Verbose:  1,
		Patience: 0,
	}
}

func (config *FitConfig) SetVerbose(verbose int) *FitConfig {
	config.Verbose = verbose
	return config
}

func (config *FitConfig) SetJobs(jobs int) *FitConfig {
	config.Jobs = jobs
	return config
}

func (config *FitConfig) SetPatience(patience int) *FitConfig {
	config.Patience = patience
	return config
}

func (config *FitConfig) LoadDefaultIfNil() *FitConfig {
	if config == nil {
		return NewFitConfig()
	}
	return config
}

// MarshalModel writes a pair classifier with a type header.
func MarshalModel(w io.Writer, m *SimNet) error {
	if m == nil {
		return fmt.Errorf("unknown model: %v", reflect.TypeOf(m))
	}
	if err := encoding.WriteString(w, headerSimNet); err != nil {
		return errors.Trace(err)
	}
	return m.Marshal(w)
}

// UnmarshalModel reads a pair classifier written by MarshalModel.
func UnmarshalModel(r io.Reader) (*SimNet, error) {
	header, err := encoding.ReadString(r)
	if err != nil {
		return nil, errors.Trace(err)
	}
	switch header {
	case headerSimNet:
		var net SimNet
		if err := net.Unmarshal(r); err != nil {
			return nil, errors.Trace(err)
		}
		return &net, nil
	}
	return nil, fmt.Errorf("unknown model: %v", header)
}
