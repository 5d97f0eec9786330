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
	"sort"

	"modernc.org/sortutil"

	"github.com/podsim-io/podsim/common/nn"
	"github.com/podsim-io/podsim/dataset"
)

// EvaluateClassification evaluates the pair classifier on a pair set.
// Predictions are raw logits; the decision threshold is logit 0.
func EvaluateClassification(net *SimNet, testSet *dataset.PairSet) Score {
	if testSet.Count() == 0 {
		return Score{}
	}
	indices := make([]float32, testSet.Count()*2)
	labels := make([]float32, testSet.Count())
	for i := 0; i < testSet.Count(); i++ {
		a, b := testSet.Pair(i)
		indices[i*2] = float32(a)
		indices[i*2+1] = float32(b)
		labels[i] = testSet.Label(i)
	}
	x := nn.NewTensor(indices, testSet.Count(), 2)
	y := nn.NewTensor(labels, testSet.Count())
	output := net.forward(x, testSet.Count())
	loss := nn.BCEWithLogits(y, output)
	var posPrediction, negPrediction []float32
	for i := 0; i < testSet.Count(); i++ {
		if labels[i] > 0 {
			posPrediction = append(posPrediction, output.Data()[i])
		} else {
			negPrediction = append(negPrediction, output.Data()[i])
		}
	}
	return Score{
		Loss:      loss.Data()[0],
		Precision: Precision(posPrediction, negPrediction),
		Recall:    Recall(posPrediction, negPrediction),
		Accuracy:  Accuracy(posPrediction, negPrediction),
		AUC:       AUC(posPrediction, negPrediction),
	}
}

func Precision(posPrediction, negPrediction []float32) float32 {
	var tp, fp float32
	for _, p := range posPrediction {
		if p > 0 { // true positive
			tp++
		}
	}
	for _, p := range negPrediction {
		if p > 0 { // false positive
			fp++
		}
	}
	if tp+fp == 0 {
		return 0
	}
	return tp / (tp + fp)
}

func Recall(posPrediction, _ []float32) float32 {
	var tp, fn float32
	for _, p := range posPrediction {
		if p > 0 { // true positive
			tp++
		} else { // false negative
			fn++
		}
	}
	if tp+fn == 0 {
		return 0
	}
	return tp / (tp + fn)
}

func Accuracy(posPrediction, negPrediction []float32) float32 {
	var correct float32
	for _, p := range posPrediction {
		if p > 0 {
			correct++
		}
	}
	for _, p := range negPrediction {
		if p < 0 {
			correct++
		}
	}
	if len(posPrediction)+len(negPrediction) == 0 {
		return 0
	}
	return correct / float32(len(posPrediction)+len(negPrediction))
}

func AUC(posPrediction, negPrediction []float32) float32 {
	sort.Sort(sortutil.Float32Slice(posPrediction))
	sort.Sort(sortutil.Float32Slice(negPrediction))
	var sum float32
	var nPos int
	for pPos := range posPrediction {
		// find the negative sample with the greatest prediction less than current positive sample
		for nPos < len(negPrediction) && negPrediction[nPos] < posPrediction[pPos] {
			nPos++
		}
		// add the number of negative samples have less prediction than current positive sample
		sum += float32(nPos)
	}
	if len(posPrediction)*len(negPrediction) == 0 {
		return 0
	}
	return sum / float32(len(posPrediction)*len(negPrediction))
}
