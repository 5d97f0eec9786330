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
	"context"
	"fmt"
	"io"
	"time"

	"github.com/chewxy/math32"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"modernc.org/mathutil"

	"github.com/podsim-io/podsim/base/log"
	"github.com/podsim-io/podsim/base/progress"
	"github.com/podsim-io/podsim/common/encoding"
	"github.com/podsim-io/podsim/common/nn"
	"github.com/podsim-io/podsim/dataset"
	"github.com/podsim-io/podsim/model"
)

const headerSimNet = "SimNet"

// SimNet classifies podcast pairs as similar or dissimilar. Both podcasts of
// a pair are looked up in one shared embedding table, the concatenated
// embeddings pass through a single affine layer and the sigmoid of the logit
// is the similarity probability. The trained table is the model's product.
type SimNet struct {
	model.BaseModel
	// hyper parameters
	batchSize  int
	nFactors   int
	nEpochs    int
	lr         float32
	reg        float32
	initMean   float32
	initStdDev float32
	optimizer  string
	// parameters
	numPodcasts int
	table       *nn.Tensor
	weight      *nn.Tensor
	bias        *nn.Tensor
}

func NewSimNet(params model.Params) *SimNet {
	net := new(SimNet)
	net.SetParams(params)
	return net
}

func (net *SimNet) SetParams(params model.Params) {
	net.BaseModel.SetParams(params)
	net.batchSize = net.Params.GetInt(model.BatchSize, 32)
	net.nFactors = net.Params.GetInt(model.NFactors, 16)
	net.nEpochs = net.Params.GetInt(model.NEpochs, 20)
	net.lr = net.Params.GetFloat32(model.Lr, 0.001)
	net.reg = net.Params.GetFloat32(model.Reg, 0)
	net.initMean = net.Params.GetFloat32(model.InitMean, 0)
	net.initStdDev = net.Params.GetFloat32(model.InitStdDev, 0.01)
	net.optimizer = net.Params.GetString(model.Optimizer, model.Adam)
}

func (net *SimNet) Clear() {
	net.numPodcasts = 0
	net.table = nil
	net.weight = nil
	net.bias = nil
}

func (net *SimNet) Invalid() bool {
	return net == nil || net.table == nil
}

// Init allocates the parameter tensors from the model's own seeded generator.
func (net *SimNet) Init(trainSet *dataset.PairSet) {
	net.numPodcasts = trainSet.NumPodcasts()
	rng := net.GetRandomGenerator()
	net.table = nn.NewTensor(
		rng.NormalVector(net.numPodcasts*net.nFactors, net.initMean, net.initStdDev),
		net.numPodcasts, net.nFactors).RequireGrad()
	net.weight = nn.NewTensor(
		rng.NormalVector(2*net.nFactors, net.initMean, net.initStdDev),
		2*net.nFactors, 1).RequireGrad()
	net.bias = nn.Zeros(1).RequireGrad()
}

// Parameters returns the trainable tensors.
func (net *SimNet) Parameters() []*nn.Tensor {
	return []*nn.Tensor{net.table, net.weight, net.bias}
}

// forward computes logits for n pairs. indices is an n x 2 tensor of podcast
// indices, each row gathered twice from the shared table.
func (net *SimNet) forward(indices *nn.Tensor, n int) *nn.Tensor {
	e := nn.Embedding(net.table, indices)
	h := nn.Reshape(e, n, 2*net.nFactors)
	return nn.Flatten(nn.Add(nn.MatMul(h, net.weight), net.bias))
}

// Predict returns the probability that podcasts a and b are similar.
func (net *SimNet) Predict(a, b int32) float32 {
	indices := nn.NewTensor([]float32{float32(a), float32(b)}, 1, 2)
	output := nn.Sigmoid(net.forward(indices, 1))
	return output.Data()[0]
}

// Embeddings returns a row copy of the trained embedding table.
func (net *SimNet) Embeddings() [][]float32 {
	rows := make([][]float32, net.numPodcasts)
	for i := range rows {
		rows[i] = make([]float32, net.nFactors)
		copy(rows[i], net.table.Data()[i*net.nFactors:(i+1)*net.nFactors])
	}
	return rows
}

func checkSplit(trainSet, testSet *dataset.PairSet) error {
	if trainSet.Count() == 0 {
		return errors.New("training set is empty")
	}
	if trainSet.NumPodcasts() != testSet.NumPodcasts() {
		return errors.Errorf("training set catalog size %d does not match test set %d",
			trainSet.NumPodcasts(), testSet.NumPodcasts())
	}
	if err := trainSet.Check(); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(testSet.Check())
}

// Fit trains the model on trainSet and evaluates on testSet. Batches follow
// the stored pair order, so the same random state replays the same run. A NaN
// training loss aborts with an error.
func (net *SimNet) Fit(ctx context.Context, trainSet, testSet *dataset.PairSet, config *FitConfig) (Score, error) {
	config = config.LoadDefaultIfNil()
	log.Logger().Info("fit SimNet",
		zap.Int("train_set_size", trainSet.Count()),
		zap.Int("test_set_size", testSet.Count()),
		zap.Any("params", net.GetParams()),
		zap.Any("config", config))
	if err := checkSplit(trainSet, testSet); err != nil {
		return Score{}, errors.Trace(err)
	}
	net.Init(trainSet)

	evalStart := time.Now()
	score := EvaluateClassification(net, testSet)
	scores := []lo.Tuple2[int, float32]{{A: 0, B: score.AUC}}
	evalTime := time.Since(evalStart)
	fields := append([]zap.Field{zap.String("eval_time", evalTime.String())}, score.ZapFields()...)
	log.Logger().Info(fmt.Sprintf("fit SimNet %v/%v", 0, net.nEpochs), fields...)

	var optimizer nn.Optimizer
	switch net.optimizer {
	case model.SGD:
		optimizer = nn.NewSGD(net.Parameters(), net.lr)
	case model.Adam:
		optimizer = nn.NewAdam(net.Parameters(), net.lr)
	default:
		return Score{}, errors.NotValidf("optimizer %q", net.optimizer)
	}
	optimizer.SetWeightDecay(net.reg)

	_, span := progress.Start(ctx, "SimNet.Fit", net.nEpochs)
	defer span.End()

	for epoch := 1; epoch <= net.nEpochs; epoch++ {
		fitStart := time.Now()
		cost := float32(0)
		correct := 0
		for offset := 0; offset < trainSet.Count(); offset += net.batchSize {
			batchSize := mathutil.Min(net.batchSize, trainSet.Count()-offset)
			indices := make([]float32, batchSize*2)
			labels := make([]float32, batchSize)
			for i := 0; i < batchSize; i++ {
				a, b := trainSet.Pair(offset + i)
				indices[i*2] = float32(a)
				indices[i*2+1] = float32(b)
				labels[i] = trainSet.Label(offset + i)
			}
			x := nn.NewTensor(indices, batchSize, 2)
			y := nn.NewTensor(labels, batchSize)
			output := net.forward(x, batchSize)
			loss := nn.BCEWithLogits(y, output)
			if math32.IsNaN(loss.Data()[0]) || math32.IsInf(loss.Data()[0], 0) {
				err := errors.Errorf("training diverged at epoch %d", epoch)
				log.Logger().Warn("model diverged", zap.Int("epoch", epoch))
				span.Error(err)
				return Score{}, err
			}
			cost += loss.Data()[0] * float32(batchSize)
			for i := 0; i < batchSize; i++ {
				if labels[i] > 0 && output.Data()[i] > 0 {
					correct++
				} else if labels[i] == 0 && output.Data()[i] < 0 {
					correct++
				}
			}
			optimizer.ZeroGrad()
			loss.Backward()
			optimizer.Step()
		}
		fitTime := time.Since(fitStart)
		trainLoss := cost / float32(trainSet.Count())
		trainAccuracy := float32(correct) / float32(trainSet.Count())

		if epoch%config.Verbose == 0 || epoch == net.nEpochs {
			evalStart = time.Now()
			score = EvaluateClassification(net, testSet)
			scores = append(scores, lo.Tuple2[int, float32]{A: epoch, B: score.AUC})
			evalTime = time.Since(evalStart)
			fields = append([]zap.Field{
				zap.String("fit_time", fitTime.String()),
				zap.String("eval_time", evalTime.String()),
				zap.Float32("train_loss", trainLoss),
				zap.Float32("train_accuracy", trainAccuracy),
			}, score.ZapFields()...)
			log.Logger().Info(fmt.Sprintf("fit SimNet %v/%v", epoch, net.nEpochs), fields...)

			if config.Patience > 0 && epoch > config.Patience {
				epochScore := lo.MaxBy(scores, func(a, b lo.Tuple2[int, float32]) bool { return a.B > b.B })
				if epochScore.A <= epoch-config.Patience {
					log.Logger().Info("early stopping",
						zap.Int("best_epoch", epochScore.A),
						zap.Float32("best_auc", epochScore.B),
						zap.Int("patience", config.Patience))
					break
				}
			}
		}
		span.Add(1)
	}

	for _, v := range net.table.Data() {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			err := errors.Errorf("embedding table contains non-finite value %v", v)
			log.Logger().Warn("model diverged", zap.Error(err))
			span.Error(err)
			return Score{}, err
		}
	}
	return score, nil
}

func (net *SimNet) Marshal(w io.Writer) error {
	if err := encoding.WriteGob(w, net.Params); err != nil {
		return errors.Trace(err)
	}
	if err := encoding.WriteGob(w, net.numPodcasts); err != nil {
		return errors.Trace(err)
	}
	for _, t := range net.Parameters() {
		if err := encoding.WriteGob(w, t.Data()); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

func (net *SimNet) Unmarshal(r io.Reader) error {
	if err := encoding.ReadGob(r, &net.Params); err != nil {
		return errors.Trace(err)
	}
	net.SetParams(net.Params)
	if err := encoding.ReadGob(r, &net.numPodcasts); err != nil {
		return errors.Trace(err)
	}
	var table, weight, bias []float32
	if err := encoding.ReadGob(r, &table); err != nil {
		return errors.Trace(err)
	}
	if err := encoding.ReadGob(r, &weight); err != nil {
		return errors.Trace(err)
	}
	if err := encoding.ReadGob(r, &bias); err != nil {
		return errors.Trace(err)
	}
	net.table = nn.NewTensor(table, net.numPodcasts, net.nFactors)
	net.weight = nn.NewTensor(weight, 2*net.nFactors, 1)
	net.bias = nn.NewTensor(bias, 1)
	return nil
}
