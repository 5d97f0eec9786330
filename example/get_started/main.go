package main

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/podsim-io/podsim/base"
	"github.com/podsim-io/podsim/model"
	"github.com/podsim-io/podsim/model/sim"
	"github.com/podsim-io/podsim/simulate"
)

func main() {
	// Generate synthetic ratings
	rng := base.NewRandomGenerator(42)
	ratings := simulate.GenerateRatings(500, 50, 5, 3, rng)
	// Threshold affinity and sample labeled pairs
	polarity := simulate.Threshold(ratings, 0.17)
	pairs, _ := lo.Must2(simulate.SamplePairs(polarity, 50, rng))
	// Split dataset
	train, test := pairs.Split(0.25, rng)
	// Create model
	net := sim.NewSimNet(model.Params{
		model.NFactors:    16,
		model.NEpochs:     20,
		model.BatchSize:   32,
		model.Lr:          0.001,
		model.RandomState: 42,
	})
	// Fit model
	score := lo.Must(net.Fit(context.Background(), train, test, sim.NewFitConfig()))
	// Evaluate model
	fmt.Printf("Accuracy = %.5f\n", score.Accuracy)
	fmt.Printf("Precision = %.5f\n", score.Precision)
	fmt.Printf("Recall = %.5f\n", score.Recall)
	fmt.Printf("AUC = %.5f\n", score.AUC)
	// Predict a pair
	fmt.Printf("Predict(4,8) = %.5f\n", net.Predict(4, 8))
}
