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
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/podsim-io/podsim/base/log"
	"github.com/podsim-io/podsim/cmd/version"
	"github.com/podsim-io/podsim/config"
	"github.com/podsim-io/podsim/engine"
	"github.com/podsim-io/podsim/vis"
)

var podsimCommand = &cobra.Command{
	Use:   "podsim",
	Short: "Synthetic podcast preference simulation and pairwise embedding trainer.",
	Run: func(cmd *cobra.Command, args []string) {
		// Show version
		if showVersion, _ := cmd.PersistentFlags().GetBool("version"); showVersion {
			fmt.Println(version.BuildInfo())
			return
		}

		// setup logger
		debug, _ := cmd.PersistentFlags().GetBool("debug")
		log.SetLogger(cmd.PersistentFlags(), debug)

		// load config
		var conf *config.Config
		configPath, _ := cmd.PersistentFlags().GetString("config")
		if configPath == "" {
			conf = config.GetDefaultConfig()
		} else {
			log.Logger().Info("load config", zap.String("config", configPath))
			var err error
			conf, err = config.LoadConfig(configPath)
			if err != nil {
				log.Logger().Fatal("failed to load config", zap.Error(err))
			}
		}

		// run experiment
		result, err := engine.NewExperiment(conf).Run(context.Background())
		if err != nil {
			log.Logger().Fatal("failed to run experiment", zap.Error(err))
		}

		// print neighbor report
		if conf.Output.Neighbors > 0 {
			if err := printNeighbors(os.Stdout, result.Titles, result.Embeddings,
				conf.Output.Neighbors, conf.Output.Jobs); err != nil {
				log.Logger().Fatal("failed to print neighbors", zap.Error(err))
			}
		}

		// write artifacts
		if path := conf.Output.PairsPath; path != "" {
			if err := result.Pairs.SaveCSV(path); err != nil {
				log.Logger().Fatal("failed to save pairs", zap.Error(err))
			}
			log.Logger().Info("saved pairs", zap.String("path", path))
		}
		if path := conf.Output.EmbeddingsPath; path != "" {
			if err := saveEmbeddings(result.Embeddings, path); err != nil {
				log.Logger().Fatal("failed to save embeddings", zap.Error(err))
			}
			log.Logger().Info("saved embeddings", zap.String("path", path))
		}
		if path := conf.Output.PlotPath; path != "" {
			if err := vis.PlotEmbeddings(result.Embeddings, path); err != nil {
				log.Logger().Fatal("failed to save plot", zap.Error(err))
			}
			log.Logger().Info("saved plot", zap.String("path", path))
		}
	},
}

func init() {
	log.AddFlags(podsimCommand.PersistentFlags())
	podsimCommand.PersistentFlags().Bool("debug", false, "use debug log mode")
	podsimCommand.PersistentFlags().BoolP("version", "v", false, "podsim version")
	podsimCommand.PersistentFlags().StringP("config", "c", "", "configuration file path")
}

func main() {
	if err := podsimCommand.Execute(); err != nil {
		log.Logger().Fatal("failed to execute", zap.Error(err))
	}
}
