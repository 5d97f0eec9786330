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

package simulate

import (
	"fmt"
	"strings"

	"github.com/jaswdr/faker"

	"github.com/podsim-io/podsim/base"
)

// GenerateTitles draws a fake show title per podcast. Titles are presentation
// only and never feed back into the numeric simulation, but they consume the
// shared generator so runs with the same seed print the same catalog.
func GenerateTitles(numPodcasts int, rng base.RandomGenerator) []string {
	f := faker.NewWithSeed(rng)
	titles := make([]string, numPodcasts)
	for i := range titles {
		switch i % 3 {
		case 0:
			titles[i] = fmt.Sprintf("The %s Show", capitalize(f.Lorem().Word()))
		case 1:
			titles[i] = fmt.Sprintf("%s Podcast", f.Company().Name())
		default:
			titles[i] = fmt.Sprintf("Conversations with %s", f.Person().Name())
		}
	}
	return titles
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
