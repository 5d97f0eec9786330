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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/podsim-io/podsim/base"
)

func TestGenerateTitles(t *testing.T) {
	titles := GenerateTitles(9, base.NewRandomGenerator(42))
	assert.Len(t, titles, 9)
	for _, title := range titles {
		assert.NotEmpty(t, title)
	}
	again := GenerateTitles(9, base.NewRandomGenerator(42))
	assert.Equal(t, titles, again)
}
