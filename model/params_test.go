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

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParams_Copy(t *testing.T) {
	a := Params{
		NFactors:    1,
		Lr:          0.1,
		RandomState: 0,
	}
	b := a.Copy()
	b[NFactors] = 2
	b[Lr] = 0.2
	b[RandomState] = 1
	// Check original parameters
	assert.Equal(t, 1, a.GetInt(NFactors, -1))
	assert.Equal(t, float32(0.1), a.GetFloat32(Lr, -0.1))
	assert.Equal(t, int64(0), a.GetInt64(RandomState, -1))
	// Check copy parameters
	assert.Equal(t, 2, b.GetInt(NFactors, -1))
	assert.Equal(t, float32(0.2), b.GetFloat32(Lr, -0.1))
	assert.Equal(t, int64(1), b.GetInt64(RandomState, -1))
}

func TestParams_GetInt(t *testing.T) {
	p := Params{}
	// Empty case
	assert.Equal(t, -1, p.GetInt(NEpochs, -1))
	// Normal case
	p[NEpochs] = 0
	assert.Equal(t, 0, p.GetInt(NEpochs, -1))
	// Wrong type case
	p[NEpochs] = "hello"
	assert.Equal(t, -1, p.GetInt(NEpochs, -1))
}

func TestParams_GetInt64(t *testing.T) {
	p := Params{}
	// Empty case
	assert.Equal(t, int64(-1), p.GetInt64(RandomState, -1))
	// Normal case
	p[RandomState] = int64(0)
	assert.Equal(t, int64(0), p.GetInt64(RandomState, -1))
	// Int case
	p[RandomState] = 0
	assert.Equal(t, int64(0), p.GetInt64(RandomState, -1))
	// Wrong type case
	p[RandomState] = "hello"
	assert.Equal(t, int64(-1), p.GetInt64(RandomState, -1))
}

func TestParams_GetBool(t *testing.T) {
	p := Params{}
	// Empty case
	assert.True(t, p.GetBool(Optimizer, true))
	// Normal case
	p[Optimizer] = false
	assert.False(t, p.GetBool(Optimizer, true))
	// Wrong type case
	p[Optimizer] = 1
	assert.True(t, p.GetBool(Optimizer, true))
}

func TestParams_GetFloat32(t *testing.T) {
	p := Params{}
	// Empty case
	assert.Equal(t, float32(0.1), p.GetFloat32(Lr, 0.1))
	// Normal case
	p[Lr] = float32(1)
	assert.Equal(t, float32(1), p.GetFloat32(Lr, 0.1))
	// Float64 case
	p[Lr] = 1.0
	assert.Equal(t, float32(1), p.GetFloat32(Lr, 0.1))
	// Int case
	p[Lr] = 1
	assert.Equal(t, float32(1), p.GetFloat32(Lr, 0.1))
	// Wrong type case
	p[Lr] = "hello"
	assert.Equal(t, float32(0.1), p.GetFloat32(Lr, 0.1))
}

func TestParams_GetString(t *testing.T) {
	p := Params{}
	// Empty case
	assert.Equal(t, Adam, p.GetString(Optimizer, Adam))
	// Normal case
	p[Optimizer] = SGD
	assert.Equal(t, SGD, p.GetString(Optimizer, Adam))
	// Wrong type case
	p[Optimizer] = 1
	assert.Equal(t, Adam, p.GetString(Optimizer, Adam))
}

func TestParams_Overwrite(t *testing.T) {
	a := Params{
		NFactors: 10,
		NEpochs:  5,
	}
	b := a.Overwrite(Params{
		NEpochs: 100,
		Lr:      0.1,
	})
	assert.Equal(t, 10, b.GetInt(NFactors, -1))
	assert.Equal(t, 100, b.GetInt(NEpochs, -1))
	assert.Equal(t, float32(0.1), b.GetFloat32(Lr, -1))
	// The receiver keeps its values.
	assert.Equal(t, 5, a.GetInt(NEpochs, -1))
}

func TestBaseModel_SetParams(t *testing.T) {
	a, b := new(BaseModel), new(BaseModel)
	a.SetParams(Params{RandomState: 42})
	b.SetParams(Params{RandomState: 42})
	assert.Equal(t, a.GetParams(), b.GetParams())
	assert.Equal(t,
		a.GetRandomGenerator().NormalVector(8, 0, 1),
		b.GetRandomGenerator().NormalVector(8, 0, 1))
}
