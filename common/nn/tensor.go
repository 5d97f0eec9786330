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

package nn

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/chewxy/math32"
)

type Tensor struct {
	data        []float32
	shape       []int
	grad        *Tensor
	op          op
	requireGrad bool
}

func NewTensor(data []float32, shape ...int) *Tensor {
	n := 1
	for _, s := range shape {
		n *= s
	}
	if len(data) != n {
		panic(fmt.Sprintf("shape %v does not match data length %v", shape, len(data)))
	}
	return &Tensor{
		data:  data,
		shape: shape,
	}
}

func NewScalar(data float32) *Tensor {
	return &Tensor{
		data:  []float32{data},
		shape: []int{},
	}
}

// LinSpace creates a tensor with evenly spaced values within a given interval.
func LinSpace(start, end float32, shape ...int) *Tensor {
	n := 1
	for _, s := range shape {
		n *= s
	}
	data := make([]float32, n)
	delta := (end - start) / float32(n-1)
	for i := range data {
		data[i] = start + delta*float32(i)
	}
	return &Tensor{
		data:  data,
		shape: shape,
	}
}

// Rand creates a tensor filled with uniform random floats in [0,1).
func Rand(shape ...int) *Tensor {
	n := 1
	for _, s := range shape {
		n *= s
	}
	data := make([]float32, n)
	for i := range data {
		data[i] = rand.Float32()
	}
	return &Tensor{
		data:  data,
		shape: shape,
	}
}

// Uniform creates a tensor filled with uniform random floats in [low, high).
func Uniform(low, high float32, shape ...int) *Tensor {
	n := 1
	for _, s := range shape {
		n *= s
	}
	data := make([]float32, n)
	for i := range data {
		data[i] = low + rand.Float32()*(high-low)
	}
	return &Tensor{
		data:  data,
		shape: shape,
	}
}

// Normal creates a tensor filled with normal random floats.
func Normal(mean, std float32, shape ...int) *Tensor {
	n := 1
	for _, s := range shape {
		n *= s
	}
	data := make([]float32, n)
	for i := range data {
		data[i] = float32(rand.NormFloat64())*std + mean
	}
	return &Tensor{
		data:  data,
		shape: shape,
	}
}

// Ones creates a tensor filled with ones.
func Ones(shape ...int) *Tensor {
	n := 1
	for _, s := range shape {
		n *= s
	}
	data := make([]float32, n)
	for i := range data {
		data[i] = 1
	}
	return &Tensor{
		data:  data,
		shape: shape,
	}
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape ...int) *Tensor {
	n := 1
	for _, s := range shape {
		n *= s
	}
	data := make([]float32, n)
	return &Tensor{
		data:  data,
		shape: shape,
	}
}

// RequireGrad marks a leaf tensor as a parameter.
func (t *Tensor) RequireGrad() *Tensor {
	t.requireGrad = true
	return t
}

// NoGrad detaches a tensor from the graph that created it.
func (t *Tensor) NoGrad() *Tensor {
	if t.op != nil {
		t.op = nil
	}
	return t
}

// Data exposes the backing slice of a tensor.
func (t *Tensor) Data() []float32 {
	return t.data
}

// Shape returns the dimensions of a tensor.
func (t *Tensor) Shape() []int {
	return t.shape
}

func (t *Tensor) String() string {
	// Print scalar value
	if len(t.shape) == 0 {
		return fmt.Sprint(t.data[0])
	}

	builder := strings.Builder{}
	builder.WriteString("[")
	if len(t.data) <= 10 {
		for i := 0; i < len(t.data); i++ {
			builder.WriteString(fmt.Sprint(t.data[i]))
			if i != len(t.data)-1 {
				builder.WriteString(", ")
			}
		}
	} else {
		for i := 0; i < 5; i++ {
			builder.WriteString(fmt.Sprint(t.data[i]))
			builder.WriteString(", ")
		}
		builder.WriteString("..., ")
		for i := len(t.data) - 5; i < len(t.data); i++ {
			builder.WriteString(fmt.Sprint(t.data[i]))
			if i != len(t.data)-1 {
				builder.WriteString(", ")
			}
		}
	}
	builder.WriteString("]")
	return builder.String()
}

// Backward propagates gradients to every tensor this tensor was computed
// from. Operators are visited in reverse topological order so a node's
// gradient is complete before it is pushed further; gradients accumulate on
// tensors used more than once.
func (t *Tensor) Backward() {
	t.grad = Ones(t.shape...)
	var ordered []op
	visited := make(map[op]struct{})
	var visit func(o op)
	visit = func(o op) {
		if _, ok := visited[o]; ok {
			return
		}
		visited[o] = struct{}{}
		inputs, _ := o.inputsAndOutput()
		for _, x := range inputs {
			if x.op != nil {
				visit(x.op)
			}
		}
		ordered = append(ordered, o)
	}
	if t.op == nil {
		return
	}
	visit(t.op)
	for i := len(ordered) - 1; i >= 0; i-- {
		o := ordered[i]
		inputs, output := o.inputsAndOutput()
		grads := o.backward(output.grad)
		for j := range grads {
			if grads[j] == nil {
				continue
			}
			if inputs[j].grad == nil {
				inputs[j].grad = grads[j]
			} else {
				inputs[j].grad.add(grads[j])
			}
		}
	}
}

func (t *Tensor) Grad() *Tensor {
	return t.grad
}

func (t *Tensor) clone() *Tensor {
	newData := make([]float32, len(t.data))
	copy(newData, t.data)
	return &Tensor{
		data:  newData,
		shape: t.shape,
	}
}

func (t *Tensor) add(other *Tensor) *Tensor {
	wSize := 1
	for i := range other.shape {
		wSize *= other.shape[i]
	}
	for i := range t.data {
		t.data[i] += other.data[i%wSize]
	}
	return t
}

func (t *Tensor) sub(other *Tensor) *Tensor {
	wSize := 1
	for i := range other.shape {
		wSize *= other.shape[i]
	}
	for i := range t.data {
		t.data[i] -= other.data[i%wSize]
	}
	return t
}

func (t *Tensor) mul(other *Tensor) *Tensor {
	wSize := 1
	for i := range other.shape {
		wSize *= other.shape[i]
	}
	for i := range t.data {
		t.data[i] *= other.data[i%wSize]
	}
	return t
}

func (t *Tensor) div(other *Tensor) *Tensor {
	wSize := 1
	for i := range other.shape {
		wSize *= other.shape[i]
	}
	for i := range t.data {
		t.data[i] /= other.data[i%wSize]
	}
	return t
}

func (t *Tensor) square() *Tensor {
	for i := range t.data {
		t.data[i] = t.data[i] * t.data[i]
	}
	return t
}

func (t *Tensor) pow(other *Tensor) *Tensor {
	wSize := 1
	for i := range other.shape {
		wSize *= other.shape[i]
	}
	for i := range t.data {
		t.data[i] = math32.Pow(t.data[i], other.data[i%wSize])
	}
	return t
}

func (t *Tensor) exp() *Tensor {
	for i := range t.data {
		t.data[i] = math32.Exp(t.data[i])
	}
	return t
}

func (t *Tensor) log() *Tensor {
	for i := range t.data {
		t.data[i] = math32.Log(t.data[i])
	}
	return t
}

func (t *Tensor) sin() *Tensor {
	for i := range t.data {
		t.data[i] = math32.Sin(t.data[i])
	}
	return t
}

func (t *Tensor) cos() *Tensor {
	for i := range t.data {
		t.data[i] = math32.Cos(t.data[i])
	}
	return t
}

func (t *Tensor) tanh() *Tensor {
	for i := range t.data {
		t.data[i] = math32.Tanh(t.data[i])
	}
	return t
}

func (t *Tensor) neg() *Tensor {
	for i := range t.data {
		t.data[i] = -t.data[i]
	}
	return t
}

func (t *Tensor) maximum(other *Tensor) *Tensor {
	wSize := 1
	for i := range other.shape {
		wSize *= other.shape[i]
	}
	for i := range t.data {
		t.data[i] = math32.Max(t.data[i], other.data[i%wSize])
	}
	return t
}

func (t *Tensor) matMul(other *Tensor, transA, transB bool) *Tensor {
	if len(t.shape) != 2 || len(other.shape) != 2 {
		panic("matMul requires 2-D tensors")
	}
	var m, k int
	if transA {
		m, k = t.shape[1], t.shape[0]
	} else {
		m, k = t.shape[0], t.shape[1]
	}
	var k2, n int
	if transB {
		k2, n = other.shape[1], other.shape[0]
	} else {
		k2, n = other.shape[0], other.shape[1]
	}
	if k != k2 {
		panic(fmt.Sprintf("matMul shapes do not match: %v and %v", t.shape, other.shape))
	}
	result := Zeros(m, n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var sum float32
			for p := 0; p < k; p++ {
				var av, bv float32
				if transA {
					av = t.data[p*m+i]
				} else {
					av = t.data[i*k+p]
				}
				if transB {
					bv = other.data[j*k2+p]
				} else {
					bv = other.data[p*n+j]
				}
				sum += av * bv
			}
			result.data[i*n+j] = sum
		}
	}
	return result
}

func (t *Tensor) sum() float32 {
	sum := float32(0)
	for i := range t.data {
		sum += t.data[i]
	}
	return sum
}
