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

	"github.com/chewxy/math32"
)

type op interface {
	String() string
	forward(inputs ...*Tensor) *Tensor
	backward(dy *Tensor) []*Tensor
	inputsAndOutput() ([]*Tensor, *Tensor)
	setInputs(inputs ...*Tensor)
	setOutput(y *Tensor)
}

type base struct {
	inputs []*Tensor
	output *Tensor
}

func (b *base) inputsAndOutput() ([]*Tensor, *Tensor) {
	return b.inputs, b.output
}

func (b *base) setInputs(inputs ...*Tensor) {
	b.inputs = inputs
}

func (b *base) setOutput(y *Tensor) {
	b.output = y
}

func apply[T op](f T, inputs ...*Tensor) *Tensor {
	y := f.forward(inputs...)
	f.setInputs(inputs...)
	f.setOutput(y)
	y.op = f
	return y
}

type add struct {
	base
}

func (a *add) String() string {
	return "Add"
}

func (a *add) forward(inputs ...*Tensor) *Tensor {
	return inputs[0].clone().add(inputs[1])
}

func (a *add) backward(dy *Tensor) []*Tensor {
	gx0 := dy.clone()
	gx1 := Zeros(a.inputs[1].shape...)
	wSize := len(gx1.data)
	for i := range dy.data {
		gx1.data[i%wSize] += dy.data[i]
	}
	return []*Tensor{gx0, gx1}
}

type sub struct {
	base
}

func (s *sub) String() string {
	return "Sub"
}

func (s *sub) forward(inputs ...*Tensor) *Tensor {
	return inputs[0].clone().sub(inputs[1])
}

func (s *sub) backward(dy *Tensor) []*Tensor {
	gx0 := dy.clone()
	gx1 := Zeros(s.inputs[1].shape...)
	wSize := len(gx1.data)
	for i := range dy.data {
		gx1.data[i%wSize] -= dy.data[i]
	}
	return []*Tensor{gx0, gx1}
}

type mul struct {
	base
}

func (m *mul) String() string {
	return "Mul"
}

func (m *mul) forward(inputs ...*Tensor) *Tensor {
	return inputs[0].clone().mul(inputs[1])
}

func (m *mul) backward(dy *Tensor) []*Tensor {
	gx0 := dy.clone()
	gx1 := Zeros(m.inputs[1].shape...)
	wSize := len(gx1.data)
	for i := range dy.data {
		gx0.data[i] *= m.inputs[1].data[i%wSize]
		gx1.data[i%wSize] += dy.data[i] * m.inputs[0].data[i]
	}
	return []*Tensor{gx0, gx1}
}

type div struct {
	base
}

func (d *div) String() string {
	return "Div"
}

func (d *div) forward(inputs ...*Tensor) *Tensor {
	return inputs[0].clone().div(inputs[1])
}

func (d *div) backward(dy *Tensor) []*Tensor {
	gx0 := dy.clone()
	gx1 := Zeros(d.inputs[1].shape...)
	wSize := len(gx1.data)
	for i := range dy.data {
		w := d.inputs[1].data[i%wSize]
		gx0.data[i] /= w
		gx1.data[i%wSize] -= dy.data[i] * d.inputs[0].data[i] / (w * w)
	}
	return []*Tensor{gx0, gx1}
}

type square struct {
	base
}

func (s *square) String() string {
	return "Square"
}

func (s *square) forward(inputs ...*Tensor) *Tensor {
	return inputs[0].clone().square()
}

func (s *square) backward(dy *Tensor) []*Tensor {
	gx := dy.clone()
	for i := range gx.data {
		gx.data[i] *= 2 * s.inputs[0].data[i]
	}
	return []*Tensor{gx}
}

type pow struct {
	base
}

func (p *pow) String() string {
	return "Pow"
}

func (p *pow) forward(inputs ...*Tensor) *Tensor {
	return inputs[0].clone().pow(inputs[1])
}

func (p *pow) backward(dy *Tensor) []*Tensor {
	gx0 := dy.clone()
	gx1 := Zeros(p.inputs[1].shape...)
	wSize := len(gx1.data)
	for i := range dy.data {
		x := p.inputs[0].data[i]
		n := p.inputs[1].data[i%wSize]
		gx0.data[i] *= n * math32.Pow(x, n-1)
		gx1.data[i%wSize] += dy.data[i] * p.output.data[i] * math32.Log(x)
	}
	return []*Tensor{gx0, gx1}
}

type exp struct {
	base
}

func (e *exp) String() string {
	return "Exp"
}

func (e *exp) forward(inputs ...*Tensor) *Tensor {
	return inputs[0].clone().exp()
}

func (e *exp) backward(dy *Tensor) []*Tensor {
	gx := dy.clone()
	gx.mul(e.output)
	return []*Tensor{gx}
}

type log struct {
	base
}

func (l *log) String() string {
	return "Log"
}

func (l *log) forward(inputs ...*Tensor) *Tensor {
	return inputs[0].clone().log()
}

func (l *log) backward(dy *Tensor) []*Tensor {
	gx := dy.clone()
	gx.div(l.inputs[0])
	return []*Tensor{gx}
}

type sin struct {
	base
}

func (s *sin) String() string {
	return "Sin"
}

func (s *sin) forward(inputs ...*Tensor) *Tensor {
	return inputs[0].clone().sin()
}

func (s *sin) backward(dy *Tensor) []*Tensor {
	gx := s.inputs[0].clone()
	gx.cos()
	gx.mul(dy)
	return []*Tensor{gx}
}

type cos struct {
	base
}

func (c *cos) String() string {
	return "Cos"
}

func (c *cos) forward(inputs ...*Tensor) *Tensor {
	return inputs[0].clone().cos()
}

func (c *cos) backward(dy *Tensor) []*Tensor {
	gx := c.inputs[0].clone()
	gx.sin()
	gx.neg()
	gx.mul(dy)
	return []*Tensor{gx}
}

type sum struct {
	base
}

func (s *sum) String() string {
	return "Sum"
}

func (s *sum) forward(inputs ...*Tensor) *Tensor {
	return NewScalar(inputs[0].sum())
}

func (s *sum) backward(dy *Tensor) []*Tensor {
	gx := Zeros(s.inputs[0].shape...)
	for i := range gx.data {
		gx.data[i] = dy.data[0]
	}
	return []*Tensor{gx}
}

type mean struct {
	base
}

func (m *mean) String() string {
	return "Mean"
}

func (m *mean) forward(inputs ...*Tensor) *Tensor {
	return NewScalar(inputs[0].sum() / float32(len(inputs[0].data)))
}

func (m *mean) backward(dy *Tensor) []*Tensor {
	gx := Zeros(m.inputs[0].shape...)
	for i := range gx.data {
		gx.data[i] = dy.data[0] / float32(len(gx.data))
	}
	return []*Tensor{gx}
}

type matMul struct {
	base
}

func (m *matMul) String() string {
	return "MatMul"
}

func (m *matMul) forward(inputs ...*Tensor) *Tensor {
	return inputs[0].matMul(inputs[1], false, false)
}

func (m *matMul) backward(dy *Tensor) []*Tensor {
	gx0 := dy.matMul(m.inputs[1], false, true)
	gx1 := m.inputs[0].matMul(dy, true, false)
	return []*Tensor{gx0, gx1}
}

type embedding struct {
	base
}

func (e *embedding) String() string {
	return "Embedding"
}

func (e *embedding) forward(inputs ...*Tensor) *Tensor {
	w, x := inputs[0], inputs[1]
	dim := 1
	for _, s := range w.shape[1:] {
		dim *= s
	}
	data := make([]float32, len(x.data)*dim)
	for i := range x.data {
		j := int(x.data[i])
		copy(data[i*dim:(i+1)*dim], w.data[j*dim:(j+1)*dim])
	}
	shape := make([]int, 0, len(x.shape)+len(w.shape)-1)
	shape = append(shape, x.shape...)
	shape = append(shape, w.shape[1:]...)
	return NewTensor(data, shape...)
}

func (e *embedding) backward(dy *Tensor) []*Tensor {
	w, x := e.inputs[0], e.inputs[1]
	gw := Zeros(w.shape...)
	dim := 1
	for _, s := range w.shape[1:] {
		dim *= s
	}
	for i := range x.data {
		j := int(x.data[i])
		for p := 0; p < dim; p++ {
			gw.data[j*dim+p] += dy.data[i*dim+p]
		}
	}
	// Indices are not differentiable.
	return []*Tensor{gw, nil}
}

type broadcast struct {
	base
	shape []int
}

func (b *broadcast) String() string {
	return "Broadcast"
}

func (b *broadcast) forward(inputs ...*Tensor) *Tensor {
	size := 1
	for _, s := range b.shape {
		size *= s
	}
	shape := make([]int, 0, len(inputs[0].shape)+len(b.shape))
	shape = append(shape, inputs[0].shape...)
	shape = append(shape, b.shape...)
	data := make([]float32, len(inputs[0].data)*size)
	for i := range inputs[0].data {
		for j := 0; j < size; j++ {
			data[i*size+j] = inputs[0].data[i]
		}
	}
	return NewTensor(data, shape...)
}

func (b *broadcast) backward(dy *Tensor) []*Tensor {
	size := 1
	for _, s := range b.shape {
		size *= s
	}
	gx := Zeros(b.inputs[0].shape...)
	for i := range gx.data {
		for j := 0; j < size; j++ {
			gx.data[i] += dy.data[i*size+j]
		}
	}
	return []*Tensor{gx}
}

type flatten struct {
	base
}

func (f *flatten) String() string {
	return "Flatten"
}

func (f *flatten) forward(inputs ...*Tensor) *Tensor {
	return NewTensor(inputs[0].clone().data, len(inputs[0].data))
}

func (f *flatten) backward(dy *Tensor) []*Tensor {
	return []*Tensor{NewTensor(dy.clone().data, f.inputs[0].shape...)}
}

type reshape struct {
	base
	shape []int
}

func (r *reshape) String() string {
	return "Reshape"
}

func (r *reshape) forward(inputs ...*Tensor) *Tensor {
	return NewTensor(inputs[0].clone().data, r.shape...)
}

func (r *reshape) backward(dy *Tensor) []*Tensor {
	return []*Tensor{NewTensor(dy.clone().data, r.inputs[0].shape...)}
}

type sigmoid struct {
	base
}

func (s *sigmoid) String() string {
	return "Sigmoid"
}

func (s *sigmoid) forward(inputs ...*Tensor) *Tensor {
	// y = tanh(x * 0.5) * 0.5 + 0.5
	y := inputs[0].clone()
	y.mul(NewScalar(0.5))
	y.tanh()
	y.mul(NewScalar(0.5))
	y.add(NewScalar(0.5))
	return y
}

func (s *sigmoid) backward(dy *Tensor) []*Tensor {
	// dx = dy * y * (1 - y)
	gx := s.output.clone()
	gx.neg()
	gx.add(NewScalar(1))
	gx.mul(s.output)
	gx.mul(dy)
	return []*Tensor{gx}
}

type relu struct {
	base
}

func (r *relu) String() string {
	return "ReLu"
}

func (r *relu) forward(inputs ...*Tensor) *Tensor {
	return inputs[0].clone().maximum(NewScalar(0))
}

func (r *relu) backward(dy *Tensor) []*Tensor {
	gx := dy.clone()
	for i := range gx.data {
		if r.inputs[0].data[i] <= 0 {
			gx.data[i] = 0
		}
	}
	return []*Tensor{gx}
}

type bceWithLogits struct {
	base
}

func (b *bceWithLogits) String() string {
	return "BCEWithLogits"
}

func (b *bceWithLogits) forward(inputs ...*Tensor) *Tensor {
	// loss = max(z, 0) - z*y + log(1 + exp(-|z|))
	target, prediction := inputs[0], inputs[1]
	var sum float32
	for i := range prediction.data {
		z, y := prediction.data[i], target.data[i]
		sum += math32.Max(z, 0) - z*y + math32.Log1p(math32.Exp(-math32.Abs(z)))
	}
	return NewScalar(sum / float32(len(prediction.data)))
}

func (b *bceWithLogits) backward(dy *Tensor) []*Tensor {
	target, prediction := b.inputs[0], b.inputs[1]
	n := float32(len(prediction.data))
	gt := Zeros(target.shape...)
	gz := Zeros(prediction.shape...)
	for i := range prediction.data {
		z, y := prediction.data[i], target.data[i]
		s := math32.Tanh(z*0.5)*0.5 + 0.5
		gz.data[i] = (s - y) * dy.data[0] / n
		gt.data[i] = -z * dy.data[0] / n
	}
	return []*Tensor{gt, gz}
}

func checkSuffixShape(x0, x1 *Tensor) {
	if len(x1.shape) > len(x0.shape) {
		panic("the shape of the second tensor must be a suffix sequence of the shape of the first tensor")
	}
	for i := 0; i < len(x1.shape); i++ {
		if x0.shape[len(x0.shape)-len(x1.shape)+i] != x1.shape[i] {
			panic("the shape of the second tensor must be a suffix sequence of the shape of the first tensor")
		}
	}
}

// Add returns the element-wise sum of two tensors. The shape of the smaller
// tensor must be a suffix sequence of the shape of the larger tensor.
func Add(x0, x1 *Tensor) *Tensor {
	if len(x0.shape) < len(x1.shape) {
		x0, x1 = x1, x0
	}
	checkSuffixShape(x0, x1)
	return apply(&add{}, x0, x1)
}

// Sub returns the element-wise difference of two tensors. The shape of the
// second tensor must be a suffix sequence of the shape of the first tensor.
func Sub(x0, x1 *Tensor) *Tensor {
	checkSuffixShape(x0, x1)
	return apply(&sub{}, x0, x1)
}

// Mul returns the element-wise product of two tensors. The shape of the
// smaller tensor must be a suffix sequence of the shape of the larger tensor.
func Mul(x0, x1 *Tensor) *Tensor {
	if len(x0.shape) < len(x1.shape) {
		x0, x1 = x1, x0
	}
	checkSuffixShape(x0, x1)
	return apply(&mul{}, x0, x1)
}

// Div returns the element-wise quotient of two tensors. The shape of the
// second tensor must be a suffix sequence of the shape of the first tensor.
func Div(x0, x1 *Tensor) *Tensor {
	checkSuffixShape(x0, x1)
	return apply(&div{}, x0, x1)
}

// Square returns the element-wise square of a tensor.
func Square(x *Tensor) *Tensor {
	return apply(&square{}, x)
}

// Pow returns the element-wise power of a tensor. The shape of the exponent
// must be a suffix sequence of the shape of the base.
func Pow(x, n *Tensor) *Tensor {
	checkSuffixShape(x, n)
	return apply(&pow{}, x, n)
}

// Exp returns the element-wise exponential of a tensor.
func Exp(x *Tensor) *Tensor {
	return apply(&exp{}, x)
}

// Log returns the element-wise natural logarithm of a tensor.
func Log(x *Tensor) *Tensor {
	return apply(&log{}, x)
}

// Sin returns the element-wise sine of a tensor.
func Sin(x *Tensor) *Tensor {
	return apply(&sin{}, x)
}

// Cos returns the element-wise cosine of a tensor.
func Cos(x *Tensor) *Tensor {
	return apply(&cos{}, x)
}

// Sum returns the sum of all elements in a tensor.
func Sum(x *Tensor) *Tensor {
	return apply(&sum{}, x)
}

// Mean returns the mean of all elements in a tensor.
func Mean(x *Tensor) *Tensor {
	return apply(&mean{}, x)
}

// MatMul returns the matrix product of two 2-D tensors.
func MatMul(x, y *Tensor) *Tensor {
	return apply(&matMul{}, x, y)
}

// Embedding returns rows of the table w selected by the indices in x. The
// result has the shape of x followed by the row shape of w. Gradients flow
// to the table only.
func Embedding(w, x *Tensor) *Tensor {
	if len(w.shape) < 2 {
		panic("embedding table must have at least 2 dimensions")
	}
	return apply(&embedding{}, w, x)
}

// Broadcast repeats each element of a tensor over the given trailing
// dimensions.
func Broadcast(x *Tensor, shape ...int) *Tensor {
	return apply(&broadcast{shape: shape}, x)
}

// Flatten returns a 1-D copy of a tensor.
func Flatten(x *Tensor) *Tensor {
	return apply(&flatten{}, x)
}

// Reshape returns a tensor with the same data and a new shape.
func Reshape(x *Tensor, shape ...int) *Tensor {
	size := 1
	for _, s := range shape {
		size *= s
	}
	if size != len(x.data) {
		panic(fmt.Sprintf("cannot reshape tensor of size %v into shape %v", len(x.data), shape))
	}
	return apply(&reshape{shape: shape}, x)
}

// Sigmoid returns the element-wise logistic function of a tensor.
func Sigmoid(x *Tensor) *Tensor {
	return apply(&sigmoid{}, x)
}

// ReLu returns the element-wise rectified linear unit of a tensor.
func ReLu(x *Tensor) *Tensor {
	return apply(&relu{}, x)
}

// BCEWithLogits computes the mean binary cross-entropy between targets and
// raw logits in a single numerically stable step.
func BCEWithLogits(target, prediction *Tensor) *Tensor {
	if len(target.data) != len(prediction.data) {
		panic("target and prediction must have the same size")
	}
	return apply(&bceWithLogits{}, target, prediction)
}

// MeanSquareError computes the mean squared difference between two tensors.
func MeanSquareError(x, y *Tensor) *Tensor {
	return Mean(Square(Sub(x, y)))
}
