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

package encoding

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGob(t *testing.T) {
	type record struct {
		Name   string
		Values []float32
	}
	buf := bytes.NewBuffer(nil)
	err := WriteGob(buf, record{Name: "talk show", Values: []float32{1, 2, 3}})
	assert.NoError(t, err)
	err = WriteGob(buf, record{Name: "true crime", Values: []float32{4, 5}})
	assert.NoError(t, err)

	var a, b record
	err = ReadGob(buf, &a)
	assert.NoError(t, err)
	assert.Equal(t, record{Name: "talk show", Values: []float32{1, 2, 3}}, a)
	err = ReadGob(buf, &b)
	assert.NoError(t, err)
	assert.Equal(t, record{Name: "true crime", Values: []float32{4, 5}}, b)

	var c record
	err = ReadGob(buf, &c)
	assert.Error(t, err)
}

func TestString(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	err := WriteString(buf, "hello")
	assert.NoError(t, err)
	err = WriteString(buf, "")
	assert.NoError(t, err)

	s, err := ReadString(buf)
	assert.NoError(t, err)
	assert.Equal(t, "hello", s)
	s, err = ReadString(buf)
	assert.NoError(t, err)
	assert.Equal(t, "", s)

	_, err = ReadString(buf)
	assert.Error(t, err)
}
