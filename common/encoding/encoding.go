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
	"encoding/binary"
	"encoding/gob"
	"io"

	"github.com/juju/errors"
)

// WriteGob writes a length prefixed gob encoded object into writer.
func WriteGob[T any](w io.Writer, v T) error {
	buf := bytes.NewBuffer(nil)
	encoder := gob.NewEncoder(buf)
	if err := encoder.Encode(v); err != nil {
		return errors.Trace(err)
	}
	if err := binary.Write(w, binary.LittleEndian, int64(buf.Len())); err != nil {
		return errors.Trace(err)
	}
	_, err := w.Write(buf.Bytes())
	return errors.Trace(err)
}

// ReadGob reads a length prefixed gob encoded object from reader.
func ReadGob[T any](r io.Reader, v *T) error {
	var length int64
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return errors.Trace(err)
	}
	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return errors.Trace(err)
	}
	decoder := gob.NewDecoder(bytes.NewReader(data))
	return errors.Trace(decoder.Decode(v))
}

// WriteString writes a length prefixed string into writer.
func WriteString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, int64(len(s))); err != nil {
		return errors.Trace(err)
	}
	_, err := io.WriteString(w, s)
	return errors.Trace(err)
}

// ReadString reads a length prefixed string from reader.
func ReadString(r io.Reader) (string, error) {
	var length int64
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return "", errors.Trace(err)
	}
	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return "", errors.Trace(err)
	}
	return string(data), nil
}
