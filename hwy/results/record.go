// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package results

import (
	"fmt"
	"path/filepath"
	"reflect"
	"runtime"
	"unsafe"

	"github.com/ajroetker/hwyverify/hwy"
)

// KindOf returns the Kind recorded for elements of type T.
func KindOf[T hwy.Lanes]() Kind {
	var zero T
	switch any(zero).(type) {
	case hwy.Float16:
		return KindFloat16
	case hwy.BFloat16:
		return KindBFloat16
	}
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Uint8:
		return KindUint8
	case reflect.Int8:
		return KindInt8
	case reflect.Uint16:
		return KindUint16
	case reflect.Int16:
		return KindInt16
	case reflect.Uint32:
		return KindUint32
	case reflect.Int32:
		return KindInt32
	case reflect.Uint64:
		return KindUint64
	case reflect.Int64:
		return KindInt64
	case reflect.Float32:
		return KindFloat32
	default:
		return KindFloat64
	}
}

// Record pushes a copy of values into s, tagged with the caller's file and
// line.
func Record[T hwy.Lanes](s *Set, values []T) *Entry {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		file, line = "", 0
	}
	return RecordAt(s, filepath.Base(file), line, values)
}

// RecordAt pushes a copy of values into s with an explicit source location.
func RecordAt[T hwy.Lanes](s *Set, file string, line int, values []T) *Entry {
	e := s.Push(KindOf[T](), len(values), file, line)
	if len(values) > 0 {
		copy(e.data, unsafe.Slice((*byte)(unsafe.Pointer(&values[0])), len(e.data)))
	}
	return e
}

// Values returns a typed copy of the elements of e. It panics if T does not
// match the recorded kind.
func Values[T hwy.Lanes](e *Entry) []T {
	if k := KindOf[T](); k != e.kind {
		panic(fmt.Sprintf("results: entry holds %v, not %v", e.kind, k))
	}
	out := make([]T, e.length)
	if e.length > 0 {
		copy(unsafe.Slice((*byte)(unsafe.Pointer(&out[0])), len(e.data)), e.data)
	}
	return out
}
