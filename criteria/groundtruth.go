// Copyright 2025 The specgrade Authors
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

package criteria

import (
	"encoding/json"
	"fmt"
)

// GroundTruthKind discriminates the value held by a GroundTruth.
type GroundTruthKind string

const (
	GroundTruthBool   GroundTruthKind = "bool"
	GroundTruthNumber GroundTruthKind = "number"
	GroundTruthString GroundTruthKind = "string"
	GroundTruthRange  GroundTruthKind = "range"
)

// GroundTruth is the expected value of a criterion: a boolean, a number,
// a string, or an inclusive numeric range [Min, Max].
type GroundTruth struct {
	Kind   GroundTruthKind
	Bool   bool
	Number float64
	String string
	Min    float64
	Max    float64
}

// Truth constructors.

func BoolTruth(v bool) GroundTruth      { return GroundTruth{Kind: GroundTruthBool, Bool: v} }
func NumberTruth(v float64) GroundTruth { return GroundTruth{Kind: GroundTruthNumber, Number: v} }
func StringTruth(v string) GroundTruth  { return GroundTruth{Kind: GroundTruthString, String: v} }

// RangeTruth builds an inclusive [min, max] range.
func RangeTruth(min, max float64) GroundTruth {
	return GroundTruth{Kind: GroundTruthRange, Min: min, Max: max}
}

// Value returns the wire form of the ground truth: the scalar itself, or a
// two-element slice for ranges. It is what results echo back as Expected.
func (g GroundTruth) Value() any {
	switch g.Kind {
	case GroundTruthBool:
		return g.Bool
	case GroundTruthNumber:
		return g.Number
	case GroundTruthString:
		return g.String
	case GroundTruthRange:
		return []float64{g.Min, g.Max}
	default:
		return nil
	}
}

// MarshalJSON encodes the ground truth as its wire form.
func (g GroundTruth) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Value())
}

// UnmarshalJSON accepts a boolean, a number, a string, or a [min, max] array.
func (g *GroundTruth) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return g.fromAny(raw)
}

// UnmarshalYAML accepts the same shapes as UnmarshalJSON.
func (g *GroundTruth) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return err
	}
	return g.fromAny(raw)
}

// MarshalYAML encodes the ground truth as its wire form.
func (g GroundTruth) MarshalYAML() (any, error) {
	return g.Value(), nil
}

func (g *GroundTruth) fromAny(raw any) error {
	switch v := raw.(type) {
	case bool:
		*g = BoolTruth(v)
	case float64:
		*g = NumberTruth(v)
	case int:
		*g = NumberTruth(float64(v))
	case string:
		*g = StringTruth(v)
	case []any:
		if len(v) != 2 {
			return fmt.Errorf("criteria: range ground truth needs exactly 2 elements, got %d", len(v))
		}
		min, ok1 := toFloat(v[0])
		max, ok2 := toFloat(v[1])
		if !ok1 || !ok2 {
			return fmt.Errorf("criteria: range ground truth elements must be numbers, got %v", v)
		}
		*g = RangeTruth(min, max)
	default:
		return fmt.Errorf("criteria: unsupported ground truth %T", raw)
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
