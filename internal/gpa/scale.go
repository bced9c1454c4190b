// internal/gpa/scale.go
package gpa

import (
	"errors"
	"fmt"
)

// Scale はユーザーが選択できる評価尺度の名前です。プロフィールには文字列として保存されます。
type Scale string

const (
	ScaleDefault        Scale = "DEFAULT"
	ScaleDefaultWithE   Scale = "DEFAULT_WITH_E"
	ScaleNUCReform      Scale = "NUC_REFORM_4_0"
	ScaleStrictPrivate  Scale = "STRICT_PRIVATE_5_0"
	ScaleUSStandard     Scale = "US_STANDARD_4_0"
	defaultScaleOnError       = ScaleDefault
)

// Grade は成績記号です。すべての記号がすべての尺度で有効なわけではありません。
type Grade string

const (
	GradeA      Grade = "A"
	GradeAMinus Grade = "A-"
	GradeBPlus  Grade = "B+"
	GradeB      Grade = "B"
	GradeBMinus Grade = "B-"
	GradeCPlus  Grade = "C+"
	GradeC      Grade = "C"
	GradeCMinus Grade = "C-"
	GradeDPlus  Grade = "D+"
	GradeD      Grade = "D"
	GradeE      Grade = "E"
	GradeF      Grade = "F"
)

var ErrUnknownScale = errors.New("unknown grading scale")

var allGrades = []Grade{
	GradeA, GradeAMinus, GradeBPlus, GradeB, GradeBMinus, GradeCPlus,
	GradeC, GradeCMinus, GradeDPlus, GradeD, GradeE, GradeF,
}

// Valid は記号が既知の成績記号のいずれかであるかを返します（尺度とは無関係）。
func (g Grade) Valid() bool {
	for _, known := range allGrades {
		if g == known {
			return true
		}
	}
	return false
}

// GradeDefinition は尺度内の1行（記号・ポイント・表示用の点数範囲）です。
type GradeDefinition struct {
	Grade  Grade   `json:"grade"`
	Points float64 `json:"points"`
	Range  string  `json:"range"`
}

// 先頭ほど高い評価。ポイントは非増加。
var scaleTables = map[Scale][]GradeDefinition{
	ScaleDefault: {
		{GradeA, 5.0, "70-100"},
		{GradeB, 4.0, "60-69"},
		{GradeC, 3.0, "50-59"},
		{GradeD, 2.0, "45-49"},
		{GradeF, 0.0, "0-44"},
	},
	ScaleDefaultWithE: {
		{GradeA, 5.0, "70-100"},
		{GradeB, 4.0, "60-69"},
		{GradeC, 3.0, "50-59"},
		{GradeD, 2.0, "45-49"},
		{GradeE, 1.0, "40-44"},
		{GradeF, 0.0, "0-39"},
	},
	ScaleNUCReform: {
		{GradeA, 4.0, "70-100"},
		{GradeB, 3.0, "60-69"},
		{GradeC, 2.0, "50-59"},
		{GradeD, 1.0, "45-49"},
		{GradeF, 0.0, "0-44"},
	},
	ScaleStrictPrivate: {
		{GradeA, 5.0, "75-100"},
		{GradeB, 4.0, "65-74"},
		{GradeC, 3.0, "50-64"},
		{GradeD, 2.0, "45-49"},
		{GradeE, 1.0, "40-44"},
		{GradeF, 0.0, "0-39"},
	},
	ScaleUSStandard: {
		{GradeA, 4.0, "93-100"},
		{GradeAMinus, 3.7, "90-92"},
		{GradeBPlus, 3.3, "87-89"},
		{GradeB, 3.0, "83-86"},
		{GradeBMinus, 2.7, "80-82"},
		{GradeCPlus, 2.3, "77-79"},
		{GradeC, 2.0, "73-76"},
		{GradeCMinus, 1.7, "70-72"},
		{GradeDPlus, 1.3, "67-69"},
		{GradeD, 1.0, "60-66"},
		{GradeF, 0.0, "0-59"},
	},
}

var scaleOrder = []Scale{
	ScaleDefault,
	ScaleDefaultWithE,
	ScaleNUCReform,
	ScaleStrictPrivate,
	ScaleUSStandard,
}

// Scales は選択可能な尺度を表示順で返します。
func Scales() []Scale {
	out := make([]Scale, len(scaleOrder))
	copy(out, scaleOrder)
	return out
}

func (s Scale) Valid() bool {
	_, ok := scaleTables[s]
	return ok
}

func (s Scale) String() string {
	return string(s)
}

// ParseScale は入力値の検証用です。未知の尺度名はエラーになります。
func ParseScale(s string) (Scale, error) {
	scale := Scale(s)
	if !scale.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownScale, s)
	}
	return scale, nil
}

// ScaleOrDefault は保存済みの値を読み出す際に使います。未知の値や空文字は DEFAULT として扱います。
func ScaleOrDefault(s string) Scale {
	scale, err := ParseScale(s)
	if err != nil {
		return defaultScaleOnError
	}
	return scale
}

func tableFor(s Scale) []GradeDefinition {
	if defs, ok := scaleTables[s]; ok {
		return defs
	}
	return scaleTables[defaultScaleOnError]
}

// Definitions は表示用の定義一覧のコピーを返します。
func Definitions(s Scale) []GradeDefinition {
	defs := tableFor(s)
	out := make([]GradeDefinition, len(defs))
	copy(out, defs)
	return out
}

// Grades は尺度で有効な成績記号を高い順に返します。
func Grades(s Scale) []Grade {
	defs := tableFor(s)
	out := make([]Grade, 0, len(defs))
	for _, d := range defs {
		out = append(out, d.Grade)
	}
	return out
}

// PointTable は成績記号からポイントへの対応表です。
type PointTable map[Grade]float64

// Points は尺度の定義から計算用の対応表を作ります。
func Points(s Scale) PointTable {
	defs := tableFor(s)
	table := make(PointTable, len(defs))
	for _, d := range defs {
		table[d.Grade] = d.Points
	}
	return table
}

func (p PointTable) Has(g Grade) bool {
	_, ok := p[g]
	return ok
}

// MaxPoints は尺度内の最大ポイントです。目標値の上限や進捗率の計算に使います。
func MaxPoints(s Scale) float64 {
	highest := 0.0
	for _, d := range tableFor(s) {
		if d.Points > highest {
			highest = d.Points
		}
	}
	return highest
}
