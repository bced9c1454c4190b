// internal/gpa/progress.go
package gpa

import (
	"math"
	"strconv"
)

// Progress は目標累積GPAに対する現在地です。
type Progress struct {
	Current    float64 `json:"current"`
	Target     float64 `json:"target"`
	Difference float64 `json:"difference"` // 正の値は目標まで不足している量
	Percent    float64 `json:"percent"`
	Reached    bool    `json:"reached"`
}

// GoalProgress は目標に対する差分と達成率（最大100）を計算します。目標が0以下なら達成率は0です。
func GoalProgress(current, target float64) Progress {
	p := Progress{
		Current:    current,
		Target:     target,
		Difference: target - current,
		Reached:    current >= target,
	}
	if target > 0 {
		p.Percent = math.Min(current/target*100, 100)
	}
	return p
}

// Format2 は平均値や合計値の表示用（小数点以下2桁）です。計算には使わないでください。
func Format2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Format3 は予測GPAの表示用（小数点以下3桁）です。
func Format3(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// Format1 は単位数の表示用です。
func Format1(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
