// internal/gpa/calc.go
package gpa

// Entry は計算に必要な最小単位（成績記号と単位数）です。
type Entry struct {
	Grade       Grade
	CreditHours float64
}

// SemesterGPA は単位数で重み付けした平均ポイントを返します。
// 空の入力や単位数の合計が0の場合は0を返します。
// 対応表にない成績記号はエラーにせず0ポイントとして数えます。
func SemesterGPA(entries []Entry, table PointTable) float64 {
	if len(entries) == 0 {
		return 0
	}
	var totalPoints, totalCredits float64
	for _, e := range entries {
		totalPoints += table[e.Grade] * e.CreditHours
		totalCredits += e.CreditHours
	}
	if totalCredits == 0 {
		return 0
	}
	return totalPoints / totalCredits
}

// CGPA は全学期の科目を平坦化して SemesterGPA を適用します。学期の順序は結果に影響しません。
func CGPA(semesters [][]Entry, table PointTable) float64 {
	return SemesterGPA(flatten(semesters), table)
}

// TotalCredits は全学期の単位数の合計です。
func TotalCredits(semesters [][]Entry) float64 {
	var total float64
	for _, entries := range semesters {
		for _, e := range entries {
			total += e.CreditHours
		}
	}
	return total
}

// ProjectedCGPA は既知の累積GPAと単位数に仮の科目を加えた場合の累積GPAを返します。
func ProjectedCGPA(currentAverage, currentCredits float64, hypothetical []Entry, table PointTable) float64 {
	if len(hypothetical) == 0 {
		return currentAverage
	}
	points := currentAverage * currentCredits
	credits := currentCredits
	for _, e := range hypothetical {
		points += table[e.Grade] * e.CreditHours
		credits += e.CreditHours
	}
	if credits == 0 {
		return 0
	}
	return points / credits
}

// UnknownGrades は対応表に存在しない成績記号を持つエントリの添字を返します。
// 計算結果は変えず、警告表示のためだけに使います。
func UnknownGrades(entries []Entry, table PointTable) []int {
	var idx []int
	for i, e := range entries {
		if !table.Has(e.Grade) {
			idx = append(idx, i)
		}
	}
	return idx
}

func flatten(semesters [][]Entry) []Entry {
	n := 0
	for _, s := range semesters {
		n += len(s)
	}
	out := make([]Entry, 0, n)
	for _, s := range semesters {
		out = append(out, s...)
	}
	return out
}
