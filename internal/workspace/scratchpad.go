package workspace

import (
	"fmt"
	"strconv"
	"sync"

	"go_gpa_keep/internal/gpa"
	"go_gpa_keep/internal/model"
)

const defaultHypotheticalCredits = 3

// Scratchpad は what-if 計算用の仮の科目一覧です。保存されず、Workspace の状態も変更しません。
type Scratchpad struct {
	mu             sync.Mutex
	scale          gpa.Scale
	currentCGPA    float64
	currentCredits float64
	courses        []*model.HypotheticalCourse
	nextID         int
}

// NewScratchpad は起点となる累積GPAと単位数を指定して下書きを作ります
func NewScratchpad(scale gpa.Scale, currentCGPA, currentCredits float64) *Scratchpad {
	return &Scratchpad{scale: scale, currentCGPA: currentCGPA, currentCredits: currentCredits, nextID: 1}
}

// Add は3単位・尺度内の最高評価で仮の科目を追加します
func (p *Scratchpad) Add(name string) *model.HypotheticalCourse {
	p.mu.Lock()
	defer p.mu.Unlock()
	c := &model.HypotheticalCourse{
		ID:          strconv.Itoa(p.nextID),
		Name:        name,
		CreditHours: defaultHypotheticalCredits,
		Grade:       gpa.Grades(p.scale)[0],
	}
	p.nextID++
	p.courses = append(p.courses, c)
	cp := *c
	return &cp
}

// Update は仮の科目の単位数と成績を変更します
func (p *Scratchpad) Update(id string, creditHours float64, grade gpa.Grade) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if creditHours < 0 {
		return fmt.Errorf("scratchpad: negative credit hours %v: %w", creditHours, model.ErrInvalidInput)
	}
	if !gpa.Points(p.scale).Has(grade) {
		return fmt.Errorf("scratchpad: grade %q is not in scale %s: %w", grade, p.scale, model.ErrInvalidInput)
	}
	for _, c := range p.courses {
		if c.ID == id {
			c.CreditHours = creditHours
			c.Grade = grade
			return nil
		}
	}
	return fmt.Errorf("scratchpad: course %s: %w", id, model.ErrNotFound)
}

func (p *Scratchpad) Remove(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, c := range p.courses {
		if c.ID == id {
			p.courses = append(p.courses[:i], p.courses[i+1:]...)
			return true
		}
	}
	return false
}

// Reset は仮の科目をすべて消します。IDの採番は続きから行います。
func (p *Scratchpad) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.courses = nil
}

func (p *Scratchpad) Courses() []model.HypotheticalCourse {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.HypotheticalCourse, 0, len(p.courses))
	for _, c := range p.courses {
		out = append(out, *c)
	}
	return out
}

// Project は仮の科目を加えた場合の累積GPAを返します。科目がなければ起点の値そのままです。
func (p *Scratchpad) Project() *model.WhatIfResponse {
	p.mu.Lock()
	defer p.mu.Unlock()
	entries := model.HypotheticalEntries(p.courses)
	projected := gpa.ProjectedCGPA(p.currentCGPA, p.currentCredits, entries, gpa.Points(p.scale))
	var newCredits float64
	for _, e := range entries {
		newCredits += e.CreditHours
	}
	change := projected - p.currentCGPA
	return &model.WhatIfResponse{
		GradingScale:      p.scale,
		CurrentCGPA:       p.currentCGPA,
		CurrentCredits:    p.currentCredits,
		ProjectedCGPA:     projected,
		ProjectedDisplay:  gpa.Format3(projected),
		NewCredits:        newCredits,
		TotalCreditsAfter: p.currentCredits + newCredits,
		Change:            change,
		ChangeDisplay:     gpa.Format2(change),
	}
}
