// Package workspace はクライアント側のアプリケーション状態を保持します。
// 画面やCLIは Workspace を通して学期・科目・目標・評価尺度を読み書きし、
// 書き込みは DataStore（リモートのAPI）へ反映されます。
package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"go_gpa_keep/internal/gpa"
	"go_gpa_keep/internal/model"

	"github.com/google/uuid"
)

// ErrNotConfirmed は確認なしで削除を実行しようとした場合のエラーです
var ErrNotConfirmed = errors.New("workspace: destructive action requires confirmation")

// DataStore はログイン中のユーザーのデータを読み書きするリモートのストアです
type DataStore interface {
	ListSemesters(ctx context.Context) ([]*model.Semester, error)
	CreateSemester(ctx context.Context, req *model.CreateSemesterRequest) (*model.Semester, error)
	RenameSemester(ctx context.Context, semesterID uuid.UUID, name string) (*model.Semester, error)
	DeleteSemester(ctx context.Context, semesterID uuid.UUID) error

	CreateCourse(ctx context.Context, semesterID uuid.UUID, req *model.CreateCourseRequest) (*model.Course, error)
	UpdateCourse(ctx context.Context, courseID uuid.UUID, req *model.UpdateCourseRequest) (*model.Course, error)
	DeleteCourse(ctx context.Context, courseID uuid.UUID) error

	// GetGoal は目標が未設定なら nil, nil を返します
	GetGoal(ctx context.Context) (*model.Goal, error)
	PutGoal(ctx context.Context, target float64) (*model.Goal, error)
	DeleteGoal(ctx context.Context) error

	GetSettings(ctx context.Context) (*model.SettingsResponse, error)
	UpdateScale(ctx context.Context, scale gpa.Scale) (*model.SettingsResponse, error)
}

type state struct {
	semesters []*model.Semester
	goal      *model.Goal
	scale     gpa.Scale
}

// clone は復元用の深いコピーを作ります
func (s *state) clone() state {
	out := state{scale: s.scale, semesters: make([]*model.Semester, 0, len(s.semesters))}
	if s.goal != nil {
		g := *s.goal
		out.goal = &g
	}
	for _, sem := range s.semesters {
		out.semesters = append(out.semesters, cloneSemester(sem))
	}
	return out
}

func cloneSemester(sem *model.Semester) *model.Semester {
	cp := *sem
	cp.Courses = make([]*model.Course, 0, len(sem.Courses))
	for _, c := range sem.Courses {
		cc := *c
		cp.Courses = append(cp.Courses, &cc)
	}
	return &cp
}

func (s *state) semester(id uuid.UUID) (int, *model.Semester) {
	for i, sem := range s.semesters {
		if sem.SemesterID == id {
			return i, sem
		}
	}
	return -1, nil
}

func (s *state) course(id uuid.UUID) (*model.Semester, int, *model.Course) {
	for _, sem := range s.semesters {
		for i, c := range sem.Courses {
			if c.CourseID == id {
				return sem, i, c
			}
		}
	}
	return nil, -1, nil
}

// recompute は現在の尺度で全学期の派生GPAを埋め直します
func (s *state) recompute() {
	table := gpa.Points(s.scale)
	for _, sem := range s.semesters {
		sem.RecomputeGPA(table)
	}
}

// change は1回の書き込みを表します。
// optimistic はリモート呼び出しの前に状態へ反映され、失敗すれば呼び出し前のスナップショットに戻されます。
// commit はリモート呼び出しの成功後に反映されます（サーバーが採番したIDなど）。
type change struct {
	optimistic func(*state)
	remote     func(ctx context.Context) error
	commit     func(*state)
}

// Workspace は1ユーザー分の学期・科目・目標・評価尺度を保持します。
// 書き込みは直列化され、読み取りは楽観的に反映された状態を見ます。
type Workspace struct {
	store  DataStore
	logger *slog.Logger

	writeMu sync.Mutex
	mu      sync.RWMutex
	st      state
}

func New(store DataStore, logger *slog.Logger) *Workspace {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workspace{store: store, logger: logger, st: state{scale: gpa.ScaleDefault}}
}

// apply は change を実行します。すべての書き込みはここを通ります。
func (w *Workspace) apply(ctx context.Context, op string, c change) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	w.mu.Lock()
	snapshot := w.st.clone()
	if c.optimistic != nil {
		c.optimistic(&w.st)
		w.st.recompute()
	}
	w.mu.Unlock()

	if err := c.remote(ctx); err != nil {
		w.mu.Lock()
		w.st = snapshot
		w.mu.Unlock()
		w.logger.Warn("Remote write failed, local state restored", "op", op, "error", err)
		return fmt.Errorf("workspace.%s: %w", op, err)
	}

	if c.commit != nil {
		w.mu.Lock()
		c.commit(&w.st)
		w.st.recompute()
		w.mu.Unlock()
	}
	return nil
}

// Load はリモートから全データを読み込み、ローカルの状態を置き換えます
func (w *Workspace) Load(ctx context.Context) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	settings, err := w.store.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("workspace.Load: settings: %w", err)
	}
	semesters, err := w.store.ListSemesters(ctx)
	if err != nil {
		return fmt.Errorf("workspace.Load: semesters: %w", err)
	}
	goal, err := w.store.GetGoal(ctx)
	if err != nil {
		return fmt.Errorf("workspace.Load: goal: %w", err)
	}

	loaded := state{semesters: semesters, goal: goal, scale: gpa.ScaleOrDefault(string(settings.GradingScale))}
	next := loaded.clone()
	next.recompute()

	w.mu.Lock()
	w.st = next
	w.mu.Unlock()
	w.logger.Debug("Workspace loaded", "semesters", len(semesters), "scale", next.scale)
	return nil
}

// Semesters は学期一覧のコピーを返します
func (w *Workspace) Semesters() []*model.Semester {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.st.clone().semesters
}

// Semester は指定の学期のコピーを返します
func (w *Workspace) Semester(id uuid.UUID) (*model.Semester, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, sem := w.st.semester(id)
	if sem == nil {
		return nil, false
	}
	return cloneSemester(sem), true
}

func (w *Workspace) Goal() *model.Goal {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.st.goal == nil {
		return nil
	}
	g := *w.st.goal
	return &g
}

func (w *Workspace) Scale() gpa.Scale {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.st.scale
}

// Summary は現在の状態から累積GPAなどの集計を作ります
func (w *Workspace) Summary() *model.DashboardResponse {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return model.Summarize(w.st.semesters, w.st.goal, w.st.scale)
}

// Scratchpad は現在の累積GPAと単位数を起点にした what-if 計算用の下書きを返します
func (w *Workspace) Scratchpad() *Scratchpad {
	s := w.Summary()
	return NewScratchpad(s.GradingScale, s.CGPA, s.TotalCredits)
}

// AddSemester は学期を作成します。IDはサーバーが採番するので、成功後に状態へ追加します。
func (w *Workspace) AddSemester(ctx context.Context, req *model.CreateSemesterRequest) (*model.Semester, error) {
	var created *model.Semester
	err := w.apply(ctx, "AddSemester", change{
		remote: func(ctx context.Context) error {
			sem, err := w.store.CreateSemester(ctx, req)
			created = sem
			return err
		},
		commit: func(s *state) {
			// 一覧は新しい順
			s.semesters = append([]*model.Semester{cloneSemester(created)}, s.semesters...)
		},
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (w *Workspace) RenameSemester(ctx context.Context, id uuid.UUID, name string) error {
	return w.apply(ctx, "RenameSemester", change{
		optimistic: func(s *state) {
			if _, sem := s.semester(id); sem != nil {
				sem.Name = name
			}
		},
		remote: func(ctx context.Context) error {
			_, err := w.store.RenameSemester(ctx, id, name)
			return err
		},
	})
}

// DeleteSemester は学期とその科目を削除します。confirmed が false なら何もせず ErrNotConfirmed を返します。
func (w *Workspace) DeleteSemester(ctx context.Context, id uuid.UUID, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	return w.apply(ctx, "DeleteSemester", change{
		optimistic: func(s *state) {
			if i, _ := s.semester(id); i >= 0 {
				s.semesters = append(s.semesters[:i], s.semesters[i+1:]...)
			}
		},
		remote: func(ctx context.Context) error {
			return w.store.DeleteSemester(ctx, id)
		},
	})
}

func (w *Workspace) AddCourse(ctx context.Context, semesterID uuid.UUID, req *model.CreateCourseRequest) (*model.Course, error) {
	var created *model.Course
	err := w.apply(ctx, "AddCourse", change{
		remote: func(ctx context.Context) error {
			c, err := w.store.CreateCourse(ctx, semesterID, req)
			created = c
			return err
		},
		commit: func(s *state) {
			if _, sem := s.semester(semesterID); sem != nil {
				cc := *created
				sem.Courses = append(sem.Courses, &cc)
			}
		},
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateCourse は指定されたフィールドだけを楽観的に反映します
func (w *Workspace) UpdateCourse(ctx context.Context, courseID uuid.UUID, req *model.UpdateCourseRequest) error {
	var updated *model.Course
	return w.apply(ctx, "UpdateCourse", change{
		optimistic: func(s *state) {
			_, _, c := s.course(courseID)
			if c == nil {
				return
			}
			if req.Name != nil {
				c.Name = *req.Name
			}
			if req.CreditHours != nil {
				c.CreditHours = *req.CreditHours
			}
			if req.Grade != nil {
				c.Grade = *req.Grade
			}
		},
		remote: func(ctx context.Context) error {
			c, err := w.store.UpdateCourse(ctx, courseID, req)
			updated = c
			return err
		},
		commit: func(s *state) {
			if sem, i, _ := s.course(courseID); sem != nil && updated != nil {
				cc := *updated
				sem.Courses[i] = &cc
			}
		},
	})
}

func (w *Workspace) DeleteCourse(ctx context.Context, courseID uuid.UUID, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	return w.apply(ctx, "DeleteCourse", change{
		optimistic: func(s *state) {
			if sem, i, _ := s.course(courseID); sem != nil {
				sem.Courses = append(sem.Courses[:i], sem.Courses[i+1:]...)
			}
		},
		remote: func(ctx context.Context) error {
			return w.store.DeleteCourse(ctx, courseID)
		},
	})
}

// SetGoal は目標CGPAを設定します。範囲は現在の尺度の最大値までです。
func (w *Workspace) SetGoal(ctx context.Context, target float64) error {
	if maxPts := gpa.MaxPoints(w.Scale()); target < 0 || target > maxPts {
		return fmt.Errorf("workspace.SetGoal: target %.2f outside [0, %.1f]: %w", target, maxPts, model.ErrInvalidInput)
	}
	var saved *model.Goal
	return w.apply(ctx, "SetGoal", change{
		optimistic: func(s *state) {
			if s.goal == nil {
				s.goal = &model.Goal{}
			}
			s.goal.TargetCGPA = target
		},
		remote: func(ctx context.Context) error {
			g, err := w.store.PutGoal(ctx, target)
			saved = g
			return err
		},
		commit: func(s *state) {
			if saved != nil {
				g := *saved
				s.goal = &g
			}
		},
	})
}

func (w *Workspace) ClearGoal(ctx context.Context) error {
	return w.apply(ctx, "ClearGoal", change{
		optimistic: func(s *state) { s.goal = nil },
		remote:     w.store.DeleteGoal,
	})
}

// SetScale は評価尺度を切り替えます。保存済みの成績記号は変換されず、GPAは新しい尺度で再計算されます。
func (w *Workspace) SetScale(ctx context.Context, scale gpa.Scale) error {
	if !scale.Valid() {
		return fmt.Errorf("workspace.SetScale: unknown scale %q: %w", scale, model.ErrInvalidInput)
	}
	return w.apply(ctx, "SetScale", change{
		optimistic: func(s *state) { s.scale = scale },
		remote: func(ctx context.Context) error {
			_, err := w.store.UpdateScale(ctx, scale)
			return err
		},
	})
}
