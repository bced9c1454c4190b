//go:generate mockery --name TranscriptService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"fmt"

	"go_gpa_keep/internal/gpa"
	"go_gpa_keep/internal/middleware"
	"go_gpa_keep/internal/model"
	"go_gpa_keep/internal/repository"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const transcriptSheet = "Transcript"

// TranscriptService は成績一覧をスプレッドシートとして出力します
type TranscriptService interface {
	Export(ctx context.Context, userID uuid.UUID) ([]byte, error)
}

type transcriptService struct {
	db           *gorm.DB
	semesterRepo repository.SemesterRepository
	profileRepo  repository.ProfileRepository
}

func NewTranscriptService(db *gorm.DB, semesterRepo repository.SemesterRepository, profileRepo repository.ProfileRepository) TranscriptService {
	return &transcriptService{db: db, semesterRepo: semesterRepo, profileRepo: profileRepo}
}

func (s *transcriptService) Export(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	logger := middleware.GetLogger(ctx)

	rec, err := loadAcademicRecord(ctx, s.db, s.semesterRepo, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	data, err := buildTranscript(rec)
	if err != nil {
		logger.Error("Failed to build transcript", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "成績表の作成に失敗しました。", "", err)
	}
	logger.Info("Transcript exported", "semesters", len(rec.semesters), "bytes", len(data))
	return data, nil
}

// buildTranscript は学期を古い順に並べ、学期ごとのGPA行と累積の集計行を書き出します
func buildTranscript(rec *academicRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), transcriptSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("bold style: %w", err)
	}
	twoDigits, err := f.NewStyle(&excelize.Style{NumFmt: 2, Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("number style: %w", err)
	}

	row := 1
	setRow := func(values ...interface{}) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(transcriptSheet, cell, &values); err != nil {
			return err
		}
		row++
		return nil
	}
	styleRow := func(r, style int) error {
		from, _ := excelize.CoordinatesToCellName(1, r)
		to, _ := excelize.CoordinatesToCellName(5, r)
		return f.SetCellStyle(transcriptSheet, from, to, style)
	}

	if err := setRow("評価尺度", string(rec.scale)); err != nil {
		return nil, err
	}
	if err := setRow("学期", "科目", "単位数", "成績", "ポイント"); err != nil {
		return nil, err
	}
	if err := styleRow(row-1, bold); err != nil {
		return nil, err
	}

	for i := len(rec.semesters) - 1; i >= 0; i-- {
		sem := rec.semesters[i]
		for _, c := range sem.Courses {
			if err := setRow(sem.Name, c.Name, c.CreditHours, string(c.Grade), rec.table[c.Grade]); err != nil {
				return nil, err
			}
		}
		credits := gpa.TotalCredits([][]gpa.Entry{model.Entries(sem.Courses)})
		if err := setRow(sem.Name, "GPA", credits, "", sem.GPA); err != nil {
			return nil, err
		}
		if err := styleRow(row-1, twoDigits); err != nil {
			return nil, err
		}
	}

	if err := setRow("累積", "CGPA", rec.totalCredits(), "", rec.cgpa()); err != nil {
		return nil, err
	}
	if err := styleRow(row-1, twoDigits); err != nil {
		return nil, err
	}

	if err := f.SetColWidth(transcriptSheet, "A", "B", 28); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
