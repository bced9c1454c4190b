// cmd/migrate/main.go
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"go_gpa_keep/internal/config"
	"go_gpa_keep/internal/gpa"
	"go_gpa_keep/internal/model"
	"go_gpa_keep/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// テーブルを作成・更新し、-seed 指定時はデモ用のユーザーと成績を投入します。
//
//	go run ./cmd/migrate -config ./configs -seed
func main() {
	configDir := flag.String("config", "../configs", "config.yaml を含むディレクトリ")
	seed := flag.Bool("seed", false, "デモ用のユーザー（demo@example.com / password123）と成績を投入する")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := config.LoadConfig(*configDir); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}
	// DATABASE_URL が設定されていれば設定ファイルより優先する
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = config.Cfg.Database.URL
	}

	db, err := repository.NewDB(dbURL, logger)
	if err != nil {
		os.Exit(1)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := repository.AutoMigrate(db); err != nil {
		slog.Error("Auto migration failed", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("Auto migration completed", slog.Int("models", len(repository.Models())))

	if *seed {
		if err := seedDemo(context.Background(), db); err != nil {
			slog.Error("Seeding failed", slog.Any("error", err))
			os.Exit(1)
		}
	}
}

func seedDemo(ctx context.Context, db *gorm.DB) error {
	users := repository.NewGormUserRepository()
	profiles := repository.NewGormProfileRepository()
	semesters := repository.NewGormSemesterRepository()
	courses := repository.NewGormCourseRepository()

	const email = "demo@example.com"
	if _, err := users.FindByEmail(ctx, db, email); err == nil {
		slog.Info("Demo user already exists, skipping seed", slog.String("email", email))
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user := &model.User{UserID: uuid.New(), Username: "demo", Email: email, PasswordHash: string(hash), IsActive: true}
		if err := users.Create(ctx, tx, user); err != nil {
			return err
		}
		if err := profiles.Upsert(ctx, tx, &model.Profile{UserID: user.UserID, GradingScale: string(gpa.ScaleDefault)}); err != nil {
			return err
		}

		demo := []struct {
			name    string
			courses []*model.Course
		}{
			{"1年前期", []*model.Course{
				{Name: "微分積分学", CreditHours: 3, Grade: gpa.GradeA},
				{Name: "線形代数", CreditHours: 2, Grade: gpa.GradeB},
				{Name: "英語I", CreditHours: 1, Grade: gpa.GradeA},
			}},
			{"1年後期", []*model.Course{
				{Name: "物理学", CreditHours: 3, Grade: gpa.GradeC},
				{Name: "プログラミング", CreditHours: 2, Grade: gpa.GradeA},
			}},
		}
		for _, d := range demo {
			sem := &model.Semester{SemesterID: uuid.New(), UserID: user.UserID, Name: d.name}
			if err := semesters.Create(ctx, tx, sem); err != nil {
				return err
			}
			for _, c := range d.courses {
				c.CourseID = uuid.New()
				c.SemesterID = sem.SemesterID
			}
			if err := courses.CreateMany(ctx, tx, d.courses); err != nil {
				return err
			}
		}
		slog.Info("Demo data seeded", slog.String("email", email), slog.String("user_id", user.UserID.String()))
		return nil
	})
}
