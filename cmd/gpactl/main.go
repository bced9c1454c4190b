// cmd/gpactl/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"go_gpa_keep/internal/apiclient"
	"go_gpa_keep/internal/gpa"
	"go_gpa_keep/internal/model"
	"go_gpa_keep/internal/workspace"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

const usage = `gpactl は GPA Keep API のコマンドラインクライアントです。

使い方:
  gpactl [flags] <command> [args]

コマンド:
  login                              メールアドレスとパスワードでログインしトークンを表示
  summary                            累積GPA・学期ごとのGPA・目標の進捗を表示
  add-semester <name>                学期を追加
  rename-semester <semester_id> <name>
  rm-semester <semester_id>          学期と科目を削除（-yes が必要）
  add-course <semester_id> <name> <credits> <grade>
  set-grade <course_id> <grade>
  rm-course <course_id>              科目を削除（-yes が必要）
  scale [name]                       評価尺度の表示・変更
  goal [target|clear]                目標累積GPAの表示・設定・解除
  whatif <credits:grade>...          仮の科目を加えた場合の累積GPA（例: 3:A 2:B）
  scan <image> [semester_name]       成績表画像を読み取り、semester_name があれば学期として登録
  transcript <file.xlsx>             成績表をExcelで保存
  feedback <subject> <text>          要望を送信

環境変数:
  GPA_API_URL   APIのベースURL（既定: http://localhost:8080）
  GPA_TOKEN     アクセストークン
  GPA_USER_ID   認証を無効にしたサーバーで使うユーザーID

flags:
`

func main() {
	fs := flag.NewFlagSet("gpactl", flag.ExitOnError)
	baseURL := fs.String("url", envOr("GPA_API_URL", "http://localhost:8080"), "APIのベースURL")
	token := fs.String("token", os.Getenv("GPA_TOKEN"), "アクセストークン")
	userID := fs.String("user", os.Getenv("GPA_USER_ID"), "開発用のユーザーID（X-User-ID）")
	yes := fs.Bool("yes", false, "削除の確認を省略する")
	verbose := fs.Bool("v", false, "APIの呼び出しをログに出す")
	timeout := fs.Duration("timeout", 60*time.Second, "コマンド全体のタイムアウト")
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level, TimeFormat: time.Kitchen}))

	opts := []apiclient.Option{apiclient.WithLogger(logger), apiclient.WithToken(*token)}
	if *userID != "" {
		id, err := uuid.Parse(*userID)
		if err != nil {
			fatal(fmt.Errorf("invalid -user: %w", err))
		}
		opts = append(opts, apiclient.WithDevUser(id))
	}
	client := apiclient.New(*baseURL, opts...)

	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	app := &cli{client: client, ws: workspace.New(client, logger), out: os.Stdout, confirmed: *yes}
	if err := app.run(ctx, fs.Arg(0), fs.Args()[1:]); err != nil {
		fatal(err)
	}
}

type cli struct {
	client    *apiclient.Client
	ws        *workspace.Workspace
	out       io.Writer
	confirmed bool
}

func (c *cli) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return c.login(ctx)
	case "feedback":
		if len(args) != 2 {
			return errUsage
		}
		if _, err := c.client.SubmitFeedback(ctx, args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "要望を送信しました。ありがとうございます。")
		return nil
	case "transcript":
		if len(args) != 1 {
			return errUsage
		}
		return c.transcript(ctx, args[0])
	}

	// 以降は保存済みの記録を読み込んでから操作する
	if err := c.ws.Load(ctx); err != nil {
		return err
	}

	switch cmd {
	case "summary":
		c.printSummary()
		return nil
	case "add-semester":
		if len(args) != 1 {
			return errUsage
		}
		sem, err := c.ws.AddSemester(ctx, &model.CreateSemesterRequest{Name: args[0]})
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "学期を追加しました: %s\n", sem.SemesterID)
		return nil
	case "rename-semester":
		if len(args) != 2 {
			return errUsage
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return err
		}
		return c.ws.RenameSemester(ctx, id, args[1])
	case "rm-semester":
		if len(args) != 1 {
			return errUsage
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return err
		}
		return c.ws.DeleteSemester(ctx, id, c.confirmed)
	case "add-course":
		return c.addCourse(ctx, args)
	case "set-grade":
		if len(args) != 2 {
			return errUsage
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return err
		}
		grade := gpa.Grade(strings.ToUpper(args[1]))
		if err := c.ws.UpdateCourse(ctx, id, &model.UpdateCourseRequest{Grade: &grade}); err != nil {
			return err
		}
		c.printSummary()
		return nil
	case "rm-course":
		if len(args) != 1 {
			return errUsage
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return err
		}
		return c.ws.DeleteCourse(ctx, id, c.confirmed)
	case "scale":
		return c.scale(ctx, args)
	case "goal":
		return c.goal(ctx, args)
	case "whatif":
		return c.whatIf(args)
	case "scan":
		return c.scan(ctx, args)
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

var errUsage = errors.New("invalid arguments, see gpactl -h")

func (c *cli) login(ctx context.Context) error {
	var email string
	fmt.Fprint(os.Stderr, "Email: ")
	if _, err := fmt.Fscanln(os.Stdin, &email); err != nil {
		return err
	}
	fmt.Fprint(os.Stderr, "Password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	resp, err := c.client.Login(ctx, email, string(pw))
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "ログインしました（有効期限 %s）。以下を GPA_TOKEN に設定してください。\n", time.Duration(resp.ExpiresIn)*time.Second)
	fmt.Fprintln(c.out, resp.AccessToken)
	return nil
}

func (c *cli) printSummary() {
	s := c.ws.Summary()
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "評価尺度\t%s\n", s.GradingScale)
	fmt.Fprintf(tw, "累積GPA\t%s\n", s.CGPADisplay)
	fmt.Fprintf(tw, "取得単位\t%s\n", s.TotalCreditsDisplay)
	if s.Goal != nil {
		status := "未達成"
		if s.Goal.Reached {
			status = "達成"
		}
		fmt.Fprintf(tw, "目標\t%s（差 %s, 進捗 %s%%, %s）\n", gpa.Format2(s.Goal.Target), s.Goal.DifferenceDisplay, s.Goal.PercentDisplay, status)
	}
	fmt.Fprintln(tw)

	semesters := c.ws.Semesters()
	for i, sum := range s.Semesters {
		fmt.Fprintf(tw, "%s\tGPA %s\t%s単位\t%s\n", sum.Name, sum.GPADisplay, gpa.Format1(sum.Credits), sum.SemesterID)
		for _, course := range semesters[i].Courses {
			fmt.Fprintf(tw, "  %s\t%s\t%s単位\t%s\n", course.Name, course.Grade, gpa.Format1(course.CreditHours), course.CourseID)
		}
	}
	tw.Flush()

	for _, m := range s.MismatchedCourses {
		fmt.Fprintf(os.Stderr, "警告: %s の成績「%s」は評価尺度 %s にないため0ポイントとして計算しています\n", m.Name, m.Grade, s.GradingScale)
	}
}

func (c *cli) addCourse(ctx context.Context, args []string) error {
	if len(args) != 4 {
		return errUsage
	}
	semID, err := uuid.Parse(args[0])
	if err != nil {
		return err
	}
	credits, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("credits: %w", err)
	}
	course, err := c.ws.AddCourse(ctx, semID, &model.CreateCourseRequest{
		Name:        args[1],
		CreditHours: credits,
		Grade:       gpa.Grade(strings.ToUpper(args[3])),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "科目を追加しました: %s\n", course.CourseID)
	c.printSummary()
	return nil
}

func (c *cli) scale(ctx context.Context, args []string) error {
	if len(args) == 0 {
		current := c.ws.Scale()
		for _, s := range gpa.Scales() {
			mark := " "
			if s == current {
				mark = "*"
			}
			fmt.Fprintf(c.out, "%s %-20s 最大 %s\n", mark, s, gpa.Format1(gpa.MaxPoints(s)))
		}
		return nil
	}
	scale, err := gpa.ParseScale(strings.ToUpper(args[0]))
	if err != nil {
		return err
	}
	if err := c.ws.SetScale(ctx, scale); err != nil {
		return err
	}
	c.printSummary()
	return nil
}

func (c *cli) goal(ctx context.Context, args []string) error {
	switch {
	case len(args) == 0:
		g := c.ws.Goal()
		if g == nil {
			fmt.Fprintln(c.out, "目標は設定されていません。")
			return nil
		}
		fmt.Fprintf(c.out, "目標累積GPA: %s\n", gpa.Format2(g.TargetCGPA))
		return nil
	case args[0] == "clear":
		return c.ws.ClearGoal(ctx)
	default:
		target, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("target: %w", err)
		}
		if err := c.ws.SetGoal(ctx, target); err != nil {
			return err
		}
		c.printSummary()
		return nil
	}
}

// whatIf は "3:A" 形式の引数を仮の科目として下書きに追加し、予測を表示します
func (c *cli) whatIf(args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	pad := c.ws.Scratchpad()
	for i, arg := range args {
		creditsStr, gradeStr, ok := strings.Cut(arg, ":")
		if !ok {
			return fmt.Errorf("%q: expected credits:grade: %w", arg, errUsage)
		}
		credits, err := strconv.ParseFloat(creditsStr, 64)
		if err != nil {
			return fmt.Errorf("%q: %w", arg, err)
		}
		course := pad.Add(fmt.Sprintf("科目%d", i+1))
		if err := pad.Update(course.ID, credits, gpa.Grade(strings.ToUpper(gradeStr))); err != nil {
			return err
		}
	}

	res := pad.Project()
	fmt.Fprintf(c.out, "現在の累積GPA: %s（%s単位）\n", gpa.Format2(res.CurrentCGPA), gpa.Format1(res.CurrentCredits))
	fmt.Fprintf(c.out, "予測累積GPA:   %s（%s単位）\n", res.ProjectedDisplay, gpa.Format1(res.TotalCreditsAfter))
	fmt.Fprintf(c.out, "変化:          %s\n", res.ChangeDisplay)
	return nil
}

func (c *cli) scan(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errUsage
	}
	image, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	res, err := c.client.Scan(ctx, filepath.Base(args[0]), image)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	for _, sc := range res.Courses {
		credits := "?"
		if sc.CreditHours != nil {
			credits = gpa.Format1(*sc.CreditHours)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", sc.Name, credits, sc.Grade)
	}
	tw.Flush()

	if len(args) == 2 {
		// 不完全な行はサーバー側で取り込まれない
		sem, err := c.ws.AddSemester(ctx, &model.CreateSemesterRequest{Name: args[1], Courses: res.Courses})
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "%d科目を学期「%s」として登録しました。\n", len(sem.Courses), sem.Name)
	}
	return nil
}

func (c *cli) transcript(ctx context.Context, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.client.Transcript(ctx, f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "成績表を保存しました: %s\n", path)
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// fatal はAPIのエラーであればメッセージとコードを表示して終了します
func fatal(err error) {
	var appErr *model.AppError
	switch {
	case errors.Is(err, workspace.ErrNotConfirmed):
		fmt.Fprintln(os.Stderr, "削除するには -yes を指定してください。")
	case errors.As(err, &appErr):
		fmt.Fprintf(os.Stderr, "エラー: %s (%s)\n", appErr.Detail.Message, appErr.Detail.Code)
		if appErr.Detail.RetryAfter > 0 {
			fmt.Fprintf(os.Stderr, "%d秒後に再試行してください。\n", appErr.Detail.RetryAfter)
		}
	default:
		fmt.Fprintf(os.Stderr, "エラー: %v\n", err)
	}
	os.Exit(1)
}
