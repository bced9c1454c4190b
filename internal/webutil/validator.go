package webutil

import (
	"log"
	"reflect"
	"strings"

	"go_gpa_keep/internal/gpa"

	"github.com/go-playground/locales/ja" // 日本語ロケール
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ja_translations "github.com/go-playground/validator/v10/translations/ja" // 日本語翻訳
)

// Validator はアプリケーション全体で共有されるバリデータインスタンスです。
var Validator *validator.Validate

// Trans はエラーメッセージを翻訳するためのトランスレータです。
var Trans ut.Translator

var fieldNameTranslations = map[string]string{
	"username":         "ユーザー名",
	"email":            "メールアドレス",
	"password":         "パスワード",
	"current_password": "現在のパスワード",
	"new_password":     "新しいパスワード",
	"token":            "トークン",
	"name":             "名前",
	"credit_hours":     "単位数",
	"grade":            "成績",
	"target_cgpa":      "目標CGPA",
	"grading_scale":    "評価尺度",
	"current_cgpa":     "現在のCGPA",
	"current_credits":  "取得済み単位数",
	"subject":          "件名",
	"suggestion":       "内容",
}

func translatedField(fe validator.FieldError) string {
	if name, ok := fieldNameTranslations[fe.Field()]; ok {
		return name
	}
	return fe.Field()
}

// validateGrade は既知の成績記号かを検証します。尺度ごとの妥当性はサービス層で確認します。
func validateGrade(fl validator.FieldLevel) bool {
	return gpa.Grade(fl.Field().String()).Valid()
}

func validateScale(fl validator.FieldLevel) bool {
	_, err := gpa.ParseScale(fl.Field().String())
	return err == nil
}

func init() {
	Validator = validator.New(validator.WithRequiredStructEnabled())

	// JSONタグからフィールド名を取得するように設定
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := Validator.RegisterValidation("grade", validateGrade); err != nil {
		log.Fatal(err)
	}
	if err := Validator.RegisterValidation("scale", validateScale); err != nil {
		log.Fatal(err)
	}

	japanese := ja.New()
	uni := ut.New(japanese, japanese)
	var found bool
	Trans, found = uni.GetTranslator("ja")
	if !found {
		log.Fatal("translator not found")
	}

	if err := ja_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	// registerTranslation はフィールド名を日本語に置き換えてメッセージを登録するヘルパー
	registerTranslation := func(tag string, msg string, withParam bool) {
		Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			var t string
			if withParam {
				t, _ = ut.T(tag, translatedField(fe), fe.Param())
			} else {
				t, _ = ut.T(tag, translatedField(fe))
			}
			return t
		})
	}

	registerTranslation("required", "{0}は必須項目です。", false)
	registerTranslation("email", "{0}は有効なメールアドレス形式ではありません。", false)
	registerTranslation("min", "{0}は{1}文字以上で入力してください。", true)
	registerTranslation("max", "{0}は{1}文字以下で入力してください。", true)
	registerTranslation("gt", "{0}は{1}より大きい値を入力してください。", true)
	registerTranslation("gte", "{0}は{1}以上の値を入力してください。", true)
	registerTranslation("lte", "{0}は{1}以下の値を入力してください。", true)
	registerTranslation("nefield", "{0}は現在のパスワードと異なるものを指定してください。", false)
	registerTranslation("grade", "{0}は有効な成績記号ではありません。", false)
	registerTranslation("scale", "{0}は有効な評価尺度ではありません。", false)
}
