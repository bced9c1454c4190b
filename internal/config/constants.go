// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "GPA Keep"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort       = ":8080"
	DefaultRequestTimeout   = 60 * time.Second
	DefaultLogLevel         = "info"
	DefaultAuthEnabled      = true
	DefaultAccessTokenTTL   = 24 * time.Hour
	DefaultScanTimeout      = 30 * time.Second
	DefaultScanSoftLimit    = 4 << 20 // 4MB
	DefaultScanHardLimit    = 5 << 20 // 5MB
	DefaultFeedbackCooldown = 60 * time.Second
)
