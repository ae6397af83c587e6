package respond

import (
	"regexp"
)

var (
	// cloudinary://<api_key>:<api_secret>@<cloud_name>
	// 注意: DSN パターンより先に適用する（より具体的なパターンから）
	cloudinaryURLPattern = regexp.MustCompile(`cloudinary://[^\s@]+@`)

	// データベースパスワードパターン（postgres DSN と mongodb(+srv) URI）
	dbPasswordPattern = regexp.MustCompile(`://([^:/\s]+):([^@\s]+)@`)

	// api_secret=... / api_key=... / password=... のクエリ・キーバリュー形式
	secretParamPattern = regexp.MustCompile(`(?i)(api_secret|api_key|password|token)=([^&\s:]+)`)

	// Bearer トークン
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[a-z0-9\-_.]+`)
)

// SanitizeError は機密情報をマスクしたエラーメッセージを返す
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()

	// 順序重要: より具体的なパターンから適用
	msg = cloudinaryURLPattern.ReplaceAllString(msg, "cloudinary://****@")
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = secretParamPattern.ReplaceAllString(msg, "$1=****")
	msg = bearerPattern.ReplaceAllString(msg, "Bearer ****")

	return msg
}
