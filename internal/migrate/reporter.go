package migrate

import (
	"fmt"
	"io"
	"strings"
)

const untitled = "未命名"

// Reporter writes the operator-facing progress messages.
type Reporter struct {
	w io.Writer
}

// NewReporter creates a reporter writing to w. A nil writer discards output.
func NewReporter(w io.Writer) *Reporter {
	if w == nil {
		w = io.Discard
	}
	return &Reporter{w: w}
}

func (r *Reporter) printf(format string, args ...any) {
	fmt.Fprintf(r.w, format, args...)
}

// Banner prints the run header.
func (r *Reporter) Banner() {
	rule := strings.Repeat("=", 50)
	r.printf("%s\n数据迁移脚本 - 将现有任务归属到 %s 账户\n%s\n", rule, AccountName, rule)
}

// StartFile announces processing of a task file.
func (r *Reporter) StartFile(kind Kind, path string) {
	switch kind {
	case KindCompleted:
		r.printf("\n正在处理已完成任务文件: %s\n", path)
	default:
		r.printf("正在处理活动任务文件: %s\n", path)
	}
}

// Backfilled reports a single record assigned to username.
func (r *Reporter) Backfilled(id, title, username string) {
	r.printf("  ✓ 任务 %s: %s - 已归属到 %s\n", id, title, username)
}

// FileDone prints the per-file summary with the total record count.
func (r *Reporter) FileDone(kind Kind, total int) {
	r.printf("✅ 已更新 %d 个%s\n", total, kind.label())
}

// UsersCreated confirms the users file and the seeded credentials.
func (r *Reporter) UsersCreated(path string) {
	r.printf("\n✅ 已创建用户数据库文件: %s\n", path)
	r.printf("  - 默认管理员账户: %s / %s\n", AccountName, AccountPassword)
}

// Completed prints the closing block with the login credentials.
func (r *Reporter) Completed() {
	r.printf("\n🎉 数据迁移完成！\n")
	r.printf("\n使用以下账户登录：\n")
	r.printf("  用户名: %s\n", AccountName)
	r.printf("  密码: %s\n", AccountPassword)
}

// Failed prints the top-level failure message.
func (r *Reporter) Failed(err error) {
	r.printf("\n❌ 迁移失败: %v\n", err)
}
