package migrate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nibzard/taskmigrate/internal/datadir"
	"github.com/nibzard/taskmigrate/internal/logging"
	"github.com/nibzard/taskmigrate/internal/store"
)

func runOpts(baseDir string, out *bytes.Buffer) Options {
	return Options{BaseDir: baseDir, Out: out, Logger: logging.Discard()}
}

func readUsers(t *testing.T, path string) store.Users {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read users file: %v", err)
	}
	var users store.Users
	if err := json.Unmarshal(data, &users); err != nil {
		t.Fatalf("parse users file: %v", err)
	}
	return users
}

func TestRunFreshDirectory(t *testing.T) {
	base := t.TempDir()

	var out bytes.Buffer
	summary, err := Run(context.Background(), runOpts(base, &out))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !summary.Active.Skipped || !summary.Completed.Skipped {
		t.Errorf("expected both task files skipped, got %+v / %+v", summary.Active, summary.Completed)
	}
	for _, path := range []string{datadir.TasksPath(base), datadir.CompletedPath(base)} {
		if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("%s should not be created", path)
		}
	}

	users := readUsers(t, datadir.UsersPath(base))
	if len(users) != 1 {
		t.Fatalf("users: got %d entries, want 1", len(users))
	}
	u, ok := users[AccountName]
	if !ok {
		t.Fatalf("users file missing %s", AccountName)
	}
	if !u.IsAdmin {
		t.Error("IsAdmin: got false, want true")
	}
	if u.Password != "531020" || u.Avatar != "😊" || u.CreatedAt != "2025-08-27T00:00:00" {
		t.Errorf("unexpected account: %+v", u)
	}

	want := strings.Repeat("=", 50) + "\n" +
		"数据迁移脚本 - 将现有任务归属到 chenzhan 账户\n" +
		strings.Repeat("=", 50) + "\n" +
		"\n✅ 已创建用户数据库文件: " + datadir.UsersPath(base) + "\n" +
		"  - 默认管理员账户: chenzhan / 531020\n" +
		"\n🎉 数据迁移完成！\n" +
		"\n使用以下账户登录：\n" +
		"  用户名: chenzhan\n" +
		"  密码: 531020\n"
	if out.String() != want {
		t.Errorf("output mismatch:\ngot:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestRunBackfillsBothFiles(t *testing.T) {
	base := t.TempDir()
	if err := os.MkdirAll(datadir.DirPath(base), 0755); err != nil {
		t.Fatal(err)
	}
	writeTasks(t, datadir.TasksPath(base), `{"1": {"title": "Buy milk"}, "2": {"title": "Old", "username": "alice"}}`)
	writeTasks(t, datadir.CompletedPath(base), `{"7": {"title": "Done"}}`)

	var out bytes.Buffer
	summary, err := Run(context.Background(), runOpts(base, &out))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Active.Total != 2 || summary.Active.Backfilled != 1 {
		t.Errorf("active: got %+v", summary.Active)
	}
	if summary.Completed.Total != 1 || summary.Completed.Backfilled != 1 {
		t.Errorf("completed: got %+v", summary.Completed)
	}

	active := readJSON(t, datadir.TasksPath(base))
	if active["1"]["username"] != "chenzhan" || active["1"]["title"] != "Buy milk" {
		t.Errorf("record 1: got %v", active["1"])
	}
	if active["2"]["username"] != "alice" {
		t.Errorf("record 2: got %v", active["2"])
	}
	completed := readJSON(t, datadir.CompletedPath(base))
	if completed["7"]["username"] != "chenzhan" {
		t.Errorf("completed record 7: got %v", completed["7"])
	}

	for _, want := range []string{"✅ 已更新 2 个活动任务", "✅ 已更新 1 个已完成任务", "🎉 数据迁移完成！"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunOverwritesUsersFile(t *testing.T) {
	base := t.TempDir()
	if err := os.MkdirAll(datadir.DirPath(base), 0755); err != nil {
		t.Fatal(err)
	}
	usersPath := datadir.UsersPath(base)
	writeTasks(t, usersPath, `{"bob": {"password": "x", "avatar": "", "created_at": "", "is_admin": false}}`)

	if _, err := Run(context.Background(), runOpts(base, &bytes.Buffer{})); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	users := readUsers(t, usersPath)
	if _, ok := users["bob"]; ok {
		t.Error("existing users should be replaced, not merged")
	}
	if len(users) != 1 {
		t.Errorf("users: got %d entries, want 1", len(users))
	}
}

func TestRunStopsAtFirstError(t *testing.T) {
	base := t.TempDir()
	if err := os.MkdirAll(datadir.DirPath(base), 0755); err != nil {
		t.Fatal(err)
	}
	writeTasks(t, datadir.TasksPath(base), `["not", "an", "object"]`)
	writeTasks(t, datadir.CompletedPath(base), `{"1": {}}`)

	_, err := Run(context.Background(), runOpts(base, &bytes.Buffer{}))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var se *store.ShapeError
	if !errors.As(err, &se) {
		t.Errorf("expected shape error, got %v", err)
	}

	data, _ := os.ReadFile(datadir.CompletedPath(base))
	if string(data) != `{"1": {}}` {
		t.Errorf("completed file should be untouched after earlier failure, got %q", data)
	}
	if _, err := os.Stat(datadir.UsersPath(base)); !errors.Is(err, os.ErrNotExist) {
		t.Error("users file should not be created after earlier failure")
	}
}

func TestRunSeedFailureKeepsBackfill(t *testing.T) {
	base := t.TempDir()
	if err := os.MkdirAll(datadir.UsersPath(base), 0755); err != nil {
		t.Fatal(err)
	}
	writeTasks(t, datadir.TasksPath(base), `{"1": {"title": "Buy milk"}}`)

	_, err := Run(context.Background(), runOpts(base, &bytes.Buffer{}))
	if err == nil {
		t.Fatal("expected error when users path is a directory")
	}
	if !strings.Contains(err.Error(), "seed users") {
		t.Errorf("expected seed users error, got %v", err)
	}

	active := readJSON(t, datadir.TasksPath(base))
	if active["1"]["username"] != "chenzhan" {
		t.Error("task backfill should remain applied after seed failure")
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	base := t.TempDir()
	_, err := Run(ctx, runOpts(base, &bytes.Buffer{}))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := os.Stat(datadir.DirPath(base)); !errors.Is(err, os.ErrNotExist) {
		t.Error("cancelled run should not create the data directory")
	}
}

func TestSeedUsersCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "users.json")

	var out bytes.Buffer
	if err := SeedUsers(path, NewReporter(&out), logging.Discard()); err != nil {
		t.Fatalf("SeedUsers failed: %v", err)
	}
	users := readUsers(t, path)
	if len(users) != 1 || !users[AccountName].IsAdmin {
		t.Errorf("unexpected users: %+v", users)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `"avatar": "😊"`) {
		t.Errorf("avatar should be written verbatim:\n%s", data)
	}
	if !strings.Contains(out.String(), path) {
		t.Errorf("confirmation should name the path, got %q", out.String())
	}
}

func TestReporterFailed(t *testing.T) {
	var out bytes.Buffer
	NewReporter(&out).Failed(errors.New("disk full"))
	if out.String() != "\n❌ 迁移失败: disk full\n" {
		t.Errorf("got %q", out.String())
	}
}
