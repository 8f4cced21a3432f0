package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"gestion-cours/backend/config"
	"gestion-cours/backend/internal/dto"
	"gestion-cours/backend/internal/model"
	"gestion-cours/backend/pkg/storage"
)

func newUserFixture(t *testing.T) (*mockStore, UserService, string) {
	t.Helper()
	dir := t.TempDir()
	photos, err := storage.NewPhotoStore(dir)
	if err != nil {
		t.Fatalf("创建头像存储失败: %v", err)
	}

	cfg := &config.Config{
		Upload: config.UploadConfig{
			Dir:         dir,
			AllowedExts: []string{"png", "jpg", "jpeg", "gif"},
		},
	}

	st := newMockStore()
	svc := NewUserService(cfg, st.repo(), photos, zap.NewNop())
	return st, svc, dir
}

func TestCreateUser_Success(t *testing.T) {
	st, svc, _ := newUserFixture(t)

	resp, err := svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		Username: "prof_dupont",
		Password: "motdepasse123",
		Role:     model.RoleProfessor,
		Email:    "dupont@example.fr",
	})
	if err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	if resp.Username != "prof_dupont" || resp.Role != model.RoleProfessor {
		t.Errorf("响应内容错误: %+v", resp)
	}

	// 密码必须以 bcrypt 哈希落库，不能存明文
	stored := st.users[resp.ID]
	if stored.PasswordHash == "motdepasse123" {
		t.Fatalf("密码不应明文存储")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("motdepasse123")); err != nil {
		t.Errorf("存储的哈希无法验证原始密码: %v", err)
	}
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	st, svc, _ := newUserFixture(t)
	st.addUser("alice", model.RoleStudent)

	_, err := svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		Username: "alice",
		Password: "motdepasse123",
		Role:     model.RoleStudent,
	})
	if !errors.Is(err, ErrUsernameExists) {
		t.Errorf("重复用户名期望 ErrUsernameExists，实际 %v", err)
	}
}

func TestCreateUser_InvalidRole(t *testing.T) {
	_, svc, _ := newUserFixture(t)

	_, err := svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		Username: "bob",
		Password: "motdepasse123",
		Role:     "superadmin",
	})
	if !errors.Is(err, ErrInvalidRole) {
		t.Errorf("未知角色期望 ErrInvalidRole，实际 %v", err)
	}
}

func TestListUsers_Sorted(t *testing.T) {
	st, svc, _ := newUserFixture(t)
	st.addUser("chloe", model.RoleStudent)
	st.addUser("alice", model.RoleStudent)
	st.addUser("bob", model.RoleProfessor)

	users, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("列出用户失败: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("期望 3 个用户，实际 %d", len(users))
	}
	if users[0].Username != "alice" || users[1].Username != "bob" || users[2].Username != "chloe" {
		t.Errorf("用户应按用户名排序: %v", users)
	}
}

func TestUpdateProfile_IntroductionOnly(t *testing.T) {
	st, svc, _ := newUserFixture(t)
	user := st.addUser("alice", model.RoleStudent)

	resp, err := svc.UpdateProfile(context.Background(), user.UserID, "Étudiante en L3", nil)
	if err != nil {
		t.Fatalf("更新简介失败: %v", err)
	}
	if resp.Introduction != "Étudiante en L3" {
		t.Errorf("简介未更新: %q", resp.Introduction)
	}
	if resp.Photo != "" {
		t.Errorf("未上传头像时 Photo 应为空")
	}
}

func TestUpdateProfile_WithPhoto(t *testing.T) {
	st, svc, dir := newUserFixture(t)
	user := st.addUser("alice", model.RoleStudent)

	photo := &PhotoUpload{
		Filename: "selfie.PNG",
		Reader:   strings.NewReader("fake-png-bytes"),
	}
	resp, err := svc.UpdateProfile(context.Background(), user.UserID, "bonjour", photo)
	if err != nil {
		t.Fatalf("上传头像失败: %v", err)
	}

	// 文件名固定为 <username>.<小写扩展名>
	if resp.Photo != "alice.png" {
		t.Errorf("期望文件名 alice.png，实际 %s", resp.Photo)
	}
	data, err := os.ReadFile(filepath.Join(dir, "alice.png"))
	if err != nil {
		t.Fatalf("头像文件未写入磁盘: %v", err)
	}
	if string(data) != "fake-png-bytes" {
		t.Errorf("头像内容错误")
	}
}

func TestUpdateProfile_RejectedExtension(t *testing.T) {
	st, svc, dir := newUserFixture(t)
	user := st.addUser("alice", model.RoleStudent)

	photo := &PhotoUpload{
		Filename: "script.exe",
		Reader:   strings.NewReader("MZ"),
	}
	_, err := svc.UpdateProfile(context.Background(), user.UserID, "bonjour", photo)
	if !errors.Is(err, ErrPhotoExtension) {
		t.Fatalf("非法扩展名期望 ErrPhotoExtension，实际 %v", err)
	}

	// 整体拒绝：简介也不应更新，目录不应出现文件
	if st.users[user.UserID].Introduction == "bonjour" {
		t.Errorf("非法头像时简介不应更新")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("非法头像不应写入磁盘")
	}
}

func TestPhotoExt(t *testing.T) {
	cases := []struct {
		filename string
		want     string
	}{
		{"photo.png", "png"},
		{"photo.JPEG", "jpeg"},
		{"archive.tar.gz", "gz"},
		{"sansextension", ""},
		{"pointfinal.", ""},
	}
	for _, tc := range cases {
		if got := photoExt(tc.filename); got != tc.want {
			t.Errorf("photoExt(%q) 期望 %q，实际 %q", tc.filename, tc.want, got)
		}
	}
}
