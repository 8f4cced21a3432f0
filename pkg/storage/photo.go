package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// PhotoStore 头像文件存储（本地磁盘）
// 文件名固定为 <username>.<ext>，同一用户重新上传即覆盖
type PhotoStore struct {
	dir string
}

// NewPhotoStore 创建头像存储，确保目录存在
func NewPhotoStore(dir string) (*PhotoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %w", err)
	}
	return &PhotoStore{dir: dir}, nil
}

// 用户名中仅保留安全字符，防止路径穿越
var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SafeFilename 根据用户名和扩展名生成存储文件名
func SafeFilename(username, ext string) string {
	name := unsafeChars.ReplaceAllString(username, "_")
	return name + "." + strings.ToLower(ext)
}

// Save 将头像内容写入 <dir>/<username>.<ext>，返回存储文件名
func (s *PhotoStore) Save(username, ext string, r io.Reader) (string, error) {
	filename := SafeFilename(username, ext)

	f, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", fmt.Errorf("创建头像文件失败: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("写入头像文件失败: %w", err)
	}

	return filename, nil
}
