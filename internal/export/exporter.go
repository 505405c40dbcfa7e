// Package export 把后端导出的用户数据写成本地 JSON 文件
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FailedMessage 导出失败时的提示
const FailedMessage = "Failed to download data. Please try again."

// Source 导出数据来源
type Source interface {
	Export(ctx context.Context, userID int) (json.RawMessage, error)
}

// Exporter 数据导出器
type Exporter struct {
	src    Source
	dir    string
	userID int
	now    func() time.Time
}

// NewExporter 创建导出器，dir 为空时写到当前目录
func NewExporter(src Source, dir string, userID int) *Exporter {
	if dir == "" {
		dir = "."
	}
	return &Exporter{src: src, dir: dir, userID: userID, now: time.Now}
}

// FileName 导出文件名，日期取 UTC
func FileName(t time.Time) string {
	return fmt.Sprintf("moodnestai_data_%s.json", t.UTC().Format("2006-01-02"))
}

// Export 拉取并写入文件，返回文件路径
func (e *Exporter) Export(ctx context.Context) (string, error) {
	doc, err := e.src.Export(ctx, e.userID)
	if err != nil {
		return "", fmt.Errorf("fetch export: %w", err)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, doc, "", "  "); err != nil {
		return "", fmt.Errorf("format export: %w", err)
	}

	path := filepath.Join(e.dir, FileName(e.now()))
	if err := writeFileAtomic(path, pretty.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

// writeFileAtomic 先写临时文件再重命名，避免留下半个文件
func writeFileAtomic(path string, data []byte, mode fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tmp_export_*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if _, err := tmp.Write([]byte("\n")); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
