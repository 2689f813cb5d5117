package renderer

import (
	"os"
	"path/filepath"

	ierr "github.com/ByLCY/proforma/errors"
)

// WriteFile 原子地写出文件：先写入同目录下的临时文件并落盘，再重命名到 path。
// 失败时不会留下写了一半的目标文件。
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return outputError(err, path)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return outputError(err, path)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return outputError(err, path)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return outputError(err, path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return outputError(err, path)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return outputError(err, path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return outputError(err, path)
	}
	return nil
}

func outputError(err error, path string) error {
	return ierr.WithError(err).
		WithHintf("无法写入输出文件 %s", path).
		Mark(ierr.ErrOutput)
}
