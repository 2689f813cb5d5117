package layout

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	ierr "github.com/ByLCY/proforma/errors"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ImageLoader 读取并解码图片资源。
type ImageLoader interface {
	LoadImage(src string) (image.Image, error)
}

// FileImageLoader 从文件系统读取图片，相对路径基于 BaseDir。
type FileImageLoader struct {
	BaseDir string
}

// Resolve 返回 src 的实际路径。
func (l FileImageLoader) Resolve(src string) string {
	if src == "" || filepath.IsAbs(src) || l.BaseDir == "" {
		return src
	}
	return filepath.Join(l.BaseDir, src)
}

// LoadImage 读取文件，先按文件头判断是否为图片，再解码。
func (l FileImageLoader) LoadImage(src string) (image.Image, error) {
	if strings.TrimSpace(src) == "" {
		return nil, ierr.NewError("empty image path").
			WithHint("未配置图片路径").
			Mark(ierr.ErrResource)
	}
	path := l.Resolve(src)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("无法读取图片 %s", path).
			Mark(ierr.ErrResource)
	}
	if !filetype.IsImage(data) {
		kind, _ := filetype.Match(data)
		return nil, ierr.NewErrorf("%s is not an image (%s)", path, kind.MIME.Value).
			WithHintf("文件 %s 不是图片", path).
			Mark(ierr.ErrResource)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("图片 %s 解码失败", path).
			Mark(ierr.ErrResource)
	}
	return img, nil
}

// CachedLoader 包装另一个 ImageLoader，每个路径只加载一次（失败结果同样缓存）。
// 可在多个 Layout 调用之间共享。
type CachedLoader struct {
	inner   ImageLoader
	mu      sync.Mutex
	entries map[string]cachedImage
}

type cachedImage struct {
	img image.Image
	err error
}

// NewCachedLoader 创建带缓存的加载器。
func NewCachedLoader(inner ImageLoader) *CachedLoader {
	return &CachedLoader{inner: inner, entries: map[string]cachedImage{}}
}

// LoadImage 实现 ImageLoader。
func (c *CachedLoader) LoadImage(src string) (image.Image, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[src]; ok {
		return e.img, e.err
	}
	img, err := c.inner.LoadImage(src)
	c.entries[src] = cachedImage{img: img, err: err}
	return img, err
}

// FlattenAlpha 将带透明度的图片合成到纯色背景上；不透明图片原样返回。
func FlattenAlpha(img image.Image, bg Color) image.Image {
	if img == nil {
		return nil
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.NewUniform(bg.RGBA()), image.Point{}, draw.Src)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}
