package avatar

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/nfnt/resize"
)

var ErrUnsupportedImage = errors.New("unsupported image format")

// Thumbnail 解码图片并等比缩放到 size×size 以内，按原格式（gif 转 png）重新编码
// 返回编码后的数据和文件扩展名
func Thumbnail(r io.Reader, size uint) ([]byte, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	thumb := resize.Thumbnail(size, size, img, resize.Lanczos3)

	var buf bytes.Buffer
	ext := ".png"
	switch format {
	case "jpeg":
		ext = ".jpg"
		err = jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 90})
	default:
		err = png.Encode(&buf, thumb)
	}
	if err != nil {
		return nil, "", fmt.Errorf("encode avatar failed: %w", err)
	}
	return buf.Bytes(), ext, nil
}

// Save 写入 dir/name，目录不存在时创建
func Save(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir failed: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write avatar failed: %w", err)
	}
	return path, nil
}
