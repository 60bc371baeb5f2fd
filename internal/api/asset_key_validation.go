package api

import (
	"path"
	"strings"
	"unicode/utf8"
)

const assetPrefix = "assets/"

var allowedImageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// isValidAssetObjectKey 仅接受本服务生成的图片对象键。
func isValidAssetObjectKey(key string) bool {
	if key == "" || !utf8.ValidString(key) {
		return false
	}
	if !strings.HasPrefix(key, assetPrefix) {
		return false
	}
	if strings.Contains(key, "..") || strings.Contains(key, "\\") || strings.Contains(key, "//") {
		return false
	}
	if len(key) > 200 {
		return false
	}
	_, ok := allowedImageTypes[strings.ToLower(path.Ext(key))]
	return ok
}

// imageExtension returns the normalised extension of filename, or "" when
// it is not an accepted image type.
func imageExtension(filename string) string {
	ext := strings.ToLower(path.Ext(strings.TrimSpace(filename)))
	if ext == ".jpeg" {
		ext = ".jpg"
	}
	if _, ok := allowedImageTypes[ext]; !ok {
		return ""
	}
	return ext
}
