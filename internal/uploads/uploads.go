// Package uploads stores image files received through multipart forms.
package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"retroboard/internal/model"
)

var (
	AvatarTypes      = []string{"image/jpeg", "image/png", "image/gif"}
	PostPictureTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
)

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Save writes the file into dir under a fresh name and returns that name.
// The content type is sniffed from the data, not taken from the client.
func Save(dir string, fh *multipart.FileHeader, allowed []string) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("read upload: %w", err)
	}
	ctype := http.DetectContentType(head[:n])
	if i := strings.IndexByte(ctype, ';'); i >= 0 {
		ctype = ctype[:i]
	}
	if !contains(allowed, ctype) {
		return "", model.Errorf(model.ErrBadRequest, "unsupported file type %s", ctype)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	name := uuid.NewString() + extensions[ctype]
	out, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if _, err := out.Write(head[:n]); err != nil {
		out.Close()
		return "", fmt.Errorf("write file: %w", err)
	}
	if _, err := io.Copy(out, f); err != nil {
		out.Close()
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close file: %w", err)
	}
	return name, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
