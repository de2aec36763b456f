package preview

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrEmptyArchive = errors.New("preview: project has no code to export")

// Archive writes a zip of the project to w. index.html, styles.css and
// index.js are only included when their source is not blank.
func Archive(w io.Writer, name string, code Code) error {
	if code.IsBlank() {
		return ErrEmptyArchive
	}

	zw := zip.NewWriter(w)
	files := []struct {
		name    string
		content string
		skip    bool
	}{
		{"index.html", CompletePage(name, code.HTML), strings.TrimSpace(code.HTML) == ""},
		{"styles.css", code.CSS, strings.TrimSpace(code.CSS) == ""},
		{"index.js", code.JavaScript, strings.TrimSpace(code.JavaScript) == ""},
	}
	for _, f := range files {
		if f.skip {
			continue
		}
		fw, err := zw.Create(f.name)
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", f.name, err)
		}
		if _, err := io.WriteString(fw, f.content); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.name, err)
		}
	}
	return zw.Close()
}

// Filename is the download name for a project archive.
func Filename(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', ':', '*', '?', '<', '>', '|':
			return '_'
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, name)
	if name == "" {
		name = "project"
	}
	return name + ".zip"
}
