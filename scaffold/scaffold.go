// Package scaffold provides the embedded starter files written by the
// jesssits init command: a local content file and an example environment.
package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// Templates contains all scaffold template files.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

// Data holds the template variables passed to every scaffold template.
type Data struct {
	SiteName string
	Email    string
	SiteURL  string
}

// Write renders every template into dir and returns the paths it created.
// It refuses to overwrite existing files.
func Write(dir string, data Data) ([]string, error) {
	const root = "templates"
	var created []string
	err := fs.WalkDir(Templates, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		outPath := strings.TrimSuffix(filepath.Join(dir, relPath), ".tmpl")
		if filepath.Base(outPath) == "dotenv" {
			outPath = filepath.Join(filepath.Dir(outPath), ".env.example")
		}

		if d.IsDir() {
			return os.MkdirAll(outPath, 0o755)
		}
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("scaffold: %s already exists", outPath)
		}

		content, err := Templates.ReadFile(path)
		if err != nil {
			return fmt.Errorf("scaffold: read %s: %w", path, err)
		}
		tmpl, err := template.New(filepath.Base(path)).Parse(string(content))
		if err != nil {
			return fmt.Errorf("scaffold: parse template %s: %w", path, err)
		}

		f, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			return fmt.Errorf("scaffold: create %s: %w", outPath, err)
		}
		defer f.Close()

		if err := tmpl.Execute(f, data); err != nil {
			return fmt.Errorf("scaffold: execute template %s: %w", path, err)
		}
		created = append(created, outPath)
		return nil
	})
	return created, err
}
