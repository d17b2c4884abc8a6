package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jacokyle01/critical-moves/models"
)

// Options selects the optional outputs. JSON is always written.
type Options struct {
	HTML    bool
	Prompts bool
}

// WriteFiles writes the selected reports into dir and returns their paths.
func WriteFiles(dir string, r models.Report, opts Options) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	outputs := []struct {
		name    string
		enabled bool
		write   func(io.Writer, models.Report) error
	}{
		{JSONFile, true, WriteJSON},
		{HTMLFile, opts.HTML, WriteHTML},
		{PromptsFile, opts.Prompts, WritePrompts},
	}

	var written []string
	for _, out := range outputs {
		if !out.enabled {
			continue
		}
		path := filepath.Join(dir, out.name)
		if err := writeFile(path, r, out.write); err != nil {
			return written, fmt.Errorf("write %s: %w", out.name, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func writeFile(path string, r models.Report, write func(io.Writer, models.Report) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile loads the JSON report from dir.
func ReadFile(dir string) (models.Report, error) {
	f, err := os.Open(filepath.Join(dir, JSONFile))
	if err != nil {
		return models.Report{}, err
	}
	defer f.Close()
	return ReadJSON(f)
}
