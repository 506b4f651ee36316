package types

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"wikiparse/internal/pageref"
)

// PageExtensions are the file extensions treated as wikitext pages
var PageExtensions = []string{".ftml", ".txt"}

const frontMatterFence = "---"

// PageFile represents a page being processed
type PageFile struct {
	InputPath     string
	Filename      string
	OutputRelPath string
	Content       string
	Metadata      map[string]interface{}
	Includes      []pageref.PageRef // pages transcluded into Content
}

// NewPageFile creates a new PageFile instance
func NewPageFile(inputPath, filename, outputRelPath string) *PageFile {
	return &PageFile{
		InputPath:     inputPath,
		Filename:      filename,
		OutputRelPath: outputRelPath,
		Metadata:      make(map[string]interface{}),
	}
}

// IsPageFile reports whether filename has one of PageExtensions.
func IsPageFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, pageExt := range PageExtensions {
		if ext == pageExt {
			return true
		}
	}
	return false
}

// Load reads the file and splits off its front matter
func (f *PageFile) Load() error {
	data, err := os.ReadFile(f.InputPath)
	if err != nil {
		return err
	}

	content, metadata, err := ParseFrontMatter(string(data))
	if err != nil {
		return fmt.Errorf("%s: %w", f.InputPath, err)
	}
	f.Content = content
	f.Metadata = metadata
	return nil
}

// Name is the filename without its extension
func (f *PageFile) Name() string {
	return strings.TrimSuffix(f.Filename, filepath.Ext(f.Filename))
}

// Title returns the "title" front matter field, or the page name.
func (f *PageFile) Title() string {
	if title, ok := f.Metadata["title"].(string); ok && title != "" {
		return title
	}
	return f.Name()
}

// GetOutputPath returns where the output with the given suffix is written,
// for example ".tree.json".
func (f *PageFile) GetOutputPath(outputDir, suffix string) string {
	return filepath.Join(outputDir, f.OutputRelPath, f.Name()+suffix)
}

// ParseFrontMatter splits a YAML block fenced by "---" lines off the start
// of text. Text without a complete block is returned unchanged.
func ParseFrontMatter(text string) (string, map[string]interface{}, error) {
	metadata := make(map[string]interface{})

	lines := strings.Split(text, "\n")
	if strings.TrimRight(lines[0], "\r") != frontMatterFence {
		return text, metadata, nil
	}

	endIdx := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r") == frontMatterFence {
			endIdx = i
			break
		}
	}
	if endIdx == -1 {
		return text, metadata, nil
	}

	yamlLines := make([]string, 0, endIdx-1)
	for _, line := range lines[1:endIdx] {
		yamlLines = append(yamlLines, strings.TrimRight(line, "\r"))
	}
	yamlContent := strings.Join(yamlLines, "\n")
	if strings.TrimSpace(yamlContent) != "" {
		if err := yaml.Unmarshal([]byte(yamlContent), &metadata); err != nil {
			return "", nil, fmt.Errorf("invalid front matter: %w", err)
		}
	}

	return strings.Join(lines[endIdx+1:], "\n"), metadata, nil
}
