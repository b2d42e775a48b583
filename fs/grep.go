package fs

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	giazero "github.com/torayeff/giazero"
)

type grepArgs struct {
	Pattern string `json:"pattern"`
	Path    string `json:"path"`
	Glob    string `json:"glob"`
}

// GrepTool returns the tool definition for the grep tool.
func GrepTool() giazero.Tool {
	return giazero.Tool{
		Name: "grep",
		Description: "Search file contents with a regular expression.\n\n" +
			"Returns matching lines with file:line:content context. Binary files " +
			"are skipped. An optional glob pattern restricts which files are searched.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"pattern": {
					"type": "string",
					"description": "Regular expression pattern to search for"
				},
				"path": {
					"type": "string",
					"description": "File or directory to search in"
				},
				"glob": {
					"type": "string",
					"description": "Glob pattern to filter files (e.g. *.go)"
				}
			},
			"required": ["pattern", "path"]
		}`),
	}
}

// ExecuteGrep searches file contents and returns matching lines.
func ExecuteGrep(_ context.Context, args json.RawMessage) (*giazero.ToolResult, error) {
	var a grepArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return domainError(fmt.Sprintf("Error: invalid arguments: %s", err)), nil
	}
	if a.Pattern == "" {
		return domainError("Error: pattern is required."), nil
	}
	if a.Path == "" {
		return domainError("Error: path is required."), nil
	}

	re, err := regexp.Compile(a.Pattern)
	if err != nil {
		return domainError(fmt.Sprintf("Error: invalid regex pattern: %s", err)), nil
	}

	resolved := Resolve(a.Path)

	info, err := os.Stat(resolved)
	if err != nil {
		return domainError(fmt.Sprintf("Error: Path '%s' does not exist.", a.Path)), nil
	}

	var b strings.Builder

	if !info.IsDir() {
		grepFile(&b, resolved, filepath.Dir(resolved), re)
	} else {
		walkErr := filepath.WalkDir(resolved, func(path string, d iofs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			if a.Glob != "" {
				rel, relErr := filepath.Rel(resolved, path)
				if relErr != nil {
					return nil
				}
				matched, matchErr := doublestar.Match(a.Glob, filepath.ToSlash(rel))
				if matchErr != nil || !matched {
					return nil
				}
			}
			grepFile(&b, path, resolved, re)
			return nil
		})
		if walkErr != nil {
			return domainError(fmt.Sprintf("Error walking directory: %s", walkErr)), nil
		}
	}

	if b.Len() == 0 {
		return textResult("No matches found."), nil
	}

	return textResult(b.String()), nil
}

// grepFile appends matching lines for a single file. Unreadable and binary
// files are skipped silently.
func grepFile(b *strings.Builder, path, basePath string, re *regexp.Regexp) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	// Sniff the first 512 bytes for NUL to detect binary files.
	header := make([]byte, 512)
	n, _ := f.Read(header)
	if n == 0 || bytes.ContainsRune(header[:n], 0) {
		return
	}
	if _, err := f.Seek(0, 0); err != nil {
		return
	}

	relPath, err := filepath.Rel(basePath, path)
	if err != nil {
		relPath = path
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if re.MatchString(line) {
			fmt.Fprintf(b, "%s:%d:%s\n", relPath, lineNum, line)
		}
	}
}
