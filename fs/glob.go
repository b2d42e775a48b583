package fs

import (
	"context"
	"encoding/json"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	giazero "github.com/torayeff/giazero"
)

type globArgs struct {
	Pattern string `json:"pattern"`
	Path    string `json:"path"`
}

// GlobTool returns the tool definition for the glob tool.
func GlobTool() giazero.Tool {
	return giazero.Tool{
		Name: "glob",
		Description: "Find files matching a glob pattern under a base directory.\n\n" +
			"Supports ** for recursive matching. Returns matching paths relative " +
			"to the base directory, one per line, sorted alphabetically.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"pattern": {
					"type": "string",
					"description": "Glob pattern to match files (e.g. **/*.go)"
				},
				"path": {
					"type": "string",
					"description": "Base directory to search from (relative or absolute)"
				}
			},
			"required": ["pattern", "path"]
		}`),
	}
}

// ExecuteGlob finds files matching a glob pattern and returns their paths.
func ExecuteGlob(_ context.Context, args json.RawMessage) (*giazero.ToolResult, error) {
	var a globArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return domainError(fmt.Sprintf("Error: invalid arguments: %s", err)), nil
	}
	if a.Pattern == "" {
		return domainError("Error: pattern is required."), nil
	}
	if a.Path == "" {
		return domainError("Error: path is required."), nil
	}

	if !doublestar.ValidatePattern(a.Pattern) {
		return domainError(fmt.Sprintf("Error: invalid glob pattern: %s", a.Pattern)), nil
	}

	resolved := Resolve(a.Path)

	info, err := os.Stat(resolved)
	if err != nil {
		return domainError(fmt.Sprintf("Error: Directory '%s' does not exist.", a.Path)), nil
	}
	if !info.IsDir() {
		return domainError(fmt.Sprintf("Error: '%s' is not a directory.", a.Path)), nil
	}

	var matches []string
	err = doublestar.GlobWalk(os.DirFS(resolved), a.Pattern, func(path string, d iofs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		matches = append(matches, filepath.FromSlash(path))
		return nil
	})
	if err != nil {
		return domainError(fmt.Sprintf("Error matching pattern: %s", err)), nil
	}

	if len(matches) == 0 {
		return textResult("No matches found."), nil
	}

	sort.Strings(matches)
	return textResult(strings.Join(matches, "\n")), nil
}
