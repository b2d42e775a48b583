package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	giazero "github.com/torayeff/giazero"
)

type readImageFileArgs struct {
	FilePath string `json:"file_path"`
}

// imageMimeTypes maps extensions to MIME types for the formats the model
// backends accept, independent of the host's mime database.
var imageMimeTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// ReadImageFileTool returns the tool definition for the read_image_file tool.
func ReadImageFileTool() giazero.Tool {
	return giazero.Tool{
		Name: "read_image_file",
		Description: "Read an image file and return it in a format suitable for visual analysis.\n\n" +
			"Use this tool to understand the image content and semantics. " +
			"Supports PNG, JPG, JPEG, GIF, and WebP formats. Returns the image as a " +
			"base64-encoded payload with MIME type metadata for multimodal processing.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"file_path": {
					"type": "string",
					"description": "Path to the image file (relative or absolute)"
				}
			},
			"required": ["file_path"]
		}`),
	}
}

// ExecuteReadImageFile returns a two-block result: a text block naming the
// file and an image block carrying the raw bytes and MIME type. Failures are
// returned as a single text block so errors and successes flow through the
// same structured rendering path.
func ExecuteReadImageFile(_ context.Context, args json.RawMessage) (*giazero.ToolResult, error) {
	var a readImageFileArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return domainError(fmt.Sprintf("Error: invalid arguments: %s", err)), nil
	}
	if a.FilePath == "" {
		return domainError("Error: file_path is required."), nil
	}

	resolved, result := statFile(a.FilePath)
	if result != nil {
		return result, nil
	}

	mimeType := guessImageMime(resolved)
	if !strings.HasPrefix(mimeType, "image/") {
		return domainError(fmt.Sprintf("Error: '%s' does not appear to be an image file.", a.FilePath)), nil
	}

	data, err := os.ReadFile(resolved)
	if os.IsPermission(err) {
		return domainError(fmt.Sprintf("Error: Permission denied to read '%s'.", a.FilePath)), nil
	}
	if err != nil {
		return domainError(fmt.Sprintf("Error reading image file: %s", err)), nil
	}

	return &giazero.ToolResult{
		Content: []giazero.ContentBlock{
			giazero.TextBlock{Text: fmt.Sprintf("Image: %s", filepath.Base(resolved))},
			giazero.ImageBlock{Data: data, MimeType: mimeType},
		},
	}, nil
}

// guessImageMime guesses the MIME type from the file extension, preferring
// the fixed table over the host mime database so behavior is stable across
// platforms. Returns "" for unknown extensions.
func guessImageMime(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if mt, ok := imageMimeTypes[ext]; ok {
		return mt
	}
	if mt := mime.TypeByExtension(ext); mt != "" {
		// Strip any parameters, e.g. "; charset=utf-8".
		if i := strings.IndexByte(mt, ';'); i >= 0 {
			mt = strings.TrimSpace(mt[:i])
		}
		return mt
	}
	return ""
}
