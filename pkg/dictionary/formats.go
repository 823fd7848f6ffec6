package dictionary

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat represents different dictionary file formats
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatChunk              // dict_NNNN.bin
	FormatText               // one word per line
	FormatChunkDir           // directory of chunk files
)

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "Unknown"
}

// FormatInfo contains metadata about a dictionary file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64 // Minimum expected file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatChunk: {
		Format:      FormatChunk,
		Description: "Chunked Binary Dictionary",
		Extensions:  []string{".bin"},
		MinSize:     4, // word count header
	},
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Dictionary",
		Extensions:  []string{".txt"},
		MinSize:     1,
	},
	FormatChunkDir: {
		Format:      FormatChunkDir,
		Description: "Chunk Directory",
	},
}

// maxChunkWords bounds the header of a single chunk file.
const maxChunkWords = 1_000_000

// ValidateFileFormat checks if a file matches the expected format
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}

	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("unknown format: %v", expectedFormat)
	}

	if expectedFormat == FormatChunkDir {
		if !fileInfo.IsDir() {
			return fmt.Errorf("%s is not a directory", filename)
		}
		return nil
	}

	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	validExt := false
	for _, validExtension := range formatInfo.Extensions {
		if ext == validExtension {
			validExt = true
			break
		}
	}
	if !validExt {
		return fmt.Errorf("file %s has invalid extension %s for format %s (expected: %v)",
			filename, ext, formatInfo.Description, formatInfo.Extensions)
	}

	if expectedFormat == FormatChunk {
		return validateChunkHeader(filename)
	}
	return nil
}

func validateChunkHeader(filename string) error {
	wordCount, err := chunkWordCount(filename)
	if err != nil {
		return fmt.Errorf("failed to read header from %s: %w", filename, err)
	}
	if wordCount < 0 {
		return fmt.Errorf("invalid word count in %s: %d (negative)", filename, wordCount)
	}
	if wordCount > maxChunkWords {
		return fmt.Errorf("suspicious word count in %s: %d (too large)", filename, wordCount)
	}

	log.Debugf("Binary file %s validated: %d words", filename, wordCount)
	return nil
}

// DetectFileFormat attempts to detect the format of a file
func DetectFileFormat(filename string) (FileFormat, error) {
	if stat, err := os.Stat(filename); err == nil && stat.IsDir() {
		return FormatChunkDir, nil
	}

	ext := strings.ToLower(filepath.Ext(filename))
	basename := strings.ToLower(filepath.Base(filename))

	if strings.HasPrefix(basename, "dict_") && ext == ".bin" {
		if err := ValidateFileFormat(filename, FormatChunk); err != nil {
			return FormatUnknown, err
		}
		return FormatChunk, nil
	}
	if ext == ".txt" {
		if err := ValidateFileFormat(filename, FormatText); err != nil {
			return FormatUnknown, err
		}
		return FormatText, nil
	}

	return FormatUnknown, fmt.Errorf("unable to detect format for file %s", filename)
}

// Load reads a dictionary from a chunk directory, a single chunk file or a
// text file, keeping at most maxWords words (0 keeps all).
func Load(path string, maxWords int) ([]string, error) {
	format, err := DetectFileFormat(path)
	if err != nil {
		return nil, err
	}
	log.Debugf("Loading %s as %s", path, format)

	switch format {
	case FormatChunkDir:
		return LoadChunks(path, maxWords)
	case FormatChunk:
		return LoadChunk(path, maxWords)
	}

	words, err := LoadText(path)
	if err != nil {
		return nil, err
	}
	if maxWords > 0 && len(words) > maxWords {
		words = words[:maxWords]
	}
	return words, nil
}
