// Package dictionary reads word lists from disk: newline separated text files
// and the chunked binary dict_NNNN.bin files.
package dictionary

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrNoChunks is returned when a directory holds no chunk files.
var ErrNoChunks = errors.New("no chunk files found")

// ChunkInfo contains metadata about a chunk file
type ChunkInfo struct {
	ChunkID   int
	Filename  string
	WordCount int
}

// AvailableChunks scans dir for dict_NNNN.bin files, sorted by chunk ID.
func AvailableChunks(dir string) ([]ChunkInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, "dict_*.bin"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		chunkID, ok := chunkID(filepath.Base(file))
		if !ok {
			continue
		}
		wordCount, err := chunkWordCount(file)
		if err != nil {
			log.Warnf("Failed to get word count for chunk %s: %v", file, err)
			wordCount = 0
		}
		chunks = append(chunks, ChunkInfo{ChunkID: chunkID, Filename: file, WordCount: wordCount})
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ChunkID < chunks[j].ChunkID
	})
	return chunks, nil
}

// chunkID extracts the ID from a chunk file name (dict_0001.bin -> 1).
func chunkID(basename string) (int, bool) {
	if !strings.HasPrefix(basename, "dict_") || !strings.HasSuffix(basename, ".bin") {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(basename, "dict_"), ".bin"))
	if err != nil {
		return 0, false
	}
	return id, true
}

// chunkWordCount reads the word count from a chunk file's header
func chunkWordCount(filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return 0, err
	}
	return int(wordCount), nil
}

// LoadChunks reads every chunk in dir in ID order and stops once maxWords
// words are read. maxWords 0 reads everything.
func LoadChunks(dir string, maxWords int) ([]string, error) {
	chunks, err := AvailableChunks(dir)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoChunks)
	}
	log.Debugf("Found %d chunk files", len(chunks))

	var words []string
	for _, chunk := range chunks {
		remaining := 0
		if maxWords > 0 {
			remaining = maxWords - len(words)
			if remaining <= 0 {
				break
			}
		}
		chunkWords, err := LoadChunk(chunk.Filename, remaining)
		if err != nil {
			return nil, err
		}
		words = append(words, chunkWords...)
		log.Debugf("Chunk %d loaded: %d words", chunk.ChunkID, len(chunkWords))
	}
	return words, nil
}

// LoadChunk reads one chunk file. maxWords 0 reads every word.
func LoadChunk(filename string, maxWords int) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open chunk file %s: %w", filename, err)
	}
	defer file.Close()

	words, err := ReadChunk(bufio.NewReader(file), maxWords)
	if err != nil {
		return nil, fmt.Errorf("chunk file %s: %w", filename, err)
	}
	return words, nil
}

// ReadChunk decodes the chunk format: a little-endian int32 word count, then
// per word a uint16 length, the word bytes and a uint16 rank. Words come out
// in file order, which is rank order; the ranks themselves are dropped.
func ReadChunk(r io.Reader, maxWords int) ([]string, error) {
	var totalEntries int32
	if err := binary.Read(r, binary.LittleEndian, &totalEntries); err != nil {
		return nil, fmt.Errorf("failed to read chunk header: %w", err)
	}
	if totalEntries < 0 {
		return nil, fmt.Errorf("invalid word count %d", totalEntries)
	}

	n := int(totalEntries)
	if maxWords > 0 && maxWords < n {
		n = maxWords
	}
	words := make([]string, 0, n)
	for len(words) < n {
		var wordLen uint16
		if err := binary.Read(r, binary.LittleEndian, &wordLen); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("failed to read word length: %w", err)
		}

		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(r, wordBytes); err != nil {
			return nil, fmt.Errorf("failed to read word: %w", err)
		}

		var rank uint16
		if err := binary.Read(r, binary.LittleEndian, &rank); err != nil {
			return nil, fmt.Errorf("failed to read rank: %w", err)
		}
		words = append(words, string(wordBytes))
	}
	return words, nil
}

// LoadText reads a newline separated word list.
func LoadText(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open text file %s: %w", filename, err)
	}
	defer file.Close()

	words, err := ReadText(file)
	if err != nil {
		return nil, fmt.Errorf("text file %s: %w", filename, err)
	}
	return words, nil
}

// ReadText splits r on '\n', strips a trailing '\r' and skips empty lines.
func ReadText(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var words []string
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
