package store

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"talk-corpus/pkg/domain"
)

// maxLineSize bounds one record line; transcripts of long talks run to a few hundred KB.
const maxLineSize = 16 << 20

// FileStore appends accepted talks and skipped talks to two flat files.
// Each record opens, appends and closes its file, so a crash after record K
// leaves records 1..K on disk.
type FileStore struct {
	outputPath  string
	skippedPath string
}

// NewFileStore creates a file store for the accepted output and the skip log
func NewFileStore(outputPath, skippedPath string) *FileStore {
	return &FileStore{
		outputPath:  outputPath,
		skippedPath: skippedPath,
	}
}

// SaveTalk appends one accepted record
func (s *FileStore) SaveTalk(ctx context.Context, talk *domain.TalkRecord) error {
	line, err := MarshalTalk(talk)
	if err != nil {
		return err
	}
	return appendLine(s.outputPath, line)
}

// SaveSkipped appends one skip log entry
func (s *FileStore) SaveSkipped(ctx context.Context, skipped *domain.SkippedTalk) error {
	line, err := MarshalSkipped(skipped)
	if err != nil {
		return err
	}
	return appendLine(s.skippedPath, line)
}

func appendLine(path string, line []byte) error {
	if path == "" {
		return errors.New("output path is empty")
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	if _, err := file.Write(line); err != nil {
		file.Close()
		return fmt.Errorf("append to %s: %w", path, err)
	}
	return file.Close()
}

// ReadTalks streams the accepted output file, calling fn for each record in file order.
func ReadTalks(path string, fn func(*domain.TalkRecord) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	return scanLines(file, func(lineNum int, line []byte) error {
		talk, err := ParseTalkLine(line)
		if err != nil {
			return fmt.Errorf("%s line %d: %w", path, lineNum, err)
		}
		return fn(talk)
	})
}

// ReadSkipped streams the skip log file
func ReadSkipped(path string, fn func(*domain.SkippedTalk) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	return scanLines(file, func(lineNum int, line []byte) error {
		skipped, err := ParseSkippedLine(line)
		if err != nil {
			return fmt.Errorf("%s line %d: %w", path, lineNum, err)
		}
		return fn(skipped)
	})
}

func scanLines(r io.Reader, fn func(lineNum int, line []byte) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if err := fn(lineNum, line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading at line %d: %w", lineNum, err)
	}
	return nil
}
