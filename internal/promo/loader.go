package promo

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"discount-kart/internal/discount"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for gzipped promo books on local disk.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based promo loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "promo-loader").Logger(),
	}
}

// Load reads a gzipped promo book from the local file system.
func (l *fileLoader) Load(ctx context.Context, filePath string) (Book, error) {
	l.logger.Info().Str("file", filePath).Msg("loading promo book")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open promo book")
		return nil, fmt.Errorf("failed to open promo book %s: %w", filePath, err)
	}
	defer file.Close()

	book, err := readBook(ctx, file, filePath, l.logger)
	if err != nil {
		return nil, err
	}

	l.logger.Info().
		Str("file", filePath).
		Int("promos_loaded", book.Size()).
		Msg("promo book loaded successfully")

	return book, nil
}

// readBook decompresses r and parses one promo definition per line.
// Lines that do not parse are logged and skipped so that one bad entry does
// not take down a whole book.
func readBook(ctx context.Context, r io.Reader, source string, logger zerolog.Logger) (*mapBook, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		logger.Error().Err(err).Str("source", source).Msg("failed to create gzip reader")
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", source, err)
	}
	defer gzipReader.Close()

	book := newMapBook(1024)

	scanner := bufio.NewScanner(gzipReader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNumber := 0
	skipped := 0
	for scanner.Scan() {
		lineNumber++
		if lineNumber%100_000 == 0 {
			select {
			case <-ctx.Done():
				logger.Warn().Str("source", source).Msg("promo loading cancelled")
				return nil, ctx.Err()
			default:
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		code, c, err := parseLine(line)
		if err != nil {
			skipped++
			logger.Warn().
				Err(err).
				Str("source", source).
				Int("line", lineNumber).
				Msg("skipping malformed promo definition")
			continue
		}
		book.Add(code, c)
	}

	if err := scanner.Err(); err != nil {
		logger.Error().Err(err).Str("source", source).Msg("error reading promo book")
		return nil, fmt.Errorf("error reading promo book %s: %w", source, err)
	}

	if skipped > 0 {
		logger.Warn().Str("source", source).Int("skipped", skipped).Msg("promo book contained malformed lines")
	}

	return book, nil
}

// parseLine parses "CODE,kind[,value]".
func parseLine(line string) (string, discount.Classification, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 2 || len(fields) > 3 {
		return "", nil, fmt.Errorf("expected CODE,kind[,value], got %d fields", len(fields))
	}

	code := strings.TrimSpace(fields[0])
	if code == "" {
		return "", nil, fmt.Errorf("empty promo code")
	}

	value := ""
	if len(fields) == 3 {
		value = fields[2]
	}

	c, err := discount.Parse(fields[1], value)
	if err != nil {
		return "", nil, fmt.Errorf("promo %s: %w", code, err)
	}

	return code, c, nil
}
