package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/amp-labs/amp-ranked/closer"
	"github.com/amp-labs/amp-ranked/logger"
	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

// sniffSize is how much of an input is inspected to guess its character set.
const sniffSize = 4096

var ErrUnknownCharset = errors.New("unknown charset")

// openInput opens path for reading as UTF-8 text. Compressed files are
// recognized by extension (.gz, .zst, .br, .lz4, .sz). When label is empty
// the character set is detected from the first few kilobytes.
func openInput(path, label string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, logger.AnnotateError(fmt.Errorf("opening input: %w", err), "path", path)
	}

	stack := closer.NewStack(file)

	plain, err := decompress(file, path, stack)
	if err != nil {
		_ = stack.Close()

		return nil, logger.AnnotateError(fmt.Errorf("reading compressed input: %w", err), "path", path)
	}

	text, _, err := toUTF8(plain, label)
	if err != nil {
		_ = stack.Close()

		return nil, logger.AnnotateError(err, "path", path)
	}

	return closer.ReadCloser(text, stack), nil
}

// decompress wraps r in the decoder matching the extension of path. Decoders
// that hold resources are pushed onto stack.
func decompress(r io.Reader, path string, stack *closer.Stack) (io.Reader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}

		stack.Add(zr)

		return zr, nil
	case ".zst":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}

		stack.Add(closer.Silent(zr.Close))

		return zr, nil
	case ".br":
		return brotli.NewReader(r), nil
	case ".lz4":
		return lz4.NewReader(r), nil
	case ".sz":
		return snappy.NewReader(r), nil
	default:
		return r, nil
	}
}

// toUTF8 returns a reader producing UTF-8 from r and the name of the source
// character set. An explicit label must be known. Otherwise input that already
// looks like UTF-8 passes through untouched, and anything else is handed to
// the detector. When detection fails the input is read as UTF-8 anyway.
func toUTF8(r io.Reader, label string) (io.Reader, string, error) {
	if label != "" {
		decoded, err := charset.NewReaderLabel(label, r)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %q", ErrUnknownCharset, label)
		}

		return decoded, label, nil
	}

	buffered := bufio.NewReaderSize(r, sniffSize)

	head, err := buffered.Peek(sniffSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, "", err
	}

	if utf8.Valid(completeRunes(head)) {
		return buffered, "utf-8", nil
	}

	best, err := chardet.NewTextDetector().DetectBest(head)
	if err != nil {
		return buffered, "utf-8", nil //nolint:nilerr
	}

	decoded, err := charset.NewReaderLabel(best.Charset, buffered)
	if err != nil {
		return buffered, "utf-8", nil //nolint:nilerr
	}

	return decoded, best.Charset, nil
}

// completeRunes drops a multi-byte sequence cut off at the end of head.
func completeRunes(head []byte) []byte {
	start := len(head) - 1
	for start > 0 && start > len(head)-utf8.UTFMax && !utf8.RuneStart(head[start]) {
		start--
	}

	if start >= 0 && !utf8.FullRune(head[start:]) {
		return head[:start]
	}

	return head
}
