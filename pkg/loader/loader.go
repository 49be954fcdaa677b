package loader

import (
	"bufio"
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/academy/pkg/debug"
	"github.com/vanderheijden86/academy/pkg/model"
)

//go:embed data/lessons.json
var bundledLessons []byte

// RobotEnvVar suppresses warnings on stderr when set to "1" (machine output).
const RobotEnvVar = "ACADEMY_ROBOT"

// DefaultMaxBufferSize is the default buffer size for JSONL lines (10MB).
const DefaultMaxBufferSize = 1024 * 1024 * 10

// maxParallelFiles bounds concurrent dataset reads in LoadFiles.
const maxParallelFiles = 4

// Format identifies a dataset encoding.
type Format int

const (
	FormatJSON  Format = iota // array of lessons
	FormatJSONL               // one lesson per line
	FormatYAML                // sequence of lessons
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatJSONL:
		return "jsonl"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// ErrUnsupportedFormat is returned for dataset files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// FormatForPath picks the dataset format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".jsonl", ".ndjson":
		return FormatJSONL, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// ParseOptions configures the behavior of ParseLessons.
type ParseOptions struct {
	// WarningHandler is called with warning messages (e.g., malformed records).
	// If nil, warnings are printed to os.Stderr. LoadFiles may call it from
	// several goroutines.
	WarningHandler func(string)

	// BufferSize sets the maximum JSONL line size (in bytes).
	// Lines longer than this are skipped with a warning.
	// If 0, uses DefaultMaxBufferSize (10MB).
	BufferSize int

	// LessonFilter optionally filters parsed lessons. Return true to include.
	LessonFilter func(*model.Lesson) bool
}

func (o ParseOptions) warn() func(string) {
	if o.WarningHandler != nil {
		return o.WarningHandler
	}
	if os.Getenv(RobotEnvVar) == "1" {
		return func(msg string) { debug.Log("loader: %s", msg) }
	}
	return func(msg string) {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", msg)
	}
}

// Load returns the catalog built from paths, or the bundled catalog when
// paths is empty.
func Load(ctx context.Context, paths []string, opts ParseOptions) (*Catalog, error) {
	if len(paths) == 0 {
		return LoadBundled(opts)
	}
	return LoadFiles(ctx, paths, opts)
}

// LoadBundled parses the dataset compiled into the binary.
func LoadBundled(opts ParseOptions) (*Catalog, error) {
	lessons, err := ParseLessons(bytes.NewReader(bundledLessons), FormatJSON, opts)
	if err != nil {
		return nil, fmt.Errorf("bundled catalog: %w", err)
	}
	return newCatalog(lessons, opts.warn()), nil
}

// LoadFile reads lessons from a single dataset file.
func LoadFile(path string, opts ParseOptions) ([]model.Lesson, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no lesson dataset found at %s", path)
		}
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	warn := opts.warn()
	opts.WarningHandler = func(msg string) {
		warn(fmt.Sprintf("%s: %s", filepath.Base(path), msg))
	}
	return ParseLessons(file, format, opts)
}

// LoadFiles reads every dataset concurrently and concatenates the results
// in the order of paths. Any file error fails the whole load.
func LoadFiles(ctx context.Context, paths []string, opts ParseOptions) (*Catalog, error) {
	start := time.Now()
	results := make([][]model.Lesson, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelFiles)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			lessons, err := LoadFile(path, opts)
			if err != nil {
				return err
			}
			results[i] = lessons
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []model.Lesson
	for _, r := range results {
		all = append(all, r...)
	}
	debug.LogTiming(fmt.Sprintf("loader: %d files, %d lessons", len(paths), len(all)), time.Since(start))
	return newCatalog(all, opts.warn()), nil
}

// ParseLessons decodes lessons from r. Malformed or invalid records are
// skipped with a warning; only read failures and a malformed top-level
// document are returned as errors.
func ParseLessons(r io.Reader, format Format, opts ParseOptions) ([]model.Lesson, error) {
	switch format {
	case FormatJSONL:
		return parseJSONL(r, opts)
	case FormatJSON:
		return parseJSON(r, opts)
	case FormatYAML:
		return parseYAML(r, opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func parseJSON(r io.Reader, opts ParseOptions) ([]model.Lesson, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading lessons: %w", err)
	}
	data = stripBOM(data)

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing lesson array: %w", err)
	}

	warn := opts.warn()
	lessons := make([]model.Lesson, 0, len(raw))
	for i, rec := range raw {
		var lesson model.Lesson
		if err := json.Unmarshal(rec, &lesson); err != nil {
			warn(fmt.Sprintf("skipping malformed lesson at index %d: %v", i, err))
			continue
		}
		if keep(&lesson, fmt.Sprintf("index %d", i), opts, warn) {
			lessons = append(lessons, lesson)
		}
	}
	return lessons, nil
}

func parseYAML(r io.Reader, opts ParseOptions) ([]model.Lesson, error) {
	var raw []yaml.Node
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing lesson list: %w", err)
	}

	warn := opts.warn()
	lessons := make([]model.Lesson, 0, len(raw))
	for i := range raw {
		var lesson model.Lesson
		if err := raw[i].Decode(&lesson); err != nil {
			warn(fmt.Sprintf("skipping malformed lesson on line %d: %v", raw[i].Line, err))
			continue
		}
		if keep(&lesson, fmt.Sprintf("line %d", raw[i].Line), opts, warn) {
			lessons = append(lessons, lesson)
		}
	}
	return lessons, nil
}

func parseJSONL(r io.Reader, opts ParseOptions) ([]model.Lesson, error) {
	maxCapacity := opts.BufferSize
	if maxCapacity <= 0 {
		maxCapacity = DefaultMaxBufferSize
	}
	reader := bufio.NewReaderSize(r, maxCapacity)
	warn := opts.warn()

	var lessons []model.Lesson
	lineNum := 0
	for {
		lineNum++
		line, isPrefix, err := reader.ReadLine()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("error reading lessons stream at line %d: %w", lineNum, err)
		}

		if isPrefix {
			warn(fmt.Sprintf("skipping line %d: line too long (exceeds %d bytes)", lineNum, maxCapacity))
			for isPrefix {
				_, isPrefix, err = reader.ReadLine()
				if err == io.EOF {
					break
				}
				if err != nil {
					return nil, fmt.Errorf("error skipping long line at line %d: %w", lineNum, err)
				}
			}
			continue
		}

		if lineNum == 1 {
			line = stripBOM(line)
		}
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		var lesson model.Lesson
		if err := json.Unmarshal(line, &lesson); err != nil {
			warn(fmt.Sprintf("skipping malformed JSON on line %d: %v", lineNum, err))
			continue
		}
		if keep(&lesson, fmt.Sprintf("line %d", lineNum), opts, warn) {
			lessons = append(lessons, lesson)
		}
	}
	return lessons, nil
}

func keep(lesson *model.Lesson, where string, opts ParseOptions, warn func(string)) bool {
	lesson.ID = strings.TrimSpace(lesson.ID)
	if err := lesson.Validate(); err != nil {
		warn(fmt.Sprintf("skipping invalid lesson on %s: %v", where, err))
		return false
	}
	if opts.LessonFilter != nil && !opts.LessonFilter(lesson) {
		return false
	}
	return true
}

// stripBOM removes the UTF-8 Byte Order Mark if present
func stripBOM(b []byte) []byte {
	if bytes.HasPrefix(b, []byte{0xEF, 0xBB, 0xBF}) {
		return b[3:]
	}
	return b
}
