package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/five82/lanes/internal/mipmap"
	"github.com/five82/lanes/internal/trace"
)

// ErrUnsupportedSource is returned when a source's format cannot be detected.
var ErrUnsupportedSource = errors.New("unsupported trace source")

// LoadError wraps any failure to turn a source into a trace.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Format identifies a trace encoding.
type Format int

const (
	FormatUnknown Format = iota
	FormatChrome
	FormatLines
	FormatSQLite
)

func (f Format) String() string {
	switch f {
	case FormatChrome:
		return "chrome"
	case FormatLines:
		return "jsonl"
	case FormatSQLite:
		return "sqlite"
	default:
		return "unknown"
	}
}

// Result is a fully built trace. Store and Index are always set together.
type Result struct {
	Source  string
	Format  Format
	Store   *trace.Store
	Index   *mipmap.Index
	Labels  *trace.Symbols
	Elapsed time.Duration
}

const (
	defaultUserAgent = "lanes/dev"
	requestTimeout   = 5 * time.Second
	maxRemoteBytes   = 512 << 20
)

var sqliteMagic = []byte("SQLite format 3\x00")

// Loader reads traces from local files and HTTP(S) URLs.
type Loader struct {
	http      *http.Client
	userAgent string
}

// New builds a Loader. An empty version keeps the default user agent.
func New(version string) *Loader {
	ua := defaultUserAgent
	if v := strings.TrimSpace(version); v != "" {
		ua = "lanes/" + v
	}
	return &Loader{
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: ua,
	}
}

// Load reads source with a default Loader.
func Load(ctx context.Context, source string) (*Result, error) {
	return New("").Load(ctx, source)
}

// IsRemote reports whether source is an HTTP(S) URL.
func IsRemote(source string) bool {
	lower := strings.ToLower(strings.TrimSpace(source))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Load reads source, builds the store and its mipmap index. Every failure is
// returned as a *LoadError.
func (l *Loader) Load(ctx context.Context, source string) (*Result, error) {
	began := time.Now()
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, &LoadError{Source: source, Err: fmt.Errorf("empty source: %w", ErrUnsupportedSource)}
	}

	syms := trace.NewSymbols()
	var (
		raw    []trace.RawEvent
		format Format
		err    error
	)
	if IsRemote(source) {
		raw, format, err = l.loadRemote(ctx, source, syms)
	} else {
		raw, format, err = loadFile(ctx, source, syms)
	}
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}

	store := trace.Build(raw, syms)
	index, err := mipmap.Build(ctx, store)
	if err != nil {
		return nil, &LoadError{Source: source, Err: fmt.Errorf("build index: %w", err)}
	}
	return &Result{
		Source:  source,
		Format:  format,
		Store:   store,
		Index:   index,
		Labels:  syms,
		Elapsed: time.Since(began),
	}, nil
}

// FormatOf detects a format from a file name or URL path extension.
func FormatOf(name string) Format {
	if u, err := url.Parse(name); err == nil && u.Scheme != "" && u.Path != "" {
		name = u.Path
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatChrome
	case ".jsonl", ".ndjson":
		return FormatLines
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatUnknown
	}
}

// Sniff detects a format from the leading bytes of a payload.
func Sniff(data []byte) Format {
	if bytes.HasPrefix(data, sqliteMagic) {
		return FormatSQLite
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return FormatUnknown
	}
	switch trimmed[0] {
	case '[':
		return FormatChrome
	case '{':
		if json.Valid(trimmed) && bytes.Contains(trimmed, []byte(`"traceEvents"`)) {
			return FormatChrome
		}
		return FormatLines
	}
	return FormatUnknown
}

func loadFile(ctx context.Context, path string, syms *trace.Symbols) ([]trace.RawEvent, Format, error) {
	format := FormatOf(path)
	if format == FormatSQLite {
		raw, err := readSQLite(ctx, path, syms)
		return raw, format, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, format, fmt.Errorf("read trace: %w", err)
	}
	if format == FormatUnknown {
		format = Sniff(data)
	}
	raw, err := decode(ctx, data, format, syms)
	return raw, format, err
}

func (l *Loader) loadRemote(ctx context.Context, rawURL string, syms *trace.Symbols) ([]trace.RawEvent, Format, error) {
	data, err := l.fetch(ctx, rawURL)
	if err != nil {
		return nil, FormatUnknown, err
	}
	format := Sniff(data)
	if format == FormatUnknown {
		format = FormatOf(rawURL)
	}
	if format == FormatSQLite {
		raw, err := readSQLiteBytes(ctx, data, syms)
		return raw, format, err
	}
	raw, err := decode(ctx, data, format, syms)
	return raw, format, err
}

func (l *Loader) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", l.userAgent)

	resp, err := l.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetch %s returned status %d", rawURL, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if len(data) > maxRemoteBytes {
		return nil, fmt.Errorf("response exceeds %d bytes", maxRemoteBytes)
	}
	return data, nil
}

// readSQLiteBytes spills a downloaded database to a temp file so the driver
// can open it.
func readSQLiteBytes(ctx context.Context, data []byte, syms *trace.Symbols) ([]trace.RawEvent, error) {
	f, err := os.CreateTemp("", "lanes-*.db")
	if err != nil {
		return nil, fmt.Errorf("create temp db: %w", err)
	}
	path := f.Name()
	defer func() { _ = os.Remove(path) }()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write temp db: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("write temp db: %w", err)
	}
	return readSQLite(ctx, path, syms)
}

func decode(ctx context.Context, data []byte, format Format, syms *trace.Symbols) ([]trace.RawEvent, error) {
	switch format {
	case FormatChrome:
		return decodeChrome(data, syms)
	case FormatLines:
		return decodeLines(ctx, bytes.NewReader(data), syms)
	default:
		return nil, ErrUnsupportedSource
	}
}
