package wordlist

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/passw0rds/internal/model"
)

// ErrSourceUnavailable is matched when a category's word list cannot be obtained.
var ErrSourceUnavailable = errors.New("word source unavailable")

// SourceError reports which category failed to load.
type SourceError struct {
	Category model.Category
	Err      error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %s list: %v", ErrSourceUnavailable, e.Category.ListName(), e.Err)
}

// Unwrap returns the underlying cause.
func (e *SourceError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrSourceUnavailable.
func (e *SourceError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

func unavailable(c model.Category, err error) error {
	return &SourceError{Category: c, Err: err}
}

// Source supplies the words of a category filtered to a length range.
// Implementations return a fresh slice on every call.
type Source interface {
	Load(ctx context.Context, category model.Category, minLength, maxLength int) ([]string, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, category model.Category, minLength, maxLength int) ([]string, error)

// Load implements Source.
func (f SourceFunc) Load(ctx context.Context, category model.Category, minLength, maxLength int) ([]string, error) {
	return f(ctx, category, minLength, maxLength)
}

// FileName is the file name of a category's list inside a directory or URL.
func FileName(c model.Category) string {
	return c.ListName() + ".txt"
}

// Memory serves in-memory lists. A missing category is unavailable.
type Memory map[model.Category][]string

// Load implements Source.
func (m Memory) Load(_ context.Context, category model.Category, minLength, maxLength int) ([]string, error) {
	words, ok := m[category]
	if !ok {
		return nil, unavailable(category, fmt.Errorf("no list"))
	}
	return Filter(words, LengthBetween(minLength, maxLength)), nil
}

//go:embed data/*.txt
var embedded embed.FS

// EmbeddedSource serves the word lists compiled into the binary.
type EmbeddedSource struct{}

// Embedded returns the built-in word lists.
func Embedded() EmbeddedSource {
	return EmbeddedSource{}
}

// Load implements Source.
func (EmbeddedSource) Load(_ context.Context, category model.Category, minLength, maxLength int) ([]string, error) {
	words, err := EmbeddedWords(category)
	if err != nil {
		return nil, err
	}
	return Filter(words, LengthBetween(minLength, maxLength)), nil
}

// EmbeddedWords returns the unfiltered built-in list for category.
func EmbeddedWords(category model.Category) ([]string, error) {
	if category.ListName() == "" {
		return nil, unavailable(category, fmt.Errorf("unknown category"))
	}
	file, err := embedded.Open(path.Join("data", FileName(category)))
	if err != nil {
		return nil, unavailable(category, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			_ = cerr
		}
	}()
	words, err := ParseWords(file)
	if err != nil {
		return nil, unavailable(category, err)
	}
	return words, nil
}

// DirSource reads <dir>/<list>.txt files.
type DirSource struct {
	dir string
}

// Dir returns a Source reading word lists from dir.
func Dir(dir string) DirSource {
	return DirSource{dir: dir}
}

// Path returns the file backing category.
func (d DirSource) Path(category model.Category) string {
	return filepath.Join(d.dir, FileName(category))
}

// Load implements Source.
func (d DirSource) Load(_ context.Context, category model.Category, minLength, maxLength int) ([]string, error) {
	if category.ListName() == "" {
		return nil, unavailable(category, fmt.Errorf("unknown category"))
	}
	words, err := LoadWords(d.Path(category))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, unavailable(category, fmt.Errorf("word list not found at %s", d.Path(category)))
		}
		return nil, unavailable(category, err)
	}
	return Filter(words, LengthBetween(minLength, maxLength)), nil
}

// DefaultHTTPTimeout bounds a single word list request.
const DefaultHTTPTimeout = 15 * time.Second

// HTTPSource fetches <baseURL>/<list>.txt.
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

// HTTP returns a Source fetching lists below baseURL. A nil client gets DefaultHTTPTimeout.
func HTTP(baseURL string, client *http.Client) HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return HTTPSource{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// URL returns the address of category's list.
func (h HTTPSource) URL(category model.Category) string {
	return h.baseURL + "/" + FileName(category)
}

// Load implements Source.
func (h HTTPSource) Load(ctx context.Context, category model.Category, minLength, maxLength int) ([]string, error) {
	if category.ListName() == "" {
		return nil, unavailable(category, fmt.Errorf("unknown category"))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL(category), http.NoBody)
	if err != nil {
		return nil, unavailable(category, fmt.Errorf("failed to create request: %w", err))
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, unavailable(category, fmt.Errorf("request failed: %w", err))
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, unavailable(category, fmt.Errorf("unexpected status: %s", resp.Status))
	}
	words, err := ParseWords(resp.Body)
	if err != nil {
		return nil, unavailable(category, fmt.Errorf("failed to read body: %w", err))
	}
	return Filter(words, LengthBetween(minLength, maxLength)), nil
}
