package maps

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"

	"github.com/keyxmakerx/atlas/internal/apperror"
	"github.com/keyxmakerx/atlas/internal/sanitize"
)

// Format is the encoding of a library file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the encoding from a file extension. Anything that is
// not .json is read as YAML, which is a superset of JSON anyway.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// LoadOptions controls library preparation.
type LoadOptions struct {
	// Strict rejects a library with any error-severity finding.
	Strict bool

	// Logger receives the load summary and non-fatal findings. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Decode parses a library document without preparing it.
func Decode(data []byte, format Format) (*Library, error) {
	lib := &Library{}
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(lib); err != nil {
			return nil, fmt.Errorf("decoding json library: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(lib); err != nil {
			return nil, fmt.Errorf("decoding yaml library: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown library format %q", format)
	}
	if lib.Catalogs == nil {
		lib.Catalogs = map[string]*Catalog{}
	}
	return lib, nil
}

// LoadLibrary reads a library from repo and prepares it.
func LoadLibrary(ctx context.Context, repo CatalogRepository, opts LoadOptions) (*Library, []Issue, error) {
	lib, err := repo.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	issues, err := Prepare(lib, opts)
	if err != nil {
		return nil, issues, err
	}
	return lib, issues, nil
}

// LoadFile reads, decodes and prepares a library file.
func LoadFile(path string, opts LoadOptions) (*Library, []Issue, error) {
	return LoadLibrary(context.Background(), NewFileRepository(path), opts)
}

// LoadEmbedded decodes and prepares the built-in Lower Don library.
func LoadEmbedded(opts LoadOptions) (*Library, []Issue, error) {
	return LoadLibrary(context.Background(), NewEmbeddedRepository(), opts)
}

// Prepare sanitizes free text, indexes every catalog, validates the library
// and computes its fingerprint. In strict mode an error-severity finding
// returns an integrity error; otherwise findings are logged and returned.
func Prepare(lib *Library, opts LoadOptions) ([]Issue, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	for _, cat := range lib.Catalogs {
		if cat == nil {
			continue
		}
		for i := range cat.Objects {
			cat.Objects[i].Info = sanitize.HTML(cat.Objects[i].Info)
		}
		for i := range cat.Events {
			cat.Events[i].Description = sanitize.HTML(cat.Events[i].Description)
		}
		cat.index()
	}

	issues := Validate(lib)
	if opts.Strict && HasErrors(issues) {
		details := make([]string, 0, len(issues))
		for _, is := range issues {
			if is.Severity == SeverityError {
				details = append(details, is.String())
			}
		}
		return issues, apperror.NewIntegrity("catalog failed validation", details)
	}
	for _, is := range issues {
		logger.Warn("catalog issue",
			slog.String("severity", string(is.Severity)),
			slog.String("map", is.MapID),
			slog.String("subject", is.Subject),
			slog.String("message", is.Message),
		)
	}

	fp, err := Fingerprint(lib)
	if err != nil {
		return issues, err
	}
	lib.Fingerprint = fp

	objects, events := 0, 0
	for _, cat := range lib.Catalogs {
		if cat != nil {
			objects += len(cat.Objects)
			events += len(cat.Events)
		}
	}
	logger.Info("catalog loaded",
		slog.Int("maps", len(lib.Maps)),
		slog.Int("objects", objects),
		slog.Int("events", events),
		slog.String("fingerprint", fp),
	)
	return issues, nil
}

// Fingerprint hashes the canonical JSON encoding of the library with
// BLAKE2b-256. Map keys are emitted sorted, so equal libraries hash equal.
func Fingerprint(lib *Library) (string, error) {
	data, err := json.Marshal(lib)
	if err != nil {
		return "", fmt.Errorf("encoding library for fingerprint: %w", err)
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
