package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/keyxmakerx/atlas/internal/plugins/maps"
)

// loadLibrary loads the library named by --catalog, or the built-in one.
// Load summaries go to stderr so they never mix with command output.
func loadLibrary(cmd *cobra.Command, flags *globalFlags) (*maps.Library, []maps.Issue, error) {
	opts := maps.LoadOptions{
		Strict: !flags.lenient,
		Logger: slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn})),
	}
	if flags.catalog == "" {
		return maps.LoadEmbedded(opts)
	}
	return maps.LoadLibrary(cmd.Context(), maps.NewFileRepository(flags.catalog), opts)
}

// withService loads the library and calls fn with a service over it.
func withService(cmd *cobra.Command, flags *globalFlags, fn func(maps.MapService) error) error {
	lib, _, err := loadLibrary(cmd, flags)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	return fn(maps.NewMapService(lib))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// describeColor renders a resolved colour for text output.
func describeColor(c maps.ColorResult) string {
	if c.IsTwoTone() {
		return fmt.Sprintf("%s(%s|%s)", c.Kind, c.Left, c.Right)
	}
	return c.Color
}

// describeAnchors lists an event's object references.
func describeAnchors(refs maps.ObjectRefs) string {
	if len(refs) == 0 {
		return "-"
	}
	out := refs[0]
	for _, r := range refs[1:] {
		out += "," + r
	}
	return out
}
