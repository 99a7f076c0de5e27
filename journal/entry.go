package journal

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// EntryPreviewChars is how much of a free entry is echoed back.
const EntryPreviewChars = 100

// CaptureEntry reads a free-form entry until two consecutive empty lines.
// The blank line that ended the entry is not part of it.
func CaptureEntry(ctx context.Context, c *Console) (string, error) {
	var lines []string
	for {
		line, err := c.ReadLine(ctx, "")
		if err != nil {
			return "", err
		}
		if line == "" && len(lines) > 0 && lines[len(lines)-1] == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines[:len(lines)-1], "\n"), nil
}

// PreviewEntry shortens an entry for display.
func PreviewEntry(entry string, max int) string {
	r := []rune(entry)
	if max <= 0 || len(r) <= max {
		return entry
	}
	return string(r[:max]) + "..."
}

func runFreeEntry(ctx context.Context, c *Console, out io.Writer) error {
	fmt.Fprintln(out, "\nMAKE YOUR OWN ENTRY")
	fmt.Fprintln(out, strings.Repeat("-", 30))
	fmt.Fprintln(out, "Write whatever is on your mind...")
	fmt.Fprintln(out, "(Press Enter twice when finished)")
	fmt.Fprintln(out)

	entry, err := CaptureEntry(ctx, c)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "\nYour entry has been captured!")
	fmt.Fprintf(out, "Entry: %s\n", PreviewEntry(entry, EntryPreviewChars))
	fmt.Fprintln(out, "\nThank you for sharing your thoughts!")
	return nil
}
