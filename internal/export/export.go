package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sadopc/timebox/internal/schedule"
)

type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

var formats = []Format{FormatText, FormatCSV, FormatJSON}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want text, csv or json)", s)
}

// Write renders s to w in the given format.
func Write(w io.Writer, f Format, s *schedule.Schedule) error {
	switch f {
	case FormatText:
		return ToText(w, s, false)
	case FormatCSV:
		return ToCSV(w, s)
	case FormatJSON:
		return ToJSON(w, s)
	}
	return fmt.Errorf("unknown format %q", f)
}

// ToFile writes s to path, replacing any existing file.
func ToFile(path string, f Format, s *schedule.Schedule) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s file: %w", f, err)
	}
	defer file.Close()

	if err := Write(file, f, s); err != nil {
		return err
	}
	return file.Close()
}

func formatMinutes(mins int64) string {
	return fmt.Sprintf("%02d:%02d:00", mins/60, mins%60)
}
