package output

import (
	"fmt"
	"path/filepath"

	"polyscribe/internal/consensus"
)

// Known output formats.
const (
	FormatJSON = "json"
	FormatSRT  = "srt"
	FormatText = "txt"
)

// WriteResult writes the consensus result in each requested format and
// returns the paths written. Files are named <base>-consensus.<ext> inside
// dir.
func WriteResult(dir, base string, formats []string, result *consensus.Result) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := filepath.Join(dir, fmt.Sprintf("%s-consensus.%s", base, format))
		var err error
		switch format {
		case FormatJSON:
			err = WriteJSON(path, result)
		case FormatSRT:
			err = WriteSRT(path, result)
		case FormatText:
			err = WriteText(path, result)
		default:
			return paths, fmt.Errorf("unknown output format %q", format)
		}
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
