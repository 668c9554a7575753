package output

import (
	"fmt"
	"os"

	"polyscribe/internal/consensus"
)

// WriteText writes the consensus transcript as plain text with a trailing
// newline.
func WriteText(path string, result *consensus.Result) error {
	if err := os.WriteFile(path, []byte(result.Text()+"\n"), 0o644); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	return nil
}
