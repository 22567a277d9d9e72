package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// maxNameAttempts bounds the suffix scan in [UniquePath].
const maxNameAttempts = 9999

// UniquePath returns path unchanged when no file exists there, otherwise
// the first free variant with a numeric suffix before the extension:
// tour.svg, tour_1.svg, tour_2.svg, and so on. It gives up after 9999
// attempts rather than scanning forever.
func UniquePath(path string) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, nil
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 1; i <= maxNameAttempts; i++ {
		candidate := fmt.Sprintf("%s_%d%s", base, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free filename for %s after %d attempts, clean up the output directory", path, maxNameAttempts)
}
