package patternlib

import (
	"errors"
	"io/fs"

	"github.com/charmbracelet/log"

	"github.com/goodtwin/go-patternlib/internal/yamlutil"
)

// loadProject reads the project metadata file (package.json by default)
// that templates see as .Project. A missing or unreadable file yields an
// empty map.
func loadProject(path string, logger *log.Logger) map[string]any {
	project := map[string]any{}
	if path == "" {
		return project
	}

	if err := yamlutil.DecodeFile(path, &project, false); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("no project metadata", "path", path)
		} else {
			logger.Warn("ignoring project metadata", "path", path, "err", err)
		}
		return map[string]any{}
	}
	return project
}
