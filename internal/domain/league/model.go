package league

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// League is one competition offered by the league picker. Path is the provider path
// segment, e.g. "england/premier-league".
type League struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Country string `yaml:"country"`
	Path    string `yaml:"path"`
}

func (l League) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return errors.New("league id is required")
	}
	if strings.TrimSpace(l.Name) == "" {
		return errors.Newf("league %s: name is required", l.ID)
	}
	if strings.TrimSpace(l.Path) == "" {
		return errors.Newf("league %s: path is required", l.ID)
	}

	return nil
}
