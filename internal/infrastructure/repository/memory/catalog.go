package memory

import (
	_ "embed"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/riskibarqy/livescore-aggregator/internal/domain/league"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type catalogFile struct {
	Leagues []league.League `yaml:"leagues"`
}

// LoadLeagueCatalog reads the league picker catalog from path, or the embedded default
// when path is empty.
func LoadLeagueCatalog(path string) ([]league.League, error) {
	raw := defaultCatalog
	if path = strings.TrimSpace(path); path != "" {
		fileRaw, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read league catalog %s", path)
		}
		raw = fileRaw
	}

	return ParseLeagueCatalog(raw)
}

func ParseLeagueCatalog(raw []byte) ([]league.League, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, errors.Wrap(err, "parse league catalog")
	}

	seen := make(map[string]struct{}, len(file.Leagues))
	out := make([]league.League, 0, len(file.Leagues))
	for _, item := range file.Leagues {
		item.ID = strings.TrimSpace(item.ID)
		item.Path = strings.Trim(strings.TrimSpace(item.Path), "/")
		if err := item.Validate(); err != nil {
			return nil, errors.Wrap(err, "invalid league catalog entry")
		}
		if _, dup := seen[item.ID]; dup {
			return nil, errors.Newf("duplicate league id %q in catalog", item.ID)
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}

	return out, nil
}
