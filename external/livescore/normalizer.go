package livescore

import (
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/livescore-aggregator/internal/domain/fixture"
	"github.com/riskibarqy/livescore-aggregator/internal/platform/feedcodec"
	"github.com/riskibarqy/livescore-aggregator/internal/platform/logging"
)

const (
	defaultLogoBaseURL     = "https://www.livescore.in/res/image/data/"
	defaultLogoPlaceholder = "https://via.placeholder.com/40"
)

type NormalizerConfig struct {
	LogoBaseURL     string
	LogoPlaceholder string
	Location        *time.Location
	Logger          *logging.Logger
}

// Normalizer turns decoded feed records into fixtures. IDs are left at zero; the
// aggregator assigns them.
type Normalizer struct {
	logoBaseURL     string
	logoPlaceholder string
	location        *time.Location
	logger          *logging.Logger
}

func NewNormalizer(cfg NormalizerConfig) *Normalizer {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	location := cfg.Location
	if location == nil {
		location = time.UTC
	}
	logoBaseURL := strings.TrimSpace(cfg.LogoBaseURL)
	if logoBaseURL == "" {
		logoBaseURL = defaultLogoBaseURL
	}
	placeholder := strings.TrimSpace(cfg.LogoPlaceholder)
	if placeholder == "" {
		placeholder = defaultLogoPlaceholder
	}

	return &Normalizer{
		logoBaseURL:     logoBaseURL,
		logoPlaceholder: placeholder,
		location:        location,
		logger:          logger,
	}
}

// Normalize returns false when the record is not displayable: a participant name is
// missing or the kickoff falls on a different day than today.
func (n *Normalizer) Normalize(record feedcodec.Record, class fixture.Classification, competitionPath string, today time.Time) (fixture.Fixture, bool) {
	home := strings.TrimSpace(record.Get(codeHomeName))
	away := strings.TrimSpace(record.Get(codeAwayName))
	if home == "" || away == "" {
		return fixture.Fixture{}, false
	}

	var kickoffAt *time.Time
	if raw, ok := record.Lookup(codeKickoff); ok && strings.TrimSpace(raw) != "" {
		seconds, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			n.logger.Debug("unparseable kickoff timestamp, keeping record", "match_id", record.Get(codeMatchID), "value", raw)
		} else {
			kickoff := time.Unix(seconds, 0).In(n.location)
			if !sameDay(kickoff, today.In(n.location)) {
				return fixture.Fixture{}, false
			}
			kickoffAt = &kickoff
		}
	}

	status := class.Status
	if status == "" {
		status = fixture.StatusScheduled
	}
	var elapsed *int
	if status == fixture.StatusLive && class.Elapsed != nil {
		minute := *class.Elapsed
		elapsed = &minute
	}

	return fixture.Fixture{
		ExternalID:     strings.TrimSpace(record.Get(codeMatchID)),
		Competition:    fixture.CompetitionDisplayName(competitionPath),
		HomeTeam:       home,
		AwayTeam:       away,
		HomeGoals:      parseGoals(record.Get(codeHomeGoals)),
		AwayGoals:      parseGoals(record.Get(codeAwayGoals)),
		Status:         status,
		ElapsedMinutes: elapsed,
		HomeLogoURL:    n.logoURL(record.Get(codeHomeLogo)),
		AwayLogoURL:    n.logoURL(record.Get(codeAwayLogo)),
		KickoffAt:      kickoffAt,
	}, true
}

func (n *Normalizer) logoURL(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return n.logoPlaceholder
	}
	return n.logoBaseURL + token
}

func parseGoals(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < 0 {
		return 0
	}
	return value
}

func sameDay(left, right time.Time) bool {
	ly, lm, ld := left.Date()
	ry, rm, rd := right.Date()
	return ly == ry && lm == rm && ld == rd
}
