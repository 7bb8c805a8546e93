package livescore

import (
	"strings"
)

const bt = "`"

func feedScript(marker, payload string) string {
	return "<script>window.cjs = window.cjs || {}; cjs." + marker + " = {data: " + bt + payload + bt + ", allEventsCount: 1};</script>"
}

func competitionPage(scripts ...string) string {
	return "<html><head><title>Premier League</title></head><body><div id=\"live-table\"></div>" +
		strings.Join(scripts, "") +
		"</body></html>"
}

func matchRow(home, away, stageMarkup string) string {
	return `<div class="event__match event__match--live">` +
		`<div class="event__stage"><div class="event__stage--block">` + stageMarkup + `</div></div>` +
		`<div class="event__participant event__participant--home">` + home + `</div>` +
		`<div class="event__participant event__participant--away">` + away + `</div>` +
		`</div>`
}
