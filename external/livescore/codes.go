package livescore

// Feed field codes read by the normalizer. The provider may rename these at any
// time, so nothing outside this package refers to them.
const (
	codeMatchID   = "AA"
	codeStatus    = "AB"
	codeKickoff   = "AD"
	codeHomeName  = "AE"
	codeAwayName  = "AF"
	codeHomeGoals = "AG"
	codeAwayGoals = "AH"
	codeHomeLogo  = "OA"
	codeAwayLogo  = "OB"
)

// Script markers identifying the embedded sub-feeds.
const (
	fixturesFeedMarker = `initialFeeds["summary-fixtures"]`
	resultsFeedMarker  = `initialFeeds["summary-results"]`
)

// DOM selectors of the rendered competition page.
const (
	selectorMatch         = ".event__match"
	selectorHomePrimary   = ".event__participant--home"
	selectorAwayPrimary   = ".event__participant--away"
	selectorHomeFallback  = ".event__homeParticipant"
	selectorAwayFallback  = ".event__awayParticipant"
	selectorStagePrimary  = ".event__stage--block"
	selectorStageFallback = ".event__stage"
)
