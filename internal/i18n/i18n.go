// Package i18n holds the UI message catalogs.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
)

// MessageID names a UI string. Every catalog has an entry for every ID.
type MessageID int

const (
	MsgTitle MessageID = iota
	MsgIdle
	MsgIdleGoNoGo
	MsgWaiting
	MsgCycling
	MsgReady
	MsgReadyGo
	MsgReadyAlternate
	MsgReach
	MsgResult
	MsgResultReach
	MsgTooSoon
	MsgWrongButton
	MsgWrongColor
	MsgModeSimple
	MsgModeReach
	MsgModeChoice
	MsgModeGoNoGo
	MsgColMode
	MsgColCount
	MsgColMean
	MsgColBest
	MsgColStdDev
	MsgColErrors
	MsgColMovement
	MsgNoData
	MsgHelp
	MsgStoreError
	MsgStatsReset

	msgCount
)

type catalog [msgCount]string

var supported = []language.Tag{
	language.English,
	language.SimplifiedChinese,
}

var catalogs = []*catalog{&english, &chinese}

var matcher = language.NewMatcher(supported)

// Localizer renders messages in one language.
type Localizer struct {
	tag language.Tag
	cat *catalog
}

// New picks the closest supported language to the given BCP 47 tags,
// falling back to English.
func New(langs ...string) *Localizer {
	_, idx := language.MatchStrings(matcher, langs...)
	return &Localizer{tag: supported[idx], cat: catalogs[idx]}
}

// Supported lists the languages with a catalog.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

func (l *Localizer) Tag() language.Tag {
	return l.tag
}

func (l *Localizer) Text(id MessageID) string {
	if id < 0 || id >= msgCount {
		return fmt.Sprintf("!msg(%d)", int(id))
	}
	return l.cat[id]
}

func (l *Localizer) Textf(id MessageID, args ...any) string {
	return fmt.Sprintf(l.Text(id), args...)
}
