package i18n

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestEveryMessageTranslated(t *testing.T) {
	for i, cat := range catalogs {
		for id := MessageID(0); id < msgCount; id++ {
			assert.NotEmpty(t, cat[id], "%s is missing message %d", supported[i], id)
		}
	}
}

func TestFormatVerbsAgree(t *testing.T) {
	for id := MessageID(0); id < msgCount; id++ {
		want := strings.Count(english[id], "%")
		for i, cat := range catalogs {
			assert.Equal(t, want, strings.Count(cat[id], "%"), "%s message %d", supported[i], id)
		}
	}
}

func TestNewMatchesLanguage(t *testing.T) {
	tests := []struct {
		in   []string
		want language.Tag
	}{
		{nil, language.English},
		{[]string{"en-GB"}, language.English},
		{[]string{"zh"}, language.SimplifiedChinese},
		{[]string{"zh-CN"}, language.SimplifiedChinese},
		{[]string{"fr", "zh-Hans"}, language.SimplifiedChinese},
		{[]string{"klingon"}, language.English},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, New(tt.in...).Tag(), "%v", tt.in)
	}
}

func TestText(t *testing.T) {
	l := New("zh")
	assert.Equal(t, "太早了！按空格键重试", l.Text(MsgTooSoon))
	assert.Equal(t, "250 毫秒。按空格键继续", l.Textf(MsgResult, 250))
	assert.Equal(t, "!msg(999)", l.Text(999))
}
