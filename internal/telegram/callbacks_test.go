package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	tele "gopkg.in/telebot.v4"
)

func TestParseCallbackData(t *testing.T) {
	cases := []struct {
		name    string
		data    string
		unique  string
		key     string
		payload string
	}{
		{"encoded with payload", "\\fcontact_order|42", "", "contact_order", "42"},
		{"encoded without payload", "\\fsetlang", "", "setlang", ""},
		{"payload keeps separators", "\\fsetlang|tr|extra", "", "setlang", "tr|extra"},
		{"empty", "", "", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cb := &tele.Callback{Unique: tc.unique, Data: tc.data}
			key, payload := ParseCallbackData(cb)
			assert.Equal(t, tc.key, key)
			assert.Equal(t, tc.payload, payload)
		})
	}
	key, payload := ParseCallbackData(nil)
	assert.Empty(t, key)
	assert.Empty(t, payload)
}

func TestNormalizeHandlerName(t *testing.T) {
	assert.Equal(t, "post_order", normalizeHandlerName("/post_order"))
	assert.Equal(t, "all_trips", normalizeHandlerName("  /All_Trips "))
	assert.Equal(t, "unknown", normalizeHandlerName("   "))
}

func TestRegistryLookupAndKnows(t *testing.T) {
	reg := NewRegistry()
	noop := func(c tele.Context) error { return nil }
	reg.RegisterCommand("/list", Command{Handler: noop, Description: "browse listings", Aliases: []string{"browse"}})

	key, _, ok := reg.LookupCommand("list")
	assert.True(t, ok)
	assert.Equal(t, "/list", key)

	_, _, ok = reg.LookupCommand("/browse")
	assert.True(t, ok)

	assert.True(t, reg.Knows("list"))
	assert.False(t, reg.Knows("listing"))

	// duplicate registrations are ignored
	reg.RegisterCommand("/list", Command{Handler: noop, Description: "again"})
	assert.Len(t, reg.Commands(), 1)
}
