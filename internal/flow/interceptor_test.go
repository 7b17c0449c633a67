package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCommand(t *testing.T) {
	known := func(s string) bool { return s == "start" }

	assert.True(t, IsCommand("/post_order", nil))
	assert.True(t, IsCommand("  /list  ", nil))
	assert.True(t, IsCommand("start", known))
	assert.False(t, IsCommand("starting", known))
	assert.False(t, IsCommand("hello", nil))
	assert.False(t, IsCommand("", nil))
	assert.False(t, IsCommand("   ", nil))
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name     string
		inDialog bool
		text     string
		want     Classification
	}{
		{"command while idle", false, "/list", NoStateCommand},
		{"free text while idle", false, "hello there", NoStateText},
		{"command during dialog", true, "/list", StateCommand},
		{"answer during dialog", true, "0.3", StateText},
		// A slash command mid-dialog must never be read as a weight value.
		{"stray command at waiting_weight", true, "/post_trip", StateCommand},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.inDialog, tc.text, nil))
		})
	}
}
