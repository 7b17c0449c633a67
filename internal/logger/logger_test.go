package logger

import (
	"testing"
	"time"
)

func TestBuildRID(t *testing.T) {
	rid := BuildRID(42, 7, 9)
	if rid != "42:7:9" {
		t.Fatalf("unexpected rid: %s", rid)
	}
}

func TestSanitizeLimit(t *testing.T) {
	in := "hello\x00world\twith\ttab"
	out := SanitizeLimit(in, 64)
	if out != "helloworld\twith\ttab" {
		t.Fatalf("unexpected sanitize output: %q", out)
	}
	if got := SanitizeLimit("abcdef", 3); got != "abc" {
		t.Fatalf("limit not applied: %q", got)
	}
	if got := SanitizeLimit("abc", 0); got != "" {
		t.Fatalf("zero limit should drop everything: %q", got)
	}
}

func TestRoundMS(t *testing.T) {
	if got := RoundMS(1499 * time.Microsecond); got != time.Millisecond {
		t.Fatalf("expected 1ms, got %s", got)
	}
	if got := RoundMS(-time.Second); got != 0 {
		t.Fatalf("negative durations should clamp to zero, got %s", got)
	}
}

func TestContextMeta(t *testing.T) {
	ctx := WithRID(nil, "1:2:3")
	ctx = WithUpdateMeta(ctx, 1, 2, 3)
	ctx = WithHandler(ctx, "post_order")

	if RIDFrom(ctx) != "1:2:3" {
		t.Fatalf("rid lost: %s", RIDFrom(ctx))
	}
	if UpdateIDFrom(ctx) != 1 || UserIDFrom(ctx) != 2 || ChatIDFrom(ctx) != 3 {
		t.Fatal("update meta lost")
	}
	if HandlerFrom(ctx) != "post_order" {
		t.Fatalf("handler lost: %s", HandlerFrom(ctx))
	}
}
