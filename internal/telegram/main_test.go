package telegram

import (
	"os"
	"testing"

	"github.com/kananguluzade/CantaOrtak-TgBot/internal/logger"
)

// TestMain initializes the package-level loggers (logger.TG etc.) that the
// registry logs through; they are nil until logger.Init runs.
func TestMain(m *testing.M) {
	if err := logger.Init(logger.Options{Level: "error", Format: "text"}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}
