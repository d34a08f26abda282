package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "Festival", TruncateText("Festival", 8))
	assert.Equal(t, "Festi…", TruncateText("Festival", 6))
	assert.Equal(t, "…", TruncateText("Festival", 1))
	assert.Equal(t, "Festival", TruncateText("Festival", 0))
	assert.Equal(t, "Café…", TruncateText("Café crème", 5))
}

func TestMakeHyperlink(t *testing.T) {
	assert.Equal(t, "\033]8;;https://eb.test/e/1\aTickets\033]8;;\a", MakeHyperlink("https://eb.test/e/1", "Tickets"))
	assert.Equal(t, "Tickets", MakeHyperlink("", "Tickets"))
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "Doors at 7.", FirstLine("\n  Doors at 7.  \nBring a friend."))
	assert.Equal(t, "", FirstLine(" \n\t"))
}
