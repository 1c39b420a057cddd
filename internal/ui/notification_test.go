package ui

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestParseDisplayUser(t *testing.T) {
	// GIVEN
	output := "root     tty1         2024-01-01 10:00\n" +
		"markus   tty2         2024-01-01 10:01 (:0)\n"

	// WHEN
	user, err := parseDisplayUser(output, ":0")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "markus", user)
}

func TestParseDisplayUser_NotFound(t *testing.T) {
	// GIVEN
	output := "root     tty1         2024-01-01 10:00\n"

	// WHEN
	_, err := parseDisplayUser(output, ":1")

	// THEN
	assert.Error(t, err)
}

func TestParseDisplayUser_DisplayAsLine(t *testing.T) {
	// GIVEN
	output := "root     tty1         2024-01-01 10:00\n" +
		"markus   :0           2024-01-01 10:01\n"

	// WHEN
	user, err := parseDisplayUser(output, ":0")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "markus", user)
}

func TestParseDisplayUser_TimeIsNoDisplay(t *testing.T) {
	// GIVEN
	output := "root     tty1         2024-01-01 10:00\n" +
		"markus   tty2         2024-01-01 10:01 (:1)\n"

	// WHEN
	_, err := parseDisplayUser(output, ":0")

	// THEN
	assert.Error(t, err)
}
