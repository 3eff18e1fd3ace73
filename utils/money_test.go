package utils_test

import (
	"testing"

	"grafttrack-backend/utils"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 1071.40, utils.Round2(1071.396))
	assert.Equal(t, 11904.40, utils.Round2(11904.4))
	assert.Equal(t, 0.0, utils.Round2(0))
	assert.Equal(t, 2.35, utils.Round2(2.345000001))
	assert.Equal(t, -1.23, utils.Round2(-1.234))
}
