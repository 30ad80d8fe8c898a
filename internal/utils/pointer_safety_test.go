package utils_test

import (
	"testing"

	"github.com/jrsteele09/eduflow/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	type profile struct{ Email string }

	require.Equal(t, profile{}, utils.Value[profile](nil))
	require.Equal(t, "a@example.com", utils.Value(&profile{Email: "a@example.com"}).Email)
}
