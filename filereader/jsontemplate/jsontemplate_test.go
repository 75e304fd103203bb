package jsontemplate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBytesMinifies(t *testing.T) {
	out, err := GetBytes("test", "{\n  \"Name\": {{toJSON .}}\n}\n", "dc1-VPC", false)
	require.NoError(t, err)
	assert.Equal(t, `{"Name":"dc1-VPC"}`, string(out))
}

func TestGetBytesPrettyPrints(t *testing.T) {
	out, err := GetBytes("test", `{"Name": {{toJSON .}}}`, "dc1-VPC", true)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"Name\": \"dc1-VPC\"\n}", string(out))
}

func TestGetBytesReportsSyntaxErrorRegion(t *testing.T) {
	raw := "{\n  \"A\": 1,\n  \"B\": 2\n  \"C\": 3\n}\n"
	_, err := GetBytes("test", raw, nil, false)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "json syntax error"), err.Error())
	assert.Contains(t, err.Error(), `"C": 3`)
}

func TestGetContextStringAtEndOfBuffer(t *testing.T) {
	buf := []byte("{\n\"A\":")
	assert.NotPanics(t, func() {
		getContextString(buf, len(buf)+10, 3)
	})
}
