package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgw-labs/onprem-sim/test/helper"
)

func TestEnvOverridesFromEnvironment(t *testing.T) {
	helper.ClearEnv(t, EnvPrefix)
	t.Setenv("ONPREM_SIM_PREFIX", "envdc")
	t.Setenv("ONPREM_SIM_CIDR_MASK", "26")

	o, err := EnvOverridesFromEnvironment()
	require.NoError(t, err)
	assert.Equal(t, EnvOverrides{Prefix: "envdc", CIDRMask: 26}, o)
}

func TestEnvOverridesRejectMalformedNumbers(t *testing.T) {
	helper.ClearEnv(t, EnvPrefix)
	t.Setenv("ONPREM_SIM_CIDR_MASK", "twenty")

	_, err := EnvOverridesFromEnvironment()
	assert.Error(t, err)
}

func TestApplyOverrides(t *testing.T) {
	c := Config{
		Prefix:    "filedc",
		Region:    RegionForName("ap-southeast-1"),
		CIDR:      "172.16.0.0/16",
		StackName: "from-file",
	}

	err := c.ApplyOverrides(EnvOverrides{Region: "us-east-1", CIDRMask: 24})
	require.NoError(t, err)

	assert.Equal(t, "filedc", c.Prefix, "unset overrides must keep file values")
	assert.Equal(t, "from-file", c.StackName)
	assert.Equal(t, "172.16.0.0/16", c.CIDR)
	assert.Equal(t, "us-east-1", c.Region.Name)
	assert.Equal(t, 24, c.CIDRMask)
}
