package api

import (
	"crypto/rand"
	"crypto/rsa"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"

	"github.com/tgw-labs/onprem-sim/test/helper"
)

const minimalYaml = `prefix: dc1
region: ap-southeast-1
`

func configFromYaml(t *testing.T, data string) (*Config, error) {
	helper.ClearEnv(t, EnvPrefix)
	return ConfigFromBytes([]byte(data))
}

func writeTestPublicKey(t *testing.T) string {
	priv, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	pub, err := ssh.NewPublicKey(&priv.PublicKey)
	require.NoError(t, err)

	dir, err := ioutil.TempDir("", "onprem-sim-key")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	path := filepath.Join(dir, "id_rsa.pub")
	require.NoError(t, ioutil.WriteFile(path, ssh.MarshalAuthorizedKey(pub), 0600))
	return path
}

func TestConfigDefaults(t *testing.T) {
	c, err := configFromYaml(t, minimalYaml)
	require.NoError(t, err)

	assert.Equal(t, "dc1-onprem", c.StackName)
	assert.Equal(t, DefaultCIDR, c.CIDR)
	assert.Equal(t, 16, c.CIDRMask, "a single subnet spans the whole range by default")
	assert.Equal(t, DefaultSecurityGroupName, c.SecurityGroup.Name)
	assert.Equal(t, 22, c.SecurityGroup.SSHPort)
	assert.Equal(t, DefaultInstanceName, c.Instance.Name)
	assert.Equal(t, DefaultInstanceType, c.Instance.Type)
	assert.Equal(t, DefaultImageParameter, c.Instance.ImageParameter)
	assert.True(t, c.Instance.SourceDestCheckEnabled())
	assert.False(t, c.Instance.ManagesKeyPair())
	assert.False(t, c.EIP.Associate)
	assert.Equal(t, DefaultExportName, c.Output.ExportName)

	assert.Equal(t, "dc1-VPC", c.VPCName())
	assert.Equal(t, "dc1-VPC | Public", c.PublicSubnetName())
	assert.Equal(t, "Dc1VPC", c.VPCLogicalName())
	assert.Equal(t, "SecurityGroupForEc2OpenSwan", c.SecurityGroupLogicalName())
	assert.Equal(t, "OnPremEc2", c.InstanceLogicalName())

	subnet, err := c.SubnetCIDR()
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.0/16", subnet)
}

func TestConfigFromBytesFull(t *testing.T) {
	keyFile := writeTestPublicKey(t)
	data := `stackName: tgw-lab-dc
region: us-east-1
prefix: lab
cidr: 172.16.0.0/16
cidrMask: 24
peerCIDRs:
  - 10.0.0.0/16
  - 10.1.0.0/16
availabilityZone: us-east-1b
securityGroup:
  name: router-sg
  sshPort: 2222
instance:
  name: Router
  type: t3.micro
  sshPublicKeyFile: ` + keyFile + `
  compressUserData: true
  sourceDestCheck: false
eip:
  associate: true
output:
  exportName: labEipAllocationId
stackTags:
  team: network
cloudformation:
  roleARN: arn:aws:iam::123456789012:role/cfn
`
	c, err := configFromYaml(t, data)
	require.NoError(t, err)

	assert.Equal(t, "tgw-lab-dc", c.StackName)
	assert.Equal(t, "us-east-1", c.Region.Name)
	assert.Equal(t, 24, c.CIDRMask)
	assert.Equal(t, []string{"10.0.0.0/16", "10.1.0.0/16"}, c.PeerCIDRs)
	assert.Equal(t, "us-east-1b", c.AvailabilityZone)
	assert.Equal(t, "router-sg", c.SecurityGroup.Name)
	assert.Equal(t, "Routersg", c.SecurityGroupLogicalName())
	assert.Equal(t, 2222, c.SecurityGroup.SSHPort)
	assert.Equal(t, "t3.micro", c.Instance.Type)
	assert.True(t, c.Instance.ManagesKeyPair())
	assert.True(t, strings.HasPrefix(c.Instance.SSHPublicKeyFingerprint(), "SHA256:"))
	assert.True(t, c.Instance.CompressUserData)
	assert.False(t, c.Instance.SourceDestCheckEnabled(), "an explicit false must survive defaulting")
	assert.True(t, c.EIP.Associate)
	assert.Equal(t, "labEipAllocationId", c.Output.ExportName)
	assert.Equal(t, map[string]string{"team": "network"}, c.StackTags)
	assert.Equal(t, "arn:aws:iam::123456789012:role/cfn", c.CloudFormation.RoleARN)

	subnet, err := c.SubnetCIDR()
	require.NoError(t, err)
	assert.Equal(t, "172.16.0.0/24", subnet)

	router, err := c.SubnetRouterIP()
	require.NoError(t, err)
	assert.Equal(t, "172.16.0.1", router)
}

func TestConfigUnknownKeys(t *testing.T) {
	t.Run("TopLevel", func(t *testing.T) {
		_, err := configFromYaml(t, minimalYaml + "maxAzs: 2\n")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown keys found: maxAzs")
	})
	t.Run("Nested", func(t *testing.T) {
		_, err := configFromYaml(t, minimalYaml + "instance:\n  ami: ami-123\n")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown keys found in instance: ami")
	})
}

func TestConfigValidation(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		message string
	}{
		{"MissingPrefix", "region: ap-southeast-1\n", "prefix must be set"},
		{"MissingRegion", "prefix: dc1\n", "region must be set"},
		{"MalformedCIDR", minimalYaml + "cidr: 10.0.0.0\n", "invalid cidr"},
		{"IPv6CIDR", minimalYaml + "cidr: 2001:db8::/56\n", "invalid cidr"},
		{"CIDRWithHostBits", minimalYaml + "cidr: 10.0.0.5/16\n", "cidr(=10.0.0.5/16) has host bits set. Use 10.0.0.0/16"},
		{"MalformedPeerCIDR", minimalYaml + "peerCIDRs: [\"172.16.0.0\"]\n", "invalid peerCIDRs entry"},
		{"OverlappingPeerCIDR", minimalYaml + "peerCIDRs: [\"172.16.0.0/16\", \"10.0.128.0/20\"]\n", "overlaps peer range 10.0.128.0/20"},
		{"CIDRTooLarge", minimalYaml + "cidr: 10.0.0.0/8\n", "prefix length between /16 and /28"},
		{"MaskShorterThanCIDR", minimalYaml + "cidr: 10.0.0.0/20\ncidrMask: 16\n", "cidrMask(=16)"},
		{"MaskTooLong", minimalYaml + "cidrMask: 29\n", "cidrMask(=29)"},
		{"BadStackName", minimalYaml + "stackName: 9lives\n", "must start with a letter"},
		{"SecurityGroupNameWithoutAlphanumerics", minimalYaml + "securityGroup:\n  name: \"--\"\n", "logical ID"},
		{"SSHPortOutOfRange", minimalYaml + "securityGroup:\n  sshPort: 70000\n", "sshPort"},
		{"BadInstanceType", minimalYaml + "instance:\n  type: small\n", "invalid instance type"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := configFromYaml(t, c.yaml)
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.message)
		})
	}
}

func TestConfigKeyPairExclusive(t *testing.T) {
	keyFile := writeTestPublicKey(t)
	data := minimalYaml + "instance:\n  keyName: existing\n  sshPublicKeyFile: " + keyFile + "\n"
	_, err := configFromYaml(t, data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestConfigRejectsInvalidPublicKey(t *testing.T) {
	dir, err := ioutil.TempDir("", "onprem-sim-key")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "bad.pub")
	require.NoError(t, ioutil.WriteFile(path, []byte("not a key"), 0600))

	_, err = configFromYaml(t, minimalYaml + "instance:\n  sshPublicKeyFile: " + path + "\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse ssh public key")
}

func TestConfigEnvironmentOverrides(t *testing.T) {
	helper.ClearEnv(t, EnvPrefix)
	t.Setenv("ONPREM_SIM_PREFIX", "envdc")
	t.Setenv("ONPREM_SIM_CIDR", "192.168.0.0/20")
	t.Setenv("ONPREM_SIM_CIDR_MASK", "24")

	c, err := ConfigFromBytes([]byte(minimalYaml))
	require.NoError(t, err)

	assert.Equal(t, "envdc", c.Prefix)
	assert.Equal(t, "envdc-onprem", c.StackName, "the stack name is derived after overrides")
	subnet, err := c.SubnetCIDR()
	require.NoError(t, err)
	assert.Equal(t, "192.168.0.0/24", subnet)
}

func TestConfigFromFile(t *testing.T) {
	_, err := ConfigFromFile("does-not-exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file does-not-exist.yaml")
}
