package api

import (
	"fmt"
	"io/ioutil"

	"github.com/imdario/mergo"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/tgw-labs/onprem-sim/cfnresource"
	"github.com/tgw-labs/onprem-sim/naming"
	"github.com/tgw-labs/onprem-sim/netutil"
)

const (
	DefaultCIDR = "10.0.0.0/16"

	minCIDRPrefix = 16
	maxCIDRPrefix = 28
)

// Config describes the simulated on-premises network: one VPC with one public subnet, a security group and a
// router instance, plus the static address exported for the customer gateway.
type Config struct {
	StackName        string            `yaml:"stackName,omitempty"`
	Region           `yaml:",inline"`
	Prefix           string            `yaml:"prefix,omitempty"`
	CIDR             string            `yaml:"cidr,omitempty"`
	CIDRMask         int               `yaml:"cidrMask,omitempty"`
	PeerCIDRs        []string          `yaml:"peerCIDRs,omitempty"`
	AvailabilityZone string            `yaml:"availabilityZone,omitempty"`
	SecurityGroup    SecurityGroup     `yaml:"securityGroup,omitempty"`
	Instance         Instance          `yaml:"instance,omitempty"`
	EIP              EIP               `yaml:"eip,omitempty"`
	Output           Output            `yaml:"output,omitempty"`
	StackTags        map[string]string `yaml:"stackTags,omitempty"`
	CloudFormation   CloudFormation    `yaml:"cloudformation,omitempty"`
	UnknownKeys      `yaml:",inline"`
}

type unknownKeysSupport interface {
	FailWhenUnknownKeysFound(keyPath string) error
}

type unknownKeyValidation struct {
	unknownKeysSupport
	keyPath string
}

func failFastWhenUnknownKeysFound(vs []unknownKeyValidation) error {
	for _, v := range vs {
		if err := v.unknownKeysSupport.FailWhenUnknownKeysFound(v.keyPath); err != nil {
			return err
		}
	}
	return nil
}

// NewDefaultConfig returns the values applied to every key the user leaves unset.
// stackName and cidrMask are derived from prefix and cidr in SetDefaults instead.
func NewDefaultConfig() *Config {
	return &Config{
		CIDR: DefaultCIDR,
		SecurityGroup: SecurityGroup{
			Name:    DefaultSecurityGroupName,
			SSHPort: DefaultSSHPort,
		},
		Instance: Instance{
			Name:           DefaultInstanceName,
			Type:           DefaultInstanceType,
			ImageParameter: DefaultImageParameter,
		},
		Output: Output{
			ExportName: DefaultExportName,
		},
	}
}

func ConfigFromFile(configPath string) (*Config, error) {
	data, err := ioutil.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	c, err := ConfigFromBytes(data)
	if err != nil {
		return nil, errors.Wrapf(err, "file %s", configPath)
	}

	return c, nil
}

// ConfigFromBytes parses the YAML config, applies environment overrides and defaults, then validates the result.
func ConfigFromBytes(data []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}

	if err := failFastWhenUnknownKeysFound([]unknownKeyValidation{
		{c, ""},
		{c.SecurityGroup, "securityGroup"},
		{c.Instance, "instance"},
		{c.EIP, "eip"},
		{c.Output, "output"},
		{c.CloudFormation, "cloudformation"},
	}); err != nil {
		return nil, err
	}

	overrides, err := EnvOverridesFromEnvironment()
	if err != nil {
		return nil, err
	}
	if err := c.ApplyOverrides(overrides); err != nil {
		return nil, err
	}

	if err := c.SetDefaults(); err != nil {
		return nil, err
	}

	if err := c.Instance.loadPublicKey(); err != nil {
		return nil, errors.Wrap(err, "invalid instance")
	}

	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return c, nil
}

// SetDefaults fills every unset key. Keys already set are never touched.
func (c *Config) SetDefaults() error {
	if err := mergo.Merge(c, NewDefaultConfig()); err != nil {
		return errors.Wrap(err, "failed to apply defaults")
	}

	if c.StackName == "" && c.Prefix != "" {
		c.StackName = naming.DefaultStackName(c.Prefix)
	}

	// One subnet in one AZ spans the whole range unless a smaller mask is requested
	if c.CIDRMask == 0 {
		if network, err := netutil.ParseIPv4CIDR(c.CIDR); err == nil {
			c.CIDRMask, _ = network.Mask.Size()
		}
	}

	return nil
}

func (c Config) Validate() error {
	if c.Prefix == "" {
		return errors.New("prefix must be set")
	}
	if c.Region.IsEmpty() {
		return errors.New("region must be set")
	}

	if err := cfnresource.ValidateStackName(c.StackName); err != nil {
		return err
	}

	network, err := netutil.ParseIPv4CIDR(c.CIDR)
	if err != nil {
		return errors.Wrapf(err, "invalid cidr")
	}
	if network.String() != c.CIDR {
		return errors.Errorf("cidr(=%s) has host bits set. Use %s", c.CIDR, network.String())
	}
	ones, _ := network.Mask.Size()
	if ones < minCIDRPrefix || ones > maxCIDRPrefix {
		return errors.Errorf("cidr(=%s) must have a prefix length between /%d and /%d", c.CIDR, minCIDRPrefix, maxCIDRPrefix)
	}
	if c.CIDRMask < ones || c.CIDRMask > maxCIDRPrefix {
		return errors.Errorf("cidrMask(=%d) must be between /%d and /%d for cidr %s", c.CIDRMask, ones, maxCIDRPrefix, c.CIDR)
	}

	// Peers are the cloud-side ranges reached over the VPN
	for _, peer := range c.PeerCIDRs {
		peerNetwork, err := netutil.ParseIPv4CIDR(peer)
		if err != nil {
			return errors.Wrapf(err, "invalid peerCIDRs entry")
		}
		if netutil.CidrOverlap(network, peerNetwork) {
			return errors.Errorf("cidr(=%s) overlaps peer range %s", c.CIDR, peer)
		}
	}

	for _, id := range []string{c.VPCLogicalName(), c.SecurityGroupLogicalName(), c.InstanceLogicalName()} {
		if err := cfnresource.ValidateLogicalID(id); err != nil {
			return err
		}
	}

	for kind, name := range map[string]string{
		"vpc name":            c.VPCName(),
		"subnet name":         c.PublicSubnetName(),
		"security group name": c.SecurityGroup.Name,
		"instance name":       c.Instance.Name,
	} {
		if err := cfnresource.ValidateNameLength(kind, name, cfnresource.MaxNameLength); err != nil {
			return err
		}
	}

	if err := c.SecurityGroup.Validate(); err != nil {
		return err
	}

	if err := c.Instance.Validate(); err != nil {
		return errors.Wrap(err, "invalid instance")
	}

	if c.Output.ExportName == "" {
		return errors.New("output.exportName must not be empty")
	}

	return nil
}

func (c Config) VPCName() string {
	return naming.VPCName(c.Prefix)
}

func (c Config) PublicSubnetName() string {
	return naming.PublicSubnetName(c.Prefix)
}

func (c Config) VPCLogicalName() string {
	return naming.FromStackToCfnResource(c.VPCName())
}

func (c Config) SecurityGroupLogicalName() string {
	return naming.FromStackToCfnResource(c.SecurityGroup.Name)
}

func (c Config) InstanceLogicalName() string {
	return naming.FromStackToCfnResource(c.Instance.Name)
}

// SubnetCIDR is the range of the single public subnet: the first /cidrMask block of the VPC range.
func (c Config) SubnetCIDR() (string, error) {
	network, err := netutil.ParseIPv4CIDR(c.CIDR)
	if err != nil {
		return "", err
	}
	subnet, err := netutil.FirstSubnet(network, c.CIDRMask)
	if err != nil {
		return "", err
	}
	return subnet.String(), nil
}

// SubnetRouterIP is the address of the VPC router inside the public subnet, the block's base address plus one.
func (c Config) SubnetRouterIP() (string, error) {
	network, err := netutil.ParseIPv4CIDR(c.CIDR)
	if err != nil {
		return "", err
	}
	subnet, err := netutil.FirstSubnet(network, c.CIDRMask)
	if err != nil {
		return "", err
	}
	return netutil.IncrementIP(subnet.IP).String(), nil
}

func (c Config) String() string {
	return fmt.Sprintf("%s (prefix=%s, cidr=%s, cidrMask=%d, region=%s)", c.StackName, c.Prefix, c.CIDR, c.CIDRMask, c.Region)
}
