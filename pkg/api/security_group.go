package api

import "fmt"

const (
	DefaultSecurityGroupName = "SecurityGroupForEc2OpenSwan"
	DefaultSSHPort           = 22
	// AnyIPv4 is the only source the simulated data center accepts traffic from.
	AnyIPv4 = "0.0.0.0/0"
)

type SecurityGroup struct {
	Name        string `yaml:"name,omitempty"`
	SSHPort     int    `yaml:"sshPort,omitempty"`
	UnknownKeys `yaml:",inline"`
}

func (g SecurityGroup) Validate() error {
	if g.SSHPort < 1 || g.SSHPort > 65535 {
		return fmt.Errorf("securityGroup.sshPort must be between 1 and 65535 but was %d", g.SSHPort)
	}
	return nil
}
