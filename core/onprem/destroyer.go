package onprem

import (
	"fmt"

	"github.com/tgw-labs/onprem-sim/cfnstack"
)

// Destroy deletes the stack. The EIP is released with it, so the exported allocation ID stops resolving.
func (s *Stack) Destroy(wait bool) error {
	exists, err := cfnstack.StackExists(s.svc.CloudFormation, s.StackName())
	if err != nil {
		return fmt.Errorf("failed to look up stack %s: %v", s.StackName(), err)
	}
	if !exists {
		return fmt.Errorf("stack %s does not exist", s.StackName())
	}

	destroyer := cfnstack.NewDestroyer(s.StackName(), s.Config.CloudFormation.RoleARN)
	if wait {
		return destroyer.DestroyAndWait(s.svc.CloudFormation)
	}
	return destroyer.Destroy(s.svc.CloudFormation)
}

// PublicIP returns the address the router is reachable at once the stack is up.
func (s *Stack) PublicIP() (string, error) {
	info, err := s.Info()
	if err != nil {
		return "", err
	}
	if s.Config.EIP.Associate && info.EIPPublicIP != "" {
		return info.EIPPublicIP, nil
	}
	if info.InstancePublicIP == "" {
		return "", fmt.Errorf("instance of stack %s has no public ip yet", s.StackName())
	}
	return info.InstancePublicIP, nil
}
