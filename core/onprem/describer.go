package onprem

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/cloudformation"
	"github.com/aws/aws-sdk-go/service/ec2"

	"github.com/tgw-labs/onprem-sim/cfnstack"
)

type Info struct {
	StackName        string
	StackStatus      string
	Region           string
	EIPAllocationID  string
	EIPPublicIP      string
	InstanceID       string
	InstanceState    string
	InstancePublicIP string
	KeyFingerprint   string
}

func (i *Info) String() string {
	buf := new(bytes.Buffer)
	w := new(tabwriter.Writer)
	w.Init(buf, 0, 8, 0, '\t', 0)

	fmt.Fprintf(w, "Stack Name:\t%s\n", i.StackName)
	fmt.Fprintf(w, "Stack Status:\t%s\n", i.StackStatus)
	fmt.Fprintf(w, "Region:\t%s\n", i.Region)
	fmt.Fprintf(w, "EIP Allocation ID:\t%s\n", orNone(i.EIPAllocationID))
	fmt.Fprintf(w, "EIP Public IP:\t%s\n", orNone(i.EIPPublicIP))
	fmt.Fprintf(w, "Instance ID:\t%s\n", orNone(i.InstanceID))
	fmt.Fprintf(w, "Instance State:\t%s\n", orNone(i.InstanceState))
	fmt.Fprintf(w, "Instance Public IP:\t%s\n", orNone(i.InstancePublicIP))
	if i.KeyFingerprint != "" {
		fmt.Fprintf(w, "SSH Key Fingerprint:\t%s\n", i.KeyFingerprint)
	}

	w.Flush()
	return buf.String()
}

func orNone(s string) string {
	if s == "" {
		return "<none>"
	}
	return s
}

// Info describes the deployed stack. Resources CloudFormation has not created yet are left empty.
func (s *Stack) Info() (*Info, error) {
	params := newStackTemplateParams(s.Config, "")
	cfSvc := s.svc.CloudFormation

	resp, err := cfSvc.DescribeStacks(&cloudformation.DescribeStacksInput{
		StackName: aws.String(s.StackName()),
	})
	if err != nil {
		return nil, fmt.Errorf("error describing stack %s: %v", s.StackName(), err)
	}
	if len(resp.Stacks) == 0 {
		return nil, fmt.Errorf("could not find a stack with name %s", s.StackName())
	}
	stack := resp.Stacks[0]

	info := &Info{
		StackName:      s.StackName(),
		StackStatus:    aws.StringValue(stack.StackStatus),
		Region:         s.Config.Region.String(),
		KeyFingerprint: s.Config.Instance.SSHPublicKeyFingerprint(),
	}

	for _, o := range stack.Outputs {
		if aws.StringValue(o.OutputKey) == params.OutputLogicalName() {
			info.EIPAllocationID = aws.StringValue(o.OutputValue)
		}
	}

	if info.EIPAllocationID != "" {
		addrs, err := s.svc.EC2.DescribeAddresses(&ec2.DescribeAddressesInput{
			AllocationIds: []*string{aws.String(info.EIPAllocationID)},
		})
		if err != nil {
			return nil, fmt.Errorf("error describing address %s: %v", info.EIPAllocationID, err)
		}
		if len(addrs.Addresses) > 0 {
			info.EIPPublicIP = aws.StringValue(addrs.Addresses[0].PublicIp)
		}
	}

	res, err := cfSvc.DescribeStackResource(&cloudformation.DescribeStackResourceInput{
		LogicalResourceId: aws.String(params.InstanceLogicalName()),
		StackName:         aws.String(s.StackName()),
	})
	if err != nil {
		// The instance is not declared yet while the stack is being created
		if cfnstack.IsNotFound(err) {
			return info, nil
		}
		return nil, fmt.Errorf("error describing instance resource of stack %s: %v", s.StackName(), err)
	}
	if res.StackResourceDetail == nil {
		return info, nil
	}
	info.InstanceID = aws.StringValue(res.StackResourceDetail.PhysicalResourceId)
	if info.InstanceID == "" {
		return info, nil
	}

	instances, err := s.svc.EC2.DescribeInstances(&ec2.DescribeInstancesInput{
		InstanceIds: []*string{aws.String(info.InstanceID)},
	})
	if err != nil {
		return nil, fmt.Errorf("error describing instance %s: %v", info.InstanceID, err)
	}
	for _, r := range instances.Reservations {
		for _, instance := range r.Instances {
			if instance.State != nil {
				info.InstanceState = aws.StringValue(instance.State.Name)
			}
			info.InstancePublicIP = aws.StringValue(instance.PublicIpAddress)
		}
	}

	return info, nil
}
