package helper

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ec2"
)

type DummyEC2Service struct {
	Instances map[string]*ec2.Instance
	Addresses map[string]*ec2.Address
}

func (svc DummyEC2Service) DescribeInstances(input *ec2.DescribeInstancesInput) (*ec2.DescribeInstancesOutput, error) {
	var instances []*ec2.Instance
	for _, id := range input.InstanceIds {
		instance, ok := svc.Instances[aws.StringValue(id)]
		if !ok {
			return nil, fmt.Errorf("InvalidInstanceID.NotFound: %s", aws.StringValue(id))
		}
		instances = append(instances, instance)
	}
	return &ec2.DescribeInstancesOutput{
		Reservations: []*ec2.Reservation{{Instances: instances}},
	}, nil
}

func (svc DummyEC2Service) DescribeAddresses(input *ec2.DescribeAddressesInput) (*ec2.DescribeAddressesOutput, error) {
	var addresses []*ec2.Address
	for _, id := range input.AllocationIds {
		address, ok := svc.Addresses[aws.StringValue(id)]
		if !ok {
			return nil, fmt.Errorf("InvalidAllocationID.NotFound: %s", aws.StringValue(id))
		}
		addresses = append(addresses, address)
	}
	return &ec2.DescribeAddressesOutput{Addresses: addresses}, nil
}
