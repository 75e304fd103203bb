package cfnstack

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/cloudformation"
)

type Destroyer struct {
	stackName string
	roleARN   string
}

func NewDestroyer(stackName string, roleARN string) *Destroyer {
	return &Destroyer{
		stackName: stackName,
		roleARN:   roleARN,
	}
}

func (d *Destroyer) Destroy(cfSvc DeletionService) error {
	input := &cloudformation.DeleteStackInput{
		StackName: aws.String(d.stackName),
	}
	if d.roleARN != "" {
		input.RoleARN = aws.String(d.roleARN)
	}
	_, err := cfSvc.DeleteStack(input)
	return err
}

// DestroyAndWait deletes the stack and blocks until CloudFormation reports it gone.
func (d *Destroyer) DestroyAndWait(cfSvc DeletionService) error {
	if err := d.Destroy(cfSvc); err != nil {
		return err
	}

	req := cloudformation.DescribeStacksInput{StackName: aws.String(d.stackName)}
	for {
		resp, err := cfSvc.DescribeStacks(&req)
		if err != nil {
			if IsNotFound(err) {
				return nil
			}
			return err
		}
		if len(resp.Stacks) == 0 {
			return nil
		}
		statusString := aws.StringValue(resp.Stacks[0].StackStatus)
		switch statusString {
		case cloudformation.StackStatusDeleteComplete:
			return nil
		case cloudformation.StackStatusDeleteFailed:
			return fmt.Errorf("Stack deletion failed: %s : %s", statusString, aws.StringValue(resp.Stacks[0].StackStatusReason))
		case cloudformation.StackStatusDeleteInProgress:
			time.Sleep(pollInterval)
			continue
		default:
			return fmt.Errorf("unexpected stack status: %s", statusString)
		}
	}
}
