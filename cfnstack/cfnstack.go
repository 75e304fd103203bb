package cfnstack

import (
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/cloudformation"
	"github.com/aws/aws-sdk-go/service/s3"
)

var CFN_TEMPLATE_SIZE_LIMIT = 51200

type CreationService interface {
	CreateStack(*cloudformation.CreateStackInput) (*cloudformation.CreateStackOutput, error)
}

type UpdateService interface {
	UpdateStack(input *cloudformation.UpdateStackInput) (*cloudformation.UpdateStackOutput, error)
}

type CRUDService interface {
	CreateStack(*cloudformation.CreateStackInput) (*cloudformation.CreateStackOutput, error)
	UpdateStack(input *cloudformation.UpdateStackInput) (*cloudformation.UpdateStackOutput, error)
	DescribeStacks(input *cloudformation.DescribeStacksInput) (*cloudformation.DescribeStacksOutput, error)
	DescribeStackEvents(input *cloudformation.DescribeStackEventsInput) (*cloudformation.DescribeStackEventsOutput, error)
}

type DeletionService interface {
	DeleteStack(input *cloudformation.DeleteStackInput) (*cloudformation.DeleteStackOutput, error)
	DescribeStacks(input *cloudformation.DescribeStacksInput) (*cloudformation.DescribeStacksOutput, error)
}

type ValidationService interface {
	ValidateTemplate(input *cloudformation.ValidateTemplateInput) (*cloudformation.ValidateTemplateOutput, error)
}

type CostEstimationService interface {
	EstimateTemplateCost(input *cloudformation.EstimateTemplateCostInput) (*cloudformation.EstimateTemplateCostOutput, error)
}

type TemplateGetterService interface {
	GetTemplate(input *cloudformation.GetTemplateInput) (*cloudformation.GetTemplateOutput, error)
}

type CFInterrogator interface {
	DescribeStacks(input *cloudformation.DescribeStacksInput) (*cloudformation.DescribeStacksOutput, error)
}

type S3ObjectPutterService interface {
	PutObject(input *s3.PutObjectInput) (*s3.PutObjectOutput, error)
}

func StackEventErrMsgs(events []*cloudformation.StackEvent) []string {
	var errMsgs []string

	for _, event := range events {
		status := aws.StringValue(event.ResourceStatus)
		if status == cloudformation.ResourceStatusCreateFailed || status == cloudformation.ResourceStatusUpdateFailed || status == cloudformation.ResourceStatusDeleteFailed {
			// Only show actual failures, not cancelled dependent resources.
			if aws.StringValue(event.ResourceStatusReason) != "Resource creation cancelled" {
				errMsgs = append(errMsgs,
					strings.TrimSpace(
						strings.Join([]string{
							status,
							aws.StringValue(event.ResourceType),
							aws.StringValue(event.LogicalResourceId),
							aws.StringValue(event.ResourceStatusReason),
						}, " ")))
			}
		}
	}

	return errMsgs
}

// StackExists reports whether a stack with the name exists and has not been deleted.
func StackExists(cf CFInterrogator, stackName string) (bool, error) {
	resp, err := cf.DescribeStacks(&cloudformation.DescribeStacksInput{StackName: aws.String(stackName)})
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	if resp == nil {
		return false, nil
	}

	for _, s := range resp.Stacks {
		if aws.StringValue(s.StackName) != stackName {
			continue
		}
		if s.DeletionTime == nil && aws.StringValue(s.StackStatus) != cloudformation.StackStatusDeleteComplete {
			return true, nil
		}
	}
	return false, nil
}

// IsNotFound reports whether CloudFormation rejected a request because the stack or one of its resources does not exist.
func IsNotFound(err error) bool {
	if aerr, ok := err.(awserr.Error); ok {
		return aerr.Code() == "ValidationError" && strings.Contains(aerr.Message(), "does not exist")
	}
	return false
}

func isNoUpdates(err error) bool {
	if aerr, ok := err.(awserr.Error); ok {
		return aerr.Code() == "ValidationError" && strings.Contains(aerr.Message(), "No updates are to be performed")
	}
	return false
}
