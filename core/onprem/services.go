package onprem

import (
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudformation"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/tgw-labs/onprem-sim/cfnstack"
)

// CloudFormationAPI is the subset of the CloudFormation client the stack driver calls.
type CloudFormationAPI interface {
	cfnstack.CRUDService
	cfnstack.ValidationService
	cfnstack.CostEstimationService
	cfnstack.TemplateGetterService
	DeleteStack(input *cloudformation.DeleteStackInput) (*cloudformation.DeleteStackOutput, error)
	DescribeStackResource(input *cloudformation.DescribeStackResourceInput) (*cloudformation.DescribeStackResourceOutput, error)
}

type Services struct {
	CloudFormation CloudFormationAPI
	S3             cfnstack.S3ObjectPutterService
	EC2            cfnstack.EC2Interrogator
}

func ServicesFromSession(sess *session.Session) Services {
	return Services{
		CloudFormation: cloudformation.New(sess),
		S3:             s3.New(sess),
		EC2:            ec2.New(sess),
	}
}
