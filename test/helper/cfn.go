package helper

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/cloudformation"
)

// DummyCloudformationService records the requests it receives and answers DescribeStacks with StackStatuses
// in order, repeating the last one once exhausted.
type DummyCloudformationService struct {
	ExpectedTags      []*cloudformation.Tag
	StackEvents       []*cloudformation.StackEvent
	StackStatuses     []string
	StackStatusReason string
	Outputs           []*cloudformation.Output
	Resources         map[string]string
	ResourceErr       error
	TemplateBody      string
	StackMissing      bool
	NoUpdates         bool
	ValidateErr       error
	CostURL           string

	CreateInput   *cloudformation.CreateStackInput
	UpdateInput   *cloudformation.UpdateStackInput
	DeleteInput   *cloudformation.DeleteStackInput
	ValidateInput *cloudformation.ValidateTemplateInput
	CostInput     *cloudformation.EstimateTemplateCostInput
	DescribeCalls int
}

func stackNotFound(name string) error {
	return awserr.New("ValidationError", fmt.Sprintf("Stack with id %s does not exist", name), nil)
}

func (cfSvc *DummyCloudformationService) CreateStack(req *cloudformation.CreateStackInput) (*cloudformation.CreateStackOutput, error) {
	cfSvc.CreateInput = req

	if len(cfSvc.ExpectedTags) != len(req.Tags) {
		return nil, fmt.Errorf(
			"expected tag count does not match supplied tag count\nexpected=%v, supplied=%v",
			cfSvc.ExpectedTags,
			req.Tags,
		)
	}

	matchCnt := 0
	for _, eTag := range cfSvc.ExpectedTags {
		for _, tag := range req.Tags {
			if *tag.Key == *eTag.Key && *tag.Value == *eTag.Value {
				matchCnt++
				break
			}
		}
	}

	if matchCnt != len(cfSvc.ExpectedTags) {
		return nil, fmt.Errorf(
			"not all tags matched\nexpected=%v, observed=%v",
			cfSvc.ExpectedTags,
			req.Tags,
		)
	}

	return &cloudformation.CreateStackOutput{StackId: req.StackName}, nil
}

func (cfSvc *DummyCloudformationService) UpdateStack(req *cloudformation.UpdateStackInput) (*cloudformation.UpdateStackOutput, error) {
	cfSvc.UpdateInput = req
	if cfSvc.NoUpdates {
		return nil, awserr.New("ValidationError", "No updates are to be performed.", nil)
	}
	return &cloudformation.UpdateStackOutput{StackId: req.StackName}, nil
}

func (cfSvc *DummyCloudformationService) DeleteStack(req *cloudformation.DeleteStackInput) (*cloudformation.DeleteStackOutput, error) {
	cfSvc.DeleteInput = req
	return &cloudformation.DeleteStackOutput{}, nil
}

func (cfSvc *DummyCloudformationService) DescribeStacks(req *cloudformation.DescribeStacksInput) (*cloudformation.DescribeStacksOutput, error) {
	if cfSvc.StackMissing {
		return nil, stackNotFound(aws.StringValue(req.StackName))
	}

	status := ""
	if len(cfSvc.StackStatuses) > 0 {
		i := cfSvc.DescribeCalls
		if i >= len(cfSvc.StackStatuses) {
			i = len(cfSvc.StackStatuses) - 1
		}
		status = cfSvc.StackStatuses[i]
	}
	cfSvc.DescribeCalls++

	return &cloudformation.DescribeStacksOutput{
		Stacks: []*cloudformation.Stack{
			{
				StackName:         req.StackName,
				StackStatus:       aws.String(status),
				StackStatusReason: aws.String(cfSvc.StackStatusReason),
				Outputs:           cfSvc.Outputs,
			},
		},
	}, nil
}

func (cfSvc *DummyCloudformationService) DescribeStackEvents(req *cloudformation.DescribeStackEventsInput) (*cloudformation.DescribeStackEventsOutput, error) {
	return &cloudformation.DescribeStackEventsOutput{StackEvents: cfSvc.StackEvents}, nil
}

func (cfSvc *DummyCloudformationService) DescribeStackResource(req *cloudformation.DescribeStackResourceInput) (*cloudformation.DescribeStackResourceOutput, error) {
	if cfSvc.ResourceErr != nil {
		return nil, cfSvc.ResourceErr
	}
	logicalID := aws.StringValue(req.LogicalResourceId)
	physicalID, ok := cfSvc.Resources[logicalID]
	if !ok {
		return nil, awserr.New("ValidationError", fmt.Sprintf("Resource %s does not exist for stack %s", logicalID, aws.StringValue(req.StackName)), nil)
	}
	return &cloudformation.DescribeStackResourceOutput{
		StackResourceDetail: &cloudformation.StackResourceDetail{
			LogicalResourceId:  req.LogicalResourceId,
			PhysicalResourceId: aws.String(physicalID),
		},
	}, nil
}

func (cfSvc *DummyCloudformationService) ValidateTemplate(req *cloudformation.ValidateTemplateInput) (*cloudformation.ValidateTemplateOutput, error) {
	cfSvc.ValidateInput = req
	if cfSvc.ValidateErr != nil {
		return nil, cfSvc.ValidateErr
	}
	return &cloudformation.ValidateTemplateOutput{
		Capabilities: []*string{aws.String(cloudformation.CapabilityCapabilityIam)},
	}, nil
}

func (cfSvc *DummyCloudformationService) EstimateTemplateCost(req *cloudformation.EstimateTemplateCostInput) (*cloudformation.EstimateTemplateCostOutput, error) {
	cfSvc.CostInput = req
	if cfSvc.CostURL == "" {
		return &cloudformation.EstimateTemplateCostOutput{}, nil
	}
	return &cloudformation.EstimateTemplateCostOutput{Url: aws.String(cfSvc.CostURL)}, nil
}

func (cfSvc *DummyCloudformationService) GetTemplate(req *cloudformation.GetTemplateInput) (*cloudformation.GetTemplateOutput, error) {
	if cfSvc.StackMissing {
		return nil, stackNotFound(aws.StringValue(req.StackName))
	}
	return &cloudformation.GetTemplateOutput{TemplateBody: aws.String(cfSvc.TemplateBody)}, nil
}
