package cfnstack

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/cloudformation"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/tgw-labs/onprem-sim/pkg/api"
)

const RemoteStackTemplateFilename = "stack.json"

var pollInterval = 3 * time.Second

type Provisioner struct {
	stackName string
	stackTags map[string]string
	s3URI     string
	region    api.Region
	roleARN   string
}

func NewProvisioner(name string, stackTags map[string]string, s3URI string, region api.Region, roleARN string) *Provisioner {
	return &Provisioner{
		stackName: name,
		stackTags: stackTags,
		s3URI:     s3URI,
		region:    region,
		roleARN:   roleARN,
	}
}

func (c *Provisioner) StackName() string {
	return c.stackName
}

// uploadFile puts content at s3://<bucket>/<directory>/<stackName>/<filename> and returns its https URL.
func (c *Provisioner) uploadFile(s3Svc S3ObjectPutterService, content string, filename string) (string, error) {
	s3URI, err := S3URIFromString(c.s3URI)
	if err != nil {
		return "", err
	}

	key := s3URI.Key(c.stackName, filename)
	bucket := s3URI.Bucket()

	_, err = s3Svc.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          strings.NewReader(content),
		ContentLength: aws.Int64(int64(len(content))),
		ContentType:   aws.String("application/json"),
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s/%s", c.region.S3Endpoint(), bucket, key), nil
}

func (c *Provisioner) uploadTemplateIfNecessary(s3Svc S3ObjectPutterService, stackBody string) (*string, error) {
	if len(stackBody) > CFN_TEMPLATE_SIZE_LIMIT {
		if c.s3URI == "" {
			return nil, fmt.Errorf("stack template's size(=%d) exceeds the %d bytes limit of cloudformation. `--s3-uri s3://<bucket>/path/to/dir` must be specified to upload it to S3 beforehand", len(stackBody), CFN_TEMPLATE_SIZE_LIMIT)
		}

		templateURL, err := c.uploadFile(s3Svc, stackBody, RemoteStackTemplateFilename)
		if err != nil {
			return nil, fmt.Errorf("Template upload failed: %v", err)
		}

		return &templateURL, nil
	}

	return nil, nil
}

func (c *Provisioner) baseCreateStackInput() *cloudformation.CreateStackInput {
	var tags []*cloudformation.Tag
	for k, v := range c.stackTags {
		key := k
		value := v
		tags = append(tags, &cloudformation.Tag{Key: &key, Value: &value})
	}

	input := &cloudformation.CreateStackInput{
		StackName:    aws.String(c.stackName),
		OnFailure:    aws.String(cloudformation.OnFailureDoNothing),
		Capabilities: []*string{aws.String(cloudformation.CapabilityCapabilityIam)},
		Tags:         tags,
	}
	if c.roleARN != "" {
		input.RoleARN = aws.String(c.roleARN)
	}
	return input
}

func (c *Provisioner) CreateStack(cfSvc CreationService, s3Svc S3ObjectPutterService, stackBody string) (*cloudformation.CreateStackOutput, error) {
	templateURL, err := c.uploadTemplateIfNecessary(s3Svc, stackBody)
	if err != nil {
		return nil, fmt.Errorf("template upload failed: %v", err)
	}

	input := c.baseCreateStackInput()
	if templateURL != nil {
		input.TemplateURL = templateURL
	} else {
		input.TemplateBody = aws.String(stackBody)
	}

	resp, err := cfSvc.CreateStack(input)
	if err != nil {
		return nil, fmt.Errorf("stack creation failed: %v", err)
	}
	return resp, nil
}

func (c *Provisioner) CreateStackAndWait(cfSvc CRUDService, s3Svc S3ObjectPutterService, stackBody string) error {
	resp, err := c.CreateStack(cfSvc, s3Svc, stackBody)
	if err != nil {
		return err
	}
	return c.waitForCreation(cfSvc, resp.StackId)
}

func (c *Provisioner) waitForCreation(cfSvc CRUDService, stackID *string) error {
	req := cloudformation.DescribeStacksInput{
		StackName: stackID,
	}

	for {
		resp, err := cfSvc.DescribeStacks(&req)
		if err != nil {
			return err
		}
		if len(resp.Stacks) == 0 {
			return fmt.Errorf("stack not found")
		}
		statusString := aws.StringValue(resp.Stacks[0].StackStatus)
		switch statusString {
		case cloudformation.ResourceStatusCreateComplete:
			return nil
		case cloudformation.ResourceStatusCreateFailed:
			errMsg := fmt.Sprintf(
				"Stack creation failed: %s : %s",
				statusString,
				aws.StringValue(resp.Stacks[0].StackStatusReason),
			)
			errMsg = errMsg + "\n\nPrinting the most recent failed stack events:\n"

			stackEventsOutput, err := cfSvc.DescribeStackEvents(
				&cloudformation.DescribeStackEventsInput{
					StackName: resp.Stacks[0].StackName,
				})
			if err != nil {
				return err
			}
			errMsg = errMsg + strings.Join(StackEventErrMsgs(stackEventsOutput.StackEvents), "\n")
			return errors.New(errMsg)
		case cloudformation.ResourceStatusCreateInProgress:
			time.Sleep(pollInterval)
			continue
		default:
			return fmt.Errorf("unexpected stack status: %s", statusString)
		}
	}
}

func (c *Provisioner) baseUpdateStackInput() *cloudformation.UpdateStackInput {
	input := &cloudformation.UpdateStackInput{
		Capabilities: []*string{aws.String(cloudformation.CapabilityCapabilityIam)},
		StackName:    aws.String(c.stackName),
	}
	if c.roleARN != "" {
		input.RoleARN = aws.String(c.roleARN)
	}
	return input
}

// UpdateStack returns a nil output without error when the deployed template already matches stackBody.
func (c *Provisioner) UpdateStack(cfSvc UpdateService, s3Svc S3ObjectPutterService, stackBody string) (*cloudformation.UpdateStackOutput, error) {
	templateURL, err := c.uploadTemplateIfNecessary(s3Svc, stackBody)
	if err != nil {
		return nil, fmt.Errorf("template upload failed: %v", err)
	}

	input := c.baseUpdateStackInput()
	if templateURL != nil {
		input.TemplateURL = templateURL
	} else {
		input.TemplateBody = aws.String(stackBody)
	}

	resp, err := cfSvc.UpdateStack(input)
	if err != nil {
		if isNoUpdates(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stack update failed: %v", err)
	}
	return resp, nil
}

func (c *Provisioner) UpdateStackAndWait(cfSvc CRUDService, s3Svc S3ObjectPutterService, stackBody string) (string, error) {
	updateOutput, err := c.UpdateStack(cfSvc, s3Svc, stackBody)
	if err != nil {
		return "", fmt.Errorf("error updating cloudformation stack: %v", err)
	}
	if updateOutput == nil {
		return "", nil
	}
	req := cloudformation.DescribeStacksInput{
		StackName: updateOutput.StackId,
	}
	for {
		resp, err := cfSvc.DescribeStacks(&req)
		if err != nil {
			return "", err
		}
		if len(resp.Stacks) == 0 {
			return "", fmt.Errorf("stack not found")
		}
		statusString := aws.StringValue(resp.Stacks[0].StackStatus)
		switch statusString {
		case cloudformation.ResourceStatusUpdateComplete:
			return updateOutput.String(), nil
		case cloudformation.ResourceStatusUpdateFailed, cloudformation.StackStatusUpdateRollbackComplete, cloudformation.StackStatusUpdateRollbackFailed:
			errMsg := fmt.Sprintf("Stack status: %s : %s", statusString, aws.StringValue(resp.Stacks[0].StackStatusReason))
			return "", errors.New(errMsg)
		case cloudformation.ResourceStatusUpdateInProgress, cloudformation.StackStatusUpdateCompleteCleanupInProgress, cloudformation.StackStatusUpdateRollbackInProgress, cloudformation.StackStatusUpdateRollbackCompleteCleanupInProgress:
			time.Sleep(pollInterval)
			continue
		default:
			return "", fmt.Errorf("unexpected stack status: %s", statusString)
		}
	}
}

func (c *Provisioner) Validate(cfSvc ValidationService, s3Svc S3ObjectPutterService, stackBody string) (string, error) {
	validateInput := cloudformation.ValidateTemplateInput{}

	templateURL, err := c.uploadTemplateIfNecessary(s3Svc, stackBody)
	if err != nil {
		return "", fmt.Errorf("template upload failed: %v", err)
	} else if templateURL != nil {
		validateInput.TemplateURL = templateURL
	} else {
		validateInput.TemplateBody = aws.String(stackBody)
	}

	validationReport, err := cfSvc.ValidateTemplate(&validateInput)
	if err != nil {
		return "", fmt.Errorf("invalid cloudformation stack: %v", err)
	}

	return validationReport.String(), nil
}

func (c *Provisioner) EstimateTemplateCost(cfSvc CostEstimationService, s3Svc S3ObjectPutterService, stackBody string, parameters []*cloudformation.Parameter) (*cloudformation.EstimateTemplateCostOutput, error) {
	input := cloudformation.EstimateTemplateCostInput{
		Parameters: parameters,
	}

	templateURL, err := c.uploadTemplateIfNecessary(s3Svc, stackBody)
	if err != nil {
		return nil, fmt.Errorf("template upload failed: %v", err)
	} else if templateURL != nil {
		input.TemplateURL = templateURL
	} else {
		input.TemplateBody = aws.String(stackBody)
	}

	output, err := cfSvc.EstimateTemplateCost(&input)
	if err != nil {
		return nil, fmt.Errorf("failed to estimate template cost: %v", err)
	}
	return output, nil
}

// CurrentTemplate returns the template body of the deployed stack.
func (c *Provisioner) CurrentTemplate(cfSvc TemplateGetterService) (string, error) {
	output, err := cfSvc.GetTemplate(&cloudformation.GetTemplateInput{
		StackName:     aws.String(c.stackName),
		TemplateStage: aws.String(cloudformation.TemplateStageOriginal),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get current stack template: %v", err)
	}
	return aws.StringValue(output.TemplateBody), nil
}
