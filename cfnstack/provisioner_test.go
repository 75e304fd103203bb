package cfnstack

import (
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/cloudformation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgw-labs/onprem-sim/pkg/api"
	"github.com/tgw-labs/onprem-sim/test/helper"
)

func init() {
	pollInterval = 0
}

var stackTags = map[string]string{
	"Environment": "lab",
	"Owner":       "network-team",
}

func expectedTags() []*cloudformation.Tag {
	return []*cloudformation.Tag{
		{Key: aws.String("Environment"), Value: aws.String("lab")},
		{Key: aws.String("Owner"), Value: aws.String("network-team")},
	}
}

func TestCloudFormationStackCreation(t *testing.T) {
	provisioner := NewProvisioner("dc1-onprem", stackTags, "", api.RegionForName("us-west-1"), "")

	t.Run("TagsArePassed", func(t *testing.T) {
		cfSvc := &helper.DummyCloudformationService{ExpectedTags: expectedTags()}
		s3Svc := &helper.DummyS3ObjectPutterService{}

		_, err := provisioner.CreateStack(cfSvc, s3Svc, "{}")
		require.NoError(t, err)
		assert.Equal(t, "{}", aws.StringValue(cfSvc.CreateInput.TemplateBody))
		assert.Nil(t, cfSvc.CreateInput.TemplateURL)
		assert.Nil(t, cfSvc.CreateInput.RoleARN)
		assert.Equal(t, cloudformation.OnFailureDoNothing, aws.StringValue(cfSvc.CreateInput.OnFailure))
		assert.Equal(t, 0, s3Svc.PutCount)
	})

	t.Run("MismatchedTagsAreRejected", func(t *testing.T) {
		cfSvc := &helper.DummyCloudformationService{ExpectedTags: expectedTags()[:1]}

		_, err := provisioner.CreateStack(cfSvc, &helper.DummyS3ObjectPutterService{}, "{}")
		assert.Error(t, err)
	})

	t.Run("RoleARN", func(t *testing.T) {
		withRole := NewProvisioner("dc1-onprem", nil, "", api.RegionForName("us-west-1"), "arn:aws:iam::123456789012:role/cfn")
		cfSvc := &helper.DummyCloudformationService{}

		_, err := withRole.CreateStack(cfSvc, &helper.DummyS3ObjectPutterService{}, "{}")
		require.NoError(t, err)
		assert.Equal(t, "arn:aws:iam::123456789012:role/cfn", aws.StringValue(cfSvc.CreateInput.RoleARN))
	})
}

func TestCreateStackAndWait(t *testing.T) {
	provisioner := NewProvisioner("dc1-onprem", nil, "", api.RegionForName("us-west-1"), "")

	t.Run("Completes", func(t *testing.T) {
		cfSvc := &helper.DummyCloudformationService{
			StackStatuses: []string{
				cloudformation.ResourceStatusCreateInProgress,
				cloudformation.ResourceStatusCreateInProgress,
				cloudformation.ResourceStatusCreateComplete,
			},
		}
		err := provisioner.CreateStackAndWait(cfSvc, &helper.DummyS3ObjectPutterService{}, "{}")
		require.NoError(t, err)
		assert.Equal(t, 3, cfSvc.DescribeCalls)
	})

	t.Run("FailsWithEvents", func(t *testing.T) {
		cfSvc := &helper.DummyCloudformationService{
			StackStatuses:     []string{cloudformation.ResourceStatusCreateInProgress, cloudformation.ResourceStatusCreateFailed},
			StackStatusReason: "The following resource(s) failed to create: [OnPremEc2]",
			StackEvents: []*cloudformation.StackEvent{
				{
					ResourceStatus:       aws.String(cloudformation.ResourceStatusCreateFailed),
					ResourceType:         aws.String("AWS::EC2::Instance"),
					LogicalResourceId:    aws.String("OnPremEc2"),
					ResourceStatusReason: aws.String("Your quota allows for 0 more running instance(s)"),
				},
			},
		}
		err := provisioner.CreateStackAndWait(cfSvc, &helper.DummyS3ObjectPutterService{}, "{}")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CREATE_FAILED AWS::EC2::Instance OnPremEc2")
		assert.Contains(t, err.Error(), "failed to create: [OnPremEc2]")
	})

	t.Run("UnexpectedStatus", func(t *testing.T) {
		cfSvc := &helper.DummyCloudformationService{
			StackStatuses: []string{cloudformation.StackStatusRollbackComplete},
		}
		err := provisioner.CreateStackAndWait(cfSvc, &helper.DummyS3ObjectPutterService{}, "{}")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected stack status")
	})
}

func TestUpdateStackAndWait(t *testing.T) {
	provisioner := NewProvisioner("dc1-onprem", nil, "", api.RegionForName("us-west-1"), "")

	t.Run("NoUpdates", func(t *testing.T) {
		cfSvc := &helper.DummyCloudformationService{NoUpdates: true}
		report, err := provisioner.UpdateStackAndWait(cfSvc, &helper.DummyS3ObjectPutterService{}, "{}")
		require.NoError(t, err)
		assert.Empty(t, report)
		assert.Equal(t, 0, cfSvc.DescribeCalls)
	})

	t.Run("Completes", func(t *testing.T) {
		cfSvc := &helper.DummyCloudformationService{
			StackStatuses: []string{
				cloudformation.ResourceStatusUpdateInProgress,
				cloudformation.StackStatusUpdateCompleteCleanupInProgress,
				cloudformation.ResourceStatusUpdateComplete,
			},
		}
		report, err := provisioner.UpdateStackAndWait(cfSvc, &helper.DummyS3ObjectPutterService{}, "{}")
		require.NoError(t, err)
		assert.Contains(t, report, "dc1-onprem")
		assert.Equal(t, "dc1-onprem", aws.StringValue(cfSvc.UpdateInput.StackName))
	})

	t.Run("RolledBack", func(t *testing.T) {
		cfSvc := &helper.DummyCloudformationService{
			StackStatuses: []string{cloudformation.StackStatusUpdateRollbackComplete},
		}
		_, err := provisioner.UpdateStackAndWait(cfSvc, &helper.DummyS3ObjectPutterService{}, "{}")
		assert.Error(t, err)
	})
}

func TestTemplateUpload(t *testing.T) {
	largeBody := "{" + strings.Repeat(" ", CFN_TEMPLATE_SIZE_LIMIT) + "}"

	t.Run("RequiresS3URIWhenTooLarge", func(t *testing.T) {
		provisioner := NewProvisioner("dc1-onprem", nil, "", api.RegionForName("us-west-1"), "")
		_, err := provisioner.CreateStack(&helper.DummyCloudformationService{}, &helper.DummyS3ObjectPutterService{}, largeBody)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--s3-uri")
	})

	t.Run("UploadsToDirectory", func(t *testing.T) {
		provisioner := NewProvisioner("dc1-onprem", nil, "s3://mybucket/mydir", api.RegionForName("us-west-1"), "")
		cfSvc := &helper.DummyCloudformationService{}
		s3Svc := &helper.DummyS3ObjectPutterService{
			ExpectedBucket:        "mybucket",
			ExpectedKey:           "mydir/dc1-onprem/stack.json",
			ExpectedBody:          largeBody,
			ExpectedContentType:   "application/json",
			ExpectedContentLength: int64(len(largeBody)),
		}

		_, err := provisioner.CreateStack(cfSvc, s3Svc, largeBody)
		require.NoError(t, err)
		assert.Equal(t, 1, s3Svc.PutCount)
		assert.Nil(t, cfSvc.CreateInput.TemplateBody)
		assert.Equal(t, "https://s3.amazonaws.com/mybucket/mydir/dc1-onprem/stack.json", aws.StringValue(cfSvc.CreateInput.TemplateURL))
	})

	t.Run("UploadsToBucketRootInChina", func(t *testing.T) {
		provisioner := NewProvisioner("dc1-onprem", nil, "s3://mybucket", api.RegionForName("cn-north-1"), "")
		cfSvc := &helper.DummyCloudformationService{}
		s3Svc := &helper.DummyS3ObjectPutterService{
			ExpectedBucket:        "mybucket",
			ExpectedKey:           "dc1-onprem/stack.json",
			ExpectedBody:          largeBody,
			ExpectedContentType:   "application/json",
			ExpectedContentLength: int64(len(largeBody)),
		}

		_, err := provisioner.Validate(cfSvc, s3Svc, largeBody)
		require.NoError(t, err)
		assert.Equal(t, "https://s3.cn-north-1.amazonaws.com.cn/mybucket/dc1-onprem/stack.json", aws.StringValue(cfSvc.ValidateInput.TemplateURL))
	})
}

func TestEstimateTemplateCost(t *testing.T) {
	provisioner := NewProvisioner("dc1-onprem", nil, "", api.RegionForName("us-west-1"), "")
	cfSvc := &helper.DummyCloudformationService{CostURL: "https://calculator.example/estimate"}
	params := []*cloudformation.Parameter{{ParameterKey: aws.String("OnPremEc2ImageId"), UsePreviousValue: aws.Bool(true)}}

	out, err := provisioner.EstimateTemplateCost(cfSvc, &helper.DummyS3ObjectPutterService{}, "{}", params)
	require.NoError(t, err)
	assert.Equal(t, "https://calculator.example/estimate", aws.StringValue(out.Url))
	assert.Equal(t, params, cfSvc.CostInput.Parameters)
}

func TestCurrentTemplate(t *testing.T) {
	provisioner := NewProvisioner("dc1-onprem", nil, "", api.RegionForName("us-west-1"), "")

	body, err := provisioner.CurrentTemplate(&helper.DummyCloudformationService{TemplateBody: `{"Resources":{}}`})
	require.NoError(t, err)
	assert.Equal(t, `{"Resources":{}}`, body)

	_, err = provisioner.CurrentTemplate(&helper.DummyCloudformationService{StackMissing: true})
	assert.Error(t, err)
}

func TestDestroyAndWait(t *testing.T) {
	t.Run("UntilGone", func(t *testing.T) {
		cfSvc := &helper.DummyCloudformationService{
			StackStatuses: []string{cloudformation.StackStatusDeleteInProgress, cloudformation.StackStatusDeleteComplete},
		}
		err := NewDestroyer("dc1-onprem", "arn:aws:iam::123456789012:role/cfn").DestroyAndWait(cfSvc)
		require.NoError(t, err)
		assert.Equal(t, "dc1-onprem", aws.StringValue(cfSvc.DeleteInput.StackName))
		assert.Equal(t, "arn:aws:iam::123456789012:role/cfn", aws.StringValue(cfSvc.DeleteInput.RoleARN))
	})

	t.Run("StackAlreadyGone", func(t *testing.T) {
		cfSvc := &helper.DummyCloudformationService{StackMissing: true}
		require.NoError(t, NewDestroyer("dc1-onprem", "").DestroyAndWait(cfSvc))
	})

	t.Run("Fails", func(t *testing.T) {
		cfSvc := &helper.DummyCloudformationService{
			StackStatuses:     []string{cloudformation.StackStatusDeleteFailed},
			StackStatusReason: "EIP is still associated",
		}
		err := NewDestroyer("dc1-onprem", "").DestroyAndWait(cfSvc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "EIP is still associated")
	})
}
