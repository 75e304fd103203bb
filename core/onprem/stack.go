package onprem

import (
	"fmt"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/davecgh/go-spew/spew"

	"github.com/tgw-labs/onprem-sim/awsconn"
	"github.com/tgw-labs/onprem-sim/cfnresource"
	"github.com/tgw-labs/onprem-sim/cfnstack"
	"github.com/tgw-labs/onprem-sim/filegen"
	"github.com/tgw-labs/onprem-sim/fingerprint"
	"github.com/tgw-labs/onprem-sim/logger"
	"github.com/tgw-labs/onprem-sim/pkg/api"
)

const (
	RenderedStackTemplateFile = "stack-templates/onprem.json"
	RenderedUserDataFile      = "userdata/router.sh"
	ExportDir                 = "exported/stacks"
)

// Stack drives the single CloudFormation stack of the simulated on-premises network.
type Stack struct {
	Config *api.Config

	opts Options
	svc  Services
}

func NewStack(cfg *api.Config, opts Options, svc Services) *Stack {
	return &Stack{
		Config: cfg,
		opts:   opts,
		svc:    svc,
	}
}

func StackFromFile(configPath string, opts Options) (*Stack, error) {
	cfg, err := api.ConfigFromFile(configPath)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Loaded config from %s:\n%s", configPath, spew.Sdump(cfg))

	session, err := awsconn.NewSessionFromRegion(cfg.Region, opts.AWSDebug)
	if err != nil {
		return nil, err
	}

	return NewStack(cfg, opts, ServicesFromSession(session)), nil
}

func (s *Stack) StackName() string {
	return s.Config.StackName
}

func (s *Stack) provisioner() *cfnstack.Provisioner {
	return cfnstack.NewProvisioner(
		s.StackName(),
		s.Config.StackTags,
		s.opts.S3URI,
		s.Config.Region,
		s.Config.CloudFormation.RoleARN,
	)
}

// ValidateTemplates runs every local check without calling AWS.
func (s *Stack) ValidateTemplates() error {
	if err := s.ValidateUserData(); err != nil {
		return err
	}

	params, _, err := s.templateParams()
	if err != nil {
		return err
	}
	seen := map[string]bool{}
	for _, id := range params.LogicalNames() {
		if err := cfnresource.ValidateLogicalID(id); err != nil {
			return err
		}
		if seen[id] {
			return fmt.Errorf("logical ID %s is used by more than one resource. Rename the security group or the instance", id)
		}
		seen[id] = true
	}

	template, err := s.RenderStackTemplate()
	if err != nil {
		return fmt.Errorf("failed to validate template: %v", err)
	}

	if s.opts.S3URI == "" && len(template) > cfnstack.CFN_TEMPLATE_SIZE_LIMIT {
		return fmt.Errorf("stack template's size(=%d) exceeds the %d bytes limit of cloudformation. `--s3-uri s3://<bucket>/path/to/dir` must be specified to upload it to S3 beforehand", len(template), cfnstack.CFN_TEMPLATE_SIZE_LIMIT)
	}

	return nil
}

// ValidateStack asks CloudFormation to validate the rendered template.
func (s *Stack) ValidateStack() (string, error) {
	template, err := s.RenderStackTemplateAsString()
	if err != nil {
		return "", err
	}
	return s.provisioner().Validate(s.svc.CloudFormation, s.svc.S3, template)
}

func (s *Stack) Create() error {
	exists, err := cfnstack.StackExists(s.svc.CloudFormation, s.StackName())
	if err != nil {
		return fmt.Errorf("failed to look up stack %s: %v", s.StackName(), err)
	}
	if exists {
		return fmt.Errorf("stack %s already exists. Run `update` to change it", s.StackName())
	}

	template, err := s.RenderStackTemplateAsString()
	if err != nil {
		return err
	}

	if s.opts.SkipWait {
		_, err := s.provisioner().CreateStack(s.svc.CloudFormation, s.svc.S3, template)
		return err
	}
	return s.provisioner().CreateStackAndWait(s.svc.CloudFormation, s.svc.S3, template)
}

// Update returns an empty report when the deployed stack already matches the rendered template.
func (s *Stack) Update() (string, error) {
	exists, err := cfnstack.StackExists(s.svc.CloudFormation, s.StackName())
	if err != nil {
		return "", fmt.Errorf("failed to look up stack %s: %v", s.StackName(), err)
	}
	if !exists {
		return "", fmt.Errorf("stack %s does not exist. Run `up` to create it", s.StackName())
	}

	template, err := s.RenderStackTemplateAsString()
	if err != nil {
		return "", err
	}

	if s.opts.SkipWait {
		out, err := s.provisioner().UpdateStack(s.svc.CloudFormation, s.svc.S3, template)
		if err != nil || out == nil {
			return "", err
		}
		return out.String(), nil
	}
	return s.provisioner().UpdateStackAndWait(s.svc.CloudFormation, s.svc.S3, template)
}

func (s *Stack) EstimateCost() (string, error) {
	template, err := s.RenderStackTemplateAsString()
	if err != nil {
		return "", err
	}
	out, err := s.provisioner().EstimateTemplateCost(s.svc.CloudFormation, s.svc.S3, template, nil)
	if err != nil {
		return "", err
	}
	if out.Url == nil {
		return "", fmt.Errorf("cloudformation returned no cost estimate url for stack %s", s.StackName())
	}
	return aws.StringValue(out.Url), nil
}

// RenderFiles writes the rendered stack template and the router user data below dir.
func (s *Stack) RenderFiles(dir string) error {
	template, err := s.RenderStackTemplate()
	if err != nil {
		return err
	}
	userData, err := s.UserData()
	if err != nil {
		return err
	}
	logger.Debugf("router user data fingerprint %s\n", fingerprint.Short(userData))
	return filegen.Render(
		filegen.File(filepath.Join(dir, RenderedStackTemplateFile), template, 0644),
		filegen.File(filepath.Join(dir, RenderedUserDataFile), []byte(userData), 0644),
	)
}

// Export writes the template that `up` would submit to exported/stacks/<stackName>/stack.json below dir.
func (s *Stack) Export(dir string) (string, error) {
	template, err := s.RenderStackTemplate()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, ExportDir, s.StackName(), cfnstack.RemoteStackTemplateFilename)
	if err := filegen.Render(filegen.File(path, template, 0600)); err != nil {
		return "", fmt.Errorf("error writing %s : %v", path, err)
	}
	return path, nil
}
