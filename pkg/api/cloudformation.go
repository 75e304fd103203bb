package api

type CloudFormation struct {
	// RoleARN is the service role CloudFormation assumes to create the stack resources.
	RoleARN     string `yaml:"roleARN,omitempty"`
	UnknownKeys `yaml:",inline"`
}
