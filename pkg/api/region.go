package api

import (
	"fmt"
	"strings"
)

type Region struct {
	Name string `yaml:"region,omitempty"`
}

func RegionForName(name string) Region {
	return Region{
		Name: name,
	}
}

func (r Region) String() string {
	return r.Name
}

// S3Endpoint is the endpoint CloudFormation fetches uploaded templates from.
func (r Region) S3Endpoint() string {
	if r.IsChina() {
		return fmt.Sprintf("https://s3.%s.amazonaws.com.cn", r.Name)
	}
	if r.IsGovcloud() {
		return fmt.Sprintf("https://s3-%s.amazonaws.com", r.Name)
	}
	return "https://s3.amazonaws.com"
}

// EC2ServicePrincipal is the principal allowed to assume the instance role.
func (r Region) EC2ServicePrincipal() string {
	if r.IsChina() {
		return "ec2.amazonaws.com.cn"
	}
	return "ec2.amazonaws.com"
}

func (r Region) IsChina() bool {
	return strings.HasPrefix(r.Name, "cn-")
}

func (r Region) IsGovcloud() bool {
	return strings.HasPrefix(r.Name, "us-gov-")
}

func (r Region) IsEmpty() bool {
	return r.Name == ""
}
