package naming

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^A-Za-z0-9]+`)

// FromStackToCfnResource converts a human readable name into something valid as a cfn logical ID or
// we'll end up with cfn errors like "Template format error: Resource name onprem-VPC is non alphanumeric"
func FromStackToCfnResource(name string) string {
	return strings.Title(nonAlphanumeric.ReplaceAllString(name, ""))
}

func VPCName(prefix string) string {
	return prefix + "-VPC"
}

func PublicSubnetName(prefix string) string {
	return VPCName(prefix) + " | Public"
}

func DefaultStackName(prefix string) string {
	return prefix + "-onprem"
}
