package awsconn

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials/stscreds"
	"github.com/aws/aws-sdk-go/aws/session"

	"github.com/tgw-labs/onprem-sim/pkg/api"
)

// NewSessionFromRegion creates an AWS session for the region. debug turns on request logging.
func NewSessionFromRegion(region api.Region, debug bool) (*session.Session, error) {
	if region.IsEmpty() {
		return nil, fmt.Errorf("region must be set to establish an aws session")
	}

	awsConfig := aws.NewConfig().
		WithRegion(region.String()).
		WithCredentialsChainVerboseErrors(true)

	if debug {
		awsConfig = awsConfig.WithLogLevel(aws.LogDebug)
	}

	session, err := newSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to establish aws session: %v", err)
	}
	return session, nil
}

// newSession honours source_profile in the shared config and prompts on stdin for an MFA token when a role needs one.
func newSession(config *aws.Config) (*session.Session, error) {
	return session.NewSessionWithOptions(session.Options{
		Config:                  *config,
		SharedConfigState:       session.SharedConfigEnable,
		AssumeRoleTokenProvider: stscreds.StdinTokenProvider,
	})
}
