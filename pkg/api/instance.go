package api

import (
	"fmt"
	"io/ioutil"
	"regexp"

	"github.com/mitchellh/go-homedir"
	"golang.org/x/crypto/ssh"
)

const (
	DefaultInstanceName = "OnPremEc2"
	DefaultInstanceType = "t2.small"
	// Amazon Linux 2, x86_64, resolved by CloudFormation at deploy time.
	DefaultImageParameter = "/aws/service/ami-amazon-linux-latest/amzn2-ami-hvm-x86_64-gp2"
)

var instanceTypePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*\.[a-z0-9]+$`)

// Instance is the router VM of the simulated data center.
type Instance struct {
	Name             string `yaml:"name,omitempty"`
	Type             string `yaml:"type,omitempty"`
	ImageParameter   string `yaml:"imageParameter,omitempty"`
	KeyName          string `yaml:"keyName,omitempty"`
	SSHPublicKeyFile string `yaml:"sshPublicKeyFile,omitempty"`
	UserDataFile     string `yaml:"userDataFile,omitempty"`
	CompressUserData bool   `yaml:"compressUserData,omitempty"`
	// SourceDestCheck must be disabled when the router forwards traffic for other hosts.
	SourceDestCheck *bool `yaml:"sourceDestCheck,omitempty"`

	// SSHPublicKey is the content of SSHPublicKeyFile, read while loading the config
	SSHPublicKey string `yaml:"-"`

	UnknownKeys `yaml:",inline"`
}

func (i Instance) ManagesKeyPair() bool {
	return i.SSHPublicKey != ""
}

func (i Instance) SourceDestCheckEnabled() bool {
	return i.SourceDestCheck == nil || *i.SourceDestCheck
}

func (i *Instance) loadPublicKey() error {
	if i.SSHPublicKeyFile == "" {
		return nil
	}
	path, err := homedir.Expand(i.SSHPublicKeyFile)
	if err != nil {
		return fmt.Errorf("failed to expand %s: %v", i.SSHPublicKeyFile, err)
	}
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read ssh public key: %v", err)
	}
	if _, err := ParseSSHPublicKey(raw); err != nil {
		return err
	}
	i.SSHPublicKey = string(raw)
	return nil
}

func (i Instance) Validate() error {
	if !instanceTypePattern.MatchString(i.Type) {
		return fmt.Errorf("invalid instance type: %s", i.Type)
	}
	if i.ImageParameter == "" {
		return fmt.Errorf("imageParameter must not be empty")
	}
	if i.KeyName != "" && i.SSHPublicKeyFile != "" {
		return fmt.Errorf("keyName and sshPublicKeyFile are mutually exclusive")
	}
	return nil
}

// ParseSSHPublicKey accepts a single key in authorized_keys format.
func ParseSSHPublicKey(raw []byte) (ssh.PublicKey, error) {
	key, _, _, _, err := ssh.ParseAuthorizedKey(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ssh public key: %v", err)
	}
	return key, nil
}

// SSHPublicKeyFingerprint returns the SHA256 fingerprint in the format printed by ssh-keygen -l.
func (i Instance) SSHPublicKeyFingerprint() string {
	if !i.ManagesKeyPair() {
		return ""
	}
	key, err := ParseSSHPublicKey([]byte(i.SSHPublicKey))
	if err != nil {
		return ""
	}
	return ssh.FingerprintSHA256(key)
}

// UserDataPath is the user data override with ~ expanded, or empty when the built-in router script is used.
func (i Instance) UserDataPath() (string, error) {
	if i.UserDataFile == "" {
		return "", nil
	}
	return homedir.Expand(i.UserDataFile)
}
