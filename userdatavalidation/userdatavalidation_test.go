package userdatavalidation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute(t *testing.T) {
	t.Run("Script", func(t *testing.T) {
		err := Execute([]Entry{{Name: "router.sh", Content: "#!/bin/bash\nyum install -y libreswan\n"}})
		assert.NoError(t, err)
	})

	t.Run("AmazonLinuxCloudConfig", func(t *testing.T) {
		content := `#cloud-config
packages:
  - libreswan
runcmd:
  - systemctl enable --now ipsec
`
		assert.NoError(t, Execute([]Entry{{Name: "router", Content: content}}))
	})

	t.Run("CloudConfigWithInvalidValue", func(t *testing.T) {
		content := `#cloud-config
coreos:
  update:
    reboot_strategy: always
`
		err := Execute([]Entry{{Name: "router", Content: content}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid value always")
	})

	t.Run("Empty", func(t *testing.T) {
		err := Execute([]Entry{{Name: "router.sh", Content: "  \n"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "router.sh: user data is empty")
	})

	t.Run("NeitherScriptNorCloudConfig", func(t *testing.T) {
		err := Execute([]Entry{{Name: "router.sh", Content: "yum install -y libreswan\n"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "router.sh")
	})
}
