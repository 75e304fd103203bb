package onprem

import (
	"fmt"

	"github.com/Masterminds/semver"
	"github.com/tidwall/gjson"
)

// deployedVersionWarning returns a warning when the deployed template was rendered by a newer release.
// Unparseable versions, including development builds, are never compared.
func deployedVersionWarning(deployedTemplate string) string {
	deployed := gjson.Get(deployedTemplate, metadataVersionPath).String()
	if deployed == "" {
		return ""
	}

	deployedVersion, err := semver.NewVersion(deployed)
	if err != nil {
		return ""
	}
	runningVersion, err := semver.NewVersion(VERSION)
	if err != nil {
		return ""
	}

	if deployedVersion.GreaterThan(runningVersion) {
		return fmt.Sprintf("stack was deployed by onprem-sim %s, which is newer than this binary (%s). Applying may revert changes it made", deployed, VERSION)
	}
	return ""
}

// userDataChanged compares the user data fingerprints stamped into both templates.
func userDataChanged(deployedTemplate, desiredTemplate string) (bool, string) {
	deployed := gjson.Get(deployedTemplate, metadataUserDataFPPath).String()
	desired := gjson.Get(desiredTemplate, metadataUserDataFPPath).String()
	if deployed == "" || deployed == desired {
		return false, deployed
	}
	return true, deployed
}
