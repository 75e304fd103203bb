package userdatavalidation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/coreos/coreos-cloudinit/config/validate"
	"github.com/tidwall/gjson"

	"github.com/tgw-labs/onprem-sim/logger"
)

type Entry struct {
	Name    string
	Content string
}

// Execute checks every entry is either a script starting with "#!" or a well-formed #cloud-config document.
// Only error entries of the report fail the check. Keys the CoreOS validator does not know, such as the
// packages and runcmd modules of Amazon Linux cloud-init, come back as warnings and are logged.
func Execute(entries []Entry) error {
	errors := []string{}

	for _, userData := range entries {
		if strings.TrimSpace(userData.Content) == "" {
			errors = append(errors, fmt.Sprintf("%s: user data is empty", userData.Name))
			continue
		}

		report, err := validate.Validate([]byte(userData.Content))

		if err != nil {
			errors = append(
				errors,
				fmt.Sprintf("user data %s could not be parsed: %v",
					userData.Name,
					err,
				),
			)
			continue
		}

		for _, entry := range report.Entries() {
			if isError(entry) {
				errors = append(errors, fmt.Sprintf("%s: %+v", userData.Name, entry))
			} else {
				logger.Debugf("%s: %+v\n", userData.Name, entry)
			}
		}
	}

	if len(errors) > 0 {
		reportString := strings.Join(errors, "\n")
		return fmt.Errorf("user data validation errors:\n%s\n", reportString)
	}

	return nil
}

func isError(entry validate.Entry) bool {
	bt, err := json.Marshal(entry)
	if err != nil {
		return true
	}
	return gjson.GetBytes(bt, "kind").String() == "error"
}
