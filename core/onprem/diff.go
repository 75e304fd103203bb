package onprem

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/aryann/difflib"

	"github.com/tgw-labs/onprem-sim/logger"
)

// Diff compares the deployed stack template with the rendered one. It returns an empty string when they match.
// context limits unchanged lines printed around each change; a negative value prints everything.
func (s *Stack) Diff(context int) (string, error) {
	current, err := s.provisioner().CurrentTemplate(s.svc.CloudFormation)
	if err != nil {
		return "", err
	}

	desired, err := s.RenderStackTemplateAsString()
	if err != nil {
		return "", err
	}

	if warning := deployedVersionWarning(current); warning != "" {
		logger.Warn(warning)
	}
	if changed, deployedFP := userDataChanged(current, desired); changed {
		logger.Warnf("router user data changed (deployed fingerprint %s). Updating stops and restarts the instance\n", deployedFP)
	}

	return diffJSON(current, desired, context)
}

func diffJSON(current, desired string, context int) (string, error) {
	var currentBytes bytes.Buffer
	if err := json.Indent(&currentBytes, []byte(current), "", "  "); err != nil {
		return "", fmt.Errorf("deployed template is not valid json: %v", err)
	}

	var desiredBytes bytes.Buffer
	if err := json.Indent(&desiredBytes, []byte(desired), "", "  "); err != nil {
		return "", fmt.Errorf("rendered template is not valid json: %v", err)
	}

	return diffText(currentBytes.String(), desiredBytes.String(), context), nil
}

func diffText(current, desired string, context int) string {
	records := difflib.Diff(strings.Split(current, "\n"), strings.Split(desired, "\n"))

	changed := false
	for _, r := range records {
		if r.Delta != difflib.Common {
			changed = true
			break
		}
	}
	if !changed {
		return ""
	}

	outputs := []string{}
	if context < 0 {
		for _, r := range records {
			outputs = append(outputs, sprintDiffRecord(r))
		}
		return strings.Join(outputs, "")
	}

	distances := calculateDistances(records)
	omitting := false
	for i, r := range records {
		if distances[i] > context {
			if !omitting {
				outputs = append(outputs, "...\n")
				omitting = true
			}
			continue
		}
		omitting = false
		outputs = append(outputs, sprintDiffRecord(r))
	}
	return strings.Join(outputs, "")
}

// calculateDistances returns, for every line, how far it is from the closest added or removed line.
func calculateDistances(diffs []difflib.DiffRecord) []int {
	distances := make([]int, len(diffs))

	change := -1
	for i, diff := range diffs {
		if diff.Delta != difflib.Common {
			change = i
		}
		distances[i] = math.MaxInt32
		if change != -1 {
			distances[i] = i - change
		}
	}

	change = -1
	for i := len(diffs) - 1; i >= 0; i-- {
		if diffs[i].Delta != difflib.Common {
			change = i
		}
		if change != -1 && change-i < distances[i] {
			distances[i] = change - i
		}
	}

	return distances
}

func sprintDiffRecord(diff difflib.DiffRecord) string {
	switch diff.Delta {
	case difflib.RightOnly:
		return colorize(logger.StyleAdded, "+ "+diff.Payload) + "\n"
	case difflib.LeftOnly:
		return colorize(logger.StyleRemoved, "- "+diff.Payload) + "\n"
	default:
		return "  " + diff.Payload + "\n"
	}
}

func colorize(style, s string) string {
	if !logger.Color {
		return s
	}
	return logger.Colorize(style, s)
}
