package onprem

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"path/filepath"

	"github.com/tidwall/sjson"

	"github.com/tgw-labs/onprem-sim/builtin"
	"github.com/tgw-labs/onprem-sim/filereader/jsontemplate"
	"github.com/tgw-labs/onprem-sim/filereader/userdatatemplate"
	"github.com/tgw-labs/onprem-sim/fingerprint"
	"github.com/tgw-labs/onprem-sim/gzipcompressor"
	"github.com/tgw-labs/onprem-sim/tmpl"
	"github.com/tgw-labs/onprem-sim/userdatavalidation"
)

const (
	metadataVersionPath     = "Metadata.OnPremSim.Version"
	metadataUserDataFPPath  = "Metadata.OnPremSim.UserDataFingerprint"
	userDataValidationEntry = "router"
)

// rawUserData returns the router user data template: the configured file, or the built-in libreswan script.
// The directory is where readFile in the template resolves relative paths.
func (s *Stack) rawUserData() (string, string, error) {
	path, err := s.Config.Instance.UserDataPath()
	if err != nil {
		return "", "", fmt.Errorf("failed to locate user data file: %v", err)
	}
	if path == "" {
		return builtin.String(builtin.RouterUserDataFile), ".", nil
	}
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read user data file %s: %v", path, err)
	}
	return string(data), filepath.Dir(path), nil
}

// UserData renders the router user data with the config. CloudFormation expressions in the output are left as text.
func (s *Stack) UserData() (string, error) {
	raw, baseDir, err := s.rawUserData()
	if err != nil {
		return "", err
	}
	rendered, err := userdatatemplate.GetString(userDataValidationEntry, raw, newStackTemplateParams(s.Config, ""), baseDir)
	if err != nil {
		return "", fmt.Errorf("failed to render user data: %v", err)
	}
	return rendered, nil
}

func (s *Stack) ValidateUserData() error {
	userData, err := s.UserData()
	if err != nil {
		return err
	}
	return userdatavalidation.Execute([]userdatavalidation.Entry{
		{Name: userDataValidationEntry, Content: userData},
	})
}

// userDataExpr turns rendered user data into the JSON value of the instance's UserData property.
func (s *Stack) userDataExpr(userData string) (string, error) {
	if !s.Config.Instance.CompressUserData {
		return fmt.Sprintf(`{"Fn::Base64": %s}`, tmpl.TextToCfnExpr(userData)), nil
	}

	if tmpl.ContainsCfnExpr(userData) {
		return "", fmt.Errorf("user data embedding CloudFormation expressions can not be compressed. Set instance.compressUserData to false")
	}
	compressed, err := gzipcompressor.CompressString(userData)
	if err != nil {
		return "", fmt.Errorf("failed to compress user data: %v", err)
	}
	bt, err := json.Marshal(compressed)
	if err != nil {
		return "", err
	}
	return string(bt), nil
}

func (s *Stack) templateParams() (StackTemplateParams, string, error) {
	userData, err := s.UserData()
	if err != nil {
		return StackTemplateParams{}, "", err
	}
	expr, err := s.userDataExpr(userData)
	if err != nil {
		return StackTemplateParams{}, "", err
	}
	return newStackTemplateParams(s.Config, expr), userData, nil
}

// RenderStackTemplate renders the stack template and stamps it with the tool version and the user data fingerprint.
func (s *Stack) RenderStackTemplate() ([]byte, error) {
	params, userData, err := s.templateParams()
	if err != nil {
		return nil, err
	}

	minified, err := jsontemplate.GetBytes(builtin.StackTemplateTmplFile, builtin.String(builtin.StackTemplateTmplFile), params, false)
	if err != nil {
		return nil, fmt.Errorf("failed to render stack template: %v", err)
	}

	stamped, err := sjson.SetBytes(minified, metadataVersionPath, VERSION)
	if err != nil {
		return nil, fmt.Errorf("failed to set version metadata: %v", err)
	}
	stamped, err = sjson.SetBytes(stamped, metadataUserDataFPPath, fingerprint.SHA256(userData))
	if err != nil {
		return nil, fmt.Errorf("failed to set user data metadata: %v", err)
	}

	return jsontemplate.Format(stamped, s.opts.PrettyPrint)
}

func (s *Stack) RenderStackTemplateAsString() (string, error) {
	bytes, err := s.RenderStackTemplate()
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
