package onprem

import (
	"github.com/tgw-labs/onprem-sim/pkg/api"
)

// StackTemplateParams is the data the stack template is rendered with.
type StackTemplateParams struct {
	*api.Config

	// UserData is the JSON value of the instance's UserData property
	UserData string
}

func newStackTemplateParams(cfg *api.Config, userData string) StackTemplateParams {
	return StackTemplateParams{
		Config:   cfg,
		UserData: userData,
	}
}

func (p StackTemplateParams) AnyIPv4() string {
	return api.AnyIPv4
}

func (p StackTemplateParams) EIPLogicalName() string {
	return "OnPremEip"
}

func (p StackTemplateParams) EIPAssociationLogicalName() string {
	return p.EIPLogicalName() + "Association"
}

func (p StackTemplateParams) InternetGatewayLogicalName() string {
	return p.VPCLogicalName() + "IGW"
}

func (p StackTemplateParams) VPCGatewayAttachmentLogicalName() string {
	return p.VPCLogicalName() + "VPCGW"
}

func (p StackTemplateParams) PublicSubnetLogicalName() string {
	return p.VPCLogicalName() + "PublicSubnet"
}

func (p StackTemplateParams) PublicRouteTableLogicalName() string {
	return p.VPCLogicalName() + "PublicRouteTable"
}

func (p StackTemplateParams) PublicRouteTableAssociationLogicalName() string {
	return p.VPCLogicalName() + "PublicRouteTableAssociation"
}

func (p StackTemplateParams) PublicDefaultRouteLogicalName() string {
	return p.VPCLogicalName() + "PublicDefaultRoute"
}

func (p StackTemplateParams) InstanceRoleLogicalName() string {
	return p.InstanceLogicalName() + "InstanceRole"
}

func (p StackTemplateParams) InstanceProfileLogicalName() string {
	return p.InstanceLogicalName() + "InstanceProfile"
}

func (p StackTemplateParams) KeyPairLogicalName() string {
	return p.InstanceLogicalName() + "KeyPair"
}

func (p StackTemplateParams) ImageIDParameterLogicalName() string {
	return p.InstanceLogicalName() + "ImageId"
}

func (p StackTemplateParams) OutputLogicalName() string {
	return api.DefaultExportName
}

// LogicalNames lists the logical ID of every resource and parameter the template may declare.
func (p StackTemplateParams) LogicalNames() []string {
	return []string{
		p.ImageIDParameterLogicalName(),
		p.EIPLogicalName(),
		p.VPCLogicalName(),
		p.InternetGatewayLogicalName(),
		p.VPCGatewayAttachmentLogicalName(),
		p.PublicSubnetLogicalName(),
		p.PublicRouteTableLogicalName(),
		p.PublicRouteTableAssociationLogicalName(),
		p.PublicDefaultRouteLogicalName(),
		p.SecurityGroupLogicalName(),
		p.InstanceRoleLogicalName(),
		p.InstanceProfileLogicalName(),
		p.KeyPairLogicalName(),
		p.InstanceLogicalName(),
		p.EIPAssociationLogicalName(),
	}
}
