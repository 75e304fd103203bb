package api

const DefaultExportName = "eipAllocationId"

type EIP struct {
	// Associate attaches the address to the router instance. Unassociated by default.
	Associate   bool `yaml:"associate,omitempty"`
	UnknownKeys `yaml:",inline"`
}

type Output struct {
	ExportName  string `yaml:"exportName,omitempty"`
	UnknownKeys `yaml:",inline"`
}
