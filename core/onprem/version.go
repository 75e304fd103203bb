package onprem

// VERSION is set at build time with -ldflags "-X github.com/tgw-labs/onprem-sim/core/onprem.VERSION=v0.1.0"
var VERSION = "UNKNOWN"
