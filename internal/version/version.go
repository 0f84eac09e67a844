package version

// Version is the client library and CLI version. Overridden at build
// time via -ldflags.
var Version = "0.3.0-dev"
