package overlay

// Version is the release of the library and CLI.
var Version = "0.3.0"
