package truman

// Version is the controller release, overridden at link time by the build.
var Version = "0.1.0-dev"
