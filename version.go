package mgpoisson

// Version is the release of the module, printed by mgsolve version.
const Version = "0.3.0"
