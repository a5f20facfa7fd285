// Package logger provides leveled, colored logging for the gitflow CLI.
//
// Verbosity is controlled by two persistent flags:
//
//   - --verbose: shows info messages and every git/mvn command as it runs
//   - --debug: additionally shows debug details
//
// Without flags only warnings and errors are written (to stderr).
//
// # Log Methods
//
//	Logger.Infof()     // Shown with --verbose or --debug
//	Logger.Commandf()  // "[git] switch develop", shown with --verbose or --debug
//	Logger.Debugf()    // Shown only with --debug
//	Logger.Warnf()     // Always shown
//	Logger.Errorf()    // Always shown
//
// The zero Logger is silent apart from warnings and errors, which makes it a
// safe default for library code and tests.
package logger
