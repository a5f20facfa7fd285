// Package ui provides semantic text formatting for CLI output.
//
// Styles render appropriately for the terminal: colorized when colors are
// available, decorated with backticks or quotes when NO_COLOR is set or the
// terminal cannot display color.
//
//	ui.Code.Sprint("gitflow release test")   // Commands
//	ui.Branch.Sprint("feature/1.2.0")        // Branch names
//	ui.Tag.Sprint("v1.1.0.RELEASE.20240201") // Release tags
//	ui.Version.Sprint("1.2.0-SNAPSHOT")      // Versions
//	ui.Success.Sprint("✓")                   // Success indicators
//	ui.Error.Sprint("✗")                     // Error indicators
//
// ParameterTable renders the pre-flight parameter echo with lipgloss.
package ui
