// Package configs manages the per-repository gitflow configuration.
//
// Configuration lives in .gitflow.toml at the repository root:
//
//	[project]
//	type = "maven"            # or "webpack"
//	manifest = "package.json" # webpack only, relative to the root
//	maven_command = "mvn"
//
//	[git]
//	command = "git"
//	remote = "origin"
//	push_branches = false
//	push_tags = false
//
// A missing file means defaults. Command-line flags override file values.
//
// InitProjectSettings walks up from a directory to the enclosing .git and
// returns where the config and gitflow's private state (the flow history)
// live. State is kept inside the git directory so it never dirties the work
// tree.
package configs
