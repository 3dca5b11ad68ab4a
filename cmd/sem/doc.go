// Command sem manages the organizations, teams, projects and shared
// configurations of a CI/CD platform account from the terminal.
//
// Resources are addressed by path instead of by id: <org>/<name>, for
// example rt/cli for project cli of organization rt.
//
// # Installation
//
//	go install github.com/blackwell-systems/sem-cli/cmd/sem@latest
//
// # Quick Start
//
//	sem login --token <token>
//	sem projects list
//	sem shared-configs create rt/aws-tokens --file aws.yaml
//	sem projects shared-configs add rt/cli rt/aws-tokens
//
// Attaching a shared configuration to a project copies its environment
// variables and configuration files into the project. The copies are
// independent: later changes to the shared configuration do not reach
// projects it was already attached to, and detaching keeps them.
//
// # Configuration
//
// Settings are resolved from flags, SEM_* environment variables,
// $HOME/.sem/config.yaml and built-in defaults, in that order. See
// `sem config show`.
package main
