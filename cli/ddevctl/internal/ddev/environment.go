package ddev

import "os"

// Environment knows how to reach Composer, Drush and a shell depending on
// whether ddevctl runs on the host or inside the DDEV web container.
type Environment struct {
	Inside bool
}

// DetectEnvironment uses the IS_DDEV_PROJECT variable DDEV exports into its
// containers.
func DetectEnvironment() Environment {
	return Environment{Inside: os.Getenv("IS_DDEV_PROJECT") == "true"}
}

// Name is the local environment identifier stored in project config.
func (Environment) Name() string { return "ddev" }

func (e Environment) ComposerCommand() []string {
	if e.Inside {
		return []string{"composer"}
	}
	return []string{"ddev", "composer"}
}

func (e Environment) DrushCommand() []string {
	if e.Inside {
		return []string{"drush"}
	}
	return []string{"ddev", "drush"}
}

// ExecCommand prefixes a shell snippet so it runs in the web container.
func (e Environment) ExecCommand() []string {
	if e.Inside {
		return []string{"bash", "-c"}
	}
	return []string{"ddev", "exec"}
}
