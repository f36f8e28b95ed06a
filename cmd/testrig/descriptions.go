package main

// These constants hold the "long" description of a subcommand. These get printed when running `--help`, for example.
const (
	descriptionTestrig = `testrig runs the plugins of a build stage by stage and records their findings.

Plugins detect on their own whether they apply to a stage. Their results and
errors are stored with the build, see 'testrig show'.

Configuration is read from testrig.yaml in the build root, TESTRIG_* environment
variables and flags, in increasing order of precedence.`

	descriptionRun = `'testrig run' starts a new build and runs all of its stages: setup and test, then
success or failure depending on the outcome, and finally complete.

The exit code is non-zero if any stage failed.

Example use:

	testrig run

	testrig run --stage test

	testrig run --build-id 6f1c... --stage complete`

	descriptionDetect = `'testrig detect' lists the plugins that would run in a stage, without running them.

Example use:

	testrig detect --stage test`

	descriptionShow = `'testrig show' prints the stage outcomes, metadata and errors of a stored build.

Example use:

	testrig show 6f1c7a2e-0d3b-4c51-9a55-0c0d2b5e8a13`
)
