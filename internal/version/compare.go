package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// CheckParamsCompatibility checks whether a parameter file written for paramsVersion can
// be read by an engine at engineVersion.
//
// Compatibility Rules:
//   - If either version is "main" (development build), the check is skipped
//   - Major versions must match exactly
//   - The file may not be newer than the engine: its minor version must be <= the engine's
//   - Patch versions are ignored
//
// Examples:
//   - Engine 0.3.0, file 0.3.0 -> OK
//   - Engine 0.3.2, file 0.1.0 -> OK (older file)
//   - Engine 0.3.0, file 0.4.0 -> ERROR (file uses newer keys)
//   - Engine 1.0.0, file 0.3.0 -> ERROR (major differs)
func CheckParamsCompatibility(engineVersion, paramsVersion string) error {
	engineVersion = strings.TrimPrefix(engineVersion, "v")
	paramsVersion = strings.TrimPrefix(paramsVersion, "v")

	if engineVersion == "main" || paramsVersion == "main" {
		return nil
	}

	engineSemver, err := semver.NewVersion(engineVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid engine version '%s'", engineVersion)
	}

	paramsSemver, err := semver.NewVersion(paramsVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid params version '%s'", paramsVersion)
	}

	if engineSemver.Major() != paramsSemver.Major() {
		return errors.Newf(errors.ErrCodeInvalidVersion, "major version mismatch: engine is %d.x.x but params require %d.x.x",
			engineSemver.Major(), paramsSemver.Major())
	}

	if paramsSemver.Minor() > engineSemver.Minor() {
		return errors.Newf(errors.ErrCodeInvalidVersion, "params version %s is newer than engine %d.%d.x",
			paramsSemver.String(), engineSemver.Major(), engineSemver.Minor())
	}

	return nil
}
