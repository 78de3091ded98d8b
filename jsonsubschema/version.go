package jsonsubschema

import "github.com/Masterminds/semver/v3"

// Version constants mirror the teacher's MinSupportedVersion/MaxTestedVersion
// pair (version.go), generalized from its bespoke semver parser to
// github.com/Masterminds/semver/v3 (declared in the retrieval pack's
// lacquerai-lacquer go.mod).
const (
	Version             = "0.1.0"
	MinSupportedVersion = "0.1.0"
	MaxTestedVersion    = "0.1.0"
)

// IsSupportedVersion reports whether v falls within
// [MinSupportedVersion, MaxTestedVersion].
func IsSupportedVersion(v string) (bool, error) {
	parsed, err := semver.NewVersion(v)
	if err != nil {
		return false, err
	}
	min, err := semver.NewVersion(MinSupportedVersion)
	if err != nil {
		return false, err
	}
	max, err := semver.NewVersion(MaxTestedVersion)
	if err != nil {
		return false, err
	}
	return !parsed.LessThan(min) && !parsed.GreaterThan(max), nil
}
