package version

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	goVersion "github.com/hashicorp/go-version"
)

const (
	unknownVersion  = "<unknown>"
	cliVersionTitle = "projgen"
)

// Set with -ldflags by the mage build targets.
var (
	gitTag       string
	gitCommit    string
	versionLabel string
)

// releaseVersion turns the git tag into a dotted release number, so "v1.2.0-3-gabc"
// becomes "1.2.0". A tag that is not a version is returned unchanged.
func releaseVersion(tag string) string {
	parsed, err := goVersion.NewVersion(tag)
	if err != nil {
		return tag
	}
	numbers := make([]string, 0, len(parsed.Segments()))
	for _, num := range parsed.Segments() {
		numbers = append(numbers, strconv.Itoa(num))
	}
	return strings.Join(numbers, ".")
}

// GetVersion describes the running build. showShort gives the bare version,
// needCommit appends the commit hash to it. Otherwise the full line with the
// platform is returned.
func GetVersion(showShort bool, needCommit bool) string {
	version := unknownVersion
	if gitTag != "" {
		version = releaseVersion(gitTag)
		if versionLabel != "" {
			version += "/" + versionLabel
		}
	}

	switch {
	case needCommit:
		return fmt.Sprintf("%s.%s", version, gitCommit)
	case showShort:
		return version
	}
	return fmt.Sprintf("%s version %s, %s/%s. commit: %s",
		cliVersionTitle, version, runtime.GOOS, runtime.GOARCH, gitCommit)
}
