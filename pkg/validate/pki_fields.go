package validate

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/tdeslauriers/palisade/internal/util"
)

const (
	RoleNameRegex string = `^[a-zA-Z0-9_\-\.]+$`
	RoleNameMin   int    = 1
	RoleNameMax   int    = 253

	MountPathRegex string = `^[a-zA-Z0-9_\-\/]+$`
	MountPathMin   int    = 1
	MountPathMax   int    = 128

	// colon-delimited hex octets, eg 17:67:16:b0:b9:45:58:c0:3a:29:e3:cb:d6:98:33:7a:a6:3b:66:c1
	SerialNumberRegex string = `^[0-9a-fA-F]{2}(:[0-9a-fA-F]{2})+$`
)

// IsValidRoleName checks that a role name is usable as a url path segment on
// the backend. Role option values themselves are never validated here; the
// engine owns those semantics.
func IsValidRoleName(name string) error {

	if TooShort(name, RoleNameMin) || TooLong(name, RoleNameMax) {
		return fmt.Errorf("role name must be between %d and %d characters in length", RoleNameMin, RoleNameMax)
	}

	if !MatchesRegex(name, RoleNameRegex) {
		return fmt.Errorf("role name may only contain letters, numbers, underscores, hyphens, and dots")
	}

	return nil
}

// IsValidMountPath checks the mount path of a secrets engine, eg "pki" or
// "pki_int".
func IsValidMountPath(mount string) error {

	if TooShort(mount, MountPathMin) || TooLong(mount, MountPathMax) {
		return fmt.Errorf("mount path must be between %d and %d characters in length", MountPathMin, MountPathMax)
	}

	if strings.HasPrefix(mount, "/") || strings.HasSuffix(mount, "/") {
		return fmt.Errorf("mount path must not begin or end with a slash")
	}

	if !MatchesRegex(mount, MountPathRegex) {
		return fmt.Errorf("mount path may only contain letters, numbers, underscores, hyphens, and slashes")
	}

	return nil
}

// IsValidSerialNumber checks the colon-delimited hex form the engine uses for
// certificate serial numbers.
func IsValidSerialNumber(serial string) error {

	if !MatchesRegex(serial, SerialNumberRegex) {
		return fmt.Errorf("serial number must be colon-delimited hex octets, eg 17:67:16:b0")
	}

	return nil
}

func MatchesRegex(s, pattern string) bool {

	logger := slog.Default().With(slog.String(util.ComponentKey, util.PackageValidate), slog.String(util.FrameworkKey, util.FrameworkPalisade))

	rgx, err := regexp.Compile(pattern)
	if err != nil {
		logger.Error(fmt.Sprintf("unable to compile regex pattern: %s: %v", pattern, err))
		return false
	}

	return rgx.MatchString(s)
}

func TooShort(field string, min int) bool {
	return len(strings.TrimSpace(field)) < min
}

func TooLong(field string, max int) bool {
	return len(strings.TrimSpace(field)) > max
}
