package resource

import "strings"

// PathSeparator separates the organization from the resource name in a path.
const PathSeparator = "/"

// ParsePath splits an "<org>/<name>" path into its organization and leaf name.
// Anything other than exactly two non-empty components is a MalformedPathError.
func ParsePath(path string) (org, name string, err error) {
	parts := strings.Split(path, PathSeparator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", &MalformedPathError{Path: path}
	}
	return parts[0], parts[1], nil
}

// JoinPath is the inverse of ParsePath.
func JoinPath(org, name string) string {
	return org + PathSeparator + name
}
