package utils

import (
	"errors"
	"os"
	"os/user"
	"strings"
)

// GetUsername returns the current username. When the account has no passwd
// entry, as in many containers, it falls back to $USER and then $LOGNAME.
func GetUsername() (string, error) {
	u, err := user.Current()
	if err == nil && u.Username != "" {
		return u.Username, nil
	}
	for _, name := range []string{"USER", "LOGNAME"} {
		if v := os.Getenv(name); v != "" {
			return v, nil
		}
	}
	if err == nil {
		err = errors.New("current user has no name")
	}
	return "", err
}

// GetHostname returns the short hostname recorded in audit entries.
func GetHostname() (string, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return "", err
	}
	short, _, _ := strings.Cut(hostname, ".")
	return short, nil
}
