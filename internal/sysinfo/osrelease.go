package sysinfo

import (
	"bufio"
	"io"
	"os"
	"strings"
)

var osOpen = func(name string) (io.ReadCloser, error) { return os.Open(name) }

// Distro is the subset of os-release(5) shown by the wizard.
type Distro struct {
	Name       string
	VersionID  string
	ID         string
	PrettyName string
}

func readOSRelease() (Distro, error) {
	file, err := osOpen("/etc/os-release")
	if err != nil {
		return Distro{}, err
	}
	defer file.Close()

	return parseOSRelease(file)
}

func parseOSRelease(r io.Reader) (Distro, error) {
	var d Distro

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.Trim(value, "\"'")

		switch key {
		case "NAME":
			d.Name = value
		case "VERSION_ID":
			d.VersionID = value
		case "ID":
			d.ID = value
		case "PRETTY_NAME":
			d.PrettyName = value
		}
	}

	if d.ID == "arch" && d.VersionID == "" {
		d.VersionID = "rolling"
	}

	return d, scanner.Err()
}
