package steps

import "os/exec"

// Detector reports whether the named package manager is installed.
type Detector func(name string) bool

// LookPath detects a package manager by searching PATH.
func LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// AvailablePackageManagers returns npm followed by every other candidate that
// detect finds, keeping candidate order.
func AvailablePackageManagers(candidates []string, detect Detector) []string {
	out := []string{"npm"}
	for _, c := range candidates {
		if c == "" || c == "npm" {
			continue
		}
		if detect(c) {
			out = append(out, c)
		}
	}
	return out
}
