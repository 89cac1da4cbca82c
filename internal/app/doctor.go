package app

import (
	"os/exec"
)

// DoctorCheck is the result of probing one external collaborator.
type DoctorCheck struct {
	Command string
	Purpose string
	Path    string
	Found   bool
}

// DoctorResult aggregates the collaborator checks.
type DoctorResult struct {
	Checks  []DoctorCheck
	Missing int
}

// externalCommands are the programs steps shell out to. The piper binary
// is absent on purpose: installing it is this tool's job.
var externalCommands = []struct {
	command string
	purpose string
}{
	{"dpkg-query", "apt package state checks"},
	{"apt-get", "apt package installs"},
	{"sudo", "privileged installs and boot config"},
	{"pip3", "python package installs"},
	{"aplay", "audio playback probe"},
	{"rpicam-still", "camera capture probe"},
	{"gpiodetect", "GPIO controller probe"},
}

// Doctor verifies the external commands the steps depend on are reachable
// on PATH. It never modifies the system.
func (p *Provision) Doctor() DoctorResult {
	result := DoctorResult{Checks: make([]DoctorCheck, 0, len(externalCommands))}

	for _, c := range externalCommands {
		check := DoctorCheck{Command: c.command, Purpose: c.purpose}
		if path, err := exec.LookPath(c.command); err == nil {
			check.Found = true
			check.Path = path
		} else {
			result.Missing++
		}
		result.Checks = append(result.Checks, check)
	}

	return result
}

// PrintDoctor writes the doctor checks.
func (p *Provision) PrintDoctor(result DoctorResult) {
	p.printf("\n%s\n\n", styleTitle.Render("Provision Doctor"))

	for _, check := range result.Checks {
		if check.Found {
			p.printf("  %s %-14s %s\n", styleSuccess.Render("✓"), check.Command, styleMuted.Render(check.Path))
		} else {
			p.printf("  %s %-14s missing (%s)\n", styleError.Render("✗"), check.Command, check.Purpose)
		}
	}

	if result.Missing == 0 {
		p.printf("\n%s\n", styleSuccess.Render("All external commands found."))
	} else {
		p.printf("\n%d commands missing. Install them before running 'provision apply'.\n", result.Missing)
	}
}
