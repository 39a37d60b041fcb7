package notify

import (
	"fmt"
	"os/exec"
	"strings"
	"syscall"
)

type speaker struct{}

func newSpeaker() Speaker {
	return speaker{}
}

// Speak renders the message through the SAPI synthesizer via a hidden
// PowerShell process.
func (speaker) Speak(message string) error {
	escaped := strings.ReplaceAll(message, "'", "''")
	script := fmt.Sprintf(
		"Add-Type -AssemblyName System.Speech; "+
			"$voice = New-Object System.Speech.Synthesis.SpeechSynthesizer; "+
			"for ($i = 0; $i -lt %d; $i++) { $voice.Speak('%s'); Start-Sleep -Milliseconds %d }",
		speechRepeats, escaped, speechPause.Milliseconds(),
	)

	command := exec.Command("powershell", "-NoProfile", "-NonInteractive", "-Command", script)
	command.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
	if err := command.Run(); err != nil {
		return fmt.Errorf("powershell speech: %w", err)
	}
	return nil
}
