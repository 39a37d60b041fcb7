package notify

import (
	"fmt"
	"os/exec"
	"time"
)

type speaker struct {
	command string
	path    string
}

func newSpeaker() Speaker {
	for _, candidate := range []string{"spd-say", "espeak"} {
		if path, err := exec.LookPath(candidate); err == nil {
			return &speaker{command: candidate, path: path}
		}
	}
	return unsupportedSpeaker{}
}

func (backend *speaker) Speak(message string) error {
	for i := 0; i < speechRepeats; i++ {
		if i > 0 {
			time.Sleep(speechPause)
		}
		var command *exec.Cmd
		if backend.command == "spd-say" {
			// spd-say returns immediately unless told to wait.
			command = exec.Command(backend.path, "--wait", message)
		} else {
			command = exec.Command(backend.path, message)
		}
		if err := command.Run(); err != nil {
			return fmt.Errorf("%s: %w", backend.command, err)
		}
	}
	return nil
}
