package notify

import (
	"fmt"
	"os/exec"
	"time"
)

type speaker struct{}

func newSpeaker() Speaker {
	return speaker{}
}

func (speaker) Speak(message string) error {
	for i := 0; i < speechRepeats; i++ {
		if i > 0 {
			time.Sleep(speechPause)
		}
		if err := exec.Command("say", message).Run(); err != nil {
			return fmt.Errorf("say: %w", err)
		}
	}
	return nil
}
