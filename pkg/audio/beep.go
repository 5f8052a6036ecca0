package audio

import (
	"encoding/base64"
	"log"
	"sync"
)

// beepBase64 is the short alert beep carried over from the tablet
// deployment, a small 8 kHz 8-bit WAV kept inline so the binary needs no
// asset files next to it.
const beepBase64 = "UklGRnoGAABXQVZFZm10IBAAAAABAAEAQB8AAEAfAAABAAgAZGF0YQoGAACBhYqFbF1fdJivrJBhNjVgodDbq2EcBj+a2/LDciUFLIHO8tiJNwgZaLvt559NEAxQp+PwtmMcBjiR1/LMeSwFJHfH8N2QQAoUXrTp66hVFApGn+DyvmUcBSuJ0/LNeiURKH7K7+OVOQ0PaLzs3Z1MFAZBnN7tx2EcCCeA0fPTgSAOIXfH8N+TQgkTXrTp75sBEQxBnN7tx2EcCCeA0fPTgSAOIXfH8N+TQgkTXrTp75sBEQxBnN7tx2EcCCeA0fPTgSAOIXfH8N+TQgkTXrTp75sBEQxBnN7tx2EcCCeA0fPTgSAOIXfH8N+TQgkTXrTp75sBEQxBnN7tx2EcCCeA0fPTgSAOIXfH8N+TQgkTXrTp75sBEQxBnN7tx2EcCCeA0fPTgSAOIXfH8N+TQgkT"

var (
	beepOnce sync.Once
	beepWAV  []byte
)

// BeepWAV returns the decoded beep sound. An empty slice means the
// embedded payload is unusable, which PlayWAV reports as an error.
func BeepWAV() []byte {
	beepOnce.Do(func() {
		data, err := base64.StdEncoding.DecodeString(beepBase64)
		if err != nil {
			log.Printf("Failed to decode embedded beep: %v", err)
			return
		}
		beepWAV = data
	})
	return beepWAV
}

// PlayBeep plays the embedded alert beep once.
func PlayBeep() (*Player, error) {
	wav := BeepWAV()
	if len(wav) == 0 {
		return nil, errBadWAV
	}
	return PlayWAV(wav)
}
