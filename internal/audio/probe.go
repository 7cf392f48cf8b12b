package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	mp3 "github.com/hajimehoshi/go-mp3"
)

// bytesPerSample is the decoder's output frame size: 16-bit stereo.
const bytesPerSample = 4

// ProbeDuration returns the duration in seconds of the MP3 file at path.
//
// Only MP3 payloads can be probed; other formats report an error and their
// duration stays unknown until the host gains a decoder for them.
func ProbeDuration(path string) (float64, error) {
	if strings.ToLower(filepath.Ext(path)) != ".mp3" {
		return 0, fmt.Errorf("cannot probe duration of %s", filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("probe open failed: %w", err)
	}
	defer f.Close()

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return 0, fmt.Errorf("probe decode failed: %w", err)
	}

	samples := decoder.Length() / bytesPerSample
	return float64(samples) / float64(decoder.SampleRate()), nil
}

// ProbeFunc allows tests to override the probe implementation.
var ProbeFunc = ProbeDuration
