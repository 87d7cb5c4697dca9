package infra

import (
	"context"
	"log"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Vovarama1992/backstage/internal/ports"
)

// FfprobeProber reads the duration of a stored audio blob with ffprobe.
// Everything about it is best-effort: missing binary, unreadable file or
// unparsable output all come back as (0, nil).
type FfprobeProber struct {
	dir string
}

func NewFfprobeProber(dir string) ports.DurationProber {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		log.Printf("[probe] ffprobe not found, audio durations disabled")
	}
	return &FfprobeProber{dir: dir}
}

func (p *FfprobeProber) Probe(ctx context.Context, key string) (int, error) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cmd := exec.CommandContext(
		ctx,
		"ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		filepath.Join(p.dir, key),
	)

	out, err := cmd.Output()
	if err != nil {
		log.Printf("[probe][FAIL] key=%s err=%v", key, err)
		return 0, nil
	}

	secs, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil || secs <= 0 {
		log.Printf("[probe][SKIP] key=%s out=%q", key, strings.TrimSpace(string(out)))
		return 0, nil
	}

	return int(secs + 0.5), nil
}
