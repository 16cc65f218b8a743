package ytdlp

import (
	"strings"
	"testing"
	"time"
)

func TestCommonArgs(t *testing.T) {
	r := NewRunner()

	args := r.commonArgs(Options{
		UserAgent: "Mozilla/5.0 test",
		Referer:   "https://www.tiktok.com/",
		Proxy:     "socks5://127.0.0.1:9050",
	})
	joined := strings.Join(args, " ")

	for _, want := range []string{
		"--socket-timeout 30",
		"--user-agent Mozilla/5.0 test",
		"--add-headers Referer:https://www.tiktok.com/",
		"--proxy socks5://127.0.0.1:9050",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("commonArgs missing %q in %q", want, joined)
		}
	}
}

func TestCommonArgsDefaults(t *testing.T) {
	r := NewRunner()

	args := r.commonArgs(Options{SocketTimeout: 5 * time.Second})
	joined := strings.Join(args, " ")

	if !strings.Contains(joined, "--socket-timeout 5") {
		t.Errorf("custom timeout not rendered: %q", joined)
	}
	if strings.Contains(joined, "--proxy") || strings.Contains(joined, "--user-agent") {
		t.Errorf("zero options should not render identity flags: %q", joined)
	}
}

func TestDownloadArgs(t *testing.T) {
	r := NewRunner()

	joined := strings.Join(r.downloadArgs("/downloads", Options{OutputStem: "My_Clip"}), " ")
	if !strings.Contains(joined, "-o /downloads/My_Clip.%(ext)s") {
		t.Errorf("Output stem not pinned in template: %q", joined)
	}
	if !strings.Contains(joined, "-f "+FormatVideo) {
		t.Errorf("Expected video format selector: %q", joined)
	}

	joined = strings.Join(r.downloadArgs("/downloads", Options{AudioOnly: true}), " ")
	if !strings.Contains(joined, "-f "+FormatAudio) {
		t.Errorf("Expected audio format selector: %q", joined)
	}
	if !strings.Contains(joined, "-o /downloads/"+outputTemplate) {
		t.Errorf("Empty stem should keep the title template: %q", joined)
	}
}

func TestLimitedBufferCapsOutput(t *testing.T) {
	var b limitedBuffer

	chunk := strings.Repeat("x", 5000)
	for i := 0; i < 4; i++ {
		n, err := b.Write([]byte(chunk))
		if err != nil || n != len(chunk) {
			t.Fatalf("Write = (%d, %v)", n, err)
		}
	}

	if got := len(b.String()); got != outputKeep {
		t.Errorf("Expected buffer capped at %d, got %d", outputKeep, got)
	}
}

func TestTrimOutput(t *testing.T) {
	if got := trimOutput("  hello \n"); got != "hello" {
		t.Errorf("trimOutput = %q", got)
	}
	long := strings.Repeat("e", 2000)
	if got := trimOutput(long); len(got) != 512 {
		t.Errorf("Expected long output capped at 512, got %d", len(got))
	}
}

// fakeCommand exits when told to, recording kill calls
type fakeCommand struct {
	exit  chan error
	kills int
}

func (f *fakeCommand) Wait() error {
	return <-f.exit
}

func (f *fakeCommand) KillTree() {
	f.kills++
	f.exit <- nil
}

func TestStreamWaitTimeoutKills(t *testing.T) {
	fake := &fakeCommand{exit: make(chan error, 1)}
	st := &Stream{cmd: fake, lines: make(chan []byte)}

	err := st.Wait(50 * time.Millisecond)
	if err == nil {
		t.Fatal("Expected timeout error")
	}
	if fake.kills != 1 {
		t.Errorf("Expected 1 kill on timeout, got %d", fake.kills)
	}

	// Wait is sticky: a second call returns the recorded result without
	// waiting again.
	if err2 := st.Wait(time.Hour); err2 != err {
		t.Errorf("Second Wait returned different result: %v vs %v", err2, err)
	}
}

func TestStreamKillIdempotent(t *testing.T) {
	fake := &fakeCommand{exit: make(chan error, 1)}
	st := &Stream{cmd: fake, lines: make(chan []byte)}

	st.Kill()
	st.Kill()

	if fake.kills != 1 {
		t.Errorf("Expected exactly one kill, got %d", fake.kills)
	}
}
