// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"
)

func TestSeekable(t *testing.T) {
	t.Parallel()

	direct := bytes.NewReader([]byte("RIFF"))
	rs, err := Seekable(direct)
	if err != nil {
		t.Fatalf("Seekable() error = %v", err)
	}
	if rs != io.ReadSeeker(direct) {
		t.Error("Seekable() wrapped a reader that already seeks")
	}

	rs, err = Seekable(iotest.OneByteReader(bytes.NewReader([]byte("FORM"))))
	if err != nil {
		t.Fatalf("Seekable() error = %v", err)
	}
	if _, err := rs.Seek(2, io.SeekStart); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	rest, _ := io.ReadAll(rs)
	if string(rest) != "RM" {
		t.Errorf("read %q after seek, want %q", rest, "RM")
	}

	boom := errors.New("boom")
	if _, err := Seekable(iotest.ErrReader(boom)); !errors.Is(err, boom) {
		t.Errorf("Seekable() error = %v, want wrapped boom", err)
	}
}
