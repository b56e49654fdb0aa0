package pkg

import "io"

type CombinedWriter struct {
	writers []io.Writer
}

// NewCombinedWriter returns a writer that duplicates every write to all
// given writers, used to log to a file and stdout at the same time.
func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		writers: writers,
	}
}

func (w *CombinedWriter) Write(p []byte) (n int, err error) {
	for _, writer := range w.writers {
		if n, err = writer.Write(p); err != nil {
			return n, err
		}
	}
	return len(p), nil
}
