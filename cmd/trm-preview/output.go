package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ben-tinc/trm-preview/export"
	"github.com/ben-tinc/trm-preview/table"
)

type stagedFile struct {
	tmp    string
	dst    string
	backup string
}

// staged collects output files written next to their destination under a
// temporary name. commit renames them into place; discard removes leftovers.
type staged struct {
	files []stagedFile
}

func (s *staged) stage(dst string, write func(io.Writer) error) error {
	f, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	s.files = append(s.files, stagedFile{tmp: f.Name(), dst: dst})

	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", f.Name(), err)
	}
	if err := f.Chmod(0644); err != nil {
		f.Close()
		return fmt.Errorf("chmod %s: %w", f.Name(), err)
	}
	return f.Close()
}

// commit moves every staged file into place. A destination that already
// exists is kept aside until all renames succeed, so a failure restores the
// previous outputs.
func (s *staged) commit() error {
	for i := range s.files {
		f := &s.files[i]
		if _, err := os.Lstat(f.dst); err == nil {
			if err := os.Rename(f.dst, f.tmp+".bak"); err != nil {
				rollback(s.files[:i])
				return fmt.Errorf("move previous output aside: %w", err)
			}
			f.backup = f.tmp + ".bak"
		}
		if err := os.Rename(f.tmp, f.dst); err != nil {
			rollback(s.files[:i+1])
			return fmt.Errorf("move output into place: %w", err)
		}
	}
	for i := range s.files {
		s.files[i].tmp = ""
		if s.files[i].backup != "" {
			_ = os.Remove(s.files[i].backup)
		}
	}
	return nil
}

// rollback undoes renames done by commit: new outputs are removed and
// previous ones restored.
func rollback(files []stagedFile) {
	for _, f := range files {
		if f.backup != "" {
			_ = os.Rename(f.backup, f.dst)
		} else {
			_ = os.Remove(f.dst)
		}
	}
}

func (s *staged) discard() {
	for _, f := range s.files {
		if f.tmp != "" {
			_ = os.Remove(f.tmp)
		}
	}
}

func encodeTable(format table.Format, t *table.Table) func(io.Writer) error {
	return func(w io.Writer) error {
		return table.Encode(w, format, t)
	}
}

func encodeGraph(format export.Format, g *export.Graph) func(io.Writer) error {
	return func(w io.Writer) error {
		return export.Serialize(w, g, format)
	}
}
