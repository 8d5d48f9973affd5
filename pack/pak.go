// SPDX-License-Identifier: GPL-2.0-or-later

// Package pack reads Quake PAK archives.
package pack

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
)

var (
	ErrNotPack   = errors.New("not a pack")
	ErrDuplicate = errors.New("files in pack are not unique")
)

type header struct {
	ID     [4]byte
	Offset int32
	Size   int32
}

type entry struct {
	Name   [56]byte
	Offset int32
	Size   int32
}

const entrySize = 64

type Pack struct {
	f     *os.File
	size  int64
	files map[string]*qfile
	name  string
}

type qfile struct {
	offset int64
	size   int64
}

// Open returns a io.SectionReader for the entry called name.
func (p *Pack) Open(name string) (*io.SectionReader, error) {
	q, ok := p.files[name]
	if !ok {
		return nil, errors.Wrapf(os.ErrNotExist, "%s in %s", name, p.name)
	}
	return io.NewSectionReader(p.f, q.offset, q.size), nil
}

// ReadFile returns the whole content of the entry called name.
func (p *Pack) ReadFile(name string) ([]byte, error) {
	r, err := p.Open(name)
	if err != nil {
		return nil, err
	}
	b := make([]byte, r.Size())
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, errors.Wrapf(err, "reading %s from %s", name, p.name)
	}
	return b, nil
}

// Names returns the sorted entry names.
func (p *Pack) Names() []string {
	n := make([]string, 0, len(p.files))
	for k := range p.files {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}

func (p *Pack) String() string {
	return p.name
}

func (p *Pack) Close() error {
	return p.f.Close()
}

func newPack(name string) (*Pack, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.WithStack(err)
	}
	return &Pack{f: f, name: name, size: fi.Size()}, nil
}

func (p *Pack) init() error {
	var h header
	if err := binary.Read(p.f, binary.LittleEndian, &h); err != nil {
		return errors.Wrap(ErrNotPack, err.Error())
	}
	if !bytes.Equal([]byte("PACK"), h.ID[:]) {
		return errors.Wrapf(ErrNotPack, "magic %q", h.ID[:])
	}
	if h.Offset < 0 || h.Size < 0 || int64(h.Offset)+int64(h.Size) > p.size {
		return errors.Wrapf(ErrNotPack, "directory %d+%d outside of %d bytes", h.Offset, h.Size, p.size)
	}
	if _, err := p.f.Seek(int64(h.Offset), io.SeekStart); err != nil {
		return errors.WithStack(err)
	}
	filenum := h.Size / entrySize
	p.files = make(map[string]*qfile, filenum)
	for i := int32(0); i < filenum; i++ {
		var e entry
		if err := binary.Read(p.f, binary.LittleEndian, &e); err != nil {
			return errors.WithStack(err)
		}
		n := bytes.IndexByte(e.Name[:], 0)
		if n < 0 {
			n = len(e.Name)
		}
		name := string(e.Name[:n])
		if p.files[name] != nil {
			return errors.Wrap(ErrDuplicate, name)
		}
		if e.Offset < 0 || e.Size < 0 || int64(e.Offset)+int64(e.Size) > p.size {
			return errors.Wrapf(ErrNotPack, "entry %s outside of archive", name)
		}
		p.files[name] = &qfile{
			offset: int64(e.Offset),
			size:   int64(e.Size),
		}
	}
	return nil
}

func NewPackReader(name string) (*Pack, error) {
	p, err := newPack(name)
	if err != nil {
		return nil, err
	}
	if err := p.init(); err != nil {
		p.Close()
		return nil, errors.Wrap(err, name)
	}
	return p, nil
}
