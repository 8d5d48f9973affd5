// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"bytes"
	"encoding/binary"
	"log/slog"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
)

// offset of textures which are stored in an external wad
const missingTexture = -1

// readTextures reads the miptex lump. It starts with a count and a list of
// offsets relative to the lump start, the headers themselves are not
// contiguous.
func readTextures(data []byte, h *header) ([]Texture, error) {
	b, err := lumpData(data, h, lumpTextures)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, nil
	}
	buf := bytes.NewReader(b)
	var count uint32
	if err := binary.Read(buf, binary.LittleEndian, &count); err != nil {
		return nil, errors.Wrapf(ErrCorruptLump, "textures lump: %v", err)
	}
	if int64(count)*4 > int64(buf.Len()) {
		return nil, errors.Wrapf(ErrCorruptLump, "textures lump of %d bytes can not hold %d offsets", len(b), count)
	}
	offsets := make([]int32, count)
	if err := binary.Read(buf, binary.LittleEndian, offsets); err != nil {
		return nil, errors.Wrapf(ErrCorruptLump, "textures lump: %v", err)
	}

	textures := make([]Texture, count)
	for i, off := range offsets {
		if off == missingTexture {
			slog.Warn("Texture not embedded", slog.Int("texture", i))
			textures[i] = Texture{Missing: true}
			continue
		}
		if off < 0 || int64(off)+mipTexSize > int64(len(b)) {
			return nil, errors.Wrapf(ErrCorruptLump, "texture %d at offset %d exceeds lump size %d", i, off, len(b))
		}
		var mt mipTexture
		if err := binary.Read(bytes.NewReader(b[off:]), binary.LittleEndian, &mt); err != nil {
			return nil, errors.Wrapf(ErrCorruptLump, "texture %d: %v", i, err)
		}
		textures[i] = Texture{
			Name:   textureName(mt.Name[:]),
			Width:  int(mt.Width),
			Height: int(mt.Height),
		}
	}
	return textures, nil
}

// textureName decodes the NUL terminated windows-1252 name.
func textureName(raw []byte) string {
	if n := bytes.IndexByte(raw, 0); n != -1 {
		raw = raw[:n]
	}
	name, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(name)
}
