package media

import "encoding/binary"

// PRG is a raw two-byte-load-address program image, the format produced
// by "SAVE" and almost every cross-assembler.
type PRG struct {
	LoadAddr uint16
	Data     []byte
}

func ParsePRG(raw []byte) (*PRG, error) {
	if len(raw) < 2 {
		return nil, errBadHeader
	}
	return &PRG{LoadAddr: binary.LittleEndian.Uint16(raw[0:2]), Data: raw[2:]}, nil
}

// T64Entry is one directory entry in a T64 tape archive.
type T64Entry struct {
	Name         string
	LoadAddr     uint16
	EndAddr      uint16
	FileOffset   uint32
}

// T64 is a parsed tape-image container (a disk-like wrapper storing PRG
// payloads with a directory, not an actual tape bitstream).
type T64 struct {
	Entries []T64Entry
	raw     []byte
}

func ParseT64(raw []byte) (*T64, error) {
	if len(raw) < 64 || string(raw[0:3]) != "C64" {
		return nil, errBadHeader
	}
	maxEntries := int(binary.LittleEndian.Uint16(raw[34:36]))
	t := &T64{raw: raw}
	for i := 0; i < maxEntries; i++ {
		base := 64 + i*32
		if base+32 > len(raw) {
			break
		}
		entryType := raw[base]
		if entryType == 0 {
			continue
		}
		name := trimCString(raw[base+16 : base+32])
		t.Entries = append(t.Entries, T64Entry{
			Name:       name,
			LoadAddr:   binary.LittleEndian.Uint16(raw[base+2 : base+4]),
			EndAddr:    binary.LittleEndian.Uint16(raw[base+4 : base+6]),
			FileOffset: binary.LittleEndian.Uint32(raw[base+8 : base+12]),
		})
	}
	return t, nil
}

func (t *T64) ExtractPRG(e T64Entry) *PRG {
	size := int(e.EndAddr) - int(e.LoadAddr)
	if size < 0 || int(e.FileOffset)+size > len(t.raw) {
		size = len(t.raw) - int(e.FileOffset)
	}
	return &PRG{LoadAddr: e.LoadAddr, Data: t.raw[e.FileOffset : int(e.FileOffset)+size]}
}

// D64 is a parsed 1541 disk image: 35 tracks of fixed-size sectors, no
// copy-protection (half-tracks, weak bits) reproduced — out of scope,
// per spec.md's Non-goals around media beyond running programs.
type D64 struct {
	raw []byte
}

var d64TrackSectors = [36]int{
	0, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21,
	19, 19, 19, 19, 19, 19, 19,
	18, 18, 18, 18, 18, 18,
	17, 17, 17, 17, 17,
}

const d64SectorSize = 256

func ParseD64(raw []byte) (*D64, error) {
	if len(raw) < 174848 {
		return nil, errBadHeader
	}
	return &D64{raw: raw}, nil
}

func (d *D64) ReadSector(track, sector int) []byte {
	offset := 0
	for t := 1; t < track; t++ {
		offset += d64TrackSectors[t] * d64SectorSize
	}
	offset += sector * d64SectorSize
	if offset+d64SectorSize > len(d.raw) {
		return nil
	}
	return d.raw[offset : offset+d64SectorSize]
}

// FirstPRG walks the directory track (18) for the first PRG file entry,
// chasing the sector chain, and returns it as a loadable program — the
// minimal subset of 1541 filesystem semantics a headless loader needs.
func (d *D64) FirstPRG() *PRG {
	dir := d.ReadSector(18, 1)
	if dir == nil {
		return nil
	}
	for entry := 0; entry < 8; entry++ {
		base := entry * 32
		if base+32 > len(dir) {
			break
		}
		fileType := dir[base+2]
		if fileType&0x07 != 2 { // PRG type
			continue
		}
		track, sector := int(dir[base+3]), int(dir[base+4])
		var data []byte
		for track != 0 {
			blk := d.ReadSector(track, sector)
			if blk == nil {
				break
			}
			nextTrack, nextVal := int(blk[0]), int(blk[1])
			if nextTrack == 0 {
				// nextVal is the count of valid bytes in this final sector.
				data = append(data, blk[2:2+nextVal]...)
				break
			}
			data = append(data, blk[2:]...)
			track, sector = nextTrack, nextVal
		}
		if len(data) < 2 {
			continue
		}
		return &PRG{LoadAddr: binary.LittleEndian.Uint16(data[0:2]), Data: data[2:]}
	}
	return nil
}
