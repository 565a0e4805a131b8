package bitstream

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"

	"github.com/pkg/errors"

	"github.com/Stateford/aion-sub002/arch"
	"github.com/Stateford/aion-sub002/diag"
	"github.com/Stateford/aion-sub002/pnr"
)

// xilinxSyncWord is the fixed 7-series configuration sync word (§4.L).
const xilinxSyncWord uint32 = 0xAA995566

// Xilinx 7-series configuration register commands, written into the
// command stream as simplified Type-1 packet headers (writeType1Packet).
const (
	xCmdRCRC     = 0x07
	xCmdCOR0     = 0x09 // configuration options 0
	xCmdWCFG     = 0x01
	xCmdFAR      = 0x06 // frame address register
	xCmdFDRI     = 0x02
	xCmdGRESTORE = 0x0A
	xCmdSTART    = 0x05
	xCmdDESYNC   = 0x0D
	xCmdNoop     = 0x00
)

// XilinxBitstreamGenerator emits the Xilinx 7-series .bit container. It
// is the only generator that accepts FormatBit (§6, scenario (f)).
type XilinxBitstreamGenerator struct {
	DesignName string
	DeviceName string
	Date       string // fixed for determinism (§4.L); caller supplies a stable value
	Time       string
	DB         ConfigBitDatabase
}

var _ BitstreamGenerator = (*XilinxBitstreamGenerator)(nil)

// SupportedFormats reports the formats this generator accepts.
func (g *XilinxBitstreamGenerator) SupportedFormats() []BitstreamFormat {
	return []BitstreamFormat{FormatBit}
}

// Generate assembles a netlist's config bits and frames them into a
// 7-series .bit image: TLV header, sync word, and the RCRC/COR0/WCFG/
// FAR/FDRI/GRESTORE/START/DESYNC command sequence (§4.L).
func (g *XilinxBitstreamGenerator) Generate(n *pnr.PnrNetlist, a arch.Architecture, format BitstreamFormat, sink *diag.Sink) (*Bitstream, error) {
	if !supports(g.SupportedFormats(), format) {
		return nil, errors.Errorf("xilinx bitstream generator: format %s not supported (Xilinx emits Bit only)", format)
	}

	image := assembleConfig(n, g.DB, sink)
	frames := image.Finalize()

	device := g.DeviceName
	if device == "" {
		device = a.DeviceName()
	}

	var body bytes.Buffer
	writeTLVHeader(&body, g.DesignName, device, g.Date, g.Time)

	var cmd bytes.Buffer
	cmd.Write(u32be(xilinxSyncWord))
	writeType1Packet(&cmd, xCmdRCRC, nil)
	writeType1Packet(&cmd, xCmdCOR0, []uint32{0x00000000})
	writeType1Packet(&cmd, xCmdWCFG, nil)

	if len(frames) > 0 {
		writeType1Packet(&cmd, xCmdFAR, []uint32{uint32(frames[0].Address)})
	} else {
		writeType1Packet(&cmd, xCmdFAR, []uint32{0})
	}

	var payload []uint32
	for _, f := range frames {
		payload = append(payload, f.Data...)
	}
	fdriCRC := crc32.ChecksumIEEE(u32SliceBytes(payload))
	writeType2Packet(&cmd, xCmdFDRI, payload)
	writeType1Packet(&cmd, xCmdRCRC, []uint32{fdriCRC})

	writeType1Packet(&cmd, xCmdGRESTORE, nil)
	writeType1Packet(&cmd, xCmdSTART, nil)
	// A short run of NOOPs lets the configuration engine settle before
	// DESYNC, matching the 7-series protocol's required trailer.
	for i := 0; i < 4; i++ {
		writeType1Packet(&cmd, xCmdNoop, nil)
	}
	writeType1Packet(&cmd, xCmdDESYNC, nil)

	body.Write(cmd.Bytes())

	data := body.Bytes()
	return &Bitstream{
		Data:     data,
		Format:   FormatBit,
		Device:   device,
		Checksum: crc32.ChecksumIEEE(data),
	}, nil
}

// writeTLVHeader writes the .bit container's metadata section: one
// length-prefixed field per (design name, device name, date, time) plus
// a final 4-byte big-endian data length placeholder is not needed here
// since the core never frames beyond the command stream that follows.
func writeTLVHeader(w *bytes.Buffer, design, device, date, time string) {
	writeTLVField(w, 'a', design+";UserID=0xFFFFFFFF")
	writeTLVField(w, 'b', device)
	writeTLVField(w, 'c', date)
	writeTLVField(w, 'd', time)
}

func writeTLVField(w *bytes.Buffer, tag byte, value string) {
	w.WriteByte(tag)
	w.Write(u16be(uint16(len(value) + 1)))
	w.WriteString(value)
	w.WriteByte(0)
}

// writeType1Packet writes a Type-1 configuration packet: a 1-word
// header (opcode + register address folded into the low bits, kept
// simple since the core does not model the full bit-field encoding)
// followed by its data words.
func writeType1Packet(w *bytes.Buffer, opcode byte, words []uint32) {
	w.WriteByte(0x20) // type-1 packet tag, kept as a constant framing marker
	w.WriteByte(opcode)
	w.Write(u16be(uint16(len(words))))
	for _, word := range words {
		w.Write(u32be(word))
	}
}

// writeType2Packet writes a Type-2 packet: used only for FDRI, whose
// payload can exceed a Type-1 packet's 16-bit word count field.
func writeType2Packet(w *bytes.Buffer, opcode byte, words []uint32) {
	w.WriteByte(0x40)
	w.WriteByte(opcode)
	w.Write(u32be(uint32(len(words))))
	for _, word := range words {
		w.Write(u32be(word))
	}
}

func u16be(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

func u32be(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func u32SliceBytes(words []uint32) []byte {
	b := make([]byte, 4*len(words))
	for i, w := range words {
		binary.BigEndian.PutUint32(b[i*4:], w)
	}
	return b
}
