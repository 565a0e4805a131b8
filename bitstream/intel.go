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

// IntelBitstreamGenerator emits Intel/Altera SOF, POF, and RBF
// containers, all carrying the same packed config image with a format-
// specific envelope (§4.L, §6).
type IntelBitstreamGenerator struct {
	DeviceName string
	DB         ConfigBitDatabase
}

var _ BitstreamGenerator = (*IntelBitstreamGenerator)(nil)

// SupportedFormats reports the formats this generator accepts.
func (g *IntelBitstreamGenerator) SupportedFormats() []BitstreamFormat {
	return []BitstreamFormat{FormatSof, FormatPof, FormatRbf}
}

// Generate assembles a netlist's config bits and frames them into the
// requested Intel container. RBF is the rawest: frame words back to
// back, no header. SOF and POF prepend a small fixed record describing
// the device and frame geometry.
func (g *IntelBitstreamGenerator) Generate(n *pnr.PnrNetlist, a arch.Architecture, format BitstreamFormat, sink *diag.Sink) (*Bitstream, error) {
	if !supports(g.SupportedFormats(), format) {
		return nil, errors.Errorf("intel bitstream generator: format %s not supported (Intel emits Sof/Pof/Rbf)", format)
	}

	image := assembleConfig(n, g.DB, sink)
	frames := image.Finalize()

	var buf bytes.Buffer
	switch format {
	case FormatRbf:
		writeRawFrames(&buf, frames)
	case FormatSof, FormatPof:
		writeIntelRecordHeader(&buf, a.DeviceName(), format, image.FrameWordCount, image.TotalFrameCount)
		writeRawFrames(&buf, frames)
	}

	data := buf.Bytes()
	return &Bitstream{
		Data:     data,
		Format:   format,
		Device:   a.DeviceName(),
		Checksum: crc32.ChecksumIEEE(data),
	}, nil
}

func writeRawFrames(w *bytes.Buffer, frames []ConfigFrame) {
	for _, f := range frames {
		hdr := make([]byte, 4)
		binary.BigEndian.PutUint32(hdr, uint32(f.Address))
		w.Write(hdr)
		for _, word := range f.Data {
			b := make([]byte, 4)
			binary.BigEndian.PutUint32(b, word)
			w.Write(b)
		}
	}
}

func writeIntelRecordHeader(w *bytes.Buffer, device string, format BitstreamFormat, frameWordCount, totalFrameCount uint32) {
	tag := format.String()
	w.WriteString(tag)
	w.WriteByte(0)
	w.WriteString(device)
	w.WriteByte(0)
	b := make([]byte, 8)
	binary.BigEndian.PutUint32(b[0:4], frameWordCount)
	binary.BigEndian.PutUint32(b[4:8], totalFrameCount)
	w.Write(b)
}
