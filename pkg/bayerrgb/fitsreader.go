package bayerrgb

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// FITSMetadata holds parsed FITS header key-value pairs.
type FITSMetadata struct {
	Headers map[string]string
}

// NewFITSMetadata creates an empty FITSMetadata.
func NewFITSMetadata() *FITSMetadata {
	return &FITSMetadata{Headers: make(map[string]string)}
}

func (m *FITSMetadata) GetString(key string) string {
	if v, ok := m.Headers[strings.ToUpper(key)]; ok {
		return v
	}
	return ""
}

func (m *FITSMetadata) GetDouble(key string) (float64, bool) {
	v, ok := m.Headers[strings.ToUpper(key)]
	if !ok {
		return 0, false
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, false
	}
	return d, true
}

func (m *FITSMetadata) GetInt(key string) (int, bool) {
	v, ok := m.Headers[strings.ToUpper(key)]
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return i, true
}

// Convenience accessors for the cards capture software usually writes.
func (m *FITSMetadata) CameraName() string { return m.GetString("INSTRUME") }
func (m *FITSMetadata) ImageType() string  { return m.GetString("IMAGETYP") }

func (m *FITSMetadata) ExposureTime() (float64, bool) {
	if v, ok := m.GetDouble("EXPTIME"); ok {
		return v, true
	}
	return m.GetDouble("EXPOSURE")
}

// BayerPattern maps the conventional BAYERPAT card, adjusted by the
// optional XBAYROFF/YBAYROFF origin offsets, to a Pattern. The second
// return is false when the card is absent or names an unknown tiling.
func (m *FITSMetadata) BayerPattern() (Pattern, bool) {
	name := m.GetString("BAYERPAT")
	if name == "" {
		return 0, false
	}
	p, err := ParsePattern(name)
	if err != nil {
		return 0, false
	}
	dx, _ := m.GetInt("XBAYROFF")
	dy, _ := m.GetInt("YBAYROFF")
	return p.Shift(dx, dy), true
}

// RawFrame is a decoded FITS primary HDU: physical sample values
// (BSCALE/BZERO applied, clamped to the bit-depth range) plus header
// metadata.
type RawFrame struct {
	Grid     *Grid
	BitDepth int
	Metadata *FITSMetadata
}

// NormalizedGrid returns a copy of the frame scaled to [0, 1).
func (f *RawFrame) NormalizedGrid() *Grid {
	g := NewGrid(f.Grid.Width, f.Grid.Height)
	scale := float64(uint64(1) << uint(f.BitDepth))
	for i, v := range f.Grid.Pix {
		g.Pix[i] = v / scale
	}
	return g
}

// ReadFITSFile reads a FITS frame from disk. Files ending in .gz are
// decompressed transparently.
func ReadFITSFile(path string) (*RawFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening FITS file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		defer gz.Close()
		r = gz
	}
	return ReadFITS(r)
}

// ReadFITSBytes reads a FITS frame from a byte slice.
func ReadFITSBytes(data []byte) (*RawFrame, error) {
	return ReadFITS(bytes.NewReader(data))
}

type fitsHeader struct {
	bitpix int
	naxis  int
	width  int
	height int
	bzero  float64
	bscale float64
	meta   *FITSMetadata
}

// ReadFITS reads the primary HDU of a FITS stream.
func ReadFITS(r io.Reader) (*RawFrame, error) {
	hdr, err := readFITSHeader(r)
	if err != nil {
		return nil, err
	}
	if hdr.naxis < 2 || hdr.width == 0 || hdr.height == 0 {
		return nil, fmt.Errorf("invalid FITS: NAXIS=%d, NAXIS1=%d, NAXIS2=%d", hdr.naxis, hdr.width, hdr.height)
	}

	grid, err := readFITSPixels(r, hdr)
	if err != nil {
		return nil, err
	}

	bitDepth := 16
	if hdr.bitpix == 8 {
		bitDepth = 8
	}
	return &RawFrame{Grid: grid, BitDepth: bitDepth, Metadata: hdr.meta}, nil
}

// readFITSHeader consumes 2880-byte header blocks of 80-byte records
// until the END card.
func readFITSHeader(r io.Reader) (*fitsHeader, error) {
	hdr := &fitsHeader{bscale: 1, meta: NewFITSMetadata()}
	record := make([]byte, 80)

	for {
		endSeen := false
		for i := 0; i < 36; i++ {
			if _, err := io.ReadFull(r, record); err != nil {
				return nil, fmt.Errorf("reading FITS header record: %w", err)
			}
			if endSeen {
				continue // drain the rest of the block
			}
			keyword := strings.TrimSpace(string(record[:8]))
			if keyword == "END" {
				endSeen = true
				continue
			}
			if len(record) <= 10 || record[8] != '=' || record[9] != ' ' {
				continue
			}
			rawValue := strings.TrimSpace(strings.SplitN(string(record[10:]), "/", 2)[0])
			if keyword != "" && rawValue != "" {
				hdr.meta.Headers[strings.ToUpper(keyword)] = parseFITSValue(rawValue)
			}
			switch keyword {
			case "BITPIX":
				hdr.bitpix, _ = strconv.Atoi(rawValue)
			case "NAXIS":
				hdr.naxis, _ = strconv.Atoi(rawValue)
			case "NAXIS1":
				hdr.width, _ = strconv.Atoi(rawValue)
			case "NAXIS2":
				hdr.height, _ = strconv.Atoi(rawValue)
			case "BZERO":
				hdr.bzero, _ = strconv.ParseFloat(rawValue, 64)
			case "BSCALE":
				hdr.bscale, _ = strconv.ParseFloat(rawValue, 64)
			}
		}
		if endSeen {
			return hdr, nil
		}
	}
}

func readFITSPixels(r io.Reader, hdr *fitsHeader) (*Grid, error) {
	numPixels := hdr.width * hdr.height
	grid := NewGrid(hdr.width, hdr.height)

	maxVal := 65535.0
	if hdr.bitpix == 8 {
		maxVal = 255.0
	}

	switch hdr.bitpix {
	case 8:
		raw := make([]byte, numPixels)
		if _, err := io.ReadFull(r, raw); err != nil {
			return nil, fmt.Errorf("reading 8-bit pixel data: %w", err)
		}
		for i := 0; i < numPixels; i++ {
			grid.Pix[i] = clampFloat64(float64(raw[i])*hdr.bscale+hdr.bzero, 0, maxVal)
		}

	case 16:
		raw := make([]byte, numPixels*2)
		if _, err := io.ReadFull(r, raw); err != nil {
			return nil, fmt.Errorf("reading 16-bit pixel data: %w", err)
		}
		for i := 0; i < numPixels; i++ {
			signed := int16(binary.BigEndian.Uint16(raw[i*2:]))
			grid.Pix[i] = clampFloat64(float64(signed)*hdr.bscale+hdr.bzero, 0, maxVal)
		}

	case 32:
		raw := make([]byte, numPixels*4)
		if _, err := io.ReadFull(r, raw); err != nil {
			return nil, fmt.Errorf("reading 32-bit pixel data: %w", err)
		}
		for i := 0; i < numPixels; i++ {
			signed := int32(binary.BigEndian.Uint32(raw[i*4:]))
			grid.Pix[i] = clampFloat64(float64(signed)*hdr.bscale+hdr.bzero, 0, maxVal)
		}

	case -32:
		raw := make([]byte, numPixels*4)
		if _, err := io.ReadFull(r, raw); err != nil {
			return nil, fmt.Errorf("reading -32 float pixel data: %w", err)
		}
		for i := 0; i < numPixels; i++ {
			bits := binary.BigEndian.Uint32(raw[i*4:])
			v := float64(math.Float32frombits(bits))
			grid.Pix[i] = clampFloat64(v*hdr.bscale+hdr.bzero, 0, maxVal)
		}

	default:
		return nil, fmt.Errorf("unsupported BITPIX: %d", hdr.bitpix)
	}

	return grid, nil
}

func clampFloat64(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func parseFITSValue(rawValue string) string {
	if rawValue == "T" {
		return "True"
	}
	if rawValue == "F" {
		return "False"
	}
	if strings.HasPrefix(rawValue, "'") {
		endQuote := strings.LastIndex(rawValue, "'")
		if endQuote > 0 {
			return strings.TrimRight(rawValue[1:endQuote], " ")
		}
		return strings.Trim(rawValue, "' ")
	}
	return rawValue
}
